package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"aurora_leads_backend/internal/leads/domain"
	"aurora_leads_backend/platform/logger"
)

type stubCompleter struct {
	reply      string
	err        error
	lastPrompt string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testLead() domain.LeadSubmission {
	return domain.LeadSubmission{
		Name:    "Ana",
		Email:   "ana@x.com",
		Company: "Acme",
		Message: "We need a demo ASAP, 500 seats",
	}
}

func analyze(t *testing.T, reply string) (domain.Analysis, error) {
	t.Helper()
	a := NewLLMAnalyzer(&stubCompleter{reply: reply}, logger.New("test"))
	return a.Analyze(context.Background(), testLead())
}

func TestAnalyzeParsesPlainJSON(t *testing.T) {
	result, err := analyze(t, `{"intent": "demo_request", "score": 9, "response": "Hi Ana..."}`)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Intent != domain.IntentDemoRequest {
		t.Fatalf("expected demo_request, got %q", result.Intent)
	}
	if result.Score != 9 {
		t.Fatalf("expected score 9, got %d", result.Score)
	}
	if result.DraftReply != "Hi Ana..." {
		t.Fatalf("unexpected draft reply %q", result.DraftReply)
	}
}

func TestAnalyzeStripsLanguageTaggedFence(t *testing.T) {
	result, err := analyze(t, "Here is my analysis:\n```json\n{\"intent\": \"pricing_inquiry\", \"score\": 7, \"response\": \"Hello\"}\n```\nDone.")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Intent != domain.IntentPricingInquiry {
		t.Fatalf("expected pricing_inquiry, got %q", result.Intent)
	}
}

func TestAnalyzeStripsBareFence(t *testing.T) {
	result, err := analyze(t, "```\n{\"intent\": \"partnership\", \"score\": 6, \"response\": \"Hello\"}\n```")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Intent != domain.IntentPartnership {
		t.Fatalf("expected partnership, got %q", result.Intent)
	}
}

func TestAnalyzeToleratesUnclosedFence(t *testing.T) {
	result, err := analyze(t, "```json\n{\"intent\": \"general_inquiry\", \"score\": 4, \"response\": \"Hello\"}")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Score != 4 {
		t.Fatalf("expected score 4, got %d", result.Score)
	}
}

func TestAnalyzeUnknownIntentDegrades(t *testing.T) {
	result, err := analyze(t, `{"intent": "bogus_value", "score": 8, "response": "Hello"}`)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Intent != domain.IntentUnknown {
		t.Fatalf("expected unknown intent, got %q", result.Intent)
	}
}

func TestAnalyzeMissingScoreDefaultsToFive(t *testing.T) {
	result, err := analyze(t, `{"intent": "demo_request", "response": "Hello"}`)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Score != 5 {
		t.Fatalf("expected default score 5, got %d", result.Score)
	}
}

func TestAnalyzeOutOfRangeScoreFails(t *testing.T) {
	for _, reply := range []string{
		`{"intent": "demo_request", "score": 0, "response": "Hello"}`,
		`{"intent": "demo_request", "score": 11, "response": "Hello"}`,
	} {
		if _, err := analyze(t, reply); err == nil {
			t.Fatalf("expected error for reply %s", reply)
		}
	}
}

func TestAnalyzeNonIntegerScoreFails(t *testing.T) {
	if _, err := analyze(t, `{"intent": "demo_request", "score": "high", "response": "Hello"}`); err == nil {
		t.Fatal("expected error for non-integer score")
	}
}

func TestAnalyzeUnparseableOutputFails(t *testing.T) {
	if _, err := analyze(t, "I could not decide on a classification."); err == nil {
		t.Fatal("expected error for non-JSON output")
	}
}

func TestAnalyzeCompleterErrorIsFatal(t *testing.T) {
	a := NewLLMAnalyzer(&stubCompleter{err: errors.New("timeout")}, logger.New("test"))
	if _, err := a.Analyze(context.Background(), testLead()); err == nil {
		t.Fatal("expected error when the completion backend fails")
	}
}

func TestAnalyzeEmptyDraftReplyTolerated(t *testing.T) {
	result, err := analyze(t, `{"intent": "support_question", "score": 3}`)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.DraftReply != "" {
		t.Fatalf("expected empty draft reply, got %q", result.DraftReply)
	}
}

func TestPromptIncludesPhoneOnlyWhenPresent(t *testing.T) {
	stub := &stubCompleter{reply: `{"intent": "demo_request", "score": 5, "response": "ok"}`}
	a := NewLLMAnalyzer(stub, logger.New("test"))

	lead := testLead()
	if _, err := a.Analyze(context.Background(), lead); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if strings.Contains(stub.lastPrompt, "- Phone:") {
		t.Fatal("prompt should not mention phone when none was supplied")
	}

	lead.Phone = "+14155552671"
	if _, err := a.Analyze(context.Background(), lead); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !strings.Contains(stub.lastPrompt, "- Phone: +14155552671") {
		t.Fatal("prompt should include the phone line when supplied")
	}
}

func TestDisabledAnalyzerFailsEveryCall(t *testing.T) {
	a := disabled{}
	if _, err := a.Analyze(context.Background(), testLead()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
