// Package analyzer asks a language model to classify, score, and draft a
// reply for an inbound lead.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"aurora_leads_backend/internal/leads/domain"
	"aurora_leads_backend/platform/ai/anthropic"
	"aurora_leads_backend/platform/config"
	"aurora_leads_backend/platform/logger"
)

// ErrNotConfigured is returned on every call when no AI provider key is set.
var ErrNotConfigured = errors.New("analyzer: no AI provider API key configured")

// Completer is the narrow LLM capability the analyzer needs: one prompt in,
// one text reply out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Analyzer produces an Analysis for a submission or fails with an error when
// the provider call errors or its output cannot be parsed into the required
// shape. There is no degraded success: a failed analysis never yields
// fabricated defaults.
type Analyzer interface {
	Analyze(ctx context.Context, lead domain.LeadSubmission) (domain.Analysis, error)
}

// New selects an analyzer backend from configuration: Anthropic when its key
// is present, Gemini as the alternative, and a disabled stub when neither is
// configured so the server still boots and every submission fails at the
// analysis step.
func New(ctx context.Context, cfg config.AIConfig, log *logger.Logger) (Analyzer, error) {
	switch {
	case cfg.GetAnthropicAPIKey() != "":
		client := anthropic.NewClient(anthropic.Config{
			APIKey: cfg.GetAnthropicAPIKey(),
			Model:  cfg.GetAnthropicModel(),
		})
		return NewLLMAnalyzer(client, log), nil
	case cfg.GetGeminiAPIKey() != "":
		completer, err := newGeminiCompleter(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewLLMAnalyzer(completer, log), nil
	default:
		return disabled{}, nil
	}
}

type disabled struct{}

func (disabled) Analyze(context.Context, domain.LeadSubmission) (domain.Analysis, error) {
	return domain.Analysis{}, ErrNotConfigured
}

// LLMAnalyzer drives any Completer backend through the lead-analysis prompt
// and parses the JSON verdict out of its reply.
type LLMAnalyzer struct {
	llm Completer
	log *logger.Logger
}

// NewLLMAnalyzer creates an analyzer on top of the given completion backend.
func NewLLMAnalyzer(llm Completer, log *logger.Logger) *LLMAnalyzer {
	return &LLMAnalyzer{llm: llm, log: log}
}

// modelVerdict is the JSON object the model is instructed to return. Score is
// a pointer so a missing field is distinguishable from zero; a non-integer
// score fails the whole parse.
type modelVerdict struct {
	Intent   string `json:"intent"`
	Score    *int   `json:"score"`
	Response string `json:"response"`
}

// Analyze builds the prompt, calls the model, and validates the verdict.
func (a *LLMAnalyzer) Analyze(ctx context.Context, lead domain.LeadSubmission) (domain.Analysis, error) {
	reply, err := a.llm.Complete(ctx, buildPrompt(lead))
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("analyzer: completion failed: %w", err)
	}

	var verdict modelVerdict
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &verdict); err != nil {
		return domain.Analysis{}, fmt.Errorf("analyzer: unparseable model output: %w", err)
	}

	// Intent degrades field-level: anything outside the enumeration becomes
	// "unknown". A missing score defaults to 5; a present but out-of-range
	// score means the model ignored its instructions, which is fatal.
	score := 5
	if verdict.Score != nil {
		score = *verdict.Score
		if score < 1 || score > 10 {
			return domain.Analysis{}, fmt.Errorf("analyzer: score %d outside 1-10", score)
		}
	}

	analysis := domain.Analysis{
		Intent:     domain.ParseIntent(verdict.Intent),
		Score:      score,
		DraftReply: verdict.Response,
	}

	if analysis.DraftReply == "" {
		a.log.Warn("analyzer returned empty draft reply", "intent", string(analysis.Intent))
	}

	return analysis, nil
}

func buildPrompt(lead domain.LeadSubmission) string {
	var b strings.Builder
	b.WriteString("You are a lead response AI. Analyze this lead and respond:\n\n")
	b.WriteString("Lead Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "- Company: %s\n", lead.Company)
	fmt.Fprintf(&b, "- Email: %s\n", lead.Email)
	fmt.Fprintf(&b, "- Message: %s\n", lead.Message)
	if lead.Phone != "" {
		fmt.Fprintf(&b, "- Phone: %s\n", lead.Phone)
	}
	b.WriteString(`
Tasks:
1. Classify the intent (demo_request, pricing_inquiry, support_question, partnership, general_inquiry)
2. Score the lead quality 1-10 (based on message clarity, company presence, urgency signals)
3. Generate a warm, personalized response email (2-3 paragraphs) that:
   - Addresses their specific question/need
   - Demonstrates you understood their message
   - Provides next steps (calendar link, demo info, etc.)
   - Signs off as "Aurora - Lead Response AI"

Respond in this JSON format:
{
  "intent": "intent_classification",
  "score": 8,
  "response": "Email body here..."
}`)
	return b.String()
}

// stripCodeFence removes a markdown code-fence wrapper from the model reply.
// It tolerates a language-tagged fence, a bare fence, or no fence at all, and
// a fence the model forgot to close.
func stripCodeFence(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(text)
}
