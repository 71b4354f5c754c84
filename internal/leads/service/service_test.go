package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"aurora_leads_backend/internal/leads/domain"
	"aurora_leads_backend/internal/leads/repository"
	"aurora_leads_backend/platform/apperr"
	"aurora_leads_backend/platform/logger"
)

type stubAnalyzer struct {
	analysis domain.Analysis
	err      error
	calls    int
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ domain.LeadSubmission) (domain.Analysis, error) {
	s.calls++
	if s.err != nil {
		return domain.Analysis{}, s.err
	}
	return s.analysis, nil
}

type stubSender struct {
	err      error
	calls    int
	lastBody string
}

func (s *stubSender) SendLeadReply(_ context.Context, _, _, _, body string) error {
	s.calls++
	s.lastBody = body
	return s.err
}

type stubNotifier struct {
	err   error
	calls int
	last  domain.LeadRecord
}

func (s *stubNotifier) NotifyLead(_ context.Context, record domain.LeadRecord) error {
	s.calls++
	s.last = record
	return s.err
}

type failingRepo struct {
	repository.LeadsRepository
}

func (failingRepo) Insert(context.Context, domain.LeadRecord) (int64, error) {
	return 0, errors.New("store unavailable")
}

func anaSubmission() domain.LeadSubmission {
	return domain.LeadSubmission{
		Name:    "Ana",
		Email:   "ana@x.com",
		Company: "Acme",
		Message: "We need a demo ASAP, 500 seats",
	}
}

func demoAnalysis() domain.Analysis {
	return domain.Analysis{
		Intent:     domain.IntentDemoRequest,
		Score:      9,
		DraftReply: "Hi Ana...",
	}
}

func newPipeline(az *stubAnalyzer, sender *stubSender, repo repository.LeadsRepository, notifier Notifier) *Service {
	return New(az, sender, repo, notifier, logger.New("test"))
}

func TestProcessSuccess(t *testing.T) {
	repo := repository.NewMemoryRepository()
	sender := &stubSender{}
	svc := newPipeline(&stubAnalyzer{analysis: demoAnalysis()}, sender, repo, nil)

	resp, err := svc.Process(context.Background(), anaSubmission())
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if !resp.Success {
		t.Fatal("expected success")
	}
	if resp.LeadID == 0 {
		t.Fatal("expected an assigned lead id")
	}
	if !strings.Contains(resp.Message, "ana@x.com") {
		t.Fatalf("message should mention the lead email, got %q", resp.Message)
	}
	if sender.lastBody != "Hi Ana..." {
		t.Fatalf("sender received body %q", sender.lastBody)
	}

	record, err := repo.GetByID(context.Background(), resp.LeadID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.Intent != domain.IntentDemoRequest {
		t.Fatalf("stored intent %q", record.Intent)
	}
	if record.Score != 9 {
		t.Fatalf("stored score %d", record.Score)
	}
	if !record.EmailSent {
		t.Fatal("stored record should have emailSent=true")
	}
	if record.ResponseTimeMs < 0 {
		t.Fatalf("negative response time %d", record.ResponseTimeMs)
	}
}

func TestProcessAnalyzerFailureIsFatalAndCreatesNoRecord(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := newPipeline(&stubAnalyzer{err: errors.New("timeout")}, &stubSender{}, repo, nil)

	_, err := svc.Process(context.Background(), anaSubmission())
	if err == nil {
		t.Fatal("expected fatal error on analysis failure")
	}

	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	if domainErr.Op != "leads.process.analyze" {
		t.Fatalf("unexpected op %q", domainErr.Op)
	}

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalLeads != 0 {
		t.Fatalf("no record should exist after analysis failure, got %d", stats.TotalLeads)
	}
}

func TestProcessEmailFailureIsNonFatal(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := newPipeline(&stubAnalyzer{analysis: demoAnalysis()}, &stubSender{err: errors.New("smtp auth failed")}, repo, nil)

	resp, err := svc.Process(context.Background(), anaSubmission())
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success despite delivery failure")
	}

	record, err := repo.GetByID(context.Background(), resp.LeadID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.EmailSent {
		t.Fatal("record should have emailSent=false after delivery failure")
	}
}

func TestProcessEmptyDraftReplySkipsSend(t *testing.T) {
	repo := repository.NewMemoryRepository()
	sender := &stubSender{}
	analysis := demoAnalysis()
	analysis.DraftReply = ""
	svc := newPipeline(&stubAnalyzer{analysis: analysis}, sender, repo, nil)

	resp, err := svc.Process(context.Background(), anaSubmission())
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if sender.calls != 0 {
		t.Fatal("no email should be attempted for an empty draft reply")
	}

	record, err := repo.GetByID(context.Background(), resp.LeadID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.EmailSent {
		t.Fatal("record should have emailSent=false when no send was attempted")
	}
}

func TestProcessPersistenceFailureIsFatal(t *testing.T) {
	notifier := &stubNotifier{}
	svc := newPipeline(&stubAnalyzer{analysis: demoAnalysis()}, &stubSender{}, failingRepo{}, notifier)

	_, err := svc.Process(context.Background(), anaSubmission())
	if err == nil {
		t.Fatal("expected fatal error on persistence failure")
	}

	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	if domainErr.Op != "leads.process.persist" {
		t.Fatalf("unexpected op %q", domainErr.Op)
	}
	if notifier.calls != 0 {
		t.Fatal("notifier must not fire when persistence failed")
	}
}

func TestProcessNotifierFailureIsSwallowed(t *testing.T) {
	repo := repository.NewMemoryRepository()
	notifier := &stubNotifier{err: errors.New("chat unreachable")}
	svc := newPipeline(&stubAnalyzer{analysis: demoAnalysis()}, &stubSender{}, repo, notifier)

	resp, err := svc.Process(context.Background(), anaSubmission())
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !resp.Success {
		t.Fatal("notifier failure must never affect the outcome")
	}
	if notifier.calls != 1 {
		t.Fatalf("notifier should have been fired once, got %d", notifier.calls)
	}
	if notifier.last.ID != resp.LeadID {
		t.Fatalf("notifier should receive the persisted record, got id %d", notifier.last.ID)
	}
}

func TestProcessAssignsUniqueLeadIDs(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := newPipeline(&stubAnalyzer{analysis: demoAnalysis()}, &stubSender{}, repo, nil)

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		resp, err := svc.Process(context.Background(), anaSubmission())
		if err != nil {
			t.Fatalf("Process failed: %v", err)
		}
		if seen[resp.LeadID] {
			t.Fatalf("lead id %d assigned twice", resp.LeadID)
		}
		seen[resp.LeadID] = true
	}
}

func TestProcessNormalizesPhone(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := newPipeline(&stubAnalyzer{analysis: demoAnalysis()}, &stubSender{}, repo, nil)

	submission := anaSubmission()
	submission.Phone = "(415) 555-2671"

	resp, err := svc.Process(context.Background(), submission)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	record, err := repo.GetByID(context.Background(), resp.LeadID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.Phone != "+14155552671" {
		t.Fatalf("expected normalized phone, got %q", record.Phone)
	}
}

func TestProcessStripsMarkupFromSubmission(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := newPipeline(&stubAnalyzer{analysis: demoAnalysis()}, &stubSender{}, repo, nil)

	submission := anaSubmission()
	submission.Company = "<b>Acme</b>"
	submission.Message = "<script>alert(1)</script>We need a demo ASAP"

	resp, err := svc.Process(context.Background(), submission)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	record, err := repo.GetByID(context.Background(), resp.LeadID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.Company != "Acme" {
		t.Fatalf("stored company %q", record.Company)
	}
	if strings.Contains(record.Message, "<script>") {
		t.Fatalf("stored message still carries markup: %q", record.Message)
	}
}

func TestStatsFromService(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := newPipeline(&stubAnalyzer{analysis: demoAnalysis()}, &stubSender{}, repo, nil)

	for i := 0; i < 3; i++ {
		if _, err := svc.Process(context.Background(), anaSubmission()); err != nil {
			t.Fatalf("Process failed: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalLeads != 3 {
		t.Fatalf("expected 3 leads, got %d", stats.TotalLeads)
	}
	if stats.EmailSuccessRate != 100 {
		t.Fatalf("expected 100%% success rate, got %f", stats.EmailSuccessRate)
	}
	if len(stats.RecentLeads) != 3 {
		t.Fatalf("expected 3 recent leads, got %d", len(stats.RecentLeads))
	}
}
