// Package service orchestrates the lead-processing pipeline: analyze, reply,
// persist, notify.
package service

import (
	"context"
	"fmt"
	"time"

	"aurora_leads_backend/internal/email"
	"aurora_leads_backend/internal/leads/analyzer"
	"aurora_leads_backend/internal/leads/domain"
	"aurora_leads_backend/internal/leads/repository"
	"aurora_leads_backend/internal/leads/transport"
	"aurora_leads_backend/platform/apperr"
	"aurora_leads_backend/platform/logger"
	"aurora_leads_backend/platform/phone"
	"aurora_leads_backend/platform/sanitize"
)

const notifyTimeout = 5 * time.Second

// Notifier pushes a best-effort alert about a processed lead. Satisfied by
// telegram.Client.
type Notifier interface {
	NotifyLead(ctx context.Context, record domain.LeadRecord) error
}

// Service runs the lead pipeline. Each call to Process is one independent
// task; the only shared state between concurrent submissions is the
// repository.
type Service struct {
	analyzer analyzer.Analyzer
	sender   email.Sender
	repo     repository.LeadsRepository
	notifier Notifier
	log      *logger.Logger
}

// New creates the lead pipeline service. notifier may be nil.
func New(az analyzer.Analyzer, sender email.Sender, repo repository.LeadsRepository, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		analyzer: az,
		sender:   sender,
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Process runs the four pipeline steps in order and returns the caller's
// verdict.
//
// Analysis failure is fatal: nothing is persisted or sent. Email delivery
// failure is recorded as emailSent=false and processing continues.
// Persistence failure is fatal and surfaced, even though the lead may already
// have been analyzed and emailed; that work is not undone or retried.
// Notification failures are swallowed.
func (s *Service) Process(ctx context.Context, submission domain.LeadSubmission) (transport.SubmitLeadResponse, error) {
	start := time.Now()
	log := s.log.WithContext(ctx)

	// A caller disconnect must not abort an in-flight pipeline; once a lead
	// is accepted it is carried to a terminal outcome.
	ctx = context.WithoutCancel(ctx)

	// Submitted text reaches the model prompt, the outbound email, and the
	// sales alert; markup has no business in any of them.
	submission.Name = sanitize.Text(submission.Name)
	submission.Company = sanitize.Text(submission.Company)
	submission.Message = sanitize.Text(submission.Message)
	submission.Phone = phone.NormalizeE164(submission.Phone)

	// Step 1: analysis, fatal on failure. Without intent, score, and a reply
	// there is nothing meaningful to persist or send.
	analysis, err := s.analyzer.Analyze(ctx, submission)
	if err != nil {
		return transport.SubmitLeadResponse{}, apperr.Wrap(
			apperr.KindInternal,
			fmt.Sprintf("lead analysis failed: %v", err),
			err,
		).WithOp("leads.process.analyze")
	}

	// Step 2: email the drafted reply, non-fatal. An empty draft is never
	// sent; a blank email to a prospect is worse than none.
	emailSent := false
	switch {
	case analysis.DraftReply == "":
		log.Warn("skipping email send, analyzer produced empty draft reply", "email", submission.Email)
	default:
		if err := s.sender.SendLeadReply(ctx, submission.Email, submission.Name, submission.Company, analysis.DraftReply); err != nil {
			log.ExternalCallFailed("smtp", err)
		} else {
			emailSent = true
		}
	}

	// Caller-visible timing covers deciding and responding, not persistence
	// or notification overhead.
	responseTimeMs := time.Since(start).Milliseconds()

	// Step 3: persist exactly one record, fatal on failure. The caller must
	// know their lead was not durably recorded.
	record := domain.LeadRecord{
		LeadSubmission: submission,
		Intent:         analysis.Intent,
		Score:          analysis.Score,
		DraftReply:     analysis.DraftReply,
		EmailSent:      emailSent,
		ResponseTimeMs: responseTimeMs,
	}
	id, err := s.repo.Insert(ctx, record)
	if err != nil {
		log.DatabaseError("leads.insert", err)
		return transport.SubmitLeadResponse{}, apperr.Wrap(
			apperr.KindInternal,
			fmt.Sprintf("failed to record lead: %v", err),
			err,
		).WithOp("leads.process.persist")
	}
	record.ID = id

	// Step 4: notify the sales channel. Never affects the outcome.
	s.notify(ctx, record)

	return transport.SubmitLeadResponse{
		Success:        true,
		Message:        fmt.Sprintf("Thank you! We've responded to %s in %dms", submission.Email, responseTimeMs),
		LeadID:         id,
		ResponseTimeMs: responseTimeMs,
	}, nil
}

func (s *Service) notify(ctx context.Context, record domain.LeadRecord) {
	if s.notifier == nil {
		return
	}

	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyLead(notifyCtx, record); err != nil {
		s.log.WithContext(ctx).ExternalCallFailed("telegram", err)
	}
}

// Stats serves the read-only projection over the record store.
func (s *Service) Stats(ctx context.Context) (transport.StatsResponse, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("leads.stats", err)
		return transport.StatsResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load stats", err).WithOp("leads.stats")
	}

	return transport.StatsFromDomain(stats), nil
}
