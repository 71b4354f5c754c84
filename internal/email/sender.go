// Package email provides outbound email delivery for lead replies.
package email

import (
	"context"
	"errors"

	"aurora_leads_backend/platform/config"
)

// ErrNotConfigured is returned by the NoopSender when SMTP credentials are
// missing. Callers treat it like any other delivery failure.
var ErrNotConfigured = errors.New("email: SMTP credentials not configured")

// Sender delivers the AI-drafted reply to a lead. Implementations report
// delivery failures as ordinary errors; nothing here is fatal to the caller.
type Sender interface {
	SendLeadReply(ctx context.Context, toEmail, toName, company, body string) error
}

// NoopSender is the disabled sender used when SMTP is not configured. Every
// send fails with ErrNotConfigured so the pipeline records emailSent=false.
type NoopSender struct{}

// SendLeadReply implements Sender.
func (NoopSender) SendLeadReply(context.Context, string, string, string, string) error {
	return ErrNotConfigured
}

// NewSender selects the sender implementation from configuration.
func NewSender(cfg config.MailConfig) Sender {
	if !cfg.IsMailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(cfg)
}
