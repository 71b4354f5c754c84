package email

import (
	"context"
	"errors"
	"testing"

	"aurora_leads_backend/platform/config"
)

func TestNewSenderReturnsNoopWithoutCredentials(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.gmail.com", SMTPPort: 587}

	sender := NewSender(cfg)
	if _, ok := sender.(NoopSender); !ok {
		t.Fatalf("expected NoopSender, got %T", sender)
	}

	err := sender.SendLeadReply(context.Background(), "ana@x.com", "Ana", "Acme", "Hi Ana...")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNewSenderReturnsSMTPWithCredentials(t *testing.T) {
	cfg := &config.Config{
		SMTPHost:     "smtp.gmail.com",
		SMTPPort:     587,
		SMTPUser:     "aurora@example.com",
		SMTPPassword: "secret",
		FromEmail:    "aurora@example.com",
		FromName:     "Aurora Lead Response",
	}

	if _, ok := NewSender(cfg).(*SMTPSender); !ok {
		t.Fatal("expected SMTPSender with credentials present")
	}
}

func TestReplySubject(t *testing.T) {
	if got := ReplySubject("Acme"); got != "Re: Your inquiry from Acme" {
		t.Fatalf("unexpected subject %q", got)
	}
}
