// Package domain provides core business types for the leads bounded context.
package domain

import "time"

// Intent is the coarse classification of what a lead wants.
type Intent string

const (
	IntentDemoRequest     Intent = "demo_request"
	IntentPricingInquiry  Intent = "pricing_inquiry"
	IntentSupportQuestion Intent = "support_question"
	IntentPartnership     Intent = "partnership"
	IntentGeneralInquiry  Intent = "general_inquiry"
	IntentUnknown         Intent = "unknown"
)

var knownIntents = map[Intent]struct{}{
	IntentDemoRequest:     {},
	IntentPricingInquiry:  {},
	IntentSupportQuestion: {},
	IntentPartnership:     {},
	IntentGeneralInquiry:  {},
	IntentUnknown:         {},
}

// ParseIntent maps a raw model-provided value onto the intent enumeration.
// Values outside the enumeration degrade to IntentUnknown rather than failing.
func ParseIntent(raw string) Intent {
	intent := Intent(raw)
	if _, ok := knownIntents[intent]; ok {
		return intent
	}
	return IntentUnknown
}

// LeadSubmission is the caller-supplied lead form data, immutable once it
// passes validation at the HTTP boundary.
type LeadSubmission struct {
	Name    string
	Email   string
	Company string
	Message string
	Phone   string // optional
}

// Analysis is the analyzer's verdict on a submission: classification, a 1-10
// quality score, and the drafted reply email body. It lives only for the
// duration of one pipeline run.
type Analysis struct {
	Intent     Intent
	Score      int
	DraftReply string
}

// LeadRecord is the durable, append-only record of one processed lead.
// Created exactly once per accepted submission that completed analysis;
// never mutated after insert.
type LeadRecord struct {
	ID        int64
	CreatedAt time.Time

	LeadSubmission

	Intent         Intent
	Score          int
	DraftReply     string
	EmailSent      bool
	ResponseTimeMs int64
}

// RecentLead is the reduced view of a record exposed by the stats aggregate.
type RecentLead struct {
	Name           string
	Company        string
	Score          int
	ResponseTimeMs int64
	Timestamp      time.Time
}

// Stats is the read-only projection over the record store.
type Stats struct {
	TotalLeads        int64
	AvgResponseTimeMs int64
	EmailsSent        int64
	EmailSuccessRate  float64
	RecentLeads       []RecentLead
}
