// Package transport defines the wire-level DTOs for the leads module.
package transport

import (
	"time"

	"aurora_leads_backend/internal/leads/domain"
)

// SubmitLeadRequest is the request body for a lead submission. Bounds follow
// the public form contract; anything outside them is rejected before the
// pipeline runs.
type SubmitLeadRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company" validate:"required,min=2,max=100"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
}

// ToDomain converts the request into the immutable domain submission.
func (r SubmitLeadRequest) ToDomain() domain.LeadSubmission {
	return domain.LeadSubmission{
		Name:    r.Name,
		Email:   r.Email,
		Company: r.Company,
		Message: r.Message,
		Phone:   r.Phone,
	}
}

// SubmitLeadResponse is the success envelope returned to the caller.
type SubmitLeadResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	LeadID         int64  `json:"lead_id,omitempty"`
	ResponseTimeMs int64  `json:"response_time_ms,omitempty"`
}

// RecentLeadResponse is one reduced entry in the stats aggregate.
type RecentLeadResponse struct {
	Name           string    `json:"name"`
	Company        string    `json:"company"`
	Score          int       `json:"score"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	Timestamp      time.Time `json:"timestamp"`
}

// StatsResponse is the stats aggregate as served by GET /api/stats.
type StatsResponse struct {
	TotalLeads        int64                `json:"total_leads"`
	AvgResponseTimeMs int64                `json:"avg_response_time_ms"`
	EmailsSent        int64                `json:"emails_sent"`
	EmailSuccessRate  float64              `json:"email_success_rate"`
	RecentLeads       []RecentLeadResponse `json:"recent_leads"`
}

// StatsFromDomain maps the domain stats projection onto the wire shape.
func StatsFromDomain(stats domain.Stats) StatsResponse {
	recent := make([]RecentLeadResponse, len(stats.RecentLeads))
	for i, lead := range stats.RecentLeads {
		recent[i] = RecentLeadResponse{
			Name:           lead.Name,
			Company:        lead.Company,
			Score:          lead.Score,
			ResponseTimeMs: lead.ResponseTimeMs,
			Timestamp:      lead.Timestamp,
		}
	}

	return StatsResponse{
		TotalLeads:        stats.TotalLeads,
		AvgResponseTimeMs: stats.AvgResponseTimeMs,
		EmailsSent:        stats.EmailsSent,
		EmailSuccessRate:  stats.EmailSuccessRate,
		RecentLeads:       recent,
	}
}
