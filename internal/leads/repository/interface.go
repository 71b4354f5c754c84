// Package repository provides data access for lead records.
package repository

import (
	"context"
	"errors"

	"aurora_leads_backend/internal/leads/domain"
)

// ErrNotFound is returned when a lead record does not exist.
var ErrNotFound = errors.New("lead record not found")

// LeadsRepository is the durable append-and-aggregate store for processed
// leads. Insert assigns a unique, strictly increasing identifier and must be
// safe under concurrent appends.
type LeadsRepository interface {
	Insert(ctx context.Context, record domain.LeadRecord) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.LeadRecord, error)
	Stats(ctx context.Context) (domain.Stats, error)
}
