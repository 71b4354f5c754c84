package repository

import (
	"context"
	"sync"
	"time"

	"aurora_leads_backend/internal/leads/domain"
)

// MemoryRepository is an in-process leads store used when no DATABASE_URL is
// configured. Records do not survive a restart; everything else honors the
// same contract as the Postgres implementation, including strictly increasing
// identifiers under concurrent inserts.
type MemoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	records []domain.LeadRecord
}

// NewMemoryRepository creates an empty in-memory leads repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

// Insert appends one lead record and returns its assigned identifier.
func (r *MemoryRepository) Insert(_ context.Context, record domain.LeadRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = r.nextID
	record.CreatedAt = time.Now().UTC()
	r.nextID++
	r.records = append(r.records, record)

	return record.ID, nil
}

// GetByID retrieves a single lead record.
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (domain.LeadRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.ID == id {
			return record, nil
		}
	}
	return domain.LeadRecord{}, ErrNotFound
}

// Stats computes the read-only aggregate over all records.
func (r *MemoryRepository) Stats(_ context.Context) (domain.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := domain.Stats{
		TotalLeads:  int64(len(r.records)),
		RecentLeads: make([]domain.RecentLead, 0, 10),
	}

	var totalMs int64
	for _, record := range r.records {
		totalMs += record.ResponseTimeMs
		if record.EmailSent {
			stats.EmailsSent++
		}
	}
	if stats.TotalLeads > 0 {
		stats.AvgResponseTimeMs = totalMs / stats.TotalLeads
		stats.EmailSuccessRate = float64(stats.EmailsSent) / float64(stats.TotalLeads) * 100
	}

	// Records are appended in creation order; walk backwards for
	// most-recent-first.
	for i := len(r.records) - 1; i >= 0 && len(stats.RecentLeads) < 10; i-- {
		record := r.records[i]
		stats.RecentLeads = append(stats.RecentLeads, domain.RecentLead{
			Name:           record.Name,
			Company:        record.Company,
			Score:          record.Score,
			ResponseTimeMs: record.ResponseTimeMs,
			Timestamp:      record.CreatedAt,
		})
	}

	return stats, nil
}
