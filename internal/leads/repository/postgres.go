package repository

import (
	"context"
	"errors"

	"aurora_leads_backend/internal/leads/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository persists lead records in Postgres. Identity assignment
// relies on BIGSERIAL, so concurrent inserts never collide.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres-backed leads repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert appends one lead record and returns its store-assigned identifier.
func (r *PostgresRepository) Insert(ctx context.Context, record domain.LeadRecord) (int64, error) {
	var phone *string
	if record.Phone != "" {
		phone = &record.Phone
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO leads (name, email, company, message, phone, intent, score, draft_reply, email_sent, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, record.Name, record.Email, record.Company, record.Message, phone,
		string(record.Intent), record.Score, record.DraftReply, record.EmailSent, record.ResponseTimeMs,
	).Scan(&id)
	return id, err
}

// GetByID retrieves a single lead record.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (domain.LeadRecord, error) {
	var (
		record domain.LeadRecord
		phone  *string
		intent string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, company, message, phone, intent, score, draft_reply, email_sent, response_time_ms, created_at
		FROM leads
		WHERE id = $1
	`, id).Scan(
		&record.ID, &record.Name, &record.Email, &record.Company, &record.Message, &phone,
		&intent, &record.Score, &record.DraftReply, &record.EmailSent, &record.ResponseTimeMs, &record.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.LeadRecord{}, ErrNotFound
	}
	if err != nil {
		return domain.LeadRecord{}, err
	}

	if phone != nil {
		record.Phone = *phone
	}
	record.Intent = domain.Intent(intent)
	return record, nil
}

// Stats computes the read-only aggregate over all records.
func (r *PostgresRepository) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(AVG(response_time_ms), 0)::BIGINT,
		       COUNT(*) FILTER (WHERE email_sent)
		FROM leads
	`).Scan(&stats.TotalLeads, &stats.AvgResponseTimeMs, &stats.EmailsSent)
	if err != nil {
		return domain.Stats{}, err
	}

	if stats.TotalLeads > 0 {
		stats.EmailSuccessRate = float64(stats.EmailsSent) / float64(stats.TotalLeads) * 100
	}

	rows, err := r.pool.Query(ctx, `
		SELECT name, company, score, response_time_ms, created_at
		FROM leads
		ORDER BY created_at DESC, id DESC
		LIMIT 10
	`)
	if err != nil {
		return domain.Stats{}, err
	}
	defer rows.Close()

	stats.RecentLeads = make([]domain.RecentLead, 0, 10)
	for rows.Next() {
		var lead domain.RecentLead
		if err := rows.Scan(&lead.Name, &lead.Company, &lead.Score, &lead.ResponseTimeMs, &lead.Timestamp); err != nil {
			return domain.Stats{}, err
		}
		stats.RecentLeads = append(stats.RecentLeads, lead)
	}
	if err := rows.Err(); err != nil {
		return domain.Stats{}, err
	}

	return stats, nil
}
