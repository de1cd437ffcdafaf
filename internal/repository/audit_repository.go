package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-suite/records-portal/internal/domain"
)

// AuditRepository persists request status transitions for the audit trail.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.RequestAudit) error
	ListByRequest(ctx context.Context, requestID string) ([]domain.RequestAudit, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository instantiates the repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Create(ctx context.Context, entry *domain.RequestAudit) error {
	const query = `
        INSERT INTO request_audit (request_id, old_status, new_status, staff_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.RequestID,
		entry.OldStatus,
		entry.NewStatus,
		entry.StaffID,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *auditRepository) ListByRequest(ctx context.Context, requestID string) ([]domain.RequestAudit, error) {
	const query = `
        SELECT id, request_id, old_status, new_status, staff_id, created_at
        FROM request_audit WHERE request_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RequestAudit
	for rows.Next() {
		var entry domain.RequestAudit
		if err := rows.Scan(
			&entry.ID,
			&entry.RequestID,
			&entry.OldStatus,
			&entry.NewStatus,
			&entry.StaffID,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
