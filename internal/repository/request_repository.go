package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-suite/records-portal/internal/domain"
)

// RequestRepository encapsulates document-request persistence.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.DocumentRequest) error
	GetByID(ctx context.Context, id string) (*domain.DocumentRequest, error)
	// List returns every request, newest first.
	List(ctx context.Context) ([]domain.DocumentRequest, error)
	// UpdateStatus applies the new status and returns the updated record.
	// Returns pgx.ErrNoRows when no record has the id.
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.DocumentRequest, error)
	// CountByStatus returns the number of requests per status.
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

const requestColumns = `id, student_id, full_name, email, phone, document_type, purpose,
               delivery_method, additional_notes, status, created_at`

func (r *requestRepository) Create(ctx context.Context, request *domain.DocumentRequest) error {
	const query = `
        INSERT INTO document_requests (student_id, full_name, email, phone, document_type, purpose, delivery_method, additional_notes, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		request.StudentID,
		request.FullName,
		request.Email,
		request.Phone,
		request.DocumentType,
		request.Purpose,
		request.DeliveryMethod,
		request.AdditionalNotes,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.DocumentRequest, error) {
	const query = `
        SELECT ` + requestColumns + `
        FROM document_requests WHERE id=$1`
	var request domain.DocumentRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.StudentID,
		&request.FullName,
		&request.Email,
		&request.Phone,
		&request.DocumentType,
		&request.Purpose,
		&request.DeliveryMethod,
		&request.AdditionalNotes,
		&request.Status,
		&request.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) List(ctx context.Context) ([]domain.DocumentRequest, error) {
	const query = `
        SELECT ` + requestColumns + `
        FROM document_requests ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.DocumentRequest, error) {
	const query = `
        UPDATE document_requests SET status=$1 WHERE id=$2
        RETURNING ` + requestColumns
	var request domain.DocumentRequest
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(
		&request.ID,
		&request.StudentID,
		&request.FullName,
		&request.Email,
		&request.Phone,
		&request.DocumentType,
		&request.Purpose,
		&request.DeliveryMethod,
		&request.AdditionalNotes,
		&request.Status,
		&request.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int, error) {
	const query = `SELECT status, COUNT(*) FROM document_requests GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.RequestStatus]int)
	for rows.Next() {
		var status domain.RequestStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanRequests(rows pgx.Rows) ([]domain.DocumentRequest, error) {
	var result []domain.DocumentRequest
	for rows.Next() {
		var request domain.DocumentRequest
		if err := rows.Scan(
			&request.ID,
			&request.StudentID,
			&request.FullName,
			&request.Email,
			&request.Phone,
			&request.DocumentType,
			&request.Purpose,
			&request.DeliveryMethod,
			&request.AdditionalNotes,
			&request.Status,
			&request.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
