package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-suite/records-portal/internal/domain"
)

// ProposalRepository encapsulates proposal metadata persistence.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *domain.Proposal) error
	List(ctx context.Context) ([]domain.Proposal, error)
}

type proposalRepository struct {
	pool *pgxpool.Pool
}

// NewProposalRepository instantiates repository.
func NewProposalRepository(pool *pgxpool.Pool) ProposalRepository {
	return &proposalRepository{pool: pool}
}

func (r *proposalRepository) Create(ctx context.Context, proposal *domain.Proposal) error {
	const query = `
        INSERT INTO proposals (title, company, description, storage_key, file_name, size_bytes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		proposal.Title,
		proposal.Company,
		proposal.Description,
		proposal.StorageKey,
		proposal.FileName,
		proposal.SizeBytes,
	).Scan(&proposal.ID, &proposal.CreatedAt)
}

func (r *proposalRepository) List(ctx context.Context) ([]domain.Proposal, error) {
	const query = `
        SELECT id, title, company, description, storage_key, file_name, size_bytes, created_at
        FROM proposals ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Proposal
	for rows.Next() {
		var proposal domain.Proposal
		if err := rows.Scan(
			&proposal.ID,
			&proposal.Title,
			&proposal.Company,
			&proposal.Description,
			&proposal.StorageKey,
			&proposal.FileName,
			&proposal.SizeBytes,
			&proposal.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, proposal)
	}
	return result, rows.Err()
}
