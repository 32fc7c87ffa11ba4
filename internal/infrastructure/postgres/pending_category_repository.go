package postgres

import (
	"context"
	"errors"
	"fmt"
	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pendingCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPendingCategoryRepository creates a new PostgreSQL pending category repository
func NewPendingCategoryRepository(pool *pgxpool.Pool) repository.PendingCategoryRepository {
	return &pendingCategoryRepository{pool: pool}
}

func (r *pendingCategoryRepository) Create(ctx context.Context, pending *entity.PendingCategory) error {
	query := `
		INSERT INTO pending_categories (
			id, user_id, suggested_name, reason, entry_id, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := r.pool.Exec(ctx, query,
		pending.ID, pending.UserID, pending.SuggestedName, pending.Reason,
		pending.EntryID, pending.Status, pending.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create pending category: %w", err)
	}

	return nil
}

func (r *pendingCategoryRepository) GetByIDAndUserID(ctx context.Context, pendingID, userID uuid.UUID) (*entity.PendingCategory, error) {
	query := `
		SELECT id, user_id, suggested_name, reason, entry_id, status, created_at
		FROM pending_categories
		WHERE id = $1 AND user_id = $2
	`

	pending := &entity.PendingCategory{}
	err := r.pool.QueryRow(ctx, query, pendingID, userID).Scan(
		&pending.ID, &pending.UserID, &pending.SuggestedName, &pending.Reason,
		&pending.EntryID, &pending.Status, &pending.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("pending category: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pending category: %w", err)
	}

	return pending, nil
}

func (r *pendingCategoryRepository) GetPendingByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.PendingCategory, error) {
	query := `
		SELECT id, user_id, suggested_name, reason, entry_id, status, created_at
		FROM pending_categories
		WHERE user_id = $1 AND status = 'pending'
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending categories: %w", err)
	}
	defer rows.Close()

	var pendings []*entity.PendingCategory
	for rows.Next() {
		pending := &entity.PendingCategory{}
		err := rows.Scan(
			&pending.ID, &pending.UserID, &pending.SuggestedName, &pending.Reason,
			&pending.EntryID, &pending.Status, &pending.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending category: %w", err)
		}
		pendings = append(pendings, pending)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending categories: %w", err)
	}

	return pendings, nil
}

func (r *pendingCategoryRepository) Delete(ctx context.Context, pendingID uuid.UUID) error {
	query := `
		DELETE FROM pending_categories WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, pendingID)
	if err != nil {
		return fmt.Errorf("failed to delete pending category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pending category: %w", repository.ErrNotFound)
	}

	return nil
}
