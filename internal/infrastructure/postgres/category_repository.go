package postgres

import (
	"context"
	"errors"
	"fmt"
	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(pool *pgxpool.Pool) repository.CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, color, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID, category.UserID, category.Name, category.Color, category.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category name taken: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, categoryID uuid.UUID) (*entity.Category, error) {
	query := `
		SELECT id, user_id, name, color, created_at
		FROM categories
		WHERE id = $1
	`

	category := &entity.Category{}
	err := r.pool.QueryRow(ctx, query, categoryID).Scan(
		&category.ID, &category.UserID, &category.Name, &category.Color, &category.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("category: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	query := `
		SELECT id, user_id, name, color, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		category := &entity.Category{}
		err := rows.Scan(
			&category.ID, &category.UserID, &category.Name, &category.Color, &category.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE user_id = $1 AND LOWER(TRIM(name)) = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, entity.NormalizeName(name)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}

	return exists, nil
}

func (r *categoryRepository) Delete(ctx context.Context, categoryID, userID uuid.UUID) error {
	query := `
		DELETE FROM categories WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, categoryID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("category in use: %w", repository.ErrConstraint)
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("category: %w", repository.ErrNotFound)
	}

	return nil
}

// Postgres error codes for constraint handling
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
