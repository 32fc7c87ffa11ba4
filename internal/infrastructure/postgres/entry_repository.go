package postgres

import (
	"context"
	"errors"
	"fmt"
	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type entryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new PostgreSQL entry repository
func NewEntryRepository(pool *pgxpool.Pool) repository.EntryRepository {
	return &entryRepository{pool: pool}
}

func (r *entryRepository) Create(ctx context.Context, entry *entity.Entry) error {
	query := `
		INSERT INTO entries (
			id, user_id, text, activity, category_id,
			duration_minutes, sentiment, timestamp, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9
		)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.UserID, entry.Text, entry.Activity, entry.CategoryID,
		entry.DurationMinutes, entry.Sentiment, entry.Timestamp, entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	return nil
}

func (r *entryRepository) GetByIDAndUserID(ctx context.Context, entryID, userID uuid.UUID) (*entity.Entry, error) {
	query := `
		SELECT
			id, user_id, text, activity, category_id,
			duration_minutes, sentiment, timestamp, created_at
		FROM entries
		WHERE id = $1 AND user_id = $2
	`

	entry := &entity.Entry{}
	err := r.pool.QueryRow(ctx, query, entryID, userID).Scan(
		&entry.ID, &entry.UserID, &entry.Text, &entry.Activity, &entry.CategoryID,
		&entry.DurationMinutes, &entry.Sentiment, &entry.Timestamp, &entry.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("entry: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	return entry, nil
}

func (r *entryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Entry, error) {
	query := `
		SELECT
			id, user_id, text, activity, category_id,
			duration_minutes, sentiment, timestamp, created_at
		FROM entries
		WHERE user_id = $1
		ORDER BY timestamp DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *entryRepository) GetByUserIDInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Entry, error) {
	query := `
		SELECT
			id, user_id, text, activity, category_id,
			duration_minutes, sentiment, timestamp, created_at
		FROM entries
		WHERE user_id = $1
		  AND timestamp >= $2
		  AND timestamp <= $3
		ORDER BY timestamp ASC
	`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries in range: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *entryRepository) SetCategory(ctx context.Context, entryID, categoryID uuid.UUID) error {
	query := `
		UPDATE entries SET category_id = $1 WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, categoryID, entryID)
	if err != nil {
		return fmt.Errorf("failed to set entry category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("entry: %w", repository.ErrNotFound)
	}

	return nil
}

func (r *entryRepository) Delete(ctx context.Context, entryID, userID uuid.UUID) error {
	query := `
		DELETE FROM entries WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("entry: %w", repository.ErrNotFound)
	}

	return nil
}

func (r *entryRepository) CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int32, error) {
	query := `
		SELECT COUNT(*) FROM entries WHERE category_id = $1
	`

	var count int32
	err := r.pool.QueryRow(ctx, query, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries by category: %w", err)
	}

	return count, nil
}

func (r *entryRepository) GetActiveUserIDs(ctx context.Context, since time.Time) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT user_id FROM entries WHERE timestamp >= $1
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get active users: %w", err)
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user ids: %w", err)
	}

	return userIDs, nil
}

func scanEntries(rows pgx.Rows) ([]*entity.Entry, error) {
	var entries []*entity.Entry
	for rows.Next() {
		entry := &entity.Entry{}
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Text, &entry.Activity, &entry.CategoryID,
			&entry.DurationMinutes, &entry.Sentiment, &entry.Timestamp, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}
