package postgres

import (
	"context"
	"fmt"
	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type goalProgressRepository struct {
	pool *pgxpool.Pool
}

// NewGoalProgressRepository creates a new PostgreSQL goal progress repository
func NewGoalProgressRepository(pool *pgxpool.Pool) repository.GoalProgressRepository {
	return &goalProgressRepository{pool: pool}
}

func (r *goalProgressRepository) GetByGoalID(ctx context.Context, goalID uuid.UUID) ([]*entity.GoalProgress, error) {
	query := `
		SELECT id, goal_id, entry_id, value_added, recorded_at
		FROM goal_progress
		WHERE goal_id = $1
		ORDER BY recorded_at DESC
	`

	rows, err := r.pool.Query(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get goal progress: %w", err)
	}
	defer rows.Close()

	var progress []*entity.GoalProgress
	for rows.Next() {
		row := &entity.GoalProgress{}
		err := rows.Scan(&row.ID, &row.GoalID, &row.EntryID, &row.ValueAdded, &row.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal progress: %w", err)
		}
		progress = append(progress, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goal progress: %w", err)
	}

	return progress, nil
}

func (r *goalProgressRepository) SumByGoalIDSince(ctx context.Context, goalID uuid.UUID, since time.Time) (int32, error) {
	query := `
		SELECT COALESCE(SUM(value_added), 0)
		FROM goal_progress
		WHERE goal_id = $1 AND recorded_at >= $2
	`

	var sum int32
	err := r.pool.QueryRow(ctx, query, goalID, since).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum goal progress: %w", err)
	}

	return sum, nil
}
