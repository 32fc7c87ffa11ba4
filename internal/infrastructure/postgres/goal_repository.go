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

const goalColumns = `
	id, user_id, title, description, category_id, keywords,
	target_type, target_value, time_period, status, current_value,
	start_date, end_date, created_at, updated_at
`

type goalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new PostgreSQL goal repository
func NewGoalRepository(pool *pgxpool.Pool) repository.GoalRepository {
	return &goalRepository{pool: pool}
}

func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	query := `
		INSERT INTO goals (
			id, user_id, title, description, category_id, keywords,
			target_type, target_value, time_period, status, current_value,
			start_date, end_date, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15
		)
	`

	_, err := r.pool.Exec(ctx, query,
		goal.ID, goal.UserID, goal.Title, goal.Description, goal.CategoryID, goal.Keywords,
		goal.TargetType, goal.TargetValue, goal.TimePeriod, goal.Status, goal.CurrentValue,
		goal.StartDate, goal.EndDate, goal.CreatedAt, goal.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

func (r *goalRepository) GetByIDAndUserID(ctx context.Context, goalID, userID uuid.UUID) (*entity.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`

	goal, err := scanGoalRow(r.pool.QueryRow(ctx, query, goalID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("goal: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return goal, nil
}

func (r *goalRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	return r.queryGoals(ctx, query, userID)
}

func (r *goalRepository) GetActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE user_id = $1 AND status = 'active'
		ORDER BY created_at DESC
	`

	return r.queryGoals(ctx, query, userID)
}

func (r *goalRepository) GetTrackingByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE user_id = $1 AND status IN ('active', 'completed')
		ORDER BY created_at DESC
	`

	return r.queryGoals(ctx, query, userID)
}

func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	query := `
		UPDATE goals SET
			title = $1,
			description = $2,
			category_id = $3,
			keywords = $4,
			target_type = $5,
			target_value = $6,
			time_period = $7,
			status = $8,
			end_date = $9,
			updated_at = $10
		WHERE id = $11 AND user_id = $12
	`

	result, err := r.pool.Exec(ctx, query,
		goal.Title, goal.Description, goal.CategoryID, goal.Keywords,
		goal.TargetType, goal.TargetValue, goal.TimePeriod, goal.Status,
		goal.EndDate, time.Now().UTC(), goal.ID, goal.UserID,
	)

	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("goal: %w", repository.ErrNotFound)
	}

	return nil
}

func (r *goalRepository) Delete(ctx context.Context, goalID, userID uuid.UUID) error {
	query := `
		DELETE FROM goals WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("goal: %w", repository.ErrNotFound)
	}

	return nil
}

func (r *goalRepository) ResetPeriod(ctx context.Context, goalID uuid.UUID, now time.Time) error {
	query := `
		UPDATE goals SET
			current_value = 0,
			status = 'active',
			updated_at = $1
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, now.UTC(), goalID)
	if err != nil {
		return fmt.Errorf("failed to reset goal period: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("goal: %w", repository.ErrNotFound)
	}

	return nil
}

func (r *goalRepository) AddProgress(ctx context.Context, progress *entity.GoalProgress) (*entity.Goal, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin progress transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO goal_progress (id, goal_id, entry_id, value_added, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = tx.Exec(ctx, insert,
		progress.ID, progress.GoalID, progress.EntryID, progress.ValueAdded, progress.RecordedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, false, fmt.Errorf("goal: %w", repository.ErrNotFound)
		}
		return nil, false, fmt.Errorf("failed to append ledger row: %w", err)
	}

	// Relative increment, not read-modify-write: concurrent contributions
	// to the same goal serialize on the row without losing updates.
	increment := `
		UPDATE goals SET
			current_value = current_value + $1,
			updated_at = $2
		WHERE id = $3
		RETURNING ` + goalColumns

	goal, err := scanGoalRow(tx.QueryRow(ctx, increment, progress.ValueAdded, progress.RecordedAt, progress.GoalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, fmt.Errorf("goal: %w", repository.ErrNotFound)
		}
		return nil, false, fmt.Errorf("failed to increment goal progress: %w", err)
	}

	newlyCompleted := false
	if goal.CurrentValue >= goal.TargetValue && goal.Status != entity.GoalStatusCompleted {
		// The status guard makes the transition fire exactly once even when
		// two contributions cross the target concurrently
		complete := `
			UPDATE goals SET status = 'completed'
			WHERE id = $1 AND status <> 'completed'
		`

		result, err := tx.Exec(ctx, complete, progress.GoalID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to mark goal completed: %w", err)
		}

		if result.RowsAffected() == 1 {
			newlyCompleted = true
			goal.Status = entity.GoalStatusCompleted
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to commit progress transaction: %w", err)
	}

	return goal, newlyCompleted, nil
}

func (r *goalRepository) queryGoals(ctx context.Context, query string, args ...interface{}) ([]*entity.Goal, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}
	defer rows.Close()

	var goals []*entity.Goal
	for rows.Next() {
		goal, err := scanGoalRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}

	return goals, nil
}

func scanGoalRow(row pgx.Row) (*entity.Goal, error) {
	goal := &entity.Goal{}
	err := row.Scan(
		&goal.ID, &goal.UserID, &goal.Title, &goal.Description, &goal.CategoryID, &goal.Keywords,
		&goal.TargetType, &goal.TargetValue, &goal.TimePeriod, &goal.Status, &goal.CurrentValue,
		&goal.StartDate, &goal.EndDate, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return goal, nil
}
