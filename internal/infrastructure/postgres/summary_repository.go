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

type summaryRepository struct {
	pool *pgxpool.Pool
}

// NewSummaryRepository creates a new PostgreSQL weekly summary repository
func NewSummaryRepository(pool *pgxpool.Pool) repository.SummaryRepository {
	return &summaryRepository{pool: pool}
}

func (r *summaryRepository) Create(ctx context.Context, summary *entity.WeeklySummary) error {
	query := `
		INSERT INTO weekly_summaries (
			id, user_id, week_start, week_end,
			total_minutes, total_entries, active_days, top_category,
			ai_summary, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10
		)
	`

	_, err := r.pool.Exec(ctx, query,
		summary.ID, summary.UserID, summary.WeekStart, summary.WeekEnd,
		summary.TotalMinutes, summary.TotalEntries, summary.ActiveDays, summary.TopCategory,
		summary.AISummary, summary.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("summary exists for week: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("failed to create weekly summary: %w", err)
	}

	return nil
}

func (r *summaryRepository) GetByUserIDAndWeekStart(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*entity.WeeklySummary, error) {
	query := `
		SELECT
			id, user_id, week_start, week_end,
			total_minutes, total_entries, active_days, top_category,
			ai_summary, created_at
		FROM weekly_summaries
		WHERE user_id = $1 AND week_start::date = $2::date
	`

	summary := &entity.WeeklySummary{}
	err := r.pool.QueryRow(ctx, query, userID, weekStart).Scan(
		&summary.ID, &summary.UserID, &summary.WeekStart, &summary.WeekEnd,
		&summary.TotalMinutes, &summary.TotalEntries, &summary.ActiveDays, &summary.TopCategory,
		&summary.AISummary, &summary.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("weekly summary: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get weekly summary: %w", err)
	}

	return summary, nil
}

func (r *summaryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.WeeklySummary, error) {
	query := `
		SELECT
			id, user_id, week_start, week_end,
			total_minutes, total_entries, active_days, top_category,
			ai_summary, created_at
		FROM weekly_summaries
		WHERE user_id = $1
		ORDER BY week_start DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*entity.WeeklySummary
	for rows.Next() {
		summary := &entity.WeeklySummary{}
		err := rows.Scan(
			&summary.ID, &summary.UserID, &summary.WeekStart, &summary.WeekEnd,
			&summary.TotalMinutes, &summary.TotalEntries, &summary.ActiveDays, &summary.TopCategory,
			&summary.AISummary, &summary.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weekly summaries: %w", err)
	}

	return summaries, nil
}
