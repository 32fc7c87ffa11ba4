package repository

import (
	"context"
	"journal-service/internal/domain/entity"
	"time"

	"github.com/google/uuid"
)

// SummaryRepository defines the interface for weekly summary persistence.
// Summaries are insert-only; no update path exists.
type SummaryRepository interface {
	// Create inserts a new weekly summary
	Create(ctx context.Context, summary *entity.WeeklySummary) error

	// GetByUserIDAndWeekStart retrieves the summary whose week_start date
	// matches the given day, or ErrNotFound
	GetByUserIDAndWeekStart(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*entity.WeeklySummary, error)

	// GetByUserID retrieves all summaries for a user, newest week first
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.WeeklySummary, error)
}

// ProfileRepository defines the interface for profile persistence
type ProfileRepository interface {
	// GetByID retrieves a profile, or ErrNotFound
	GetByID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// Upsert inserts or updates a profile and returns the stored row
	Upsert(ctx context.Context, profile *entity.Profile) (*entity.Profile, error)
}
