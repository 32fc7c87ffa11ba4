package repository

import (
	"context"
	"journal-service/internal/domain/entity"
	"time"

	"github.com/google/uuid"
)

// GoalRepository defines the interface for goal persistence
type GoalRepository interface {
	// Create inserts a new goal
	Create(ctx context.Context, goal *entity.Goal) error

	// GetByIDAndUserID retrieves a goal scoped to its owner
	GetByIDAndUserID(ctx context.Context, goalID, userID uuid.UUID) (*entity.Goal, error)

	// GetByUserID retrieves all goals for a user, newest first
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// GetActiveByUserID retrieves a user's active goals
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// GetTrackingByUserID retrieves goals still tracking a period, i.e.
	// active or completed but not paused. Completed goals are included so
	// period reconciliation can reactivate them when the period rolls over.
	GetTrackingByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// Update persists editable goal fields
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete removes a goal and its ledger rows
	Delete(ctx context.Context, goalID, userID uuid.UUID) error

	// ResetPeriod zeroes current_value, reactivates the goal and stamps
	// updated_at, marking the start of a new tracking period
	ResetPeriod(ctx context.Context, goalID uuid.UUID, now time.Time) error

	// AddProgress appends a ledger row and increments the goal's
	// current_value in one transaction. The increment is a single atomic
	// statement so concurrent contributions cannot lose updates. Returns the
	// goal after the increment and whether this call transitioned it from a
	// non-completed status to completed.
	AddProgress(ctx context.Context, progress *entity.GoalProgress) (*entity.Goal, bool, error)
}

// GoalProgressRepository defines read access to the append-only ledger
type GoalProgressRepository interface {
	// GetByGoalID retrieves all ledger rows for a goal, newest first
	GetByGoalID(ctx context.Context, goalID uuid.UUID) ([]*entity.GoalProgress, error)

	// SumByGoalIDSince recomputes a goal's progress from the ledger rows
	// recorded at or after the given time
	SumByGoalIDSince(ctx context.Context, goalID uuid.UUID, since time.Time) (int32, error)
}
