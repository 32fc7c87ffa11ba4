package service

import (
	"context"
	"journal-service/internal/domain/entity"
	"time"

	"github.com/google/uuid"
)

// GoalInput carries the editable fields of a goal
type GoalInput struct {
	Title       string
	Description *string
	CategoryID  *uuid.UUID
	Keywords    []string
	TargetType  entity.TargetType
	TargetValue int32
	TimePeriod  entity.TimePeriod
	EndDate     *time.Time
}

// Contribution records one goal an entry contributed to
type Contribution struct {
	Goal           *entity.Goal
	ValueAdded     int32
	NewlyCompleted bool
}

// GoalService defines goal business logic: CRUD, the matching pipeline and
// period rollover handling
type GoalService interface {
	// CreateGoal creates a new active goal
	CreateGoal(ctx context.Context, userID uuid.UUID, input GoalInput) (*entity.Goal, error)

	// ListGoals reconciles period rollovers, then returns all goals newest
	// first. This is the session-load read path.
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// UpdateGoal updates editable fields on a goal
	UpdateGoal(ctx context.Context, goalID, userID uuid.UUID, input GoalInput, status *entity.GoalStatus) (*entity.Goal, error)

	// DeleteGoal removes a goal
	DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error

	// GetProgress returns the ledger rows for a goal, newest first
	GetProgress(ctx context.Context, goalID, userID uuid.UUID) ([]*entity.GoalProgress, error)

	// ReconcilePeriods resets every active goal whose tracking period has
	// rolled over since its last update. Must run before entry evaluation
	// within a session. Returns the goals that were reset.
	ReconcilePeriods(ctx context.Context, userID uuid.UUID, now time.Time) ([]*entity.Goal, error)

	// EvaluateEntry matches a persisted entry against the user's active
	// goals and applies the resulting contributions
	EvaluateEntry(ctx context.Context, entry *entity.Entry) ([]Contribution, error)
}

// SummaryService defines the weekly summary state machine
type SummaryService interface {
	// CheckWeeklySummary runs the Monday-gated idempotent check for the
	// prior calendar week. Returns (summary, fresh): fresh is true only when
	// this call generated and persisted the summary.
	CheckWeeklySummary(ctx context.Context, userID uuid.UUID, now time.Time) (*entity.WeeklySummary, bool, error)

	// ListSummaries retrieves all summaries for a user, newest week first
	ListSummaries(ctx context.Context, userID uuid.UUID) ([]*entity.WeeklySummary, error)
}

// ProfileService defines profile business logic
type ProfileService interface {
	// GetProfile retrieves a user's profile, synthesizing a default when
	// none has been stored yet
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// UpdateProfile upserts profile fields and returns the stored row
	UpdateProfile(ctx context.Context, userID uuid.UUID, username, fullName, avatarURL *string) (*entity.Profile, error)
}

// EventPublisher publishes domain events for downstream consumers
// (notifications). Publication is best-effort; failures are logged, never
// propagated.
type EventPublisher interface {
	PublishGoalCompleted(ctx context.Context, goal *entity.Goal, entryID uuid.UUID) error
	PublishSummaryCreated(ctx context.Context, summary *entity.WeeklySummary) error
}

// SummaryLocker serializes summary generation for a given user and week
// across concurrent session loads
type SummaryLocker interface {
	// AcquireWeekLock returns true when the caller holds the lock for the
	// user's week window and may proceed to generate
	AcquireWeekLock(ctx context.Context, userID uuid.UUID, weekStart time.Time) (bool, error)
}
