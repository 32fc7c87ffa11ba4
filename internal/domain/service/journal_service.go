package service

import (
	"context"
	"journal-service/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateEntryInput carries a new note plus optional caller-supplied
// structure. Guests never hit the classification gateway, so their clients
// may pass the derived fields (and a category label hint) directly.
type CreateEntryInput struct {
	Text            string
	Activity        *string
	DurationMinutes *int32
	Sentiment       *entity.Sentiment
	CategoryHint    *string // guest mode: category label to match by name
}

// CreateEntryResult is the outcome of the entry-creation pipeline
type CreateEntryResult struct {
	Entry *entity.Entry

	// PendingCategory is set when classification was low-confidence and a
	// suggestion was raised instead of resolving a category
	PendingCategory *entity.PendingCategory

	// CompletedGoal is the first goal this entry newly completed, if any.
	// At most one is surfaced per submission.
	CompletedGoal *entity.Goal
}

// EntryService defines the entry pipeline business logic
type EntryService interface {
	// CreateEntry runs the full pipeline: parse, resolve category, persist,
	// raise a pending suggestion when needed, then evaluate active goals
	CreateEntry(ctx context.Context, userID uuid.UUID, isGuest bool, input CreateEntryInput) (*CreateEntryResult, error)

	// ListEntries retrieves a user's entries, newest first
	ListEntries(ctx context.Context, userID uuid.UUID) ([]*entity.Entry, error)

	// DeleteEntry removes an entry. Ledger rows referencing it are kept and
	// goal totals are not decremented.
	DeleteEntry(ctx context.Context, entryID, userID uuid.UUID) error

	// Suggestions returns frequency-ranked quick-log suggestions derived
	// from the user's recent entries
	Suggestions(ctx context.Context, userID uuid.UUID) ([]Suggestion, error)
}

// Suggestion is a quick-log shortcut derived from recent activity
type Suggestion struct {
	Activity    string
	CategoryID  *uuid.UUID
	AvgDuration int32
	Frequency   int32
}

// CategoryService defines category lifecycle business logic
type CategoryService interface {
	// ListCategories retrieves a user's categories; guests get the default set
	ListCategories(ctx context.Context, userID uuid.UUID, isGuest bool) ([]*entity.Category, error)

	// CreateCategory creates a category; duplicate names per user are rejected
	CreateCategory(ctx context.Context, userID uuid.UUID, name, color string) (*entity.Category, error)

	// DeleteCategory removes a category; rejected while entries reference it
	DeleteCategory(ctx context.Context, categoryID, userID uuid.UUID) error

	// ListPending retrieves unresolved category suggestions
	ListPending(ctx context.Context, userID uuid.UUID) ([]*entity.PendingCategory, error)

	// ApprovePending creates a category under the given name, backfills the
	// suggesting entry's category reference and removes the suggestion
	ApprovePending(ctx context.Context, pendingID, userID uuid.UUID, name string) (*entity.Category, error)

	// RejectPending removes the suggestion; when categoryID is non-nil the
	// entry is backfilled with that existing category instead
	RejectPending(ctx context.Context, pendingID, userID uuid.UUID, categoryID *uuid.UUID) error
}
