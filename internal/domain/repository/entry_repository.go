package repository

import (
	"context"
	"journal-service/internal/domain/entity"
	"time"

	"github.com/google/uuid"
)

// EntryRepository defines the interface for entry persistence
type EntryRepository interface {
	// Create inserts a new entry
	Create(ctx context.Context, entry *entity.Entry) error

	// GetByIDAndUserID retrieves an entry scoped to its owner
	GetByIDAndUserID(ctx context.Context, entryID, userID uuid.UUID) (*entity.Entry, error)

	// GetByUserID retrieves all entries for a user, newest first
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Entry, error)

	// GetByUserIDInRange retrieves entries within [from, to], oldest first
	GetByUserIDInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Entry, error)

	// SetCategory backfills the category reference on an entry
	SetCategory(ctx context.Context, entryID, categoryID uuid.UUID) error

	// Delete removes an entry. Ledger rows referencing it are left in place.
	Delete(ctx context.Context, entryID, userID uuid.UUID) error

	// CountByCategoryID returns how many entries reference a category
	CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int32, error)

	// GetActiveUserIDs returns the distinct users who logged entries at or
	// after the given time. Drives the periodic weekly summary sweep.
	GetActiveUserIDs(ctx context.Context, since time.Time) ([]uuid.UUID, error)
}
