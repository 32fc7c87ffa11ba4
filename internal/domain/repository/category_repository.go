package repository

import (
	"context"
	"journal-service/internal/domain/entity"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// Create inserts a new category
	Create(ctx context.Context, category *entity.Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, categoryID uuid.UUID) (*entity.Category, error)

	// GetByUserID retrieves all categories for a user
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// ExistsByName reports whether the user already has a category with the
	// given name, compared case-insensitively
	ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error)

	// Delete removes a category by ID
	Delete(ctx context.Context, categoryID, userID uuid.UUID) error
}

// PendingCategoryRepository defines the interface for category suggestion persistence
type PendingCategoryRepository interface {
	// Create inserts a new pending suggestion
	Create(ctx context.Context, pending *entity.PendingCategory) error

	// GetByIDAndUserID retrieves a suggestion scoped to its owner
	GetByIDAndUserID(ctx context.Context, pendingID, userID uuid.UUID) (*entity.PendingCategory, error)

	// GetPendingByUserID retrieves unresolved suggestions for a user
	GetPendingByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.PendingCategory, error)

	// Delete removes a resolved suggestion
	Delete(ctx context.Context, pendingID uuid.UUID) error
}
