package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	domainservice "journal-service/internal/domain/service"

	"github.com/google/uuid"
)

const defaultCategoryColor = "#6B7280"

type categoryService struct {
	categoryRepo repository.CategoryRepository
	pendingRepo  repository.PendingCategoryRepository
	entryRepo    repository.EntryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	pendingRepo repository.PendingCategoryRepository,
	entryRepo repository.EntryRepository,
) domainservice.CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		pendingRepo:  pendingRepo,
		entryRepo:    entryRepo,
	}
}

func (s *categoryService) ListCategories(ctx context.Context, userID uuid.UUID, isGuest bool) ([]*entity.Category, error) {
	if isGuest {
		return entity.DefaultGuestCategories(), nil
	}

	return s.categoryRepo.GetByUserID(ctx, userID)
}

func (s *categoryService) CreateCategory(ctx context.Context, userID uuid.UUID, name, color string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if color == "" {
		color = defaultCategoryColor
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("category %q already exists: %w", name, repository.ErrDuplicate)
	}

	category := &entity.Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID, userID uuid.UUID) error {
	count, err := s.entryRepo.CountByCategoryID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to count category references: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("category is referenced by %d entries: %w", count, repository.ErrConstraint)
	}

	return s.categoryRepo.Delete(ctx, categoryID, userID)
}

func (s *categoryService) ListPending(ctx context.Context, userID uuid.UUID) ([]*entity.PendingCategory, error) {
	return s.pendingRepo.GetPendingByUserID(ctx, userID)
}

func (s *categoryService) ApprovePending(ctx context.Context, pendingID, userID uuid.UUID, name string) (*entity.Category, error) {
	pending, err := s.pendingRepo.GetByIDAndUserID(ctx, pendingID, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		name = pending.SuggestedName
	}

	category, err := s.CreateCategory(ctx, userID, name, defaultCategoryColor)
	if err != nil {
		return nil, err
	}

	// Backfill the suggesting entry so it ends up categorized
	if err := s.entryRepo.SetCategory(ctx, pending.EntryID, category.ID); err != nil {
		return nil, fmt.Errorf("failed to backfill entry category: %w", err)
	}

	if err := s.pendingRepo.Delete(ctx, pendingID); err != nil {
		return nil, fmt.Errorf("failed to remove resolved suggestion: %w", err)
	}

	return category, nil
}

func (s *categoryService) RejectPending(ctx context.Context, pendingID, userID uuid.UUID, categoryID *uuid.UUID) error {
	pending, err := s.pendingRepo.GetByIDAndUserID(ctx, pendingID, userID)
	if err != nil {
		return err
	}

	if categoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if category.UserID != userID {
			return fmt.Errorf("category does not belong to user: %w", repository.ErrNotFound)
		}

		if err := s.entryRepo.SetCategory(ctx, pending.EntryID, category.ID); err != nil {
			return fmt.Errorf("failed to backfill entry category: %w", err)
		}
	}

	if err := s.pendingRepo.Delete(ctx, pendingID); err != nil {
		return fmt.Errorf("failed to remove resolved suggestion: %w", err)
	}

	return nil
}
