package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	domainservice "journal-service/internal/domain/service"

	"github.com/google/uuid"
)

type categoryFixture struct {
	svc       domainservice.CategoryService
	catRepo   *fakeCategoryRepo
	pending   *fakePendingRepo
	entryRepo *fakeEntryRepo
}

func newCategoryFixture(t *testing.T) *categoryFixture {
	t.Helper()
	f := &categoryFixture{
		catRepo:   &fakeCategoryRepo{},
		pending:   &fakePendingRepo{},
		entryRepo: &fakeEntryRepo{},
	}
	f.svc = NewCategoryService(f.catRepo, f.pending, f.entryRepo)
	return f
}

func TestGuestCategoriesAreTheDefaults(t *testing.T) {
	f := newCategoryFixture(t)

	categories, err := f.svc.ListCategories(context.Background(), entity.GuestUserID, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(categories) != 8 {
		t.Fatalf("expected 8 default categories, got %d", len(categories))
	}

	hasOther := false
	for _, c := range categories {
		if c.Name == "Other" {
			hasOther = true
		}
	}
	if !hasOther {
		t.Fatal("defaults must include the Other fallback")
	}
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	f := newCategoryFixture(t)
	userID := uuid.New()

	if _, err := f.svc.CreateCategory(context.Background(), userID, "Fitness", "#007AFF"); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same name, different case and padding
	_, err := f.svc.CreateCategory(context.Background(), userID, "  fitness ", "")
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateCategoryDefaultsColor(t *testing.T) {
	f := newCategoryFixture(t)

	category, err := f.svc.CreateCategory(context.Background(), uuid.New(), "Reading", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if category.Color != defaultCategoryColor {
		t.Errorf("color = %q, want default", category.Color)
	}
}

func TestDeleteCategoryBlockedWhileReferenced(t *testing.T) {
	f := newCategoryFixture(t)
	userID := uuid.New()

	category, err := f.svc.CreateCategory(context.Background(), userID, "Work", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Now().UTC()
	f.entryRepo.entries = append(f.entryRepo.entries, &entity.Entry{
		ID: uuid.New(), UserID: userID, Text: "x", Activity: "x",
		CategoryID: &category.ID, Timestamp: now, CreatedAt: now,
	})

	err = f.svc.DeleteCategory(context.Background(), category.ID, userID)
	if !errors.Is(err, repository.ErrConstraint) {
		t.Fatalf("expected ErrConstraint, got %v", err)
	}

	// Remove the reference and the delete goes through
	f.entryRepo.entries = nil
	if err := f.svc.DeleteCategory(context.Background(), category.ID, userID); err != nil {
		t.Fatalf("delete after unreference: %v", err)
	}
}

func seedPending(f *categoryFixture, userID uuid.UUID, name string) (*entity.PendingCategory, *entity.Entry) {
	now := time.Now().UTC()
	entry := &entity.Entry{
		ID: uuid.New(), UserID: userID, Text: "x", Activity: "x",
		Timestamp: now, CreatedAt: now,
	}
	f.entryRepo.entries = append(f.entryRepo.entries, entry)

	pending := &entity.PendingCategory{
		ID:            uuid.New(),
		UserID:        userID,
		SuggestedName: name,
		EntryID:       entry.ID,
		Status:        entity.PendingStatusPending,
		CreatedAt:     now,
	}
	f.pending.pending = append(f.pending.pending, pending)
	return pending, entry
}

func TestApprovePendingCreatesAndBackfills(t *testing.T) {
	f := newCategoryFixture(t)
	userID := uuid.New()
	pending, entry := seedPending(f, userID, "Mindfulness")

	category, err := f.svc.ApprovePending(context.Background(), pending.ID, userID, "")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if category.Name != "Mindfulness" {
		t.Errorf("name = %q, want suggested name", category.Name)
	}
	if entry.CategoryID == nil || *entry.CategoryID != category.ID {
		t.Fatal("originating entry must be backfilled")
	}
	if len(f.pending.pending) != 0 {
		t.Fatal("resolved suggestion must be removed")
	}
}

func TestApprovePendingWithRename(t *testing.T) {
	f := newCategoryFixture(t)
	userID := uuid.New()
	pending, _ := seedPending(f, userID, "Mindfulness")

	category, err := f.svc.ApprovePending(context.Background(), pending.ID, userID, "Meditation")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if category.Name != "Meditation" {
		t.Errorf("name = %q, want the override", category.Name)
	}
}

func TestApprovePendingWrongOwner(t *testing.T) {
	f := newCategoryFixture(t)
	pending, _ := seedPending(f, uuid.New(), "Mindfulness")

	_, err := f.svc.ApprovePending(context.Background(), pending.ID, uuid.New(), "")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign suggestion, got %v", err)
	}
}

func TestRejectPendingWithoutBackfill(t *testing.T) {
	f := newCategoryFixture(t)
	userID := uuid.New()
	pending, entry := seedPending(f, userID, "Mindfulness")

	if err := f.svc.RejectPending(context.Background(), pending.ID, userID, nil); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if entry.CategoryID != nil {
		t.Fatal("entry must stay uncategorized on a plain reject")
	}
	if len(f.pending.pending) != 0 {
		t.Fatal("suggestion must be removed")
	}
}

func TestRejectPendingWithBackfill(t *testing.T) {
	f := newCategoryFixture(t)
	userID := uuid.New()
	pending, entry := seedPending(f, userID, "Mindfulness")

	existing, err := f.svc.CreateCategory(context.Background(), userID, "Health", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.RejectPending(context.Background(), pending.ID, userID, &existing.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if entry.CategoryID == nil || *entry.CategoryID != existing.ID {
		t.Fatal("entry must be backfilled with the chosen category")
	}
}

func TestRejectPendingForeignCategory(t *testing.T) {
	f := newCategoryFixture(t)
	userID := uuid.New()
	pending, _ := seedPending(f, userID, "Mindfulness")

	foreign, err := f.svc.CreateCategory(context.Background(), uuid.New(), "Health", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = f.svc.RejectPending(context.Background(), pending.ID, userID, &foreign.ID)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign category, got %v", err)
	}
	if len(f.pending.pending) != 1 {
		t.Fatal("suggestion must survive a failed reject")
	}
}
