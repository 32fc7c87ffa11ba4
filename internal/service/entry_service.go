package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	domainservice "journal-service/internal/domain/service"

	"github.com/google/uuid"
)

type entryService struct {
	entryRepo    repository.EntryRepository
	categoryRepo repository.CategoryRepository
	pendingRepo  repository.PendingCategoryRepository
	goals        domainservice.GoalService
	classifier   domainservice.Classifier
}

// NewEntryService creates a new entry service
func NewEntryService(
	entryRepo repository.EntryRepository,
	categoryRepo repository.CategoryRepository,
	pendingRepo repository.PendingCategoryRepository,
	goals domainservice.GoalService,
	classifier domainservice.Classifier,
) domainservice.EntryService {
	return &entryService{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
		pendingRepo:  pendingRepo,
		goals:        goals,
		classifier:   classifier,
	}
}

func (s *entryService) CreateEntry(ctx context.Context, userID uuid.UUID, isGuest bool, input domainservice.CreateEntryInput) (*domainservice.CreateEntryResult, error) {
	if input.Text == "" {
		return nil, fmt.Errorf("text is required")
	}

	parsed := s.parse(ctx, isGuest, input)
	categoryID, suggestion := s.resolveCategory(ctx, userID, isGuest, parsed.Activity, input.CategoryHint)

	now := time.Now().UTC()
	sentiment := parsed.Sentiment

	entry := &entity.Entry{
		ID:              uuid.New(),
		UserID:          userID,
		Text:            input.Text,
		Activity:        parsed.Activity,
		CategoryID:      categoryID,
		DurationMinutes: parsed.DurationMinutes,
		Sentiment:       &sentiment,
		Timestamp:       now,
		CreatedAt:       now,
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	result := &domainservice.CreateEntryResult{Entry: entry}

	if suggestion != nil {
		pending := s.raiseSuggestion(ctx, userID, entry.ID, suggestion, now)
		result.PendingCategory = pending
	}

	// Goal tracking is an authenticated feature; guest data never reaches it
	if !isGuest {
		contributions, err := s.goals.EvaluateEntry(ctx, entry)
		if err != nil {
			// The entry is already persisted; a failed evaluation must not
			// undo it or surface as a hard failure
			log.Printf("Goal evaluation failed for entry %s: %v", entry.ID, err)
		}

		for _, c := range contributions {
			if c.NewlyCompleted {
				// At most one completion is surfaced per submission
				result.CompletedGoal = c.Goal
				break
			}
		}
	}

	return result, nil
}

// parse derives the structured attributes of a new entry. Guests never hit
// the classification gateway; authenticated entries fall back to the raw
// text when the gateway is unreachable.
func (s *entryService) parse(ctx context.Context, isGuest bool, input domainservice.CreateEntryInput) entity.ParsedEntry {
	parsed := entity.FallbackParse(input.Text)

	if input.Activity == nil && !isGuest {
		aiParsed, err := s.classifier.ParseEntry(ctx, input.Text)
		if err != nil {
			log.Printf("Entry parsing failed, using raw text: %v", err)
		} else {
			parsed = aiParsed
		}
	}

	// Caller-supplied structure wins over anything derived
	if input.Activity != nil && *input.Activity != "" {
		parsed.Activity = *input.Activity
	}
	if input.DurationMinutes != nil {
		parsed.DurationMinutes = input.DurationMinutes
	}
	if input.Sentiment != nil {
		parsed.Sentiment = *input.Sentiment
	}

	return parsed
}

// resolveCategory decides the final category reference for a new entry, or
// produces a pending suggestion. For the authenticated path exactly one of
// the two results is populated unless the gateway was unreachable, in which
// case the entry stays uncategorized with no suggestion raised.
func (s *entryService) resolveCategory(ctx context.Context, userID uuid.UUID, isGuest bool, activity string, hint *string) (*uuid.UUID, *domainservice.CategoryMatch) {
	if isGuest {
		return resolveGuestCategory(entity.DefaultGuestCategories(), hint), nil
	}

	categories, err := s.categoryRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("Failed to load categories for matching: %v", err)
		return nil, nil
	}

	match, err := s.classifier.MatchCategory(ctx, activity, categories)
	if err != nil {
		// Gateway unreachable: leave the entry uncategorized rather than
		// raising a suggestion the gateway never made
		log.Printf("Category matching failed: %v", err)
		return nil, nil
	}

	if match.Matches && match.CategoryName != "" {
		wanted := entity.NormalizeName(match.CategoryName)
		for _, c := range categories {
			if entity.NormalizeName(c.Name) == wanted {
				id := c.ID
				return &id, nil
			}
		}
	}

	// Low-confidence answer: keep the entry uncategorized and raise a
	// suggestion for the user to resolve
	return nil, &match
}

// resolveGuestCategory is the deterministic guest-mode resolver: exact
// lower-cased match of the supplied label, degrading to the "Other" category,
// or nil if even that is absent.
func resolveGuestCategory(categories []*entity.Category, hint *string) *uuid.UUID {
	label := "Other"
	if hint != nil && *hint != "" {
		label = *hint
	}

	wanted := entity.NormalizeName(label)
	var other *uuid.UUID
	for _, c := range categories {
		name := entity.NormalizeName(c.Name)
		if name == wanted {
			id := c.ID
			return &id
		}
		if name == "other" {
			id := c.ID
			other = &id
		}
	}

	return other
}

func (s *entryService) raiseSuggestion(ctx context.Context, userID, entryID uuid.UUID, match *domainservice.CategoryMatch, now time.Time) *entity.PendingCategory {
	name := match.SuggestedCategory
	if name == "" {
		name = match.CategoryName
	}
	if name == "" {
		name = "New Category"
	}

	pending := &entity.PendingCategory{
		ID:            uuid.New(),
		UserID:        userID,
		SuggestedName: name,
		EntryID:       entryID,
		Status:        entity.PendingStatusPending,
		CreatedAt:     now,
	}
	if match.Reasoning != "" {
		reason := match.Reasoning
		pending.Reason = &reason
	}

	if err := s.pendingRepo.Create(ctx, pending); err != nil {
		// Losing the suggestion is acceptable; losing the entry is not
		log.Printf("Failed to save category suggestion for entry %s: %v", entryID, err)
		return nil
	}

	return pending
}

func (s *entryService) ListEntries(ctx context.Context, userID uuid.UUID) ([]*entity.Entry, error) {
	return s.entryRepo.GetByUserID(ctx, userID)
}

func (s *entryService) DeleteEntry(ctx context.Context, entryID, userID uuid.UUID) error {
	// Ledger rows referencing this entry are deliberately left in place and
	// goal totals are not decremented; see the progress ledger design notes.
	return s.entryRepo.Delete(ctx, entryID, userID)
}
