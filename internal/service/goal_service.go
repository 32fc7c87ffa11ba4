package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	domainservice "journal-service/internal/domain/service"

	"github.com/google/uuid"
)

type goalService struct {
	goalRepo     repository.GoalRepository
	progressRepo repository.GoalProgressRepository
	classifier   domainservice.Classifier
	events       domainservice.EventPublisher
}

// NewGoalService creates a new goal service
func NewGoalService(
	goalRepo repository.GoalRepository,
	progressRepo repository.GoalProgressRepository,
	classifier domainservice.Classifier,
	events domainservice.EventPublisher,
) domainservice.GoalService {
	return &goalService{
		goalRepo:     goalRepo,
		progressRepo: progressRepo,
		classifier:   classifier,
		events:       events,
	}
}

func (s *goalService) CreateGoal(ctx context.Context, userID uuid.UUID, input domainservice.GoalInput) (*entity.Goal, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	if input.TargetValue <= 0 {
		return nil, fmt.Errorf("target_value must be positive")
	}

	switch input.TargetType {
	case entity.TargetTypeTime, entity.TargetTypeCount:
	default:
		return nil, fmt.Errorf("invalid target_type %q", input.TargetType)
	}

	switch input.TimePeriod {
	case entity.PeriodDaily, entity.PeriodWeekly, entity.PeriodMonthly:
	default:
		return nil, fmt.Errorf("invalid time_period %q", input.TimePeriod)
	}

	now := time.Now().UTC()

	goal := &entity.Goal{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		CategoryID:   input.CategoryID,
		Keywords:     input.Keywords,
		TargetType:   input.TargetType,
		TargetValue:  input.TargetValue,
		TimePeriod:   input.TimePeriod,
		Status:       entity.GoalStatusActive,
		CurrentValue: 0,
		StartDate:    now,
		EndDate:      input.EndDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	// Session-load read path: progress counters must be reset for any goal
	// whose period rolled over before the caller sees them.
	if _, err := s.ReconcilePeriods(ctx, userID, time.Now()); err != nil {
		return nil, err
	}

	goals, err := s.goalRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, goalID, userID uuid.UUID, input domainservice.GoalInput, status *entity.GoalStatus) (*entity.Goal, error) {
	goal, err := s.goalRepo.GetByIDAndUserID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) != "" {
		goal.Title = input.Title
	}
	if input.Description != nil {
		goal.Description = input.Description
	}
	goal.CategoryID = input.CategoryID
	goal.Keywords = input.Keywords

	if input.TargetType != "" {
		goal.TargetType = input.TargetType
	}
	if input.TargetValue > 0 {
		goal.TargetValue = input.TargetValue
	}
	if input.TimePeriod != "" {
		goal.TimePeriod = input.TimePeriod
	}
	if input.EndDate != nil {
		goal.EndDate = input.EndDate
	}

	if status != nil {
		switch *status {
		case entity.GoalStatusActive, entity.GoalStatusCompleted, entity.GoalStatusPaused:
			goal.Status = *status
		default:
			return nil, fmt.Errorf("invalid status %q", *status)
		}
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return goal, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error {
	if _, err := s.goalRepo.GetByIDAndUserID(ctx, goalID, userID); err != nil {
		return err
	}

	return s.goalRepo.Delete(ctx, goalID, userID)
}

func (s *goalService) GetProgress(ctx context.Context, goalID, userID uuid.UUID) ([]*entity.GoalProgress, error) {
	// Verify ownership
	if _, err := s.goalRepo.GetByIDAndUserID(ctx, goalID, userID); err != nil {
		return nil, err
	}

	return s.progressRepo.GetByGoalID(ctx, goalID)
}

func (s *goalService) ReconcilePeriods(ctx context.Context, userID uuid.UUID, now time.Time) ([]*entity.Goal, error) {
	goals, err := s.goalRepo.GetTrackingByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals for reconciliation: %w", err)
	}

	var reset []*entity.Goal
	for _, goal := range goals {
		if !goal.PeriodElapsed(now) {
			continue
		}

		// New period: zero the counter and reactivate. A goal completed in
		// the prior period re-enters active; completion is scoped to a
		// period, not permanent.
		if err := s.goalRepo.ResetPeriod(ctx, goal.ID, now); err != nil {
			log.Printf("Failed to reset period for goal %s: %v", goal.ID, err)
			continue
		}

		goal.CurrentValue = 0
		goal.Status = entity.GoalStatusActive
		goal.UpdatedAt = now
		reset = append(reset, goal)
	}

	return reset, nil
}

func (s *goalService) EvaluateEntry(ctx context.Context, entry *entity.Entry) ([]domainservice.Contribution, error) {
	goals, err := s.goalRepo.GetActiveByUserID(ctx, entry.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active goals: %w", err)
	}

	now := time.Now()

	var contributions []domainservice.Contribution
	for _, goal := range goals {
		// Contribution math assumes current_value belongs to the current
		// period. A goal the session-load reconcile hasn't touched yet is
		// reset here before it accumulates anything.
		if goal.PeriodElapsed(now) {
			if err := s.goalRepo.ResetPeriod(ctx, goal.ID, now); err != nil {
				log.Printf("Failed to reset lapsed goal %s: %v", goal.ID, err)
				continue
			}
			goal.CurrentValue = 0
			goal.Status = entity.GoalStatusActive
			goal.UpdatedAt = now
		}

		if !s.goalMatches(ctx, goal, entry) {
			continue
		}

		amount := contributionAmount(goal, entry)
		if amount == 0 {
			// Zero contribution is a no-op: no ledger row, no goal mutation
			continue
		}

		progress := &entity.GoalProgress{
			ID:         uuid.New(),
			GoalID:     goal.ID,
			EntryID:    entry.ID,
			ValueAdded: amount,
			RecordedAt: now.UTC(),
		}

		updated, newlyCompleted, err := s.goalRepo.AddProgress(ctx, progress)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Goal deleted between load and append; skip silently
				continue
			}
			return contributions, fmt.Errorf("failed to record goal progress: %w", err)
		}

		if newlyCompleted && s.events != nil {
			if err := s.events.PublishGoalCompleted(ctx, updated, entry.ID); err != nil {
				log.Printf("Failed to publish goal completed event for goal %s: %v", updated.ID, err)
			}
		}

		contributions = append(contributions, domainservice.Contribution{
			Goal:           updated,
			ValueAdded:     amount,
			NewlyCompleted: newlyCompleted,
		})
	}

	return contributions, nil
}

// goalMatches applies the three-tier matching policy. The tiers are mutually
// exclusive: a category filter decides alone even when keywords are also set,
// and the semantic check runs only for goals with neither.
func (s *goalService) goalMatches(ctx context.Context, goal *entity.Goal, entry *entity.Entry) bool {
	if goal.HasCategoryFilter() {
		return entry.CategoryID != nil && *entry.CategoryID == *goal.CategoryID
	}

	if goal.HasKeywords() {
		activity := strings.ToLower(entry.Activity)
		for _, keyword := range goal.Keywords {
			kw := entity.NormalizeName(keyword)
			if kw != "" && strings.Contains(activity, kw) {
				return true
			}
		}
		return false
	}

	var description string
	if goal.Description != nil {
		description = *goal.Description
	}

	matched, err := s.classifier.MatchGoal(ctx, entry.Activity, goal.Title, description)
	if err != nil {
		log.Printf("Semantic goal match failed for goal %s: %v", goal.ID, err)
		return false
	}

	return matched
}

func contributionAmount(goal *entity.Goal, entry *entity.Entry) int32 {
	if goal.TargetType == entity.TargetTypeTime {
		return entry.Duration()
	}
	return 1
}
