package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	domainservice "journal-service/internal/domain/service"

	"github.com/google/uuid"
)

// fallbackNarrative replaces the AI narrative when generation fails
const fallbackNarrative = "You had a great week! Keep up the good work."

type summaryService struct {
	summaryRepo  repository.SummaryRepository
	entryRepo    repository.EntryRepository
	categoryRepo repository.CategoryRepository
	classifier   domainservice.Classifier
	locker       domainservice.SummaryLocker
	events       domainservice.EventPublisher
	minEntries   int
}

// NewSummaryService creates a new weekly summary service. minEntries is the
// qualifying activity threshold below which no summary is generated.
func NewSummaryService(
	summaryRepo repository.SummaryRepository,
	entryRepo repository.EntryRepository,
	categoryRepo repository.CategoryRepository,
	classifier domainservice.Classifier,
	locker domainservice.SummaryLocker,
	events domainservice.EventPublisher,
	minEntries int,
) domainservice.SummaryService {
	if minEntries <= 0 {
		minEntries = 5
	}
	return &summaryService{
		summaryRepo:  summaryRepo,
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
		classifier:   classifier,
		locker:       locker,
		events:       events,
		minEntries:   minEntries,
	}
}

func (s *summaryService) CheckWeeklySummary(ctx context.Context, userID uuid.UUID, now time.Time) (*entity.WeeklySummary, bool, error) {
	// The check runs unconditionally on every session load; the Monday gate
	// makes it a no-op the other six days.
	if now.Weekday() != time.Monday {
		return nil, false, nil
	}

	weekStart, weekEnd := PreviousWeekWindow(now)

	existing, err := s.summaryRepo.GetByUserIDAndWeekStart(ctx, userID, weekStart)
	if err == nil {
		// Already generated; never re-surface as fresh
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up weekly summary: %w", err)
	}

	if s.locker != nil {
		acquired, err := s.locker.AcquireWeekLock(ctx, userID, weekStart)
		if err != nil {
			// Lock backend unavailable: the existence check above still
			// bounds duplication, so generation proceeds
			log.Printf("Summary lock unavailable for user %s: %v", userID, err)
		} else if !acquired {
			// Another session load is generating this window right now
			return nil, false, nil
		}
	}

	entries, err := s.entryRepo.GetByUserIDInRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load week entries: %w", err)
	}

	if len(entries) < s.minEntries {
		// Too little activity to be worth summarizing
		return nil, false, nil
	}

	categoryNames, err := s.categoryNames(ctx, userID)
	if err != nil {
		log.Printf("Failed to load category names for summary: %v", err)
		categoryNames = map[uuid.UUID]string{}
	}

	stats := BuildWeekStats(entries, categoryNames, weekStart, weekEnd)

	narrative, err := s.classifier.SummarizeWeek(ctx, stats)
	if err != nil || narrative == "" {
		log.Printf("Narrative generation failed, using fallback: %v", err)
		narrative = fallbackNarrative
	}

	summary := &entity.WeeklySummary{
		ID:           uuid.New(),
		UserID:       userID,
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		TotalMinutes: stats.TotalMinutes,
		TotalEntries: stats.TotalEntries,
		ActiveDays:   stats.ActiveDays,
		TopCategory:  stats.TopCategory,
		AISummary:    &narrative,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.summaryRepo.Create(ctx, summary); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the insert race; hand back the winner without re-surfacing
			existing, lookupErr := s.summaryRepo.GetByUserIDAndWeekStart(ctx, userID, weekStart)
			if lookupErr != nil {
				return nil, false, lookupErr
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to persist weekly summary: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishSummaryCreated(ctx, summary); err != nil {
			log.Printf("Failed to publish summary created event: %v", err)
		}
	}

	return summary, true, nil
}

func (s *summaryService) ListSummaries(ctx context.Context, userID uuid.UUID) ([]*entity.WeeklySummary, error) {
	return s.summaryRepo.GetByUserID(ctx, userID)
}

func (s *summaryService) categoryNames(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]string, error) {
	categories, err := s.categoryRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

// PreviousWeekWindow computes the Monday-to-Sunday window preceding now:
// the previous Sunday at 23:59:59.999 as week end, six days earlier at
// midnight as week start. Valid on any day, though the generator only acts
// on Mondays.
func PreviousWeekWindow(now time.Time) (time.Time, time.Time) {
	thisWeek := entity.WeekStart(now)
	end := thisWeek.Add(-time.Millisecond)
	startDay := thisWeek.AddDate(0, 0, -7)
	start := time.Date(startDay.Year(), startDay.Month(), startDay.Day(), 0, 0, 0, 0, now.Location())
	return start, end
}

// BuildWeekStats aggregates one week of entries: totals, distinct active
// days, the category with the most minutes and the single busiest day. Ties
// go to the first-encountered group in entry order.
func BuildWeekStats(entries []*entity.Entry, categoryNames map[uuid.UUID]string, weekStart, weekEnd time.Time) entity.WeekStats {
	stats := entity.WeekStats{
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		TotalEntries: int32(len(entries)),
	}

	type categoryAgg struct {
		minutes    int32
		activities []string
	}

	byCategory := make(map[string]*categoryAgg)
	var categoryOrder []string
	byDay := make(map[string]int32)
	var dayOrder []string

	for _, entry := range entries {
		stats.TotalMinutes += entry.Duration()

		name := "Uncategorized"
		if entry.CategoryID != nil {
			if n, ok := categoryNames[*entry.CategoryID]; ok {
				name = n
			}
		}

		agg, ok := byCategory[name]
		if !ok {
			agg = &categoryAgg{}
			byCategory[name] = agg
			categoryOrder = append(categoryOrder, name)
		}
		agg.minutes += entry.Duration()
		if entry.Activity != "" {
			agg.activities = append(agg.activities, entry.Activity)
		}

		day := entry.Timestamp.Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			dayOrder = append(dayOrder, day)
		}
		byDay[day] += entry.Duration()
	}

	stats.ActiveDays = int32(len(byDay))

	best := int32(-1)
	for _, name := range categoryOrder {
		if byCategory[name].minutes > best {
			best = byCategory[name].minutes
			top := name
			stats.TopCategory = &top
			stats.TopCategoryMinutes = byCategory[name].minutes
			stats.TopCategoryActivities = byCategory[name].activities
		}
	}

	best = -1
	for _, day := range dayOrder {
		if byDay[day] > best {
			best = byDay[day]
			if d, err := time.ParseInLocation("2006-01-02", day, weekStart.Location()); err == nil {
				stats.BestDay = &d
				stats.BestDayMinutes = byDay[day]
			}
		}
	}

	return stats
}
