package service

import (
	"context"
	"fmt"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	domainservice "journal-service/internal/domain/service"

	"github.com/google/uuid"
)

// In-memory repository fakes mirroring the postgres implementations' error
// semantics closely enough for service-level tests.

type fakeEntryRepo struct {
	entries   []*entity.Entry
	createErr error
}

func (r *fakeEntryRepo) Create(_ context.Context, entry *entity.Entry) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeEntryRepo) GetByIDAndUserID(_ context.Context, entryID, userID uuid.UUID) (*entity.Entry, error) {
	for _, e := range r.entries {
		if e.ID == entryID && e.UserID == userID {
			return e, nil
		}
	}
	return nil, fmt.Errorf("entry: %w", repository.ErrNotFound)
}

func (r *fakeEntryRepo) GetByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Entry, error) {
	var out []*entity.Entry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].UserID == userID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) GetByUserIDInRange(_ context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Entry, error) {
	var out []*entity.Entry
	for _, e := range r.entries {
		if e.UserID == userID && !e.Timestamp.Before(from) && !e.Timestamp.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) SetCategory(_ context.Context, entryID, categoryID uuid.UUID) error {
	for _, e := range r.entries {
		if e.ID == entryID {
			id := categoryID
			e.CategoryID = &id
			return nil
		}
	}
	return fmt.Errorf("entry: %w", repository.ErrNotFound)
}

func (r *fakeEntryRepo) Delete(_ context.Context, entryID, userID uuid.UUID) error {
	for i, e := range r.entries {
		if e.ID == entryID && e.UserID == userID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("entry: %w", repository.ErrNotFound)
}

func (r *fakeEntryRepo) CountByCategoryID(_ context.Context, categoryID uuid.UUID) (int32, error) {
	var count int32
	for _, e := range r.entries {
		if e.CategoryID != nil && *e.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *fakeEntryRepo) GetActiveUserIDs(_ context.Context, since time.Time) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, e := range r.entries {
		if !e.Timestamp.Before(since) && !seen[e.UserID] {
			seen[e.UserID] = true
			out = append(out, e.UserID)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories []*entity.Category
	listErr    error
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	for _, c := range r.categories {
		if c.UserID == category.UserID && entity.NormalizeName(c.Name) == entity.NormalizeName(category.Name) {
			return fmt.Errorf("category: %w", repository.ErrDuplicate)
		}
	}
	r.categories = append(r.categories, category)
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, categoryID uuid.UUID) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.ID == categoryID {
			return c, nil
		}
	}
	return nil, fmt.Errorf("category: %w", repository.ErrNotFound)
}

func (r *fakeCategoryRepo) GetByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*entity.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) ExistsByName(_ context.Context, userID uuid.UUID, name string) (bool, error) {
	for _, c := range r.categories {
		if c.UserID == userID && entity.NormalizeName(c.Name) == entity.NormalizeName(name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, categoryID, userID uuid.UUID) error {
	for i, c := range r.categories {
		if c.ID == categoryID && c.UserID == userID {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category: %w", repository.ErrNotFound)
}

type fakePendingRepo struct {
	pending   []*entity.PendingCategory
	createErr error
}

func (r *fakePendingRepo) Create(_ context.Context, pending *entity.PendingCategory) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.pending = append(r.pending, pending)
	return nil
}

func (r *fakePendingRepo) GetByIDAndUserID(_ context.Context, pendingID, userID uuid.UUID) (*entity.PendingCategory, error) {
	for _, p := range r.pending {
		if p.ID == pendingID && p.UserID == userID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("pending category: %w", repository.ErrNotFound)
}

func (r *fakePendingRepo) GetPendingByUserID(_ context.Context, userID uuid.UUID) ([]*entity.PendingCategory, error) {
	var out []*entity.PendingCategory
	for _, p := range r.pending {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePendingRepo) Delete(_ context.Context, pendingID uuid.UUID) error {
	for i, p := range r.pending {
		if p.ID == pendingID {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("pending category: %w", repository.ErrNotFound)
}

// fakeGoalRepo implements both GoalRepository and GoalProgressRepository so
// tests observe the ledger the service writes through AddProgress.
type fakeGoalRepo struct {
	goals    []*entity.Goal
	progress []*entity.GoalProgress
}

func (r *fakeGoalRepo) Create(_ context.Context, goal *entity.Goal) error {
	r.goals = append(r.goals, goal)
	return nil
}

func (r *fakeGoalRepo) find(goalID uuid.UUID) *entity.Goal {
	for _, g := range r.goals {
		if g.ID == goalID {
			return g
		}
	}
	return nil
}

func (r *fakeGoalRepo) GetByIDAndUserID(_ context.Context, goalID, userID uuid.UUID) (*entity.Goal, error) {
	g := r.find(goalID)
	if g == nil || g.UserID != userID {
		return nil, fmt.Errorf("goal: %w", repository.ErrNotFound)
	}
	copied := *g
	return &copied, nil
}

func (r *fakeGoalRepo) GetByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var out []*entity.Goal
	for i := len(r.goals) - 1; i >= 0; i-- {
		if r.goals[i].UserID == userID {
			copied := *r.goals[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) GetActiveByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var out []*entity.Goal
	for _, g := range r.goals {
		if g.UserID == userID && g.Status == entity.GoalStatusActive {
			copied := *g
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) GetTrackingByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var out []*entity.Goal
	for _, g := range r.goals {
		if g.UserID == userID && g.Status != entity.GoalStatusPaused {
			copied := *g
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) Update(_ context.Context, goal *entity.Goal) error {
	g := r.find(goal.ID)
	if g == nil {
		return fmt.Errorf("goal: %w", repository.ErrNotFound)
	}
	*g = *goal
	return nil
}

func (r *fakeGoalRepo) Delete(_ context.Context, goalID, userID uuid.UUID) error {
	for i, g := range r.goals {
		if g.ID == goalID && g.UserID == userID {
			r.goals = append(r.goals[:i], r.goals[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("goal: %w", repository.ErrNotFound)
}

func (r *fakeGoalRepo) ResetPeriod(_ context.Context, goalID uuid.UUID, now time.Time) error {
	g := r.find(goalID)
	if g == nil {
		return fmt.Errorf("goal: %w", repository.ErrNotFound)
	}
	g.CurrentValue = 0
	g.Status = entity.GoalStatusActive
	g.UpdatedAt = now
	return nil
}

func (r *fakeGoalRepo) AddProgress(_ context.Context, progress *entity.GoalProgress) (*entity.Goal, bool, error) {
	g := r.find(progress.GoalID)
	if g == nil {
		return nil, false, fmt.Errorf("goal: %w", repository.ErrNotFound)
	}

	r.progress = append(r.progress, progress)
	g.CurrentValue += progress.ValueAdded
	g.UpdatedAt = progress.RecordedAt

	newlyCompleted := false
	if g.CurrentValue >= g.TargetValue && g.Status != entity.GoalStatusCompleted {
		g.Status = entity.GoalStatusCompleted
		newlyCompleted = true
	}

	copied := *g
	return &copied, newlyCompleted, nil
}

func (r *fakeGoalRepo) GetByGoalID(_ context.Context, goalID uuid.UUID) ([]*entity.GoalProgress, error) {
	var out []*entity.GoalProgress
	for i := len(r.progress) - 1; i >= 0; i-- {
		if r.progress[i].GoalID == goalID {
			out = append(out, r.progress[i])
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) SumByGoalIDSince(_ context.Context, goalID uuid.UUID, since time.Time) (int32, error) {
	var sum int32
	for _, p := range r.progress {
		if p.GoalID == goalID && !p.RecordedAt.Before(since) {
			sum += p.ValueAdded
		}
	}
	return sum, nil
}

type fakeSummaryRepo struct {
	summaries []*entity.WeeklySummary
	createErr error
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (r *fakeSummaryRepo) Create(_ context.Context, summary *entity.WeeklySummary) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, s := range r.summaries {
		if s.UserID == summary.UserID && sameDay(s.WeekStart, summary.WeekStart) {
			return fmt.Errorf("weekly summary: %w", repository.ErrDuplicate)
		}
	}
	r.summaries = append(r.summaries, summary)
	return nil
}

func (r *fakeSummaryRepo) GetByUserIDAndWeekStart(_ context.Context, userID uuid.UUID, weekStart time.Time) (*entity.WeeklySummary, error) {
	for _, s := range r.summaries {
		if s.UserID == userID && sameDay(s.WeekStart, weekStart) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("weekly summary: %w", repository.ErrNotFound)
}

func (r *fakeSummaryRepo) GetByUserID(_ context.Context, userID uuid.UUID) ([]*entity.WeeklySummary, error) {
	var out []*entity.WeeklySummary
	for i := len(r.summaries) - 1; i >= 0; i-- {
		if r.summaries[i].UserID == userID {
			out = append(out, r.summaries[i])
		}
	}
	return out, nil
}

type fakeClassifier struct {
	parseResult entity.ParsedEntry
	parseErr    error
	parseCalls  int

	matchResult domainservice.CategoryMatch
	matchErr    error
	matchCalls  int

	goalMatch      bool
	goalMatchErr   error
	goalMatchCalls int

	narrative    string
	narrativeErr error
}

func (c *fakeClassifier) ParseEntry(_ context.Context, _ string) (entity.ParsedEntry, error) {
	c.parseCalls++
	return c.parseResult, c.parseErr
}

func (c *fakeClassifier) MatchCategory(_ context.Context, _ string, _ []*entity.Category) (domainservice.CategoryMatch, error) {
	c.matchCalls++
	return c.matchResult, c.matchErr
}

func (c *fakeClassifier) MatchGoal(_ context.Context, _, _, _ string) (bool, error) {
	c.goalMatchCalls++
	return c.goalMatch, c.goalMatchErr
}

func (c *fakeClassifier) SummarizeWeek(_ context.Context, _ entity.WeekStats) (string, error) {
	return c.narrative, c.narrativeErr
}

type fakePublisher struct {
	completedGoals []uuid.UUID
	summaries      []uuid.UUID
}

func (p *fakePublisher) PublishGoalCompleted(_ context.Context, goal *entity.Goal, _ uuid.UUID) error {
	p.completedGoals = append(p.completedGoals, goal.ID)
	return nil
}

func (p *fakePublisher) PublishSummaryCreated(_ context.Context, summary *entity.WeeklySummary) error {
	p.summaries = append(p.summaries, summary.ID)
	return nil
}

type fakeLocker struct {
	acquired bool
	err      error
	calls    int
}

func (l *fakeLocker) AcquireWeekLock(_ context.Context, _ uuid.UUID, _ time.Time) (bool, error) {
	l.calls++
	return l.acquired, l.err
}

var (
	_ repository.EntryRepository           = (*fakeEntryRepo)(nil)
	_ repository.CategoryRepository        = (*fakeCategoryRepo)(nil)
	_ repository.PendingCategoryRepository = (*fakePendingRepo)(nil)
	_ repository.GoalRepository            = (*fakeGoalRepo)(nil)
	_ repository.GoalProgressRepository    = (*fakeGoalRepo)(nil)
	_ repository.SummaryRepository         = (*fakeSummaryRepo)(nil)
	_ domainservice.Classifier             = (*fakeClassifier)(nil)
	_ domainservice.EventPublisher         = (*fakePublisher)(nil)
	_ domainservice.SummaryLocker          = (*fakeLocker)(nil)
)
