package entity

import (
	"time"

	"github.com/google/uuid"
)

// TargetType represents what a goal measures
type TargetType string

const (
	TargetTypeTime  TargetType = "time"  // minutes of tracked activity
	TargetTypeCount TargetType = "count" // number of matching entries
)

// TimePeriod represents the recurring window a goal is tracked over
type TimePeriod string

const (
	PeriodDaily   TimePeriod = "daily"
	PeriodWeekly  TimePeriod = "weekly"
	PeriodMonthly TimePeriod = "monthly"
)

// GoalStatus represents the state of a goal within its current period
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
)

// Goal represents a user-defined recurring target matched against entries
type Goal struct {
	ID     uuid.UUID
	UserID uuid.UUID

	Title       string
	Description *string

	// Matching criteria. A category filter takes precedence over keywords;
	// goals with neither fall through to the semantic matcher.
	CategoryID *uuid.UUID
	Keywords   []string

	TargetType  TargetType
	TargetValue int32
	TimePeriod  TimePeriod
	Status      GoalStatus

	// CurrentValue is only valid relative to the period implied by UpdatedAt.
	CurrentValue int32

	StartDate time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Completed reports whether the goal has reached its target
func (g *Goal) Completed() bool {
	return g.CurrentValue >= g.TargetValue
}

// HasCategoryFilter reports whether the goal matches by category
func (g *Goal) HasCategoryFilter() bool {
	return g.CategoryID != nil
}

// HasKeywords reports whether the goal has a non-empty keyword list
func (g *Goal) HasKeywords() bool {
	return len(g.Keywords) > 0
}

// PeriodElapsed reports whether the goal's tracking period has rolled over
// between UpdatedAt and now. Dates are compared in local calendar terms:
// daily by calendar date, weekly by Monday-anchored week start, monthly by
// month and year.
func (g *Goal) PeriodElapsed(now time.Time) bool {
	last := g.UpdatedAt.In(now.Location())

	switch g.TimePeriod {
	case PeriodDaily:
		return !sameDate(last, now)
	case PeriodWeekly:
		return !WeekStart(last).Equal(WeekStart(now))
	case PeriodMonthly:
		return last.Month() != now.Month() || last.Year() != now.Year()
	}
	return false
}

// WeekStart returns midnight of the most recent Monday at or before t,
// in t's location.
func WeekStart(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// GoalProgress is an append-only ledger row recording a single entry's
// contribution to a goal. Never mutated or deleted; entry deletion does not
// cascade here.
type GoalProgress struct {
	ID         uuid.UUID
	GoalID     uuid.UUID
	EntryID    uuid.UUID
	ValueAdded int32
	RecordedAt time.Time
}
