package entity

import (
	"time"

	"github.com/google/uuid"
)

// WeekStats holds the aggregates computed over one calendar week of entries
type WeekStats struct {
	WeekStart time.Time
	WeekEnd   time.Time

	TotalMinutes int32
	TotalEntries int32
	ActiveDays   int32

	TopCategory        *string // nil only when the window held no entries
	TopCategoryMinutes int32
	// Sample of activities in the top category, feeds the narrative prompt
	TopCategoryActivities []string

	BestDay        *time.Time
	BestDayMinutes int32
}

// WeeklySummary is the persisted once-per-week rollup with its AI narrative.
// Created at most once per (user, week_start); never updated.
type WeeklySummary struct {
	ID     uuid.UUID
	UserID uuid.UUID

	WeekStart time.Time
	WeekEnd   time.Time

	TotalMinutes int32
	TotalEntries int32
	ActiveDays   int32
	TopCategory  *string

	AISummary *string

	CreatedAt time.Time
}

// Profile holds the user-facing display attributes for an account
type Profile struct {
	ID        uuid.UUID
	Username  *string
	FullName  *string
	AvatarURL *string
	UpdatedAt time.Time
}
