package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GuestUserID is the shared pseudo-user that owns guest-mode data
var GuestUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Category represents a user-defined label grouping entries
type Category struct {
	ID     uuid.UUID
	UserID uuid.UUID

	Name  string // unique per user, case-insensitive
	Color string // HEX color, e.g., "#6B7280"

	CreatedAt time.Time
}

// NormalizeName lowercases and trims a category name for comparison.
// Applied consistently at both write and match time.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// PendingStatus represents the lifecycle state of a category suggestion
type PendingStatus string

const (
	PendingStatusPending  PendingStatus = "pending"
	PendingStatusApproved PendingStatus = "approved"
	PendingStatusRejected PendingStatus = "rejected"
)

// PendingCategory represents an unresolved category suggestion for one entry.
// Resolved suggestions are deleted rather than retained.
type PendingCategory struct {
	ID     uuid.UUID
	UserID uuid.UUID

	SuggestedName string
	Reason        *string
	EntryID       uuid.UUID
	Status        PendingStatus

	CreatedAt time.Time
}

// DefaultGuestCategories are served to guest users. The "Other" category is
// guaranteed to exist so the guest resolver always has a fallback.
func DefaultGuestCategories() []*Category {
	names := []struct {
		name  string
		color string
	}{
		{"Fitness", "#007AFF"},
		{"Learning", "#AF52DE"},
		{"Reading", "#FF9500"},
		{"Work", "#6B7280"},
		{"Health", "#FF3B30"},
		{"Hobbies", "#34C759"},
		{"Social", "#FF2D55"},
		{"Other", "#5AC8FA"},
	}

	cats := make([]*Category, 0, len(names))
	for _, n := range names {
		cats = append(cats, &Category{
			ID:        uuid.NewSHA1(GuestUserID, []byte(n.name)),
			UserID:    GuestUserID,
			Name:      n.name,
			Color:     n.color,
			CreatedAt: time.Time{},
		})
	}
	return cats
}
