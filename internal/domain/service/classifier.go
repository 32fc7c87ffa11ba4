package service

import (
	"context"
	"journal-service/internal/domain/entity"
)

// CategoryMatch is the gateway's verdict on whether an activity fits an
// existing category. Exactly one of CategoryName / SuggestedCategory is
// meaningful depending on Matches.
type CategoryMatch struct {
	Matches           bool
	CategoryName      string
	SuggestedCategory string
	Confidence        int
	Reasoning         string
}

// Classifier is the boundary to the external text-understanding service.
// All calls are fallible network operations; callers recover with the
// documented local fallbacks and never surface these failures as hard errors.
type Classifier interface {
	// ParseEntry extracts structured attributes from free-form note text.
	// Fallback: raw text as activity, nil duration, neutral sentiment.
	ParseEntry(ctx context.Context, text string) (entity.ParsedEntry, error)

	// MatchCategory decides whether the activity fits one of the user's
	// existing categories or needs a new one. Fallback: no match, no
	// suggestion.
	MatchCategory(ctx context.Context, activity string, categories []*entity.Category) (CategoryMatch, error)

	// MatchGoal answers whether an activity semantically matches a goal
	// described only by its title and description. Fallback: false.
	MatchGoal(ctx context.Context, activity, goalTitle, goalDescription string) (bool, error)

	// SummarizeWeek turns weekly aggregates into an encouraging narrative.
	// Fallback: a generic static string.
	SummarizeWeek(ctx context.Context, stats entity.WeekStats) (string, error)
}
