package handler

import (
	"time"

	"journal-service/internal/domain/entity"
	domainservice "journal-service/internal/domain/service"

	"github.com/google/uuid"
)

type entryResponse struct {
	ID              uuid.UUID  `json:"id"`
	Text            string     `json:"text"`
	Activity        string     `json:"activity"`
	CategoryID      *uuid.UUID `json:"category_id"`
	DurationMinutes *int32     `json:"duration_minutes"`
	Sentiment       *string    `json:"sentiment"`
	Timestamp       time.Time  `json:"timestamp"`
	CreatedAt       time.Time  `json:"created_at"`
}

func toEntryResponse(e *entity.Entry) entryResponse {
	var sentiment *string
	if e.Sentiment != nil {
		s := string(*e.Sentiment)
		sentiment = &s
	}

	return entryResponse{
		ID:              e.ID,
		Text:            e.Text,
		Activity:        e.Activity,
		CategoryID:      e.CategoryID,
		DurationMinutes: e.DurationMinutes,
		Sentiment:       sentiment,
		Timestamp:       e.Timestamp,
		CreatedAt:       e.CreatedAt,
	}
}

func toEntryResponses(entries []*entity.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out
}

type categoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

func toCategoryResponse(c *entity.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
	}
}

type pendingCategoryResponse struct {
	ID            uuid.UUID `json:"id"`
	SuggestedName string    `json:"suggested_name"`
	Reason        *string   `json:"reason"`
	EntryID       uuid.UUID `json:"entry_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toPendingCategoryResponse(p *entity.PendingCategory) pendingCategoryResponse {
	return pendingCategoryResponse{
		ID:            p.ID,
		SuggestedName: p.SuggestedName,
		Reason:        p.Reason,
		EntryID:       p.EntryID,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
	}
}

type goalResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	CategoryID   *uuid.UUID `json:"category_id"`
	Keywords     []string   `json:"keywords"`
	TargetType   string     `json:"target_type"`
	TargetValue  int32      `json:"target_value"`
	TimePeriod   string     `json:"time_period"`
	Status       string     `json:"status"`
	CurrentValue int32      `json:"current_value"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toGoalResponse(g *entity.Goal) goalResponse {
	keywords := g.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return goalResponse{
		ID:           g.ID,
		Title:        g.Title,
		Description:  g.Description,
		CategoryID:   g.CategoryID,
		Keywords:     keywords,
		TargetType:   string(g.TargetType),
		TargetValue:  g.TargetValue,
		TimePeriod:   string(g.TimePeriod),
		Status:       string(g.Status),
		CurrentValue: g.CurrentValue,
		StartDate:    g.StartDate,
		EndDate:      g.EndDate,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

type goalProgressResponse struct {
	ID         uuid.UUID `json:"id"`
	GoalID     uuid.UUID `json:"goal_id"`
	EntryID    uuid.UUID `json:"entry_id"`
	ValueAdded int32     `json:"value_added"`
	RecordedAt time.Time `json:"recorded_at"`
}

func toGoalProgressResponses(rows []*entity.GoalProgress) []goalProgressResponse {
	out := make([]goalProgressResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, goalProgressResponse{
			ID:         row.ID,
			GoalID:     row.GoalID,
			EntryID:    row.EntryID,
			ValueAdded: row.ValueAdded,
			RecordedAt: row.RecordedAt,
		})
	}
	return out
}

type summaryResponse struct {
	ID           uuid.UUID `json:"id"`
	WeekStart    time.Time `json:"week_start"`
	WeekEnd      time.Time `json:"week_end"`
	TotalMinutes int32     `json:"total_minutes"`
	TotalEntries int32     `json:"total_entries"`
	ActiveDays   int32     `json:"active_days"`
	TopCategory  *string   `json:"top_category"`
	AISummary    *string   `json:"ai_summary"`
	CreatedAt    time.Time `json:"created_at"`
}

func toSummaryResponse(s *entity.WeeklySummary) summaryResponse {
	return summaryResponse{
		ID:           s.ID,
		WeekStart:    s.WeekStart,
		WeekEnd:      s.WeekEnd,
		TotalMinutes: s.TotalMinutes,
		TotalEntries: s.TotalEntries,
		ActiveDays:   s.ActiveDays,
		TopCategory:  s.TopCategory,
		AISummary:    s.AISummary,
		CreatedAt:    s.CreatedAt,
	}
}

type profileResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  *string   `json:"username"`
	FullName  *string   `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProfileResponse(p *entity.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Username:  p.Username,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		UpdatedAt: p.UpdatedAt,
	}
}

type suggestionResponse struct {
	Activity    string     `json:"activity"`
	CategoryID  *uuid.UUID `json:"category_id"`
	AvgDuration int32      `json:"avg_duration"`
	Frequency   int32      `json:"frequency"`
}

func toSuggestionResponses(suggestions []domainservice.Suggestion) []suggestionResponse {
	out := make([]suggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, suggestionResponse{
			Activity:    s.Activity,
			CategoryID:  s.CategoryID,
			AvgDuration: s.AvgDuration,
			Frequency:   s.Frequency,
		})
	}
	return out
}
