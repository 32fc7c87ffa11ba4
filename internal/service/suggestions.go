package service

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode"

	"journal-service/internal/domain/entity"
	domainservice "journal-service/internal/domain/service"

	"github.com/google/uuid"
)

const (
	suggestionWindowDays = 30
	suggestionLimit      = 8
	suggestionMinEntries = 5
)

// defaultSuggestions are served until the user has logged enough history to
// derive personal ones
var defaultSuggestions = []domainservice.Suggestion{
	{Activity: "Went to gym", AvgDuration: 60},
	{Activity: "Read a book", AvgDuration: 30},
	{Activity: "Worked on project", AvgDuration: 120},
	{Activity: "Studied new skill", AvgDuration: 45},
	{Activity: "Practiced meditation", AvgDuration: 15},
}

// Suggestions derives quick-log shortcuts from the user's last 30 days of
// entries: activities grouped case-insensitively, ranked by frequency, with
// average duration and the last known category attached.
func (s *entryService) Suggestions(ctx context.Context, userID uuid.UUID) ([]domainservice.Suggestion, error) {
	entries, err := s.entryRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return buildSuggestions(entries, time.Now()), nil
}

type suggestionGroup struct {
	count         int32
	totalDuration int32
	categoryID    *uuid.UUID
}

func buildSuggestions(entries []*entity.Entry, now time.Time) []domainservice.Suggestion {
	if len(entries) < suggestionMinEntries {
		return defaultSuggestions
	}

	cutoff := now.AddDate(0, 0, -suggestionWindowDays)

	groups := make(map[string]*suggestionGroup)
	var order []string

	for _, entry := range entries {
		if entry.Timestamp.Before(cutoff) {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(entry.Activity))
		if key == "" {
			continue
		}

		g, ok := groups[key]
		if !ok {
			g = &suggestionGroup{}
			groups[key] = g
			order = append(order, key)
		}

		g.count++
		g.totalDuration += entry.Duration()
		if entry.CategoryID != nil {
			g.categoryID = entry.CategoryID
		}
	}

	suggestions := make([]domainservice.Suggestion, 0, len(order))
	for _, key := range order {
		g := groups[key]
		suggestions = append(suggestions, domainservice.Suggestion{
			Activity:    capitalize(key),
			CategoryID:  g.categoryID,
			AvgDuration: g.totalDuration / g.count,
			Frequency:   g.count,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Frequency > suggestions[j].Frequency
	})

	if len(suggestions) > suggestionLimit {
		suggestions = suggestions[:suggestionLimit]
	}

	return suggestions
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
