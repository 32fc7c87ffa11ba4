package entity

import (
	"time"

	"github.com/google/uuid"
)

// Sentiment represents the tone of a journal entry
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Entry represents a single logged activity
type Entry struct {
	ID     uuid.UUID
	UserID uuid.UUID

	// Raw note text as the user typed it
	Text string

	// Derived attributes (from classification or guest-supplied)
	Activity        string
	CategoryID      *uuid.UUID // nil until resolved (pending suggestion path)
	DurationMinutes *int32
	Sentiment       *Sentiment

	Timestamp time.Time
	CreatedAt time.Time
}

// Duration returns the entry duration in minutes, or 0 if not recorded
func (e *Entry) Duration() int32 {
	if e.DurationMinutes == nil {
		return 0
	}
	return *e.DurationMinutes
}

// ParsedEntry is the structured result of parsing free-form note text
type ParsedEntry struct {
	Activity        string
	DurationMinutes *int32
	Sentiment       Sentiment
}

// FallbackParse returns the local fallback when classification is unavailable:
// the raw text as activity, no duration, neutral sentiment.
func FallbackParse(text string) ParsedEntry {
	return ParsedEntry{
		Activity:        text,
		DurationMinutes: nil,
		Sentiment:       SentimentNeutral,
	}
}
