package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"journal-service/internal/config"
	"journal-service/internal/domain/entity"
	domainservice "journal-service/internal/domain/service"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	eventTypeGoalCompleted  = "goal.completed"
	eventTypeSummaryCreated = "summary.created"
)

// Producer publishes journal domain events to Kafka for downstream
// consumers (notifications)
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    10,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
	}

	return &Producer{
		writer: writer,
	}
}

var _ domainservice.EventPublisher = (*Producer)(nil)

type envelope struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// GoalCompletedEvent is emitted when an entry pushes a goal over its target
type GoalCompletedEvent struct {
	UserID      string `json:"user_id"`
	GoalID      string `json:"goal_id"`
	EntryID     string `json:"entry_id"`
	Title       string `json:"title"`
	TargetType  string `json:"target_type"`
	TargetValue int32  `json:"target_value"`
	TimePeriod  string `json:"time_period"`
}

// SummaryCreatedEvent is emitted when a fresh weekly summary is persisted
type SummaryCreatedEvent struct {
	UserID       string    `json:"user_id"`
	SummaryID    string    `json:"summary_id"`
	WeekStart    time.Time `json:"week_start"`
	WeekEnd      time.Time `json:"week_end"`
	TotalMinutes int32     `json:"total_minutes"`
	TotalEntries int32     `json:"total_entries"`
}

// PublishGoalCompleted publishes a goal completion event
func (p *Producer) PublishGoalCompleted(ctx context.Context, goal *entity.Goal, entryID uuid.UUID) error {
	payload := GoalCompletedEvent{
		UserID:      goal.UserID.String(),
		GoalID:      goal.ID.String(),
		EntryID:     entryID.String(),
		Title:       goal.Title,
		TargetType:  string(goal.TargetType),
		TargetValue: goal.TargetValue,
		TimePeriod:  string(goal.TimePeriod),
	}

	if err := p.publish(ctx, eventTypeGoalCompleted, goal.UserID.String(), payload); err != nil {
		return err
	}

	log.Printf("Published goal completed event for goal_id: %s", goal.ID)
	return nil
}

// PublishSummaryCreated publishes a weekly summary creation event
func (p *Producer) PublishSummaryCreated(ctx context.Context, summary *entity.WeeklySummary) error {
	payload := SummaryCreatedEvent{
		UserID:       summary.UserID.String(),
		SummaryID:    summary.ID.String(),
		WeekStart:    summary.WeekStart,
		WeekEnd:      summary.WeekEnd,
		TotalMinutes: summary.TotalMinutes,
		TotalEntries: summary.TotalEntries,
	}

	if err := p.publish(ctx, eventTypeSummaryCreated, summary.UserID.String(), payload); err != nil {
		return err
	}

	log.Printf("Published summary created event for user_id: %s", summary.UserID)
	return nil
}

func (p *Producer) publish(ctx context.Context, eventType, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	event, err := json.Marshal(envelope{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Payload:   data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(key),
		Value: event,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
