package redis

import (
	"context"
	"fmt"
	"time"

	domainservice "journal-service/internal/domain/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SummaryLock serializes weekly summary generation per user and week using
// a SET NX lease. The lease outlives any realistic generation run; the
// database uniqueness check remains the final guard.
type SummaryLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryLock creates a new summary lock
func NewSummaryLock(client *redis.Client, ttl time.Duration) *SummaryLock {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SummaryLock{
		client: client,
		ttl:    ttl,
	}
}

var _ domainservice.SummaryLocker = (*SummaryLock)(nil)

func (l *SummaryLock) lockKey(userID uuid.UUID, weekStart time.Time) string {
	return fmt.Sprintf("weekly_summary:%s:%s", userID.String(), weekStart.Format("2006-01-02"))
}

// AcquireWeekLock returns true when the caller now holds the generation
// lease for this user and week
func (l *SummaryLock) AcquireWeekLock(ctx context.Context, userID uuid.UUID, weekStart time.Time) (bool, error) {
	acquired, err := l.client.SetNX(ctx, l.lockKey(userID, weekStart), time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire summary lock: %w", err)
	}

	return acquired, nil
}
