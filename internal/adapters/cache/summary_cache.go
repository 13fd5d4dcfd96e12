package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
)

const summaryTTL = 30 * time.Minute

// RedisSummaryCache stores computed day summaries keyed by user and
// calendar day. A miss is reported as (nil, nil); redis being down is
// logged and treated as a miss so the caller falls through to a
// recompute.
type RedisSummaryCache struct {
	client *redis.Client
}

func NewRedisSummaryCache(client *redis.Client) *RedisSummaryCache {
	return &RedisSummaryCache{client: client}
}

func (c *RedisSummaryCache) key(userID string, day time.Time) string {
	return fmt.Sprintf("summary:%s:%s", userID, day.UTC().Format("2006-01-02"))
}

func (c *RedisSummaryCache) GetDaySummary(ctx context.Context, userID string, day time.Time) (*domain.DaySummary, error) {
	key := c.key(userID, day)

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[CACHE] Redis read error for %s: %v", key, err)
		}
		return nil, nil
	}

	var summary domain.DaySummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		log.Printf("[CACHE] Corrupted summary at %s, cleaning up key", key)
		c.client.Del(ctx, key)
		return nil, nil
	}

	return &summary, nil
}

func (c *RedisSummaryCache) SetDaySummary(ctx context.Context, userID string, day time.Time, summary *domain.DaySummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("cache: marshal day summary failed: %w", err)
	}

	return c.client.Set(ctx, c.key(userID, day), data, summaryTTL).Err()
}

func (c *RedisSummaryCache) InvalidateDay(ctx context.Context, userID string, day time.Time) error {
	return c.client.Del(ctx, c.key(userID, day)).Err()
}
