package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
)

var _ domain.LogRepository = (*CachedLogRepository)(nil)

// CachedLogRepository caches the per-day item lists, the hottest read path.
// Point lookups and sync deltas always go to the source of truth.
type CachedLogRepository struct {
	next  domain.LogRepository
	cache *redis.Client
}

func NewCachedLogRepository(next domain.LogRepository, cache *redis.Client) *CachedLogRepository {
	return &CachedLogRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedLogRepository) cacheKey(userID string, day time.Time) string {
	return fmt.Sprintf("log:%s:%s", userID, day.UTC().Format("2006-01-02"))
}

func (r *CachedLogRepository) invalidate(ctx context.Context, userID string, day time.Time) {
	if err := r.cache.Del(ctx, r.cacheKey(userID, day)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate day log for user %s: %v", userID, err)
	}
}

func (r *CachedLogRepository) ListByDay(ctx context.Context, userID string, day time.Time) ([]*domain.LoggedItem, error) {
	key := r.cacheKey(userID, day)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var items []*domain.LoggedItem
		if err := json.Unmarshal([]byte(val), &items); err == nil {
			return items, nil
		}

		log.Printf("[CACHE] Corrupted day log for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	items, err := r.next.ListByDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if setErr := r.cache.Set(ctx, key, data, 30*time.Minute).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return items, nil
}

func (r *CachedLogRepository) GetByID(ctx context.Context, id string) (*domain.LoggedItem, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedLogRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.LoggedItem, error) {
	return r.next.ListByDateRange(ctx, userID, from, to)
}

func (r *CachedLogRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.LoggedItem, error) {
	return r.next.GetChanges(ctx, userID, since)
}

func (r *CachedLogRepository) Create(ctx context.Context, item *domain.LoggedItem) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.UserID, item.LogDate)
	return nil
}

func (r *CachedLogRepository) Update(ctx context.Context, item *domain.LoggedItem) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.UserID, item.LogDate)
	return nil
}

func (r *CachedLogRepository) Delete(ctx context.Context, id string, userID string) error {
	item, err := r.next.GetByID(ctx, id)
	if err == nil && item != nil {
		defer r.invalidate(ctx, userID, item.LogDate)
	}

	return r.next.Delete(ctx, id, userID)
}
