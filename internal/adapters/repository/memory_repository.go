package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
)

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	r.store[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[user.ID]; !ok {
		return domain.ErrUserNotFound
	}

	r.store[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrUserNotFound
	}

	delete(r.store, id)
	return nil
}

// InMemoryLogRepository mirrors the postgres repository's soft-delete and
// delta semantics so handler and e2e tests run without a database.
type InMemoryLogRepository struct {
	store map[string]*domain.LoggedItem

	mu sync.RWMutex
}

func NewInMemoryLogRepository() *InMemoryLogRepository {
	return &InMemoryLogRepository{
		store: make(map[string]*domain.LoggedItem),
	}
}

func (r *InMemoryLogRepository) Create(ctx context.Context, item *domain.LoggedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[item.ID]; ok {
		return domain.ErrItemConflict
	}

	clone := *item
	r.store[item.ID] = &clone
	return nil
}

func (r *InMemoryLogRepository) GetByID(ctx context.Context, id string) (*domain.LoggedItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.store[id]
	if !ok || item.DeletedAt != nil {
		return nil, domain.ErrItemNotFound
	}

	clone := *item
	return &clone, nil
}

func (r *InMemoryLogRepository) ListByDay(ctx context.Context, userID string, day time.Time) ([]*domain.LoggedItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day = day.UTC().Truncate(24 * time.Hour)

	items := []*domain.LoggedItem{}
	for _, item := range r.store {
		if item.UserID == userID && item.DeletedAt == nil && item.LogDate.Equal(day) {
			clone := *item
			items = append(items, &clone)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return items, nil
}

func (r *InMemoryLogRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.LoggedItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	from = from.UTC().Truncate(24 * time.Hour)
	to = to.UTC().Truncate(24 * time.Hour)

	items := []*domain.LoggedItem{}
	for _, item := range r.store {
		if item.UserID != userID || item.DeletedAt != nil {
			continue
		}
		if item.LogDate.Before(from) || item.LogDate.After(to) {
			continue
		}
		clone := *item
		items = append(items, &clone)
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].LogDate.Equal(items[j].LogDate) {
			return items[i].LogDate.Before(items[j].LogDate)
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return items, nil
}

func (r *InMemoryLogRepository) Update(ctx context.Context, item *domain.LoggedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[item.ID]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrItemNotFound
	}
	if stored.Version != item.Version-1 {
		return domain.ErrItemConflict
	}

	item.UpdatedAt = time.Now().UTC()
	clone := *item
	r.store[item.ID] = &clone
	return nil
}

func (r *InMemoryLogRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.store[id]
	if !ok || item.DeletedAt != nil || item.UserID != userID {
		return domain.ErrItemNotFound
	}

	now := time.Now().UTC()
	item.DeletedAt = &now
	item.UpdatedAt = now
	item.Version++
	return nil
}

func (r *InMemoryLogRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.LoggedItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []*domain.LoggedItem{}
	for _, item := range r.store {
		if item.UserID == userID && item.UpdatedAt.After(since) {
			clone := *item
			items = append(items, &clone)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt.Before(items[j].UpdatedAt)
	})

	return items, nil
}
