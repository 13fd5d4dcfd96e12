package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrItemNotFound = errors.New("logged item not found")
	ErrItemConflict = errors.New("logged item version conflict")
)

type LogRepository interface {
	// Create persists a new logged item.
	Create(ctx context.Context, item *LoggedItem) error

	// Update modifies an existing item.
	// Implementations must handle Optimistic Locking (version check) so a
	// stale rescale never overwrites a newer one.
	Update(ctx context.Context, item *LoggedItem) error

	// Delete performs a Soft Delete on the item.
	// It requires userID to ensure the user actually owns the item.
	Delete(ctx context.Context, id string, userID string) error

	// GetByID retrieves a single active (non-deleted) item by its ID.
	GetByID(ctx context.Context, id string) (*LoggedItem, error)

	// ListByDay retrieves a user's active items for one calendar day.
	// This backs the daily summary and the food-log view.
	ListByDay(ctx context.Context, userID string, day time.Time) ([]*LoggedItem, error)

	// ListByDateRange retrieves a user's active items across several days,
	// for weekly views.
	ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*LoggedItem, error)

	// GetChanges returns all changes (creations, updates, soft-deletes)
	// after the 'since' timestamp, for offline-first clients.
	GetChanges(ctx context.Context, userID string, since time.Time) ([]*LoggedItem, error)
}
