package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
)

type PostgresLogRepository struct {
	db *sqlx.DB
}

func NewPostgresLogRepository(db *sqlx.DB) *PostgresLogRepository {
	return &PostgresLogRepository{db: db}
}

func (r *PostgresLogRepository) Create(ctx context.Context, item *domain.LoggedItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	query := `
		INSERT INTO logged_items (
			id, user_id, name, quantity, unit, meal_slot,
			log_date, nutrients,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :user_id, :name, :quantity, :unit, :meal_slot,
			:log_date, :nutrients,
			:version, :created_at, :updated_at, :deleted_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return errors.New("referenced user does not exist")
			}
			if pqErr.Code == "23505" {
				return domain.ErrItemConflict
			}
		}
		return err
	}
	return nil
}

func (r *PostgresLogRepository) GetByID(ctx context.Context, id string) (*domain.LoggedItem, error) {
	var item domain.LoggedItem
	query := `SELECT * FROM logged_items WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresLogRepository) ListByDay(ctx context.Context, userID string, day time.Time) ([]*domain.LoggedItem, error) {
	items := []*domain.LoggedItem{}

	query := `
		SELECT * FROM logged_items
		WHERE user_id = $1
		  AND log_date = $2
		  AND deleted_at IS NULL
		ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &items, query, userID, day.UTC().Truncate(24*time.Hour))
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresLogRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.LoggedItem, error) {
	items := []*domain.LoggedItem{}

	query := `
		SELECT * FROM logged_items
		WHERE user_id = $1
		  AND log_date >= $2
		  AND log_date <= $3
		  AND deleted_at IS NULL
		ORDER BY log_date ASC, created_at ASC`

	err := r.db.SelectContext(ctx, &items, query, userID,
		from.UTC().Truncate(24*time.Hour), to.UTC().Truncate(24*time.Hour))
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists an item whose version was already bumped by the caller.
// The version check rejects writes that raced against a newer revision.
func (r *PostgresLogRepository) Update(ctx context.Context, item *domain.LoggedItem) error {
	item.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE logged_items
		SET name = :name,
		    quantity = :quantity,
		    unit = :unit,
		    meal_slot = :meal_slot,
		    nutrients = :nutrients,
		    version = :version,
		    updated_at = :updated_at
		WHERE id = :id
		  AND version = :version - 1  -- Optimistic Lock check
		  AND deleted_at IS NULL`

	result, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		exists, _ := r.exists(ctx, item.ID)
		if !exists {
			return domain.ErrItemNotFound
		}
		return domain.ErrItemConflict
	}

	return nil
}

func (r *PostgresLogRepository) Delete(ctx context.Context, id string, userID string) error {
	now := time.Now().UTC()

	query := `
		UPDATE logged_items
		SET deleted_at = $1,
		    updated_at = $1,
		    version = version + 1
		WHERE id = $2
		  AND user_id = $3 -- Security Check
		  AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, now, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}

// GetChanges returns every item touched after the given instant, including
// soft-deleted ones, so sync clients can apply tombstones.
func (r *PostgresLogRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.LoggedItem, error) {
	items := []*domain.LoggedItem{}

	query := `
		SELECT * FROM logged_items
		WHERE user_id = $1
		  AND updated_at > $2
		ORDER BY updated_at ASC`

	err := r.db.SelectContext(ctx, &items, query, userID, since)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresLogRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM logged_items WHERE id = $1", id)
	return count > 0, err
}
