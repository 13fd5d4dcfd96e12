package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

const userColumns = `
	id, email, password_hash,
	sex, birth_date, height_cm, weight_kg, activity_level,
	goal_weight_lbs, goal_timeframe_weeks,
	created_at, updated_at
`

func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	goalWeight, goalWeeks := goalColumns(user)

	_, err := r.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Biometrics.Sex,
		user.Biometrics.BirthDate,
		user.Biometrics.HeightCm,
		user.Biometrics.WeightKg,
		user.Biometrics.ActivityLevel,
		goalWeight,
		goalWeeks,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23505" {
				return domain.ErrEmailAlreadyExists
			}
		}
		return fmt.Errorf("repository: create user failed: %w", err)
	}

	return nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: get user by email failed: %w", err)
	}

	return user, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: get user by id failed: %w", err)
	}

	return user, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		UPDATE users
		SET email = $2,
		    password_hash = $3,
		    sex = $4,
		    birth_date = $5,
		    height_cm = $6,
		    weight_kg = $7,
		    activity_level = $8,
		    goal_weight_lbs = $9,
		    goal_timeframe_weeks = $10,
		    updated_at = $11
		WHERE id = $1
	`

	goalWeight, goalWeeks := goalColumns(user)

	result, err := r.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Biometrics.Sex,
		user.Biometrics.BirthDate,
		user.Biometrics.HeightCm,
		user.Biometrics.WeightKg,
		user.Biometrics.ActivityLevel,
		goalWeight,
		goalWeeks,
		user.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23505" {
				return domain.ErrEmailAlreadyExists
			}
		}
		return fmt.Errorf("repository: update user failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: delete user failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *PostgresUserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var goalWeight sql.NullFloat64
	var goalWeeks sql.NullInt64

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Biometrics.Sex,
		&user.Biometrics.BirthDate,
		&user.Biometrics.HeightCm,
		&user.Biometrics.WeightKg,
		&user.Biometrics.ActivityLevel,
		&goalWeight,
		&goalWeeks,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if goalWeight.Valid && goalWeeks.Valid {
		user.WeightGoal = &domain.WeightGoal{
			TargetWeightLbs: goalWeight.Float64,
			TimeframeWeeks:  int(goalWeeks.Int64),
		}
	}

	return &user, nil
}

// goalColumns splits the optional goal into its two nullable columns.
func goalColumns(user *domain.User) (goalWeight sql.NullFloat64, goalWeeks sql.NullInt64) {
	if user.WeightGoal == nil {
		return
	}
	goalWeight = sql.NullFloat64{Float64: user.WeightGoal.TargetWeightLbs, Valid: true}
	goalWeeks = sql.NullInt64{Int64: int64(user.WeightGoal.TimeframeWeeks), Valid: true}
	return
}
