package domain

import "context"

type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by its unique identifier.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by its normalized email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update persists profile changes (biometrics, weight goal, password).
	Update(ctx context.Context, user *User) error

	// Delete permanently removes a user.
	Delete(ctx context.Context, id string) error
}
