package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog-app/nutrilog-engine/internal/adapters/repository"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/services"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: creates user with hashed password", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := svc.Register(ctx, services.RegisterInput{
			Email:    "Jamie@Example.com",
			Password: "superSecret1",
		})

		require.NoError(t, err)
		assert.Equal(t, "jamie@example.com", user.Email)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "superSecret1", user.PasswordHash)
		assert.NoError(t, user.CheckPassword("superSecret1"))
		repo.AssertExpectations(t)
	})

	t.Run("Error: invalid email never reaches the repo", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		_, err := svc.Register(ctx, services.RegisterInput{Email: "nope", Password: "superSecret1"})

		assert.Equal(t, domain.ErrInvalidEmail, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Error: duplicate email propagates", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		repo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		_, err := svc.Register(ctx, services.RegisterInput{
			Email:    "jamie@example.com",
			Password: "superSecret1",
		})

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	existing := func(t *testing.T) *domain.User {
		u, err := domain.NewUser("u1", "jamie@example.com")
		require.NoError(t, err)
		require.NoError(t, u.SetPassword("superSecret1"))
		return u
	}

	t.Run("Success: valid credentials", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		repo.On("GetByEmail", ctx, "jamie@example.com").Return(existing(t), nil)

		user, err := svc.Login(ctx, services.LoginInput{
			Email:    "jamie@example.com",
			Password: "superSecret1",
		})

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("Error: wrong password maps to invalid credentials", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		repo.On("GetByEmail", ctx, "jamie@example.com").Return(existing(t), nil)

		_, err := svc.Login(ctx, services.LoginInput{
			Email:    "jamie@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Success: email casing from the login form is normalized", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		repo.On("GetByEmail", ctx, "jamie@example.com").Return(existing(t), nil)

		user, err := svc.Login(ctx, services.LoginInput{
			Email:    "  Jamie@Example.com ",
			Password: "superSecret1",
		})

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("Success: register and login round trip with mixed-case email", func(t *testing.T) {
		users := repository.NewInMemoryUserRepository()
		svc := services.NewAuthService(users)

		_, err := svc.Register(ctx, services.RegisterInput{
			Email:    "Alice@Example.com",
			Password: "superSecret1",
		})
		require.NoError(t, err)

		user, err := svc.Login(ctx, services.LoginInput{
			Email:    "Alice@Example.com",
			Password: "superSecret1",
		})

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("Error: unknown user is indistinguishable from wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrUserNotFound)

		_, err := svc.Login(ctx, services.LoginInput{
			Email:    "ghost@example.com",
			Password: "whatever1",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
