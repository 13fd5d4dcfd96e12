package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/services"
)

func TestTokenService(t *testing.T) {
	const secret = "test-secret-key"
	const issuer = "nutrilog-engine"

	t.Run("Success: round trip returns the subject", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", mock.Anything, "u1").Return(&domain.User{ID: "u1"}, nil)

		svc := services.NewTokenService(secret, issuer, time.Hour, repo)

		token, err := svc.GenerateToken("u1")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		userID, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
	})

	t.Run("Error: expired token", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewTokenService(secret, issuer, -time.Minute, repo)

		token, err := svc.GenerateToken("u1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Error: wrong signing secret", func(t *testing.T) {
		repo := new(MockUserRepo)
		issuing := services.NewTokenService("other-secret", issuer, time.Hour, repo)
		validating := services.NewTokenService(secret, issuer, time.Hour, repo)

		token, err := issuing.GenerateToken("u1")
		require.NoError(t, err)

		_, err = validating.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Error: wrong issuer", func(t *testing.T) {
		repo := new(MockUserRepo)
		issuing := services.NewTokenService(secret, "someone-else", time.Hour, repo)
		validating := services.NewTokenService(secret, issuer, time.Hour, repo)

		token, err := issuing.GenerateToken("u1")
		require.NoError(t, err)

		_, err = validating.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Error: deleted user is rejected", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

		svc := services.NewTokenService(secret, issuer, time.Hour, repo)

		token, err := svc.GenerateToken("ghost")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}
