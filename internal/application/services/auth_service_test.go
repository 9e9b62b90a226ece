package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/PZavyalov/bank-account-service/internal/application/errs"
	"github.com/PZavyalov/bank-account-service/internal/application/services"
	"github.com/PZavyalov/bank-account-service/internal/config"
	"github.com/PZavyalov/bank-account-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, userRepo *mockUserRepository) *services.AuthService {
	t.Helper()

	cfg := &config.Config{PasswordHashCost: bcrypt.MinCost}
	cfg.JWT.SigningKey = "test-signing-key"
	cfg.JWT.Expiration = time.Hour

	service, err := services.NewAuthService(userRepo, logger.NewWithZap(zap.L()), cfg)
	require.NoError(t, err)

	return service
}

func TestAuthService_Register(t *testing.T) {
	t.Run("stores the user with a hashed password", func(t *testing.T) {
		service := newTestAuthService(t, newMockUserRepository())

		u, err := service.Register(context.Background(), "jdoe", "s3cret", "John", "Doe")
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "jdoe", u.UserName)
		assert.NotEqual(t, "s3cret", u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
	})

	t.Run("taken user name", func(t *testing.T) {
		service := newTestAuthService(t, newMockUserRepository(testUser()))

		_, err := service.Register(context.Background(), "jdoe", "s3cret", "John", "Doe")

		assert.ErrorIs(t, err, errs.ErrDataConflict)
	})
}

func TestAuthService_Login(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestAuthService(t, userRepo)

	registered, err := service.Register(context.Background(), "jdoe", "s3cret", "John", "Doe")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := service.Login(context.Background(), "jdoe", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(context.Background(), "jdoe", "wrong")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := service.Login(context.Background(), "nobody", "s3cret")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestAuthService_Tokens(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestAuthService(t, userRepo)

	registered, err := service.Register(context.Background(), "jdoe", "s3cret", "John", "Doe")
	require.NoError(t, err)

	token, err := service.BuildAuthToken(registered.ID)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		u, err := service.GetUserFromToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := service.GetUserFromToken(context.Background(), token+"x")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("token of a deleted user", func(t *testing.T) {
		other := newTestAuthService(t, newMockUserRepository())
		_, err := other.GetUserFromToken(context.Background(), token)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}
