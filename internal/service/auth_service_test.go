package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/domain"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

func newAuthService(t *testing.T, users *MockUserRepo) *AuthService {
	t.Helper()

	svc, err := NewAuthService(config.AuthConfig{JWTSecret: "test-secret", TokenTTLMinutes: 60}, users)
	require.NoError(t, err)
	return svc
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()

	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	return &domain.User{
		ID:           "5c7e9b4a-0f07-4f4e-9d3e-2b1fb7a1c001",
		Email:        "jane@example.com",
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		user := activeUser(t, "correct-horse")
		users := new(MockUserRepo)
		users.On("GetByEmail", ctx, user.Email).Return(user, nil)
		users.On("UpdateLastLogin", ctx, user.ID, mock.AnythingOfType("time.Time")).Return(nil)

		svc := newAuthService(t, users)
		got, token, err := svc.Login(ctx, user.Email, "correct-horse")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		require.NotNil(t, got.LastLogin)
		assert.WithinDuration(t, time.Now(), *got.LastLogin, time.Second)

		claims, err := svc.TokenManager().Parse(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, domain.RoleUser, claims.Role)
		users.AssertExpectations(t)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, pgx.ErrNoRows)

		svc := newAuthService(t, users)
		_, _, err := svc.Login(ctx, "ghost@example.com", "whatever")

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.StatusCode)
		assert.Equal(t, "Incorrect email or password", appErr.Message)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		user := activeUser(t, "correct-horse")
		users := new(MockUserRepo)
		users.On("GetByEmail", ctx, user.Email).Return(user, nil)

		svc := newAuthService(t, users)
		_, _, err := svc.Login(ctx, user.Email, "battery-staple")

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.StatusCode)
		assert.Equal(t, "Incorrect email or password", appErr.Message)
		users.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DeactivatedAccount", func(t *testing.T) {
		user := activeUser(t, "correct-horse")
		user.IsActive = false
		users := new(MockUserRepo)
		users.On("GetByEmail", ctx, user.Email).Return(user, nil)

		svc := newAuthService(t, users)
		_, _, err := svc.Login(ctx, user.Email, "correct-horse")

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.StatusCode)
		assert.Equal(t, "Your account has been deactivated", appErr.Message)
		users.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthServiceMe(t *testing.T) {
	ctx := context.Background()
	user := activeUser(t, "correct-horse")

	users := new(MockUserRepo)
	users.On("GetByID", ctx, user.ID).Return(user, nil)

	svc := newAuthService(t, users)
	got, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	_, err := NewAuthService(config.AuthConfig{}, new(MockUserRepo))
	assert.Error(t, err)
}
