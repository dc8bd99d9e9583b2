package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository"
	pkgauth "github.com/clinicdesk/booking-api/pkg/auth"
	apperrors "github.com/clinicdesk/booking-api/pkg/errors"
	"github.com/clinicdesk/booking-api/pkg/logger"
)

type memUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = uuid.New()
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *memUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newTestService(t *testing.T) (*Service, *memUserRepo) {
	t.Helper()
	repo := newMemUserRepo()
	jwtSvc := pkgauth.NewJWTService(pkgauth.JWTConfig{
		Secret:        "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewService(repo, jwtSvc, log), repo
}

func registerRequest() *model.RegisterRequest {
	return &model.RegisterRequest{
		Email:           "pat@example.test",
		Password:        "hunter2hunter2",
		PasswordConfirm: "hunter2hunter2",
		FirstName:       "Pat",
		LastName:        "Doe",
	}
}

func TestRegister(t *testing.T) {
	t.Run("creates a non-staff account", func(t *testing.T) {
		svc, _ := newTestService(t)

		user, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.False(t, user.IsStaff)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
	})

	t.Run("mismatched passwords are rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		req := registerRequest()
		req.PasswordConfirm = "different-pass"

		_, err := svc.Register(context.Background(), req)
		requireAppError(t, err, apperrors.ErrValidation)
	})

	t.Run("short passwords are rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		req := registerRequest()
		req.Password = "short"
		req.PasswordConfirm = "short"

		_, err := svc.Register(context.Background(), req)
		requireAppError(t, err, apperrors.ErrValidation)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), registerRequest())
		requireAppError(t, err, apperrors.ErrConflict)
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		tokens, err := svc.Login(context.Background(), "pat@example.test", "hunter2hunter2")
		require.NoError(t, err)

		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Equal(t, "pat@example.test", tokens.Email)
		assert.False(t, tokens.IsStaff)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "pat@example.test", "wrong-password")
		requireAppError(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.test", "hunter2hunter2")
		requireAppError(t, err, apperrors.ErrUnauthorized)
	})
}

func TestRefresh(t *testing.T) {
	svc, repo := newTestService(t)
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), "pat@example.test", "hunter2hunter2")
	require.NoError(t, err)

	t.Run("refresh token yields a new pair", func(t *testing.T) {
		refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEmpty(t, refreshed.RefreshToken)
	})

	t.Run("access token is not accepted as refresh token", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), tokens.AccessToken)
		requireAppError(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), "not-a-token")
		requireAppError(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("deleted user cannot refresh", func(t *testing.T) {
		for id := range repo.users {
			delete(repo.users, id)
		}
		_, err := svc.Refresh(context.Background(), tokens.RefreshToken)
		requireAppError(t, err, apperrors.ErrUnauthorized)
	})
}

func requireAppError(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}
