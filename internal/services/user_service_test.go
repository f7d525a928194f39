package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ghatak0982/fleetcare/internal/database/testutil"
	apperrors "github.com/ghatak0982/fleetcare/pkg/errors"
)

func TestUserServiceRegisterAndAuthenticate(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterUserInput{
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "asha@example.com", user.Email)
	require.NotEqual(t, "correct-horse", user.Password)

	authed, err := svc.Authenticate(ctx, "asha@example.com", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate(ctx, "asha@example.com", "wrong")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "whatever")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUserServiceRegisterValidation(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Register(ctx, RegisterUserInput{Name: "Asha", Email: "", Password: "correct-horse"})
	require.Error(t, err)

	_, err = svc.Register(ctx, RegisterUserInput{Name: "", Email: "asha@example.com", Password: "correct-horse"})
	require.Error(t, err)

	_, err = svc.Register(ctx, RegisterUserInput{Name: "Asha", Email: "asha@example.com", Password: "short"})
	require.Error(t, err)
}

func TestUserServiceRegisterDuplicateEmail(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Register(ctx, RegisterUserInput{Name: "Asha", Email: "asha@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterUserInput{Name: "Imposter", Email: "ASHA@example.com", Password: "correct-horse"})
	require.Error(t, err)
}

func TestUserServiceGetByID(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterUserInput{Name: "Asha", Email: "asha@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, got.Email)

	_, err = svc.GetByID(ctx, "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
