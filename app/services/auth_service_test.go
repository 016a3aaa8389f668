package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
)

func registerInput(username, email string) services.RegisterInput {
	return services.RegisterInput{
		Username:             username,
		Email:                email,
		Password:             "sturdy-passphrase-1",
		PasswordConfirmation: "sturdy-passphrase-1",
	}
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(registerInput("meera", "meera@example.com"))
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "sturdy-passphrase-1", user.Password, "password must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(registerInput("meera", "meera@example.com"))
	require.NoError(t, err)

	_, err = env.auth.Register(registerInput("othername", "meera@example.com"))
	require.Error(t, err)
	assert.True(t, isValidationError(err, "email"))
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	in := registerInput("meera", "meera@example.com")
	in.Password = "12345678"
	in.PasswordConfirmation = "12345678"

	_, err := env.auth.Register(in)
	require.Error(t, err)
	assert.True(t, isValidationError(err, "password"))
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.Register(registerInput("meera", "meera@example.com"))
	require.NoError(t, err)

	pair, err := env.auth.Login("meera@example.com", "sturdy-passphrase-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.Register(registerInput("meera", "meera@example.com"))
	require.NoError(t, err)

	_, err = env.auth.Login("meera@example.com", "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = env.auth.Login("nobody@example.com", "sturdy-passphrase-1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestRefreshRotatesAndRejectsReplay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(registerInput("meera", "meera@example.com"))
	require.NoError(t, err)
	pair, err := env.auth.Login("meera@example.com", "sturdy-passphrase-1")
	require.NoError(t, err)

	fresh, err := env.auth.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Refresh, fresh.Refresh)

	// The consumed token is dead; replaying it must fail.
	_, err = env.auth.Refresh(ctx, pair.Refresh)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// The rotated token still works.
	_, err = env.auth.Refresh(ctx, fresh.Refresh)
	assert.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.Register(registerInput("meera", "meera@example.com"))
	require.NoError(t, err)
	pair, err := env.auth.Login("meera@example.com", "sturdy-passphrase-1")
	require.NoError(t, err)

	_, err = env.auth.Refresh(context.Background(), pair.Access)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	user, err := env.auth.Register(registerInput("meera", "meera@example.com"))
	require.NoError(t, err)

	got, err := env.auth.Profile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "meera", got.Username)

	_, err = env.auth.Profile(9999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
