package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/services"
)

func newAuthServiceForTest() (services.AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	svc := services.NewAuthService(userRepo,
		[]string{"dev@example.com"},
		[]string{"admin@example.com"},
	)
	return svc, userRepo
}

func TestAuthServiceSignUpValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   services.SignUpInput
		wantErr error
	}{
		{
			name:    "missing email",
			input:   services.SignUpInput{Password: "secret123", Username: "maria"},
			wantErr: services.ErrEmailRequired,
		},
		{
			name:    "password too short",
			input:   services.SignUpInput{Email: "maria@example.com", Password: "12345", Username: "maria"},
			wantErr: services.ErrPasswordTooShort,
		},
		{
			name:    "username too short",
			input:   services.SignUpInput{Email: "maria@example.com", Password: "secret123", Username: "ma"},
			wantErr: services.ErrUsernameTooShort,
		},
		{
			name:    "username with spaces",
			input:   services.SignUpInput{Email: "maria@example.com", Password: "secret123", Username: "maria lopez"},
			wantErr: services.ErrUsernameHasSpaces,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newAuthServiceForTest()

			_, err := svc.SignUp(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthServiceSignUpAssignsRoleByEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		wantRole models.UserRole
	}{
		{name: "developer allow-list", email: "dev@example.com", wantRole: models.RoleDeveloper},
		{name: "admin allow-list", email: "admin@example.com", wantRole: models.RoleAdmin},
		{name: "everyone else is a player", email: "maria@example.com", wantRole: models.RolePlayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newAuthServiceForTest()

			user, err := svc.SignUp(context.Background(), services.SignUpInput{
				Email:    tt.email,
				Password: "secret123",
				Username: "someuser",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, user.Role)
			assert.Empty(t, user.PasswordHash)
			assert.True(t, strings.HasPrefix(user.PlayerID, "P"))
			assert.Len(t, user.PlayerID, 11)
		})
	}
}

func TestAuthServiceSignUpDuplicateUsername(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, services.SignUpInput{Email: "first@example.com", Password: "secret123", Username: "maria"})
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, services.SignUpInput{Email: "second@example.com", Password: "secret123", Username: "maria"})
	assert.ErrorIs(t, err, services.ErrUserUsernameConflict)
}

func TestAuthServiceSignIn(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, services.SignUpInput{Email: "maria@example.com", Password: "secret123", Username: "maria"})
	require.NoError(t, err)

	t.Run("by email", func(t *testing.T) {
		user, err := svc.SignIn(ctx, services.SignInInput{EmailOrUsername: "maria@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "maria", user.Username)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("by username", func(t *testing.T) {
		user, err := svc.SignIn(ctx, services.SignInInput{EmailOrUsername: "maria", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "maria@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.SignIn(ctx, services.SignInInput{EmailOrUsername: "maria@example.com", Password: "wrongpass"})
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("unknown identity", func(t *testing.T) {
		_, err := svc.SignIn(ctx, services.SignInInput{EmailOrUsername: "nobody", Password: "secret123"})
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})
}

func TestAuthServiceEnsureProfile(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	first, err := svc.EnsureProfile(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, "maria", first.Username)
	assert.Equal(t, models.RolePlayer, first.Role)
	assert.Empty(t, first.PasswordHash)

	// Повторный вход возвращает тот же профиль, а не создаёт новый.
	second, err := svc.EnsureProfile(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.UID, second.UID)
}

func TestAuthServiceEnsureProfileDedupesUsername(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, services.SignUpInput{Email: "maria@other.com", Password: "secret123", Username: "maria"})
	require.NoError(t, err)

	user, err := svc.EnsureProfile(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "maria", user.Username)
	assert.Contains(t, user.Username, "maria_")
}

func TestAuthServiceChangeUsername(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	user, err := svc.SignUp(ctx, services.SignUpInput{Email: "maria@example.com", Password: "secret123", Username: "maria"})
	require.NoError(t, err)
	other, err := svc.SignUp(ctx, services.SignUpInput{Email: "jose@example.com", Password: "secret123", Username: "jose"})
	require.NoError(t, err)

	updated, err := svc.ChangeUsername(ctx, user.UID, "maria_lopez")
	require.NoError(t, err)
	assert.Equal(t, "maria_lopez", updated.Username)

	_, err = svc.ChangeUsername(ctx, other.UID, "maria_lopez")
	assert.ErrorIs(t, err, services.ErrUserUsernameConflict)
}
