package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/auth"
	"rentdesk/internal/config"
	"rentdesk/internal/models"
)

func testUserConfig() *config.Config {
	return &config.Config{
		JwtSecret:            "test-secret",
		JwtTTL:               time.Hour,
		SessionCacheTTL:      time.Hour,
		DefaultAdminEmail:    "admin@example.com",
		DefaultAdminPassword: "password",
	}
}

func TestEnsureDefaultAdminSeedsOnce(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores()
	users := NewUserService(stores, testUserConfig())

	require.NoError(t, users.EnsureDefaultAdmin(ctx))
	require.NoError(t, users.EnsureDefaultAdmin(ctx)) // second call must not duplicate

	all, err := stores.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	admin := all[0]
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	// The password is stored as a bcrypt hash, never in the clear.
	assert.NotEqual(t, "password", admin.PasswordHash)
	assert.True(t, strings.HasPrefix(admin.PasswordHash, "$2"))
	assert.True(t, auth.CheckPasswordHash("password", admin.PasswordHash))
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestStores(), testUserConfig())

	user := &models.User{Email: "meera@example.com", FirstName: "Meera"}
	token, err := users.Register(ctx, user, "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleUser, user.Role) // role cannot be chosen at registration
	assert.True(t, users.IsSessionActive(token))

	// Duplicate registration is rejected case-insensitively.
	_, err = users.Register(ctx, &models.User{Email: "MEERA@example.com"}, "whatever")
	assert.ErrorIs(t, err, ErrEmailTaken)

	loginToken, loggedIn, err := users.Login(ctx, "Meera@Example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
	require.NotNil(t, loggedIn)
	assert.Empty(t, loggedIn.PasswordHash) // sanitized

	_, _, err = users.Login(ctx, "meera@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = users.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestStores(), testUserConfig())

	user := &models.User{Email: "ravi@example.com"}
	token, err := users.Register(ctx, user, "s3cret-pass")
	require.NoError(t, err)
	require.True(t, users.IsSessionActive(token))

	users.Logout(token)
	assert.False(t, users.IsSessionActive(token))
}

func TestUpdateProfileProtectsRestrictedFields(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestStores(), testUserConfig())

	user := &models.User{Email: "asha@example.com", FirstName: "Asha"}
	_, err := users.Register(ctx, user, "s3cret-pass")
	require.NoError(t, err)

	updated, found, err := users.UpdateProfile(ctx, user.ID, map[string]interface{}{
		"first_name": "Aisha",
		"phone":      "+91 98765 43210",
		"email":      "stolen@example.com",
		"role":       "admin",
		"password":   "plaintext",
	})
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "Aisha", updated.FirstName)
	assert.Equal(t, "+91 98765 43210", updated.Phone)
	assert.Equal(t, "asha@example.com", updated.Email)
	assert.Equal(t, models.RoleUser, updated.Role)
	assert.Empty(t, updated.PasswordHash) // sanitized in the response

	// The stored hash is untouched and the old password still works.
	_, _, err = users.Login(ctx, "asha@example.com", "s3cret-pass")
	assert.NoError(t, err)
}
