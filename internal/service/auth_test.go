package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/service"
	"github.com/hireachef/backend/internal/testhelpers"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.True(t, user.Role.Is(models.RoleUser))
	assert.NotNil(t, user.CustomerProfile, "registering a customer should create a customer profile")
	assert.Nil(t, user.ChefProfile)

	logged, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterChefCreatesChefProfile(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	user, err := svc.Register(context.Background(), "Chef Bo", "bo@example.com", "password123", models.RoleChef)
	require.NoError(t, err)
	assert.True(t, user.Role.Is(models.RoleChef))
	require.NotNil(t, user.ChefProfile)
	assert.True(t, user.ChefProfile.Availability)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", models.RoleUser)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Alice", "alice@example.com", "different", models.RoleUser)
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	user, err := svc.Register(context.Background(), "Mallory", "mallory@example.com", "password123", models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, user.Role.Is(models.RoleUser), "self-registration must not grant admin")
}

func TestLoginFailures(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", models.RoleUser)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	// Unknown account returns the same error as a bad password.
	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123", models.RoleUser)
	require.NoError(t, err)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.True(t, claims.Role.Is(models.RoleUser))
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")
	other := service.NewAuthService(db, "other-secret")

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123", models.RoleUser)
	require.NoError(t, err)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestDeleteAccount(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", models.RoleUser)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, user.ID))

	_, err = svc.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	err = svc.DeleteAccount(ctx, user.ID)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
