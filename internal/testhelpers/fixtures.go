package testhelpers

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/service"
)

// CreateTestUser inserts a customer account with the given credentials.
func CreateTestUser(t *testing.T, db *gorm.DB, name, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{Name: name, Email: email, PasswordHash: string(hash), Role: models.RoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	if err := db.Create(&models.CustomerProfile{UserID: user.ID}).Error; err != nil {
		t.Fatalf("failed to create test customer profile: %v", err)
	}
	return &user
}

// CreateTestChef inserts a chef account with a published hourly rate.
func CreateTestChef(t *testing.T, db *gorm.DB, name, email string, hourlyRateCents, guestChargeCents int64, serviceChargePct float64) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{Name: name, Email: email, PasswordHash: string(hash), Role: models.RoleChef}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test chef: %v", err)
	}

	profile := models.ChefProfile{
		UserID:           user.ID,
		Specialty:        "Test Cuisine",
		HourlyRateCents:  hourlyRateCents,
		GuestChargeCents: guestChargeCents,
		ServiceChargePct: serviceChargePct,
		Availability:     true,
	}
	profile.Embedding = service.GenerateEmbedding(profile.Specialty)
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create test chef profile: %v", err)
	}

	user.ChefProfile = &profile
	return &user
}

// CreateTestAdmin inserts an admin account.
func CreateTestAdmin(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{Name: "Admin", Email: email, PasswordHash: string(hash), Role: models.RoleAdmin}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test admin: %v", err)
	}
	return &user
}
