package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/service"
)

// demoPassword is shared by every seeded demo account.
const demoPassword = "password"

// SeedDemoData creates the demo accounts and a few chefs so the API is
// usable immediately after startup in mock mode. It is idempotent:
// existing accounts are left alone.
func SeedDemoData(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	type demoChef struct {
		name      string
		email     string
		specialty string
		location  string
		cuisines  []string
		rateCents int64
		guestFee  int64
		bio       string
	}

	demoUsers := []models.User{
		{Name: "Demo User", Email: "user@example.com", Role: models.RoleUser},
		{Name: "Demo Chef", Email: "chef@example.com", Role: models.RoleChef},
		{Name: "Demo Admin", Email: "admin@example.com", Role: models.RoleAdmin},
	}

	for i := range demoUsers {
		u := &demoUsers[i]
		var existing models.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			continue
		}

		u.PasswordHash = string(hash)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(u).Error; err != nil {
				return err
			}
			switch {
			case u.Role.Is(models.RoleChef):
				profile := models.ChefProfile{
					UserID:           u.ID,
					Specialty:        "Italian",
					Location:         "Austin, TX",
					HourlyRateCents:  10000,
					GuestChargeCents: 1500,
					ServiceChargePct: 10,
					Availability:     true,
					Cuisines:         models.JSONBStringArray{"Italian", "Mediterranean"},
					Bio:              "Demo chef account.",
				}
				profile.Embedding = service.GenerateEmbedding(profile.Specialty + " " + profile.Bio)
				return tx.Create(&profile).Error
			case u.Role.Is(models.RoleUser):
				return tx.Create(&models.CustomerProfile{UserID: u.ID}).Error
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("seeding %s: %w", u.Email, err)
		}
		log.Printf("[database] seeded demo account %s", u.Email)
	}

	chefs := []demoChef{
		{"Maria Rossi", "maria@example.com", "Tuscan", "Austin, TX", []string{"Italian"}, 12000, 2000, "Fresh pasta and wood-fired classics."},
		{"Kenji Sato", "kenji@example.com", "Kaiseki", "Seattle, WA", []string{"Japanese"}, 18000, 2500, "Seasonal multi-course dining at home."},
		{"Amara Diop", "amara@example.com", "West African", "Atlanta, GA", []string{"Senegalese", "Fusion"}, 9000, 1200, "Bold flavors, family-style service."},
	}

	for _, c := range chefs {
		var existing models.User
		if err := db.Where("email = ?", c.email).First(&existing).Error; err == nil {
			continue
		}

		user := models.User{Name: c.name, Email: c.email, PasswordHash: string(hash), Role: models.RoleChef}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			profile := models.ChefProfile{
				UserID:           user.ID,
				Specialty:        c.specialty,
				Location:         c.location,
				HourlyRateCents:  c.rateCents,
				GuestChargeCents: c.guestFee,
				ServiceChargePct: 10,
				Availability:     true,
				Cuisines:         models.JSONBStringArray(c.cuisines),
				Bio:              c.bio,
			}
			profile.Embedding = service.GenerateEmbedding(profile.Specialty + " " + profile.Bio)
			return tx.Create(&profile).Error
		})
		if err != nil {
			return fmt.Errorf("seeding %s: %w", c.email, err)
		}
		log.Printf("[database] seeded demo chef %s", c.email)
	}

	return nil
}
