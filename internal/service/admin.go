package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireachef/backend/internal/models"
)

// AdminOverview is the platform dashboard summary.
type AdminOverview struct {
	TotalUsers       int64                          `json:"total_users"`
	TotalChefs       int64                          `json:"total_chefs"`
	TotalBookings    int64                          `json:"total_bookings"`
	TotalReviews     int64                          `json:"total_reviews"`
	RevenueCents     int64                          `json:"revenue_cents"`
	BookingsByStatus map[models.BookingStatus]int64 `json:"bookings_by_status"`
	RecentBookings   []models.Booking               `json:"recent_bookings"`
	RecentReviews    []models.Review                `json:"recent_reviews"`
}

// AdminUserListParams filters the admin user listing.
type AdminUserListParams struct {
	Role   string
	Search string
	Page   int
	Limit  int
}

// AdminService backs the admin-only management surface.
type AdminService struct {
	db *gorm.DB
}

var _ IAdminService = (*AdminService)(nil)

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Overview aggregates platform counters for the admin dashboard.
func (s *AdminService) Overview(ctx context.Context) (*AdminOverview, error) {
	overview := &AdminOverview{BookingsByStatus: map[models.BookingStatus]int64{}}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&overview.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleChef).Count(&overview.TotalChefs).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Booking{}).Count(&overview.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Review{}).Count(&overview.TotalReviews).Error; err != nil {
		return nil, err
	}

	err := db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentCompleted).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&overview.RevenueCents).Error
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Status models.BookingStatus
		Count  int64
	}
	err = db.Model(&models.Booking{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		overview.BookingsByStatus[row.Status] = row.Count
	}

	if err := db.Order("created_at DESC").Limit(5).Find(&overview.RecentBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at DESC").Limit(5).Find(&overview.RecentReviews).Error; err != nil {
		return nil, err
	}

	return overview, nil
}

// ListUsers returns users filtered by role and free-text search over
// name and email.
func (s *AdminService) ListUsers(ctx context.Context, params AdminUserListParams) ([]models.User, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}

	query := s.db.WithContext(ctx).Model(&models.User{})
	if params.Role != "" {
		role, ok := models.ParseRole(params.Role)
		if !ok {
			return nil, 0, ErrInvalidRole
		}
		query = query.Where("role = ?", role)
	}
	if params.Search != "" {
		like := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := query.
		Preload("ChefProfile").
		Preload("CustomerProfile").
		Order("created_at DESC").
		Limit(params.Limit).
		Offset((params.Page - 1) * params.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ChangeRole reassigns a user's role. Moving to chef creates a chef
// profile if missing; moving off chef soft-deletes the chef profile so
// the search index stops serving them.
func (s *AdminService) ChangeRole(ctx context.Context, userID uuid.UUID, newRole models.Role) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		user.Role = newRole
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		if newRole.Is(models.RoleChef) {
			var profile models.ChefProfile
			err := tx.Where("user_id = ?", userID).First(&profile).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				profile = models.ChefProfile{UserID: userID, Availability: true}
				profile.Embedding = GenerateEmbedding("")
				return tx.Create(&profile).Error
			}
			return err
		}

		// Leaving the chef role hides the chef profile.
		return tx.Where("user_id = ?", userID).Delete(&models.ChefProfile{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser soft-deletes a user and their sub-profiles.
func (s *AdminService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.User{}, "id = ?", userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.ChefProfile{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CustomerProfile{}).Error
	})
}
