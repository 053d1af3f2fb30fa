package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireachef/backend/internal/models"
)

// FavoriteService manages a customer's saved chefs.
type FavoriteService struct {
	db *gorm.DB
}

var _ IFavoriteService = (*FavoriteService)(nil)

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Add marks a chef as a favorite. Adding twice is a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, chefID uuid.UUID) error {
	var chef models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND role = ?", chefID, models.RoleChef).
		First(&chef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChefNotFound
		}
		return err
	}

	var existing models.FavoriteChef
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND chef_id = ?", userID, chefID).
		First(&existing).Error
	if err == nil {
		return nil
	}

	return s.db.WithContext(ctx).Create(&models.FavoriteChef{UserID: userID, ChefID: chefID}).Error
}

// Remove unmarks a favorite chef. Removing one that was never added is
// a no-op.
func (s *FavoriteService) Remove(ctx context.Context, userID, chefID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND chef_id = ?", userID, chefID).
		Delete(&models.FavoriteChef{}).Error
}

// List returns the chefs the user has favorited, with their profiles.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	var chefs []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN favorite_chefs ON favorite_chefs.chef_id = users.id").
		Where("favorite_chefs.user_id = ?", userID).
		Preload("ChefProfile").
		Order("favorite_chefs.created_at DESC").
		Find(&chefs).Error
	return chefs, err
}

// IsFavorite reports whether the user has favorited the chef.
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, chefID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.FavoriteChef{}).
		Where("user_id = ? AND chef_id = ?", userID, chefID).
		Count(&count).Error
	return count > 0, err
}
