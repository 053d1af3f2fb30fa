package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireachef/backend/internal/models"
)

// MenuItemInput is one course in a menu create/update request.
type MenuItemInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Course      string `json:"course"`
}

// MenuService manages chef-owned menus and the admin-curated cuisine
// categories.
type MenuService struct {
	db *gorm.DB
}

var _ IMenuService = (*MenuService)(nil)

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// CreateMenu adds a menu with its items for the chef.
func (s *MenuService) CreateMenu(ctx context.Context, chefID uuid.UUID, name, description string, priceCents int64, items []MenuItemInput) (*models.Menu, error) {
	menu := models.Menu{
		ChefID:      chefID,
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
	}
	for _, item := range items {
		menu.Items = append(menu.Items, models.MenuItem{
			Name:        item.Name,
			Description: item.Description,
			Course:      item.Course,
		})
	}
	if err := s.db.WithContext(ctx).Create(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// ListByChef returns a chef's menus with their items.
func (s *MenuService) ListByChef(ctx context.Context, chefID uuid.UUID) ([]models.Menu, error) {
	var menus []models.Menu
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("chef_id = ?", chefID).
		Order("created_at DESC").
		Find(&menus).Error
	return menus, err
}

// GetMenu loads one menu with its items.
func (s *MenuService) GetMenu(ctx context.Context, menuID uuid.UUID) (*models.Menu, error) {
	var menu models.Menu
	err := s.db.WithContext(ctx).Preload("Items").First(&menu, "id = ?", menuID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	return &menu, nil
}

// UpdateMenu replaces a menu's fields and items. Only the owning chef
// may update it.
func (s *MenuService) UpdateMenu(ctx context.Context, chefID, menuID uuid.UUID, name, description string, priceCents int64, items []MenuItemInput) (*models.Menu, error) {
	var menu models.Menu
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&menu, "id = ?", menuID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMenuNotFound
			}
			return err
		}
		if menu.ChefID != chefID {
			return ErrNotAuthorized
		}

		menu.Name = name
		menu.Description = description
		menu.PriceCents = priceCents
		if err := tx.Save(&menu).Error; err != nil {
			return err
		}

		// Replace the item set wholesale.
		if err := tx.Where("menu_id = ?", menu.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		menu.Items = nil
		for _, item := range items {
			menu.Items = append(menu.Items, models.MenuItem{
				MenuID:      menu.ID,
				Name:        item.Name,
				Description: item.Description,
				Course:      item.Course,
			})
		}
		if len(menu.Items) == 0 {
			return nil
		}
		return tx.Create(&menu.Items).Error
	})
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// DeleteMenu removes a menu owned by the chef. Admins may delete any.
func (s *MenuService) DeleteMenu(ctx context.Context, callerID uuid.UUID, callerRole models.Role, menuID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var menu models.Menu
		if err := tx.First(&menu, "id = ?", menuID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMenuNotFound
			}
			return err
		}
		if menu.ChefID != callerID && !callerRole.Is(models.RoleAdmin) {
			return ErrNotAuthorized
		}
		if err := tx.Where("menu_id = ?", menu.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&menu).Error
	})
}

// ListCategories returns all cuisine categories.
func (s *MenuService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

// CreateCategory adds an admin-curated category.
func (s *MenuService) CreateCategory(ctx context.Context, name, description, imageURL string) (*models.Category, error) {
	category := models.Category{Name: name, Description: description, ImageURL: imageURL}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory edits a category.
func (s *MenuService) UpdateCategory(ctx context.Context, categoryID uuid.UUID, name, description, imageURL string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if name != "" {
		category.Name = name
	}
	if description != "" {
		category.Description = description
	}
	if imageURL != "" {
		category.ImageURL = imageURL
	}
	if err := s.db.WithContext(ctx).Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category.
func (s *MenuService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", categoryID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
