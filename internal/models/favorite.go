package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FavoriteChef marks a chef as a favorite of a customer.
type FavoriteChef struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_chef" json:"user_id"`
	ChefID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_chef" json:"chef_id"`
}

func (f *FavoriteChef) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
