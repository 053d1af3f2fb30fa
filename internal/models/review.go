package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a customer's rating of a chef. At most one review per
// (chef, author) pair, enforced by the composite unique index.
type Review struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ChefID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_chef_author" json:"chef_id"`
	UserID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_chef_author" json:"user_id"`

	// Author display snapshot
	UserName  string `gorm:"size:100;not null" json:"user_name"`
	UserImage string `gorm:"size:255" json:"user_image"`

	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title   string `gorm:"size:100" json:"title"`
	Comment string `gorm:"type:text" json:"comment"`

	Edited   bool       `gorm:"default:false" json:"edited"`
	EditedAt *time.Time `json:"edited_at,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
