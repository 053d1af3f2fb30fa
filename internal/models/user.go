package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Role is a user's role tag. Comparison is case-insensitive everywhere;
// the canonical forms below are what gets persisted.
type Role string

const (
	RoleUser  Role = "User"
	RoleChef  Role = "Chef"
	RoleAdmin Role = "Admin"
)

// ParseRole normalizes a role string to its canonical form.
// Returns false for anything that is not a known role.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, true
	case "chef":
		return RoleChef, true
	case "admin":
		return RoleAdmin, true
	}
	return "", false
}

// Is compares roles case-insensitively.
func (r Role) Is(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

type User struct {
	ID                uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
	Name              string         `gorm:"not null" json:"name"`
	Email             string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string         `gorm:"not null" json:"-"`
	Role              Role           `gorm:"type:varchar(16);not null;default:'User'" json:"role"`
	ProfilePictureURL string         `gorm:"size:255" json:"profile_picture_url"`

	ChefProfile     *ChefProfile     `gorm:"foreignKey:UserID" json:"chef_profile,omitempty"`
	CustomerProfile *CustomerProfile `gorm:"foreignKey:UserID" json:"customer_profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ChefProfile holds the chef-specific sub-profile. Rating and
// ReviewCount are denormalized aggregates maintained by the review
// service inside the review mutation's transaction.
type ChefProfile struct {
	ID         uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Specialty  string         `gorm:"size:100" json:"specialty"`
	Experience int            `gorm:"default:0" json:"experience"`
	Bio        string         `gorm:"type:text" json:"bio"`
	Location   string         `gorm:"size:100" json:"location"`

	// Pricing. Amounts are integer cents; ServiceChargePct is a
	// percentage applied to the subtotal.
	HourlyRateCents  int64   `gorm:"default:0" json:"hourly_rate_cents"`
	GuestChargeCents int64   `gorm:"default:0" json:"guest_charge_cents"`
	ServiceChargePct float64 `gorm:"default:0" json:"service_charge_pct"`

	Availability bool   `gorm:"default:true" json:"availability"`
	WorkStart    string `gorm:"size:5;default:'09:00'" json:"work_start"`
	WorkEnd      string `gorm:"size:5;default:'17:00'" json:"work_end"`
	SlotMinutes  int    `gorm:"default:60" json:"slot_minutes"`

	Cuisines  JSONBStringArray `gorm:"type:jsonb;default:'[]'" json:"cuisines"`
	Gallery   JSONBStringArray `gorm:"type:jsonb;default:'[]'" json:"gallery"`
	Instagram string           `gorm:"size:255" json:"instagram"`
	Website   string           `gorm:"size:255" json:"website"`
	Featured  bool             `gorm:"default:false" json:"featured"`

	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int64   `gorm:"default:0" json:"review_count"`

	Embedding pgvector.Vector `gorm:"type:vector(3)" json:"-"`
}

func (p *ChefProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CustomerProfile holds the customer-specific sub-profile.
type CustomerProfile struct {
	ID          uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
	Preferences JSONBStringArray `gorm:"type:jsonb;default:'[]'" json:"preferences"`
	Location    string           `gorm:"size:100" json:"location"`
}

func (p *CustomerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
