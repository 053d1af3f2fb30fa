package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentStatus is a payment record's state.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment records a provider charge for a booking.
type Payment struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"booking_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ChefID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"chef_id"`

	AmountCents   int64         `gorm:"not null" json:"amount_cents"`
	Currency      string        `gorm:"size:3;default:'usd'" json:"currency"`
	IntentID      string        `gorm:"size:255;uniqueIndex" json:"intent_id"`
	PaymentMethod string        `gorm:"size:100" json:"payment_method"`
	Status        PaymentStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`

	RefundID     string     `gorm:"size:255" json:"refund_id,omitempty"`
	RefundReason string     `gorm:"size:255" json:"refund_reason,omitempty"`
	RefundedAt   *time.Time `json:"refunded_at,omitempty"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
