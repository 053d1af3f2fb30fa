package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types created as booking/review side effects.
const (
	NotificationBookingRequested = "booking_requested"
	NotificationBookingStatus    = "booking_status"
	NotificationBookingCancelled = "booking_cancelled"
	NotificationReviewReceived   = "review_received"
	NotificationPaymentReceived  = "payment_received"
)

// Notification is a best-effort message record; creation failures are
// logged and swallowed, never surfaced to the request that caused them.
type Notification struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Message   string    `gorm:"size:255;not null" json:"message"`
	Data      JSONBMap  `gorm:"type:jsonb;default:'{}'" json:"data"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
