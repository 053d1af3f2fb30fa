package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus is a booking lifecycle state.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingRefunded  BookingStatus = "refunded"
)

// Actor identifies who is driving a status transition.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorChef     Actor = "chef"
	ActorAdmin    Actor = "admin"
	// ActorSystem covers transitions driven by the payment flow.
	ActorSystem Actor = "system"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  BookingStatus
	To    BookingStatus
	Actor Actor
}

// validTransitions is the authoritative state machine definition.
// completed, cancelled and refunded are terminal.
var validTransitions = []Transition{
	{From: BookingPending, To: BookingConfirmed, Actor: ActorChef},
	{From: BookingPending, To: BookingConfirmed, Actor: ActorAdmin},
	{From: BookingPending, To: BookingConfirmed, Actor: ActorSystem},
	{From: BookingPending, To: BookingCancelled, Actor: ActorCustomer},
	{From: BookingPending, To: BookingCancelled, Actor: ActorChef},
	{From: BookingPending, To: BookingCancelled, Actor: ActorAdmin},
	{From: BookingConfirmed, To: BookingCompleted, Actor: ActorChef},
	{From: BookingConfirmed, To: BookingCompleted, Actor: ActorAdmin},
	{From: BookingConfirmed, To: BookingCancelled, Actor: ActorCustomer},
	{From: BookingConfirmed, To: BookingCancelled, Actor: ActorChef},
	{From: BookingConfirmed, To: BookingCancelled, Actor: ActorAdmin},
	{From: BookingConfirmed, To: BookingRefunded, Actor: ActorAdmin},
	{From: BookingConfirmed, To: BookingRefunded, Actor: ActorSystem},
}

type transitionKey struct {
	From  BookingStatus
	To    BookingStatus
	Actor Actor
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ParseBookingStatus validates a status string from a request body.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled, BookingRefunded:
		return BookingStatus(s), true
	}
	return "", false
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status BookingStatus) []BookingStatus {
	var nexts []BookingStatus
	seen := map[BookingStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// TransitionError reports a state change the machine does not allow.
type TransitionError struct {
	From  BookingStatus
	To    BookingStatus
	Actor Actor
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s is not allowed for %s (valid next states from %s: %s)",
		e.From, e.To, e.Actor, e.From, describeValidFrom(e.From))
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to BookingStatus, actor Actor) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return &TransitionError{From: from, To: to, Actor: actor}
}

func describeValidFrom(status BookingStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none, terminal state"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// Booking associates a requester with a chef for a scheduled
// engagement. Chef and customer display fields are snapshotted at
// creation time for fast read-back.
type Booking struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ChefID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"chef_id"`

	Date            time.Time  `gorm:"not null" json:"date"`
	Time            string     `gorm:"size:5" json:"time"`
	DurationHours   int        `gorm:"default:3" json:"duration_hours"`
	NumberOfGuests  int        `gorm:"not null" json:"number_of_guests"`
	Occasion        string     `gorm:"size:100" json:"occasion"`
	MenuID          *uuid.UUID `gorm:"type:varchar(36)" json:"menu_id,omitempty"`
	SpecialRequests string     `gorm:"type:text" json:"special_requests"`
	Location        string     `gorm:"size:255;not null" json:"location"`
	ContactPhone    string     `gorm:"size:30" json:"contact_phone"`

	Status           BookingStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	TotalAmountCents int64         `gorm:"default:0" json:"total_amount_cents"`

	// Snapshots captured at creation time
	ChefName      string `gorm:"size:100" json:"chef_name"`
	ChefEmail     string `gorm:"size:255" json:"chef_email"`
	ChefSpecialty string `gorm:"size:100" json:"chef_specialty"`
	ChefImage     string `gorm:"size:255" json:"chef_image"`
	CustomerName  string `gorm:"size:100" json:"customer_name"`
	CustomerEmail string `gorm:"size:255" json:"customer_email"`

	// Cancellation audit
	CancellationReason string     `gorm:"size:255" json:"cancellation_reason,omitempty"`
	CancelledBy        *uuid.UUID `gorm:"type:varchar(36)" json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// StartTime combines the booking date with its HH:MM time field.
// A missing or malformed time falls back to the bare date.
func (b *Booking) StartTime() time.Time {
	if b.Time != "" {
		if t, err := time.Parse("15:04", b.Time); err == nil {
			return time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(),
				t.Hour(), t.Minute(), 0, 0, b.Date.Location())
		}
	}
	return b.Date
}
