package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireachef/backend/internal/events"
	"github.com/hireachef/backend/internal/models"
)

// cancellationCutoff is how long before the booking start time
// cancellation remains allowed.
const cancellationCutoff = 24 * time.Hour

// BookingCreateParams is the validated input for a new booking request.
type BookingCreateParams struct {
	ChefID          uuid.UUID
	Date            time.Time
	Time            string // HH:MM
	DurationHours   int
	NumberOfGuests  int
	Occasion        string
	MenuID          *uuid.UUID
	SpecialRequests string
	Location        string
	ContactPhone    string
}

// BookingDetailsUpdate carries requester-editable fields; only pending
// bookings accept it.
type BookingDetailsUpdate struct {
	Date            *time.Time `json:"date"`
	Time            *string    `json:"time"`
	NumberOfGuests  *int       `json:"number_of_guests"`
	Occasion        *string    `json:"occasion"`
	SpecialRequests *string    `json:"special_requests"`
	Location        *string    `json:"location"`
	ContactPhone    *string    `json:"contact_phone"`
}

// BookingListParams filters a role-scoped booking listing.
type BookingListParams struct {
	Status string
	Page   int
	Limit  int
}

// BookingService owns the booking lifecycle: creation with pricing,
// the status state machine, cancellation and role-scoped reads.
type BookingService struct {
	db            *gorm.DB
	notifications *NotificationService
	publisher     *events.Publisher
}

var _ IBookingService = (*BookingService)(nil)

func NewBookingService(db *gorm.DB, notifications *NotificationService, publisher *events.Publisher) *BookingService {
	return &BookingService{db: db, notifications: notifications, publisher: publisher}
}

// CalculateAmountCents prices a booking from the chef's published
// rates. The first guest is covered by the hourly rate; each extra
// guest adds the per-guest charge; the service charge percentage
// applies to that subtotal.
func CalculateAmountCents(profile *models.ChefProfile, durationHours, guests int) int64 {
	base := profile.HourlyRateCents * int64(durationHours)
	var guestFees int64
	if guests > 1 {
		guestFees = int64(guests-1) * profile.GuestChargeCents
	}
	subtotal := base + guestFees
	serviceFee := int64(float64(subtotal) * profile.ServiceChargePct / 100)
	return subtotal + serviceFee
}

// Create records a pending booking for the requester. The chef's
// display fields and the computed price are snapshotted so later
// profile edits do not rewrite booking history.
func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, params BookingCreateParams) (*models.Booking, error) {
	var chef models.User
	err := s.db.WithContext(ctx).
		Preload("ChefProfile").
		Where("id = ? AND role = ?", params.ChefID, models.RoleChef).
		First(&chef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChefNotFound
		}
		return nil, err
	}
	if chef.ChefProfile == nil || chef.ChefProfile.HourlyRateCents <= 0 {
		return nil, ErrChefRateUnset
	}

	var customer models.User
	if err := s.db.WithContext(ctx).First(&customer, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if params.DurationHours <= 0 {
		params.DurationHours = 3
	}
	if params.NumberOfGuests < 1 {
		params.NumberOfGuests = 1
	}

	booking := models.Booking{
		UserID:          userID,
		ChefID:          chef.ID,
		Date:            params.Date,
		Time:            params.Time,
		DurationHours:   params.DurationHours,
		NumberOfGuests:  params.NumberOfGuests,
		Occasion:        params.Occasion,
		MenuID:          params.MenuID,
		SpecialRequests: params.SpecialRequests,
		Location:        params.Location,
		ContactPhone:    params.ContactPhone,
		Status:          models.BookingPending,

		TotalAmountCents: CalculateAmountCents(chef.ChefProfile, params.DurationHours, params.NumberOfGuests),

		ChefName:      chef.Name,
		ChefEmail:     chef.Email,
		ChefSpecialty: chef.ChefProfile.Specialty,
		ChefImage:     chef.ProfilePictureURL,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
	}

	if err := s.db.WithContext(ctx).Create(&booking).Error; err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, chef.ID, models.NotificationBookingRequested,
		fmt.Sprintf("%s requested a booking on %s", customer.Name, booking.Date.Format("Jan 2, 2006")),
		map[string]interface{}{"booking_id": booking.ID.String()})

	s.publisher.Publish(ctx, events.Event{
		Type:      "booking.created",
		BookingID: booking.ID,
		ChefID:    booking.ChefID,
		UserID:    booking.UserID,
		Status:    string(booking.Status),
	})

	return &booking, nil
}

// List returns bookings visible to the caller. Admins see everything;
// chefs see bookings addressed to them; everyone else sees bookings
// they requested.
func (s *BookingService) List(ctx context.Context, callerID uuid.UUID, callerRole models.Role, params BookingListParams) ([]models.Booking, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}

	query := s.db.WithContext(ctx).Model(&models.Booking{})
	switch {
	case callerRole.Is(models.RoleAdmin):
		// no scope filter
	case callerRole.Is(models.RoleChef):
		query = query.Where("chef_id = ?", callerID)
	default:
		query = query.Where("user_id = ?", callerID)
	}

	if params.Status != "" {
		status, ok := models.ParseBookingStatus(params.Status)
		if !ok {
			return nil, 0, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	err := query.Order("created_at DESC").
		Limit(params.Limit).
		Offset((params.Page - 1) * params.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// Get loads a booking the caller is allowed to see: a participant or
// an admin.
func (s *BookingService) Get(ctx context.Context, callerID uuid.UUID, callerRole models.Role, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !s.canView(&booking, callerID, callerRole) {
		return nil, ErrNotAuthorized
	}
	return &booking, nil
}

// UpdateStatus moves a booking through the state machine. Chefs may
// only move their own bookings; admins may move any. Cancellation goes
// through Cancel, so the cutoff window and audit fields always apply.
func (s *BookingService) UpdateStatus(ctx context.Context, callerID uuid.UUID, callerRole models.Role, bookingID uuid.UUID, target models.BookingStatus) (*models.Booking, error) {
	if target == models.BookingCancelled {
		return s.Cancel(ctx, callerID, callerRole, bookingID, "")
	}

	var actor models.Actor
	switch {
	case callerRole.Is(models.RoleAdmin):
		actor = models.ActorAdmin
	case callerRole.Is(models.RoleChef):
		actor = models.ActorChef
	default:
		return nil, ErrNotAuthorized
	}

	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if actor == models.ActorChef && booking.ChefID != callerID {
			return ErrNotAuthorized
		}
		if err := models.CanTransition(booking.Status, target, actor); err != nil {
			return err
		}

		booking.Status = target
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, booking.UserID, models.NotificationBookingStatus,
		fmt.Sprintf("Your booking with %s is now %s", booking.ChefName, booking.Status),
		map[string]interface{}{"booking_id": booking.ID.String(), "status": string(booking.Status)})

	s.publisher.Publish(ctx, events.Event{
		Type:      "booking.status_changed",
		BookingID: booking.ID,
		ChefID:    booking.ChefID,
		UserID:    booking.UserID,
		Status:    string(booking.Status),
	})

	return &booking, nil
}

// UpdateDetails lets the requester adjust a booking that is still
// pending. Guest-count changes reprice the booking.
func (s *BookingService) UpdateDetails(ctx context.Context, callerID uuid.UUID, bookingID uuid.UUID, update BookingDetailsUpdate) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.UserID != callerID {
			return ErrNotAuthorized
		}
		if booking.Status != models.BookingPending {
			return ErrBookingNotPending
		}

		if update.Date != nil {
			booking.Date = *update.Date
		}
		if update.Time != nil {
			booking.Time = *update.Time
		}
		if update.Occasion != nil {
			booking.Occasion = *update.Occasion
		}
		if update.SpecialRequests != nil {
			booking.SpecialRequests = *update.SpecialRequests
		}
		if update.Location != nil {
			booking.Location = *update.Location
		}
		if update.ContactPhone != nil {
			booking.ContactPhone = *update.ContactPhone
		}
		if update.NumberOfGuests != nil && *update.NumberOfGuests >= 1 {
			booking.NumberOfGuests = *update.NumberOfGuests
			var profile models.ChefProfile
			if err := tx.Where("user_id = ?", booking.ChefID).First(&profile).Error; err == nil {
				booking.TotalAmountCents = CalculateAmountCents(&profile, booking.DurationHours, booking.NumberOfGuests)
			} else {
				log.Printf("[BookingService] keeping price for booking %s, chef profile lookup failed: %v", booking.ID, err)
			}
		}

		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel soft-cancels a booking on behalf of a participant or an
// admin, recording who cancelled, when and why. Non-admins are held
// to the cutoff window before the booking start time.
func (s *BookingService) Cancel(ctx context.Context, callerID uuid.UUID, callerRole models.Role, bookingID uuid.UUID, reason string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		actor, err := s.cancelActor(&booking, callerID, callerRole)
		if err != nil {
			return err
		}
		if err := models.CanTransition(booking.Status, models.BookingCancelled, actor); err != nil {
			return err
		}
		if actor != models.ActorAdmin && time.Until(booking.StartTime()) < cancellationCutoff {
			return ErrCancellationWindow
		}

		now := time.Now()
		booking.Status = models.BookingCancelled
		booking.CancellationReason = reason
		booking.CancelledBy = &callerID
		booking.CancelledAt = &now
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	// Tell the other party.
	recipient := booking.ChefID
	if callerID == booking.ChefID {
		recipient = booking.UserID
	}
	s.notifications.Notify(ctx, recipient, models.NotificationBookingCancelled,
		fmt.Sprintf("Booking on %s was cancelled", booking.Date.Format("Jan 2, 2006")),
		map[string]interface{}{"booking_id": booking.ID.String(), "reason": reason})

	s.publisher.Publish(ctx, events.Event{
		Type:      "booking.cancelled",
		BookingID: booking.ID,
		ChefID:    booking.ChefID,
		UserID:    booking.UserID,
		Status:    string(booking.Status),
		Detail:    reason,
	})

	return &booking, nil
}

// StatusCounts returns booking totals per status for the caller's
// scope, for dashboard summaries.
func (s *BookingService) StatusCounts(ctx context.Context, callerID uuid.UUID, callerRole models.Role) (map[models.BookingStatus]int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Booking{})
	switch {
	case callerRole.Is(models.RoleAdmin):
	case callerRole.Is(models.RoleChef):
		query = query.Where("chef_id = ?", callerID)
	default:
		query = query.Where("user_id = ?", callerID)
	}

	var rows []struct {
		Status models.BookingStatus
		Count  int64
	}
	if err := query.Select("status, COUNT(*) as count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.BookingStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (s *BookingService) canView(b *models.Booking, callerID uuid.UUID, callerRole models.Role) bool {
	return callerRole.Is(models.RoleAdmin) || b.UserID == callerID || b.ChefID == callerID
}

func (s *BookingService) cancelActor(b *models.Booking, callerID uuid.UUID, callerRole models.Role) (models.Actor, error) {
	switch {
	case callerRole.Is(models.RoleAdmin):
		return models.ActorAdmin, nil
	case b.ChefID == callerID:
		return models.ActorChef, nil
	case b.UserID == callerID:
		return models.ActorCustomer, nil
	}
	return "", ErrNotAuthorized
}
