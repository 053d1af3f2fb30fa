package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireachef/backend/internal/events"
	"github.com/hireachef/backend/internal/models"
)

// PaymentService charges bookings through the payment provider and
// records the results. A confirmed charge moves the booking to
// confirmed on the customer's behalf.
type PaymentService struct {
	db            *gorm.DB
	provider      PaymentProvider
	notifications *NotificationService
	publisher     *events.Publisher
}

var _ IPaymentService = (*PaymentService)(nil)

func NewPaymentService(db *gorm.DB, provider PaymentProvider, notifications *NotificationService, publisher *events.Publisher) *PaymentService {
	return &PaymentService{db: db, provider: provider, notifications: notifications, publisher: publisher}
}

// CreateIntent opens a provider charge for a pending booking owned by
// the caller. The booking ID doubles as the idempotency key, so
// retrying a flaky request cannot double-charge.
func (s *PaymentService) CreateIntent(ctx context.Context, userID, bookingID uuid.UUID, paymentMethod string) (*models.Payment, *PaymentIntent, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, err
	}
	if booking.UserID != userID {
		return nil, nil, ErrNotAuthorized
	}
	if booking.Status != models.BookingPending {
		return nil, nil, ErrBookingNotPending
	}

	// Reuse an open payment instead of creating a second one.
	var payment models.Payment
	err := s.db.WithContext(ctx).
		Where("booking_id = ? AND status = ?", bookingID, models.PaymentPending).
		First(&payment).Error
	if err == nil {
		intent, err := s.provider.GetIntent(ctx, payment.IntentID)
		if err != nil {
			return nil, nil, err
		}
		return &payment, intent, nil
	}

	intent, err := s.provider.CreateIntent(ctx, booking.TotalAmountCents, "usd", booking.ID.String(), map[string]string{
		"booking_id": booking.ID.String(),
		"chef_id":    booking.ChefID.String(),
		"user_id":    booking.UserID.String(),
	})
	if err != nil {
		return nil, nil, err
	}

	payment = models.Payment{
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		ChefID:        booking.ChefID,
		AmountCents:   booking.TotalAmountCents,
		Currency:      "usd",
		IntentID:      intent.ID,
		PaymentMethod: paymentMethod,
		Status:        models.PaymentPending,
	}
	if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, nil, err
	}

	return &payment, intent, nil
}

// Confirm verifies the charge with the provider and, on success,
// completes the payment and confirms the booking as a system
// transition.
func (s *PaymentService) Confirm(ctx context.Context, userID, paymentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.WithContext(ctx).First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.UserID != userID {
		return nil, ErrNotAuthorized
	}
	if payment.Status == models.PaymentCompleted {
		return &payment, nil
	}

	intent, err := s.provider.GetIntent(ctx, payment.IntentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != "succeeded" {
		return nil, ErrPaymentNotSucceeded
	}

	var booking models.Booking
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment.Status = models.PaymentCompleted
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if err := tx.First(&booking, "id = ?", payment.BookingID).Error; err != nil {
			return err
		}
		if booking.Status == models.BookingConfirmed {
			return nil
		}
		if err := models.CanTransition(booking.Status, models.BookingConfirmed, models.ActorSystem); err != nil {
			return err
		}
		booking.Status = models.BookingConfirmed
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, payment.ChefID, models.NotificationPaymentReceived,
		fmt.Sprintf("Payment of $%.2f received for booking on %s",
			float64(payment.AmountCents)/100, booking.Date.Format("Jan 2, 2006")),
		map[string]interface{}{"payment_id": payment.ID.String(), "booking_id": booking.ID.String()})

	s.publisher.Publish(ctx, events.Event{
		Type:      "payment.completed",
		BookingID: booking.ID,
		ChefID:    payment.ChefID,
		UserID:    payment.UserID,
		Status:    string(booking.Status),
	})

	return &payment, nil
}

// Refund reverses a completed payment (admin only surface) and moves
// the booking to refunded.
func (s *PaymentService) Refund(ctx context.Context, paymentID uuid.UUID, reason string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.WithContext(ctx).First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Status == models.PaymentRefunded {
		return nil, ErrAlreadyRefunded
	}
	if payment.Status != models.PaymentCompleted {
		return nil, ErrPaymentNotSucceeded
	}

	refund, err := s.provider.Refund(ctx, payment.IntentID, reason)
	if err != nil {
		return nil, err
	}

	var booking models.Booking
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		payment.Status = models.PaymentRefunded
		payment.RefundID = refund.ID
		payment.RefundReason = reason
		payment.RefundedAt = &now
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if err := tx.First(&booking, "id = ?", payment.BookingID).Error; err != nil {
			return err
		}
		if booking.Status == models.BookingRefunded {
			return nil
		}
		if err := models.CanTransition(booking.Status, models.BookingRefunded, models.ActorSystem); err != nil {
			return err
		}
		booking.Status = models.BookingRefunded
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, payment.UserID, models.NotificationBookingStatus,
		fmt.Sprintf("Your payment of $%.2f was refunded", float64(payment.AmountCents)/100),
		map[string]interface{}{"payment_id": payment.ID.String(), "reason": reason})

	s.publisher.Publish(ctx, events.Event{
		Type:      "payment.refunded",
		BookingID: payment.BookingID,
		ChefID:    payment.ChefID,
		UserID:    payment.UserID,
		Status:    string(models.BookingRefunded),
		Detail:    reason,
	})

	return &payment, nil
}

// Get loads a payment visible to the caller: a participant or admin.
func (s *PaymentService) Get(ctx context.Context, callerID uuid.UUID, callerRole models.Role, paymentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.WithContext(ctx).First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.UserID != callerID && payment.ChefID != callerID && !callerRole.Is(models.RoleAdmin) {
		return nil, ErrNotAuthorized
	}
	return &payment, nil
}

// ListForUser returns the caller's payments, as payer, newest first.
func (s *PaymentService) ListForUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Payment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Model(&models.Payment{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// ChefEarnings sums a chef's completed payments.
func (s *PaymentService) ChefEarnings(ctx context.Context, chefID uuid.UUID) (int64, int64, error) {
	var row struct {
		Total int64
		Count int64
	}
	err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount_cents), 0) as total, COUNT(*) as count").
		Where("chef_id = ? AND status = ?", chefID, models.PaymentCompleted).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Total, row.Count, nil
}
