package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/service"
	"github.com/hireachef/backend/internal/testhelpers"
)

func newBookingService(t *testing.T) (*gorm.DB, *service.BookingService) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewBookingService(db, service.NewNotificationService(db), nil)
	return db, svc
}

func createBooking(t *testing.T, svc *service.BookingService, userID, chefID uuid.UUID, start time.Time) *models.Booking {
	t.Helper()
	booking, err := svc.Create(context.Background(), userID, service.BookingCreateParams{
		ChefID:         chefID,
		Date:           start,
		Time:           start.Format("15:04"),
		DurationHours:  3,
		NumberOfGuests: 2,
		Location:       "123 Main St",
	})
	require.NoError(t, err)
	return booking
}

func TestCalculateAmountCents(t *testing.T) {
	// $100/h for 3 hours, 4 guests at $15 per extra guest, 10% service
	// charge: 30000 + 3*1500 = 34500, plus 3450 = 37950.
	profile := &models.ChefProfile{
		HourlyRateCents:  10000,
		GuestChargeCents: 1500,
		ServiceChargePct: 10,
	}
	assert.Equal(t, int64(37950), service.CalculateAmountCents(profile, 3, 4))

	// A single guest pays no guest fees.
	assert.Equal(t, int64(33000), service.CalculateAmountCents(profile, 3, 1))

	profile.ServiceChargePct = 0
	assert.Equal(t, int64(30000), service.CalculateAmountCents(profile, 3, 1))
}

func TestCreateBookingSnapshotsAndPrices(t *testing.T) {
	db, svc := newBookingService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 1500, 10)
	customer := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")

	booking, err := svc.Create(ctx, customer.ID, service.BookingCreateParams{
		ChefID:         chef.ID,
		Date:           time.Now().Add(72 * time.Hour),
		Time:           "18:00",
		DurationHours:  3,
		NumberOfGuests: 4,
		Location:       "123 Main St",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, int64(37950), booking.TotalAmountCents)
	assert.Equal(t, "Chef Bo", booking.ChefName)
	assert.Equal(t, "bo@example.com", booking.ChefEmail)
	assert.Equal(t, "Alice", booking.CustomerName)

	// The chef was notified about the request.
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", chef.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateBookingRequiresPublishedRate(t *testing.T) {
	db, svc := newBookingService(t)

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 0, 0, 0)
	customer := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")

	_, err := svc.Create(context.Background(), customer.ID, service.BookingCreateParams{
		ChefID:         chef.ID,
		Date:           time.Now().Add(72 * time.Hour),
		NumberOfGuests: 2,
		Location:       "123 Main St",
	})
	assert.ErrorIs(t, err, service.ErrChefRateUnset)
}

func TestCreateBookingRejectsNonChefTarget(t *testing.T) {
	db, svc := newBookingService(t)

	customer := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")
	other := testhelpers.CreateTestUser(t, db, "Bob", "bob@example.com", "password123")

	_, err := svc.Create(context.Background(), customer.ID, service.BookingCreateParams{
		ChefID:         other.ID,
		Date:           time.Now().Add(72 * time.Hour),
		NumberOfGuests: 2,
		Location:       "123 Main St",
	})
	assert.ErrorIs(t, err, service.ErrChefNotFound)
}

func TestListBookingsScopedByRole(t *testing.T) {
	db, svc := newBookingService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	otherChef := testhelpers.CreateTestChef(t, db, "Chef Cy", "cy@example.com", 10000, 0, 0)
	customer := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")
	otherCustomer := testhelpers.CreateTestUser(t, db, "Bob", "bob@example.com", "password123")
	admin := testhelpers.CreateTestAdmin(t, db, "admin@example.com")

	start := time.Now().Add(72 * time.Hour)
	createBooking(t, svc, customer.ID, chef.ID, start)
	createBooking(t, svc, customer.ID, otherChef.ID, start)
	createBooking(t, svc, otherCustomer.ID, chef.ID, start)

	// Customers see only their own requests.
	bookings, total, err := svc.List(ctx, customer.ID, models.RoleUser, service.BookingListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, b := range bookings {
		assert.Equal(t, customer.ID, b.UserID)
	}

	// Chefs see bookings addressed to them.
	_, total, err = svc.List(ctx, chef.ID, models.RoleChef, service.BookingListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Admins see everything.
	_, total, err = svc.List(ctx, admin.ID, models.RoleAdmin, service.BookingListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// Status filter.
	_, total, err = svc.List(ctx, admin.ID, models.RoleAdmin, service.BookingListParams{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, _, err = svc.List(ctx, admin.ID, models.RoleAdmin, service.BookingListParams{Status: "shipped"})
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestGetBookingAuthorization(t *testing.T) {
	db, svc := newBookingService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	customer := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")
	stranger := testhelpers.CreateTestUser(t, db, "Eve", "eve@example.com", "password123")

	booking := createBooking(t, svc, customer.ID, chef.ID, time.Now().Add(72*time.Hour))

	_, err := svc.Get(ctx, customer.ID, models.RoleUser, booking.ID)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, chef.ID, models.RoleChef, booking.ID)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, stranger.ID, models.RoleUser, booking.ID)
	assert.ErrorIs(t, err, service.ErrNotAuthorized)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	db, svc := newBookingService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	otherChef := testhelpers.CreateTestChef(t, db, "Chef Cy", "cy@example.com", 10000, 0, 0)
	customer := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")

	booking := createBooking(t, svc, customer.ID, chef.ID, time.Now().Add(72*time.Hour))

	// Another chef cannot touch this booking.
	_, err := svc.UpdateStatus(ctx, otherChef.ID, models.RoleChef, booking.ID, models.BookingConfirmed)
	assert.ErrorIs(t, err, service.ErrNotAuthorized)

	// Customers do not drive status changes through this path.
	_, err = svc.UpdateStatus(ctx, customer.ID, models.RoleUser, booking.ID, models.BookingConfirmed)
	assert.ErrorIs(t, err, service.ErrNotAuthorized)

	updated, err := svc.UpdateStatus(ctx, chef.ID, models.RoleChef, booking.ID, models.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)

	// Cannot skip from confirmed back to pending.
	_, err = svc.UpdateStatus(ctx, chef.ID, models.RoleChef, booking.ID, models.BookingPending)
	assert.Error(t, err)

	updated, err = svc.UpdateStatus(ctx, chef.ID, models.RoleChef, booking.ID, models.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, updated.Status)

	// Completed is terminal.
	_, err = svc.UpdateStatus(ctx, chef.ID, models.RoleChef, booking.ID, models.BookingCancelled)
	assert.Error(t, err)
}

func TestUpdateStatusCancellationKeepsWindowAndAudit(t *testing.T) {
	db, svc := newBookingService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	customer := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")

	// Inside the window a status update is no back door around Cancel.
	soon := createBooking(t, svc, customer.ID, chef.ID, time.Now().Add(10*time.Hour))
	_, err := svc.UpdateStatus(ctx, chef.ID, models.RoleChef, soon.ID, models.BookingCancelled)
	assert.ErrorIs(t, err, service.ErrCancellationWindow)

	var unchanged models.Booking
	require.NoError(t, db.First(&unchanged, "id = ?", soon.ID).Error)
	assert.Equal(t, models.BookingPending, unchanged.Status)

	// Outside the window the cancellation lands with the audit fields.
	booking := createBooking(t, svc, customer.ID, chef.ID, time.Now().Add(72*time.Hour))
	cancelled, err := svc.UpdateStatus(ctx, chef.ID, models.RoleChef, booking.ID, models.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledBy)
	assert.Equal(t, chef.ID, *cancelled.CancelledBy)
	assert.NotNil(t, cancelled.CancelledAt)
}

func TestUpdateDetailsOnlyWhilePending(t *testing.T) {
	db, svc := newBookingService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 1500, 0)
	customer := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")

	booking := createBooking(t, svc, customer.ID, chef.ID, time.Now().Add(72*time.Hour))

	// Guest-count changes reprice the booking: 3h*10000 + 3*1500.
	guests := 4
	updated, err := svc.UpdateDetails(ctx, customer.ID, booking.ID, service.BookingDetailsUpdate{NumberOfGuests: &guests})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.NumberOfGuests)
	assert.Equal(t, int64(34500), updated.TotalAmountCents)

	// Only the requester may edit.
	occasion := "Birthday"
	_, err = svc.UpdateDetails(ctx, chef.ID, booking.ID, service.BookingDetailsUpdate{Occasion: &occasion})
	assert.ErrorIs(t, err, service.ErrNotAuthorized)

	// Once confirmed, details are frozen.
	_, err = svc.UpdateStatus(ctx, chef.ID, models.RoleChef, booking.ID, models.BookingConfirmed)
	require.NoError(t, err)
	_, err = svc.UpdateDetails(ctx, customer.ID, booking.ID, service.BookingDetailsUpdate{Occasion: &occasion})
	assert.ErrorIs(t, err, service.ErrBookingNotPending)
}

func TestCancelBookingWindow(t *testing.T) {
	db, svc := newBookingService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	customer := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")
	admin := testhelpers.CreateTestAdmin(t, db, "admin@example.com")

	// More than 24h out: cancellation allowed, audit recorded.
	booking := createBooking(t, svc, customer.ID, chef.ID, time.Now().Add(72*time.Hour))
	cancelled, err := svc.Cancel(ctx, customer.ID, models.RoleUser, booking.ID, "change of plans")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Equal(t, "change of plans", cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancelledBy)
	assert.Equal(t, customer.ID, *cancelled.CancelledBy)
	assert.NotNil(t, cancelled.CancelledAt)

	// Inside the window: rejected for participants.
	soon := createBooking(t, svc, customer.ID, chef.ID, time.Now().Add(10*time.Hour))
	_, err = svc.Cancel(ctx, customer.ID, models.RoleUser, soon.ID, "too late")
	assert.ErrorIs(t, err, service.ErrCancellationWindow)
	_, err = svc.Cancel(ctx, chef.ID, models.RoleChef, soon.ID, "too late")
	assert.ErrorIs(t, err, service.ErrCancellationWindow)

	// Admins are exempt from the window.
	cancelled, err = svc.Cancel(ctx, admin.ID, models.RoleAdmin, soon.ID, "fraud")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)

	// Cancelled is terminal.
	_, err = svc.Cancel(ctx, customer.ID, models.RoleUser, booking.ID, "again")
	assert.Error(t, err)
}

func TestCancelRequiresParticipant(t *testing.T) {
	db, svc := newBookingService(t)

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	customer := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")
	stranger := testhelpers.CreateTestUser(t, db, "Eve", "eve@example.com", "password123")

	booking := createBooking(t, svc, customer.ID, chef.ID, time.Now().Add(72*time.Hour))

	_, err := svc.Cancel(context.Background(), stranger.ID, models.RoleUser, booking.ID, "not mine")
	assert.ErrorIs(t, err, service.ErrNotAuthorized)
}

func TestStatusCounts(t *testing.T) {
	db, svc := newBookingService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	customer := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")

	start := time.Now().Add(72 * time.Hour)
	createBooking(t, svc, customer.ID, chef.ID, start)
	b := createBooking(t, svc, customer.ID, chef.ID, start)
	_, err := svc.UpdateStatus(ctx, chef.ID, models.RoleChef, b.ID, models.BookingConfirmed)
	require.NoError(t, err)

	counts, err := svc.StatusCounts(ctx, chef.ID, models.RoleChef)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.BookingPending])
	assert.Equal(t, int64(1), counts[models.BookingConfirmed])
}
