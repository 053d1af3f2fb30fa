package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/service"
	"github.com/hireachef/backend/internal/testhelpers"
)

func newChefService(t *testing.T) (*gorm.DB, *service.ChefService) {
	db := testhelpers.SetupTestDatabase(t)
	return db, service.NewChefService(db, nil)
}

func seedDirectory(t *testing.T, db *gorm.DB) (italian, japanese *models.User) {
	t.Helper()
	italian = testhelpers.CreateTestChef(t, db, "Maria Rossi", "maria@example.com", 12000, 1500, 10)
	japanese = testhelpers.CreateTestChef(t, db, "Kenji Sato", "kenji@example.com", 15000, 2000, 10)

	specialty := "Japanese"
	location := "Seattle"
	svc := service.NewChefService(db, nil)
	_, err := svc.UpdateProfile(context.Background(), japanese.ID, service.ChefProfileUpdate{
		Specialty: &specialty,
		Location:  &location,
	})
	require.NoError(t, err)
	return italian, japanese
}

func TestListChefsReturnsOnlyChefs(t *testing.T) {
	db, svc := newChefService(t)
	seedDirectory(t, db)
	testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")

	chefs, total, err := svc.ListChefs(context.Background(), service.ChefListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, chefs, 2)
	for _, c := range chefs {
		assert.True(t, c.Role.Is(models.RoleChef))
		assert.NotNil(t, c.ChefProfile)
	}
}

func TestListChefsFilters(t *testing.T) {
	db, svc := newChefService(t)
	_, japanese := seedDirectory(t, db)
	ctx := context.Background()

	chefs, total, err := svc.ListChefs(ctx, service.ChefListParams{Cuisine: "japanese"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, chefs, 1)
	assert.Equal(t, japanese.ID, chefs[0].ID)

	chefs, _, err = svc.ListChefs(ctx, service.ChefListParams{Location: "seattle"})
	require.NoError(t, err)
	require.Len(t, chefs, 1)
	assert.Equal(t, japanese.ID, chefs[0].ID)

	_, total, err = svc.ListChefs(ctx, service.ChefListParams{Cuisine: "ethiopian"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestListChefsTextSearch(t *testing.T) {
	db, svc := newChefService(t)
	_, japanese := seedDirectory(t, db)

	chefs, _, err := svc.ListChefs(context.Background(), service.ChefListParams{Query: "kenji"})
	require.NoError(t, err)
	require.Len(t, chefs, 1)
	assert.Equal(t, japanese.ID, chefs[0].ID)
}

func TestListChefsOnlyAvailable(t *testing.T) {
	db, svc := newChefService(t)
	italian, _ := seedDirectory(t, db)
	ctx := context.Background()

	off := false
	_, err := svc.UpdateProfile(ctx, italian.ID, service.ChefProfileUpdate{Availability: &off})
	require.NoError(t, err)

	_, total, err := svc.ListChefs(ctx, service.ChefListParams{OnlyAvailable: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestListChefsPagination(t *testing.T) {
	db, svc := newChefService(t)
	seedDirectory(t, db)

	chefs, total, err := svc.ListChefs(context.Background(), service.ChefListParams{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, chefs, 1)

	second, _, err := svc.ListChefs(context.Background(), service.ChefListParams{Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.NotEqual(t, chefs[0].ID, second[0].ID)
}

func TestGetChefRejectsNonChef(t *testing.T) {
	db, svc := newChefService(t)
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")

	_, err := svc.GetChef(context.Background(), alice.ID)
	assert.ErrorIs(t, err, service.ErrChefNotFound)
}

func TestUpdateProfilePartial(t *testing.T) {
	db, svc := newChefService(t)
	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 1500, 10)
	ctx := context.Background()

	bio := "Twenty years of coastal cooking."
	rate := int64(20000)
	profile, err := svc.UpdateProfile(ctx, chef.ID, service.ChefProfileUpdate{Bio: &bio, HourlyRateCents: &rate})
	require.NoError(t, err)
	assert.Equal(t, bio, profile.Bio)
	assert.Equal(t, rate, profile.HourlyRateCents)

	// Untouched fields keep their values.
	assert.Equal(t, int64(1500), profile.GuestChargeCents)
	assert.NotEmpty(t, profile.Embedding)
}

func TestAddGalleryImage(t *testing.T) {
	db, svc := newChefService(t)
	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)

	profile, err := svc.AddGalleryImage(context.Background(), chef.ID, "https://example.com/dish.jpg")
	require.NoError(t, err)
	require.Len(t, profile.Gallery, 1)
	assert.Equal(t, "https://example.com/dish.jpg", profile.Gallery[0])
}

func TestAvailabilityListsBookedSlots(t *testing.T) {
	db, svc := newChefService(t)
	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	customer := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")

	bookings := service.NewBookingService(db, service.NewNotificationService(db), nil)
	start := time.Now().Add(96 * time.Hour).Truncate(time.Hour)
	booking := createBooking(t, bookings, customer.ID, chef.ID, start)

	avail, err := svc.Availability(context.Background(), chef.ID, start)
	require.NoError(t, err)
	assert.Equal(t, start.Format("2006-01-02"), avail.Date)
	assert.Equal(t, "09:00", avail.WorkStart)
	assert.Equal(t, 60, avail.SlotMinutes)
	assert.Contains(t, avail.BookedSlots, booking.Time)

	// Cancelled bookings free the slot.
	_, err = bookings.Cancel(context.Background(), customer.ID, models.RoleUser, booking.ID, "change of plans")
	require.NoError(t, err)

	avail, err = svc.Availability(context.Background(), chef.ID, start)
	require.NoError(t, err)
	assert.Empty(t, avail.BookedSlots)
}
