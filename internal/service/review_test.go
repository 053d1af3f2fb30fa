package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/service"
	"github.com/hireachef/backend/internal/testhelpers"
)

func newReviewService(t *testing.T) (*gorm.DB, *service.ReviewService) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewReviewService(db, service.NewNotificationService(db))
	return db, svc
}

func chefRating(t *testing.T, db *gorm.DB, chefID interface{}) (float64, int64) {
	t.Helper()
	var profile models.ChefProfile
	require.NoError(t, db.Where("user_id = ?", chefID).First(&profile).Error)
	return profile.Rating, profile.ReviewCount
}

func TestCreateReviewUpdatesAggregate(t *testing.T) {
	db, svc := newReviewService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")
	bob := testhelpers.CreateTestUser(t, db, "Bob", "bob@example.com", "password123")

	review, err := svc.Create(ctx, alice.ID, chef.ID, 5, "Great", "Amazing dinner")
	require.NoError(t, err)
	assert.Equal(t, "Alice", review.UserName)

	rating, count := chefRating(t, db, chef.ID)
	assert.Equal(t, 5.0, rating)
	assert.Equal(t, int64(1), count)

	// 5 and 4 average to 4.5.
	_, err = svc.Create(ctx, bob.ID, chef.ID, 4, "Good", "Solid meal")
	require.NoError(t, err)

	rating, count = chefRating(t, db, chef.ID)
	assert.Equal(t, 4.5, rating)
	assert.Equal(t, int64(2), count)
}

func TestAggregateRoundsToOneDecimal(t *testing.T) {
	db, svc := newReviewService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	ratings := []int{5, 4, 4} // mean 4.333...

	for i, r := range ratings {
		author := testhelpers.CreateTestUser(t, db, "User", string(rune('a'+i))+"@example.com", "password123")
		_, err := svc.Create(ctx, author.ID, chef.ID, r, "", "")
		require.NoError(t, err)
	}

	rating, count := chefRating(t, db, chef.ID)
	assert.Equal(t, 4.3, rating)
	assert.Equal(t, int64(3), count)
}

func TestDuplicateReviewRejected(t *testing.T) {
	db, svc := newReviewService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")

	_, err := svc.Create(ctx, alice.ID, chef.ID, 5, "Great", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, alice.ID, chef.ID, 3, "Changed my mind", "")
	assert.ErrorIs(t, err, service.ErrDuplicateReview)
}

func TestReviewValidation(t *testing.T) {
	db, svc := newReviewService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")

	_, err := svc.Create(ctx, alice.ID, chef.ID, 0, "", "")
	assert.ErrorIs(t, err, service.ErrInvalidRating)
	_, err = svc.Create(ctx, alice.ID, chef.ID, 6, "", "")
	assert.ErrorIs(t, err, service.ErrInvalidRating)

	// Reviewing a non-chef fails.
	bob := testhelpers.CreateTestUser(t, db, "Bob", "bob@example.com", "password123")
	_, err = svc.Create(ctx, alice.ID, bob.ID, 5, "", "")
	assert.ErrorIs(t, err, service.ErrChefNotFound)
}

func TestUpdateReviewRefreshesAggregate(t *testing.T) {
	db, svc := newReviewService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")
	eve := testhelpers.CreateTestUser(t, db, "Eve", "eve@example.com", "password123")

	review, err := svc.Create(ctx, alice.ID, chef.ID, 5, "Great", "")
	require.NoError(t, err)

	// Only the author (or an admin) may edit.
	three := 3
	_, err = svc.Update(ctx, eve.ID, models.RoleUser, review.ID, &three, nil, nil)
	assert.ErrorIs(t, err, service.ErrNotAuthorized)

	updated, err := svc.Update(ctx, alice.ID, models.RoleUser, review.ID, &three, nil, nil)
	require.NoError(t, err)
	assert.True(t, updated.Edited)
	assert.NotNil(t, updated.EditedAt)

	rating, _ := chefRating(t, db, chef.ID)
	assert.Equal(t, 3.0, rating)
}

func TestDeleteReviewRefreshesAggregate(t *testing.T) {
	db, svc := newReviewService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password123")
	bob := testhelpers.CreateTestUser(t, db, "Bob", "bob@example.com", "password123")

	review, err := svc.Create(ctx, alice.ID, chef.ID, 5, "", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, chef.ID, 3, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, alice.ID, models.RoleUser, review.ID))

	rating, count := chefRating(t, db, chef.ID)
	assert.Equal(t, 3.0, rating)
	assert.Equal(t, int64(1), count)

	// Deleting the last review zeroes the aggregate.
	var remaining models.Review
	require.NoError(t, db.Where("chef_id = ?", chef.ID).First(&remaining).Error)
	require.NoError(t, svc.Delete(ctx, bob.ID, models.RoleUser, remaining.ID))

	rating, count = chefRating(t, db, chef.ID)
	assert.Equal(t, 0.0, rating)
	assert.Equal(t, int64(0), count)

	// Deleting frees the (chef, author) slot for a fresh review.
	_, err = svc.Create(ctx, alice.ID, chef.ID, 4, "", "")
	require.NoError(t, err)
}

func TestRatingDistribution(t *testing.T) {
	db, svc := newReviewService(t)
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	for i, r := range []int{5, 5, 3} {
		author := testhelpers.CreateTestUser(t, db, "User", string(rune('a'+i))+"@dist.example.com", "password123")
		_, err := svc.Create(ctx, author.ID, chef.ID, r, "", "")
		require.NoError(t, err)
	}

	dist, err := svc.RatingDistribution(ctx, chef.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dist[5])
	assert.Equal(t, int64(1), dist[3])
	assert.Equal(t, int64(0), dist[1])
}
