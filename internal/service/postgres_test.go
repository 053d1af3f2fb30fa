package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireachef/backend/internal/service"
	"github.com/hireachef/backend/internal/testhelpers"
)

// These tests cover behavior that only exists on the PostgreSQL
// dialect: vector-distance search ordering and ::numeric rounding in
// the review aggregate. They skip when docker is unavailable.

func TestChefSearchUsesEmbeddingOnPostgres(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	svc := service.NewChefService(db, nil)
	ctx := context.Background()

	testhelpers.CreateTestChef(t, db, "Maria Rossi", "maria@example.com", 12000, 0, 0)
	testhelpers.CreateTestChef(t, db, "Kenji Sato", "kenji@example.com", 15000, 0, 0)

	chefs, total, err := svc.ListChefs(ctx, service.ChefListParams{Query: "fresh handmade pasta"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, chefs, 2)
}

func TestReviewAggregateRoundingOnPostgres(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	svc := service.NewReviewService(db, service.NewNotificationService(db))
	ctx := context.Background()

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	for i, r := range []int{5, 4, 4} {
		author := testhelpers.CreateTestUser(t, db, "User", string(rune('a'+i))+"@example.com", "password123")
		_, err := svc.Create(ctx, author.ID, chef.ID, r, "", "")
		require.NoError(t, err)
	}

	rating, count := chefRating(t, db, chef.ID)
	assert.Equal(t, 4.3, rating)
	assert.Equal(t, int64(3), count)
}
