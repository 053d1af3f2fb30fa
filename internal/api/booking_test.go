package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireachef/backend/internal/testhelpers"
)

func TestBookingEndpointFlow(t *testing.T) {
	router, db := SetupTestRouter(t)

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 1500, 10)
	testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password")

	customerToken := LoginAs(t, router, "alice@example.com")
	chefToken := LoginAs(t, router, "bo@example.com")

	date := time.Now().Add(96 * time.Hour).Format("2006-01-02")
	w := PerformRequest(router, http.MethodPost, "/api/v1/bookings", customerToken, gin.H{
		"chef_id":          chef.ID.String(),
		"date":             date,
		"time":             "18:00",
		"duration_hours":   3,
		"number_of_guests": 4,
		"location":         "123 Main St",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var booking map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	bookingID := booking["id"].(string)
	assert.Equal(t, "pending", booking["status"])
	assert.Equal(t, float64(37950), booking["total_amount_cents"])

	// The customer cannot confirm their own booking.
	w = PerformRequest(router, http.MethodPatch, "/api/v1/bookings/"+bookingID+"/status", customerToken, gin.H{
		"status": "confirmed",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The chef can.
	w = PerformRequest(router, http.MethodPatch, "/api/v1/bookings/"+bookingID+"/status", chefToken, gin.H{
		"status": "confirmed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Jumping back to pending is an invalid transition.
	w = PerformRequest(router, http.MethodPatch, "/api/v1/bookings/"+bookingID+"/status", chefToken, gin.H{
		"status": "pending",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Both sides see it in their lists.
	for _, token := range []string{customerToken, chefToken} {
		w = PerformRequest(router, http.MethodGet, "/api/v1/bookings", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Bookings []map[string]interface{} `json:"bookings"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Bookings, 1)
	}
}

func TestBookingEndpointValidation(t *testing.T) {
	router, db := SetupTestRouter(t)

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password")
	token := LoginAs(t, router, "alice@example.com")

	// Unauthenticated.
	w := PerformRequest(router, http.MethodPost, "/api/v1/bookings", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed date.
	w = PerformRequest(router, http.MethodPost, "/api/v1/bookings", token, gin.H{
		"chef_id":          chef.ID.String(),
		"date":             "next tuesday",
		"number_of_guests": 2,
		"location":         "123 Main St",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed time.
	w = PerformRequest(router, http.MethodPost, "/api/v1/bookings", token, gin.H{
		"chef_id":          chef.ID.String(),
		"date":             "2026-10-01",
		"time":             "6pm",
		"number_of_guests": 2,
		"location":         "123 Main St",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown chef.
	w = PerformRequest(router, http.MethodPost, "/api/v1/bookings", token, gin.H{
		"chef_id":          "00000000-0000-0000-0000-000000000001",
		"date":             "2026-10-01",
		"number_of_guests": 2,
		"location":         "123 Main St",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelBookingEndpoint(t *testing.T) {
	router, db := SetupTestRouter(t)

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password")
	token := LoginAs(t, router, "alice@example.com")

	date := time.Now().Add(96 * time.Hour).Format("2006-01-02")
	w := PerformRequest(router, http.MethodPost, "/api/v1/bookings", token, gin.H{
		"chef_id":          chef.ID.String(),
		"date":             date,
		"number_of_guests": 2,
		"location":         "123 Main St",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var booking map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	bookingID := booking["id"].(string)

	w = PerformRequest(router, http.MethodPost, "/api/v1/bookings/"+bookingID+"/cancel", token, gin.H{
		"reason": "change of plans",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, "cancelled", booking["status"])
	assert.Equal(t, "change of plans", booking["cancellation_reason"])
}

func TestBookingStatsEndpoint(t *testing.T) {
	router, db := SetupTestRouter(t)

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password")
	token := LoginAs(t, router, "alice@example.com")

	date := time.Now().Add(96 * time.Hour).Format("2006-01-02")
	w := PerformRequest(router, http.MethodPost, "/api/v1/bookings", token, gin.H{
		"chef_id":          chef.ID.String(),
		"date":             date,
		"number_of_guests": 2,
		"location":         "123 Main St",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = PerformRequest(router, http.MethodGet, "/api/v1/bookings/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Counts map[string]float64 `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp.Counts["pending"])
}
