package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireachef/backend/internal/testhelpers"
)

func TestReviewEndpointFlow(t *testing.T) {
	router, db := SetupTestRouter(t)

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password")
	token := LoginAs(t, router, "alice@example.com")

	w := PerformRequest(router, http.MethodPost, "/api/v1/chefs/"+chef.ID.String()+"/reviews", token, gin.H{
		"rating":  5,
		"title":   "Outstanding",
		"comment": "Best dinner party we have hosted",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// A second review for the same chef conflicts.
	w = PerformRequest(router, http.MethodPost, "/api/v1/chefs/"+chef.ID.String()+"/reviews", token, gin.H{
		"rating": 3,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// The aggregate shows up on the public chef record.
	w = PerformRequest(router, http.MethodGet, "/api/v1/chefs/"+chef.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var chefResp struct {
		ChefProfile struct {
			Rating      float64 `json:"rating"`
			ReviewCount int64   `json:"review_count"`
		} `json:"chef_profile"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chefResp))
	assert.Equal(t, 5.0, chefResp.ChefProfile.Rating)
	assert.Equal(t, int64(1), chefResp.ChefProfile.ReviewCount)

	// Listing is public.
	w = PerformRequest(router, http.MethodGet, "/api/v1/chefs/"+chef.ID.String()+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Reviews []map[string]interface{} `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Len(t, listResp.Reviews, 1)
	assert.Equal(t, "Alice", listResp.Reviews[0]["user_name"])
}

func TestReviewEndpointValidation(t *testing.T) {
	router, db := SetupTestRouter(t)

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password")
	token := LoginAs(t, router, "alice@example.com")

	// Rating outside 1..5 fails binding.
	w := PerformRequest(router, http.MethodPost, "/api/v1/chefs/"+chef.ID.String()+"/reviews", token, gin.H{
		"rating": 6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Anonymous reviews are rejected.
	w = PerformRequest(router, http.MethodPost, "/api/v1/chefs/"+chef.ID.String()+"/reviews", "", gin.H{
		"rating": 5,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
