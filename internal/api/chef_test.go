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

func TestChefDirectoryEndpoints(t *testing.T) {
	router, db := SetupTestRouter(t)

	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password")

	// Listing is public.
	w := PerformRequest(router, http.MethodGet, "/api/v1/chefs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Chefs      []map[string]interface{} `json:"chefs"`
		Pagination Pagination               `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Chefs, 1)
	assert.Equal(t, int64(1), resp.Pagination.Total)

	w = PerformRequest(router, http.MethodGet, "/api/v1/chefs/"+chef.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(router, http.MethodGet, "/api/v1/chefs/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChefAvailabilityEndpoint(t *testing.T) {
	router, db := SetupTestRouter(t)
	chef := testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)

	w := PerformRequest(router, http.MethodGet, "/api/v1/chefs/"+chef.ID.String()+"/availability?date=2026-10-01", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var avail map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &avail))
	assert.Equal(t, "2026-10-01", avail["date"])
	assert.Equal(t, "09:00", avail["work_start"])

	w = PerformRequest(router, http.MethodGet, "/api/v1/chefs/"+chef.ID.String()+"/availability?date=soon", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChefProfileUpdateRequiresChefRole(t *testing.T) {
	router, db := SetupTestRouter(t)

	testhelpers.CreateTestChef(t, db, "Chef Bo", "bo@example.com", 10000, 0, 0)
	testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", "password")

	chefToken := LoginAs(t, router, "bo@example.com")
	userToken := LoginAs(t, router, "alice@example.com")

	body := gin.H{"bio": "Coastal Italian, twenty seasons in."}

	w := PerformRequest(router, http.MethodPut, "/api/v1/chefs/profile", userToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = PerformRequest(router, http.MethodPut, "/api/v1/chefs/profile", chefToken, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Coastal Italian, twenty seasons in.", profile["bio"])
}
