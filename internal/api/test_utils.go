package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hireachef/backend/internal/middleware"
	"github.com/hireachef/backend/internal/service"
	"github.com/hireachef/backend/internal/testhelpers"
)

// SetupTestRouter builds the full API on an in-memory database with
// the stub payment provider. Redis, S3 and the event publisher stay
// nil, so caching and rate limiting are off.
func SetupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	SetupAPI(router, Dependencies{
		DB:        db,
		Provider:  service.StubPaymentProvider{},
		JWTSecret: "test-secret",
	})
	return router, db
}

// LoginAs logs a fixture account in and returns its bearer token.
// Accounts created through testhelpers all use the password "password".
func LoginAs(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := PerformRequest(router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "password",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login as %s failed with status %d: %s", email, w.Code, w.Body.String())
	}

	var resp AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return resp.Token
}

// PerformRequest runs one request through the router. An empty token
// sends the request unauthenticated.
func PerformRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
