package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// TestServerStartup verifies the full router wires up
func TestServerStartup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := setupRouter()
	assert.NotNil(t, router, "Router should be initialized")
}

// TestAPIHealthEndpointAcceptance simulates a real HTTP request against
// the assembled router
func TestAPIHealthEndpointAcceptance(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Health endpoint should return 200 OK")

	var response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err, "Response should be valid JSON")
	assert.True(t, response.Success, "Success field should be true")
	assert.Equal(t, "PART dormitory report API is running", response.Message)
}

// TestSessionGateOnProtectedRoutes verifies that every session-gated
// route rejects anonymous requests while public routes do not
func TestSessionGateOnProtectedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := setupRouter()

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/dashboard"},
		{http.MethodPost, "/api/v1/reports"},
		{http.MethodGet, "/api/v1/reports/1"},
		{http.MethodPost, "/api/v1/reports/1/comments"},
		{http.MethodGet, "/api/v1/reports/1/comments"},
		{http.MethodPost, "/api/v1/user/update-room"},
		{http.MethodPatch, "/api/v1/reports/1"},
	}
	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code,
			"%s %s should require a session", route.method, route.path)
	}

	// The health endpoint answers without any session
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
