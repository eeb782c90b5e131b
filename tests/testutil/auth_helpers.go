package testutil

import (
	"net/http"
	"testing"

	"github.com/part-asrama/asrama-report-api/config"
	"github.com/part-asrama/asrama-report-api/models"
	"github.com/part-asrama/asrama-report-api/utils"
	"gorm.io/gorm"
)

// CreateTestUser inserts a user with the given role and a usable password
// ("password123") and returns it.
func CreateTestUser(t *testing.T, db *gorm.DB, name, email, role string, roomID *uint) models.User {
	t.Helper()

	hashed, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     role,
		RoomID:   roomID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user %s: %v", email, err)
	}
	return user
}

// SessionTokenFor issues a session token for a user using the active
// test configuration.
func SessionTokenFor(t *testing.T, user models.User) string {
	t.Helper()

	cfg := config.GetConfig()
	if cfg == nil {
		t.Fatal("Test configuration not set; call SetupTestConfig first")
	}

	token, err := utils.IssueSessionToken(cfg.JWTSecret, user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("Failed to issue test session token: %v", err)
	}
	return token
}

// AuthenticateRequest attaches a user's session to a request via the
// auth-token cookie, the way a browser would send it.
func AuthenticateRequest(t *testing.T, req *http.Request, user models.User) {
	t.Helper()

	req.AddCookie(&http.Cookie{
		Name:  utils.SessionCookieName,
		Value: SessionTokenFor(t, user),
		Path:  "/",
	})
}
