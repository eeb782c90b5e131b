package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/part-asrama/asrama-report-api/config"
	"github.com/part-asrama/asrama-report-api/middleware"
	"github.com/part-asrama/asrama-report-api/models"
	"github.com/part-asrama/asrama-report-api/services"
	"github.com/part-asrama/asrama-report-api/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

// setupControllerTest wires an in-memory database, test configuration and
// mock image storage for a controller test.
func setupControllerTest(t *testing.T) (*gorm.DB, *services.MockImageService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.SetConfig(&config.Config{
		DatabaseURL: "sqlite://:memory:",
		GoEnv:       "test",
		JWTSecret:   testJWTSecret,
		UploadDir:   t.TempDir(),
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Report{},
		&models.Image{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	config.SetDB(db)

	mockImages := services.NewMockImageService()
	mockImages.SetAsMockForTesting()

	return db, mockImages
}

// newTestRouter registers the API routes the way main does, including the
// session and staff gates.
func newTestRouter() *gin.Engine {
	router := gin.New()

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", Register)
	auth.POST("/login", Login)
	auth.POST("/logout", Logout)

	v1.GET("/reports/history", ReportHistory)
	v1.GET("/reports/stats", GetReportStats)
	v1.GET("/uploads/:filename", GetUploadedImage)

	protected := v1.Group("")
	protected.Use(middleware.RequireSession())
	protected.GET("/dashboard", GetDashboard)
	protected.POST("/reports", CreateReport)
	protected.GET("/reports/:id", GetReport)
	protected.POST("/reports/:id/comments", AddComment)
	protected.GET("/reports/:id/comments", ListComments)
	protected.POST("/user/update-room", UpdateRoom)

	staff := protected.Group("")
	staff.Use(middleware.RequireStaff())
	staff.PATCH("/reports/:id", UpdateReport)

	return router
}

func seedRoom(t *testing.T, db *gorm.DB, number, building string) models.Room {
	t.Helper()
	room := models.Room{Number: number, Building: building, Floor: number[:1]}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("Failed to seed room %s-%s: %v", building, number, err)
	}
	return room
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string, roomID *uint) models.User {
	t.Helper()
	hashed, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	user := models.User{Name: name, Email: email, Password: hashed, Role: role, RoomID: roomID}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return user
}

func seedReport(t *testing.T, db *gorm.DB, user models.User, room models.Room) models.Report {
	t.Helper()
	report := models.Report{
		Title:              "Lampu mati",
		Description:        "Lampu kamar mati total",
		Category:           "electrical",
		Status:             models.StatusPending,
		UserID:             user.ID,
		RoomID:             room.ID,
		ReportedRoomNumber: room.Number,
		ReportedBuilding:   room.Building,
	}
	if err := db.Create(&report).Error; err != nil {
		t.Fatalf("Failed to seed report: %v", err)
	}
	return report
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.IssueSessionToken(testJWTSecret, user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// doJSON performs a JSON request, optionally authenticated as user
func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}, user *models.User) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: tokenFor(t, *user)})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doMultipart performs a multipart form request with optional image files
func doMultipart(t *testing.T, router *gin.Engine, url string, fields map[string]string, imageNames []string, user *models.User) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("Failed to write form field %s: %v", key, err)
		}
	}
	for _, name := range imageNames {
		part, err := writer.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("Failed to create form file %s: %v", name, err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("Failed to write form file %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if user != nil {
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: tokenFor(t, *user)})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// parseBody unmarshals a recorded JSON response
func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response should be valid JSON, got %q: %v", w.Body.String(), err)
	}
	return body
}

// errorField returns response.error[key] for error envelope assertions
func errorField(t *testing.T, w *httptest.ResponseRecorder, key string) string {
	t.Helper()
	body := parseBody(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected error envelope, got %q", w.Body.String())
	}
	value, _ := errObj[key].(string)
	return value
}

// dataField returns response.data for success envelope assertions
func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := parseBody(t, w)
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected data envelope, got %q", w.Body.String())
	}
	return data
}
