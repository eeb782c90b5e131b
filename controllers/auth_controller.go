package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/part-asrama/asrama-report-api/config"
	"github.com/part-asrama/asrama-report-api/models"
	"github.com/part-asrama/asrama-report-api/services"
	"github.com/part-asrama/asrama-report-api/utils"
	"gorm.io/gorm"
)

// RegisterRequest represents the request body for resident registration
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	RoomNumber      string `json:"roomNumber"`
	Building        string `json:"building"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/v1/auth/register - creates a resident account
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Semua field wajib diisi",
			},
		})
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" ||
		req.ConfirmPassword == "" || req.RoomNumber == "" || req.Building == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Semua field wajib diisi",
			},
		})
		return
	}

	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PASSWORD_MISMATCH",
				"message": "Password tidak cocok",
			},
		})
		return
	}

	db := config.GetDB()

	// Check if the email is already registered
	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMAIL_EXISTS",
				"message": "Email sudah terdaftar",
			},
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat mendaftar",
			},
		})
		return
	}

	room, err := services.FindOrCreateRoom(db, req.RoomNumber, req.Building)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat mendaftar",
			},
		})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Terjadi kesalahan saat mendaftar",
			},
		})
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     models.RoleUser,
		RoomID:   &room.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat mendaftar",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// Login handles POST /api/v1/auth/login - verifies credentials and sets
// the session cookie
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Email dan password wajib diisi",
			},
		})
		return
	}

	db := config.GetDB()

	// Unknown email and wrong password share one failure mode
	var user models.User
	if err := db.Preload("Room").Where("email = ?", req.Email).First(&user).Error; err != nil ||
		!utils.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Email atau password salah",
			},
		})
		return
	}

	cfg := config.GetConfig()
	token, err := utils.IssueSessionToken(cfg.JWTSecret, user.ID, user.Email, user.Role)
	if err != nil {
		log.Printf("Failed to issue session token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Terjadi kesalahan saat login",
			},
		})
		return
	}

	// HTTP-only cookie, path-scoped to the whole app, 1 day
	c.SetCookie(utils.SessionCookieName, token, int(utils.SessionDuration.Seconds()), "/", "", cfg.IsProduction(), true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
				"room":  user.Room,
			},
		},
	})
}

// Logout handles POST /api/v1/auth/logout - clears the session cookie
func Logout(c *gin.Context) {
	cfg := config.GetConfig()
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", cfg != nil && cfg.IsProduction(), true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Berhasil logout",
	})
}
