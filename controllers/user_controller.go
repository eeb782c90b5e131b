package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/part-asrama/asrama-report-api/config"
	"github.com/part-asrama/asrama-report-api/middleware"
	"github.com/part-asrama/asrama-report-api/models"
	"github.com/part-asrama/asrama-report-api/services"
)

// UpdateRoomRequest represents the request body for a room reassignment
type UpdateRoomRequest struct {
	RoomNumber string `json:"roomNumber"`
	Building   string `json:"building"`
}

// UpdateRoom handles POST /api/v1/user/update-room - moves the current
// user to another room, creating the room record when it doesn't exist yet
func UpdateRoom(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Sesi tidak valid, silakan login kembali",
			},
		})
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RoomNumber == "" || req.Building == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Nomor kamar dan gedung wajib diisi",
			},
		})
		return
	}

	db := config.GetDB()

	var user models.User
	if err := db.First(&user, session.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "Pengguna tidak ditemukan",
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
				"message": "Terjadi kesalahan saat memperbarui nomor kamar",
			},
		})
		return
	}

	if err := db.Model(&user).Update("room_id", room.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat memperbarui nomor kamar",
			},
		})
		return
	}
	user.RoomID = &room.ID
	user.Room = room

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Nomor kamar berhasil diperbarui",
		"data": gin.H{
			"user": user,
		},
	})
}
