package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/part-asrama/asrama-report-api/config"
	"github.com/part-asrama/asrama-report-api/middleware"
	"github.com/part-asrama/asrama-report-api/models"
)

// GetDashboard handles GET /api/v1/dashboard - role-appropriate payload:
// staff roles see every report, a resident sees their profile, room and
// five most recent reports
func GetDashboard(c *gin.Context) {
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

	db := config.GetDB()

	if session.Role == models.RoleAdmin || session.Role == models.RoleStaff {
		var reports []models.Report
		if err := db.Preload("User", selectUserSummary).
			Preload("Room").
			Preload("Images").
			Preload("Comments", orderCommentsAsc).
			Order("created_at DESC").
			Find(&reports).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Terjadi kesalahan saat mengambil data dashboard",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"reports": reports,
				"isAdmin": true,
			},
		})
		return
	}

	var user models.User
	if err := db.Preload("Room").First(&user, session.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "Pengguna tidak ditemukan",
			},
		})
		return
	}

	var reports []models.Report
	if err := db.Where("user_id = ?", user.ID).
		Preload("Room").
		Preload("Images").
		Preload("Comments", orderCommentsAsc).
		Order("created_at DESC").
		Limit(5).
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat mengambil data dashboard",
			},
		})
		return
	}

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
			"reports": reports,
			"isAdmin": false,
		},
	})
}
