package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/part-asrama/asrama-report-api/config"
	"github.com/part-asrama/asrama-report-api/middleware"
	"github.com/part-asrama/asrama-report-api/models"
	"github.com/part-asrama/asrama-report-api/services"
)

// AddCommentRequest represents the request body for adding a comment
type AddCommentRequest struct {
	Message string `json:"message"`
}

// AddComment handles POST /api/v1/reports/:id/comments - appends a message
// to a report's discussion thread
func AddComment(c *gin.Context) {
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

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Pesan wajib diisi",
			},
		})
		return
	}

	db := config.GetDB()

	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPORT_NOT_FOUND",
				"message": "Laporan tidak ditemukan",
			},
		})
		return
	}

	var report models.Report
	if err := db.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPORT_NOT_FOUND",
				"message": "Laporan tidak ditemukan",
			},
		})
		return
	}

	// Same access rule as reading the report: owner, or staff roles
	if !services.CanAccessReport(session.Role, session.UserID, report.UserID) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Anda tidak memiliki akses ke laporan ini",
			},
		})
		return
	}

	comment := models.Comment{
		Message:  req.Message,
		ReportID: report.ID,
		UserID:   session.UserID,
	}
	if err := db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat membuat komentar",
			},
		})
		return
	}

	// Load the author projection for rendering
	if err := db.Preload("User", selectCommentAuthor).First(&comment, comment.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat membuat komentar",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    comment,
	})
}

// ListComments handles GET /api/v1/reports/:id/comments - the full thread,
// oldest first
func ListComments(c *gin.Context) {
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

	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPORT_NOT_FOUND",
				"message": "Laporan tidak ditemukan",
			},
		})
		return
	}

	var report models.Report
	if err := db.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPORT_NOT_FOUND",
				"message": "Laporan tidak ditemukan",
			},
		})
		return
	}

	if !services.CanAccessReport(session.Role, session.UserID, report.UserID) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Anda tidak memiliki akses ke laporan ini",
			},
		})
		return
	}

	var comments []models.Comment
	if err := db.Where("report_id = ?", report.ID).
		Preload("User", selectCommentAuthor).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat mengambil komentar",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    comments,
	})
}
