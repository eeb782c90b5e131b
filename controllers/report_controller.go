package controllers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/part-asrama/asrama-report-api/config"
	"github.com/part-asrama/asrama-report-api/middleware"
	"github.com/part-asrama/asrama-report-api/models"
	"github.com/part-asrama/asrama-report-api/services"
	"github.com/part-asrama/asrama-report-api/utils"
	"gorm.io/gorm"
)

// UpdateReportRequest represents the PATCH body for a status update.
// Only fields present in the request are changed; the status is mandatory.
type UpdateReportRequest struct {
	Status          string  `json:"status"`
	AssignedTo      *string `json:"assignedTo"`
	CompletionNotes *string `json:"completionNotes"`
	RepairCost      *string `json:"repairCost"`
}

// CreateReport handles POST /api/v1/reports - a resident submits a damage
// report with optional photos (multipart form)
func CreateReport(c *gin.Context) {
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

	title := c.PostForm("title")
	description := c.PostForm("description")
	category := c.PostForm("category")
	if title == "" || description == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Semua field wajib diisi",
			},
		})
		return
	}

	db := config.GetDB()

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

	// The damage room: an explicit (number, building) pair when reporting
	// someone else's room, otherwise the reporter's own room.
	var room *models.Room
	reportedNumber := c.PostForm("reportedRoomNumber")
	reportedBuilding := c.PostForm("reportedBuilding")
	if reportedNumber != "" && reportedBuilding != "" {
		room, err = services.FindOrCreateRoom(db, reportedNumber, reportedBuilding)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Terjadi kesalahan saat membuat laporan",
				},
			})
			return
		}
	} else if user.Room != nil {
		room = user.Room
	} else {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_ROOM",
				"message": "User tidak memiliki kamar",
			},
		})
		return
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["images"]
	}

	imageService := services.GetImageService()

	report := models.Report{
		Title:              title,
		Description:        description,
		Category:           category,
		Status:             models.StatusPending,
		UserID:             user.ID,
		RoomID:             room.ID,
		ReportedRoomNumber: room.Number,
		ReportedBuilding:   room.Building,
	}

	// Report, images and the receipt comment are one unit of work: if any
	// write fails the transaction rolls back and files already on disk are
	// removed again.
	var savedFiles []string
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}

		for _, fh := range files {
			url, filename, err := imageService.SaveImage(fh, report.ID)
			if err != nil {
				return err
			}
			savedFiles = append(savedFiles, filename)

			image := models.Image{URL: url, ReportID: report.ID}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}

		return services.EmitReportEvent(tx, services.ReportEvent{
			Type:    services.EventReportReceived,
			Report:  &report,
			ActorID: user.ID,
		})
	})
	if txErr != nil {
		for _, filename := range savedFiles {
			if err := imageService.RemoveImage(filename); err != nil {
				log.Printf("Failed to remove orphaned upload %s: %v", filename, err)
			}
		}

		var uploadErr *utils.FileUploadError
		if errors.As(txErr, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}

		log.Printf("Failed to create report: %v", txErr)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat membuat laporan",
			},
		})
		return
	}

	// Load the relations to return complete data
	if err := db.Preload("Room").Preload("Images").Preload("Comments").
		First(&report, report.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat membuat laporan",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    report,
	})
}

// GetReport handles GET /api/v1/reports/:id - returns a single report with
// its photos and full comment thread
func GetReport(c *gin.Context) {
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

	// An existing report the caller may not see yields 403, not 404
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

	if err := db.Preload("User", selectUserSummary).
		Preload("Room").
		Preload("Images").
		Preload("Comments", orderCommentsAsc).
		Preload("Comments.User", selectCommentAuthor).
		First(&report, report.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat mengambil data laporan",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

// UpdateReport handles PATCH /api/v1/reports/:id - staff moves a report
// through the workflow. The route runs behind RequireStaff; the handler
// re-checks the session through the same gate.
func UpdateReport(c *gin.Context) {
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

	if session.Role != models.RoleAdmin && session.Role != models.RoleStaff {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Hanya admin atau staff yang dapat mengubah laporan",
			},
		})
		return
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Data permintaan tidak valid",
			},
		})
		return
	}

	if req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status wajib diisi",
			},
		})
		return
	}

	if !services.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Status tidak dikenal",
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

	update := services.StatusUpdate{
		Status:          req.Status,
		AssignedTo:      req.AssignedTo,
		CompletionNotes: req.CompletionNotes,
		RepairCost:      req.RepairCost,
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		return services.ApplyStatusUpdate(tx, &report, session.UserID, update)
	})
	if txErr != nil {
		log.Printf("Failed to update report %d: %v", report.ID, txErr)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat mengubah status laporan",
			},
		})
		return
	}

	if err := db.Preload("Comments", orderCommentsAsc).First(&report, report.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat mengubah status laporan",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

// ReportHistory handles GET /api/v1/reports/history - public damage
// history of a room, for residents checking a room before moving in
func ReportHistory(c *gin.Context) {
	roomNumber := c.Query("roomNumber")
	building := c.Query("building")
	if roomNumber == "" || building == "" {
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

	var reports []models.Report
	if err := db.Where("reported_room_number = ? AND reported_building = ?", roomNumber, building).
		Preload("User", selectUserSummary).
		Preload("Images").
		Preload("Comments", orderCommentsAsc).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Terjadi kesalahan saat mengambil riwayat laporan",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reports,
	})
}

func orderCommentsAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func selectUserSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "role")
}

func selectCommentAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "role")
}
