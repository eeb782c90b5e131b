package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/part-asrama/asrama-report-api/config"
	"github.com/part-asrama/asrama-report-api/models"
)

type labelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type monthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type monthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// GetReportStats handles GET /api/v1/reports/stats - aggregate counts for
// the dashboard charts: reports grouped by building, category, status and
// creation month, repair-cost sums per completion month of the current
// year, and the average repair duration in days.
func GetReportStats(c *gin.Context) {
	db := config.GetDB()

	var byBuilding, byCategory, byStatus []labelCount

	if err := db.Model(&models.Report{}).
		Select("reported_building AS label, COUNT(*) AS count").
		Group("reported_building").
		Order("count DESC").
		Scan(&byBuilding).Error; err != nil {
		statsError(c)
		return
	}

	if err := db.Model(&models.Report{}).
		Select("category AS label, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Scan(&byCategory).Error; err != nil {
		statsError(c)
		return
	}

	if err := db.Model(&models.Report{}).
		Select("status AS label, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		statsError(c)
		return
	}

	// Month buckets are computed here rather than in SQL: postgres and the
	// sqlite test driver disagree on date-formatting functions.
	var rows []struct {
		CreatedAt   time.Time
		CompletedAt *time.Time
		RepairCost  *float64
	}
	if err := db.Model(&models.Report{}).
		Select("created_at", "completed_at", "repair_cost").
		Scan(&rows).Error; err != nil {
		statsError(c)
		return
	}

	currentYear := time.Now().UTC().Year()
	createdByMonth := make(map[string]int64)
	costByMonth := make(map[string]float64)
	var totalRepairDays float64
	var completedCount int64

	for _, row := range rows {
		createdByMonth[row.CreatedAt.Format("2006-01")]++

		if row.CompletedAt == nil {
			continue
		}
		completedCount++
		totalRepairDays += row.CompletedAt.Sub(row.CreatedAt).Hours() / 24

		if row.RepairCost != nil && row.CompletedAt.Year() == currentYear {
			costByMonth[row.CompletedAt.Format("2006-01")] += *row.RepairCost
		}
	}

	byMonth := make([]monthCount, 0, len(createdByMonth))
	for month, count := range createdByMonth {
		byMonth = append(byMonth, monthCount{Month: month, Count: count})
	}
	sort.Slice(byMonth, func(i, j int) bool { return byMonth[i].Month < byMonth[j].Month })

	costs := make([]monthTotal, 0, len(costByMonth))
	for month, total := range costByMonth {
		costs = append(costs, monthTotal{Month: month, Total: total})
	}
	sort.Slice(costs, func(i, j int) bool { return costs[i].Month < costs[j].Month })

	var avgRepairDays float64
	if completedCount > 0 {
		avgRepairDays = totalRepairDays / float64(completedCount)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"byBuilding":        byBuilding,
			"byCategory":        byCategory,
			"byStatus":          byStatus,
			"byMonth":           byMonth,
			"repairCostByMonth": costs,
			"avgRepairDays":     avgRepairDays,
		},
	})
}

func statsError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "Terjadi kesalahan saat mengambil statistik",
		},
	})
}
