package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/part-asrama/asrama-report-api/config"
	"github.com/part-asrama/asrama-report-api/controllers"
	"github.com/part-asrama/asrama-report-api/middleware"
	"github.com/part-asrama/asrama-report-api/models"
	"github.com/part-asrama/asrama-report-api/services"
	"github.com/part-asrama/asrama-report-api/utils"
)

func main() {
	// Basic logging
	log.Println("Starting PART dormitory report API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Report{},
		&models.Image{},
		&models.Comment{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Seed the dormitory layout and default accounts when requested
	if cfg.SeedOnStart {
		if err := services.Seed(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Photos are stored on local disk under the configured upload dir
	utils.UploadDir = cfg.UploadDir
	services.InitImageService(cfg.UploadDir)

	router := setupRouter()

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter registers all routes. Public endpoints (auth, room history,
// stats, uploads) sit outside the session gate; everything else requires a
// valid session and the report status route additionally requires a staff
// role.
func setupRouter() *gin.Engine {
	router := gin.Default()

	// The API is consumed by a separate browser frontend with cookie
	// sessions, so credentials must be allowed.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = false
	corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Authentication
		auth := v1.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.POST("/logout", controllers.Logout)
		}

		// Public by design: prior damage history of a room and the stats
		// feed used by the charts
		v1.GET("/reports/history", controllers.ReportHistory)
		v1.GET("/reports/stats", controllers.GetReportStats)

		// Uploaded report photos
		v1.GET("/uploads/:filename", controllers.GetUploadedImage)

		// Session-gated endpoints
		protected := v1.Group("")
		protected.Use(middleware.RequireSession())
		{
			protected.GET("/dashboard", controllers.GetDashboard)
			protected.POST("/reports", controllers.CreateReport)
			protected.GET("/reports/:id", controllers.GetReport)
			protected.POST("/reports/:id/comments", controllers.AddComment)
			protected.GET("/reports/:id/comments", controllers.ListComments)
			protected.POST("/user/update-room", controllers.UpdateRoom)

			// Staff-only area
			staff := protected.Group("")
			staff.Use(middleware.RequireStaff())
			{
				staff.PATCH("/reports/:id", controllers.UpdateReport)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "PART dormitory report API is running",
	})
}

// databaseStatus checks database connectivity
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
	})
}
