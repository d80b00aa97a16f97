package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared"
	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupScanRoutes(v1, c)
		setupHoursRoutes(v1, c)
		setupEntryRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupBorrowRoutes(v1, c)
		setupStudentRoutes(v1, c)
		setupLibrarianRoutes(v1, c)
		setupAnnouncementRoutes(v1, c)
		setupReportRoutes(v1, c)
		setupFileRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.StudentHandler.Register)
		auth.POST("/login", c.StudentHandler.Login)
		auth.POST("/refresh", c.StudentHandler.Refresh)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.StudentHandler.Me)
		auth.POST("/librarian/login", c.LibrarianHandler.Login)
	}
}

// ========================================
// SCAN GATEWAY
// ========================================
func setupScanRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/scan",
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireRole(shared.RoleStudent),
		c.ScanHandler.Scan,
	)
}

// ========================================
// LIBRARY HOURS
// ========================================
func setupHoursRoutes(v1 *gin.RouterGroup, c *container.Container) {
	hours := v1.Group("/library-hours")
	{
		// Status is public so the frontend can show open/closed without auth
		hours.GET("/status", c.HoursHandler.GetStatus)

		hours.GET("",
			middleware.AuthMiddleware(c.JWTManager),
			c.HoursHandler.GetHours,
		)
		hours.PUT("",
			middleware.AuthMiddleware(c.JWTManager),
			middleware.RequireRole(shared.RoleLibrarian, shared.RoleAdmin),
			c.HoursHandler.SetHours,
		)
	}
}

// ========================================
// LIBRARY ENTRIES
// ========================================
func setupEntryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	entries := v1.Group("/library-entries", middleware.AuthMiddleware(c.JWTManager))
	{
		entries.GET("/current-count", c.EntryHandler.CurrentCount)

		staff := entries.Group("", middleware.RequireRole(shared.RoleLibrarian, shared.RoleAdmin))
		{
			staff.GET("", c.EntryHandler.List)
			staff.GET("/current", c.EntryHandler.ListCurrentlyInside)
			staff.PUT("/:id/exit", c.EntryHandler.ForceExit)
		}
	}
}

// ========================================
// BOOK CATALOG
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books", middleware.AuthMiddleware(c.JWTManager))
	{
		books.GET("", c.BookHandler.List)
		books.GET("/popular", c.BookHandler.ListPopular)
		books.GET("/:id", c.BookHandler.GetByID)

		staff := books.Group("", middleware.RequireRole(shared.RoleLibrarian, shared.RoleAdmin))
		{
			staff.POST("", c.BookHandler.Create)
			staff.PUT("/:id", c.BookHandler.Update)
			staff.DELETE("/:id", c.BookHandler.Delete)
			staff.POST("/:id/cover", c.FilesHandler.UploadBookCover)
		}
	}
}

// ========================================
// BORROW LEDGER
// ========================================
func setupBorrowRoutes(v1 *gin.RouterGroup, c *container.Container) {
	records := v1.Group("/borrow-records", middleware.AuthMiddleware(c.JWTManager))
	{
		staff := records.Group("", middleware.RequireRole(shared.RoleLibrarian, shared.RoleAdmin))
		{
			staff.POST("", c.BorrowHandler.Borrow)
			staff.GET("", c.BorrowHandler.List)
			staff.GET("/overdue", c.BorrowHandler.ListOverdue)
			staff.GET("/fines", c.BorrowHandler.ListFines)
			staff.GET("/student/:studentId", c.BorrowHandler.ListByStudent)
			staff.GET("/:id", c.BorrowHandler.GetByID)
			staff.PUT("/:id/return", c.BorrowHandler.Return)
			staff.PUT("/:id/fine", c.BorrowHandler.SetFine)
			staff.PUT("/:id/fine/paid", c.BorrowHandler.MarkFinePaid)
		}
	}
}

// ========================================
// STUDENTS
// ========================================
func setupStudentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	students := v1.Group("/students",
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireRole(shared.RoleLibrarian, shared.RoleAdmin),
	)
	{
		students.GET("", c.StudentHandler.List)
		students.GET("/:id", c.StudentHandler.GetByID)
		students.PUT("/:id", c.StudentHandler.Update)
		students.DELETE("/:id", c.StudentHandler.Delete)
		students.PUT("/:id/activate", c.StudentHandler.Activate)
		students.PUT("/:id/deactivate", c.StudentHandler.Deactivate)
		students.POST("/:id/photo", c.FilesHandler.UploadStudentPhoto)
	}
}

// ========================================
// LIBRARIANS
// ========================================
func setupLibrarianRoutes(v1 *gin.RouterGroup, c *container.Container) {
	librarians := v1.Group("/librarians",
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireRole(shared.RoleAdmin),
	)
	{
		librarians.POST("", c.LibrarianHandler.Create)
		librarians.GET("", c.LibrarianHandler.List)
		librarians.GET("/:id", c.LibrarianHandler.GetByID)
		librarians.PUT("/:id", c.LibrarianHandler.Update)
		librarians.DELETE("/:id", c.LibrarianHandler.Delete)
	}
}

// ========================================
// ANNOUNCEMENTS
// ========================================
func setupAnnouncementRoutes(v1 *gin.RouterGroup, c *container.Container) {
	announcements := v1.Group("/announcements", middleware.AuthMiddleware(c.JWTManager))
	{
		announcements.GET("", c.AnnouncementHandler.ListActive)
		announcements.GET("/:id", c.AnnouncementHandler.GetByID)

		staff := announcements.Group("", middleware.RequireRole(shared.RoleLibrarian, shared.RoleAdmin))
		{
			staff.GET("/all", c.AnnouncementHandler.ListAll)
			staff.POST("", c.AnnouncementHandler.Create)
			staff.PUT("/:id", c.AnnouncementHandler.Update)
			staff.DELETE("/:id", c.AnnouncementHandler.Delete)
		}
	}
}

// ========================================
// REPORTS
// ========================================
func setupReportRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reports := v1.Group("/reports",
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireRole(shared.RoleLibrarian, shared.RoleAdmin),
	)
	{
		reports.GET("/summary", c.ReportHandler.Summary)
		reports.GET("/departments", c.ReportHandler.DepartmentMetrics)
		reports.GET("/borrow-records/export", c.ReportHandler.ExportBorrowRecords)
	}
}

// ========================================
// FILES
// ========================================
func setupFileRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/files/*key", c.FilesHandler.Download)
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			// Cache is best-effort; report but stay healthy
			cacheStatus = "down"
		}

		ctx.JSON(status, gin.H{
			"status":   dbStatus,
			"cache":    cacheStatus,
			"version":  c.Config.App.Version,
			"time":     time.Now().UTC().Format(time.RFC3339),
			"database": dbStatus,
		})
	}
}
