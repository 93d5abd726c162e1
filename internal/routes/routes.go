package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/booking"
	"medibook-server/internal/config"
	"medibook-server/internal/handlers"
	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/schedule"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	bookingSvc := booking.NewService(db, booking.Options{
		ConflictMode:      schedule.ParseConflictMode(cfg.Booking.SlotConflictMode),
		StrictTransitions: cfg.Booking.StrictStatusTransitions,
	})

	authHandler := handlers.NewAuthHandler(db, cfg)
	doctorHandler := handlers.NewDoctorHandler(db, bookingSvc)
	appointmentHandler := handlers.NewAppointmentHandler(bookingSvc)
	adminHandler := handlers.NewAdminHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// Doctor directory and per-date availability are public
		public.GET("/doctors", doctorHandler.GetDoctors)
		public.GET("/doctors/:id", doctorHandler.GetDoctor)
		public.GET("/doctors/:id/availability", doctorHandler.GetAvailability)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Doctor schedule management (doctor-only)
		doctorRoutes := private.Group("/doctors")
		doctorRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			doctorRoutes.GET("/availability", doctorHandler.GetMyAvailability)
			doctorRoutes.PUT("/availability", doctorHandler.UpdateAvailability)
			doctorRoutes.GET("/dashboard", doctorHandler.GetDashboard)
		}

		// Appointment lifecycle
		appointmentRoutes := private.Group("/appointments")
		{
			// Only patients book; conflict and past-date checks live in the
			// booking service
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.CreateAppointment)

			appointmentRoutes.GET("", appointmentHandler.GetAppointments)          // role filter inside
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)   // participant or admin
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)    // role-projected fields
			appointmentRoutes.DELETE("/:id", appointmentHandler.CancelAppointment) // cancellation is a status change
		}

		// Admin: doctor verification
		adminRoutes := private.Group("/admin")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/doctors", adminHandler.GetDoctors)
			adminRoutes.PATCH("/doctors/:id/verify", adminHandler.VerifyDoctor)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
