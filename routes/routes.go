package routes

import (
	"net/http"
	"time"

	"mindwell/handlers"
	"mindwell/middleware"
	"mindwell/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers student/admin account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/id/:id", hb.GetUserByIDHandler)
	}
}

// RegisterProviderRoutes registers psychiatrist account and availability endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	ph := hb.ProviderHandler
	api := r.Group("/api/providers")
	{
		api.POST("/register", ph.RegisterProviderHandler)
		api.POST("/login", ph.AuthenticateProviderHandler)
		api.GET("", ph.ListProvidersHandler)
		api.GET("/id/:id", ph.GetProviderByIDHandler)
		api.GET("/id/:id/availability", ph.GetAvailabilityHandler)

		// Availability mutations require the psychiatrist's own token.
		protected := api.Group("/availability")
		protected.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		protected.POST("", ph.AddSlotHandler)
		protected.PUT("/:index", ph.UpdateSlotHandler)
		protected.DELETE("/:index", ph.RemoveSlotHandler)
	}
}

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bh := hb.BookingHandler

	student := r.Group("/api/appointments")
	student.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
	{
		student.POST("", bh.BookAppointmentHandler)
		student.GET("", bh.ListMyAppointmentsHandler)
		student.GET("/:id", bh.GetAppointmentHandler)
		student.DELETE("/:id", bh.DeleteAppointmentHandler)
	}

	// Status transitions come from the psychiatrist (or an admin through the
	// user token path above).
	provider := r.Group("/api/provider/appointments")
	provider.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
	{
		provider.GET("", bh.ListMyAppointmentsHandler)
		provider.GET("/:id", bh.GetAppointmentHandler)
		provider.PATCH("/:id/status", bh.SetStatusHandler)
	}

	admin := r.Group("/api/admin/appointments")
	admin.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
	{
		admin.PATCH("/:id/status", bh.SetStatusHandler)
	}
}

// RegisterNotificationRoutes registers in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	nh := hb.NotificationHandler
	api := r.Group("/api/notifications")
	api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
	{
		api.GET("", nh.ListNotificationsHandler)
		api.PATCH("/:id/read", nh.MarkReadHandler)
	}

	providerAPI := r.Group("/api/provider/notifications")
	providerAPI.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
	{
		providerAPI.GET("", nh.ListNotificationsHandler)
		providerAPI.PATCH("/:id/read", nh.MarkReadHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// background monitor's latest snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm Mindwell"})
	})
}

// RegisterRoutes wires CORS and every route group onto the engine.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}
