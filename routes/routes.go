package routes

import (
	"net/http"
	"time"

	"courtbook/handlers"
	"courtbook/middleware"
	"courtbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterSlotRoutes registers the date/time picker endpoints.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/slots")
	{
		api.GET("/rules", hb.SlotRulesHandler)
		api.POST("/select", hb.SelectSlotHandler)
	}
}

// RegisterSessionRoutes registers sign-in, registration and session endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/session")
	{
		api.POST("/login", hb.LoginHandler)
		api.POST("/register", hb.RegisterHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.SessionAuthMiddleware(hb.Sessions))
		protected.POST("/logout", hb.LogoutHandler)
		protected.GET("/me", hb.MeHandler)
	}
}

// RegisterCourtRoutes registers the public court catalog.
func RegisterCourtRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/courts")
	{
		api.GET("", hb.ListCourtsHandler)
		api.GET("/:id", hb.GetCourtHandler)
	}
}

// RegisterBookingRoutes sets up the booking workflow and booking management endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	workflows := r.Group("/api/workflows")
	{
		workflows.Use(middleware.SessionAuthMiddleware(hb.Sessions))
		workflows.POST("", hb.StartWorkflowHandler)
		workflows.GET("/:id", hb.GetWorkflowHandler)
		workflows.POST("/:id/request", hb.RequestBookingHandler)
		workflows.POST("/:id/confirm", hb.ConfirmPaymentHandler)
	}

	bookings := r.Group("/api/bookings")
	{
		bookings.Use(middleware.SessionAuthMiddleware(hb.Sessions))
		bookings.GET("", hb.ListBookingsHandler)
		bookings.GET("/:id/status", hb.BookingStatusHandler)
		bookings.POST("/:id/cancel", hb.CancelBookingHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.SessionAuthMiddleware(hb.Sessions), middleware.AdminGateMiddleware())
		adminGroup.GET("/users", hb.AdminHandler.GetAllUsersHandler)
		adminGroup.GET("/bookings", hb.AdminHandler.GetAllBookingsHandler)
		adminGroup.GET("/courts", hb.AdminHandler.GetAllCourtsHandler)
		adminGroup.POST("/courts", hb.AdminHandler.AddCourtHandler)
		adminGroup.PUT("/courts/:id", hb.AdminHandler.UpdateCourtHandler)
		adminGroup.POST("/courts/:id/delete", hb.AdminHandler.PrepareDeleteCourtHandler)
		adminGroup.POST("/courts/delete/confirm", hb.AdminHandler.ConfirmDeleteCourtHandler)

		if hb.StorageHandler != nil {
			adminGroup.POST("/courts/images", hb.StorageHandler.UploadCourtImageHandler)
			adminGroup.DELETE("/courts/images", hb.StorageHandler.DeleteCourtImageHandler)
		}
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowOrigins []string) {
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSlotRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterCourtRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
