package routes

import (
	"net/http"
	"time"

	"tasknest/config"
	"tasknest/handlers"
	"tasknest/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.GetCurrentUserHandler)
		api.DELETE("/revoke", hb.RevokeUserAuthHandler)
	}
}

// RegisterTaskRoutes registers task CRUD endpoints.
func RegisterTaskRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tasks")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("", hb.ListTasksHandler)
		api.POST("", hb.SaveTaskHandler)
		api.DELETE("/:id", hb.DeleteTaskHandler)
		api.PATCH("/:id/toggle", hb.ToggleCompletionHandler)
	}
}

// RegisterSubscriptionRoutes registers push subscription endpoints.
func RegisterSubscriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/subscriptions")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.SaveSubscriptionHandler)
		api.DELETE("", hb.RevokeSubscriptionHandler)
		api.POST("/test", hb.TestPushHandler)
	}
}

// RegisterSweepRoute registers the scheduler-facing sweep endpoint. It is
// authenticated by shared secret, not by a user session.
func RegisterSweepRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/cron/check-notifications",
		middleware.SweepAuthMiddleware(config.AppConfig.CronSecret),
		hb.CheckNotificationsHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm tasknest"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterTaskRoutes(r, hb)
	RegisterSubscriptionRoutes(r, hb)
	RegisterSweepRoute(r, hb)
	RegisterHealthRoute(r)
}
