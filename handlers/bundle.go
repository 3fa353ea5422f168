package handlers

import (
	userRepo "tasknest/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every route handler plus the dependencies the route
// registration needs (the user repository feeds the auth middleware).
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	// User endpoints.
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
	GetCurrentUserHandler   gin.HandlerFunc
	RevokeUserAuthHandler   gin.HandlerFunc

	// Task endpoints.
	ListTasksHandler        gin.HandlerFunc
	SaveTaskHandler         gin.HandlerFunc
	DeleteTaskHandler       gin.HandlerFunc
	ToggleCompletionHandler gin.HandlerFunc

	// Subscription endpoints.
	SaveSubscriptionHandler   gin.HandlerFunc
	RevokeSubscriptionHandler gin.HandlerFunc
	TestPushHandler           gin.HandlerFunc

	// Sweep endpoint.
	CheckNotificationsHandler gin.HandlerFunc
}
