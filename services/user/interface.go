package user

import (
	userRepo "tasknest/database/repository/user"
	"tasknest/models"
)

// AuthResponse carries the signed token back to the client after a
// successful registration or login.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService defines business logic for user operations.
type UserService interface {
	// RegisterUser creates an account and returns a fresh session token.
	RegisterUser(email, username, password string) (*AuthResponse, error)
	// AuthenticateUser verifies credentials and returns a fresh session
	// token.
	AuthenticateUser(email, password string) (*AuthResponse, error)
	// GetUserByID retrieves a user by its unique ID.
	GetUserByID(userID string) (*models.User, error)
	// RevokeAuthToken invalidates the user's current session token.
	RevokeAuthToken(userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
