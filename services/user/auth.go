package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tasknest/models"
	"tasknest/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long a session token stays valid.
const tokenTTL = 72 * time.Hour

// RegisterUser creates an account and signs the first session token.
func (s *DefaultUserService) RegisterUser(email, username, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("RegisterUser: failed to check email", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(usr); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(usr)
}

// AuthenticateUser verifies credentials and signs a fresh session token.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if usr == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueToken(usr)
}

// issueToken signs a JWT, stores its hash on the user record for revocation
// checks, and mirrors the hash into the auth cache for the middleware fast
// path.
func (s *DefaultUserService) issueToken(usr *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(usr.ID, usr.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	usr.TokenHash = utils.HashToken(token)
	if err := s.Repo.Update(usr); err != nil {
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}

	if cache := utils.GetAuthCacheClient(); cache != nil {
		key := utils.AuthCachePrefix + usr.ID
		if err := cache.Set(context.Background(), key, usr.TokenHash, tokenTTL).Err(); err != nil {
			utils.GetLogger().Warn("issueToken: failed to cache token hash", zap.Error(err))
		}
	}

	return &AuthResponse{User: usr, Token: token}, nil
}

// GetUserByID retrieves a user by its unique ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}
	return usr, nil
}

// RevokeAuthToken clears the stored token hash so the current session token
// stops validating everywhere, cache included.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if usr == nil {
		return fmt.Errorf("user with id %s not found", userID)
	}

	usr.TokenHash = ""
	if err := s.Repo.Update(usr); err != nil {
		return fmt.Errorf("failed to clear token hash: %w", err)
	}

	if cache := utils.GetAuthCacheClient(); cache != nil {
		key := utils.AuthCachePrefix + userID
		if err := cache.Del(context.Background(), key).Err(); err != nil {
			utils.GetLogger().Warn("RevokeAuthToken: failed to clear cache", zap.Error(err))
		}
	}
	return nil
}
