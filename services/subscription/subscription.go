package subscription

import (
	"fmt"
	"time"

	subscriptionRepo "tasknest/database/repository/subscription"
	"tasknest/models"
	"tasknest/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubscriptionService manages a user's registered push endpoints. Opt-in
// goes through Upsert only, so re-subscribing a browser refreshes its keys
// instead of duplicating the endpoint.
type SubscriptionService interface {
	// SaveSubscription registers (or refreshes) the endpoint for the user.
	SaveSubscription(userID string, req models.SubscriptionRequest) error
	// RevokeSubscription removes the user's subscription for the endpoint.
	RevokeSubscription(userID, endpoint string) error
	// ListSubscriptions retrieves all of the user's subscriptions.
	ListSubscriptions(userID string) ([]models.PushSubscription, error)
}

// DefaultSubscriptionService is the production implementation.
type DefaultSubscriptionService struct {
	Repo subscriptionRepo.SubscriptionRepository
}

// SaveSubscription registers or refreshes the endpoint for the user.
func (s *DefaultSubscriptionService) SaveSubscription(userID string, req models.SubscriptionRequest) error {
	sub := &models.PushSubscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		Endpoint:  req.Endpoint,
		P256dh:    req.Keys.P256dh,
		Auth:      req.Keys.Auth,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Upsert(sub); err != nil {
		utils.GetLogger().Error("SaveSubscription: upsert failed",
			zap.String("userId", userID), zap.Error(err))
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

// RevokeSubscription removes the user's subscription for the endpoint.
func (s *DefaultSubscriptionService) RevokeSubscription(userID, endpoint string) error {
	if err := s.Repo.DeleteByUserEndpoint(userID, endpoint); err != nil {
		return fmt.Errorf("failed to revoke subscription: %w", err)
	}
	return nil
}

// ListSubscriptions retrieves all of the user's subscriptions.
func (s *DefaultSubscriptionService) ListSubscriptions(userID string) ([]models.PushSubscription, error) {
	return s.Repo.ListByUser(userID)
}
