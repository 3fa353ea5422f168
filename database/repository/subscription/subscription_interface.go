package subscriptionRepo

import "tasknest/models"

// SubscriptionRepository defines methods for push subscription data access.
// Upsert is the only insertion path; the endpoint URL is the natural key, so
// the same endpoint can never be stored twice.
type SubscriptionRepository interface {
	// Upsert inserts the subscription or, when a row with the same endpoint
	// already exists, replaces its key pair and owner. Idempotent.
	Upsert(sub *models.PushSubscription) error
	// ListByUser retrieves all subscriptions for the user; an empty slice
	// when there are none.
	ListByUser(userID string) ([]models.PushSubscription, error)
	// Delete removes one subscription by its ID. Removing a non-existent ID
	// is not an error.
	Delete(id string) error
	// DeleteByUserEndpoint removes the user's subscription for the given
	// endpoint, for explicit revocation. Idempotent.
	DeleteByUserEndpoint(userID, endpoint string) error
}
