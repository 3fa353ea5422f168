package subscriptionRepo

import (
	"context"
	"fmt"
	"time"

	"tasknest/database"
	"tasknest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSubscriptionRepo implements SubscriptionRepository using MongoDB.
type MongoSubscriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoSubscriptionRepo creates a new instance of SubscriptionRepository
// using MongoDB.
func NewMongoSubscriptionRepo() SubscriptionRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("push_subscriptions")
	repo := &MongoSubscriptionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes enforces endpoint uniqueness and speeds up per-user lookups.
func (r *MongoSubscriptionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "endpoint", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert inserts or replaces the subscription keyed by its endpoint. A
// re-subscription from the same endpoint keeps the original ID and creation
// time but refreshes the key pair and owner.
func (r *MongoSubscriptionRepo) Upsert(sub *models.PushSubscription) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"endpoint": sub.Endpoint}
	update := bson.M{
		"$set": bson.M{
			"user_id": sub.UserID,
			"p256dh":  sub.P256dh,
			"auth":    sub.Auth,
		},
		"$setOnInsert": bson.M{
			"id":         sub.ID,
			"endpoint":   sub.Endpoint,
			"created_at": sub.CreatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save subscription for endpoint %s: %w", sub.Endpoint, err)
	}
	return nil
}

// ListByUser retrieves all subscriptions for the user.
func (r *MongoSubscriptionRepo) ListByUser(userID string) ([]models.PushSubscription, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve subscriptions for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	subs := []models.PushSubscription{}
	for cursor.Next(ctx) {
		var s models.PushSubscription
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// Delete removes one subscription document by its ID.
func (r *MongoSubscriptionRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete subscription with id %s: %w", id, err)
	}
	return nil
}

// DeleteByUserEndpoint removes the user's subscription for the endpoint.
func (r *MongoSubscriptionRepo) DeleteByUserEndpoint(userID, endpoint string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID, "endpoint": endpoint}
	if _, err := r.coll.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete subscription for endpoint %s: %w", endpoint, err)
	}
	return nil
}
