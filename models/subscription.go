package models

import "time"

// PushSubscription is one registered browser push endpoint for a user. The
// endpoint URL is globally unique and acts as the natural key: re-subscribing
// from the same browser replaces the key pair rather than adding a row.
type PushSubscription struct {
	ID       string `bson:"id" json:"id"`
	UserID   string `bson:"user_id" json:"userId"`
	Endpoint string `bson:"endpoint" json:"endpoint"`
	P256dh   string `bson:"p256dh" json:"p256dh"`
	Auth     string `bson:"auth" json:"auth"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// SubscriptionRequest is the opt-in payload as produced by
// PushManager.subscribe() in the browser.
type SubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}
