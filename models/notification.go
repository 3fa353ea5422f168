package models

// DeliveryStatus classifies the outcome of one sweep delivery attempt.
type DeliveryStatus string

const (
	// DeliverySent means the push service accepted the message.
	DeliverySent DeliveryStatus = "sent"
	// DeliveryExpired means the push service reported the endpoint as
	// permanently gone; the subscription has been pruned.
	DeliveryExpired DeliveryStatus = "expired"
	// DeliveryFailed covers every other delivery error. The subscription is
	// kept, it may still be valid.
	DeliveryFailed DeliveryStatus = "failed"
	// DeliveryNoSubscriptions means the task's owner has no registered
	// endpoints.
	DeliveryNoSubscriptions DeliveryStatus = "no_subs"
	// DeliveryDBError means the subscription lookup for the task failed.
	DeliveryDBError DeliveryStatus = "db_error"
)

// DeliveryResult is the outcome for a single subscription of a due task.
type DeliveryResult struct {
	SubscriptionID string         `json:"subscription"`
	Status         DeliveryStatus `json:"status"`
}

// TaskSweepResult aggregates the outcomes for one due task. Status is set
// only for the task-level outcomes (no_subs, db_error); otherwise Deliveries
// carries one entry per subscription.
type TaskSweepResult struct {
	TaskID     string           `json:"task"`
	Status     DeliveryStatus   `json:"status,omitempty"`
	Deliveries []DeliveryResult `json:"deliveries,omitempty"`
}

// SweepSummary is the result of one dispatcher invocation.
type SweepSummary struct {
	Processed int               `json:"processed"`
	Results   []TaskSweepResult `json:"results"`
}

// PushPayload is the JSON body delivered to the browser's service worker.
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}
