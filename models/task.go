package models

import "time"

// Priority ranks a task for display ordering.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Task is a calendar entry owned by a single user. A task holds at most one
// notification time; there are no recurring notifications.
type Task struct {
	ID            string     `bson:"id" json:"id"`
	UserID        string     `bson:"user_id" json:"userId"`
	Title         string     `bson:"content" json:"title"`
	Description   string     `bson:"description,omitempty" json:"description,omitempty"`
	StartDate     time.Time  `bson:"start_time" json:"startDate"`
	EndDate       time.Time  `bson:"end_time" json:"endDate"`
	Priority      Priority   `bson:"priority" json:"priority"`
	CategoryColor string     `bson:"category_color" json:"categoryColor"`
	IsCompleted   bool       `bson:"is_completed" json:"isCompleted"`
	// NotificationTime, when set, is the single instant this task should
	// produce a notification at.
	NotificationTime *time.Time `bson:"notification_time,omitempty" json:"notificationTime,omitempty"`
	// CreatedAt is Unix milliseconds, matching the client wire format.
	CreatedAt int64 `bson:"created_at" json:"createdAt"`
}
