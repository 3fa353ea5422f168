package taskRepo

import (
	"time"

	"tasknest/models"
)

// TaskRepository defines methods for task data access.
type TaskRepository interface {
	// GetByID retrieves a task by its unique ID. Returns (nil, nil) when no
	// such task exists.
	GetByID(id string) (*models.Task, error)
	// ListByUser retrieves all tasks owned by the user, ordered by start
	// time ascending.
	ListByUser(userID string) ([]models.Task, error)
	// Upsert inserts the task or replaces the existing document with the
	// same ID.
	Upsert(task *models.Task) error
	// Delete removes a task by its ID. Deleting a missing task is not an
	// error.
	Delete(id string) error
	// SetCompleted updates the completion flag and returns the updated
	// task, or (nil, nil) when the task does not exist.
	SetCompleted(id string, completed bool) (*models.Task, error)
	// FindDueBetween retrieves incomplete tasks whose notification time
	// falls inside [start, end], inclusive.
	FindDueBetween(start, end time.Time) ([]models.Task, error)
}
