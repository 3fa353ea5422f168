package task

import (
	taskRepo "tasknest/database/repository/task"
	"tasknest/models"
)

// TaskService defines business logic for task operations. Every operation is
// scoped to the authenticated owner.
type TaskService interface {
	// ListTasks retrieves the user's tasks ordered by start time.
	ListTasks(userID string) ([]models.Task, error)
	// SaveTask upserts the task for the user, assigning an ID and creation
	// time when absent.
	SaveTask(userID string, t models.Task) (*models.Task, error)
	// DeleteTask removes the user's task by ID.
	DeleteTask(userID, taskID string) error
	// ToggleCompletion flips the completion flag and returns the updated
	// task, or (nil, nil) when the task does not exist.
	ToggleCompletion(userID, taskID string) (*models.Task, error)
}

// DefaultTaskService is the production implementation.
type DefaultTaskService struct {
	Repo taskRepo.TaskRepository
}
