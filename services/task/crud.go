package task

import (
	"fmt"
	"time"

	"tasknest/models"
	"tasknest/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotOwner is returned when a task exists but belongs to another user.
var ErrNotOwner = fmt.Errorf("task belongs to another user")

// ListTasks retrieves the user's tasks ordered by start time.
func (s *DefaultTaskService) ListTasks(userID string) ([]models.Task, error) {
	tasks, err := s.Repo.ListByUser(userID)
	if err != nil {
		utils.GetLogger().Error("ListTasks: repository error",
			zap.String("userId", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// SaveTask upserts the task. The owner is always the authenticated user; a
// client cannot write into someone else's calendar by sending a foreign
// user_id.
func (s *DefaultTaskService) SaveTask(userID string, t models.Task) (*models.Task, error) {
	t.UserID = userID
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().UnixMilli()
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}

	if err := s.requireOwnership(userID, t.ID); err != nil {
		return nil, err
	}
	if err := s.Repo.Upsert(&t); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return &t, nil
}

// DeleteTask removes the user's task. Deleting a missing task succeeds.
func (s *DefaultTaskService) DeleteTask(userID, taskID string) error {
	if err := s.requireOwnership(userID, taskID); err != nil {
		return err
	}
	return s.Repo.Delete(taskID)
}

// ToggleCompletion flips the completion flag and returns the updated task.
func (s *DefaultTaskService) ToggleCompletion(userID, taskID string) (*models.Task, error) {
	existing, err := s.Repo.GetByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}
	if existing == nil {
		return nil, nil
	}
	if existing.UserID != userID {
		return nil, ErrNotOwner
	}
	return s.Repo.SetCompleted(taskID, !existing.IsCompleted)
}

// requireOwnership rejects writes against an existing task owned by someone
// else. A missing task is fine, the write will create it.
func (s *DefaultTaskService) requireOwnership(userID, taskID string) error {
	existing, err := s.Repo.GetByID(taskID)
	if err != nil {
		return fmt.Errorf("failed to fetch task: %w", err)
	}
	if existing != nil && existing.UserID != userID {
		return ErrNotOwner
	}
	return nil
}
