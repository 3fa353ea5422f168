package handlers

import (
	"errors"
	"net/http"

	"tasknest/models"
	task "tasknest/services/task"
	"tasknest/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TaskHandler exposes the task CRUD surface.
type TaskHandler struct {
	Service task.TaskService
}

// NewTaskHandler creates a TaskHandler backed by the given service.
func NewTaskHandler(svc task.TaskService) *TaskHandler {
	return &TaskHandler{Service: svc}
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID type"})
		return "", false
	}
	return id, true
}

// ListTasksHandler handles GET /api/tasks.
func (h *TaskHandler) ListTasksHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tasks, err := h.Service.ListTasks(userID)
	if err != nil {
		utils.GetLogger().Error("Failed to list tasks", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// SaveTaskHandler handles POST /api/tasks (upsert by task id).
func (h *TaskHandler) SaveTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var t models.Task
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.Service.SaveTask(userID, t)
	if err != nil {
		if errors.Is(err, task.ErrNotOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to save task", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteTaskHandler handles DELETE /api/tasks/:id.
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID := c.Param("id")

	if err := h.Service.DeleteTask(userID, taskID); err != nil {
		if errors.Is(err, task.ErrNotOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to delete task", zap.String("taskId", taskID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// ToggleCompletionHandler handles PATCH /api/tasks/:id/toggle.
func (h *TaskHandler) ToggleCompletionHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID := c.Param("id")

	updated, err := h.Service.ToggleCompletion(userID, taskID)
	if err != nil {
		if errors.Is(err, task.ErrNotOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to toggle task", zap.String("taskId", taskID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}
