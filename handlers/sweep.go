package handlers

import (
	"errors"
	"net/http"
	"time"

	notification "tasknest/services/notification"
	"tasknest/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SweepHandler exposes the cron sweep endpoint. Authentication happens in
// middleware before this handler runs.
type SweepHandler struct {
	Sweep notification.SweepService
}

// NewSweepHandler creates a SweepHandler.
func NewSweepHandler(sweep notification.SweepService) *SweepHandler {
	return &SweepHandler{Sweep: sweep}
}

// CheckNotificationsHandler handles GET /api/cron/check-notifications. One
// invocation covers the minute window containing the request time.
func (h *SweepHandler) CheckNotificationsHandler(c *gin.Context) {
	summary, err := h.Sweep.Run(c.Request.Context(), time.Now())
	if err != nil {
		if errors.Is(err, notification.ErrNotConfigured) {
			utils.GetLogger().Error("Sweep rejected: missing VAPID configuration")
			c.String(http.StatusInternalServerError, "Server Configuration Error: VAPID keys missing")
			return
		}
		utils.GetLogger().Error("Sweep failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if summary.Processed == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No tasks to notify"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
