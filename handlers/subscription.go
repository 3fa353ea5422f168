package handlers

import (
	"fmt"
	"net/http"

	"tasknest/models"
	notification "tasknest/services/notification"
	subscription "tasknest/services/subscription"
	"tasknest/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubscriptionHandler exposes push subscription opt-in, revocation and the
// test push endpoint.
type SubscriptionHandler struct {
	Service subscription.SubscriptionService
	Sweep   notification.SweepService
}

// NewSubscriptionHandler creates a SubscriptionHandler.
func NewSubscriptionHandler(svc subscription.SubscriptionService, sweep notification.SweepService) *SubscriptionHandler {
	return &SubscriptionHandler{Service: svc, Sweep: sweep}
}

// SaveSubscriptionHandler handles POST /api/subscriptions. Failures are
// surfaced with a message the client shows to the user, so they can retry
// enabling notifications.
func (h *SubscriptionHandler) SaveSubscriptionHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid subscription payload: " + err.Error()})
		return
	}

	if err := h.Service.SaveSubscription(userID, req); err != nil {
		utils.GetLogger().Error("Failed to save subscription", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database Error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscription saved successfully"})
}

// RevokeSubscriptionHandler handles DELETE /api/subscriptions.
func (h *SubscriptionHandler) RevokeSubscriptionHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.RevokeSubscription(userID, req.Endpoint); err != nil {
		utils.GetLogger().Error("Failed to revoke subscription", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription removed"})
}

// TestPushHandler handles POST /api/subscriptions/test: sends a test push to
// every endpoint the caller has registered.
func (h *SubscriptionHandler) TestPushHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sent, err := h.Sweep.SendTestPush(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": fmt.Sprintf("Sent %d notifications", sent)})
}
