package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"tasknest/models"
	"tasknest/utils"

	"go.uber.org/zap"
)

// Run executes one sweep for the minute containing now.
//
// The push configuration is validated before anything touches the database:
// a misconfigured server must fail the whole invocation rather than process
// some tasks and then stall. After that, every failure is scoped as narrowly
// as possible: a subscription lookup error marks that one task db_error, a
// delivery error marks that one subscription failed, and neither stops any
// sibling work.
func (s *DefaultSweepService) Run(ctx context.Context, now time.Time) (*models.SweepSummary, error) {
	if err := s.Push.Validate(); err != nil {
		return nil, err
	}

	window := MinuteWindow(now)
	due, err := s.Tasks.FindDueBetween(window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("sweep: failed to query due tasks: %w", err)
	}

	summary := &models.SweepSummary{
		Processed: len(due),
		Results:   make([]models.TaskSweepResult, len(due)),
	}
	if len(due) == 0 {
		return summary, nil
	}

	// Tasks are independent units of work; no ordering is required between
	// them, so each gets its own goroutine writing to its own slot.
	var wg sync.WaitGroup
	for i, task := range due {
		wg.Add(1)
		go func(i int, task models.Task) {
			defer wg.Done()
			summary.Results[i] = s.notifyTask(ctx, task)
		}(i, task)
	}
	wg.Wait()

	return summary, nil
}

// notifyTask resolves the owner's subscriptions and attempts delivery to
// each of them concurrently.
func (s *DefaultSweepService) notifyTask(ctx context.Context, task models.Task) models.TaskSweepResult {
	logger := utils.GetLogger()

	subs, err := s.Subs.ListByUser(task.UserID)
	if err != nil {
		logger.Error("sweep: subscription lookup failed",
			zap.String("taskId", task.ID), zap.Error(err))
		return models.TaskSweepResult{TaskID: task.ID, Status: models.DeliveryDBError}
	}
	if len(subs) == 0 {
		return models.TaskSweepResult{TaskID: task.ID, Status: models.DeliveryNoSubscriptions}
	}

	payload, err := json.Marshal(s.taskPayload(task))
	if err != nil {
		logger.Error("sweep: failed to encode payload",
			zap.String("taskId", task.ID), zap.Error(err))
		return models.TaskSweepResult{TaskID: task.ID, Status: models.DeliveryDBError}
	}

	deliveries := make([]models.DeliveryResult, len(subs))
	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub models.PushSubscription) {
			defer wg.Done()
			deliveries[i] = s.deliver(ctx, task, sub, payload)
		}(i, sub)
	}
	wg.Wait()

	return models.TaskSweepResult{TaskID: task.ID, Deliveries: deliveries}
}

// deliver attempts one push and classifies the outcome. A permanently gone
// endpoint is pruned from the registry; every other failure leaves the
// subscription untouched since it may still be valid.
func (s *DefaultSweepService) deliver(ctx context.Context, task models.Task, sub models.PushSubscription, payload []byte) models.DeliveryResult {
	logger := utils.GetLogger()
	result := models.DeliveryResult{SubscriptionID: sub.ID, Status: models.DeliverySent}

	err := s.Push.Send(ctx, sub, payload)
	switch {
	case err == nil:
	case errors.Is(err, ErrEndpointGone):
		result.Status = models.DeliveryExpired
		// Cleanup failure must not mask the expired classification.
		if derr := s.Subs.Delete(sub.ID); derr != nil {
			logger.Warn("sweep: failed to prune expired subscription",
				zap.String("subscriptionId", sub.ID), zap.Error(derr))
		}
	default:
		result.Status = models.DeliveryFailed
		logger.Error("sweep: push delivery failed",
			zap.String("taskId", task.ID),
			zap.String("subscriptionId", sub.ID),
			zap.Error(err))
	}
	return result
}

// taskPayload builds the message shown by the service worker for a due task.
func (s *DefaultSweepService) taskPayload(task models.Task) models.PushPayload {
	body := task.Description
	if body == "" {
		body = "Start time reached."
	}
	url := s.AppURL
	if url == "" {
		url = "/"
	}
	return models.PushPayload{
		Title: "Task time: " + task.Title,
		Body:  body,
		URL:   url,
	}
}

// SendTestPush delivers a test message to every endpoint the user has
// registered. It returns the number of successful sends; the error carries
// the last delivery failure when nothing went through.
func (s *DefaultSweepService) SendTestPush(ctx context.Context, userID string) (int, error) {
	if err := s.Push.Validate(); err != nil {
		return 0, err
	}

	subs, err := s.Subs.ListByUser(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return 0, errors.New("no subscription found")
	}

	payload, err := json.Marshal(models.PushPayload{
		Title: "Server push test",
		Body:  "This is a test notification sent directly from the server.",
		URL:   "/",
	})
	if err != nil {
		return 0, err
	}

	sent := 0
	var lastErr error
	for _, sub := range subs {
		if err := s.Push.Send(ctx, sub, payload); err != nil {
			utils.GetLogger().Error("test push failed",
				zap.String("subscriptionId", sub.ID), zap.Error(err))
			lastErr = err
			continue
		}
		sent++
	}
	if sent == 0 {
		return 0, fmt.Errorf("failed to send test push: %w", lastErr)
	}
	return sent, nil
}
