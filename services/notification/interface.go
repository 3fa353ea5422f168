package notification

import (
	"context"
	"time"

	subscriptionRepo "tasknest/database/repository/subscription"
	taskRepo "tasknest/database/repository/task"
	"tasknest/models"
)

// SweepService runs one notification sweep: match due tasks against the
// current minute window, fan deliveries out to each owner's registered
// endpoints, and prune endpoints the push service reports as gone.
type SweepService interface {
	// Run executes a sweep for the minute containing now. It returns an
	// error only for whole-sweep failures (missing push configuration or a
	// failed due-task query); per-task and per-delivery failures are
	// isolated and reported inside the summary.
	Run(ctx context.Context, now time.Time) (*models.SweepSummary, error)
	// SendTestPush delivers a test message to every endpoint the user has
	// registered and reports how many sends succeeded.
	SendTestPush(ctx context.Context, userID string) (int, error)
}

// PushSender delivers one payload to one subscription. Implementations must
// return ErrEndpointGone when the push service reports the endpoint as
// permanently invalid, and any other error for transient failures.
type PushSender interface {
	Send(ctx context.Context, sub models.PushSubscription, payload []byte) error
	// Validate reports whether the sender is fully configured. A sweep must
	// fail up front, before any data access, when it is not.
	Validate() error
}

// DefaultSweepService is the production implementation.
type DefaultSweepService struct {
	Tasks  taskRepo.TaskRepository
	Subs   subscriptionRepo.SubscriptionRepository
	Push   PushSender
	AppURL string
}
