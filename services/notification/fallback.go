package notification

import (
	"context"
	"sync"
	"time"

	"tasknest/models"
)

// Permission mirrors the browser's tri-state notification permission.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// LocalNotification is what the fallback path hands to the embedding client
// when a task comes due while the app is open.
type LocalNotification struct {
	TaskID string
	Title  string
	Body   string
}

// firedHorizon bounds the dedup map: entries older than this are evicted so
// a long-lived session cannot grow it without limit. Well past any minute a
// fired key could still match again.
const firedHorizon = 24 * time.Hour

// LocalNotifier re-derives "due" from the task snapshot the client already
// holds and raises local notifications without server involvement. It is
// deliberately redundant with the server sweep; both may fire for the same
// task minute and that duplication is accepted.
//
// Each task fires at most once per notification minute per session: a
// composite (taskID, minute) key is recorded after firing and never cleared
// while the session lives, short of the eviction horizon. Editing a task to
// a new notification time produces a new key naturally.
type LocalNotifier struct {
	// Interval between periodic checks. Defaults to 30 seconds.
	Interval time.Duration
	// Notify receives each fired notification. Required.
	Notify func(LocalNotification)
	// Permission reports the current browser permission state; the notifier
	// only fires when it returns PermissionGranted. Required.
	Permission func() Permission

	// now is a test hook.
	now func() time.Time

	mu    sync.Mutex
	tasks []models.Task
	fired map[string]time.Time
}

// NewLocalNotifier creates a notifier delivering through notify, gated by
// permission.
func NewLocalNotifier(notify func(LocalNotification), permission func() Permission) *LocalNotifier {
	return &LocalNotifier{
		Interval:   30 * time.Second,
		Notify:     notify,
		Permission: permission,
		now:        time.Now,
		fired:      make(map[string]time.Time),
	}
}

// Start runs the periodic check loop until ctx is cancelled. The ticker must
// die with the owning UI context so a torn-down session cannot keep firing.
func (n *LocalNotifier) Start(ctx context.Context) {
	go func() {
		n.CheckNow()

		ticker := time.NewTicker(n.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n.CheckNow()
			}
		}
	}()
}

// SetTasks replaces the task snapshot and immediately re-checks it, so an
// edit that makes a task due right now does not wait for the next tick. The
// slice is copied; callers may keep mutating theirs.
func (n *LocalNotifier) SetTasks(tasks []models.Task) {
	snapshot := make([]models.Task, len(tasks))
	copy(snapshot, tasks)

	n.mu.Lock()
	n.tasks = snapshot
	n.mu.Unlock()

	n.CheckNow()
}

// CheckNow scans the current snapshot once and fires whatever is due and not
// yet fired for its minute.
func (n *LocalNotifier) CheckNow() {
	if n.Permission() != PermissionGranted {
		return
	}
	now := n.now()

	n.mu.Lock()
	defer n.mu.Unlock()

	n.evict(now)

	for _, task := range n.tasks {
		if task.NotificationTime == nil || task.IsCompleted {
			continue
		}
		if !locallyDue(task, now) {
			continue
		}
		key := firedKey(task)
		if _, done := n.fired[key]; done {
			continue
		}
		n.fired[key] = now
		n.Notify(localNotification(task))
	}
}

// locallyDue applies the client-side matching rule: either the notification
// instant passed less than a minute ago, or now and the notification time
// truncate to the same minute. Either alone can miss around clock and
// formatting discrepancies; together they cover the whole minute.
func locallyDue(task models.Task, now time.Time) bool {
	nt := *task.NotificationTime
	diff := now.Sub(nt)
	if diff >= 0 && diff < time.Minute {
		return true
	}
	return now.UTC().Truncate(time.Minute).Equal(nt.UTC().Truncate(time.Minute))
}

// firedKey is the per-session dedup key: task identity plus the
// minute-truncated notification time.
func firedKey(task models.Task) string {
	return task.ID + "-" + task.NotificationTime.UTC().Format("2006-01-02T15:04")
}

// evict drops fired entries older than the horizon.
func (n *LocalNotifier) evict(now time.Time) {
	for key, at := range n.fired {
		if now.Sub(at) > firedHorizon {
			delete(n.fired, key)
		}
	}
}

func localNotification(task models.Task) LocalNotification {
	body := task.Description
	if body == "" {
		body = "Start time reached."
	}
	return LocalNotification{
		TaskID: task.ID,
		Title:  "Task time: " + task.Title,
		Body:   body,
	}
}
