package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"tasknest/models"
)

// notifierAt builds a notifier with a frozen clock and a recording sink.
func notifierAt(now time.Time, permission Permission) (*LocalNotifier, *recordedNotifications) {
	rec := &recordedNotifications{}
	n := NewLocalNotifier(rec.add, func() Permission { return permission })
	n.now = func() time.Time { return now }
	return n, rec
}

type recordedNotifications struct {
	mu    sync.Mutex
	fired []LocalNotification
}

func (r *recordedNotifications) add(n LocalNotification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, n)
}

func (r *recordedNotifications) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fired)
}

func TestLocalNotifier_FiresForTaskDueThisMinute(t *testing.T) {
	n, rec := notifierAt(ts("2024-01-01T09:00:30Z"), PermissionGranted)

	n.SetTasks([]models.Task{taskDueAt("t1", ts("2024-01-01T09:00:00Z"))})

	if rec.count() != 1 {
		t.Fatalf("expected one notification, got %d", rec.count())
	}
	if rec.fired[0].TaskID != "t1" || rec.fired[0].Title != "Task time: t" {
		t.Fatalf("unexpected notification: %+v", rec.fired[0])
	}
}

func TestLocalNotifier_AtMostOncePerTaskMinutePerSession(t *testing.T) {
	n, rec := notifierAt(ts("2024-01-01T09:00:10Z"), PermissionGranted)
	n.SetTasks([]models.Task{taskDueAt("t1", ts("2024-01-01T09:00:00Z"))})

	// However many ticks observe the same due minute, it fires once.
	for i := 0; i < 5; i++ {
		n.CheckNow()
	}
	if rec.count() != 1 {
		t.Fatalf("expected exactly one notification across repeated checks, got %d", rec.count())
	}
}

func TestLocalNotifier_EditedNotificationTimeGetsANewKey(t *testing.T) {
	n, rec := notifierAt(ts("2024-01-01T09:00:10Z"), PermissionGranted)
	n.SetTasks([]models.Task{taskDueAt("t1", ts("2024-01-01T09:00:00Z"))})
	if rec.count() != 1 {
		t.Fatalf("expected first fire, got %d", rec.count())
	}

	// The task is rescheduled to a later minute; when that minute comes the
	// dedup key differs and it fires again.
	n.now = func() time.Time { return ts("2024-01-01T09:05:15Z") }
	n.SetTasks([]models.Task{taskDueAt("t1", ts("2024-01-01T09:05:00Z"))})
	if rec.count() != 2 {
		t.Fatalf("expected a second fire after reschedule, got %d", rec.count())
	}
}

func TestLocalNotifier_RespectsPermission(t *testing.T) {
	for _, perm := range []Permission{PermissionDefault, PermissionDenied} {
		n, rec := notifierAt(ts("2024-01-01T09:00:10Z"), perm)
		n.SetTasks([]models.Task{taskDueAt("t1", ts("2024-01-01T09:00:00Z"))})
		if rec.count() != 0 {
			t.Fatalf("expected no notifications with permission %q, got %d", perm, rec.count())
		}
	}
}

func TestLocalNotifier_SkipsCompletedAndUnscheduledTasks(t *testing.T) {
	n, rec := notifierAt(ts("2024-01-01T09:00:10Z"), PermissionGranted)

	done := taskDueAt("t1", ts("2024-01-01T09:00:00Z"))
	done.IsCompleted = true
	n.SetTasks([]models.Task{done, {ID: "t2", Title: "no time"}})

	if rec.count() != 0 {
		t.Fatalf("expected no notifications, got %d", rec.count())
	}
}

func TestLocalNotifier_DueByElapsedCondition(t *testing.T) {
	// 45 seconds past the notification instant: the minute-truncation
	// strings differ (09:00 vs 09:01 at :01:05) but the elapsed condition
	// still matches under 60s.
	n, rec := notifierAt(ts("2024-01-01T09:01:05Z"), PermissionGranted)
	n.SetTasks([]models.Task{taskDueAt("t1", ts("2024-01-01T09:00:20Z"))})

	if rec.count() != 1 {
		t.Fatalf("expected elapsed-time condition to fire, got %d", rec.count())
	}
}

func TestLocalNotifier_DueBySameMinuteCondition(t *testing.T) {
	// The notification instant is a few seconds in the future, so the
	// elapsed condition fails, but both times truncate to the same minute.
	n, rec := notifierAt(ts("2024-01-01T09:00:10Z"), PermissionGranted)
	n.SetTasks([]models.Task{taskDueAt("t1", ts("2024-01-01T09:00:40Z"))})

	if rec.count() != 1 {
		t.Fatalf("expected same-minute condition to fire, got %d", rec.count())
	}
}

func TestLocalNotifier_NotDueOutsideBothConditions(t *testing.T) {
	n, rec := notifierAt(ts("2024-01-01T09:02:30Z"), PermissionGranted)
	n.SetTasks([]models.Task{
		taskDueAt("past", ts("2024-01-01T09:01:00Z")),  // 90s ago, different minute
		taskDueAt("future", ts("2024-01-01T09:03:10Z")), // next minute
	})

	if rec.count() != 0 {
		t.Fatalf("expected nothing due, got %d", rec.count())
	}
}

func TestLocalNotifier_EvictsFiredKeysPastHorizon(t *testing.T) {
	n, rec := notifierAt(ts("2024-01-01T09:00:10Z"), PermissionGranted)
	n.SetTasks([]models.Task{taskDueAt("t1", ts("2024-01-01T09:00:00Z"))})
	if rec.count() != 1 {
		t.Fatalf("expected first fire, got %d", rec.count())
	}

	// Two days later the old key has been evicted; the map stays bounded.
	n.now = func() time.Time { return ts("2024-01-03T09:00:10Z") }
	n.CheckNow()

	n.mu.Lock()
	size := len(n.fired)
	n.mu.Unlock()
	if size != 0 {
		t.Fatalf("expected fired set emptied past the horizon, have %d entries", size)
	}
}

func TestLocalNotifier_StartStopsOnContextCancel(t *testing.T) {
	n, _ := notifierAt(ts("2024-01-01T09:00:10Z"), PermissionDenied)
	n.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	n.Start(ctx)
	cancel()

	// Give the goroutine a moment to observe cancellation; the test mainly
	// guards against the ticker leaking after teardown.
	time.Sleep(20 * time.Millisecond)
}

func TestLocalNotifier_SnapshotIsCopied(t *testing.T) {
	n, rec := notifierAt(ts("2024-01-01T09:00:10Z"), PermissionGranted)

	tasks := []models.Task{taskDueAt("t1", ts("2024-01-01T09:05:00Z"))}
	n.SetTasks(tasks)

	// Mutating the caller's slice must not affect the notifier's snapshot.
	tasks[0].ID = "mutated"
	n.now = func() time.Time { return ts("2024-01-01T09:05:10Z") }
	n.CheckNow()

	if rec.count() != 1 || rec.fired[0].TaskID != "t1" {
		t.Fatalf("expected snapshot isolation, got %+v", rec.fired)
	}
}
