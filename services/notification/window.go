package notification

import (
	"time"

	"tasknest/models"
)

// Window is an inclusive time range covering one whole minute.
type Window struct {
	Start time.Time
	End   time.Time
}

// MinuteWindow computes the window [floor_to_minute(now), +59.999s] that a
// sweep invoked at now is responsible for. Matching at minute granularity
// tolerates scheduler jitter within the invocation minute; push delivery is
// nowhere near millisecond-exact anyway.
func MinuteWindow(now time.Time) Window {
	start := now.UTC().Truncate(time.Minute)
	return Window{
		Start: start,
		End:   start.Add(time.Minute - time.Millisecond),
	}
}

// Contains reports whether t falls inside the window, inclusive on both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// IsDue reports whether the task should be notified during this window: its
// notification time falls inside the window and it has not been completed.
func IsDue(task models.Task, w Window) bool {
	if task.IsCompleted || task.NotificationTime == nil {
		return false
	}
	return w.Contains(*task.NotificationTime)
}
