package task

import (
	"errors"
	"testing"
	"time"

	"tasknest/models"
)

// fakeTaskRepo keeps tasks in a map keyed by ID.
type fakeTaskRepo struct {
	tasks  map[string]models.Task
	getErr error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]models.Task{}}
}

func (r *fakeTaskRepo) GetByID(id string) (*models.Task, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeTaskRepo) ListByUser(userID string) ([]models.Task, error) {
	var out []models.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Upsert(t *models.Task) error {
	r.tasks[t.ID] = *t
	return nil
}

func (r *fakeTaskRepo) Delete(id string) error {
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) FindDueBetween(start, end time.Time) ([]models.Task, error) {
	var out []models.Task
	for _, t := range r.tasks {
		if t.NotificationTime == nil || t.IsCompleted {
			continue
		}
		if !t.NotificationTime.Before(start) && !t.NotificationTime.After(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) SetCompleted(id string, completed bool) (*models.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	t.IsCompleted = completed
	r.tasks[id] = t
	return &t, nil
}

func TestSaveTask_AssignsDefaults(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := &DefaultTaskService{Repo: repo}

	saved, err := svc.SaveTask("u1", models.Task{Title: "water plants"})
	if err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected a generated ID")
	}
	if saved.CreatedAt == 0 {
		t.Fatal("expected CreatedAt to be set")
	}
	if saved.Priority != models.PriorityMedium {
		t.Fatalf("expected default priority, got %q", saved.Priority)
	}
	if saved.UserID != "u1" {
		t.Fatalf("expected owner u1, got %q", saved.UserID)
	}
}

func TestSaveTask_ForcesAuthenticatedOwner(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := &DefaultTaskService{Repo: repo}

	saved, err := svc.SaveTask("u1", models.Task{Title: "x", UserID: "someone-else"})
	if err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	if saved.UserID != "u1" {
		t.Fatalf("client-supplied user_id must be ignored, got %q", saved.UserID)
	}
}

func TestSaveTask_RejectsForeignTask(t *testing.T) {
	repo := newFakeTaskRepo()
	repo.tasks["t1"] = models.Task{ID: "t1", UserID: "u2"}
	svc := &DefaultTaskService{Repo: repo}

	if _, err := svc.SaveTask("u1", models.Task{ID: "t1", Title: "hijack"}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if repo.tasks["t1"].UserID != "u2" {
		t.Fatal("foreign task must not be overwritten")
	}
}

func TestDeleteTask_MissingIsIdempotent(t *testing.T) {
	svc := &DefaultTaskService{Repo: newFakeTaskRepo()}
	if err := svc.DeleteTask("u1", "absent"); err != nil {
		t.Fatalf("deleting an absent task should succeed, got %v", err)
	}
}

func TestDeleteTask_RejectsForeignTask(t *testing.T) {
	repo := newFakeTaskRepo()
	repo.tasks["t1"] = models.Task{ID: "t1", UserID: "u2"}
	svc := &DefaultTaskService{Repo: repo}

	if err := svc.DeleteTask("u1", "t1"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, ok := repo.tasks["t1"]; !ok {
		t.Fatal("foreign task must survive the delete attempt")
	}
}

func TestToggleCompletion(t *testing.T) {
	repo := newFakeTaskRepo()
	repo.tasks["t1"] = models.Task{ID: "t1", UserID: "u1", IsCompleted: false}
	svc := &DefaultTaskService{Repo: repo}

	got, err := svc.ToggleCompletion("u1", "t1")
	if err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	if !got.IsCompleted {
		t.Fatal("expected task to flip to completed")
	}

	got, err = svc.ToggleCompletion("u1", "t1")
	if err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	if got.IsCompleted {
		t.Fatal("expected task to flip back to pending")
	}
}

func TestToggleCompletion_MissingTask(t *testing.T) {
	svc := &DefaultTaskService{Repo: newFakeTaskRepo()}
	got, err := svc.ToggleCompletion("u1", "absent")
	if err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for a missing task, got %+v", got)
	}
}

func TestToggleCompletion_RejectsForeignTask(t *testing.T) {
	repo := newFakeTaskRepo()
	repo.tasks["t1"] = models.Task{ID: "t1", UserID: "u2"}
	svc := &DefaultTaskService{Repo: repo}

	if _, err := svc.ToggleCompletion("u1", "t1"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestListTasks_EmptyIsNotNil(t *testing.T) {
	svc := &DefaultTaskService{Repo: newFakeTaskRepo()}
	tasks, err := svc.ListTasks("u1")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if tasks == nil {
		t.Fatal("expected an empty slice, not nil")
	}
}
