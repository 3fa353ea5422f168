package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tasknest/middleware"
	"tasknest/models"
	notification "tasknest/services/notification"

	"github.com/gin-gonic/gin"
)

// fakeSweep returns a scripted summary or error.
type fakeSweep struct {
	summary *models.SweepSummary
	err     error
	calls   int
}

func (f *fakeSweep) Run(ctx context.Context, now time.Time) (*models.SweepSummary, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

func (f *fakeSweep) SendTestPush(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func sweepRouter(secret string, sweep notification.SweepService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/cron/check-notifications",
		middleware.SweepAuthMiddleware(secret),
		NewSweepHandler(sweep).CheckNotificationsHandler)
	return r
}

func sweepRequest(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/cron/check-notifications", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSweepEndpoint_RejectsMissingOrWrongSecret(t *testing.T) {
	sweep := &fakeSweep{summary: &models.SweepSummary{}}
	r := sweepRouter("s3cret", sweep)

	for _, header := range []string{"", "Bearer wrong", "s3cret", "Basic s3cret"} {
		w := sweepRequest(t, r, header)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
	if sweep.calls != 0 {
		t.Fatalf("expected no sweep runs on rejected requests, got %d", sweep.calls)
	}
}

func TestSweepEndpoint_MissingSecretConfigIsServerError(t *testing.T) {
	sweep := &fakeSweep{summary: &models.SweepSummary{}}
	r := sweepRouter("", sweep)

	w := sweepRequest(t, r, "Bearer anything")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when the cron secret is unset, got %d", w.Code)
	}
	if sweep.calls != 0 {
		t.Fatalf("expected no sweep runs without server configuration")
	}
}

func TestSweepEndpoint_NothingDue(t *testing.T) {
	sweep := &fakeSweep{summary: &models.SweepSummary{Processed: 0, Results: []models.TaskSweepResult{}}}
	r := sweepRouter("s3cret", sweep)

	w := sweepRequest(t, r, "Bearer s3cret")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["message"] != "No tasks to notify" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestSweepEndpoint_ReturnsSummary(t *testing.T) {
	sweep := &fakeSweep{summary: &models.SweepSummary{
		Processed: 1,
		Results: []models.TaskSweepResult{{
			TaskID:     "t1",
			Deliveries: []models.DeliveryResult{{SubscriptionID: "s1", Status: models.DeliverySent}},
		}},
	}}
	r := sweepRouter("s3cret", sweep)

	w := sweepRequest(t, r, "Bearer s3cret")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got models.SweepSummary
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if got.Processed != 1 || len(got.Results) != 1 || got.Results[0].TaskID != "t1" {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if got.Results[0].Deliveries[0].Status != models.DeliverySent {
		t.Fatalf("expected sent delivery, got %+v", got.Results[0].Deliveries)
	}
}

func TestSweepEndpoint_MissingVAPIDConfig(t *testing.T) {
	sweep := &fakeSweep{err: notification.ErrNotConfigured}
	r := sweepRouter("s3cret", sweep)

	w := sweepRequest(t, r, "Bearer s3cret")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "VAPID keys missing") {
		t.Fatalf("expected a descriptive configuration error, got %q", w.Body.String())
	}
}
