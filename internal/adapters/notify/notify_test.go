package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"heavygym/internal/adapters/email"
	"heavygym/internal/adapters/notify"
	"heavygym/internal/domain/trainingprofile"
)

func sampleSubmission() notify.Submission {
	p := trainingprofile.TrainingProfile{
		UserID:          "u1",
		FullName:        "Anna Svensson",
		Age:             28,
		Gender:          trainingprofile.GenderKvinna,
		HeightCm:        170,
		WeightKg:        65,
		TrainingGoal:    trainingprofile.GoalBuildMuscle,
		ExperienceLevel: trainingprofile.ExperienceBeginner,
		EquipmentAccess: trainingprofile.EquipmentGym,
	}
	return notify.NewSubmission(p, "anna@heavygym.se", time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC))
}

func TestWebhookNotifier_PostsJSON(t *testing.T) {
	var body map[string]any
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n := notify.NewWebhookNotifier(srv.URL, srv.Client())
	if err := n.Notify(context.Background(), sampleSubmission()); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q", contentType)
	}
	for _, key := range []string{"userId", "email", "fullName", "age", "gender", "heightCm", "weightKg",
		"trainingGoal", "experienceLevel", "equipmentAccess", "injuries", "timestamp"} {
		if _, ok := body[key]; !ok {
			t.Errorf("body missing %q", key)
		}
	}
	if body["injuries"] != nil {
		t.Errorf("injuries = %v, want null", body["injuries"])
	}
	if body["age"] != float64(28) {
		t.Errorf("age = %v, want 28", body["age"])
	}
}

func TestWebhookNotifier_Non2xx(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"redirect", http.StatusFound},
		{"client error", http.StatusBadRequest},
		{"server error", http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := srv.Client()
			client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
			err := notify.NewWebhookNotifier(srv.URL, client).Notify(context.Background(), sampleSubmission())
			if !errors.Is(err, notify.ErrDeliveryFailed) {
				t.Errorf("Notify() error = %v, want ErrDeliveryFailed", err)
			}
		})
	}
}

func TestWebhookNotifier_Deadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := notify.NewWebhookNotifier(srv.URL, srv.Client()).Notify(ctx, sampleSubmission())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Notify() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestEmailNotifier_RendersAndSends(t *testing.T) {
	sender := email.NewNoopSender()
	n := notify.NewEmailNotifier(sender, "coach@heavygym.se")
	if err := n.Notify(context.Background(), sampleSubmission()); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	sent := sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sent))
	}
	req := sent[0]
	if req.To[0] != "coach@heavygym.se" || req.ReplyTo != "anna@heavygym.se" {
		t.Errorf("addresses = %v / %s", req.To, req.ReplyTo)
	}
	if !strings.Contains(req.Subject, "Anna Svensson") {
		t.Errorf("Subject = %q", req.Subject)
	}
	if !strings.Contains(req.HTML, "<table>") || !strings.Contains(req.HTML, "Inga") {
		t.Errorf("HTML not rendered as expected: %s", req.HTML)
	}
	if req.Tags["category"] != "onboarding" || req.Tags["user_id"] != "u1" {
		t.Errorf("Tags = %v", req.Tags)
	}
}

// blockingSender waits for the caller's context to end.
type blockingSender struct{}

func (blockingSender) Send(ctx context.Context, _ email.SendRequest) (email.SendResult, error) {
	<-ctx.Done()
	return email.SendResult{}, ctx.Err()
}

func TestEmailNotifier_Deadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := notify.NewEmailNotifier(blockingSender{}, "coach@heavygym.se").Notify(ctx, sampleSubmission())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Notify() error = %v, want context.DeadlineExceeded", err)
	}
	if !errors.Is(err, notify.ErrEmailDeliveryFailed) || !errors.Is(err, notify.ErrDeliveryFailed) {
		t.Errorf("Notify() error = %v, want ErrEmailDeliveryFailed", err)
	}
}

func TestRenderSubmission_EscapesHTML(t *testing.T) {
	s := sampleSubmission()
	s.FullName = "<script>alert(1)</script>"
	html, err := notify.RenderSubmission(s)
	if err != nil {
		t.Fatalf("RenderSubmission() error = %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("raw HTML leaked into output: %s", html)
	}
}

type countingNotifier struct {
	calls atomic.Int32
	err   error
}

func (c *countingNotifier) Notify(ctx context.Context, s notify.Submission) error {
	c.calls.Add(1)
	return c.err
}

func TestMulti_FansOut(t *testing.T) {
	a, b := &countingNotifier{}, &countingNotifier{}
	if err := (notify.Multi{a, b}).Notify(context.Background(), sampleSubmission()); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if a.calls.Load() != 1 || b.calls.Load() != 1 {
		t.Errorf("calls = %d/%d, want 1/1", a.calls.Load(), b.calls.Load())
	}
}

func TestMulti_AnyFailureFails(t *testing.T) {
	ok, bad := &countingNotifier{}, &countingNotifier{err: notify.ErrDeliveryFailed}
	err := (notify.Multi{ok, bad}).Notify(context.Background(), sampleSubmission())
	if !errors.Is(err, notify.ErrDeliveryFailed) {
		t.Errorf("Notify() error = %v, want ErrDeliveryFailed", err)
	}
}
