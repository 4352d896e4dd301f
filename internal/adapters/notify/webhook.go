package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// WebhookNotifier POSTs the submission as JSON. Any 2xx is success.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// Compile-time check that *WebhookNotifier satisfies Notifier.
var _ Notifier = (*WebhookNotifier)(nil)

// NewWebhookNotifier creates a WebhookNotifier. A nil client uses
// http.DefaultClient; deadlines come from the caller's context.
// PRE: url is an absolute http(s) URL
func NewWebhookNotifier(url string, client *http.Client) *WebhookNotifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &WebhookNotifier{url: url, client: client}
}

// Notify sends one POST.
// PRE: ctx carries the call deadline
// POST: nil on 2xx; ErrDeliveryFailed on any other status; transport errors wrapped
func (w *WebhookNotifier) Notify(ctx context.Context, s Submission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("webhook_rejected", "status", resp.StatusCode, "user_id", s.UserID)
		return fmt.Errorf("%w: webhook returned %d", ErrDeliveryFailed, resp.StatusCode)
	}
	slog.Info("webhook_delivered", "status", resp.StatusCode, "user_id", s.UserID)
	return nil
}
