package orchestrators

import (
	"context"
	"errors"
	"time"

	"heavygym/internal/application/apperr"
)

// DefaultCallTimeout bounds a single remote call when no timeout is configured.
const DefaultCallTimeout = 10 * time.Second

// withDeadline derives a per-call context.
func withDeadline(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultCallTimeout
	}
	return context.WithTimeout(ctx, d)
}

// remoteFailure classifies a failed remote call. An elapsed deadline is a
// timeout regardless of which step it hit.
func remoteFailure(kind apperr.Kind, op, message string, err error) *apperr.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.New(apperr.KindTimeout, op, apperr.MsgTimeout, err)
	}
	return apperr.New(kind, op, message, err)
}

func nowOrDefault(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
