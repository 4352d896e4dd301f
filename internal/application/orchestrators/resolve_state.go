package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"heavygym/internal/adapters/storage/profile"
	"heavygym/internal/domain/onboarding"
	"heavygym/internal/domain/session"
	"heavygym/internal/domain/trainingprofile"
)

// ProfileReader defines the store interface needed by ResolveState.
type ProfileReader interface {
	GetStatus(ctx context.Context, userID string) (onboarding.Status, error)
	GetTrainingProfile(ctx context.Context, userID string) (trainingprofile.TrainingProfile, error)
}

// ResolveStateInput carries input for the resolver.
type ResolveStateInput struct {
	Event session.Event
}

// ResolveStateDeps holds dependencies for ResolveState.
type ResolveStateDeps struct {
	Store ProfileReader
	// RequireTrainingProfile additionally demands a stored training profile
	// before routing to the app.
	RequireTrainingProfile bool
	Timeout                time.Duration
	Now                    func() time.Time
}

// ExecuteResolveState maps one auth event to exactly one navigation intent.
// PRE: deps.Store is non-nil
// POST: Returns IntentToApp only when the user's completion flag was read as true
// INVARIANT: lookup failures never produce IntentToApp
func ExecuteResolveState(ctx context.Context, input ResolveStateInput, deps ResolveStateDeps) onboarding.Intent {
	ev := input.Event
	switch ev.Type {
	case session.EventSignedOut:
		return onboarding.IntentToEntry
	case session.EventSignedIn, session.EventRestored:
	default:
		slog.Warn("resolver_unknown_event", "event", string(ev.Type))
		return onboarding.IntentToEntry
	}

	if ev.Session == nil {
		return onboarding.IntentToEntry
	}
	if err := ev.Session.Validate(nowOrDefault(deps.Now)()); err != nil {
		slog.Info("resolver_session_rejected", "event", string(ev.Type), "reason", err.Error())
		return onboarding.IntentToEntry
	}
	userID := ev.Session.UserID

	lookupCtx, cancel := withDeadline(ctx, deps.Timeout)
	defer cancel()

	status, err := deps.Store.GetStatus(lookupCtx, userID)
	if errors.Is(err, profile.ErrNotFound) {
		return onboarding.IntentToOnboarding
	}
	if err != nil {
		slog.Error("resolver_lookup_failed", "user_id", userID, "lookup", "status", "error", err)
		return onboarding.IntentToOnboarding
	}
	if !status.Completed {
		return onboarding.IntentToOnboarding
	}

	if deps.RequireTrainingProfile {
		if _, err := deps.Store.GetTrainingProfile(lookupCtx, userID); err != nil {
			if !errors.Is(err, profile.ErrNotFound) {
				slog.Error("resolver_lookup_failed", "user_id", userID, "lookup", "training_profile", "error", err)
			}
			return onboarding.IntentToOnboarding
		}
	}
	return onboarding.IntentToApp
}
