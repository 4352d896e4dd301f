package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"heavygym/internal/adapters/auth"
	"heavygym/internal/domain/onboarding"
	"heavygym/internal/domain/session"
)

// navigationBuffer is how many resolved navigations may queue for the UI.
const navigationBuffer = 16

// AuthSource defines the gateway surface the bootstrap needs.
type AuthSource interface {
	GetSession(ctx context.Context) (*session.Session, error)
	OnAuthStateChange() *auth.Subscription
}

// SessionBootstrapDeps holds dependencies for SessionBootstrap.
type SessionBootstrapDeps struct {
	Gateway                AuthSource
	Store                  ProfileReader
	RequireTrainingProfile bool
	Timeout                time.Duration
	Now                    func() time.Time
	Machine                *onboarding.Machine // optional: nil starts a fresh machine in Entry
}

// Navigation is one resolved routing decision.
type Navigation struct {
	Event  session.EventType // empty for UI-driven navigation
	UserID string
	Intent onboarding.Intent
	State  onboarding.State // state after applying Intent
	Err    error            // non-nil when the transition was rejected
}

// SessionBootstrap owns the auth subscription and feeds every auth event,
// in delivery order, through the resolver into the state machine.
type SessionBootstrap struct {
	deps    SessionBootstrapDeps
	machine *onboarding.Machine
	sub     *auth.Subscription
	intents chan Navigation

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// StartSessionBootstrap subscribes to auth events, restores any existing
// session, resolves it, and starts the event loop.
// PRE: deps.Gateway and deps.Store are non-nil
// POST: Returns the running bootstrap and the initial navigation. Close must
// be called to release the subscription.
func StartSessionBootstrap(ctx context.Context, deps SessionBootstrapDeps) (*SessionBootstrap, Navigation, error) {
	if deps.Gateway == nil || deps.Store == nil {
		return nil, Navigation{}, errors.New("session bootstrap requires a gateway and a profile store")
	}
	deps.Now = nowOrDefault(deps.Now)
	machine := deps.Machine
	if machine == nil {
		machine = onboarding.NewMachine()
	}

	// Subscribe before reading the session so no event between the two is lost.
	sub := deps.Gateway.OnAuthStateChange()

	getCtx, cancelGet := withDeadline(ctx, deps.Timeout)
	current, err := deps.Gateway.GetSession(getCtx)
	cancelGet()
	if err != nil {
		slog.Warn("bootstrap_restore_failed", "error", err)
		current = nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	b := &SessionBootstrap{
		deps:    deps,
		machine: machine,
		sub:     sub,
		intents: make(chan Navigation, navigationBuffer),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	initial := b.handle(loopCtx, session.Restored(current))

	go b.run(loopCtx)
	return b, initial, nil
}

// Intents delivers one Navigation per auth event after start.
func (b *SessionBootstrap) Intents() <-chan Navigation {
	return b.intents
}

// State returns the current state of the machine.
func (b *SessionBootstrap) State() onboarding.State {
	return b.machine.Current()
}

// Navigate applies a UI-driven intent, such as the form's IntentToApp.
func (b *SessionBootstrap) Navigate(intent onboarding.Intent) Navigation {
	state, err := b.machine.Apply(intent)
	if err != nil {
		slog.Warn("navigation_rejected", "intent", string(intent), "state", string(state), "error", err)
	}
	return Navigation{Intent: intent, State: state, Err: err}
}

// Close stops the loop and releases the subscription. Safe to call more than once.
func (b *SessionBootstrap) Close() {
	b.closeOnce.Do(func() {
		b.cancel()
		<-b.done
	})
}

func (b *SessionBootstrap) run(ctx context.Context) {
	defer close(b.done)
	defer b.sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.sub.Done():
			return
		case ev := <-b.sub.Events():
			nav := b.handle(ctx, ev)
			select {
			case b.intents <- nav:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (b *SessionBootstrap) handle(ctx context.Context, ev session.Event) Navigation {
	intent := ExecuteResolveState(ctx, ResolveStateInput{Event: ev}, ResolveStateDeps{
		Store:                  b.deps.Store,
		RequireTrainingProfile: b.deps.RequireTrainingProfile,
		Timeout:                b.deps.Timeout,
		Now:                    b.deps.Now,
	})
	nav := Navigation{Event: ev.Type, Intent: intent}
	if ev.Session != nil {
		nav.UserID = ev.Session.UserID
	}
	nav.State, nav.Err = b.machine.Apply(intent)
	if nav.Err != nil {
		slog.Warn("navigation_rejected", "event", string(ev.Type), "intent", string(intent), "state", string(nav.State), "error", nav.Err)
	} else {
		slog.Info("navigation", "event", string(ev.Type), "user_id", nav.UserID, "intent", string(intent), "state", string(nav.State))
	}
	return nav
}
