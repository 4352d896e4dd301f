package terminal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"heavygym/internal/application/apperr"
	"heavygym/internal/application/orchestrators"
	"heavygym/internal/domain/onboarding"
	"heavygym/internal/domain/session"
	"heavygym/internal/domain/trainingprofile"
)

// errQuit ends Run without error.
var errQuit = errors.New("quit")

// Gateway is the credential gateway surface the screens call.
type Gateway interface {
	orchestrators.Authenticator
	orchestrators.Registrar
	orchestrators.SignOuter
	GetSession(ctx context.Context) (*session.Session, error)
}

// ProfileStore is the store surface the screens call directly.
type ProfileStore interface {
	EnsureStatus(ctx context.Context, userID string, now time.Time) error
	GetTrainingProfile(ctx context.Context, userID string) (trainingprofile.TrainingProfile, error)
}

// Router is the session bootstrap surface the screens drive.
type Router interface {
	State() onboarding.State
	Intents() <-chan orchestrators.Navigation
	Navigate(intent onboarding.Intent) orchestrators.Navigation
}

// AppDeps holds dependencies for App.
type AppDeps struct {
	Prompter *Prompter
	Gateway  Gateway
	Store    ProfileStore
	Router   Router
	Form     *orchestrators.OnboardingForm
	Timeout  time.Duration
}

// App renders the screen group the state machine is in and feeds user
// actions back through the orchestrators.
type App struct {
	deps AppDeps
	p    *Prompter
}

// NewApp creates an App.
// PRE: every dependency is non-nil
func NewApp(deps AppDeps) *App {
	return &App{deps: deps, p: deps.Prompter}
}

// Run loops over screens until the user quits, input ends or ctx is done.
func (a *App) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		var err error
		switch a.deps.Router.State() {
		case onboarding.StateEntry:
			err = a.entry(ctx)
		case onboarding.StateOnboarding:
			err = a.onboarding(ctx)
		case onboarding.StateApp:
			err = a.home(ctx)
		}
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// drain drops navigations left over from events the screens did not wait for.
func (a *App) drain() {
	for {
		select {
		case <-a.deps.Router.Intents():
		default:
			return
		}
	}
}

// await blocks until the auth event caused by the last action is routed.
func (a *App) await(ctx context.Context) {
	timeout := a.deps.Timeout
	if timeout <= 0 {
		timeout = orchestrators.DefaultCallTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case nav := <-a.deps.Router.Intents():
		if nav.Err != nil {
			a.p.Println(apperr.MsgGeneric)
		}
	case <-timer.C:
		slog.Warn("navigation_timeout", "state", string(a.deps.Router.State()))
	case <-ctx.Done():
	}
}

func (a *App) signOut(ctx context.Context) error {
	a.drain()
	if err := orchestrators.ExecuteSignOut(ctx, orchestrators.SignOutDeps{Gateway: a.deps.Gateway, Timeout: a.deps.Timeout}); err != nil {
		a.p.Println(apperr.Message(err))
		return nil
	}
	a.deps.Form.Discard()
	a.await(ctx)
	return nil
}
