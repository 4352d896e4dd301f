package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"heavygym/internal/application/apperr"
	"heavygym/internal/domain/session"
)

// Authenticator defines the gateway surface needed by SignIn.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (session.Session, error)
}

// SignInInput carries input for the sign-in orchestrator.
type SignInInput struct {
	Email    string
	Password string
}

// SignInDeps holds dependencies for SignIn.
type SignInDeps struct {
	Gateway Authenticator
	Timeout time.Duration
}

// ExecuteSignIn authenticates the user. Routing follows from the gateway's
// SIGNED_IN event, not from the return value.
// PRE: none
// POST: Returns the session on success; every gateway failure maps to one message
func ExecuteSignIn(ctx context.Context, input SignInInput, deps SignInDeps) (session.Session, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return session.Session{}, apperr.New(apperr.KindValidation, "sign_in", apperr.MsgFillAllFields, nil)
	}

	c, cancel := withDeadline(ctx, deps.Timeout)
	defer cancel()
	s, err := deps.Gateway.SignIn(c, email, input.Password)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email, "error", err)
		return session.Session{}, remoteFailure(apperr.KindAuth, "sign_in", apperr.MsgInvalidCredentials, err)
	}
	return s, nil
}
