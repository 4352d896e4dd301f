package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"heavygym/internal/adapters/auth"
	"heavygym/internal/application/apperr"
	"heavygym/internal/domain/account"
	"heavygym/internal/domain/session"
)

// Registrar defines the gateway surface needed by SignUp.
type Registrar interface {
	SignUp(ctx context.Context, email, password string, meta auth.SignUpMeta) (session.Session, error)
}

// StatusEnsurer creates the onboarding status row for a new account.
type StatusEnsurer interface {
	EnsureStatus(ctx context.Context, userID string, now time.Time) error
}

// SignUpInput carries input for the sign-up orchestrator.
type SignUpInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// SignUpDeps holds dependencies for SignUp.
type SignUpDeps struct {
	Gateway Registrar
	Store   StatusEnsurer // optional: nil skips creating the status row
	Timeout time.Duration
	Now     func() time.Time
}

// ExecuteSignUp validates the registration form and creates the account.
// PRE: none
// POST: On success the account exists and its status row is incomplete (best effort)
func ExecuteSignUp(ctx context.Context, input SignUpInput, deps SignUpDeps) (session.Session, error) {
	name := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return session.Session{}, apperr.New(apperr.KindValidation, "sign_up", apperr.MsgFillAllFields, nil)
	}
	if len(input.Password) < account.MinPasswordLength {
		return session.Session{}, apperr.New(apperr.KindValidation, "sign_up", apperr.MsgWeakPassword, nil)
	}
	if input.Password != input.ConfirmPassword {
		return session.Session{}, apperr.New(apperr.KindValidation, "sign_up", apperr.MsgPasswordMismatch, nil)
	}
	if !account.ValidEmail(email) {
		return session.Session{}, apperr.New(apperr.KindValidation, "sign_up", apperr.MsgEnterValidEmail, nil)
	}

	c, cancel := withDeadline(ctx, deps.Timeout)
	s, err := deps.Gateway.SignUp(c, email, input.Password, auth.SignUpMeta{FullName: name})
	cancel()
	if err != nil {
		slog.Info("auth_event", "event", "sign_up_failed", "email", email, "error", err)
		return session.Session{}, signUpFailure(err)
	}

	if deps.Store != nil {
		c, cancel := withDeadline(ctx, deps.Timeout)
		defer cancel()
		if err := deps.Store.EnsureStatus(c, s.UserID, nowOrDefault(deps.Now)()); err != nil {
			// The resolver treats a missing row as incomplete, so this is not fatal.
			slog.Warn("ensure_status_failed", "user_id", s.UserID, "error", err)
		}
	}
	return s, nil
}

func signUpFailure(err error) *apperr.Error {
	switch {
	case errors.Is(err, auth.ErrAlreadyRegistered):
		return apperr.New(apperr.KindAuth, "sign_up", apperr.MsgAlreadyRegistered, err)
	case errors.Is(err, auth.ErrWeakPassword):
		return apperr.New(apperr.KindAuth, "sign_up", apperr.MsgWeakPassword, err)
	case errors.Is(err, auth.ErrInvalidEmail):
		return apperr.New(apperr.KindAuth, "sign_up", apperr.MsgInvalidEmail, err)
	}
	return remoteFailure(apperr.KindAuth, "sign_up", apperr.MsgRegistrationPrefix+err.Error(), err)
}
