// Package auth provides the credential gateway: sign-in, sign-up, sign-out,
// session restore and the ordered stream of auth state changes.
package auth

import (
	"context"
	"errors"

	"heavygym/internal/domain/session"
)

// Gateway errors. Anything else is an unclassified auth failure.
var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrAlreadyRegistered  = errors.New("user already registered")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrInvalidEmail       = errors.New("unable to validate email address")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrTokenExpired       = errors.New("session token expired")
)

// SignUpMeta carries the profile data attached to a new account.
type SignUpMeta struct {
	FullName string
}

// Gateway authenticates users and owns the active session.
type Gateway interface {
	SignIn(ctx context.Context, email, password string) (session.Session, error)
	SignUp(ctx context.Context, email, password string, meta SignUpMeta) (session.Session, error)
	SignOut(ctx context.Context) error
	// GetSession returns the live session, or nil when signed out.
	GetSession(ctx context.Context) (*session.Session, error)
	// OnAuthStateChange subscribes to SIGNED_IN / SIGNED_OUT events in order.
	OnAuthStateChange() *Subscription
}
