package session

import (
	"errors"
	"time"
)

// EventType identifies an authentication state change.
type EventType string

// Event type constants
const (
	EventSignedIn  EventType = "SIGNED_IN"
	EventSignedOut EventType = "SIGNED_OUT"
	// EventRestored is produced at process start from whatever session the
	// credential gateway still holds. Session may be nil.
	EventRestored EventType = "RESTORED"
)

// Domain errors
var (
	ErrEmptyUserID = errors.New("session must carry a user ID")
	ErrExpired     = errors.New("session has expired")
)

// Session is proof of authentication plus user identity, time-bounded.
// It is owned by the credential gateway; callers hold it transiently.
type Session struct {
	UserID      string
	Email       string
	AccessToken string
	ExpiresAt   time.Time
}

// Event is one authentication state change delivered by the gateway.
type Event struct {
	Type    EventType
	Session *Session
}

// SignedIn builds a SIGNED_IN event for s.
func SignedIn(s Session) Event {
	return Event{Type: EventSignedIn, Session: &s}
}

// SignedOut builds a SIGNED_OUT event.
func SignedOut() Event {
	return Event{Type: EventSignedOut}
}

// Restored builds a bootstrap event from an optional session.
func Restored(s *Session) Event {
	return Event{Type: EventRestored, Session: s}
}

// IsExpired returns true if the session is past its expiry at now.
// A zero ExpiresAt never expires.
// INVARIANT: Session fields are not mutated
func (s Session) IsExpired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt)
}

// Validate checks the session identifies a user and is still live.
// PRE: Session struct is populated
// POST: Returns nil if usable at now, error otherwise
func (s Session) Validate(now time.Time) error {
	if s.UserID == "" {
		return ErrEmptyUserID
	}
	if s.IsExpired(now) {
		return ErrExpired
	}
	return nil
}
