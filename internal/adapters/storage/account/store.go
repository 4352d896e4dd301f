package account

import (
	"context"
	"errors"
	"time"

	domain "heavygym/internal/domain/account"
)

// Store errors
var (
	ErrNotFound   = errors.New("account not found")
	ErrEmailTaken = errors.New("email already registered")
	ErrNoSession  = errors.New("no stored session")
)

// StoredSession is the one persisted sign-in the local gateway restores at start.
type StoredSession struct {
	UserID      string
	AccessToken string
	ExpiresAt   time.Time
}

// Store persists Account state and the current session slot.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Create(ctx context.Context, value domain.Account) error
	SaveSession(ctx context.Context, value StoredSession) error
	LoadSession(ctx context.Context) (StoredSession, error)
	ClearSession(ctx context.Context) error
}
