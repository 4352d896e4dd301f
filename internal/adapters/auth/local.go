package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	accountstore "heavygym/internal/adapters/storage/account"
	"heavygym/internal/domain/account"
	"heavygym/internal/domain/session"
)

// LocalGatewayDeps holds dependencies for LocalGateway.
type LocalGatewayDeps struct {
	Accounts   accountstore.Store
	Tokens     *TokenIssuer
	Now        func() time.Time
	GenerateID func() string
}

// LocalGateway is a credential gateway backed by the local account store.
// It keeps one signed-in session per device and persists it so the next
// process start can restore it.
type LocalGateway struct {
	deps LocalGatewayDeps
	hub  *Hub

	// mu serializes state changes with their event publication so
	// subscribers observe events in the order the changes happened.
	mu      sync.Mutex
	current *session.Session
}

// Compile-time check that *LocalGateway satisfies Gateway.
var _ Gateway = (*LocalGateway)(nil)

// NewLocalGateway creates a LocalGateway.
// PRE: deps.Accounts and deps.Tokens are non-nil
func NewLocalGateway(deps LocalGatewayDeps) *LocalGateway {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.GenerateID == nil {
		deps.GenerateID = uuid.NewString
	}
	return &LocalGateway{deps: deps, hub: NewHub()}
}

// OnAuthStateChange subscribes to auth events.
func (g *LocalGateway) OnAuthStateChange() *Subscription {
	return g.hub.Subscribe()
}

// SignIn authenticates with email and password.
// PRE: none
// POST: On success a session is persisted and SIGNED_IN is published
func (g *LocalGateway) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	a, err := g.deps.Accounts.GetByEmail(ctx, account.NormalizeEmail(email))
	if errors.Is(err, accountstore.ErrNotFound) {
		return session.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("sign in: %w", err)
	}
	if err := a.CheckPassword(password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", a.Email)
		return session.Session{}, ErrInvalidCredentials
	}
	return g.startSession(ctx, a)
}

// SignUp creates an account and signs it in.
// PRE: none
// POST: On success the account exists, a session is persisted and SIGNED_IN
// is published
func (g *LocalGateway) SignUp(ctx context.Context, email, password string, meta SignUpMeta) (session.Session, error) {
	a := account.Account{
		ID:        g.deps.GenerateID(),
		Email:     account.NormalizeEmail(email),
		FullName:  meta.FullName,
		CreatedAt: g.deps.Now(),
	}
	if err := a.Validate(); err != nil {
		if errors.Is(err, account.ErrInvalidEmail) || errors.Is(err, account.ErrEmptyEmail) {
			return session.Session{}, ErrInvalidEmail
		}
		return session.Session{}, fmt.Errorf("sign up: %w", err)
	}
	if err := a.SetPassword(password); err != nil {
		if errors.Is(err, account.ErrPasswordTooShort) || errors.Is(err, account.ErrEmptyPassword) {
			return session.Session{}, ErrWeakPassword
		}
		return session.Session{}, fmt.Errorf("sign up: %w", err)
	}
	if err := g.deps.Accounts.Create(ctx, a); err != nil {
		if errors.Is(err, accountstore.ErrEmailTaken) {
			return session.Session{}, ErrAlreadyRegistered
		}
		return session.Session{}, fmt.Errorf("sign up: %w", err)
	}
	slog.Info("auth_event", "event", "account_created", "user_id", a.ID)
	return g.startSession(ctx, a)
}

// SignOut ends the current session.
// PRE: none
// POST: No session is stored and SIGNED_OUT is published
func (g *LocalGateway) SignOut(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.deps.Accounts.ClearSession(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	g.current = nil
	slog.Info("auth_event", "event", "signed_out")
	g.hub.Publish(session.SignedOut())
	return nil
}

// GetSession returns the live session, restoring a persisted one if needed.
// An expired or unverifiable stored session is discarded and reported as nil.
func (g *LocalGateway) GetSession(ctx context.Context) (*session.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.deps.Now()
	if g.current != nil {
		if !g.current.IsExpired(now) {
			s := *g.current
			return &s, nil
		}
		g.current = nil
	}

	stored, err := g.deps.Accounts.LoadSession(ctx)
	if errors.Is(err, accountstore.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	claims, err := g.deps.Tokens.Parse(stored.AccessToken)
	if err != nil || claims.Subject != stored.UserID {
		slog.Info("auth_event", "event", "stored_session_discarded", "reason", fmt.Sprint(err))
		if clearErr := g.deps.Accounts.ClearSession(ctx); clearErr != nil {
			return nil, fmt.Errorf("get session: %w", clearErr)
		}
		return nil, nil
	}

	s := session.Session{
		UserID:      claims.Subject,
		Email:       claims.Email,
		AccessToken: stored.AccessToken,
		ExpiresAt:   stored.ExpiresAt,
	}
	g.current = &s
	out := s
	return &out, nil
}

func (g *LocalGateway) startSession(ctx context.Context, a account.Account) (session.Session, error) {
	token, expiresAt, err := g.deps.Tokens.Issue(a.ID, a.Email)
	if err != nil {
		return session.Session{}, err
	}
	s := session.Session{UserID: a.ID, Email: a.Email, AccessToken: token, ExpiresAt: expiresAt}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.deps.Accounts.SaveSession(ctx, accountstore.StoredSession{
		UserID:      s.UserID,
		AccessToken: s.AccessToken,
		ExpiresAt:   s.ExpiresAt,
	}); err != nil {
		return session.Session{}, fmt.Errorf("save session: %w", err)
	}
	current := s
	g.current = &current
	slog.Info("auth_event", "event", "signed_in", "user_id", s.UserID)
	g.hub.Publish(session.SignedIn(s))
	return s, nil
}
