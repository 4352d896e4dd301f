package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"heavygym/internal/adapters/storage"
	domain "heavygym/internal/domain/account"
)

const (
	timeLayout = "2006-01-02T15:04:05.999999999Z07:00"
	// currentSlot keys the single session row of this device.
	currentSlot = "current"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new AccountStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, full_name, password_hash, created_at FROM account WHERE id = ?", id)
	return scanOne(row)
}

// GetByEmail retrieves an Account by normalized email.
// PRE: email is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, full_name, password_hash, created_at FROM account WHERE email = ?",
		domain.NormalizeEmail(email))
	return scanOne(row)
}

// Create inserts a new Account.
// PRE: entity has been validated and has a password hash
// POST: Row inserted, or ErrEmailTaken if the email is registered
func (s *SQLiteStore) Create(ctx context.Context, entity domain.Account) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO account (id, email, full_name, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?) ON CONFLICT(email) DO NOTHING`,
		entity.ID,
		domain.NormalizeEmail(entity.Email),
		entity.FullName,
		entity.PasswordHash,
		entity.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	if n == 0 {
		return ErrEmailTaken
	}
	return nil
}

// SaveSession replaces the stored session.
// PRE: value.UserID and value.AccessToken are non-empty
// POST: LoadSession returns value
func (s *SQLiteStore) SaveSession(ctx context.Context, value StoredSession) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO auth_session (slot, user_id, access_token, expires_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET user_id = excluded.user_id,
		   access_token = excluded.access_token, expires_at = excluded.expires_at`,
		currentSlot, value.UserID, value.AccessToken, value.ExpiresAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession returns the stored session.
// PRE: none
// POST: Returns the session or ErrNoSession
func (s *SQLiteStore) LoadSession(ctx context.Context) (StoredSession, error) {
	var v StoredSession
	var expiresAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id, access_token, expires_at FROM auth_session WHERE slot = ?", currentSlot,
	).Scan(&v.UserID, &v.AccessToken, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredSession{}, ErrNoSession
	}
	if err != nil {
		return StoredSession{}, fmt.Errorf("load session: %w", err)
	}
	v.ExpiresAt, _ = parseTime(expiresAt)
	return v, nil
}

// ClearSession removes the stored session. Clearing an empty slot is not an error.
func (s *SQLiteStore) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM auth_session WHERE slot = ?", currentSlot); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func scanOne(row *sql.Row) (domain.Account, error) {
	entity, err := scanAccount(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, ErrNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}
	return entity, nil
}

// scanAccount extracts an Account from a row scanner function.
func scanAccount(scan func(dest ...any) error) (domain.Account, error) {
	var entity domain.Account
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.Email,
		&entity.FullName,
		&entity.PasswordHash,
		&createdAt,
	)
	if err != nil {
		return domain.Account{}, err
	}
	entity.CreatedAt, _ = parseTime(createdAt)
	return entity, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
