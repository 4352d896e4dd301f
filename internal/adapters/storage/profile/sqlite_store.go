package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"heavygym/internal/adapters/storage"
	"heavygym/internal/domain/onboarding"
	"heavygym/internal/domain/trainingprofile"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new profile SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetStatus retrieves the onboarding flag for a user.
// PRE: userID is non-empty
// POST: Returns the status or ErrNotFound
func (s *SQLiteStore) GetStatus(ctx context.Context, userID string) (onboarding.Status, error) {
	var completed int
	var updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT onboarding_completed, updated_at FROM profiles WHERE id = ?", userID,
	).Scan(&completed, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return onboarding.Status{}, ErrNotFound
	}
	if err != nil {
		return onboarding.Status{}, fmt.Errorf("get status: %w", err)
	}
	st := onboarding.Status{UserID: userID, Completed: completed != 0}
	st.UpdatedAt, _ = parseTime(updatedAt)
	return st, nil
}

// EnsureStatus creates an incomplete status row if none exists.
// PRE: userID is non-empty
// POST: A row exists; an existing row is never modified
func (s *SQLiteStore) EnsureStatus(ctx context.Context, userID string, now time.Time) error {
	st := onboarding.Status{UserID: userID, UpdatedAt: now}
	if err := st.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO profiles (id, onboarding_completed, updated_at) VALUES (?, 0, ?) ON CONFLICT(id) DO NOTHING",
		st.UserID, st.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("ensure status: %w", err)
	}
	return nil
}

// MarkOnboardingCompleted sets the flag to true, creating the row if needed.
// PRE: userID is non-empty
// POST: onboarding_completed = 1
// INVARIANT: no statement in this store writes 0 over an existing row
func (s *SQLiteStore) MarkOnboardingCompleted(ctx context.Context, userID string, now time.Time) error {
	st := onboarding.Status{UserID: userID}
	if err := st.Validate(); err != nil {
		return err
	}
	st.MarkCompleted(now)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, onboarding_completed, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET onboarding_completed = 1, updated_at = excluded.updated_at`,
		st.UserID, boolToInt(st.Completed), st.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("mark onboarding completed: %w", err)
	}
	return nil
}

// GetTrainingProfile retrieves the training profile for a user.
// PRE: userID is non-empty
// POST: Returns the profile or ErrNotFound
func (s *SQLiteStore) GetTrainingProfile(ctx context.Context, userID string) (trainingprofile.TrainingProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, full_name, age, gender, height, weight, training_goal,
		        experience_level, equipment_access, injuries, created_at
		 FROM training_profiles WHERE user_id = ?`, userID)

	entity, err := scanTrainingProfile(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return trainingprofile.TrainingProfile{}, ErrNotFound
	}
	if err != nil {
		return trainingprofile.TrainingProfile{}, fmt.Errorf("get training profile: %w", err)
	}
	return entity, nil
}

// CreateTrainingProfile inserts the profile once per user.
// PRE: value has been validated
// POST: Row inserted, or ErrAlreadyExists if the user already has one
func (s *SQLiteStore) CreateTrainingProfile(ctx context.Context, value trainingprofile.TrainingProfile) error {
	if err := value.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO training_profiles (id, user_id, full_name, age, gender, height, weight,
		        training_goal, experience_level, equipment_access, injuries, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO NOTHING`,
		value.ID,
		value.UserID,
		value.FullName,
		value.Age,
		string(value.Gender),
		value.HeightCm,
		value.WeightKg,
		string(value.TrainingGoal),
		string(value.ExperienceLevel),
		string(value.EquipmentAccess),
		nullString(value.Injuries),
		value.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("create training profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create training profile: %w", err)
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// scanTrainingProfile extracts a TrainingProfile from a row scanner function.
func scanTrainingProfile(scan func(dest ...any) error) (trainingprofile.TrainingProfile, error) {
	var entity trainingprofile.TrainingProfile
	var gender, goal, experience, equipment, createdAt string
	var injuries sql.NullString
	err := scan(
		&entity.ID,
		&entity.UserID,
		&entity.FullName,
		&entity.Age,
		&gender,
		&entity.HeightCm,
		&entity.WeightKg,
		&goal,
		&experience,
		&equipment,
		&injuries,
		&createdAt,
	)
	if err != nil {
		return trainingprofile.TrainingProfile{}, err
	}
	entity.Gender = trainingprofile.Gender(gender)
	entity.TrainingGoal = trainingprofile.Goal(goal)
	entity.ExperienceLevel = trainingprofile.Experience(experience)
	entity.EquipmentAccess = trainingprofile.Equipment(equipment)
	if injuries.Valid {
		entity.Injuries = &injuries.String
	}
	entity.CreatedAt, _ = parseTime(createdAt)
	return entity, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
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
