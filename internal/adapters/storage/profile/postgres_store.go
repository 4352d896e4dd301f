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

// PostgresStore implements Store against the hosted Postgres schema
// created by storage.RunMigrations.
type PostgresStore struct {
	db storage.SQLDB
}

// Compile-time check that *PostgresStore satisfies Store.
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new profile PostgresStore.
func NewPostgresStore(db storage.SQLDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetStatus retrieves the onboarding flag for a user.
// PRE: userID is non-empty
// POST: Returns the status or ErrNotFound
func (s *PostgresStore) GetStatus(ctx context.Context, userID string) (onboarding.Status, error) {
	st := onboarding.Status{UserID: userID}
	err := s.db.QueryRowContext(ctx,
		"SELECT onboarding_completed, updated_at FROM profiles WHERE id = $1", userID,
	).Scan(&st.Completed, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return onboarding.Status{}, ErrNotFound
	}
	if err != nil {
		return onboarding.Status{}, fmt.Errorf("get status: %w", err)
	}
	return st, nil
}

// EnsureStatus creates an incomplete status row if none exists.
// PRE: userID is non-empty
// POST: A row exists; an existing row is never modified
func (s *PostgresStore) EnsureStatus(ctx context.Context, userID string, now time.Time) error {
	st := onboarding.Status{UserID: userID, UpdatedAt: now}
	if err := st.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO profiles (id, onboarding_completed, updated_at) VALUES ($1, FALSE, $2) ON CONFLICT (id) DO NOTHING",
		st.UserID, st.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("ensure status: %w", err)
	}
	return nil
}

// MarkOnboardingCompleted sets the flag to true, creating the row if needed.
// PRE: userID is non-empty
// POST: onboarding_completed = TRUE
func (s *PostgresStore) MarkOnboardingCompleted(ctx context.Context, userID string, now time.Time) error {
	st := onboarding.Status{UserID: userID}
	if err := st.Validate(); err != nil {
		return err
	}
	st.MarkCompleted(now)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, onboarding_completed, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET onboarding_completed = TRUE, updated_at = EXCLUDED.updated_at`,
		st.UserID, st.Completed, st.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("mark onboarding completed: %w", err)
	}
	return nil
}

// GetTrainingProfile retrieves the training profile for a user.
// PRE: userID is non-empty
// POST: Returns the profile or ErrNotFound
func (s *PostgresStore) GetTrainingProfile(ctx context.Context, userID string) (trainingprofile.TrainingProfile, error) {
	var entity trainingprofile.TrainingProfile
	var gender, goal, experience, equipment string
	var injuries sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, full_name, age, gender, height, weight, training_goal,
		        experience_level, equipment_access, injuries, created_at
		 FROM training_profiles WHERE user_id = $1`, userID,
	).Scan(
		&entity.ID, &entity.UserID, &entity.FullName, &entity.Age, &gender,
		&entity.HeightCm, &entity.WeightKg, &goal, &experience, &equipment,
		&injuries, &entity.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return trainingprofile.TrainingProfile{}, ErrNotFound
	}
	if err != nil {
		return trainingprofile.TrainingProfile{}, fmt.Errorf("get training profile: %w", err)
	}
	entity.Gender = trainingprofile.Gender(gender)
	entity.TrainingGoal = trainingprofile.Goal(goal)
	entity.ExperienceLevel = trainingprofile.Experience(experience)
	entity.EquipmentAccess = trainingprofile.Equipment(equipment)
	if injuries.Valid {
		entity.Injuries = &injuries.String
	}
	return entity, nil
}

// CreateTrainingProfile inserts the profile once per user.
// PRE: value has been validated
// POST: Row inserted, or ErrAlreadyExists if the user already has one
func (s *PostgresStore) CreateTrainingProfile(ctx context.Context, value trainingprofile.TrainingProfile) error {
	if err := value.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO training_profiles (id, user_id, full_name, age, gender, height, weight,
		        training_goal, experience_level, equipment_access, injuries, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (user_id) DO NOTHING`,
		value.ID, value.UserID, value.FullName, value.Age, string(value.Gender),
		value.HeightCm, value.WeightKg, string(value.TrainingGoal),
		string(value.ExperienceLevel), string(value.EquipmentAccess),
		nullString(value.Injuries), value.CreatedAt,
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
