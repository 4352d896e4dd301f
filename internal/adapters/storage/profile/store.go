package profile

import (
	"context"
	"errors"
	"time"

	"heavygym/internal/domain/onboarding"
	"heavygym/internal/domain/trainingprofile"
)

// Store errors. Every other error is an unclassified backend failure.
var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("training profile already exists")
)

// StatusStore persists the per-user onboarding completion flag.
type StatusStore interface {
	GetStatus(ctx context.Context, userID string) (onboarding.Status, error)
	EnsureStatus(ctx context.Context, userID string, now time.Time) error
	MarkOnboardingCompleted(ctx context.Context, userID string, now time.Time) error
}

// TrainingProfileStore persists questionnaire answers, one row per user.
type TrainingProfileStore interface {
	GetTrainingProfile(ctx context.Context, userID string) (trainingprofile.TrainingProfile, error)
	CreateTrainingProfile(ctx context.Context, value trainingprofile.TrainingProfile) error
}

// Store is the profile store, keyed by user ID.
type Store interface {
	StatusStore
	TrainingProfileStore
}

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
