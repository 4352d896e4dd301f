// Package notify delivers completed onboarding submissions to the coaching
// side: a JSON webhook and an optional coach email.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"heavygym/internal/domain/trainingprofile"
)

// ErrDeliveryFailed reports that a notification target rejected the submission.
var ErrDeliveryFailed = errors.New("notification delivery failed")

// ErrEmailDeliveryFailed marks a failure of the coach email channel.
var ErrEmailDeliveryFailed = fmt.Errorf("coach email: %w", ErrDeliveryFailed)

// Submission is the payload sent for one completed questionnaire.
type Submission struct {
	UserID          string    `json:"userId"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	HeightCm        int       `json:"heightCm"`
	WeightKg        int       `json:"weightKg"`
	TrainingGoal    string    `json:"trainingGoal"`
	ExperienceLevel string    `json:"experienceLevel"`
	EquipmentAccess string    `json:"equipmentAccess"`
	Injuries        *string   `json:"injuries"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewSubmission builds the payload from a stored profile.
func NewSubmission(p trainingprofile.TrainingProfile, email string, now time.Time) Submission {
	return Submission{
		UserID:          p.UserID,
		Email:           email,
		FullName:        p.FullName,
		Age:             p.Age,
		Gender:          string(p.Gender),
		HeightCm:        p.HeightCm,
		WeightKg:        p.WeightKg,
		TrainingGoal:    string(p.TrainingGoal),
		ExperienceLevel: string(p.ExperienceLevel),
		EquipmentAccess: string(p.EquipmentAccess),
		Injuries:        p.Injuries,
		Timestamp:       now.UTC(),
	}
}

// Notifier delivers one submission.
type Notifier interface {
	Notify(ctx context.Context, s Submission) error
}
