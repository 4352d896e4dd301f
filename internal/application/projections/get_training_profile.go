package projections

import (
	"context"
	"errors"
	"strconv"

	"heavygym/internal/adapters/storage/profile"
	"heavygym/internal/domain/trainingprofile"
)

// GetTrainingProfileStore defines the store interface for the profile tab.
type GetTrainingProfileStore interface {
	GetTrainingProfile(ctx context.Context, userID string) (trainingprofile.TrainingProfile, error)
}

// GetTrainingProfileInput carries input for the profile tab query.
type GetTrainingProfileInput struct {
	UserID string
	Email  string
}

// GetTrainingProfileDeps holds dependencies for the profile tab query.
type GetTrainingProfileDeps struct {
	Store GetTrainingProfileStore
}

// ProfileRow is one labelled line on the profile tab.
type ProfileRow struct {
	Label string
	Value string
}

// TrainingProfileView is what the profile tab renders.
type TrainingProfileView struct {
	Email   string
	Found   bool
	Profile trainingprofile.TrainingProfile
	Rows    []ProfileRow
}

// QueryGetTrainingProfile loads the stored questionnaire answers for display.
// PRE: input.UserID is non-empty
// POST: Found is false when the user has no profile; other errors are returned
func QueryGetTrainingProfile(ctx context.Context, input GetTrainingProfileInput, deps GetTrainingProfileDeps) (TrainingProfileView, error) {
	view := TrainingProfileView{Email: input.Email}
	p, err := deps.Store.GetTrainingProfile(ctx, input.UserID)
	if errors.Is(err, profile.ErrNotFound) {
		return view, nil
	}
	if err != nil {
		return view, err
	}

	injuries := p.InjuriesText()
	if injuries == "" {
		injuries = "Inga"
	}
	view.Found = true
	view.Profile = p
	view.Rows = []ProfileRow{
		{"Namn", p.FullName},
		{"Ålder", strconv.Itoa(p.Age) + " år"},
		{"Kön", string(p.Gender)},
		{"Längd", strconv.Itoa(p.HeightCm) + " cm"},
		{"Vikt", strconv.Itoa(p.WeightKg) + " kg"},
		{"Träningsmål", string(p.TrainingGoal)},
		{"Erfarenhet", string(p.ExperienceLevel)},
		{"Utrustning", string(p.EquipmentAccess)},
		{"Skador", injuries},
	}
	return view, nil
}
