package trainingprofile_test

import (
	"strings"
	"testing"

	"heavygym/internal/domain/trainingprofile"
)

func validProfile() trainingprofile.TrainingProfile {
	return trainingprofile.TrainingProfile{
		ID:              "tp-1",
		UserID:          "u1",
		FullName:        "Erik Holm",
		Age:             34,
		Gender:          trainingprofile.GenderMan,
		HeightCm:        182,
		WeightKg:        84,
		TrainingGoal:    trainingprofile.GoalBuildStrength,
		ExperienceLevel: trainingprofile.ExperienceAdvanced,
		EquipmentAccess: trainingprofile.EquipmentHome,
	}
}

// TestTrainingProfile_Validate tests validation of TrainingProfile.
func TestTrainingProfile_Validate(t *testing.T) {
	long := strings.Repeat("x", trainingprofile.MaxInjuriesLength+1)
	wide := strings.Repeat("å", trainingprofile.MaxInjuriesLength)
	tests := []struct {
		name    string
		mutate  func(p *trainingprofile.TrainingProfile)
		wantErr error
	}{
		{"valid profile", func(p *trainingprofile.TrainingProfile) {}, nil},
		{"no user", func(p *trainingprofile.TrainingProfile) { p.UserID = "" }, trainingprofile.ErrEmptyUserID},
		{"no name", func(p *trainingprofile.TrainingProfile) { p.FullName = " " }, trainingprofile.ErrEmptyFullName},
		{"zero age", func(p *trainingprofile.TrainingProfile) { p.Age = 0 }, trainingprofile.ErrInvalidAge},
		{"negative height", func(p *trainingprofile.TrainingProfile) { p.HeightCm = -1 }, trainingprofile.ErrInvalidHeight},
		{"zero weight", func(p *trainingprofile.TrainingProfile) { p.WeightKg = 0 }, trainingprofile.ErrInvalidWeight},
		{"bad gender", func(p *trainingprofile.TrainingProfile) { p.Gender = "man" }, trainingprofile.ErrInvalidGender},
		{"bad goal", func(p *trainingprofile.TrainingProfile) { p.TrainingGoal = "" }, trainingprofile.ErrInvalidGoal},
		{"bad experience", func(p *trainingprofile.TrainingProfile) { p.ExperienceLevel = "Medel" }, trainingprofile.ErrInvalidExperience},
		{"bad equipment", func(p *trainingprofile.TrainingProfile) { p.EquipmentAccess = "Home" }, trainingprofile.ErrInvalidEquipment},
		{"injuries too long", func(p *trainingprofile.TrainingProfile) { p.Injuries = &long }, trainingprofile.ErrInjuriesTooLong},
		{"name of 200 runes", func(p *trainingprofile.TrainingProfile) { p.FullName = strings.Repeat("Ö", 200) }, nil},
		{"name of 201 runes", func(p *trainingprofile.TrainingProfile) { p.FullName = strings.Repeat("Ö", 201) }, trainingprofile.ErrFullNameTooLong},
		{"injuries of 1000 runes", func(p *trainingprofile.TrainingProfile) { p.Injuries = &wide }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			if err := p.Validate(); err != tt.wantErr {
				t.Errorf("TrainingProfile.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeInjuries(t *testing.T) {
	if got := trainingprofile.NormalizeInjuries(" \t"); got != nil {
		t.Errorf("NormalizeInjuries(blank) = %q, want nil", *got)
	}
	got := trainingprofile.NormalizeInjuries(" Knä ")
	if got == nil || *got != "Knä" {
		t.Errorf("NormalizeInjuries() = %v, want Knä", got)
	}
}
