package trainingprofile

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Max length constants for user-editable fields.
const (
	MaxFullNameLength = 200
	MaxInjuriesLength = 1000
)

// Gender is the self-reported gender option.
type Gender string

// Gender constants
const (
	GenderMan    Gender = "Man"
	GenderKvinna Gender = "Kvinna"
	GenderAnnat  Gender = "Annat"
)

// Goal is the member's primary training goal.
type Goal string

// Goal constants
const (
	GoalBuildMuscle   Goal = "Bygga muskelmassa"
	GoalBuildStrength Goal = "Bygga styrka"
	GoalLoseWeight    Goal = "Gå ner i vikt och bevara muskler"
)

// Experience is how long the member has been training.
type Experience string

// Experience constants
const (
	ExperienceBeginner     Experience = "Nybörjare (0-6 månader träning)"
	ExperienceIntermediate Experience = "Medel (6 månader - 2 år träning)"
	ExperienceAdvanced     Experience = "Avancerad (2+ år träning)"
)

// Equipment is where the member trains.
type Equipment string

// Equipment constants
const (
	EquipmentGym  Equipment = "Gym"
	EquipmentHome Equipment = "Hemmaträning"
)

// Option lists in display order.
var (
	Genders     = []Gender{GenderMan, GenderKvinna, GenderAnnat}
	Goals       = []Goal{GoalBuildMuscle, GoalBuildStrength, GoalLoseWeight}
	Experiences = []Experience{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}
	Equipments  = []Equipment{EquipmentGym, EquipmentHome}
)

// Domain errors
var (
	ErrEmptyUserID       = errors.New("training profile must belong to a user")
	ErrEmptyFullName     = errors.New("full name is required")
	ErrFullNameTooLong   = errors.New("full name cannot exceed 200 characters")
	ErrInvalidAge        = errors.New("age must be greater than zero")
	ErrInvalidHeight     = errors.New("height must be greater than zero")
	ErrInvalidWeight     = errors.New("weight must be greater than zero")
	ErrInvalidGender     = errors.New("gender must be one of: Man, Kvinna, Annat")
	ErrInvalidGoal       = errors.New("training goal is not a known option")
	ErrInvalidExperience = errors.New("experience level is not a known option")
	ErrInvalidEquipment  = errors.New("equipment access must be one of: Gym, Hemmaträning")
	ErrInjuriesTooLong   = errors.New("injuries cannot exceed 1000 characters")
)

// TrainingProfile is the questionnaire answer set stored once per user.
type TrainingProfile struct {
	ID              string
	UserID          string
	FullName        string
	Age             int
	Gender          Gender
	HeightCm        int
	WeightKg        int
	TrainingGoal    Goal
	ExperienceLevel Experience
	EquipmentAccess Equipment
	Injuries        *string // nil when the member reported none
	CreatedAt       time.Time
}

// Validate checks if the TrainingProfile has valid data.
// PRE: TrainingProfile struct is populated
// POST: Returns nil if valid, error otherwise
func (p *TrainingProfile) Validate() error {
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(p.FullName) == "" {
		return ErrEmptyFullName
	}
	if utf8.RuneCountInString(p.FullName) > MaxFullNameLength {
		return ErrFullNameTooLong
	}
	if p.Age <= 0 {
		return ErrInvalidAge
	}
	if p.HeightCm <= 0 {
		return ErrInvalidHeight
	}
	if p.WeightKg <= 0 {
		return ErrInvalidWeight
	}
	if !p.Gender.Valid() {
		return ErrInvalidGender
	}
	if !p.TrainingGoal.Valid() {
		return ErrInvalidGoal
	}
	if !p.ExperienceLevel.Valid() {
		return ErrInvalidExperience
	}
	if !p.EquipmentAccess.Valid() {
		return ErrInvalidEquipment
	}
	if p.Injuries != nil && utf8.RuneCountInString(*p.Injuries) > MaxInjuriesLength {
		return ErrInjuriesTooLong
	}
	return nil
}

// InjuriesText returns the injuries note or "" when none was reported.
// INVARIANT: TrainingProfile fields are not mutated
func (p *TrainingProfile) InjuriesText() string {
	if p.Injuries == nil {
		return ""
	}
	return *p.Injuries
}

// Valid reports whether g is a known option.
func (g Gender) Valid() bool {
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}

// Valid reports whether g is a known option.
func (g Goal) Valid() bool {
	for _, v := range Goals {
		if v == g {
			return true
		}
	}
	return false
}

// Valid reports whether e is a known option.
func (e Experience) Valid() bool {
	for _, v := range Experiences {
		if v == e {
			return true
		}
	}
	return false
}

// Valid reports whether e is a known option.
func (e Equipment) Valid() bool {
	for _, v := range Equipments {
		if v == e {
			return true
		}
	}
	return false
}

// NormalizeInjuries maps a blank note to nil.
func NormalizeInjuries(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
