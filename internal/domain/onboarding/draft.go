package onboarding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"heavygym/internal/domain/trainingprofile"
)

// Field names a questionnaire input.
type Field string

// Field constants
const (
	FieldFullName        Field = "fullName"
	FieldAge             Field = "age"
	FieldGender          Field = "gender"
	FieldHeight          Field = "height"
	FieldWeight          Field = "weight"
	FieldTrainingGoal    Field = "trainingGoal"
	FieldExperienceLevel Field = "experienceLevel"
	FieldEquipmentAccess Field = "equipmentAccess"
	FieldInjuries        Field = "injuries"
)

// RequiredFields lists the mandatory inputs in form order.
var RequiredFields = []Field{
	FieldFullName,
	FieldAge,
	FieldGender,
	FieldHeight,
	FieldWeight,
	FieldTrainingGoal,
	FieldExperienceLevel,
	FieldEquipmentAccess,
}

// Domain errors
var (
	ErrUnknownField  = errors.New("unknown form field")
	ErrMissingField  = errors.New("required field is empty")
	ErrInvalidField  = errors.New("field value is not accepted")
	ErrNoDraftUserID = errors.New("draft cannot be converted without a user ID")
)

// FieldError reports which field failed validation.
type FieldError struct {
	Field Field
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Draft is the in-progress questionnaire. All values are kept as entered
// text; numeric fields hold digits only.
type Draft struct {
	FullName        string
	Age             string
	Gender          string
	Height          string
	Weight          string
	TrainingGoal    string
	ExperienceLevel string
	EquipmentAccess string
	Injuries        string
}

// Set stores a value for field. Numeric fields drop every non-digit rune.
// PRE: field is a known Field
// POST: the field holds the (possibly stripped) value
func (d *Draft) Set(field Field, value string) error {
	switch field {
	case FieldFullName:
		d.FullName = value
	case FieldAge:
		d.Age = DigitsOnly(value)
	case FieldGender:
		d.Gender = value
	case FieldHeight:
		d.Height = DigitsOnly(value)
	case FieldWeight:
		d.Weight = DigitsOnly(value)
	case FieldTrainingGoal:
		d.TrainingGoal = value
	case FieldExperienceLevel:
		d.ExperienceLevel = value
	case FieldEquipmentAccess:
		d.EquipmentAccess = value
	case FieldInjuries:
		d.Injuries = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
	return nil
}

// Get returns the current value of field, or "" for unknown fields.
func (d Draft) Get(field Field) string {
	switch field {
	case FieldFullName:
		return d.FullName
	case FieldAge:
		return d.Age
	case FieldGender:
		return d.Gender
	case FieldHeight:
		return d.Height
	case FieldWeight:
		return d.Weight
	case FieldTrainingGoal:
		return d.TrainingGoal
	case FieldExperienceLevel:
		return d.ExperienceLevel
	case FieldEquipmentAccess:
		return d.EquipmentAccess
	case FieldInjuries:
		return d.Injuries
	}
	return ""
}

// IsEmpty returns true if nothing has been entered yet.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// Validate runs one pass over the required fields, then checks formats.
// PRE: none
// POST: Returns nil if the draft can be persisted; otherwise a *FieldError
// wrapping ErrMissingField for the first empty field, or ErrInvalidField.
func (d Draft) Validate() error {
	for _, f := range RequiredFields {
		if strings.TrimSpace(d.Get(f)) == "" {
			return &FieldError{Field: f, Err: ErrMissingField}
		}
	}
	for _, f := range []Field{FieldAge, FieldHeight, FieldWeight} {
		if _, err := parsePositive(d.Get(f)); err != nil {
			return &FieldError{Field: f, Err: ErrInvalidField}
		}
	}
	if !trainingprofile.Gender(d.Gender).Valid() {
		return &FieldError{Field: FieldGender, Err: ErrInvalidField}
	}
	if !trainingprofile.Goal(d.TrainingGoal).Valid() {
		return &FieldError{Field: FieldTrainingGoal, Err: ErrInvalidField}
	}
	if !trainingprofile.Experience(d.ExperienceLevel).Valid() {
		return &FieldError{Field: FieldExperienceLevel, Err: ErrInvalidField}
	}
	if !trainingprofile.Equipment(d.EquipmentAccess).Valid() {
		return &FieldError{Field: FieldEquipmentAccess, Err: ErrInvalidField}
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.FullName)) > trainingprofile.MaxFullNameLength {
		return &FieldError{Field: FieldFullName, Err: ErrInvalidField}
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.Injuries)) > trainingprofile.MaxInjuriesLength {
		return &FieldError{Field: FieldInjuries, Err: ErrInvalidField}
	}
	return nil
}

// ToProfile converts a validated draft into the record to persist.
// PRE: Validate returned nil; userID is non-empty
// POST: Returns a profile with parsed numbers and nil Injuries when blank
func (d Draft) ToProfile(id, userID string, now time.Time) (trainingprofile.TrainingProfile, error) {
	if userID == "" {
		return trainingprofile.TrainingProfile{}, ErrNoDraftUserID
	}
	if err := d.Validate(); err != nil {
		return trainingprofile.TrainingProfile{}, err
	}
	age, _ := parsePositive(d.Age)
	height, _ := parsePositive(d.Height)
	weight, _ := parsePositive(d.Weight)

	p := trainingprofile.TrainingProfile{
		ID:              id,
		UserID:          userID,
		FullName:        strings.TrimSpace(d.FullName),
		Age:             age,
		Gender:          trainingprofile.Gender(d.Gender),
		HeightCm:        height,
		WeightKg:        weight,
		TrainingGoal:    trainingprofile.Goal(d.TrainingGoal),
		ExperienceLevel: trainingprofile.Experience(d.ExperienceLevel),
		EquipmentAccess: trainingprofile.Equipment(d.EquipmentAccess),
		Injuries:        trainingprofile.NormalizeInjuries(d.Injuries),
		CreatedAt:       now,
	}
	return p, p.Validate()
}

// DigitsOnly removes every rune that is not an ASCII digit.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, ErrInvalidField
	}
	return n, nil
}
