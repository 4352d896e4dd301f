package onboarding_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"heavygym/internal/domain/onboarding"
)

func validDraft() onboarding.Draft {
	return onboarding.Draft{
		FullName:        "Anna Svensson",
		Age:             "28",
		Gender:          "Kvinna",
		Height:          "170",
		Weight:          "65",
		TrainingGoal:    "Bygga muskelmassa",
		ExperienceLevel: "Nybörjare (0-6 månader träning)",
		EquipmentAccess: "Gym",
	}
}

// TestDraft_Set_StripsDigits tests that numeric fields keep only digits.
func TestDraft_Set_StripsDigits(t *testing.T) {
	tests := []struct {
		name  string
		field onboarding.Field
		input string
		want  string
	}{
		{"age with letters", onboarding.FieldAge, "28abc", "28"},
		{"height with unit", onboarding.FieldHeight, "170 cm", "170"},
		{"weight with decimal", onboarding.FieldWeight, "65,5", "655"},
		{"only letters", onboarding.FieldAge, "abc", ""},
		{"unicode digits dropped", onboarding.FieldAge, "٢٨", ""},
		{"full name untouched", onboarding.FieldFullName, "Anna 2", "Anna 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d onboarding.Draft
			if err := d.Set(tt.field, tt.input); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if got := d.Get(tt.field); got != tt.want {
				t.Errorf("Get(%s) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestDraft_Set_UnknownField(t *testing.T) {
	var d onboarding.Draft
	if err := d.Set("shoeSize", "44"); !errors.Is(err, onboarding.ErrUnknownField) {
		t.Errorf("Set() error = %v, want ErrUnknownField", err)
	}
	if !d.IsEmpty() {
		t.Error("unknown field should not change the draft")
	}
}

// TestDraft_Validate tests the single validation pass.
func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(d *onboarding.Draft)
		wantField onboarding.Field
		wantErr   error
	}{
		{name: "valid draft", mutate: func(d *onboarding.Draft) {}},
		{name: "valid with injuries", mutate: func(d *onboarding.Draft) { d.Injuries = "Knä" }},
		{
			name:      "missing full name",
			mutate:    func(d *onboarding.Draft) { d.FullName = "" },
			wantField: onboarding.FieldFullName,
			wantErr:   onboarding.ErrMissingField,
		},
		{
			name:      "blank full name",
			mutate:    func(d *onboarding.Draft) { d.FullName = "   " },
			wantField: onboarding.FieldFullName,
			wantErr:   onboarding.ErrMissingField,
		},
		{
			name:      "first missing field wins",
			mutate:    func(d *onboarding.Draft) { d.Weight = ""; d.Age = "" },
			wantField: onboarding.FieldAge,
			wantErr:   onboarding.ErrMissingField,
		},
		{
			name:      "missing equipment",
			mutate:    func(d *onboarding.Draft) { d.EquipmentAccess = "" },
			wantField: onboarding.FieldEquipmentAccess,
			wantErr:   onboarding.ErrMissingField,
		},
		{
			name:   "full name at limit in runes",
			mutate: func(d *onboarding.Draft) { d.FullName = strings.Repeat("å", 200) },
		},
		{
			name:      "full name over limit in runes",
			mutate:    func(d *onboarding.Draft) { d.FullName = strings.Repeat("ö", 201) },
			wantField: onboarding.FieldFullName,
			wantErr:   onboarding.ErrInvalidField,
		},
		{
			name:   "injuries at limit in runes",
			mutate: func(d *onboarding.Draft) { d.Injuries = strings.Repeat("ä", 1000) },
		},
		{
			name:      "injuries over limit in runes",
			mutate:    func(d *onboarding.Draft) { d.Injuries = strings.Repeat("ä", 1001) },
			wantField: onboarding.FieldInjuries,
			wantErr:   onboarding.ErrInvalidField,
		},
		{
			name:      "zero age",
			mutate:    func(d *onboarding.Draft) { d.Age = "0" },
			wantField: onboarding.FieldAge,
			wantErr:   onboarding.ErrInvalidField,
		},
		{
			name:      "height overflows int",
			mutate:    func(d *onboarding.Draft) { d.Height = "99999999999999999999999" },
			wantField: onboarding.FieldHeight,
			wantErr:   onboarding.ErrInvalidField,
		},
		{
			name:      "unknown gender",
			mutate:    func(d *onboarding.Draft) { d.Gender = "Kvinnа" },
			wantField: onboarding.FieldGender,
			wantErr:   onboarding.ErrInvalidField,
		},
		{
			name:      "unknown goal",
			mutate:    func(d *onboarding.Draft) { d.TrainingGoal = "Springa" },
			wantField: onboarding.FieldTrainingGoal,
			wantErr:   onboarding.ErrInvalidField,
		},
		{
			name:      "unknown experience",
			mutate:    func(d *onboarding.Draft) { d.ExperienceLevel = "Expert" },
			wantField: onboarding.FieldExperienceLevel,
			wantErr:   onboarding.ErrInvalidField,
		},
		{
			name:      "unknown equipment",
			mutate:    func(d *onboarding.Draft) { d.EquipmentAccess = "Home" },
			wantField: onboarding.FieldEquipmentAccess,
			wantErr:   onboarding.ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			var fe *onboarding.FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("Validate() error %T is not *FieldError", err)
			}
			if fe.Field != tt.wantField {
				t.Errorf("FieldError.Field = %s, want %s", fe.Field, tt.wantField)
			}
		})
	}
}

// TestDraft_Validate_EveryRequiredField checks each required field alone.
func TestDraft_Validate_EveryRequiredField(t *testing.T) {
	for _, f := range onboarding.RequiredFields {
		t.Run(string(f), func(t *testing.T) {
			d := validDraft()
			if err := d.Set(f, ""); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := d.Validate(); !errors.Is(err, onboarding.ErrMissingField) {
				t.Errorf("Validate() error = %v, want ErrMissingField", err)
			}
		})
	}
}

func TestDraft_ToProfile(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	d := validDraft()
	d.Injuries = "  "

	p, err := d.ToProfile("tp-1", "user-1", now)
	if err != nil {
		t.Fatalf("ToProfile() error = %v", err)
	}
	if p.Age != 28 || p.HeightCm != 170 || p.WeightKg != 65 {
		t.Errorf("numbers = %d/%d/%d, want 28/170/65", p.Age, p.HeightCm, p.WeightKg)
	}
	if p.Injuries != nil {
		t.Errorf("Injuries = %q, want nil", *p.Injuries)
	}
	if p.UserID != "user-1" || p.ID != "tp-1" || !p.CreatedAt.Equal(now) {
		t.Errorf("identity fields not copied: %+v", p)
	}
}

func TestDraft_ToProfile_KeepsInjuries(t *testing.T) {
	d := validDraft()
	d.Injuries = " Ont i axeln "
	p, err := d.ToProfile("tp-1", "user-1", time.Now())
	if err != nil {
		t.Fatalf("ToProfile() error = %v", err)
	}
	if p.InjuriesText() != "Ont i axeln" {
		t.Errorf("InjuriesText() = %q", p.InjuriesText())
	}
}

func TestDraft_ToProfile_NoUser(t *testing.T) {
	if _, err := validDraft().ToProfile("tp-1", "", time.Now()); err != onboarding.ErrNoDraftUserID {
		t.Errorf("ToProfile() error = %v, want ErrNoDraftUserID", err)
	}
}
