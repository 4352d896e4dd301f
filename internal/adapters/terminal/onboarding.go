package terminal

import (
	"context"
	"fmt"

	"heavygym/internal/application/apperr"
	"heavygym/internal/domain/onboarding"
	"heavygym/internal/domain/trainingprofile"
)

const (
	optContinue = "Fortsätt"
	optRetry    = "Försök igen"
	optEdit     = "Ändra uppgifter"
	optSignOut  = "Logga ut"
)

type formField struct {
	field   onboarding.Field
	label   string
	options []string // nil for free text
}

var formFields = []formField{
	{field: onboarding.FieldFullName, label: "Fullständigt namn"},
	{field: onboarding.FieldAge, label: "Ålder (år)"},
	{field: onboarding.FieldGender, label: "Kön", options: options(trainingprofile.Genders)},
	{field: onboarding.FieldHeight, label: "Längd (cm)"},
	{field: onboarding.FieldWeight, label: "Vikt (kg)"},
	{field: onboarding.FieldTrainingGoal, label: "Träningsmål", options: options(trainingprofile.Goals)},
	{field: onboarding.FieldExperienceLevel, label: "Träningsvana", options: options(trainingprofile.Experiences)},
	{field: onboarding.FieldEquipmentAccess, label: "Tillgång till utrustning", options: options(trainingprofile.Equipments)},
	{field: onboarding.FieldInjuries, label: "Eventuella skador (valfritt)"},
}

func options[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func (a *App) onboarding(ctx context.Context) error {
	if a.deps.Form.Draft().IsEmpty() {
		a.p.Println()
		a.p.Println("Anpassad träning för maximala resultat")
		a.p.Println("För att ge dig ett program anpassat efter dina mål behöver vi veta lite mer om dig.")
		choice, err := a.p.Choose("", []string{optContinue, optSignOut}, "")
		if err != nil {
			return err
		}
		if choice == optSignOut {
			return a.signOut(ctx)
		}
		if err := a.fillForm(); err != nil {
			return err
		}
	}
	return a.submit(ctx)
}

// fillForm asks for every field. An empty answer keeps the current value.
func (a *App) fillForm() error {
	a.p.Println()
	a.p.Println("Dina träningsuppgifter")
	for _, f := range formFields {
		current := a.deps.Form.Draft().Get(f.field)
		var value string
		var err error
		if f.options != nil {
			value, err = a.p.Choose(f.label, f.options, current)
		} else {
			prompt := f.label
			if current != "" {
				prompt = fmt.Sprintf("%s [%s]", f.label, current)
			}
			value, err = a.p.ReadLine(prompt)
			if value == "" {
				value = current
			}
		}
		if err != nil {
			return err
		}
		if err := a.deps.Form.SetField(f.field, value); err != nil {
			a.p.Println(apperr.Message(err))
		}
	}
	return nil
}

func (a *App) submit(ctx context.Context) error {
	a.p.Println("Sparar...")
	intent, err := a.deps.Form.Submit(ctx)
	if err == nil {
		nav := a.deps.Router.Navigate(intent)
		if nav.Err != nil {
			a.p.Println(apperr.MsgGeneric)
		}
		return nil
	}

	a.p.Println(apperr.Message(err))
	if apperr.Is(err, apperr.KindValidation) {
		return a.fillForm()
	}
	choice, err := a.p.Choose("", []string{optRetry, optEdit, optSignOut}, "")
	if err != nil {
		return err
	}
	switch choice {
	case optEdit:
		return a.fillForm()
	case optSignOut:
		return a.signOut(ctx)
	}
	return nil
}
