package terminal

import (
	"context"

	"heavygym/internal/application/apperr"
	"heavygym/internal/application/projections"
)

const (
	tabTraining  = "Träning"
	tabExercises = "Övningar"
	tabDiet      = "Kost"
	tabProfile   = "Profil"
	optBack      = "Tillbaka"
)

type program struct {
	title, description, tag, level string
	daysPerWeek                    int
}

var programs = []program{
	{"Muscle Building Pro", "Optimerat program för maximal muskeltillväxt", "Bygg Muskelmassa", "Medel-Avancerad", 4},
	{"Power & Styrka", "Fokus på grundövningar och progressiv överbelastning", "Öka Styrka", "Alla nivåer", 3},
	{"Lean Transformation", "Effektiv fettförbränning med bibehållen muskelmassa", "Viktminskning", "Nybörjare-Medel", 5},
}

func (a *App) home(ctx context.Context) error {
	a.p.Println()
	tab, err := a.p.Choose("HEAVY GYM", []string{tabTraining, tabExercises, tabDiet, tabProfile, optQuit}, "")
	if err != nil {
		return err
	}
	switch tab {
	case tabTraining:
		a.p.Println("Välj ditt träningsprogram")
		for _, pr := range programs {
			a.p.Printf("  [%s] %s: %s (%dx / vecka, %s)\n", pr.tag, pr.title, pr.description, pr.daysPerWeek, pr.level)
		}
	case tabExercises:
		a.p.Println("Övningar kommer snart")
	case tabDiet:
		a.p.Println("Kostschema kommer snart")
	case tabProfile:
		return a.profile(ctx)
	default:
		return errQuit
	}
	return nil
}

func (a *App) profile(ctx context.Context) error {
	a.p.Println()
	a.p.Println("Profil")
	s, err := a.deps.Gateway.GetSession(ctx)
	if err != nil || s == nil {
		a.p.Println(apperr.MsgSessionUnverified)
	} else {
		view, err := projections.QueryGetTrainingProfile(ctx,
			projections.GetTrainingProfileInput{UserID: s.UserID, Email: s.Email},
			projections.GetTrainingProfileDeps{Store: a.deps.Store})
		switch {
		case err != nil:
			a.p.Println(apperr.MsgGeneric)
		case !view.Found:
			a.p.Println(view.Email)
		default:
			a.p.Println(view.Email)
			for _, r := range view.Rows {
				a.p.Printf("  %-12s %s\n", r.Label+":", r.Value)
			}
		}
	}

	choice, err := a.p.Choose("", []string{optSignOut, optBack}, "")
	if err != nil {
		return err
	}
	if choice == optSignOut {
		return a.signOut(ctx)
	}
	return nil
}
