package terminal

import (
	"context"

	"heavygym/internal/application/apperr"
	"heavygym/internal/application/orchestrators"
)

const (
	optLogin    = "Logga in"
	optRegister = "Skapa konto"
	optQuit     = "Avsluta"
)

func (a *App) entry(ctx context.Context) error {
	a.p.Println()
	a.p.Println("HEAVY GYM")
	choice, err := a.p.Choose("Välkommen!", []string{optLogin, optRegister, optQuit}, "")
	if err != nil {
		return err
	}
	switch choice {
	case optLogin:
		return a.login(ctx)
	case optRegister:
		return a.register(ctx)
	}
	return errQuit
}

func (a *App) login(ctx context.Context) error {
	a.p.Println()
	a.p.Println("Logga in och fortsätt din träningsresa.")
	email, err := a.p.ReadLine("E-postadress")
	if err != nil {
		return err
	}
	password, err := a.p.ReadPassword("Lösenord")
	if err != nil {
		return err
	}

	a.drain()
	_, err = orchestrators.ExecuteSignIn(ctx, orchestrators.SignInInput{Email: email, Password: password},
		orchestrators.SignInDeps{Gateway: a.deps.Gateway, Timeout: a.deps.Timeout})
	if err != nil {
		a.p.Println(apperr.Message(err))
		return nil
	}
	a.await(ctx)
	return nil
}

func (a *App) register(ctx context.Context) error {
	a.p.Println()
	a.p.Println("Börja din resa med ett konto och få tillgång till träningsplaner och statistik.")
	var in orchestrators.SignUpInput
	var err error
	if in.FullName, err = a.p.ReadLine("Namn"); err != nil {
		return err
	}
	if in.Email, err = a.p.ReadLine("E-postadress"); err != nil {
		return err
	}
	if in.Password, err = a.p.ReadPassword("Lösenord"); err != nil {
		return err
	}
	if in.ConfirmPassword, err = a.p.ReadPassword("Bekräfta lösenord"); err != nil {
		return err
	}

	a.drain()
	_, err = orchestrators.ExecuteSignUp(ctx, in, orchestrators.SignUpDeps{
		Gateway: a.deps.Gateway,
		Store:   a.deps.Store,
		Timeout: a.deps.Timeout,
	})
	if err != nil {
		a.p.Println(apperr.Message(err))
		return nil
	}
	a.await(ctx)
	return nil
}
