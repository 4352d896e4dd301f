// Package apperr defines the user-facing error taxonomy of the client.
//
// Every failure that reaches a screen is an *Error carrying a Kind (what went
// wrong), an Op (which step failed) and a Swedish message suitable for display.
// The underlying cause is kept for logging and errors.Is matching.
package apperr

import (
	"errors"
)

// Kind classifies a failure for the UI.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindAuth         Kind = "auth"
	KindSession      Kind = "session"
	KindProfileWrite Kind = "profile_write"
	KindNotification Kind = "notification"
	KindStatusWrite  Kind = "status_write"
	KindTimeout      Kind = "timeout"
	KindBusy         Kind = "busy"
	KindUnknown      Kind = "unknown"
)

// User-visible messages.
const (
	MsgFillAllFields       = "Vänligen fyll i alla fält"
	MsgFillRequiredFields  = "Vänligen fyll i alla obligatoriska fält"
	MsgInvalidCredentials  = "Fel e-post eller lösenord"
	MsgAlreadyRegistered   = "E-postadressen är redan registrerad"
	MsgWeakPassword        = "Lösenordet måste vara minst 6 tecken långt"
	MsgInvalidEmail        = "Ogiltig e-postadress"
	MsgEnterValidEmail     = "Vänligen ange en giltig e-postadress"
	MsgPasswordMismatch    = "Lösenorden matchar inte"
	MsgRegistrationPrefix  = "Registreringsfel: "
	MsgNoUser              = "Ingen användare hittad"
	MsgSessionUnverified   = "Kunde inte verifiera din session"
	MsgProfileWriteFailed  = "Kunde inte spara träningsprofilen"
	MsgNotificationFailed  = "Kunde inte skicka data till webhook"
	MsgCoachEmailFailed    = "Kunde inte skicka e-post till coachen"
	MsgStatusWriteFailed   = "Kunde inte uppdatera onboarding-status"
	MsgTimeout             = "Tidsgränsen överskreds. Försök igen."
	MsgSubmitInProgress    = "Formuläret skickas redan. Vänta."
	MsgSignOutFailed       = "Kunde inte logga ut. Försök igen."
	MsgGeneric             = "Ett fel uppstod. Försök igen."
	MsgUnexpectedTechnical = "Ett tekniskt fel uppstod. Försök igen senare."
)

// Error is a classified failure with a display message.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

// New builds an Error. op may be empty.
func New(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

func (e *Error) Error() string {
	s := string(e.Kind)
	if e.Op != "" {
		s += " (" + e.Op + ")"
	}
	s += ": " + e.Message
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// OpOf returns the Op of the first *Error in err's chain.
func OpOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}

// Message returns the text to show the user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return MsgGeneric
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
