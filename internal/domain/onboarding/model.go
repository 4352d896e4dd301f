package onboarding

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Domain errors
var (
	ErrEmptyUserID       = errors.New("onboarding status must belong to a user")
	ErrIllegalTransition = errors.New("illegal navigation transition")
	ErrUnknownIntent     = errors.New("unknown navigation intent")
)

// Status is the per-user onboarding completion flag.
// INVARIANT: Completed moves false -> true only
type Status struct {
	UserID    string
	Completed bool
	UpdatedAt time.Time
}

// Validate checks if the Status has valid data.
// PRE: Status struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Status) Validate() error {
	if s.UserID == "" {
		return ErrEmptyUserID
	}
	return nil
}

// MarkCompleted sets the flag. Calling it again is a no-op apart from UpdatedAt.
// PRE: Status exists
// POST: Completed is true
func (s *Status) MarkCompleted(now time.Time) {
	s.Completed = true
	s.UpdatedAt = now
}

// Intent is the navigation the resolver asks the UI to perform.
type Intent string

// Intent constants
const (
	IntentToEntry      Intent = "to_entry"
	IntentToOnboarding Intent = "to_onboarding"
	IntentToApp        Intent = "to_app"
)

// State is the screen group the user is in.
type State string

// State constants
const (
	StateEntry      State = "entry"
	StateOnboarding State = "onboarding"
	StateApp        State = "app"
)

// Target returns the state an intent navigates to.
func (i Intent) Target() (State, error) {
	switch i {
	case IntentToEntry:
		return StateEntry, nil
	case IntentToOnboarding:
		return StateOnboarding, nil
	case IntentToApp:
		return StateApp, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIntent, string(i))
}

// CanTransition reports whether moving from -> to is allowed.
// Only sign-out leaves App, and only sign-out reaches Entry.
func CanTransition(from, to State) bool {
	switch to {
	case StateEntry:
		return true
	case StateOnboarding:
		return from == StateEntry || from == StateOnboarding
	case StateApp:
		return true
	}
	return false
}

// Machine tracks the current state and enforces legal transitions.
type Machine struct {
	mu    sync.Mutex
	state State
}

// NewMachine returns a machine in the Entry state.
func NewMachine() *Machine {
	return &Machine{state: StateEntry}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Apply moves the machine per intent.
// PRE: intent is a known Intent
// POST: state updated on success; unchanged on ErrIllegalTransition
func (m *Machine) Apply(intent Intent) (State, error) {
	to, err := intent.Target()
	if err != nil {
		return m.Current(), err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !CanTransition(m.state, to) {
		return m.state, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, m.state, to)
	}
	m.state = to
	return to, nil
}
