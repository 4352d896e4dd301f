package orchestrators

import (
	"context"
	"sync"
	"time"

	"heavygym/internal/adapters/auth"
	"heavygym/internal/adapters/notify"
	"heavygym/internal/adapters/storage/profile"
	"heavygym/internal/domain/onboarding"
	"heavygym/internal/domain/session"
	"heavygym/internal/domain/trainingprofile"
)

// mockProfileStore is an in-memory profile.Store that counts every call.
type mockProfileStore struct {
	mu       sync.Mutex
	status   map[string]onboarding.Status
	profiles map[string]trainingprofile.TrainingProfile

	getStatusErr  error
	getProfileErr error
	createErr     error
	markErr       error
	// blockCreate, when set, makes CreateTrainingProfile wait for it or ctx.
	blockCreate chan struct{}
	createCtx   context.Context

	calls map[string]int
}

func newMockProfileStore() *mockProfileStore {
	return &mockProfileStore{
		status:   make(map[string]onboarding.Status),
		profiles: make(map[string]trainingprofile.TrainingProfile),
		calls:    make(map[string]int),
	}
}

var _ profile.Store = (*mockProfileStore)(nil)

func (m *mockProfileStore) count(name string) {
	m.mu.Lock()
	m.calls[name]++
	m.mu.Unlock()
}

// totalCalls returns the number of store calls of any kind.
func (m *mockProfileStore) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

func (m *mockProfileStore) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockProfileStore) GetStatus(_ context.Context, userID string) (onboarding.Status, error) {
	m.count("GetStatus")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getStatusErr != nil {
		return onboarding.Status{}, m.getStatusErr
	}
	st, ok := m.status[userID]
	if !ok {
		return onboarding.Status{}, profile.ErrNotFound
	}
	return st, nil
}

func (m *mockProfileStore) EnsureStatus(_ context.Context, userID string, now time.Time) error {
	m.count("EnsureStatus")
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.status[userID]; !ok {
		m.status[userID] = onboarding.Status{UserID: userID, UpdatedAt: now}
	}
	return nil
}

func (m *mockProfileStore) MarkOnboardingCompleted(_ context.Context, userID string, now time.Time) error {
	m.count("MarkOnboardingCompleted")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markErr != nil {
		return m.markErr
	}
	st := m.status[userID]
	st.UserID = userID
	st.MarkCompleted(now)
	m.status[userID] = st
	return nil
}

func (m *mockProfileStore) GetTrainingProfile(_ context.Context, userID string) (trainingprofile.TrainingProfile, error) {
	m.count("GetTrainingProfile")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getProfileErr != nil {
		return trainingprofile.TrainingProfile{}, m.getProfileErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return trainingprofile.TrainingProfile{}, profile.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileStore) CreateTrainingProfile(ctx context.Context, value trainingprofile.TrainingProfile) error {
	m.count("CreateTrainingProfile")
	m.mu.Lock()
	m.createCtx = ctx
	block := m.blockCreate
	m.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.profiles[value.UserID]; ok {
		return profile.ErrAlreadyExists
	}
	m.profiles[value.UserID] = value
	return nil
}

func (m *mockProfileStore) completed(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status[userID].Completed
}

func (m *mockProfileStore) profileCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.profiles)
}

// mockNotifier records deliveries.
type mockNotifier struct {
	mu    sync.Mutex
	sent  []notify.Submission
	errs  []error // consumed one per call; nil entries succeed
	calls int
}

func (m *mockNotifier) Notify(_ context.Context, s notify.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return err
		}
	}
	m.sent = append(m.sent, s)
	return nil
}

// mockGateway is an in-memory credential gateway publishing through a real hub.
type mockGateway struct {
	hub *auth.Hub

	mu          sync.Mutex
	current     *session.Session
	getErr      error
	signInErr   error
	signUpErr   error
	signOutErr  error
	getCalls    int
	signInCalls int
	signUpCalls int
	lastMeta    auth.SignUpMeta
}

func newMockGateway() *mockGateway {
	return &mockGateway{hub: auth.NewHub()}
}

func (g *mockGateway) OnAuthStateChange() *auth.Subscription {
	return g.hub.Subscribe()
}

func (g *mockGateway) GetSession(_ context.Context) (*session.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.getCalls++
	if g.getErr != nil {
		return nil, g.getErr
	}
	if g.current == nil {
		return nil, nil
	}
	s := *g.current
	return &s, nil
}

func (g *mockGateway) SignIn(_ context.Context, email, _ string) (session.Session, error) {
	g.mu.Lock()
	g.signInCalls++
	err := g.signInErr
	g.mu.Unlock()
	if err != nil {
		return session.Session{}, err
	}
	s := session.Session{UserID: "user-" + email, Email: email}
	g.signIn(s)
	return s, nil
}

func (g *mockGateway) SignUp(ctx context.Context, email, password string, meta auth.SignUpMeta) (session.Session, error) {
	g.mu.Lock()
	g.signUpCalls++
	g.lastMeta = meta
	err := g.signUpErr
	g.mu.Unlock()
	if err != nil {
		return session.Session{}, err
	}
	s := session.Session{UserID: "user-" + email, Email: email}
	g.signIn(s)
	return s, nil
}

func (g *mockGateway) SignOut(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.signOutErr != nil {
		return g.signOutErr
	}
	g.current = nil
	g.hub.Publish(session.SignedOut())
	return nil
}

// signIn sets the session and publishes SIGNED_IN.
func (g *mockGateway) signIn(s session.Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = &s
	g.hub.Publish(session.SignedIn(s))
}

func liveSession(userID string) *session.Session {
	return &session.Session{UserID: userID, Email: userID + "@heavygym.se", ExpiresAt: time.Now().Add(time.Hour)}
}

func scenarioADraft() map[onboarding.Field]string {
	return map[onboarding.Field]string{
		onboarding.FieldFullName:        "Anna Svensson",
		onboarding.FieldAge:             "28",
		onboarding.FieldGender:          "Kvinna",
		onboarding.FieldHeight:          "170",
		onboarding.FieldWeight:          "65",
		onboarding.FieldTrainingGoal:    "Bygga muskelmassa",
		onboarding.FieldExperienceLevel: "Nybörjare (0-6 månader träning)",
		onboarding.FieldEquipmentAccess: "Gym",
		onboarding.FieldInjuries:        "",
	}
}
