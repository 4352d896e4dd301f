package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"heavygym/internal/adapters/notify"
	"heavygym/internal/adapters/storage/profile"
	"heavygym/internal/application/apperr"
	"heavygym/internal/domain/onboarding"
	"heavygym/internal/domain/session"
	"heavygym/internal/domain/trainingprofile"
)

// SessionSource resolves the active session.
type SessionSource interface {
	GetSession(ctx context.Context) (*session.Session, error)
}

// OnboardingStore defines the store interface needed by the onboarding commit.
type OnboardingStore interface {
	CreateTrainingProfile(ctx context.Context, value trainingprofile.TrainingProfile) error
	GetTrainingProfile(ctx context.Context, userID string) (trainingprofile.TrainingProfile, error)
	MarkOnboardingCompleted(ctx context.Context, userID string, now time.Time) error
}

// OnboardingFormDeps holds dependencies for OnboardingForm.
type OnboardingFormDeps struct {
	Sessions   SessionSource
	Store      OnboardingStore
	Notifier   notify.Notifier // optional: nil skips the notification step
	Timeout    time.Duration
	Now        func() time.Time
	GenerateID func() string
}

// OnboardingForm owns one questionnaire draft and drives its commit:
// profile insert, notification, completion flag.
type OnboardingForm struct {
	deps OnboardingFormDeps

	submitting atomic.Bool

	mu    sync.Mutex
	draft onboarding.Draft
	// committedFor is the user whose profile insert already succeeded in this
	// form, so a retry after a later-step failure skips the insert.
	committedFor string
}

// NewOnboardingForm creates an empty form.
// PRE: deps.Sessions and deps.Store are non-nil
func NewOnboardingForm(deps OnboardingFormDeps) *OnboardingForm {
	deps.Now = nowOrDefault(deps.Now)
	if deps.GenerateID == nil {
		deps.GenerateID = uuid.NewString
	}
	return &OnboardingForm{deps: deps}
}

// SetField updates one draft field. Rejected while a submit is running.
func (f *OnboardingForm) SetField(field onboarding.Field, value string) error {
	if f.submitting.Load() {
		return apperr.New(apperr.KindBusy, "set_field", apperr.MsgSubmitInProgress, nil)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Set(field, value)
}

// Draft returns a copy of the current draft.
func (f *OnboardingForm) Draft() onboarding.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Discard drops the draft, as when the user navigates away.
func (f *OnboardingForm) Discard() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = onboarding.Draft{}
	f.committedFor = ""
}

// Submitting reports whether a submit is in flight.
func (f *OnboardingForm) Submitting() bool {
	return f.submitting.Load()
}

// Submit validates and commits the draft.
// PRE: the user is in the onboarding state
// POST: On success the profile exists, the flag is true, the draft is
// discarded and IntentToApp is returned. On failure the draft is intact and
// the returned *apperr.Error names the failed step.
// INVARIANT: nothing is written unless the whole draft validates
func (f *OnboardingForm) Submit(ctx context.Context) (onboarding.Intent, error) {
	if !f.submitting.CompareAndSwap(false, true) {
		return "", apperr.New(apperr.KindBusy, "submit", apperr.MsgSubmitInProgress, nil)
	}
	defer f.submitting.Store(false)

	draft := f.Draft()
	if err := draft.Validate(); err != nil {
		return "", apperr.New(apperr.KindValidation, "validate", apperr.MsgFillRequiredFields, err)
	}

	sessCtx, cancel := withDeadline(ctx, f.deps.Timeout)
	sess, err := f.deps.Sessions.GetSession(sessCtx)
	cancel()
	if err != nil {
		return "", remoteFailure(apperr.KindSession, "get_session", apperr.MsgSessionUnverified, err)
	}
	now := f.deps.Now()
	if sess == nil || sess.Validate(now) != nil {
		return "", apperr.New(apperr.KindSession, "get_session", apperr.MsgNoUser, nil)
	}

	tp, err := draft.ToProfile(f.deps.GenerateID(), sess.UserID, now)
	if err != nil {
		return "", apperr.New(apperr.KindValidation, "validate", apperr.MsgFillRequiredFields, err)
	}

	// From here on the commit is not torn by the caller leaving.
	commitCtx := context.WithoutCancel(ctx)

	inserted := false
	if f.committedUser() != sess.UserID {
		err := f.call(commitCtx, func(c context.Context) error {
			return f.deps.Store.CreateTrainingProfile(c, tp)
		})
		switch {
		case errors.Is(err, profile.ErrAlreadyExists):
			logStep("create_training_profile", sess.UserID, "already_exists")
		case err != nil:
			logStep("create_training_profile", sess.UserID, "failed", "error", err)
			return "", remoteFailure(apperr.KindProfileWrite, "create_training_profile", apperr.MsgProfileWriteFailed, err)
		default:
			logStep("create_training_profile", sess.UserID, "ok")
			inserted = true
		}
		f.setCommittedUser(sess.UserID)
	}
	// The notification describes the stored row, which may predate this draft.
	if !inserted && f.deps.Notifier != nil {
		err := f.call(commitCtx, func(c context.Context) error {
			stored, err := f.deps.Store.GetTrainingProfile(c, sess.UserID)
			if err == nil {
				tp = stored
			}
			return err
		})
		if err != nil {
			logStep("get_training_profile", sess.UserID, "failed", "error", err)
			return "", remoteFailure(apperr.KindProfileWrite, "get_training_profile", apperr.MsgProfileWriteFailed, err)
		}
	}

	if f.deps.Notifier != nil {
		sub := notify.NewSubmission(tp, sess.Email, now)
		if err := f.call(commitCtx, func(c context.Context) error {
			return f.deps.Notifier.Notify(c, sub)
		}); err != nil {
			logStep("notify", sess.UserID, "failed", "error", err)
			return "", remoteFailure(apperr.KindNotification, "notify", notifyMessage(err), err)
		}
		logStep("notify", sess.UserID, "ok")
	}

	if err := f.call(commitCtx, func(c context.Context) error {
		return f.deps.Store.MarkOnboardingCompleted(c, sess.UserID, f.deps.Now())
	}); err != nil {
		logStep("mark_onboarding_completed", sess.UserID, "failed", "error", err)
		return "", remoteFailure(apperr.KindStatusWrite, "mark_onboarding_completed", apperr.MsgStatusWriteFailed, err)
	}
	logStep("mark_onboarding_completed", sess.UserID, "ok")

	f.Discard()
	return onboarding.IntentToApp, nil
}

// call runs one remote step under its own deadline.
func (f *OnboardingForm) call(ctx context.Context, fn func(context.Context) error) error {
	c, cancel := withDeadline(ctx, f.deps.Timeout)
	defer cancel()
	return fn(c)
}

func (f *OnboardingForm) committedUser() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.committedFor
}

func (f *OnboardingForm) setCommittedUser(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committedFor = userID
}

func logStep(step, userID, result string, args ...any) {
	attrs := append([]any{"step", step, "user_id", userID, "result", result}, args...)
	if result == "failed" {
		slog.Warn("onboarding_commit_step", attrs...)
		return
	}
	slog.Info("onboarding_commit_step", attrs...)
}

// notifyMessage names the channel that failed.
func notifyMessage(err error) string {
	if errors.Is(err, notify.ErrEmailDeliveryFailed) {
		return apperr.MsgCoachEmailFailed
	}
	return apperr.MsgNotificationFailed
}
