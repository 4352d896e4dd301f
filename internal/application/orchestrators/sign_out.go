package orchestrators

import (
	"context"
	"time"

	"heavygym/internal/application/apperr"
)

// SignOuter defines the gateway surface needed by SignOut.
type SignOuter interface {
	SignOut(ctx context.Context) error
}

// SignOutDeps holds dependencies for SignOut.
type SignOutDeps struct {
	Gateway SignOuter
	Timeout time.Duration
}

// ExecuteSignOut ends the session. Routing to Entry follows from SIGNED_OUT.
func ExecuteSignOut(ctx context.Context, deps SignOutDeps) error {
	c, cancel := withDeadline(ctx, deps.Timeout)
	defer cancel()
	if err := deps.Gateway.SignOut(c); err != nil {
		return remoteFailure(apperr.KindAuth, "sign_out", apperr.MsgSignOutFailed, err)
	}
	return nil
}
