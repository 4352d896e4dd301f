package notify

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Multi delivers to every notifier concurrently and fails if any fails.
type Multi []Notifier

// Compile-time check that Multi satisfies Notifier.
var _ Notifier = Multi(nil)

// Notify fans out and waits for every target.
// POST: returns the first error; deliveries still in flight see their
// context canceled
func (m Multi) Notify(ctx context.Context, s Submission) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, n := range m {
		g.Go(func() error {
			return n.Notify(gctx, s)
		})
	}
	return g.Wait()
}
