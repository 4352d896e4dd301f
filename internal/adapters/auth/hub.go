package auth

import (
	"sync"

	"heavygym/internal/domain/session"
)

// subscriptionBuffer is how many events a slow subscriber may lag behind
// before Publish blocks on it.
const subscriptionBuffer = 16

// Subscription is one listener on a Hub. Close releases it.
type Subscription struct {
	hub    *Hub
	events chan session.Event
	done   chan struct{}
	once   sync.Once
}

// Events returns the ordered event stream. It is never closed; select on
// Done as well.
func (s *Subscription) Events() <-chan session.Event {
	return s.events
}

// Done is closed once the subscription has been closed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close detaches the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.done)
	})
}

// Hub fans auth events out to every subscriber. Delivery is in publish order
// and never dropped: Publish waits for each live subscriber to accept.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a new listener.
// POST: the returned subscription receives every event published after this call
func (h *Hub) Subscribe() *Subscription {
	s := &Subscription{
		hub:    h,
		events: make(chan session.Event, subscriptionBuffer),
		done:   make(chan struct{}),
	}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Publish delivers ev to every subscriber, blocking until each has accepted
// it or been closed.
// PRE: callers serialize Publish calls that must keep their relative order
func (h *Hub) Publish(ev session.Event) {
	h.mu.Lock()
	targets := make([]*Subscription, 0, len(h.subs))
	for s := range h.subs {
		targets = append(targets, s)
	}
	h.mu.Unlock()

	for _, s := range targets {
		select {
		case s.events <- ev:
		case <-s.done:
		}
	}
}

// Len returns the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	delete(h.subs, s)
	h.mu.Unlock()
}
