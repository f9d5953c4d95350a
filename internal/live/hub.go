// Package live implements the push side of the store: subscriptions that
// re-deliver full-replace snapshots whenever a committed write touches a
// collection they watch. Nothing here is incremental; every refresh
// recomputes from current store state, which is what makes delivery order
// across independent subscriptions irrelevant.
package live

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub fans committed-write notifications out to subscriptions. Refreshes run
// synchronously inside Notify, in subscription registration order, while the
// hub lock is held; a refresh function must not call back into the hub.
type Hub struct {
	log *logrus.Logger

	mu     sync.Mutex
	subs   []*Subscription
	nextID int
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{log: log}
}

// Subscription is a live registration with an explicit dispose handle. After
// Unsubscribe returns, the refresh function is never invoked again.
type Subscription struct {
	id          int
	hub         *Hub
	collections map[string]bool
	refresh     func(ctx context.Context) error
}

// Subscribe registers refresh to run whenever one of the named collections
// changes. It does not run an initial refresh; callers that need current
// state immediately call Refresh themselves.
func (h *Hub) Subscribe(collections []string, refresh func(ctx context.Context) error) *Subscription {
	sub := &Subscription{
		hub:         h,
		collections: make(map[string]bool, len(collections)),
		refresh:     refresh,
	}
	for _, collection := range collections {
		sub.collections[collection] = true
	}

	h.mu.Lock()
	sub.id = h.nextID
	h.nextID++
	h.subs = append(h.subs, sub)
	h.mu.Unlock()

	return sub
}

// Notify re-runs every subscription interested in one of the touched
// collections. A refresh error is logged and does not stop delivery to the
// remaining subscriptions; the failing subscriber keeps its last snapshot.
func (h *Hub) Notify(ctx context.Context, collections ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		interested := false
		for _, collection := range collections {
			if sub.collections[collection] {
				interested = true
				break
			}
		}
		if !interested {
			continue
		}

		if err := sub.refresh(ctx); err != nil {
			h.log.WithError(err).WithField("subscription", sub.id).Error("Hub.Notify.refresh")
		}
	}
}

// Unsubscribe removes the subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()

	for i, sub := range s.hub.subs {
		if sub.id == s.id {
			s.hub.subs = append(s.hub.subs[:i], s.hub.subs[i+1:]...)
			return
		}
	}
}

// Refresh runs the subscription's refresh function once, outside of any
// notification. Used for the initial snapshot after subscribing.
func (s *Subscription) Refresh(ctx context.Context) error {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	return s.refresh(ctx)
}
