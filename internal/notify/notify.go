// Package notify delivers configuration snapshots to subscribers after the
// overlay re-applies its configuration.
//
// Subscriptions are scoped: whoever subscribes holds the returned
// Subscription and must call Unsubscribe when its view goes away.
package notify

import (
	"sort"
	"sync"

	"github.com/siegfried/desktopclock/internal/config"
)

// Observer receives a snapshot. Each observer gets its own copy.
type Observer func(cfg *config.Config)

// Subscription represents an active observer subscription
type Subscription struct {
	id       uint64
	notifier *Notifier
	once     sync.Once
}

// Unsubscribe removes this subscription. Calling it again is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.notifier == nil {
		return
	}
	s.once.Do(func() {
		s.notifier.unsubscribe(s.id)
	})
}

// Notifier manages configuration change subscriptions
type Notifier struct {
	mu        sync.RWMutex
	observers map[uint64]Observer
	nextID    uint64
}

// New creates a new Notifier
func New() *Notifier {
	return &Notifier{
		observers: make(map[uint64]Observer),
	}
}

// Subscribe registers an observer for every change
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify delivers cfg to all observers in subscription order. Observers are
// called outside the lock so they may unsubscribe themselves.
func (n *Notifier) Notify(cfg *config.Config) {
	n.mu.RLock()
	ids := make([]uint64, 0, len(n.observers))
	for id := range n.observers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	observers := make([]Observer, 0, len(ids))
	for _, id := range ids {
		observers = append(observers, n.observers[id])
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(cfg.Clone())
	}
}

// Len returns the number of active subscriptions
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}
