// FILE: lixenwraith/settings/notify.go
package settings

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Wildcard matches any section or any key in Subscribe.
const Wildcard = "*"

// DefaultWatchBuffer is the channel capacity used by Watch when none is given.
const DefaultWatchBuffer = 16

// ChangeEvent describes one successful change of an option value.
type ChangeEvent struct {
	Section Section
	Key     string
	Old     any
	New     any
	Source  Source
}

// Path returns the dotted path of the changed option.
func (e ChangeEvent) Path() string {
	return string(e.Section) + "." + e.Key
}

func (e ChangeEvent) String() string {
	return fmt.Sprintf("%s: %v -> %v (%s)", e.Path(), e.Old, e.New, e.Source)
}

// Observer receives change events.
type Observer func(ChangeEvent)

// Subscription is an active observer registration.
type Subscription struct {
	ID       uuid.UUID
	section  Section
	key      string
	observer Observer
	notifier *Notifier
}

// Unsubscribe removes the subscription. Calling it more than once is safe.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.ID)
	}
}

func (s *Subscription) matches(ev ChangeEvent) bool {
	return (s.section == Wildcard || s.section == ev.Section) &&
		(s.key == Wildcard || s.key == ev.Key)
}

// Notifier delivers change events to subscribers synchronously, in registration order.
type Notifier struct {
	mu   sync.RWMutex
	subs []*Subscription
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers observer for changes of (section, key).
// Either may be Wildcard. Observers must not mutate the store they observe.
func (n *Notifier) Subscribe(section Section, key string, observer Observer) *Subscription {
	sub := &Subscription{
		ID:       uuid.New(),
		section:  section,
		key:      key,
		observer: observer,
		notifier: n,
	}

	n.mu.Lock()
	n.subs = append(n.subs, sub)
	n.mu.Unlock()

	return sub
}

// SubscribeAll registers observer for every change.
func (n *Notifier) SubscribeAll(observer Observer) *Subscription {
	return n.Subscribe(Wildcard, Wildcard, observer)
}

// Notify delivers ev to every matching observer.
func (n *Notifier) Notify(ev ChangeEvent) {
	n.mu.RLock()
	matched := make([]Observer, 0, len(n.subs))
	for _, sub := range n.subs {
		if sub.matches(ev) {
			matched = append(matched, sub.observer)
		}
	}
	n.mu.RUnlock()

	// Call observers outside the lock so they may subscribe or unsubscribe
	for _, obs := range matched {
		obs(ev)
	}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

// Watch returns a channel receiving every change event, and a cancel function
// that unsubscribes and closes the channel. Events are dropped when the channel is full.
func (n *Notifier) Watch(bufferSize int) (<-chan ChangeEvent, func()) {
	if bufferSize <= 0 {
		bufferSize = DefaultWatchBuffer
	}

	var (
		mu     sync.Mutex
		closed bool
	)
	ch := make(chan ChangeEvent, bufferSize)

	sub := n.SubscribeAll(func(ev ChangeEvent) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- ev:
		default:
			// Channel full, skip
		}
	})

	cancel := func() {
		sub.Unsubscribe()
		mu.Lock()
		defer mu.Unlock()
		if !closed {
			closed = true
			close(ch)
		}
	}
	return ch, cancel
}

func (n *Notifier) unsubscribe(id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, sub := range n.subs {
		if sub.ID == id {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			return
		}
	}
}
