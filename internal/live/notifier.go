// Package live turns one-shot loads into sequences that re-emit whenever a
// table they depend on changes.
//
// Writers call Notifier.Notify after a successful commit. Each subscription
// holds at most one pending signal, so a burst of writes collapses into a
// single reload and the reader always sees the latest state.
package live

import "sync"

// Table names a change domain. Store tables and in-memory service state
// share the same namespace.
type Table string

const (
	TableUsers    Table = "users"
	TableMoments  Table = "moments"
	TableComments Table = "comments"
	TableEvents   Table = "events"
	TableChat     Table = "chat"
)

type subscription struct {
	ch chan struct{}
}

type Notifier struct {
	mu   sync.RWMutex
	subs map[Table]map[*subscription]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[Table]map[*subscription]struct{})}
}

// Subscribe returns a channel signalled after any change to one of tables
// and a func that removes the subscription.
func (n *Notifier) Subscribe(tables ...Table) (<-chan struct{}, func()) {
	s := &subscription{ch: make(chan struct{}, 1)}

	n.mu.Lock()
	for _, t := range tables {
		if n.subs[t] == nil {
			n.subs[t] = make(map[*subscription]struct{})
		}
		n.subs[t][s] = struct{}{}
	}
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			for _, t := range tables {
				delete(n.subs[t], s)
				if len(n.subs[t]) == 0 {
					delete(n.subs, t)
				}
			}
			n.mu.Unlock()
		})
	}
	return s.ch, cancel
}

// Notify signals every subscriber of tables without blocking.
func (n *Notifier) Notify(tables ...Table) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, t := range tables {
		for s := range n.subs[t] {
			select {
			case s.ch <- struct{}{}:
			default:
			}
		}
	}
}

// Subscribers reports how many subscriptions currently watch t.
func (n *Notifier) Subscribers(t Table) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs[t])
}
