// Package schedule runs delayed one-shot tasks keyed by a string. At most
// one task is pending per key; scheduling again replaces it.
package schedule

import (
	"sync"
	"time"
)

type task struct {
	timer *time.Timer
}

type Scheduler struct {
	mu      sync.Mutex
	tasks   map[string]*task
	stopped bool
	wg      sync.WaitGroup
}

func New() *Scheduler {
	return &Scheduler{tasks: make(map[string]*task)}
}

// Schedule runs fn after delay unless the key is cancelled or rescheduled
// first. It is a no-op after Stop.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.cancelLocked(key)

	t := &task{}
	t.timer = time.AfterFunc(delay, func() {
		defer s.wg.Done()

		s.mu.Lock()
		if s.tasks[key] != t {
			// cancelled after the timer had already fired
			s.mu.Unlock()
			return
		}
		delete(s.tasks, key)
		s.mu.Unlock()

		fn()
	})
	s.tasks[key] = t
	s.wg.Add(1)
}

// Cancel drops the pending task for key. It reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(key)
}

func (s *Scheduler) cancelLocked(key string) bool {
	t, ok := s.tasks[key]
	if !ok {
		return false
	}
	delete(s.tasks, key)
	if t.timer.Stop() {
		s.wg.Done()
	}
	return true
}

func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[key]
	return ok
}

// Stop cancels every pending task and waits for running ones to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for key := range s.tasks {
		s.cancelLocked(key)
	}
	s.mu.Unlock()

	s.wg.Wait()
}
