package notifications

import (
	"sync"
	"time"
)

// ExpireFunc is called when an auto-dismiss timer fires. token is the value
// passed to Schedule, so the receiver can ignore timers that belong to a
// notification which has since been replaced under the same ID.
type ExpireFunc func(id string, token uint64)

// Scheduler owns one cancellable auto-dismiss timer per notification ID.
// It is safe for concurrent use.
type Scheduler struct {
	clock  Clock
	expire ExpireFunc
	mu     sync.Mutex
	timers map[string]scheduledTimer
}

type scheduledTimer struct {
	token uint64
	timer Timer
}

// NewScheduler creates a scheduler that reports expiries to expire.
func NewScheduler(clock Clock, expire ExpireFunc) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		clock:  clock,
		expire: expire,
		timers: make(map[string]scheduledTimer),
	}
}

// Schedule starts a timer for id, replacing any timer already pending for it.
func (s *Scheduler) Schedule(id string, token uint64, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.timers[id]; ok {
		prev.timer.Stop()
	}

	// Start the timer under the lock so a manual clock cannot observe the
	// entry before it is recorded. Manual clocks fire outside this call.
	s.timers[id] = scheduledTimer{
		token: token,
		timer: s.clock.AfterFunc(delay, func() { s.fire(id, token) }),
	}
}

// Cancel stops the pending timer for id. It reports whether one was pending.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.timers[id]
	if !ok {
		return false
	}
	st.timer.Stop()
	delete(s.timers, id)
	return true
}

// CancelAll stops every pending timer and returns how many there were.
func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.timers)
	for id, st := range s.timers {
		st.timer.Stop()
		delete(s.timers, id)
	}
	return n
}

// Pending returns the number of timers that have neither fired nor been cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Scheduled reports whether a timer is pending for id.
func (s *Scheduler) Scheduled(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[id]
	return ok
}

func (s *Scheduler) fire(id string, token uint64) {
	s.mu.Lock()
	st, ok := s.timers[id]
	if !ok || st.token != token {
		// Cancelled or rescheduled after the runtime timer already fired.
		s.mu.Unlock()
		return
	}
	delete(s.timers, id)
	s.mu.Unlock()

	if s.expire != nil {
		s.expire(id, token)
	}
}
