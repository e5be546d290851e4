// ABOUTME: Local reminder scheduler with daily recurring times.
// ABOUTME: Owned timers with explicit, idempotent cancellation.

package remind

import (
	"sync"
	"time"
)

// Scheduler fires a notify callback at fixed local times each day. It
// owns its timers: nothing reschedules behind the caller's back, and
// each reminder stays live until explicitly cancelled or the scheduler
// stops.
type Scheduler struct {
	notify func(message string)

	mu        sync.Mutex
	nextID    int
	reminders map[int]*reminder
	stopped   bool
}

type reminder struct {
	hour    int
	minute  int
	message string
	timer   *time.Timer
}

func NewScheduler(notify func(message string)) *Scheduler {
	return &Scheduler{
		notify:    notify,
		reminders: make(map[int]*reminder),
	}
}

// Add schedules a daily reminder at hour:minute local time and returns
// its cancellation ID.
func (s *Scheduler) Add(hour, minute int, message string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return 0
	}

	s.nextID++
	id := s.nextID
	r := &reminder{hour: hour, minute: minute, message: message}
	s.reminders[id] = r
	s.scheduleLocked(id, r)
	return id
}

// Cancel removes a reminder. Cancelling an unknown or already-cancelled
// ID is a no-op.
func (s *Scheduler) Cancel(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.reminders[id]; ok {
		if r.timer != nil {
			r.timer.Stop()
		}
		delete(s.reminders, id)
	}
}

// Stop cancels every reminder. The scheduler accepts no new reminders
// afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, r := range s.reminders {
		if r.timer != nil {
			r.timer.Stop()
		}
		delete(s.reminders, id)
	}
}

// Pending returns the number of live reminders.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reminders)
}

func (s *Scheduler) scheduleLocked(id int, r *reminder) {
	delay := time.Until(NextAt(time.Now(), r.hour, r.minute))
	r.timer = time.AfterFunc(delay, func() {
		s.fire(id)
	})
}

func (s *Scheduler) fire(id int) {
	s.mu.Lock()
	r, ok := s.reminders[id]
	if !ok || s.stopped {
		s.mu.Unlock()
		return
	}
	message := r.message
	s.scheduleLocked(id, r)
	s.mu.Unlock()

	s.notify(message)
}

// NextAt returns the next occurrence of hour:minute strictly after now.
func NextAt(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
