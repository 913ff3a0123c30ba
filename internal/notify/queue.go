// Package notify holds the per-visitor notification queue. Notifications are
// shown in the order they were enqueued and disappear either when the visitor
// dismisses them or when their auto-close timer fires.
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Timer is the part of *time.Timer the queue needs.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. The default is time.AfterFunc.
type Scheduler func(d time.Duration, f func()) Timer

func afterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Option func(*Queue)

func WithScheduler(s Scheduler) Option {
	return func(q *Queue) { q.schedule = s }
}

// WithDuration overrides the duration applied to notifications that have none.
func WithDuration(d time.Duration) Option {
	return func(q *Queue) { q.duration = d }
}

// WithObserver registers fn to be called, outside the lock, for every
// notification that is enqueued.
func WithObserver(fn func(Notification)) Option {
	return func(q *Queue) { q.observe = fn }
}

// Queue is safe for concurrent use; timers fire on their own goroutines.
type Queue struct {
	mu       sync.Mutex
	nextID   uint64
	items    []Notification
	timers   map[uint64]Timer
	closed   bool
	schedule Scheduler
	duration time.Duration
	observe  func(Notification)
	now      func() time.Time
}

func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		timers:   make(map[uint64]Timer),
		schedule: afterFunc,
		duration: DefaultDuration,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue makes n visible and returns its id. A closed queue drops n and returns 0.
func (q *Queue) Enqueue(n Notification) uint64 {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		slog.Debug("Dropping notification on closed queue", "title", n.Title)
		return 0
	}
	q.nextID++
	n.ID = q.nextID
	if n.Duration <= 0 {
		n.Duration = q.duration
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = q.now()
	}
	q.items = append(q.items, n)
	schedule, observe := q.schedule, q.observe
	q.mu.Unlock()

	// The timer is armed outside the lock so a scheduler may run f inline.
	if n.AutoClose {
		id := n.ID
		t := schedule(n.Duration, func() { q.expire(id) })
		q.mu.Lock()
		if q.closed || !q.has(id) {
			t.Stop()
		} else {
			q.timers[id] = t
		}
		q.mu.Unlock()
	}

	if observe != nil {
		observe(n)
	}
	return n.ID
}

// Dismiss removes the notification and cancels its timer. Unknown or
// already dismissed ids are ignored.
func (q *Queue) Dismiss(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.remove(id)
}

func (q *Queue) expire(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.remove(id) {
		slog.Debug("Notification auto-dismissed", "id", id)
	}
}

// has must be called with mu held.
func (q *Queue) has(id uint64) bool {
	for _, n := range q.items {
		if n.ID == id {
			return true
		}
	}
	return false
}

// remove must be called with mu held.
func (q *Queue) remove(id uint64) bool {
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Visible returns the current notifications in display order.
func (q *Queue) Visible() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Pending is the number of auto-close timers still armed.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}

// Clear dismisses everything.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopTimers()
	q.items = nil
}

// Close cancels every pending timer and stops accepting notifications.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.stopTimers()
	q.items = nil
}

func (q *Queue) stopTimers() {
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
}
