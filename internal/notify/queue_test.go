package notify

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// manualClock collects scheduled callbacks so tests decide when they fire.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (c *manualClock) schedule(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs the i-th callback even if it was stopped, as a late timer would.
func (c *manualClock) fire(i int) {
	c.mu.Lock()
	t := c.timers[i]
	c.mu.Unlock()
	t.f()
}

func titles(ns []Notification) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Title)
	}
	return out
}

func TestEnqueueKeepsInsertionOrderAndAssignsIDs(t *testing.T) {
	clock := &manualClock{}
	q := NewQueue(WithScheduler(clock.schedule))
	defer q.Close()

	a := q.Enqueue(Info("a", ""))
	b := q.Enqueue(Warning("b", ""))
	c := q.Enqueue(Success("c", ""))

	assert.Equal(t, []uint64{1, 2, 3}, []uint64{a, b, c})
	assert.Equal(t, []string{"a", "b", "c"}, titles(q.Visible()))
	assert.Equal(t, 3, q.Pending())
}

func TestDefaults(t *testing.T) {
	clock := &manualClock{}
	q := NewQueue(WithScheduler(clock.schedule))
	defer q.Close()

	q.Enqueue(Success("ok", "done"))
	q.Enqueue(Error("boom", "payment failed"))

	visible := q.Visible()
	require.Len(t, visible, 2)
	assert.True(t, visible[0].AutoClose)
	assert.Equal(t, DefaultDuration, visible[0].Duration)
	assert.False(t, visible[1].AutoClose)
	assert.False(t, visible[0].CreatedAt.IsZero())

	// errors never schedule a timer
	require.Len(t, clock.timers, 1)
	assert.Equal(t, DefaultDuration, clock.timers[0].d)
}

func TestWithDurationAppliesToUnsetDurations(t *testing.T) {
	clock := &manualClock{}
	q := NewQueue(WithScheduler(clock.schedule), WithDuration(time.Second))
	defer q.Close()

	q.Enqueue(Notification{Kind: KindInfo, Title: "raw", AutoClose: true})
	custom := Info("custom", "")
	custom.Duration = 3 * time.Second
	q.Enqueue(custom)

	require.Len(t, clock.timers, 2)
	assert.Equal(t, time.Second, clock.timers[0].d)
	assert.Equal(t, 3*time.Second, clock.timers[1].d)
}

func TestAutoDismiss(t *testing.T) {
	clock := &manualClock{}
	q := NewQueue(WithScheduler(clock.schedule))
	defer q.Close()

	q.Enqueue(Info("first", ""))
	q.Enqueue(Info("second", ""))

	clock.fire(0)
	assert.Equal(t, []string{"second"}, titles(q.Visible()))
	assert.Equal(t, 1, q.Pending())
}

func TestSchedulerMayFireInline(t *testing.T) {
	var stopped []*manualTimer
	inline := func(d time.Duration, f func()) Timer {
		f()
		timer := &manualTimer{d: d, f: f}
		stopped = append(stopped, timer)
		return timer
	}
	q := NewQueue(WithScheduler(inline))
	defer q.Close()

	done := make(chan uint64)
	go func() { done <- q.Enqueue(Info("instant", "")) }()

	select {
	case id := <-done:
		assert.Equal(t, uint64(1), id)
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on an inline scheduler")
	}
	assert.Empty(t, q.Visible())
	assert.Zero(t, q.Pending())
	require.Len(t, stopped, 1)
	assert.True(t, stopped[0].stopped)
}

func TestDismissCancelsTimer(t *testing.T) {
	clock := &manualClock{}
	q := NewQueue(WithScheduler(clock.schedule))
	defer q.Close()

	first := q.Enqueue(Info("first", ""))
	q.Enqueue(Info("second", ""))

	q.Dismiss(first)
	assert.True(t, clock.timers[0].stopped)
	assert.False(t, clock.timers[1].stopped)
	assert.Equal(t, []string{"second"}, titles(q.Visible()))

	// a late callback for a dismissed notification is a no-op
	clock.fire(0)
	assert.Equal(t, []string{"second"}, titles(q.Visible()))
}

func TestDismissIsIdempotent(t *testing.T) {
	clock := &manualClock{}
	q := NewQueue(WithScheduler(clock.schedule))
	defer q.Close()

	id := q.Enqueue(Error("sticky", ""))
	q.Dismiss(id)
	q.Dismiss(id)
	q.Dismiss(999)
	assert.Empty(t, q.Visible())
}

func TestCloseStopsEverything(t *testing.T) {
	clock := &manualClock{}
	q := NewQueue(WithScheduler(clock.schedule))

	q.Enqueue(Info("a", ""))
	q.Enqueue(Info("b", ""))
	q.Close()

	for _, tm := range clock.timers {
		assert.True(t, tm.stopped)
	}
	assert.Empty(t, q.Visible())
	assert.Equal(t, 0, q.Pending())
	assert.Equal(t, uint64(0), q.Enqueue(Info("late", "")))
	assert.Empty(t, q.Visible())
}

func TestClear(t *testing.T) {
	clock := &manualClock{}
	q := NewQueue(WithScheduler(clock.schedule))
	defer q.Close()

	q.Enqueue(Info("a", ""))
	q.Clear()
	assert.Empty(t, q.Visible())
	assert.True(t, clock.timers[0].stopped)

	// still open after Clear
	assert.NotZero(t, q.Enqueue(Info("b", "")))
}

func TestObserverSeesEnqueued(t *testing.T) {
	var seen []Kind
	q := NewQueue(
		WithScheduler((&manualClock{}).schedule),
		WithObserver(func(n Notification) { seen = append(seen, n.Kind) }),
	)
	defer q.Close()

	q.Enqueue(Success("a", ""))
	q.Enqueue(Error("b", ""))
	assert.Equal(t, []Kind{KindSuccess, KindError}, seen)
}

func TestRealTimersExpire(t *testing.T) {
	q := NewQueue(WithDuration(10 * time.Millisecond))
	defer q.Close()

	q.Enqueue(Info("short", ""))
	q.Enqueue(Error("sticky", ""))

	assert.Eventually(t, func() bool {
		return len(q.Visible()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"sticky"}, titles(q.Visible()))
}

func TestRealTimerCancelledOnDismiss(t *testing.T) {
	q := NewQueue(WithDuration(20 * time.Millisecond))
	defer q.Close()

	id := q.Enqueue(Info("gone", ""))
	keep := Info("kept", "")
	keep.Duration = time.Hour
	q.Enqueue(keep)

	q.Dismiss(id)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, []string{"kept"}, titles(q.Visible()))
}

func TestProducers(t *testing.T) {
	n := CartAdded("Ceramic Mug", "9")
	assert.Equal(t, "Added to Cart", n.Title)
	assert.Equal(t, "Ceramic Mug has been added to your cart.", n.Message)
	require.NotNil(t, n.Action)
	assert.Equal(t, ActionViewCart, n.Action.Kind)

	n = AppointmentBooked("Gel Nail Art", "2024-01-16", "1")
	assert.Equal(t, "Your Gel Nail Art appointment for 2024-01-16 has been confirmed.", n.Message)
	assert.Equal(t, ActionViewAppointment, n.Action.Kind)

	n = OrderConfirmed("ORD-123456")
	assert.Equal(t, "Your order #ORD-123456 has been confirmed and is being processed.", n.Message)
	assert.Equal(t, "ORD-123456", n.Action.Payload)
}

func TestMarshalJSONUsesMilliseconds(t *testing.T) {
	n := Success("ok", "fine")
	raw, err := json.Marshal(n)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, float64(5000), decoded["durationMs"])
	assert.Equal(t, "success", decoded["kind"])
	assert.Equal(t, true, decoded["autoClose"])
}
