// Package timer implements the rest timer: a one-second-resolution countdown
// with pause/resume/reset/stop, time adjustment, and one-shot notification
// scheduling on expiry. It is the only concurrent piece of the app; all of
// its state is private to the Timer and guarded by a mutex.
package timer

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// PresetDurations are the rest lengths offered by the UI, in seconds.
var PresetDurations = []int{30, 60, 90, 120, 180}

// Notification text for timer expiry.
const (
	notifyTitle = "Rest Timer Complete"
	notifyBody  = "Time to hit the next set!"
)

// Notifier schedules the one-shot "rest over" notification with the OS.
// Schedule replaces any previously scheduled notification; Cancel drops it.
type Notifier interface {
	Schedule(d time.Duration, title, body string) error
	Cancel()
}

// NopNotifier is a Notifier that does nothing, for headless use and tests.
type NopNotifier struct{}

func (NopNotifier) Schedule(time.Duration, string, string) error { return nil }
func (NopNotifier) Cancel()                                      {}

// Timer is a deadline-based countdown. Remaining time is derived from the
// deadline on each tick rather than decremented, so delayed ticks cannot
// drift the clock.
type Timer struct {
	mu       sync.Mutex
	notifier Notifier
	onExpire func()
	now      func() time.Time
	log      *slog.Logger

	initial   time.Duration
	remaining time.Duration
	deadline  time.Time
	running   bool
	stop      chan struct{}
}

// New creates a stopped timer. onExpire may be nil; it is called (off the
// caller's goroutine) when the countdown reaches zero. log may be nil.
func New(notifier Notifier, onExpire func(), log *slog.Logger) *Timer {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Timer{
		notifier: notifier,
		onExpire: onExpire,
		now:      time.Now,
		log:      log,
	}
}

// Start begins a fresh countdown of d, replacing any countdown in progress.
func (t *Timer) Start(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopTickingLocked()
	t.initial = d
	t.remaining = d
	t.deadline = t.now().Add(d)
	t.running = true

	t.notifier.Cancel()
	t.scheduleLocked(d)
	t.startTickingLocked()
}

// Pause halts the countdown, keeping the remaining time.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}
	t.remaining = t.remainingLocked()
	t.running = false
	t.stopTickingLocked()
	t.notifier.Cancel()
}

// Resume continues a paused countdown from where it stopped.
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running || t.remaining <= 0 {
		return
	}
	t.deadline = t.now().Add(t.remaining)
	t.running = true
	t.scheduleLocked(t.remaining)
	t.startTickingLocked()
}

// Reset returns the timer to its initial duration, paused.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopTickingLocked()
	t.remaining = t.initial
	t.running = false
	t.deadline = time.Time{}
	t.notifier.Cancel()
}

// Stop clears the timer completely.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopTickingLocked()
	t.initial = 0
	t.remaining = 0
	t.running = false
	t.deadline = time.Time{}
	t.notifier.Cancel()
}

// Add extends the countdown (and the initial duration, so progress stays
// meaningful). While running, the pending notification is cancelled and
// rescheduled for the new remaining time.
func (t *Timer) Add(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.initial += d
	if t.running {
		t.deadline = t.deadline.Add(d)
		t.notifier.Cancel()
		t.scheduleLocked(t.remainingLocked())
	} else {
		t.remaining += d
	}
}

// Running reports whether the countdown is ticking.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Remaining returns the time left, truncated to whole seconds.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return t.remainingLocked()
	}
	return t.remaining
}

// Progress returns completion from 0.0 to 1.0, or 0 when nothing was started.
func (t *Timer) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initial <= 0 {
		return 0
	}
	rem := t.remaining
	if t.running {
		rem = t.remainingLocked()
	}
	return float64(t.initial-rem) / float64(t.initial)
}

// FormatRemaining renders the countdown as M:SS, e.g. "1:30".
func (t *Timer) FormatRemaining() string {
	secs := int(t.Remaining().Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// scheduleLocked registers the expiry notification. A failure is not fatal
// to the countdown, but it must leave a trace. Caller holds the mutex.
func (t *Timer) scheduleLocked(d time.Duration) {
	if err := t.notifier.Schedule(d, notifyTitle, notifyBody); err != nil {
		t.log.Warn("scheduling rest notification failed", "error", err)
	}
}

// remainingLocked derives the remaining time from the deadline. Caller
// holds the mutex.
func (t *Timer) remainingLocked() time.Duration {
	rem := t.deadline.Sub(t.now()).Truncate(time.Second)
	if rem < 0 {
		return 0
	}
	return rem
}

func (t *Timer) startTickingLocked() {
	stop := make(chan struct{})
	t.stop = stop
	go t.tickLoop(stop)
}

func (t *Timer) stopTickingLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *Timer) tickLoop(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if t.tick() {
				return
			}
		}
	}
}

// tick updates state for one ticker fire and reports whether the countdown
// expired.
func (t *Timer) tick() bool {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return true
	}

	rem := t.remainingLocked()
	t.remaining = rem
	if rem > 0 {
		t.mu.Unlock()
		return false
	}

	// Expired.
	t.running = false
	t.deadline = time.Time{}
	t.stop = nil
	onExpire := t.onExpire
	t.mu.Unlock()

	if onExpire != nil {
		onExpire()
	}
	return true
}
