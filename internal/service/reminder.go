package service

import (
	"sync"
	"time"
)

// ReminderScheduler fires a callback at a fixed interval, typically to
// push water reminders. The handle is owned by whoever starts it: there
// is no package-level timer state, and Stop is safe to call more than
// once or before Start.
type ReminderScheduler struct {
	interval time.Duration
	notify   func()

	mu     sync.Mutex
	ticker *time.Ticker
	done   chan struct{}
}

// NewReminderScheduler builds a stopped scheduler. notify runs on the
// scheduler's own goroutine, so it must not block for long.
func NewReminderScheduler(interval time.Duration, notify func()) *ReminderScheduler {
	return &ReminderScheduler{
		interval: interval,
		notify:   notify,
	}
}

// Start begins firing. Starting an already-running scheduler is a no-op.
func (r *ReminderScheduler) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ticker != nil {
		return
	}

	r.ticker = time.NewTicker(r.interval)
	r.done = make(chan struct{})

	go func(ticker *time.Ticker, done chan struct{}) {
		for {
			select {
			case <-ticker.C:
				r.notify()
			case <-done:
				return
			}
		}
	}(r.ticker, r.done)
}

// Stop halts firing and releases the ticker.
func (r *ReminderScheduler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ticker == nil {
		return
	}
	r.ticker.Stop()
	close(r.done)
	r.ticker = nil
	r.done = nil
}

// Running reports whether the scheduler is currently firing.
func (r *ReminderScheduler) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticker != nil
}
