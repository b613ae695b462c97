// Package debounce schedules moderation re-checks while a user types.
// One controller exists per input channel (the root comment box and each
// open reply box). Every observed edit cancels the previously scheduled
// check and schedules a fresh one; results are delivered only when they
// are still the latest issued for the channel, so a slow in-flight check
// can never overwrite the verdict of a newer snapshot.
package debounce

import (
	"context"
	"sync"
	"time"

	"github.com/news-comment-engine/internal/models"
)

// CheckFunc produces a verdict for a text snapshot.
type CheckFunc func(ctx context.Context, text string) models.Verdict

// ResultFunc receives the verdict for the latest snapshot. It is called
// from the timer goroutine; stale verdicts are dropped before delivery.
type ResultFunc func(verdict models.Verdict)

// Controller debounces moderation checks for a single input channel.
type Controller struct {
	mu       sync.Mutex
	interval time.Duration
	check    CheckFunc
	onResult ResultFunc
	timer    *time.Timer
	seq      uint64
	stopped  bool
}

// New creates a controller firing check after interval of inactivity.
func New(interval time.Duration, check CheckFunc, onResult ResultFunc) *Controller {
	return &Controller{
		interval: interval,
		check:    check,
		onResult: onResult,
	}
}

// Observe records a content change: the pending check (if any) is
// cancelled and a new one is scheduled.
func (c *Controller) Observe(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}

	c.seq++
	seq := c.seq
	c.timer = time.AfterFunc(c.interval, func() {
		c.fire(seq, text)
	})
}

// Stop cancels any pending check and discards every in-flight result.
// The controller is not reusable afterwards.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	// Bump the sequence so a check already past the timer is dropped.
	c.seq++
}

// fire runs the check and delivers the result if it is still the latest.
func (c *Controller) fire(seq uint64, text string) {
	if !c.isLatest(seq) {
		return
	}

	verdict := c.check(context.Background(), text)

	// Re-check: the network round trip may have been overtaken by a
	// newer keystroke.
	if !c.isLatest(seq) {
		return
	}
	c.onResult(verdict)
}

func (c *Controller) isLatest(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.stopped && seq == c.seq
}
