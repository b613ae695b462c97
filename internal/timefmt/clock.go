package timefmt

import (
	"sync"
	"time"
)

// Clock is a shared per-second broadcast ticker. Every mounted comment
// view subscribes to the same clock instead of running its own timer,
// so timer use stays constant no matter how many articles are open.
// The underlying ticker runs only while at least one subscriber exists.
type Clock struct {
	mu       sync.Mutex
	interval time.Duration
	subs     map[int]chan time.Time
	nextID   int
	stop     chan struct{}
}

// NewClock creates a clock ticking at the given interval.
func NewClock(interval time.Duration) *Clock {
	return &Clock{
		interval: interval,
		subs:     make(map[int]chan time.Time),
	}
}

// Subscribe registers a listener and returns its tick channel plus an
// unsubscribe function. The first subscriber starts the ticker; the
// last one leaving stops it.
func (c *Clock) Subscribe() (<-chan time.Time, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	ch := make(chan time.Time, 1)
	c.subs[id] = ch

	if len(c.subs) == 1 {
		c.stop = make(chan struct{})
		go c.run(c.stop)
	}

	return ch, func() { c.unsubscribe(id) }
}

func (c *Clock) unsubscribe(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.subs[id]; !ok {
		return
	}
	delete(c.subs, id)
	if len(c.subs) == 0 && c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

// run broadcasts ticks until stopped. Slow subscribers skip ticks
// rather than block the broadcast.
func (c *Clock) run(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			c.mu.Lock()
			for _, ch := range c.subs {
				select {
				case ch <- now:
				default:
				}
			}
			c.mu.Unlock()
		case <-stop:
			return
		}
	}
}
