// README: Social-proof viewer counter: a bounded random walk advanced by a ticker and fanned out to subscribers.
package viewers

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"wardharides/internal/config"
)

type Counter struct {
	mu      sync.Mutex
	current int
	min     int
	max     int
	tick    time.Duration
	coin    func() bool
	subs    map[chan int]struct{}
}

func NewCounter(cfg config.ViewersConfig) *Counter {
	lo, hi := cfg.Min, cfg.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	tick := cfg.Tick
	if tick <= 0 {
		tick = 5 * time.Second
	}
	return &Counter{
		current: clamp(cfg.Start, lo, hi),
		min:     lo,
		max:     hi,
		tick:    tick,
		coin:    func() bool { return rand.Intn(2) == 0 },
		subs:    make(map[chan int]struct{}),
	}
}

func (c *Counter) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Step moves the count one up or down, stays inside [min, max] and notifies subscribers.
func (c *Counter) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	delta := -1
	if c.coin() {
		delta = 1
	}
	c.current = clamp(c.current+delta, c.min, c.max)
	for ch := range c.subs {
		// Subscribers only care about the latest value.
		select {
		case <-ch:
		default:
		}
		ch <- c.current
	}
	return c.current
}

// Subscribe returns a channel that receives every new count and a func that
// unsubscribes and closes it.
func (c *Counter) Subscribe() (<-chan int, func()) {
	ch := make(chan int, 1)
	c.mu.Lock()
	c.subs[ch] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, ch)
			c.mu.Unlock()
			close(ch)
		})
	}
}

func (c *Counter) Run(ctx context.Context) {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Step()
		}
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
