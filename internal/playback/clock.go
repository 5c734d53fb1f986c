package playback

import (
	"context"
	"time"
)

// Clock drives the engine's one-second tick from a time.Ticker, for
// front ends without their own event loop.
type Clock struct {
	engine   *Engine
	interval time.Duration
	hooks    []func(elapsed time.Duration)
}

// NewClock creates a clock firing every interval (one second when zero).
// Hooks run on every firing with the elapsed interval, before the engine
// tick; the virtual output's Advance is the usual hook.
func NewClock(e *Engine, interval time.Duration, hooks ...func(elapsed time.Duration)) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	return &Clock{engine: e, interval: interval, hooks: hooks}
}

// Run ticks until ctx is cancelled. Engine.Tick is called once per whole
// second of accumulated interval.
func (c *Clock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	var acc time.Duration
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, hook := range c.hooks {
				hook(c.interval)
			}
			acc += c.interval
			for acc >= time.Second {
				acc -= time.Second
				c.engine.Tick()
			}
		}
	}
}
