package hw

import "time"

type monotonicClock struct {
	start time.Time
}

// NewClock returns a Clock backed by the host monotonic clock. Readings
// start near zero and wrap after ~49.7 days, like an MCU tick counter.
func NewClock() Clock {
	return &monotonicClock{start: time.Now()}
}

func (c *monotonicClock) Now() Ticks {
	return Ticks(time.Since(c.start).Milliseconds())
}

func (c *monotonicClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// SimClock is a manually advanced Clock for simulation and tests. Sleep
// advances the clock instead of blocking.
type SimClock struct {
	now Ticks
}

func NewSimClock() *SimClock {
	return &SimClock{}
}

func (c *SimClock) Now() Ticks {
	return c.now
}

func (c *SimClock) Sleep(d time.Duration) {
	c.Advance(d)
}

func (c *SimClock) Advance(d time.Duration) {
	c.now += Ticks(d.Milliseconds())
}
