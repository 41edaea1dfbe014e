package clock

import "time"

// FakeClock is a manually driven Clock for tests. Billing decisions
// compare instants against the stored watermark, so tests advance or
// pin time explicitly instead of sleeping.
type FakeClock struct {
	now time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward (or backward, with a negative d).
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set pins the clock to an absolute instant.
func (c *FakeClock) Set(t time.Time) {
	c.now = t.UTC()
}
