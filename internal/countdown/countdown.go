// Package countdown implements the one-second countdown shown next to the
// current snippet.
//
// Countdown is the bare state machine: Running while time remains, Expired
// once it hits zero. Model wraps it as a Bubble Tea component that ticks
// itself once per second and emits ExpiredMsg exactly once.
package countdown

// Countdown tracks whole seconds remaining.
type Countdown struct {
	duration  int64
	remaining int64
	expired   bool
}

// New returns a running countdown starting at seconds.
func New(seconds int64) Countdown {
	var c Countdown
	c.Reset(seconds)
	return c
}

// Reset reinitializes the countdown to seconds and puts it back into the
// running state.
func (c *Countdown) Reset(seconds int64) {
	if seconds < 0 {
		seconds = 0
	}
	c.duration = seconds
	c.remaining = seconds
	c.expired = false
}

// Tick advances the countdown by one second. It returns true only on the tick
// that moves it into the expired state.
func (c *Countdown) Tick() bool {
	if c.expired {
		return false
	}
	if c.remaining <= 1 {
		c.remaining = 0
		c.expired = true
		return true
	}
	c.remaining--
	return false
}

// Remaining returns the seconds left.
func (c Countdown) Remaining() int64 { return c.remaining }

// Duration returns the value the countdown was last reset to.
func (c Countdown) Duration() int64 { return c.duration }

// Expired reports whether the countdown has finished.
func (c Countdown) Expired() bool { return c.expired }
