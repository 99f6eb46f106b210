// Package clock abstracts the wall-clock source so frames can be rendered for
// any instant, not only the current one.
package clock

import "time"

// Clock is the time source sampled once per frame.
type Clock interface {
	Now() time.Time
}

// Real is a Clock backed by the system clock.
type Real struct{}

// Now returns the current time.
func (Real) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

// Now returns the fixed time.
func (f Fixed) Now() time.Time { return f.T }

// Offset starts at a chosen instant and then advances in real time.
type Offset struct {
	delta time.Duration
	base  Clock
}

// NewOffset returns a clock that reads start right now and ticks forward from there.
func NewOffset(start time.Time, base Clock) *Offset {
	if base == nil {
		base = Real{}
	}
	return &Offset{delta: start.Sub(base.Now()), base: base}
}

// Now returns base time shifted to the chosen start.
func (o *Offset) Now() time.Time { return o.base.Now().Add(o.delta) }

var (
	_ Clock = Real{}
	_ Clock = Fixed{}
	_ Clock = (*Offset)(nil)
)
