package clock

import "time"

// Clock is the tick source for the control loop.
//
// Millis is the monotonic scheduling timebase: a wrapping 32-bit millisecond
// counter. All interval arithmetic on it must go through Elapsed so that a
// counter rollover (roughly every 49.7 days) produces correct elapsed values.
//
// Now is the wall clock. It may be unsynchronized at boot; callers that need
// an absolute timestamp must check it against a known-valid epoch before
// trusting it.
type Clock interface {
	Millis() uint32
	Now() time.Time
}

// System is the production Clock backed by the Go runtime.
//
// Millis counts from process start, so uptime can be read directly off the
// scheduling timebase.
type System struct {
	start time.Time
}

// NewSystem creates a System clock anchored at the current instant.
func NewSystem() *System {
	return &System{start: time.Now()}
}

// Millis returns milliseconds since process start, truncated to 32 bits.
func (s *System) Millis() uint32 {
	return uint32(time.Since(s.start).Milliseconds()) // #nosec G115 -- wrap is intended
}

// Now returns the current wall-clock time.
func (s *System) Now() time.Time {
	return time.Now()
}

// Elapsed returns now - since in wrapping unsigned arithmetic.
//
// A rolled-over counter yields the correct elapsed value without
// special-casing the wrap: Elapsed(5, 0xFFFFFFFB) == 10.
func Elapsed(now, since uint32) uint32 {
	return now - since
}
