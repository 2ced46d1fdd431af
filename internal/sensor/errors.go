package sensor

import "errors"

// Domain-specific errors for sensor reads.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrEchoTimeout is returned when no echo is received within the
	// measurement timeout. The previous accepted distance must be kept.
	ErrEchoTimeout = errors.New("sensor: echo timeout")

	// ErrBelowDeadZone is returned for readings inside the transducer's
	// blind zone (under 2 cm), which are electrically valid but
	// physically meaningless.
	ErrBelowDeadZone = errors.New("sensor: reading below dead zone")

	// ErrOutOfRange is returned for readings beyond the configured
	// maximum range, typically a missed echo picked up late.
	ErrOutOfRange = errors.New("sensor: reading out of range")
)
