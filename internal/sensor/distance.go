package sensor

import (
	"fmt"
	"time"
)

// Measurement constants for HC-SR04 class ultrasonic rangers.
const (
	// echoMicrosPerCm converts round-trip echo time to distance at
	// standard air temperature (speed of sound ~343 m/s, there and back).
	echoMicrosPerCm = 58.0

	// deadZoneCm is the transducer blind zone. Readings below it never
	// update the accepted distance.
	deadZoneCm = 2.0

	// defaultMaxRangeCm is the rejection limit when none is configured.
	defaultMaxRangeCm = 400.0

	// defaultEchoTimeout bounds one measurement. ~23ms covers the full
	// 400cm range; past that the echo was missed.
	defaultEchoTimeout = 25 * time.Millisecond

	// filterWindow is the size of the median noise filter.
	filterWindow = 3
)

// Ranger performs one raw time-of-flight measurement.
type Ranger interface {
	// MeasureEcho triggers a ping and returns the echo round-trip
	// duration. It must return within the given timeout; a zero duration
	// means no echo was received.
	MeasureEcho(timeout time.Duration) time.Duration
}

// MotionDetector performs a one-shot binary motion read (PIR class).
type MotionDetector interface {
	Detect() bool
}

// Distance is the filtered distance sensor.
//
// Each Sample is a single bounded measurement followed by validation and a
// median-of-three filter over the last accepted raw readings, which absorbs
// the single-sample spikes ultrasonic rangers are prone to. Not safe for
// concurrent use; it belongs to the control goroutine.
type Distance struct {
	ranger     Ranger
	timeout    time.Duration
	maxRangeCm float64

	window [filterWindow]float64
	count  int
	next   int
}

// NewDistance creates a filtered distance sensor over a raw ranger.
//
// Parameters:
//   - ranger: Raw time-of-flight hardware
//   - maxRangeCm: Rejection limit in centimetres (0 uses the default 400)
func NewDistance(ranger Ranger, maxRangeCm float64) *Distance {
	if maxRangeCm <= 0 {
		maxRangeCm = defaultMaxRangeCm
	}
	return &Distance{
		ranger:     ranger,
		timeout:    defaultEchoTimeout,
		maxRangeCm: maxRangeCm,
	}
}

// Sample performs one measurement and returns the filtered distance.
//
// Rejected samples (timeout, dead zone, out of range) return an error and
// leave the filter untouched; the caller keeps its last accepted value.
//
// Returns:
//   - float64: Median of the last accepted readings
//   - error: ErrEchoTimeout, ErrBelowDeadZone or ErrOutOfRange
func (d *Distance) Sample() (float64, error) {
	echo := d.ranger.MeasureEcho(d.timeout)
	if echo <= 0 {
		return 0, ErrEchoTimeout
	}

	cm := float64(echo.Microseconds()) / echoMicrosPerCm
	if cm < deadZoneCm {
		return 0, fmt.Errorf("%w: %.1fcm", ErrBelowDeadZone, cm)
	}
	if cm > d.maxRangeCm {
		return 0, fmt.Errorf("%w: %.1fcm exceeds %.1fcm", ErrOutOfRange, cm, d.maxRangeCm)
	}

	d.window[d.next] = cm
	d.next = (d.next + 1) % filterWindow
	if d.count < filterWindow {
		d.count++
	}

	return d.median(), nil
}

// median returns the median of the accepted readings collected so far.
// With fewer than three readings it degrades to the mean, which avoids
// privileging a cold-start outlier.
func (d *Distance) median() float64 {
	switch d.count {
	case 1:
		return d.window[0]
	case 2:
		return (d.window[0] + d.window[1]) / 2
	default:
		a, b, c := d.window[0], d.window[1], d.window[2]
		switch {
		case (a >= b) == (a <= c):
			return a
		case (b >= a) == (b <= c):
			return b
		default:
			return c
		}
	}
}
