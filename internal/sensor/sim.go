package sensor

import "time"

// SimRanger is a deterministic Ranger for host builds and tests.
//
// It replays echo durations computed from the configured distance. Setting
// the distance to zero simulates a missed echo.
type SimRanger struct {
	distanceCm float64
}

// NewSimRanger creates a simulated ranger reporting the given distance.
func NewSimRanger(distanceCm float64) *SimRanger {
	return &SimRanger{distanceCm: distanceCm}
}

// SetDistance changes the simulated distance.
func (r *SimRanger) SetDistance(cm float64) {
	r.distanceCm = cm
}

// MeasureEcho implements Ranger.
func (r *SimRanger) MeasureEcho(_ time.Duration) time.Duration {
	if r.distanceCm <= 0 {
		return 0
	}
	return time.Duration(r.distanceCm*echoMicrosPerCm) * time.Microsecond
}

// SimMotion is a settable MotionDetector for host builds and tests.
type SimMotion struct {
	detected bool
}

// NewSimMotion creates a simulated motion detector.
func NewSimMotion() *SimMotion {
	return &SimMotion{}
}

// Set changes the simulated reading.
func (m *SimMotion) Set(detected bool) {
	m.detected = detected
}

// Detect implements MotionDetector.
func (m *SimMotion) Detect() bool {
	return m.detected
}
