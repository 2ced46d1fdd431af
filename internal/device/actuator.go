package device

// ServoDriver writes an absolute position to the physical servo.
//
// Implementations must be non-blocking: a PWM duty-cycle update, not a wait
// for mechanical settling.
type ServoDriver interface {
	Write(angle int)
}

// Actuator converges CurrentPosition toward TargetPosition at a bounded
// rate: one fixed step per Advance call, clamped so the final step lands
// exactly on the target.
//
// With step s, convergence from any (current, target) takes exactly
// ceil(|target-current|/s) calls. Called once per actuator scheduler period,
// this bounds worst-case time-to-target and keeps the mechanical motion
// smooth.
type Actuator struct {
	state       *State
	driver      ServoDriver
	stepDegrees int
	originAngle int
}

// NewActuator creates an actuator over the shared state.
//
// Parameters:
//   - state: Shared device state (positions are read and written here)
//   - driver: Physical servo output (may be nil for tests)
//   - stepDegrees: Degrees moved per Advance call (minimum 1)
//   - originAngle: The lid's closed/home position, used by RequestTarget
//     to recompute the activation flag
func NewActuator(state *State, driver ServoDriver, stepDegrees, originAngle int) *Actuator {
	if stepDegrees < 1 {
		stepDegrees = 1
	}
	return &Actuator{
		state:       state,
		driver:      driver,
		stepDegrees: stepDegrees,
		originAngle: ClampAngle(originAngle),
	}
}

// Advance moves the current position one bounded step toward the target.
//
// When the remaining distance is smaller than the step, the position lands
// exactly on the target; it never overshoots. At rest this is a no-op.
func (a *Actuator) Advance() {
	s := a.state
	if s.CurrentPosition == s.TargetPosition {
		return
	}

	remaining := s.TargetPosition - s.CurrentPosition
	switch {
	case remaining > a.stepDegrees:
		s.CurrentPosition += a.stepDegrees
	case remaining < -a.stepDegrees:
		s.CurrentPosition -= a.stepDegrees
	default:
		s.CurrentPosition = s.TargetPosition
	}

	if a.driver != nil {
		a.driver.Write(s.CurrentPosition)
	}
}

// RequestTarget applies an externally commanded target position.
//
// The angle is clamped to [0,180]. The request is accepted only while the
// actuator is at rest; mid-stroke requests are dropped, not queued, and the
// caller must retry. An accepted request always suspends automatic policy
// (AutoMode becomes false) and recomputes the activation flag from whether
// the new target differs from the origin position.
//
// Returns:
//   - bool: true if the target was accepted, false if dropped mid-stroke
func (a *Actuator) RequestTarget(angle int) bool {
	s := a.state
	if !s.AtRest() {
		return false
	}

	angle = ClampAngle(angle)
	s.TargetPosition = angle
	s.AutoMode = false
	s.Activated = angle != a.originAngle
	return true
}
