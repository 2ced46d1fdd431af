package device

// Policy is the auto-mode lid state machine.
//
// It maps (motion, current vs. target position) to a target position once
// per motion-check tick. The two concerns it deliberately decouples:
//
//   - what the final position should be, which is only re-decided at rest,
//     so a momentary motion blip during a stroke never reverses the stroke;
//   - what state the lid is flagged as (Activated), which tracks the latest
//     motion reading continuously, so the blip is still reflected once the
//     stroke completes and the next at-rest evaluation converges on it.
type Policy struct {
	state          *State
	originAngle    int
	activatedAngle int
}

// NewPolicy creates the auto-mode policy.
//
// Parameters:
//   - state: Shared device state
//   - originAngle: Closed/home lid position in degrees
//   - activatedAngle: Deployed lid position in degrees
func NewPolicy(state *State, originAngle, activatedAngle int) *Policy {
	return &Policy{
		state:          state,
		originAngle:    ClampAngle(originAngle),
		activatedAngle: ClampAngle(activatedAngle),
	}
}

// Evaluate runs one policy step.
//
// In manual mode the policy makes no decision at all. While the actuator is
// mid-stroke only the activation flag is updated; the target is left alone
// until rest is reached. At rest, the position is brought in line with the
// latest motion reading.
func (p *Policy) Evaluate() {
	s := p.state
	if !s.AutoMode {
		return
	}

	if !s.AtRest() {
		// Transitioning: track the reading, never retarget mid-stroke.
		s.Activated = s.MotionDetected
		return
	}

	switch {
	case s.MotionDetected && s.CurrentPosition != p.activatedAngle:
		s.TargetPosition = p.activatedAngle
		s.Activated = true
	case !s.MotionDetected && s.CurrentPosition != p.originAngle:
		s.TargetPosition = p.originAngle
		s.Activated = false
	default:
		s.Activated = s.MotionDetected
	}
}
