package device

// Servo angle limits in degrees.
const (
	MinAngle = 0
	MaxAngle = 180
)

// State is the single shared device state.
//
// It is created once at startup and mutated only by the control goroutine.
// See the package documentation for the ownership and mutation invariants.
type State struct {
	// DistanceCm is the last accepted distance reading. It is retained
	// across failed or rejected samples.
	DistanceCm float64

	// MotionDetected is the latest raw motion reading.
	MotionDetected bool

	// CurrentPosition is the actuator position in degrees [0,180].
	CurrentPosition int

	// TargetPosition is the position the actuator is converging toward.
	TargetPosition int

	// AutoMode selects who owns TargetPosition: true means the motion
	// policy drives it, false means it is set only by external command.
	AutoMode bool

	// Activated reports whether the lid is logically in its deployed
	// state. It exists to avoid redundant transitions, not to mirror
	// CurrentPosition.
	Activated bool

	// LastCommandID is the highest applied command identifier.
	LastCommandID uint32
}

// NewState returns a State resting at the origin in auto mode.
func NewState(originAngle int) *State {
	return &State{
		CurrentPosition: originAngle,
		TargetPosition:  originAngle,
		AutoMode:        true,
	}
}

// AtRest reports whether the actuator has converged on its target.
func (s *State) AtRest() bool {
	return s.CurrentPosition == s.TargetPosition
}

// ClampAngle limits an angle to the servo's [0,180] degree range.
func ClampAngle(angle int) int {
	if angle < MinAngle {
		return MinAngle
	}
	if angle > MaxAngle {
		return MaxAngle
	}
	return angle
}
