package command

import (
	"testing"

	"github.com/PXR05/TongSampahBinLaden/internal/device"
)

// fakeIndicator records indicator signals.
type fakeIndicator struct {
	levels []device.FillLevel
	faults []string
}

func (f *fakeIndicator) SetFill(level device.FillLevel) { f.levels = append(f.levels, level) }
func (f *fakeIndicator) SignalFault(reason string)      { f.faults = append(f.faults, reason) }

func newTestChannel() (*device.State, *Channel, *fakeIndicator) {
	state := device.NewState(0)
	actuator := device.NewActuator(state, nil, 10, 0)
	ind := &fakeIndicator{}
	return state, NewChannel(state, actuator, ind, nil), ind
}

func TestApply_SetAngleClampsAndSuspendsAuto(t *testing.T) {
	state, ch, _ := newTestChannel()

	// Poll command {id:5, setAngle, 200} while at rest.
	if !ch.Apply(Command{ID: 5, Action: ActionSetAngle, TargetPosition: 200, HasTarget: true}) {
		t.Fatal("Apply() = false, want applied")
	}

	if state.TargetPosition != 180 {
		t.Errorf("TargetPosition = %d, want 180 (clamped)", state.TargetPosition)
	}
	if state.AutoMode {
		t.Error("AutoMode = true, want false")
	}
	if state.LastCommandID != 5 {
		t.Errorf("LastCommandID = %d, want 5", state.LastCommandID)
	}
}

func TestApply_StaleIDIgnored(t *testing.T) {
	state, ch, _ := newTestChannel()

	ch.Apply(Command{ID: 5, Action: ActionSetAngle, TargetPosition: 90, HasTarget: true})
	actuator := device.NewActuator(state, nil, 10, 0)
	for !state.AtRest() {
		actuator.Advance()
	}
	before := *state

	// Push delivery of {id:3} after {id:5} was already applied.
	if ch.Apply(Command{ID: 3, Action: ActionAuto}) {
		t.Fatal("Apply() = true for stale id, want ignored")
	}

	if *state != before {
		t.Errorf("state changed by stale command: %+v -> %+v", before, *state)
	}
	if state.LastCommandID != 5 {
		t.Errorf("LastCommandID = %d, want 5", state.LastCommandID)
	}
}

func TestApply_DuplicateDeliveryIsNoOp(t *testing.T) {
	state, ch, _ := newTestChannel()

	cmd := Command{ID: 7, Action: ActionSetAngle, TargetPosition: 45, HasTarget: true}
	if !ch.Apply(cmd) {
		t.Fatal("first delivery not applied")
	}
	if ch.Apply(cmd) {
		t.Error("duplicate delivery applied, want no-op")
	}
	if state.LastCommandID != 7 {
		t.Errorf("LastCommandID = %d, want 7", state.LastCommandID)
	}
}

func TestApply_WatermarkNonDecreasing(t *testing.T) {
	state, ch, _ := newTestChannel()

	ids := []uint32{2, 1, 5, 3, 5, 9, 4}
	prev := uint32(0)
	for _, id := range ids {
		ch.Apply(Command{ID: id, Action: ActionAuto})
		if state.LastCommandID < prev {
			t.Fatalf("LastCommandID regressed: %d after %d", state.LastCommandID, prev)
		}
		prev = state.LastCommandID
	}
	if state.LastCommandID != 9 {
		t.Errorf("LastCommandID = %d, want 9", state.LastCommandID)
	}
}

func TestApply_AutoImmediateEvenMidStroke(t *testing.T) {
	state, ch, _ := newTestChannel()
	state.TargetPosition = 90
	state.CurrentPosition = 40
	state.AutoMode = false

	if !ch.Apply(Command{ID: 1, Action: ActionAuto}) {
		t.Fatal("Apply() = false, want applied")
	}
	if !state.AutoMode {
		t.Error("AutoMode = false, want true (auto applies regardless of rest)")
	}
}

func TestApply_SetAngleDroppedMidStroke(t *testing.T) {
	state, ch, _ := newTestChannel()
	state.TargetPosition = 90
	state.CurrentPosition = 40

	ch.Apply(Command{ID: 2, Action: ActionSetAngle, TargetPosition: 0, HasTarget: true})

	if state.TargetPosition != 90 {
		t.Errorf("TargetPosition = %d, want 90 (mid-stroke request dropped)", state.TargetPosition)
	}
	// The id watermark still advances: the command was consumed.
	if state.LastCommandID != 2 {
		t.Errorf("LastCommandID = %d, want 2", state.LastCommandID)
	}
}

func TestApply_NotificationsAlwaysSignal(t *testing.T) {
	state, ch, ind := newTestChannel()
	state.LastCommandID = 10

	// Stale id: indicator still fires, watermark untouched.
	if !ch.Apply(Command{ID: 4, Action: ActionNotifyFull}) {
		t.Fatal("notification not applied")
	}
	if len(ind.levels) != 1 || ind.levels[0] != device.FillFull {
		t.Errorf("indicator levels = %v, want [full]", ind.levels)
	}
	if state.LastCommandID != 10 {
		t.Errorf("LastCommandID = %d, want 10 (stale notify never regresses)", state.LastCommandID)
	}

	// Fresh id: indicator fires and watermark advances.
	ch.Apply(Command{ID: 12, Action: ActionNotifyEmpty})
	if state.LastCommandID != 12 {
		t.Errorf("LastCommandID = %d, want 12", state.LastCommandID)
	}
	if ind.levels[len(ind.levels)-1] != device.FillEmpty {
		t.Errorf("last level = %v, want empty", ind.levels[len(ind.levels)-1])
	}
}

func TestApply_NotificationNeverTouchesControlState(t *testing.T) {
	state, ch, _ := newTestChannel()
	state.AutoMode = false
	state.TargetPosition = 70
	state.CurrentPosition = 70

	ch.Apply(Command{ID: 1, Action: ActionNotifyPartial})

	if state.AutoMode || state.TargetPosition != 70 || state.Activated {
		t.Errorf("notification mutated control state: %+v", state)
	}
}

func TestApplyAll_CountsEffects(t *testing.T) {
	_, ch, _ := newTestChannel()

	n := ch.ApplyAll([]Command{
		{ID: 1, Action: ActionAuto},
		{ID: 1, Action: ActionAuto}, // duplicate
		{ID: 2, Action: ActionSetAngle, TargetPosition: 30, HasTarget: true},
	})
	if n != 2 {
		t.Errorf("ApplyAll() = %d, want 2", n)
	}
}
