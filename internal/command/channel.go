package command

import (
	"github.com/PXR05/TongSampahBinLaden/internal/device"
)

// TargetRequester applies an externally commanded lid position.
// Satisfied by device.Actuator.
type TargetRequester interface {
	RequestTarget(angle int) bool
}

// Logger is the logging interface the channel needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}

// Channel applies decoded commands to the device state exactly once per
// unique command identity.
//
// Both transport bindings feed the same Apply path, so deduplication
// behaves identically whether a command arrived by poll response or push
// delivery. Runs only on the control goroutine.
type Channel struct {
	state     *device.State
	actuator  TargetRequester
	indicator device.Indicator
	logger    Logger
}

// NewChannel creates the command channel.
//
// Parameters:
//   - state: Shared device state (LastCommandID watermark lives here)
//   - actuator: Target acceptance for setAngle commands
//   - indicator: Sink for notification signals (may be nil)
//   - logger: Logger (may be nil)
func NewChannel(state *device.State, actuator TargetRequester, indicator device.Indicator, logger Logger) *Channel {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Channel{
		state:     state,
		actuator:  actuator,
		indicator: indicator,
		logger:    logger,
	}
}

// Apply applies one command idempotently.
//
// A command mutates state if and only if its id exceeds the highest id
// already applied; the watermark advances before the effect, so a duplicate
// delivery of the same id is a no-op. Stale and duplicate ids are silently
// ignored, not errors.
//
// Notification actions signal the indicator on every receipt, even when the
// id is stale, but never regress the watermark.
//
// Returns:
//   - bool: true if the command produced any effect
func (c *Channel) Apply(cmd Command) bool {
	if cmd.IsNotification() {
		if cmd.ID > c.state.LastCommandID {
			c.state.LastCommandID = cmd.ID
		}
		if c.indicator != nil {
			c.indicator.SetFill(cmd.FillLevel())
		}
		c.logger.Debug("notification applied", "action", string(cmd.Action), "id", cmd.ID)
		return true
	}

	if cmd.ID <= c.state.LastCommandID {
		c.logger.Debug("stale command ignored", "id", cmd.ID, "last_id", c.state.LastCommandID)
		return false
	}
	c.state.LastCommandID = cmd.ID

	switch cmd.Action {
	case ActionAuto:
		// Takes effect immediately, regardless of rest state.
		c.state.AutoMode = true
		c.logger.Info("auto mode restored", "id", cmd.ID)
	case ActionSetAngle:
		angle := device.ClampAngle(cmd.TargetPosition)
		if c.actuator.RequestTarget(angle) {
			c.logger.Info("manual target applied", "id", cmd.ID, "angle", angle)
		} else {
			// Mid-stroke: dropped, not queued. The id still advances;
			// the coordinator must issue a new command to retry.
			c.logger.Info("manual target dropped mid-stroke", "id", cmd.ID, "angle", angle)
		}
	}

	return true
}

// ApplyAll applies a batch in arrival order, returning how many had effect.
func (c *Channel) ApplyAll(cmds []Command) int {
	applied := 0
	for _, cmd := range cmds {
		if c.Apply(cmd) {
			applied++
		}
	}
	return applied
}
