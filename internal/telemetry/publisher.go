package telemetry

import (
	"context"
	"time"

	"github.com/PXR05/TongSampahBinLaden/internal/device"
	"github.com/PXR05/TongSampahBinLaden/internal/transport"
)

// epochValidThreshold is the earliest wall-clock epoch (in seconds)
// treated as a synchronized clock. Boards without an RTC boot with the
// epoch near zero; a reading before this threshold means the wall clock
// is meaningless and the coordinator should stamp receive time itself.
const epochValidThreshold = 1_600_000_000

// Sender delivers snapshots; satisfied by link.Manager. The bool result
// reports whether the snapshot was handed to a live link.
type Sender interface {
	SendTelemetry(ctx context.Context, snap transport.Telemetry) bool
}

// Mirror records snapshots locally; satisfied by influxdb.Client.
type Mirror interface {
	WriteSnapshot(deviceID string, distanceCm float64, servoPosition, targetPosition int, motion, autoMode bool)
}

// WallClock provides the wall-clock reading for timestamp inclusion.
type WallClock interface {
	Now() time.Time
}

// Logger is the logging interface the publisher needs.
type Logger interface {
	Debug(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}

// Publisher builds and ships periodic state snapshots.
//
// Snapshots are fire-and-forget: one that cannot be delivered is dropped,
// and the next cycle reads fresh state. The optional local mirror records
// every snapshot regardless of link state, so field diagnostics survive
// coordinator outages.
type Publisher struct {
	deviceID string
	state    *device.State
	wall     WallClock
	sender   Sender
	mirror   Mirror
	logger   Logger
}

// NewPublisher creates a telemetry publisher.
//
// Parameters:
//   - deviceID: Reported device id
//   - state: Shared device state, read on the control goroutine
//   - wall: Wall-clock source for the optional timestamp
//   - sender: Snapshot delivery (the link manager)
//   - mirror: Local snapshot mirror (may be nil)
//   - logger: Logger (may be nil)
func NewPublisher(deviceID string, state *device.State, wall WallClock, sender Sender, mirror Mirror, logger Logger) *Publisher {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Publisher{
		deviceID: deviceID,
		state:    state,
		wall:     wall,
		sender:   sender,
		mirror:   mirror,
		logger:   logger,
	}
}

// Snapshot captures the current state as a wire snapshot.
//
// DeviceTimestamp is included only when the wall clock reads a plausible
// epoch; otherwise the field is omitted and the coordinator falls back to
// its receive time.
func (p *Publisher) Snapshot(nowMs uint32) transport.Telemetry {
	snap := transport.Telemetry{
		DeviceID:            p.deviceID,
		DeviceUptimeMs:      nowMs,
		Distance:            p.state.DistanceCm,
		Motion:              p.state.MotionDetected,
		ServoPosition:       p.state.CurrentPosition,
		TargetPosition:      p.state.TargetPosition,
		ShouldActivateServo: p.state.Activated,
		AutoMode:            p.state.AutoMode,
		LastCommandID:       p.state.LastCommandID,
	}

	if now := p.wall.Now(); now.Unix() >= epochValidThreshold {
		snap.DeviceTimestamp = now.UTC().Format(time.RFC3339)
	}

	return snap
}

// Publish builds one snapshot, mirrors it, and hands it to the sender.
// Runs as a scheduler task; delivery failure is never fatal.
func (p *Publisher) Publish(ctx context.Context, nowMs uint32) {
	snap := p.Snapshot(nowMs)

	if p.mirror != nil {
		p.mirror.WriteSnapshot(p.deviceID, snap.Distance, snap.ServoPosition, snap.TargetPosition, snap.Motion, snap.AutoMode)
	}

	if !p.sender.SendTelemetry(ctx, snap) {
		p.logger.Debug("snapshot dropped", "uptime_ms", nowMs)
	}
}
