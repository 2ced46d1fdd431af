package node

import (
	"context"
	"time"

	"github.com/PXR05/TongSampahBinLaden/internal/clock"
	"github.com/PXR05/TongSampahBinLaden/internal/command"
	"github.com/PXR05/TongSampahBinLaden/internal/device"
	"github.com/PXR05/TongSampahBinLaden/internal/infrastructure/config"
	"github.com/PXR05/TongSampahBinLaden/internal/infrastructure/logging"
	"github.com/PXR05/TongSampahBinLaden/internal/link"
	"github.com/PXR05/TongSampahBinLaden/internal/scheduler"
	"github.com/PXR05/TongSampahBinLaden/internal/sensor"
	"github.com/PXR05/TongSampahBinLaden/internal/telemetry"
	"github.com/PXR05/TongSampahBinLaden/internal/transport"
)

// tickPeriod paces the control loop on the host. Task intervals are
// enforced by the scheduler; this only bounds idle spin.
const tickPeriod = time.Millisecond

// LinkRecorder receives link transitions for local diagnostics.
// Satisfied by influxdb.Client.
type LinkRecorder interface {
	WriteLinkEvent(deviceID, state string)
}

// Node wires the control core together and runs the loop.
//
// Everything below the transport bindings runs on the single control
// goroutine: sensing, policy, actuation, link servicing, command apply
// and telemetry all execute inside scheduler ticks, in registration
// order. The only cross-goroutine traffic is the push bindings' bounded
// delivery buffers, drained synchronously by the command task.
type Node struct {
	cfg    *config.Config
	logger *logging.Logger
	clk    clock.Clock
	sched  *scheduler.Scheduler

	state     *device.State
	actuator  *device.Actuator
	policy    *device.Policy
	distance  *sensor.Distance
	motion    sensor.MotionDetector
	indicator *device.LogIndicator

	linkMgr   *link.Manager
	channel   *command.Channel
	publisher *telemetry.Publisher

	// Host-build simulated sensors, kept for runtime tuning and tests.
	simRanger *sensor.SimRanger
	simMotion *sensor.SimMotion

	// runCtx is the context Run was entered with; task bodies use it for
	// bounded network calls.
	runCtx context.Context
}

// logServo is the host-build servo driver: position writes become debug
// log lines instead of PWM updates.
type logServo struct {
	logger *logging.Logger
}

func (d logServo) Write(angle int) {
	d.logger.Debug("servo write", "angle", angle)
}

// New assembles a node over the given transport binding.
//
// Parameters:
//   - cfg: Validated node configuration
//   - tr: Coordinator link binding (poll or push)
//   - mirror: Local telemetry mirror (may be nil)
//   - logger: Root logger
func New(cfg *config.Config, tr transport.Transport, mirror telemetry.Mirror, logger *logging.Logger) *Node {
	n := &Node{
		cfg:    cfg,
		logger: logger,
		clk:    clock.NewSystem(),
		sched:  scheduler.New(logger.With("component", "scheduler")),
		runCtx: context.Background(),
	}

	n.state = device.NewState(cfg.Device.OriginAngle)
	n.actuator = device.NewActuator(n.state, logServo{logger}, cfg.Device.StepDegrees, cfg.Device.OriginAngle)
	n.policy = device.NewPolicy(n.state, cfg.Device.OriginAngle, cfg.Device.ActivatedAngle)
	n.indicator = device.NewLogIndicator(logger.With("component", "indicator"))

	n.simRanger = sensor.NewSimRanger(cfg.Device.SimDistanceCm)
	n.simMotion = sensor.NewSimMotion()
	n.distance = sensor.NewDistance(n.simRanger, cfg.Device.MaxRangeCm)
	n.motion = n.simMotion

	n.linkMgr = link.NewManager(tr, cfg.Schedule.ReconnectBackoffMs, logger.With("component", "link"))
	n.linkMgr.SetFaultSignaler(n.indicator)
	if recorder, ok := mirror.(LinkRecorder); ok && recorder != nil {
		n.linkMgr.SetOnStateChange(func(s link.State) {
			recorder.WriteLinkEvent(cfg.Device.ID, s.String())
		})
	}

	n.channel = command.NewChannel(n.state, n.actuator, n.indicator, logger.With("component", "command"))
	n.publisher = telemetry.NewPublisher(cfg.Device.ID, n.state, n.clk, n.linkMgr, mirror, logger.With("component", "telemetry"))

	n.registerTasks()
	return n
}

// registerTasks lays out the control schedule. Registration order is
// execution order within a tick: sense, decide, actuate, then network.
func (n *Node) registerTasks() {
	sched := n.cfg.Schedule

	n.sched.Register("distance", sched.DistanceIntervalMs, func(_ uint32) {
		cm, err := n.distance.Sample()
		if err != nil {
			// Keep the last accepted value; rejection is routine.
			n.logger.Debug("distance sample rejected", "error", err)
			return
		}
		n.state.DistanceCm = cm
	})

	n.sched.Register("motion", sched.MotionIntervalMs, func(_ uint32) {
		n.state.MotionDetected = n.motion.Detect()
		n.policy.Evaluate()
	})

	n.sched.Register("actuator", sched.ActuatorIntervalMs, n.actuatorTask)

	n.sched.Register("link", 0, func(nowMs uint32) {
		n.linkMgr.Service(n.runCtx, nowMs)
	})

	// Push bindings buffer deliveries between ticks, so their drain runs
	// every tick; the poll binding does a real request per run.
	commandInterval := sched.CommandIntervalMs
	if n.cfg.Transport.Mode != config.ModePoll {
		commandInterval = 0
	}
	n.sched.Register("command", commandInterval, func(_ uint32) {
		cmds := n.linkMgr.PollCommands(n.runCtx, n.state.LastCommandID)
		if len(cmds) > 0 {
			n.channel.ApplyAll(cmds)
		}
	})

	n.sched.Register("telemetry", sched.TelemetryIntervalMs, func(nowMs uint32) {
		n.publisher.Publish(n.runCtx, nowMs)
	})
}

func (n *Node) actuatorTask(_ uint32) {
	n.actuator.Advance()
}

// Run drives the control loop until the context is cancelled.
//
// Returns nil on graceful shutdown.
func (n *Node) Run(ctx context.Context) error {
	n.runCtx = ctx
	n.logger.Info("control loop started",
		"mode", n.cfg.Transport.Mode,
		"tasks", n.sched.TaskCount(),
	)

	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("control loop stopping")
			n.linkMgr.Close()
			return nil
		case <-ticker.C:
			n.sched.Tick(n.clk.Millis())
		}
	}
}

// State exposes the shared device state for diagnostics.
func (n *Node) State() *device.State {
	return n.state
}
