package link

import (
	"context"
	"errors"

	"github.com/PXR05/TongSampahBinLaden/internal/clock"
	"github.com/PXR05/TongSampahBinLaden/internal/command"
	"github.com/PXR05/TongSampahBinLaden/internal/transport"
)

// State is the link manager's view of the coordinator connection.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

// String returns the lowercase state name for logs and diagnostics.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Logger is the logging interface the manager needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any) {}
func (noopLogger) Warn(string, ...any) {}

// FaultSignaler receives degraded-condition signals the operator should
// see locally. Satisfied by device.LogIndicator.
type FaultSignaler interface {
	SignalFault(reason string)
}

// Manager owns connection state and reconnect pacing for one transport.
//
// It runs as a scheduler task on the control goroutine: every tick it
// observes the transport's state and, while down, retries Connect no more
// often than the backoff interval. The first attempt after construction
// (or after a drop) is immediate; subsequent attempts wait out the
// backoff on the shared millisecond timebase, so wrap-around is handled
// the same way as every other elapsed-time check.
//
// While the link is down, telemetry sends and command polls are gated
// off: snapshots are dropped, not queued.
type Manager struct {
	tr        transport.Transport
	backoffMs uint32
	logger    Logger

	state         State
	lastAttemptMs uint32
	attempted     bool

	// onStateChange, if set, observes transitions (e.g. for the local
	// telemetry mirror). Called on the control goroutine.
	onStateChange func(state State)

	// fault, if set, is signalled on credential rejections. Retrying
	// cannot fix those, so the operator is told through the indicator
	// rather than just the log.
	fault FaultSignaler
}

// NewManager creates a link manager for the given transport.
//
// Parameters:
//   - tr: The transport binding to manage
//   - backoffMs: Minimum elapsed ms between reconnect attempts
//   - logger: Logger (may be nil)
func NewManager(tr transport.Transport, backoffMs uint32, logger Logger) *Manager {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Manager{
		tr:        tr,
		backoffMs: backoffMs,
		logger:    logger,
		state:     StateDisconnected,
	}
}

// SetOnStateChange registers a transition observer.
func (m *Manager) SetOnStateChange(fn func(state State)) {
	m.onStateChange = fn
}

// SetFaultSignaler registers the local fault indicator.
func (m *Manager) SetFaultSignaler(fault FaultSignaler) {
	m.fault = fault
}

// State returns the current link state.
func (m *Manager) State() State {
	return m.state
}

// Service observes the transport and paces reconnect attempts. Runs every
// control tick.
func (m *Manager) Service(ctx context.Context, nowMs uint32) {
	if m.tr.IsConnected() {
		if m.state != StateConnected {
			m.transition(StateConnected)
			m.logger.Info("coordinator link up")
		}
		return
	}

	if m.state == StateConnected {
		m.transition(StateDisconnected)
		m.logger.Warn("coordinator link down")
		// A fresh drop retries immediately on the next tick.
		m.attempted = false
	}

	if m.attempted && clock.Elapsed(nowMs, m.lastAttemptMs) < m.backoffMs {
		return
	}
	m.lastAttemptMs = nowMs
	m.attempted = true

	m.transition(StateConnecting)
	if err := m.tr.Connect(ctx); err != nil {
		m.transition(StateDisconnected)
		m.logger.Warn("connect attempt failed", "error", err)
		return
	}

	m.transition(StateConnected)
	m.logger.Info("coordinator link up")
}

// SendTelemetry forwards a snapshot when the link is up.
//
// Returns:
//   - bool: true if the snapshot was handed to the transport
func (m *Manager) SendTelemetry(ctx context.Context, snap transport.Telemetry) bool {
	if m.state != StateConnected {
		return false
	}
	if err := m.tr.SendTelemetry(ctx, snap); err != nil {
		m.logger.Warn("telemetry send failed", "error", err)
		m.signalAuthFault(err)
		return false
	}
	return true
}

// PollCommands fetches pending commands when the link is up.
func (m *Manager) PollCommands(ctx context.Context, lastID uint32) []command.Command {
	if m.state != StateConnected {
		return nil
	}
	cmds, err := m.tr.PollOrReceive(ctx, lastID)
	if err != nil {
		m.logger.Warn("command poll failed", "error", err)
		m.signalAuthFault(err)
		return nil
	}
	return cmds
}

// signalAuthFault raises the indicator on credential rejections. The node
// keeps running; only the operator-visible signal changes.
func (m *Manager) signalAuthFault(err error) {
	if m.fault != nil && errors.Is(err, transport.ErrAuthRejected) {
		m.fault.SignalFault("coordinator rejected credentials")
	}
}

// Close shuts the underlying transport down.
func (m *Manager) Close() {
	m.tr.Close()
	m.transition(StateDisconnected)
}

func (m *Manager) transition(to State) {
	if m.state == to {
		return
	}
	m.state = to
	if m.onStateChange != nil {
		m.onStateChange(to)
	}
}
