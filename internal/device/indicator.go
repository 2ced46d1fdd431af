package device

// FillLevel is the coordinator-reported fill state of the bin.
//
// The node never computes this itself; the coordinator derives it from
// telemetry and pushes it back as a notification command.
type FillLevel int

const (
	FillUnknown FillLevel = iota
	FillEmpty
	FillPartial
	FillFull
)

// String returns the wire name of the fill level.
func (f FillLevel) String() string {
	switch f {
	case FillEmpty:
		return "empty"
	case FillPartial:
		return "partial"
	case FillFull:
		return "full"
	default:
		return "unknown"
	}
}

// Indicator is the node's local signalling surface (status LED, buzzer).
//
// Indicator signals are side-effect-only: they carry no persisted state, so
// notification commands drive them on receipt regardless of command-id
// staleness. Implementations must not block.
type Indicator interface {
	// SetFill shows the coordinator-reported fill level.
	SetFill(level FillLevel)

	// SignalFault flags a degraded condition (for example an auth
	// failure on the telemetry link). It never halts anything.
	SignalFault(reason string)
}

// Logger is the logging interface LogIndicator needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// LogIndicator renders indicator signals as log lines. It is the default
// indicator on hosts without a physical LED.
type LogIndicator struct {
	logger Logger
	fill   FillLevel
}

// NewLogIndicator creates a LogIndicator.
func NewLogIndicator(logger Logger) *LogIndicator {
	return &LogIndicator{logger: logger}
}

// SetFill implements Indicator.
func (l *LogIndicator) SetFill(level FillLevel) {
	l.fill = level
	l.logger.Info("fill indicator", "level", level.String())
}

// SignalFault implements Indicator.
func (l *LogIndicator) SignalFault(reason string) {
	l.logger.Warn("indicator fault signal", "reason", reason)
}

// Fill returns the last shown fill level.
func (l *LogIndicator) Fill() FillLevel {
	return l.fill
}
