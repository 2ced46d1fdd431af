package transport

import "errors"

// Sentinel errors shared by the transport bindings.
var (
	// ErrNotConnected indicates an operation was attempted while the link
	// is down.
	ErrNotConnected = errors.New("transport not connected")

	// ErrSendFailed indicates a telemetry delivery failure.
	ErrSendFailed = errors.New("telemetry send failed")

	// ErrReceiveFailed indicates a command poll or drain failure.
	ErrReceiveFailed = errors.New("command receive failed")

	// ErrAuthRejected indicates the coordinator refused the node's
	// credentials. Retrying without a config change will not help.
	ErrAuthRejected = errors.New("coordinator rejected credentials")
)
