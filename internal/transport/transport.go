package transport

import (
	"context"
	"encoding/json"

	"github.com/PXR05/TongSampahBinLaden/internal/command"
)

// Transport is the coordinator link the control loop drives.
//
// Both styles of binding satisfy it: the HTTP poll binding does real
// request/response work in SendTelemetry and PollOrReceive, while the
// push bindings (MQTT, AMQP) publish telemetry and drain a buffer of
// already-delivered commands.
//
// All methods are called from the control goroutine only. Bindings that
// receive on background goroutines must hand off through internal
// buffers, never by mutating shared state.
type Transport interface {
	// Connect establishes (or re-establishes) the link. It is invoked by
	// the link manager under backoff; it must be safe to call repeatedly.
	Connect(ctx context.Context) error

	// Close releases the link. Safe to call on a never-connected binding.
	Close()

	// IsConnected reports the last observed link state.
	IsConnected() bool

	// SendTelemetry delivers one snapshot. Failure marks the link down;
	// the snapshot is dropped, never queued for retransmission.
	SendTelemetry(ctx context.Context, t Telemetry) error

	// PollOrReceive returns pending commands in arrival order. The poll
	// binding performs a request carrying lastID; push bindings ignore
	// lastID and drain their delivery buffer.
	PollOrReceive(ctx context.Context, lastID uint32) ([]command.Command, error)
}

// Telemetry is the wire snapshot sent to the coordinator.
//
// DeviceTimestamp is included only when the node's wall clock is known to
// be synchronized; the coordinator falls back to its own receive time
// otherwise. LastCommandID rides along on the poll transport (the poll
// request needs it anyway), always present even at its zero watermark;
// push bindings encode via MarshalPush, which drops it.
type Telemetry struct {
	DeviceID            string  `json:"deviceId"`
	DeviceTimestamp     string  `json:"deviceTimestamp,omitempty"`
	DeviceUptimeMs      uint32  `json:"deviceUptimeMs"`
	Distance            float64 `json:"distance"`
	Motion              bool    `json:"motion"`
	ServoPosition       int     `json:"servoPosition"`
	TargetPosition      int     `json:"targetPosition"`
	ShouldActivateServo bool    `json:"shouldActivateServo"`
	AutoMode            bool    `json:"autoMode"`
	LastCommandID       uint32  `json:"lastCommandId"`
}

// pushTelemetry is the push-transport wire shape: Telemetry minus the
// watermark, which in-order push delivery makes redundant.
type pushTelemetry struct {
	DeviceID            string  `json:"deviceId"`
	DeviceTimestamp     string  `json:"deviceTimestamp,omitempty"`
	DeviceUptimeMs      uint32  `json:"deviceUptimeMs"`
	Distance            float64 `json:"distance"`
	Motion              bool    `json:"motion"`
	ServoPosition       int     `json:"servoPosition"`
	TargetPosition      int     `json:"targetPosition"`
	ShouldActivateServo bool    `json:"shouldActivateServo"`
	AutoMode            bool    `json:"autoMode"`
}

// MarshalPush encodes a snapshot for the push bindings, omitting
// lastCommandId.
func MarshalPush(t Telemetry) ([]byte, error) {
	return json.Marshal(pushTelemetry{
		DeviceID:            t.DeviceID,
		DeviceTimestamp:     t.DeviceTimestamp,
		DeviceUptimeMs:      t.DeviceUptimeMs,
		Distance:            t.Distance,
		Motion:              t.Motion,
		ServoPosition:       t.ServoPosition,
		TargetPosition:      t.TargetPosition,
		ShouldActivateServo: t.ShouldActivateServo,
		AutoMode:            t.AutoMode,
	})
}
