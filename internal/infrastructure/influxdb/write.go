package influxdb

import (
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

// WriteSnapshot mirrors one telemetry snapshot.
//
// The write is non-blocking; data is batched and sent asynchronously.
// Failures surface via the SetOnError callback and are never fatal.
//
// Parameters:
//   - deviceID: This node's device id (tag)
//   - distanceCm: Last accepted distance reading
//   - servoPosition: Current actuator position in degrees
//   - targetPosition: Target actuator position in degrees
//   - motion: Latest motion reading
//   - autoMode: Whether the policy owns the target
func (c *Client) WriteSnapshot(deviceID string, distanceCm float64, servoPosition, targetPosition int, motion, autoMode bool) {
	if !c.IsConnected() {
		return
	}

	point := influxdb2.NewPoint(
		"bin_telemetry",
		map[string]string{
			"device_id": deviceID,
		},
		map[string]interface{}{
			"distance_cm":     distanceCm,
			"servo_position":  servoPosition,
			"target_position": targetPosition,
			"motion":          motion,
			"auto_mode":       autoMode,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteLinkEvent records a connectivity transition for diagnostics.
//
// Parameters:
//   - deviceID: This node's device id (tag)
//   - state: The link state entered ("connected", "disconnected")
func (c *Client) WriteLinkEvent(deviceID, state string) {
	if !c.IsConnected() {
		return
	}

	point := influxdb2.NewPoint(
		"bin_link",
		map[string]string{
			"device_id": deviceID,
		},
		map[string]interface{}{
			"state": state,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
