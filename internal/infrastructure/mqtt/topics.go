package mqtt

import "fmt"

// TopicPrefix is the root of the node's MQTT namespace.
//
// The scheme is flat: tongsampah/{category}/{device_id}. The coordinator
// subscribes to the telemetry and status categories; each node subscribes
// only to its own command topic.
const TopicPrefix = "tongsampah"

// Topics provides builders for the node's MQTT topics.
// Using these helpers keeps topic naming consistent across the codebase.
type Topics struct{}

// Telemetry returns the topic the node publishes state snapshots to.
//
// Example: tongsampah/telemetry/bin-001
func (Topics) Telemetry(deviceID string) string {
	return fmt.Sprintf("%s/telemetry/%s", TopicPrefix, deviceID)
}

// Command returns the topic the coordinator publishes commands to.
//
// Example: tongsampah/command/bin-001
func (Topics) Command(deviceID string) string {
	return fmt.Sprintf("%s/command/%s", TopicPrefix, deviceID)
}

// Status returns the availability topic, used for the online message and
// the Last Will and Testament.
//
// Example: tongsampah/status/bin-001
func (Topics) Status(deviceID string) string {
	return fmt.Sprintf("%s/status/%s", TopicPrefix, deviceID)
}

// AllTelemetry returns a pattern matching every node's telemetry.
// Coordinator-side helper, kept for command-line debugging tools.
//
// Pattern: tongsampah/telemetry/+
func (Topics) AllTelemetry() string {
	return fmt.Sprintf("%s/telemetry/+", TopicPrefix)
}
