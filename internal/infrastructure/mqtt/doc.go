// Package mqtt wraps the Eclipse Paho MQTT client for the bin node's push
// transport.
//
// # Features
//
//   - Connection management with bounded connect timeout
//   - Automatic reconnection with exponential backoff
//   - Subscription restoration after reconnect
//   - Last Will and Testament on the per-device status topic, so the
//     coordinator sees crashes without waiting for a telemetry gap
//   - Bounded publish waits, keeping the control loop non-blocking
//
// # Topic Scheme
//
// Flat, device-scoped: tongsampah/{category}/{device_id}
//
//	tongsampah/telemetry/bin-001   node -> coordinator state snapshots
//	tongsampah/command/bin-001     coordinator -> node commands
//	tongsampah/status/bin-001      availability (retained, LWT)
//
// # Threading
//
// Paho delivers messages on its own goroutines. Handlers must never touch
// control-loop state; the push transport binding enqueues raw payloads and
// the control goroutine drains them inside its own tick.
package mqtt
