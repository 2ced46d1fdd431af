// Package transport defines the coordinator link abstraction and its wire
// telemetry format.
//
// Three bindings implement it:
//
//   - httppoll: request/response over HTTP. Telemetry is POSTed, commands
//     are fetched by polling with the last applied command id.
//   - mqttpush: publish/subscribe over MQTT. Telemetry is published,
//     commands arrive asynchronously and are buffered for the control
//     goroutine to drain.
//   - amqppush: the same push model over AMQP (RabbitMQ).
//
// The control loop is transport-agnostic: it calls SendTelemetry and
// PollOrReceive on a schedule and applies whatever commands come back
// through the same idempotent path.
package transport
