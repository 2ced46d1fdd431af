// Package influxdb provides an optional local telemetry mirror.
//
// When enabled, every snapshot the node sends to the coordinator is also
// written to a local InfluxDB bucket, giving field technicians a way to
// inspect sensor and actuator history without coordinator access. The
// mirror is diagnostic only: writes are batched and asynchronous, failures
// are logged and dropped, and nothing in the control loop ever waits on it.
package influxdb
