package influxdb

import "errors"

// Sentinel errors for InfluxDB operations.
var (
	// ErrDisabled indicates the telemetry mirror is turned off in config.
	ErrDisabled = errors.New("influxdb mirror disabled")

	// ErrConnectionFailed indicates the server could not be reached or
	// reported unhealthy at connect time.
	ErrConnectionFailed = errors.New("influxdb connection failed")
)
