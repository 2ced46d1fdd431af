// Package logging provides structured logging for the bin node.
//
// This package wraps Go's standard log/slog package to provide consistent,
// structured logging across the entire application.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for development (human-readable)
//   - Default fields (service, device_id, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, cfg.Device.ID, "1.0.0")
//	logger.Info("link connected", "transport", "mqtt")
//	logger.Error("telemetry publish failed", "error", err)
//
// # Security
//
// Never log the bearer token, broker passwords, or the InfluxDB token.
package logging
