package mqtt

import (
	"crypto/tls"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/PXR05/TongSampahBinLaden/internal/infrastructure/config"
)

// Connection constants.
const (
	// defaultConnectTimeout is the maximum time to wait for initial connection.
	defaultConnectTimeout = 10 * time.Second

	// defaultPublishTimeout is the maximum time to wait for publish acknowledgment.
	defaultPublishTimeout = 5 * time.Second

	// defaultDisconnectQuiesce is the time to wait for pending operations on disconnect.
	defaultDisconnectQuiesce = 1000 // milliseconds

	// defaultKeepAlive is the keepalive interval for the connection.
	defaultKeepAlive = 60 * time.Second

	// maxQoS is the maximum QoS level supported.
	maxQoS = 2

	// tlsMinVersion is the minimum TLS version for secure connections.
	tlsMinVersion = tls.VersionTLS12
)

// clientID builds the broker client identifier.
//
// Two nodes configured with the same device id must never collide on the
// broker (a collision makes the broker drop the older session), so a short
// random suffix is appended.
func clientID(cfg config.MQTTConfig, deviceID string) string {
	base := cfg.Broker.ClientID
	if base == "" {
		base = "binnode"
	}
	return fmt.Sprintf("%s-%s-%s", base, deviceID, uuid.NewString()[:8])
}

// buildClientOptions creates paho MQTT options from node config.
//
// This configures:
//   - Broker URL (tcp:// or ssl:// based on TLS setting)
//   - Client ID for identification
//   - Authentication credentials (if provided)
//   - Auto-reconnect with exponential backoff
//   - TLS configuration (if enabled)
//   - Clean session mode
func buildClientOptions(cfg config.MQTTConfig, id string) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()

	scheme := "tcp"
	if cfg.Broker.TLS {
		scheme = "ssl"
	}
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker.Host, cfg.Broker.Port))

	opts.SetClientID(id)

	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	// Clean session - the node replays nothing from broker-side sessions;
	// command idempotency is handled by id, not by session state.
	opts.SetCleanSession(true)

	// Auto-reconnect with exponential backoff. The link manager sees the
	// reconnecting client as disconnected until paho re-establishes it.
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(time.Duration(cfg.Reconnect.InitialDelay) * time.Second)
	opts.SetMaxReconnectInterval(time.Duration(cfg.Reconnect.MaxDelay) * time.Second)

	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(defaultKeepAlive)

	if cfg.Broker.TLS {
		opts.SetTLSConfig(&tls.Config{
			MinVersion: tlsMinVersion,
		})
	}

	return opts
}

// configureLWT sets up Last Will and Testament for offline detection.
//
// The LWT message is published by the broker if the node disconnects
// unexpectedly (crash, network failure), letting the coordinator mark the
// bin offline without waiting for a telemetry gap.
func configureLWT(opts *pahomqtt.ClientOptions, deviceID string) {
	opts.SetWill(
		Topics{}.Status(deviceID),
		statusPayload(deviceID, "offline", "unexpected_disconnect"),
		1, true,
	)
}

// statusPayload builds the JSON payload for availability messages.
func statusPayload(deviceID, status, reason string) string {
	if reason == "" {
		return fmt.Sprintf(`{"status":%q,"deviceId":%q}`, status, deviceID)
	}
	return fmt.Sprintf(`{"status":%q,"deviceId":%q,"reason":%q}`, status, deviceID, reason)
}
