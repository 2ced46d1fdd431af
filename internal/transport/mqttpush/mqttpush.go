package mqttpush

import (
	"context"
	"fmt"

	"github.com/PXR05/TongSampahBinLaden/internal/command"
	"github.com/PXR05/TongSampahBinLaden/internal/infrastructure/config"
	"github.com/PXR05/TongSampahBinLaden/internal/infrastructure/mqtt"
	"github.com/PXR05/TongSampahBinLaden/internal/transport"
)

// inboundBuffer bounds how many undrained command payloads are held
// between control ticks. Commands are rare; overflow means the control
// loop has stalled, and the newest delivery is dropped with a warning.
const inboundBuffer = 16

// broker is the slice of the MQTT client this binding uses.
type broker interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	IsConnected() bool
	Close() error
}

// Logger is the logging interface the binding needs. Error is required so
// the same logger can be handed down to the broker client.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// loggerSetter is implemented by the infrastructure client; attaching the
// binding's logger surfaces wrapper-level events (handler panics,
// connection loss) that would otherwise be discarded.
type loggerSetter interface {
	SetLogger(logger mqtt.Logger)
}

// Transport is the MQTT push binding of the coordinator link.
//
// Telemetry is published to the device's telemetry topic. Command
// deliveries arrive on paho's goroutines and are enqueued raw; the
// control goroutine decodes and applies them when it drains the buffer
// inside its own tick, so the single-goroutine core model holds.
type Transport struct {
	cfg      config.MQTTConfig
	deviceID string
	qos      byte
	logger   Logger

	// dial is swapped out in tests.
	dial func() (broker, error)

	broker  broker
	inbound chan []byte
}

// New creates the MQTT push binding. The broker connection is deferred
// to Connect so the link manager owns retry pacing.
func New(cfg *config.Config, logger Logger) *Transport {
	if logger == nil {
		logger = noopLogger{}
	}
	mqttCfg := cfg.Transport.MQTT
	deviceID := cfg.Device.ID
	return &Transport{
		cfg:      mqttCfg,
		deviceID: deviceID,
		qos:      byte(mqttCfg.QoS),
		logger:   logger,
		dial: func() (broker, error) {
			return mqtt.Connect(mqttCfg, deviceID)
		},
		inbound: make(chan []byte, inboundBuffer),
	}
}

// Connect dials the broker and subscribes to the command topic.
//
// Once connected, paho owns reconnection and subscription restore; the
// link manager only re-enters here if the initial dial failed.
func (t *Transport) Connect(_ context.Context) error {
	if t.broker != nil && t.broker.IsConnected() {
		return nil
	}
	if t.broker != nil {
		t.broker.Close()
		t.broker = nil
	}

	b, err := t.dial()
	if err != nil {
		return fmt.Errorf("%w: %w", transport.ErrNotConnected, err)
	}

	if setter, ok := b.(loggerSetter); ok {
		setter.SetLogger(t.logger)
	}

	topic := mqtt.Topics{}.Command(t.deviceID)
	if err := b.Subscribe(topic, t.qos, t.enqueue); err != nil {
		b.Close()
		return fmt.Errorf("%w: %w", transport.ErrNotConnected, err)
	}

	t.broker = b
	return nil
}

// enqueue runs on a paho goroutine. It never blocks: a full buffer drops
// the delivery rather than stalling the broker client.
func (t *Transport) enqueue(topic string, payload []byte) error {
	select {
	case t.inbound <- payload:
		return nil
	default:
		t.logger.Warn("command buffer full, delivery dropped", "topic", topic)
		return nil
	}
}

// Close disconnects from the broker.
func (t *Transport) Close() {
	if t.broker != nil {
		t.broker.Close()
		t.broker = nil
	}
}

// IsConnected reports the broker connection state.
func (t *Transport) IsConnected() bool {
	return t.broker != nil && t.broker.IsConnected()
}

// SendTelemetry publishes one snapshot to the telemetry topic, encoded
// without the watermark field (redundant under in-order push delivery).
func (t *Transport) SendTelemetry(_ context.Context, snap transport.Telemetry) error {
	if t.broker == nil {
		return transport.ErrNotConnected
	}

	payload, err := transport.MarshalPush(snap)
	if err != nil {
		return fmt.Errorf("%w: encoding snapshot: %w", transport.ErrSendFailed, err)
	}

	topic := mqtt.Topics{}.Telemetry(t.deviceID)
	if err := t.broker.Publish(topic, payload, t.qos, false); err != nil {
		return fmt.Errorf("%w: %w", transport.ErrSendFailed, err)
	}
	return nil
}

// PollOrReceive drains buffered command deliveries in arrival order.
//
// lastID is unused here; deduplication happens in the shared apply path.
// Malformed deliveries are dropped individually and never poison the
// rest of the drain.
func (t *Transport) PollOrReceive(_ context.Context, _ uint32) ([]command.Command, error) {
	var cmds []command.Command
	for {
		select {
		case payload := <-t.inbound:
			cmd, err := command.Decode(payload)
			if err != nil {
				t.logger.Warn("command delivery dropped", "error", err)
				continue
			}
			cmds = append(cmds, cmd)
		default:
			return cmds, nil
		}
	}
}
