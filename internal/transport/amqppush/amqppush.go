package amqppush

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/PXR05/TongSampahBinLaden/internal/command"
	"github.com/PXR05/TongSampahBinLaden/internal/infrastructure/config"
	"github.com/PXR05/TongSampahBinLaden/internal/transport"
)

// inboundBuffer bounds undrained command deliveries between control
// ticks, matching the MQTT binding.
const inboundBuffer = 16

// channel is the slice of *amqp.Channel this binding uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Logger is the logging interface the binding needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Transport is the AMQP (RabbitMQ) push binding of the coordinator link.
//
// Topology is declared at connect time: a durable direct exchange, a
// durable per-device command queue bound by its own name as routing key.
// Telemetry is published to the exchange with the configured routing key;
// command deliveries are consumed auto-ack and buffered for the control
// goroutine.
//
// Unlike paho, amqp091 does not reconnect on its own; a closed connection
// flips the binding to disconnected and the link manager redials.
type Transport struct {
	cfg      config.AMQPConfig
	queue    string
	deviceID string
	logger   Logger

	// dial is swapped out in tests.
	dial func() (channel, func(), <-chan *amqp.Error, error)

	ch        channel
	closeConn func()
	inbound   chan []byte

	mu        sync.Mutex
	connected bool
}

// New creates the AMQP push binding. Dialing is deferred to Connect so
// the link manager owns retry pacing.
func New(cfg *config.Config, logger Logger) *Transport {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Transport{
		cfg:      cfg.Transport.AMQP,
		queue:    cfg.CommandQueue(),
		deviceID: cfg.Device.ID,
		logger:   logger,
		dial:     dialAMQP(cfg.Transport.AMQP.URL),
		inbound:  make(chan []byte, inboundBuffer),
	}
}

func dialAMQP(url string) func() (channel, func(), <-chan *amqp.Error, error) {
	return func() (channel, func(), <-chan *amqp.Error, error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, nil, nil, err
		}
		ch, err := conn.Channel()
		if err != nil {
			conn.Close()
			return nil, nil, nil, err
		}
		closed := conn.NotifyClose(make(chan *amqp.Error, 1))
		return ch, func() { conn.Close() }, closed, nil
	}
}

// Connect dials the broker and declares the exchange, queue and consumer.
func (t *Transport) Connect(_ context.Context) error {
	if t.IsConnected() {
		return nil
	}
	t.Close()

	ch, closeConn, closed, err := t.dial()
	if err != nil {
		return fmt.Errorf("%w: %w", transport.ErrNotConnected, err)
	}

	if err := t.declareTopology(ch); err != nil {
		ch.Close()
		closeConn()
		return fmt.Errorf("%w: %w", transport.ErrNotConnected, err)
	}

	// A random consumer-tag suffix keeps two nodes misconfigured with the
	// same device id from colliding on the broker.
	tag := fmt.Sprintf("binnode-%s-%s", t.deviceID, uuid.NewString()[:8])
	deliveries, err := ch.Consume(t.queue, tag, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		closeConn()
		return fmt.Errorf("%w: consume: %w", transport.ErrNotConnected, err)
	}

	t.ch = ch
	t.closeConn = closeConn
	t.setConnected(true)

	go t.forward(deliveries)
	go t.watchClose(closed)

	return nil
}

func (t *Transport) declareTopology(ch channel) error {
	if err := ch.ExchangeDeclare(t.cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := ch.QueueDeclare(t.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err := ch.QueueBind(t.queue, t.queue, t.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}
	return nil
}

// forward runs on its own goroutine, moving delivery bodies into the
// bounded inbound buffer. It exits when the consumer channel closes.
func (t *Transport) forward(deliveries <-chan amqp.Delivery) {
	for d := range deliveries {
		select {
		case t.inbound <- d.Body:
		default:
			t.logger.Warn("command buffer full, delivery dropped", "queue", t.queue)
		}
	}
}

// watchClose flips the binding to disconnected when the connection dies.
func (t *Transport) watchClose(closed <-chan *amqp.Error) {
	err, ok := <-closed
	if ok && err != nil {
		t.logger.Warn("amqp connection lost", "error", err)
	}
	t.setConnected(false)
}

// Close tears down the channel and connection.
func (t *Transport) Close() {
	t.setConnected(false)
	if t.ch != nil {
		t.ch.Close()
		t.ch = nil
	}
	if t.closeConn != nil {
		t.closeConn()
		t.closeConn = nil
	}
}

func (t *Transport) setConnected(v bool) {
	t.mu.Lock()
	t.connected = v
	t.mu.Unlock()
}

// IsConnected reports the last observed connection state.
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

// SendTelemetry publishes one snapshot to the exchange, encoded without
// the watermark field, as on the MQTT binding.
func (t *Transport) SendTelemetry(ctx context.Context, snap transport.Telemetry) error {
	if !t.IsConnected() || t.ch == nil {
		return transport.ErrNotConnected
	}

	payload, err := transport.MarshalPush(snap)
	if err != nil {
		return fmt.Errorf("%w: encoding snapshot: %w", transport.ErrSendFailed, err)
	}

	err = t.ch.PublishWithContext(ctx, t.cfg.Exchange, t.cfg.TelemetryRoutingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        payload,
	})
	if err != nil {
		t.setConnected(false)
		return fmt.Errorf("%w: %w", transport.ErrSendFailed, err)
	}
	return nil
}

// PollOrReceive drains buffered command deliveries in arrival order.
// Malformed deliveries are dropped individually.
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
