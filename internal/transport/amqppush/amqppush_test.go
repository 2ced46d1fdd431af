package amqppush

import (
	"context"
	"strings"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/PXR05/TongSampahBinLaden/internal/infrastructure/config"
	"github.com/PXR05/TongSampahBinLaden/internal/transport"
)

// mockChannel records topology declarations and publishes, and exposes a
// delivery channel tests feed.
type mockChannel struct {
	exchange     string
	exchangeKind string
	queue        string
	bindKey      string
	consumeQueue string

	pubExchange string
	pubKey      string
	pubBody     []byte

	deliveries chan amqp.Delivery
	closed     bool
}

func (m *mockChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	m.exchange, m.exchangeKind = name, kind
	return nil
}

func (m *mockChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	m.queue = name
	return amqp.Queue{Name: name}, nil
}

func (m *mockChannel) QueueBind(name, key, _ string, _ bool, _ amqp.Table) error {
	m.bindKey = key
	return nil
}

func (m *mockChannel) Consume(queue, _ string, _, _, _, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	m.consumeQueue = queue
	return m.deliveries, nil
}

func (m *mockChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	m.pubExchange, m.pubKey, m.pubBody = exchange, key, msg.Body
	return nil
}

func (m *mockChannel) Close() error { m.closed = true; return nil }

func testTransport(t *testing.T) (*Transport, *mockChannel, chan *amqp.Error) {
	t.Helper()
	cfg := config.Default()
	cfg.Transport.Mode = config.ModeAMQP
	tr := New(cfg, nil)

	ch := &mockChannel{deliveries: make(chan amqp.Delivery, 8)}
	closed := make(chan *amqp.Error, 1)
	tr.dial = func() (channel, func(), <-chan *amqp.Error, error) {
		return ch, func() {}, closed, nil
	}
	if err := tr.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	return tr, ch, closed
}

func TestConnect_DeclaresTopology(t *testing.T) {
	_, ch, _ := testTransport(t)

	if ch.exchange != "tongsampah" || ch.exchangeKind != "direct" {
		t.Errorf("exchange = %q kind %q", ch.exchange, ch.exchangeKind)
	}
	if ch.queue != "command.bin-001" {
		t.Errorf("queue = %q, want command.bin-001", ch.queue)
	}
	if ch.bindKey != "command.bin-001" {
		t.Errorf("bind key = %q", ch.bindKey)
	}
	if ch.consumeQueue != "command.bin-001" {
		t.Errorf("consume queue = %q", ch.consumeQueue)
	}
}

func TestSendTelemetry_RoutingAndWatermarkOmission(t *testing.T) {
	tr, ch, _ := testTransport(t)

	err := tr.SendTelemetry(context.Background(), transport.Telemetry{
		DeviceID:      "bin-001",
		LastCommandID: 12,
	})
	if err != nil {
		t.Fatalf("SendTelemetry() error = %v", err)
	}

	if ch.pubExchange != "tongsampah" || ch.pubKey != "telemetry" {
		t.Errorf("published to %q/%q", ch.pubExchange, ch.pubKey)
	}
	if strings.Contains(string(ch.pubBody), "lastCommandId") {
		t.Errorf("payload carries lastCommandId: %s", ch.pubBody)
	}
}

func TestPollOrReceive_DrainsDeliveries(t *testing.T) {
	tr, ch, _ := testTransport(t)

	ch.deliveries <- amqp.Delivery{Body: []byte(`{"commandId":3,"action":"setAngle","targetPosition":45}`)}
	ch.deliveries <- amqp.Delivery{Body: []byte(`garbage`)}

	// The forward goroutine moves deliveries into the buffer.
	waitForBuffered(t, tr, 2)

	cmds, err := tr.PollOrReceive(context.Background(), 0)
	if err != nil {
		t.Fatalf("PollOrReceive() error = %v", err)
	}
	if len(cmds) != 1 || cmds[0].ID != 3 || cmds[0].TargetPosition != 45 {
		t.Errorf("drained = %+v", cmds)
	}
}

func TestConnectionLossFlipsDisconnected(t *testing.T) {
	tr, _, closed := testTransport(t)

	if !tr.IsConnected() {
		t.Fatal("IsConnected() = false after Connect")
	}

	closed <- &amqp.Error{Code: 320, Reason: "connection forced"}
	close(closed)

	deadline := time.After(time.Second)
	for tr.IsConnected() {
		select {
		case <-deadline:
			t.Fatal("still connected after close notification")
		case <-time.After(time.Millisecond):
		}
	}
}

// waitForBuffered spins until n payloads have crossed into the inbound
// buffer or the deadline passes.
func waitForBuffered(t *testing.T, tr *Transport, n int) {
	t.Helper()
	deadline := time.After(time.Second)
	for len(tr.inbound) < n {
		select {
		case <-deadline:
			t.Fatalf("only %d of %d deliveries buffered", len(tr.inbound), n)
		case <-time.After(time.Millisecond):
		}
	}
}
