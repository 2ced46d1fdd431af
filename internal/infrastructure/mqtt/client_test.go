package mqtt

import (
	"strings"
	"testing"

	"github.com/PXR05/TongSampahBinLaden/internal/infrastructure/config"
)

func testMQTTConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "broker.local",
			Port:     1883,
			ClientID: "binnode",
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     60,
		},
	}
}

func TestTopics(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		got  string
		want string
	}{
		{topics.Telemetry("bin-001"), "tongsampah/telemetry/bin-001"},
		{topics.Command("bin-001"), "tongsampah/command/bin-001"},
		{topics.Status("bin-001"), "tongsampah/status/bin-001"},
		{topics.AllTelemetry(), "tongsampah/telemetry/+"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("topic = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestClientID_UniquePerCall(t *testing.T) {
	cfg := testMQTTConfig()

	a := clientID(cfg, "bin-001")
	b := clientID(cfg, "bin-001")

	if !strings.HasPrefix(a, "binnode-bin-001-") {
		t.Errorf("clientID = %q, want prefix binnode-bin-001-", a)
	}
	if a == b {
		t.Errorf("two clientID calls returned the same id %q", a)
	}
}

func TestBuildClientOptions_BrokerURL(t *testing.T) {
	cfg := testMQTTConfig()
	opts := buildClientOptions(cfg, "test-client")

	servers := opts.Servers
	if len(servers) != 1 {
		t.Fatalf("Servers = %v, want 1 broker", servers)
	}
	if got := servers[0].String(); got != "tcp://broker.local:1883" {
		t.Errorf("broker URL = %q, want tcp://broker.local:1883", got)
	}

	cfg.Broker.TLS = true
	opts = buildClientOptions(cfg, "test-client")
	if got := opts.Servers[0].String(); got != "ssl://broker.local:1883" {
		t.Errorf("TLS broker URL = %q, want ssl://broker.local:1883", got)
	}
}

func TestBuildClientOptions_Auth(t *testing.T) {
	cfg := testMQTTConfig()
	cfg.Auth.Username = "bin"
	cfg.Auth.Password = "secret"

	opts := buildClientOptions(cfg, "test-client")

	if opts.Username != "bin" {
		t.Errorf("Username = %q, want bin", opts.Username)
	}
	if opts.Password != "secret" {
		t.Errorf("Password not carried into options")
	}
}

func TestConfigureLWT(t *testing.T) {
	cfg := testMQTTConfig()
	opts := buildClientOptions(cfg, "test-client")

	configureLWT(opts, "bin-001")

	if !opts.WillEnabled {
		t.Fatal("WillEnabled = false, want true")
	}
	if opts.WillTopic != "tongsampah/status/bin-001" {
		t.Errorf("WillTopic = %q, want tongsampah/status/bin-001", opts.WillTopic)
	}
	if !opts.WillRetained {
		t.Error("WillRetained = false, want true")
	}
	if !strings.Contains(string(opts.WillPayload), "unexpected_disconnect") {
		t.Errorf("WillPayload = %s, want unexpected_disconnect reason", opts.WillPayload)
	}
}

func TestStatusPayload(t *testing.T) {
	got := statusPayload("bin-001", "online", "")
	if got != `{"status":"online","deviceId":"bin-001"}` {
		t.Errorf("statusPayload = %s", got)
	}

	got = statusPayload("bin-001", "offline", "graceful_shutdown")
	if !strings.Contains(got, `"reason":"graceful_shutdown"`) {
		t.Errorf("statusPayload = %s, want reason field", got)
	}
}
