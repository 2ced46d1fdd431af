package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
device:
  id: "bin-kitchen"
  activated_angle: 110
transport:
  mode: "poll"
  http:
    base_url: "http://coordinator:5000"
    auth_token: "secret-token"
schedule:
  telemetry_interval_ms: 10000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Device.ID != "bin-kitchen" {
		t.Errorf("Device.ID = %q, want %q", cfg.Device.ID, "bin-kitchen")
	}
	if cfg.Device.ActivatedAngle != 110 {
		t.Errorf("Device.ActivatedAngle = %d, want 110", cfg.Device.ActivatedAngle)
	}
	if cfg.Schedule.TelemetryIntervalMs != 10000 {
		t.Errorf("Schedule.TelemetryIntervalMs = %d, want 10000", cfg.Schedule.TelemetryIntervalMs)
	}
	// Untouched sections keep their defaults.
	if cfg.Device.StepDegrees != 10 {
		t.Errorf("Device.StepDegrees = %d, want default 10", cfg.Device.StepDegrees)
	}
	if cfg.Schedule.ReconnectBackoffMs != 5000 {
		t.Errorf("Schedule.ReconnectBackoffMs = %d, want default 5000", cfg.Schedule.ReconnectBackoffMs)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: [yaml: content")
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
device:
  id: "bin-file"
transport:
  mode: "poll"
  http:
    base_url: "http://file:5000"
    auth_token: "file-token"
`)

	t.Setenv("BINNODE_DEVICE_ID", "bin-env")
	t.Setenv("BINNODE_HTTP_AUTH_TOKEN", "env-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Device.ID != "bin-env" {
		t.Errorf("Device.ID = %q, want env override %q", cfg.Device.ID, "bin-env")
	}
	if cfg.Transport.HTTP.AuthToken != "env-token" {
		t.Errorf("HTTP.AuthToken = %q, want env override", cfg.Transport.HTTP.AuthToken)
	}
	if cfg.Transport.HTTP.BaseURL != "http://file:5000" {
		t.Errorf("HTTP.BaseURL = %q, want file value", cfg.Transport.HTTP.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"valid defaults with token",
			func(c *Config) { c.Transport.HTTP.AuthToken = "t" },
			"",
		},
		{
			"missing device id",
			func(c *Config) { c.Transport.HTTP.AuthToken = "t"; c.Device.ID = "" },
			"device.id",
		},
		{
			"angle out of range",
			func(c *Config) { c.Transport.HTTP.AuthToken = "t"; c.Device.ActivatedAngle = 270 },
			"activated_angle",
		},
		{
			"zero step",
			func(c *Config) { c.Transport.HTTP.AuthToken = "t"; c.Device.StepDegrees = 0 },
			"step_degrees",
		},
		{
			"poll without token",
			func(c *Config) {},
			"auth_token",
		},
		{
			"unknown mode",
			func(c *Config) { c.Transport.Mode = "carrier-pigeon" },
			"transport.mode",
		},
		{
			"mqtt bad qos",
			func(c *Config) { c.Transport.Mode = ModeMQTT; c.Transport.MQTT.QoS = 3 },
			"qos",
		},
		{
			"amqp missing exchange",
			func(c *Config) { c.Transport.Mode = ModeAMQP; c.Transport.AMQP.Exchange = "" },
			"exchange",
		},
		{
			"mirror enabled without url",
			func(c *Config) {
				c.Transport.HTTP.AuthToken = "t"
				c.Telemetry.InfluxDB.Enabled = true
				c.Telemetry.InfluxDB.URL = ""
			},
			"influxdb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestCommandQueue_DefaultsPerDevice(t *testing.T) {
	cfg := Default()
	if got := cfg.CommandQueue(); got != "command.bin-001" {
		t.Errorf("CommandQueue() = %q, want %q", got, "command.bin-001")
	}

	cfg.Transport.AMQP.CommandQueue = "custom"
	if got := cfg.CommandQueue(); got != "custom" {
		t.Errorf("CommandQueue() = %q, want %q", got, "custom")
	}
}
