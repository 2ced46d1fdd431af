// TongSampah bin node.
//
// This is the control core for one smart-bin unit: it samples the distance
// and motion sensors, drives the lid servo through the auto/manual policy,
// and keeps a command/telemetry link to the coordinator over the configured
// transport (HTTP poll, MQTT push or AMQP push).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/PXR05/TongSampahBinLaden/internal/infrastructure/config"
	"github.com/PXR05/TongSampahBinLaden/internal/infrastructure/influxdb"
	"github.com/PXR05/TongSampahBinLaden/internal/infrastructure/logging"
	"github.com/PXR05/TongSampahBinLaden/internal/node"
	"github.com/PXR05/TongSampahBinLaden/internal/telemetry"
	"github.com/PXR05/TongSampahBinLaden/internal/transport"
	"github.com/PXR05/TongSampahBinLaden/internal/transport/amqppush"
	"github.com/PXR05/TongSampahBinLaden/internal/transport/httppoll"
	"github.com/PXR05/TongSampahBinLaden/internal/transport/mqttpush"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Secrets (auth token, broker credentials) usually arrive via a .env
	// file in development; absence is not an error.
	_ = godotenv.Load()

	// Use default logger until config is loaded.
	log := logging.Default()
	log.Info("starting bin node",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings.
	log = logging.New(cfg.Logging, cfg.Device.ID, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Select the coordinator transport binding.
	tr, err := buildTransport(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("closing transport")
		tr.Close()
	}()
	log.Info("transport selected", "mode", cfg.Transport.Mode)

	// Connect the local telemetry mirror (optional).
	var mirror telemetry.Mirror
	if cfg.Telemetry.InfluxDB.Enabled {
		influxClient, err := influxdb.Connect(cfg.Telemetry.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			influxClient.Close()
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB mirror connected",
			"url", cfg.Telemetry.InfluxDB.URL,
			"bucket", cfg.Telemetry.InfluxDB.Bucket,
		)
		mirror = influxClient
	} else {
		log.Info("InfluxDB mirror disabled")
	}

	// Assemble and run the control loop. Initial coordinator connection is
	// owned by the link manager inside the loop, so the node comes up and
	// operates autonomously even with the coordinator unreachable.
	n := node.New(cfg, tr, mirror, log)
	if err := n.Run(ctx); err != nil {
		return fmt.Errorf("control loop: %w", err)
	}

	log.Info("bin node stopped")
	return nil
}

// buildTransport constructs the configured transport binding.
func buildTransport(cfg *config.Config, log *logging.Logger) (transport.Transport, error) {
	switch cfg.Transport.Mode {
	case config.ModePoll:
		return httppoll.New(cfg), nil
	case config.ModeMQTT:
		return mqttpush.New(cfg, log.With("component", "mqtt")), nil
	case config.ModeAMQP:
		return amqppush.New(cfg, log.With("component", "amqp")), nil
	default:
		return nil, fmt.Errorf("unknown transport mode %q", cfg.Transport.Mode)
	}
}

// getConfigPath returns the configuration file path.
// Uses BINNODE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("BINNODE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
