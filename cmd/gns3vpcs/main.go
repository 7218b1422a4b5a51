// GNS3 VPCS Server - managed Virtual PC Simulator instances
//
// This is the main entry point for the VPCS device server. It restores
// persisted devices from SQLite, supervises their processes, publishes
// lifecycle events over MQTT and samples liveness into InfluxDB.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/zerolugithub/gns3-server/migrations"

	"github.com/zerolugithub/gns3-server/internal/events"
	"github.com/zerolugithub/gns3-server/internal/identity"
	"github.com/zerolugithub/gns3-server/internal/infrastructure/config"
	"github.com/zerolugithub/gns3-server/internal/infrastructure/database"
	"github.com/zerolugithub/gns3-server/internal/infrastructure/logging"
	"github.com/zerolugithub/gns3-server/internal/infrastructure/mqtt"
	"github.com/zerolugithub/gns3-server/internal/infrastructure/telemetry"
	"github.com/zerolugithub/gns3-server/internal/vpcs"
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
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting GNS3 VPCS server",
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

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", db.Path())

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	if healthErr := db.HealthCheck(ctx); healthErr != nil {
		return fmt.Errorf("database health check: %w", healthErr)
	}

	repo := vpcs.NewSQLiteRepository(db.DB)
	allocator := identity.NewAllocator()

	// Lifecycle event sinks: MQTT and InfluxDB, both optional.
	var emitters []vpcs.Emitter

	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		publisher := events.NewPublisher(mqttClient, byte(cfg.MQTT.QoS))
		publisher.SetLogger(log)
		emitters = append(emitters, publisher)
	} else {
		log.Info("MQTT disabled")
	}

	var influxClient *telemetry.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = telemetry.Connect(ctx, cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		emitters = append(emitters, &telemetryEmitter{client: influxClient})
	} else {
		log.Info("InfluxDB disabled")
	}

	emitter := multiEmitter(emitters)

	// Restore persisted devices
	devices, err := restoreDevices(ctx, cfg, repo, allocator, log, emitter)
	if err != nil {
		return fmt.Errorf("restoring devices: %w", err)
	}
	log.Info("devices restored", "count", len(devices))

	defer func() {
		log.Info("stopping devices")
		for _, d := range devices {
			d.Stop()
		}
	}()

	if cfg.VPCS.Autostart {
		for _, d := range devices {
			if startErr := d.Start(); startErr != nil {
				log.Error("could not autostart device",
					"device", d.Name(),
					"error", startErr,
				)
			}
		}
	}

	// Sample device liveness into InfluxDB
	if influxClient != nil {
		go sampleLiveness(ctx, devices, influxClient, cfg.GetSampleInterval(), log)
	}

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()
	log.Info("shutdown signal received, cleaning up")

	// Persist device state before the deferred Stop calls run. A fresh
	// context is needed because ctx is already cancelled.
	persistCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, d := range devices {
		rec := d.Snapshot()
		if saveErr := repo.Save(persistCtx, &rec); saveErr != nil {
			log.Error("could not persist device", "device", rec.Name, "error", saveErr)
		}
	}

	log.Info("GNS3 VPCS server stopped")
	return nil
}

// restoreDevices recreates devices from their persisted records. Pool
// identities are allocated fresh; records only carry configuration.
func restoreDevices(
	ctx context.Context,
	cfg *config.Config,
	repo vpcs.Repository,
	allocator *identity.Allocator,
	log *logging.Logger,
	emitter vpcs.Emitter,
) ([]*vpcs.Device, error) {
	records, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	devices := make([]*vpcs.Device, 0, len(records))
	for _, rec := range records {
		binary := rec.Path
		if binary == "" {
			binary = cfg.VPCS.Binary
		}

		d, err := vpcs.New(vpcs.DeviceConfig{
			Path:       binary,
			BaseDir:    cfg.Server.DataDir,
			Host:       cfg.Server.Host,
			Name:       rec.Name,
			Console:    rec.Console,
			ScriptFile: rec.ScriptFile,
			Emitter:    emitter,
		}, allocator)
		if err != nil {
			return nil, fmt.Errorf("restoring device %s: %w", rec.Name, err)
		}

		d.SetLogger(log.With("device", rec.Name))
		d.SetProber(vpcs.NewConsoleClient(cfg.GetProbeTimeout()))

		if err := d.ApplyBindings(rec.Bindings); err != nil {
			return nil, fmt.Errorf("restoring device %s: %w", rec.Name, err)
		}

		log.Info("device restored",
			"device", d.Name(),
			"id", d.ID(),
			"console", d.Console(),
			"bindings", len(rec.Bindings),
		)
		devices = append(devices, d)
	}
	return devices, nil
}

// sampleLiveness periodically probes every device and records the result
// with probe latency.
func sampleLiveness(
	ctx context.Context,
	devices []*vpcs.Device,
	client *telemetry.Client,
	interval time.Duration,
	log *logging.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("liveness sampling started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, d := range devices {
				start := time.Now()
				running := d.IsRunning()
				client.WriteProbeResult(d.Name(), d.ID(), running, time.Since(start))
			}
		}
	}
}

// getConfigPath returns the configuration file path.
// Uses GNS3VPCS_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("GNS3VPCS_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// telemetryEmitter adapts the InfluxDB client to the vpcs.Emitter
// interface so lifecycle events land in the telemetry store too.
type telemetryEmitter struct {
	client *telemetry.Client
}

// Emit implements vpcs.Emitter.
func (e *telemetryEmitter) Emit(ev vpcs.Event) {
	e.client.WriteLifecycleEvent(ev.Device, ev.ID, string(ev.Type))
}

// multiEmitter fans one event out to every configured sink. A nil or
// empty slice is a valid no-op emitter.
type multiEmitter []vpcs.Emitter

// Emit implements vpcs.Emitter.
func (m multiEmitter) Emit(ev vpcs.Event) {
	for _, e := range m {
		e.Emit(ev)
	}
}
