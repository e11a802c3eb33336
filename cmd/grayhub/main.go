// Gray Logic Hub
//
// Entry point for the hub process: it loads configuration, connects the
// optional sinks (SQLite access journal, MQTT, InfluxDB, Prometheus),
// seeds the device registry from the configured inventory and runs until
// interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/nerrad567/gray-logic-hub/migrations"

	"github.com/nerrad567/gray-logic-hub/internal/audit"
	"github.com/nerrad567/gray-logic-hub/internal/device"
	"github.com/nerrad567/gray-logic-hub/internal/hub"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/metrics"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-hub/internal/notify"
)

// Version information, set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	defaultConfigPath = "configs/config.yaml"

	healthCheckTimeout = 5 * time.Second
	shutdownTimeout    = 5 * time.Second
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the hub and blocks until ctx is cancelled.
func run(ctx context.Context) error { //nolint:gocognit,gocyclo // linear startup sequence
	log := logging.Default()
	log.Info("starting Gray Logic Hub",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("ignoring unreadable .env file", "error", err)
	}

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded",
		"path", configPath,
		"site", cfg.Site.ID,
		"level", cfg.Logging.Level,
	)

	var sinks []device.Observer
	sinks = append(sinks, notify.NewLogObserver(log))

	// Access journal
	var db *database.DB
	if cfg.Database.Enabled {
		db, err = database.Open(database.Config{
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

		if migrateErr := db.Migrate(ctx); migrateErr != nil {
			return fmt.Errorf("running migrations: %w", migrateErr)
		}
		log.Info("access journal ready", "path", cfg.Database.Path)

		sinks = append(sinks, notify.NewAuditRecorder(audit.NewSQLiteRepository(db.DB), log))
	}

	// MQTT
	var mqttClient *mqtt.Client
	var mqttPub *notify.MQTTPublisher
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
		mqttClient.SetLogger(log)
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttPub = notify.NewMQTTPublisher(mqttClient, log)
		sinks = append(sinks, mqttPub)
	}

	// InfluxDB
	var influxClient *influxdb.Client
	var influxWriter *notify.InfluxWriter
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxWriter = notify.NewInfluxWriter(influxClient)
		sinks = append(sinks, influxWriter)
	}

	// Prometheus
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		srv := startMetricsServer(cfg.Metrics, m, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
				log.Error("error stopping metrics server", "error", shutdownErr)
			}
		}()
		sinks = append(sinks, notify.NewMetricsObserver(m))
	}

	fanout := notify.NewFanout(sinks...)

	h := hub.New()
	h.SetLogger(log)
	if seedErr := seedHub(h, cfg.Inventory, log, fanout); seedErr != nil {
		return fmt.Errorf("seeding hub: %w", seedErr)
	}

	stats := h.Stats()
	log.Info("hub ready",
		"devices", stats.Devices,
		"schedules", stats.Schedules,
		"triggers", stats.Triggers,
		"sinks", fanout.Len(),
	)

	report := h.StatusReport()
	for _, entry := range report {
		log.Info("device status", "device_id", entry.DeviceID, "status", entry.Status)
	}

	if m != nil {
		m.SetHubStats(stats.Devices, stats.Schedules, stats.Triggers)
	}
	if mqttPub != nil {
		mqttPub.PublishStatus(report)
	}
	if influxWriter != nil {
		influxWriter.RecordThermostats(h.Devices())
	}

	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		log.Warn("initial health check failed", "error", err)
	}

	log.Info("Gray Logic Hub running, press Ctrl+C to stop")
	<-ctx.Done()

	log.Info("shutting down Gray Logic Hub")
	return nil
}

// getConfigPath returns GRAYHUB_CONFIG or the default config path.
func getConfigPath() string {
	if path := os.Getenv("GRAYHUB_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// startMetricsServer serves m on cfg.Listen in the background.
func startMetricsServer(cfg config.MetricsConfig, m *metrics.Metrics, log *logging.Logger) *http.Server {
	path := cfg.Path
	if path == "" {
		path = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("metrics server listening", "addr", cfg.Listen, "path", path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}

// healthCheck checks every connected sink. Nil sinks are skipped.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	var errs []error
	if db != nil {
		if err := db.HealthCheck(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mqtt: %w", err))
		}
	}
	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
