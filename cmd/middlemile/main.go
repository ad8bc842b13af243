// middlemile tracks IoT devices grouped into device groups, stores their
// temperature telemetry and answers average-temperature queries.
//
// Telemetry arrives over the HTTP API or, when enabled, over MQTT. Saved
// samples can be mirrored to InfluxDB, and command metrics are exposed for
// Prometheus.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nerrad567/middlemile/internal/api"
	"github.com/nerrad567/middlemile/internal/handler"
	"github.com/nerrad567/middlemile/internal/infrastructure/config"
	"github.com/nerrad567/middlemile/internal/infrastructure/influxdb"
	"github.com/nerrad567/middlemile/internal/infrastructure/logging"
	"github.com/nerrad567/middlemile/internal/infrastructure/memory"
	"github.com/nerrad567/middlemile/internal/infrastructure/metrics"
	"github.com/nerrad567/middlemile/internal/infrastructure/mqtt"
	"github.com/nerrad567/middlemile/internal/ingest"
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
	// Cancel on Ctrl+C and SIGTERM for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCommand builds the CLI. Running it without a subcommand serves.
func newRootCommand() *cobra.Command {
	var configPath string

	serve := func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), resolveConfigPath(configPath, cmd.Flags().Changed("config")))
	}

	root := &cobra.Command{
		Use:           "middlemile",
		Short:         "Device temperature telemetry service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath,
		"path to the YAML configuration file (env MIDDLEMILE_CONFIG)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and telemetry ingest",
		Args:  cobra.NoArgs,
		RunE:  serve,
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout())
		},
	})

	return root
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "middlemile %s (commit %s, built %s)\n", version, commit, date)
}

// resolveConfigPath returns the configuration file path.
// An explicit --config wins, then MIDDLEMILE_CONFIG, then the default.
func resolveConfigPath(flagValue string, flagSet bool) string {
	if flagSet {
		return flagValue
	}
	if path := os.Getenv("MIDDLEMILE_CONFIG"); path != "" {
		return path
	}
	return flagValue
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//   - configPath: YAML configuration file; a missing file means defaults
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context, configPath string) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting middlemile",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded",
		"path", configPath,
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	store := memory.NewStore()
	opts := handler.Options{Logger: log.Component("handler")}
	checks := make(map[string]api.HealthChecker)

	// Prometheus metrics (optional)
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		collector, metricsErr := metrics.New(reg, store)
		if metricsErr != nil {
			return fmt.Errorf("registering metrics: %w", metricsErr)
		}
		opts.Observer = collector
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		log.Info("metrics enabled", "path", cfg.Metrics.Path)
	}

	// Connect to InfluxDB (optional)
	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(cfg.InfluxDB)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
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
		opts.Recorder = influxClient
		checks["influxdb"] = influxClient
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	handlers := handler.NewSet(store, opts)

	// Connect to MQTT broker and start telemetry ingest (optional)
	if cfg.MQTT.Enabled {
		mqttClient, mqttErr := mqtt.Connect(cfg.MQTT)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log.Component("mqtt"))
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
		checks["mqtt"] = mqttClient
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		if cfg.MQTT.Ingest.Enabled {
			ingester, ingestErr := ingest.New(mqttClient, handlers.SaveDeviceTemperature,
				cfg.MQTT.Ingest.Topic, byte(cfg.MQTT.QoS))
			if ingestErr != nil {
				return fmt.Errorf("creating telemetry ingest: %w", ingestErr)
			}
			ingester.SetLogger(log.Component("ingest"))
			if startErr := ingester.Start(ctx); startErr != nil {
				return fmt.Errorf("starting telemetry ingest: %w", startErr)
			}
			defer func() {
				if stopErr := ingester.Stop(); stopErr != nil {
					log.Error("error stopping telemetry ingest", "error", stopErr)
				}
			}()
			log.Info("telemetry ingest started", "topic", cfg.MQTT.Ingest.Topic)
		}
	} else {
		log.Info("MQTT disabled")
	}

	server, err := api.New(api.Deps{
		Config:      cfg.API,
		Logger:      log.Component("api"),
		Handlers:    handlers,
		Metrics:     metricsHandler,
		MetricsPath: cfg.Metrics.Path,
		Checks:      checks,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Verify all connections are healthy
	if err := healthCheck(ctx, checks); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("initialisation complete, waiting for shutdown signal",
		"address", server.Addr(),
	)

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	// Deferred Close() calls run in reverse order: API, ingest, MQTT, InfluxDB.
	return nil
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, checks map[string]api.HealthChecker) error {
	for name, c := range checks {
		if err := c.HealthCheck(ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
