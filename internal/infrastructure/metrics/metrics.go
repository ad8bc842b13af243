// Package metrics exposes Prometheus metrics for the device service.
//
// A Collector counts and times every command and query, and publishes the
// store size as gauges read at scrape time:
//
//	collector, err := metrics.New(prometheus.DefaultRegisterer, store)
//	handlers := handler.NewSet(store, handler.Options{Observer: collector})
//
// All metrics carry the "middlemile_" prefix.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nerrad567/middlemile/internal/infrastructure/memory"
)

const metricPrefix = "middlemile_"

// StatsSource reports the current store contents.
type StatsSource interface {
	Stats() memory.Stats
}

// Collector records command outcomes and store gauges.
type Collector struct {
	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a Collector and registers its metrics with reg.
// If stats is nil the store gauges are not registered.
//
// Returns an error if any metric is already registered with reg.
func New(reg prometheus.Registerer, stats StatsSource) (*Collector, error) {
	c := &Collector{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "commands_total",
				Help: "Total commands and queries handled, by outcome",
			},
			[]string{"command", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "command_duration_seconds",
				Help:    "Command and query latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}

	collectors := []prometheus.Collector{c.commands, c.duration}
	if stats != nil {
		collectors = append(collectors,
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Name: metricPrefix + "devices",
				Help: "Number of registered devices",
			}, func() float64 { return float64(stats.Stats().Devices) }),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Name: metricPrefix + "device_groups",
				Help: "Number of registered device groups",
			}, func() float64 { return float64(stats.Stats().DeviceGroups) }),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Name: metricPrefix + "temperature_samples",
				Help: "Number of stored temperature samples",
			}, func() float64 { return float64(stats.Stats().TemperatureSamples) }),
		)
	}

	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("registering metric: %w", err)
		}
	}

	return c, nil
}

// ObserveCommand records one handled command.
func (c *Collector) ObserveCommand(command, outcome string, elapsed time.Duration) {
	c.commands.WithLabelValues(command, outcome).Inc()
	c.duration.WithLabelValues(command).Observe(elapsed.Seconds())
}
