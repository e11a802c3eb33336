// Package metrics exposes hub counters and gauges in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "grayhub"

// Metrics holds the hub collectors on a private registry, so several
// instances (e.g. in tests) never collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	deviceAccess *prometheus.CounterVec
	devices      prometheus.Gauge
	schedules    prometheus.Gauge
	triggers     prometheus.Gauge
}

// New creates and registers the hub collectors plus the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		deviceAccess: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "device_access_total",
				Help:      "Device operations forwarded through proxies.",
			},
			[]string{"operation"},
		),
		devices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "devices",
			Help:      "Devices registered in the hub.",
		}),
		schedules: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "schedules",
			Help:      "Scheduled task records held by the hub.",
		}),
		triggers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "triggers",
			Help:      "Trigger records held by the hub.",
		}),
	}

	m.registry.MustRegister(
		m.deviceAccess,
		m.devices,
		m.schedules,
		m.triggers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveAccess counts one device operation.
func (m *Metrics) ObserveAccess(operation string) {
	m.deviceAccess.WithLabelValues(operation).Inc()
}

// SetHubStats records the current registry sizes.
func (m *Metrics) SetHubStats(devices, schedules, triggers int) {
	m.devices.Set(float64(devices))
	m.schedules.Set(float64(schedules))
	m.triggers.Set(float64(triggers))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
