// Package prometheus wires the application's metrics onto a private
// prometheus registry and exposes it over HTTP.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric emitted by the application.
const Namespace = "molforge"

// Collector owns the registry all application metrics register against.
// A private registry keeps tests isolated from the global default registry.
type Collector struct {
	registry *prometheus.Registry
}

// NewCollector builds a collector with the standard Go runtime and process
// collectors pre-registered.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Collector{registry: reg}
}

// NewTestCollector builds a collector with an empty registry, suitable for
// unit tests that assert on exposition output.
func NewTestCollector() *Collector {
	return &Collector{registry: prometheus.NewRegistry()}
}

// Registry returns the underlying registerer for metric construction.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler returns the /metrics HTTP handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
