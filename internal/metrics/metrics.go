// Package metrics exposes Prometheus collectors for the shop service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "khidmat"

// Metrics holds the service collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	RPCRequests     *prometheus.CounterVec
	RPCDuration     *prometheus.HistogramVec
	LedgerWrites    *prometheus.CounterVec
	MessagesLogged  prometheus.Counter
	ImagesStored    prometheus.Counter
	AdvisoryResults *prometheus.CounterVec
}

// New creates the collectors and registers them, along with Go runtime and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		LedgerWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_writes_total",
			Help:      "Ledger mutations by operation.",
		}, []string{"operation"}),
		MessagesLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_logged_total",
			Help:      "Messages appended to the message log.",
		}),
		ImagesStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consultation_images_total",
			Help:      "Consultation images stored.",
		}),
		AdvisoryResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_advisories_total",
			Help:      "Weather advisories served by kind.",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RPCRequests,
		m.RPCDuration,
		m.LedgerWrites,
		m.MessagesLogged,
		m.ImagesStored,
		m.AdvisoryResults,
	)
	return m
}

// ObserveRPC records one RPC outcome.
func (m *Metrics) ObserveRPC(procedure, code string, duration time.Duration) {
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(duration.Seconds())
}

// LedgerWrite counts one ledger mutation.
func (m *Metrics) LedgerWrite(operation string) {
	m.LedgerWrites.WithLabelValues(operation).Inc()
}

// MessageLogged counts one appended message.
func (m *Metrics) MessageLogged() {
	m.MessagesLogged.Inc()
}

// ImageStored counts one stored consultation image.
func (m *Metrics) ImageStored() {
	m.ImagesStored.Inc()
}

// Advisory counts one served advisory of the given kind.
func (m *Metrics) Advisory(kind string) {
	m.AdvisoryResults.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
