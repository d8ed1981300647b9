package bapp

import (
	"net/http"

	"github.com/advdv/bpipe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the prometheus registry of the app and the request instruments. Apps can
// register their own collectors on the Registry.
type Metrics struct {
	Registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

// NewMetrics creates a registry with the Go and process collectors and the http request
// instruments.
func NewMetrics(env Environment) *Metrics {
	constLabels := prometheus.Labels{"service": env.serviceName()}

	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Number of http requests served, by status code and method.",
			ConstLabels: constLabels,
		}, []string{"code", "method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Time spent serving http requests.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"code", "method"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of http requests currently being served.",
			ConstLabels: constLabels,
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.inflight,
	)

	return m
}

// instrument wraps the handler with the request instruments.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerInFlight(m.inflight,
		promhttp.InstrumentHandlerDuration(m.duration,
			promhttp.InstrumentHandlerCounter(m.requests, next)))
}

// handler serves the registry in the prometheus exposition format.
func (m *Metrics) handler() bpipe.HandlerFunc {
	return bpipe.StdHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
