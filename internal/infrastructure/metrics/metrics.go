// Package metrics expone los contadores Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Farmacia-api/internal/application/search"
)

// Verificar en tiempo de compilación que Metrics implementa search.Observer.
var _ search.Observer = (*Metrics)(nil)

// Metrics agrupa los colectores sobre un registry propio (no el global).
type Metrics struct {
	registry *prometheus.Registry

	searches       *prometheus.CounterVec
	bestOptions    prometheus.Counter
	searchResults  prometheus.Histogram
	searchDuration prometheus.Histogram
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New registra los colectores del servicio y los de proceso/runtime de Go.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Búsquedas de medicamentos atendidas",
			},
			[]string{"outcome"}, // found | empty
		),
		bestOptions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_best_option_total",
				Help:      "Búsquedas con una farmacia marcada como mejor opción",
			},
		),
		searchResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_results",
				Help:      "Cantidad de farmacias devueltas por búsqueda",
				Buckets:   prometheus.LinearBuckets(0, 1, 11),
			},
		),
		searchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Tiempo de cómputo de una búsqueda",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Peticiones HTTP por ruta y código",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latencia de peticiones HTTP",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	registry.MustRegister(
		m.searches,
		m.bestOptions,
		m.searchResults,
		m.searchDuration,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSearch registra el resultado de una búsqueda.
func (m *Metrics) ObserveSearch(results int, bestOption bool, elapsed time.Duration) {
	outcome := "empty"
	if results > 0 {
		outcome = "found"
	}
	m.searches.WithLabelValues(outcome).Inc()
	m.searchResults.Observe(float64(results))
	m.searchDuration.Observe(elapsed.Seconds())
	if bestOption {
		m.bestOptions.Inc()
	}
}

// ObserveRequest registra una petición HTTP terminada. route es la plantilla (/api/owner/inventory/:medicine).
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Registry devuelve el registry para tests o colectores adicionales.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler sirve el formato de exposición de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
