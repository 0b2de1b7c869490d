package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry      *prometheus.Registry
	searches      *prometheus.CounterVec
	searchResults prometheus.Histogram
	fetchSeconds  *prometheus.HistogramVec
	compares      *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carlot",
			Name:      "search_requests_total",
			Help:      "Search requests by outcome (ready, empty, unavailable).",
		}, []string{"status"}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "carlot",
			Name:      "search_matches",
			Help:      "Number of listings matched per search.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		fetchSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "carlot",
			Name:      "catalog_fetch_seconds",
			Help:      "Latency of catalog queries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		compares: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carlot",
			Name:      "compare_requests_total",
			Help:      "Comparison requests by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.searches, m.searchResults, m.fetchSeconds, m.compares)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
