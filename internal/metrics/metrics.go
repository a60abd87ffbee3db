// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FetchRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "njtrades_fetch_runs_total",
		Help: "Adapter fetch cycles, by source and outcome",
	}, []string{"source", "outcome"})

	RecordsCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "njtrades_records_created_total",
		Help: "Rows newly stored by adapters",
	}, []string{"source"})

	RecordsDroppedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "njtrades_records_dropped_total",
		Help: "Candidates discarded as malformed or unstorable",
	}, []string{"source"})

	FetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "njtrades_fetch_duration_seconds",
		Help:    "Time taken by one adapter fetch cycle",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
	}, []string{"source"})

	LiveClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "njtrades_live_clients",
		Help: "Connected live-update subscribers",
	})

	BroadcastsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "njtrades_broadcasts_total",
		Help: "Update events fanned out to live clients",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(
		FetchRunsTotal,
		RecordsCreatedTotal,
		RecordsDroppedTotal,
		FetchDuration,
		LiveClients,
		BroadcastsTotal,
	)
}

// ObserveFetch records the outcome of one fetch cycle.
func ObserveFetch(source string, started time.Time, created, dropped int, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	FetchRunsTotal.WithLabelValues(source, outcome).Inc()
	FetchDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
	RecordsCreatedTotal.WithLabelValues(source).Add(float64(created))
	RecordsDroppedTotal.WithLabelValues(source).Add(float64(dropped))
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
