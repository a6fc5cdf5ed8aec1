package source

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FetchTotal counts document fetches by scheme and outcome.
	FetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routeview_source_fetch_total",
			Help: "Total number of source document fetches",
		},
		[]string{"scheme", "outcome"},
	)

	FetchSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routeview_source_fetch_seconds",
			Help:    "Latency of source document fetches",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"scheme"},
	)
)

func init() {
	prometheus.MustRegister(FetchTotal)
	prometheus.MustRegister(FetchSeconds)
}

func recordFetch(scheme string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	FetchTotal.WithLabelValues(scheme, outcome).Inc()
	FetchSeconds.WithLabelValues(scheme).Observe(d.Seconds())
}
