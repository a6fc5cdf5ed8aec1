package service

import "github.com/prometheus/client_golang/prometheus"

var (
	RecomputeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routeview_recompute_total",
			Help: "Total number of route recomputes",
		},
		[]string{"outcome"},
	)

	// RouteTableSize tracks the number of routes loaded per category.
	RouteTableSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "routeview_route_table_size",
			Help: "Number of routes in the loaded route table",
		},
		[]string{"category"},
	)

	GeneratedLinks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "routeview_generated_links",
			Help: "Number of links emitted by the last recompute",
		},
	)
)

func init() {
	prometheus.MustRegister(RecomputeTotal)
	prometheus.MustRegister(RouteTableSize)
	prometheus.MustRegister(GeneratedLinks)
}
