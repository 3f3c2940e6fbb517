package graph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	buildTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubemap_graph_builds_total",
		Help: "Neighbour graph builds by result",
	}, []string{"result"})

	buildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tubemap_graph_build_duration_seconds",
		Help:    "Neighbour graph build duration",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
	})

	graphStations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tubemap_graph_stations",
		Help: "Stations in the most recently built neighbour graph",
	})
)
