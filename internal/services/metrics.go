package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pathQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubemap_path_queries_total",
		Help: "Shortest path queries by result",
	}, []string{"result"})

	reloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubemap_network_reloads_total",
		Help: "Network reloads by result",
	}, []string{"result"})
)
