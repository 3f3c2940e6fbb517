package graph

import (
	"fmt"
	"log/slog"
	"time"

	"tubemap/internal/logging"
	"tubemap/internal/models"
)

// BuildResult is the outcome of a build. Graph is never nil. Err is nil for a
// valid network, including one with no connections; otherwise Graph is empty
// and Err says why.
type BuildResult struct {
	Graph models.NeighbourGraph
	Err   error
}

func (r BuildResult) OK() bool {
	return r.Err == nil
}

// Build groups the network's connections by the pair of stations they link.
//
// Every station of the network gets an entry, possibly empty. For each pair the
// connections keep the order they have in network.Connections. Invalid input
// yields an empty graph rather than a partial one.
func Build(network *models.Network) BuildResult {
	if network == nil || network.Stations == nil {
		return BuildResult{Graph: models.NeighbourGraph{}, Err: ErrNilNetwork}
	}

	graph := make(models.NeighbourGraph, len(network.Stations))
	for id, s := range network.Stations {
		if s == nil {
			return BuildResult{Graph: models.NeighbourGraph{}, Err: fmt.Errorf("%w: nil station under key %q", ErrMalformedStation, id)}
		}
		if s.ID != id {
			return BuildResult{Graph: models.NeighbourGraph{}, Err: fmt.Errorf("%w: station %q filed under key %q", ErrMalformedStation, s.ID, id)}
		}
		graph[id] = make(map[string][]*models.Connection)
	}

	for i, c := range network.Connections {
		if err := checkConnection(network, c); err != nil {
			return BuildResult{Graph: models.NeighbourGraph{}, Err: fmt.Errorf("connection %d: %w", i, err)}
		}

		a, b := c.Stations[0].ID, c.Stations[1].ID
		graph[a][b] = append(graph[a][b], c)
		graph[b][a] = append(graph[b][a], c)
	}

	return BuildResult{Graph: graph}
}

func checkConnection(network *models.Network, c *models.Connection) error {
	if c == nil {
		return fmt.Errorf("%w: nil connection", ErrMalformedConnection)
	}
	a, b := c.Stations[0], c.Stations[1]
	if a == nil || b == nil {
		return fmt.Errorf("%w: missing station", ErrMalformedConnection)
	}
	if a.ID == b.ID {
		return fmt.Errorf("%w: station %s linked to itself", ErrMalformedConnection, a.ID)
	}
	for _, s := range c.Stations {
		if network.Stations[s.ID] != s {
			return fmt.Errorf("%w: station %s not in network", ErrMalformedConnection, s.ID)
		}
	}
	return nil
}

// Builder wraps Build with logging and metrics.
type Builder struct {
	logger *slog.Logger
}

func NewBuilder(logger *slog.Logger) *Builder {
	return &Builder{logger: logging.OrDefault(logger)}
}

func (b *Builder) Build(network *models.Network) BuildResult {
	start := time.Now()
	result := Build(network)
	elapsed := time.Since(start)

	buildDuration.Observe(elapsed.Seconds())
	if !result.OK() {
		buildTotal.WithLabelValues("invalid").Inc()
		logging.LogError(b.logger, "neighbour graph build rejected network", result.Err,
			slog.String("component", "graph_builder"))
		return result
	}

	buildTotal.WithLabelValues("ok").Inc()
	graphStations.Set(float64(len(result.Graph)))
	logging.LogOperation(b.logger, "neighbour_graph_built",
		slog.Int("stations", len(result.Graph)),
		slog.Int("linked_pairs", result.Graph.EdgeCount()),
		slog.Int("connections", len(network.Connections)),
		slog.Duration("duration", elapsed))
	return result
}
