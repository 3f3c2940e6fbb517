package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"tubemap/internal/dijkstra"
	"tubemap/internal/logging"
	"tubemap/internal/models"
)

// ErrNoSource is returned by ReloadFrom when neither a source argument nor a
// default source is available.
var ErrNoSource = errors.New("no network source configured")

// NetworkSource supplies network snapshots: a JSON file or the graph database.
type NetworkSource interface {
	LoadNetwork(ctx context.Context) (*models.Network, error)
}

type snapshot struct {
	finder  *dijkstra.PathFinder
	version uint64
	loaded  time.Time
}

// NetworkService serves queries against the current network snapshot.
// Replacing the snapshot is explicit: Reload and ReloadFrom build a new path
// finder and swap it in. Queries in flight keep the snapshot they started with.
type NetworkService struct {
	source NetworkSource
	logger *slog.Logger
	routes *cache.Cache

	mu      sync.RWMutex
	current snapshot
}

func NewNetworkService(source NetworkSource, cacheTTL time.Duration, logger *slog.Logger) *NetworkService {
	s := &NetworkService{
		source: source,
		logger: logging.OrDefault(logger),
		routes: cache.New(cacheTTL, 2*cacheTTL),
	}
	s.current = snapshot{finder: dijkstra.NewPathFinder(models.NewNetwork(), s.logger)}
	return s
}

func (s *NetworkService) currentSnapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload replaces the snapshot with one built from network. A network the
// graph builder rejects is still installed so that status reports the reason.
func (s *NetworkService) Reload(network *models.Network) error {
	finder := dijkstra.NewPathFinder(network, s.logger)

	s.mu.Lock()
	s.current = snapshot{finder: finder, version: s.current.version + 1, loaded: time.Now()}
	s.mu.Unlock()
	s.routes.Flush()

	if err := finder.BuildErr(); err != nil {
		return fmt.Errorf("network rejected by graph builder: %w", err)
	}
	return nil
}

// ReloadFrom fetches a fresh network from source, or from the default source
// when source is nil. If loading fails the current snapshot stays in place.
func (s *NetworkService) ReloadFrom(ctx context.Context, source NetworkSource) error {
	if source == nil {
		source = s.source
	}
	if source == nil {
		return ErrNoSource
	}

	network, err := source.LoadNetwork(ctx)
	if err != nil {
		reloads.WithLabelValues("error").Inc()
		logging.LogError(s.logger, "network reload failed", err, slog.String("component", "network_service"))
		return fmt.Errorf("error reloading network: %w", err)
	}

	if err := s.Reload(network); err != nil {
		reloads.WithLabelValues("rejected").Inc()
		logging.LogError(s.logger, "reloaded network is invalid", err, slog.String("component", "network_service"))
		return err
	}

	reloads.WithLabelValues("ok").Inc()
	logging.LogOperation(s.logger, "network_reloaded",
		slog.Int("stations", len(network.Stations)),
		slog.Int("connections", len(network.Connections)),
		slog.Uint64("version", s.currentSnapshot().version))
	return nil
}

// Status summarises the current snapshot.
type Status struct {
	Version     uint64    `json:"version"`
	LoadedAt    time.Time `json:"loadedAt"`
	Stations    int       `json:"stations"`
	Lines       int       `json:"lines"`
	Connections int       `json:"connections"`
	LinkedPairs int       `json:"linkedPairs"`
	GraphError  string    `json:"graphError,omitempty"`
}

func (s *NetworkService) Status(ctx context.Context) Status {
	snap := s.currentSnapshot()
	network := snap.finder.Network()
	status := Status{
		Version:     snap.version,
		LoadedAt:    snap.loaded,
		Stations:    len(network.Stations),
		Lines:       len(network.Lines),
		Connections: len(network.Connections),
		LinkedPairs: snap.finder.Graph().EdgeCount(),
	}
	if err := snap.finder.BuildErr(); err != nil {
		status.GraphError = err.Error()
	}
	return status
}

// ShortestPath returns the quickest route between two named stations, or
// false when either name is unknown or no route exists.
func (s *NetworkService) ShortestPath(ctx context.Context, from, to string) (models.Route, bool) {
	snap := s.currentSnapshot()
	key := routeKey(snap.version, from, to)

	if cached, found := s.routes.Get(key); found {
		pathQueries.WithLabelValues("cached").Inc()
		entry := cached.(cachedRoute)
		return entry.route, entry.ok
	}

	route, ok := snap.finder.ShortestRoute(from, to)
	s.routes.SetDefault(key, cachedRoute{route: route, ok: ok})

	if ok {
		pathQueries.WithLabelValues("found").Inc()
	} else {
		pathQueries.WithLabelValues("absent").Inc()
	}
	logging.FromContext(ctx).Debug("shortest path computed",
		slog.String("from", from),
		slog.String("to", to),
		slog.Bool("found", ok),
		slog.Int("time_minutes", route.TotalTime))
	return route, ok
}

// routeKey quotes the names so that no pair of names can collide with another.
func routeKey(version uint64, from, to string) string {
	return fmt.Sprintf("%d|%q|%q", version, from, to)
}

type cachedRoute struct {
	route models.Route
	ok    bool
}

// Stations lists stations in network order.
func (s *NetworkService) Stations(ctx context.Context) []*models.Station {
	network := s.currentSnapshot().finder.Network()
	stations := make([]*models.Station, 0, len(network.Stations))
	for _, id := range network.StationIDs() {
		if station := network.Stations[id]; station != nil {
			stations = append(stations, station)
		}
	}
	return stations
}

// Neighbour is a station directly linked to another, with every connection
// between the two.
type Neighbour struct {
	Station     *models.Station
	Connections []*models.Connection
}

// Neighbours returns the direct neighbours of a named station, sorted by ID.
func (s *NetworkService) Neighbours(ctx context.Context, name string) ([]Neighbour, bool) {
	finder := s.currentSnapshot().finder
	station, ok := finder.StationByName(name)
	if !ok {
		return nil, false
	}

	graph := finder.Graph()
	neighbours := []Neighbour{}
	for _, id := range graph.Neighbours(station.ID) {
		neighbours = append(neighbours, Neighbour{
			Station:     finder.Network().Stations[id],
			Connections: graph[station.ID][id],
		})
	}
	return neighbours, true
}

func (s *NetworkService) GraphData(ctx context.Context) models.GraphData {
	finder := s.currentSnapshot().finder
	return models.NewGraphData(finder.Network(), finder.Graph())
}

// Reachable splits stations into those reachable from name and the rest.
func (s *NetworkService) Reachable(ctx context.Context, name string) (reachable, unreachable []string, ok bool) {
	return s.currentSnapshot().finder.Reachable(name)
}

// WithinMinutes returns routes to every station reachable from name within minutes.
func (s *NetworkService) WithinMinutes(ctx context.Context, name string, minutes int) ([]models.Route, bool) {
	return s.currentSnapshot().finder.WithinMinutes(name, minutes)
}
