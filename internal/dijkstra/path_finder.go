package dijkstra

import (
	"log/slog"

	"tubemap/internal/graph"
	"tubemap/internal/logging"
	"tubemap/internal/models"
)

// PathFinder answers shortest-path queries against one network snapshot.
// The neighbour graph and the name index are built once by NewPathFinder and
// never modified, so a PathFinder is safe for concurrent use. A changed network
// needs a new PathFinder.
type PathFinder struct {
	network  *models.Network
	graph    models.NeighbourGraph
	buildErr error
	byName   map[string]string
	logger   *slog.Logger
}

func NewPathFinder(network *models.Network, logger *slog.Logger) *PathFinder {
	logger = logging.OrDefault(logger)
	result := graph.NewBuilder(logger).Build(network)

	pf := &PathFinder{
		network:  network,
		graph:    result.Graph,
		buildErr: result.Err,
		byName:   make(map[string]string),
		logger:   logger,
	}
	if network == nil {
		pf.network = models.NewNetwork()
	}

	for _, id := range pf.network.StationIDs() {
		station := pf.network.Stations[id]
		if station == nil {
			continue
		}
		name := station.Name
		if first, taken := pf.byName[name]; taken {
			logger.Warn("duplicate station name, keeping first",
				slog.String("name", name),
				slog.String("kept_id", first),
				slog.String("ignored_id", id))
			continue
		}
		pf.byName[name] = id
	}
	return pf
}

// Graph returns the cached neighbour graph. Callers must not modify it.
func (pf *PathFinder) Graph() models.NeighbourGraph {
	return pf.graph
}

// BuildErr reports why the neighbour graph is empty, if it was rejected.
func (pf *PathFinder) BuildErr() error {
	return pf.buildErr
}

func (pf *PathFinder) Network() *models.Network {
	return pf.network
}

// StationByName resolves an exact, case-sensitive station name.
func (pf *PathFinder) StationByName(name string) (*models.Station, bool) {
	id, ok := pf.byName[name]
	if !ok {
		return nil, false
	}
	return pf.network.Stations[id], true
}

// EdgeWeight returns the quickest travel time between two directly linked stations.
func (pf *PathFinder) EdgeWeight(a, b string) (int, bool) {
	fastest := Fastest(pf.graph[a][b])
	if fastest == nil {
		return 0, false
	}
	return fastest.Time, true
}

// ShortestPath returns the stations of one minimum-time path from startName to
// endName, both included. It returns false when either name is unknown or
// endName cannot be reached. When several paths tie, which one is returned is
// unspecified.
func (pf *PathFinder) ShortestPath(startName, endName string) ([]*models.Station, bool) {
	route, ok := pf.ShortestRoute(startName, endName)
	if !ok {
		return nil, false
	}
	return route.Stations, true
}

// ShortestRoute is ShortestPath with the connection used for every hop and the
// total time.
func (pf *PathFinder) ShortestRoute(startName, endName string) (models.Route, bool) {
	start, ok := pf.StationByName(startName)
	if !ok {
		return models.Route{}, false
	}
	end, ok := pf.StationByName(endName)
	if !ok {
		return models.Route{}, false
	}
	if start.ID == end.ID {
		return models.Route{Stations: []*models.Station{start}}, true
	}

	table := DijkstraTo(pf.graph, start.ID, end.ID)
	ids, _, ok := Travel(table, start.ID, end.ID)
	if !ok {
		return models.Route{}, false
	}
	return pf.route(ids), true
}

func (pf *PathFinder) route(ids []string) models.Route {
	route := models.Route{Stations: make([]*models.Station, len(ids))}
	for i, id := range ids {
		route.Stations[i] = pf.network.Stations[id]
	}
	for i := 1; i < len(ids); i++ {
		fastest := Fastest(pf.graph[ids[i-1]][ids[i]])
		route.Hops = append(route.Hops, models.Hop{
			From:       route.Stations[i-1],
			To:         route.Stations[i],
			Connection: fastest,
		})
		route.TotalTime += fastest.Time
	}
	return route
}
