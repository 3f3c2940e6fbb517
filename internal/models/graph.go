package models

import "sort"

// NeighbourGraph maps a station ID to its neighbours, and each neighbour ID to
// the connections linking the two stations in original network order.
// graph[a][b] and graph[b][a] hold the same connections.
type NeighbourGraph map[string]map[string][]*Connection

// Neighbours returns the neighbour IDs of a station, sorted.
func (g NeighbourGraph) Neighbours(id string) []string {
	ids := make([]string, 0, len(g[id]))
	for n := range g[id] {
		ids = append(ids, n)
	}
	sort.Strings(ids)
	return ids
}

func (g NeighbourGraph) Connections(a, b string) []*Connection {
	return g[a][b]
}

// EdgeCount counts linked station pairs, not connections.
func (g NeighbourGraph) EdgeCount() int {
	count := 0
	for _, neighbours := range g {
		count += len(neighbours)
	}
	return count / 2
}

// GraphData is the JSON export of a neighbour graph.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

type Node struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Zones []int  `json:"zones,omitempty"`
}

type Link struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Line        string `json:"line,omitempty"`
	TimeMinutes int    `json:"time_minutes"`
}

// NewGraphData exports every connection of the graph once, with the lower
// station ID as source. Nodes are listed in network order.
func NewGraphData(network *Network, graph NeighbourGraph) GraphData {
	data := GraphData{Nodes: []Node{}, Links: []Link{}}
	if network == nil {
		return data
	}

	for _, id := range network.StationIDs() {
		if _, ok := graph[id]; !ok {
			continue
		}
		s := network.Stations[id]
		if s == nil {
			continue
		}
		data.Nodes = append(data.Nodes, Node{ID: s.ID, Name: s.Name, Zones: s.Zones})

		for _, neighbour := range graph.Neighbours(id) {
			if neighbour < id {
				continue
			}
			for _, c := range graph[id][neighbour] {
				link := Link{Source: id, Target: neighbour, TimeMinutes: c.Time}
				if c.Line != nil {
					link.Line = c.Line.Name
				}
				data.Links = append(data.Links, link)
			}
		}
	}
	return data
}
