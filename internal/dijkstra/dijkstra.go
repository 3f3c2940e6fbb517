// Package dijkstra finds minimum-time paths over a neighbour graph.
package dijkstra

import (
	"math"

	"tubemap/internal/models"
)

// Entry is the tentative cost of reaching a station and the station it was
// reached from. HasPrevious is false for the start and for unreached stations;
// any string, including "", is a valid station ID.
type Entry struct {
	Previous    string
	HasPrevious bool
	Cost        float64
}

// Table holds one Entry per station of the graph.
type Table map[string]Entry

// GetNodes returns every station ID in the graph, including neighbours that
// have no entry of their own.
func GetNodes(graph models.NeighbourGraph) []string {
	var nodes []string
	seen := make(map[string]bool)

	for key, neighbours := range graph {
		if !seen[key] {
			nodes = append(nodes, key)
			seen[key] = true
		}
		for neighbour := range neighbours {
			if !seen[neighbour] {
				nodes = append(nodes, neighbour)
				seen[neighbour] = true
			}
		}
	}
	return nodes
}

// InitCosts sets every station to infinity except the start, at zero.
func InitCosts(nodes []string, start string) Table {
	table := make(Table, len(nodes))
	for _, node := range nodes {
		if node == start {
			table[node] = Entry{Cost: 0}
		} else {
			table[node] = Entry{Cost: math.Inf(1)}
		}
	}
	return table
}

// findMinCostNode picks the unvisited station with the lowest finite cost,
// breaking ties on the lowest ID. ok is false when every unvisited station is
// unreachable.
func findMinCostNode(costs Table, unvisited map[string]bool) (node string, ok bool) {
	minCost := math.Inf(1)

	for candidate := range unvisited {
		cost := costs[candidate].Cost
		if cost < minCost || (ok && cost == minCost && candidate < node) {
			minCost = cost
			node = candidate
			ok = true
		}
	}
	return node, ok
}

// Fastest returns the quickest of a set of parallel connections. Equal times
// resolve to the earliest connection. It returns nil for an empty list.
func Fastest(connections []*models.Connection) *models.Connection {
	var best *models.Connection
	for _, c := range connections {
		if best == nil || c.Time < best.Time {
			best = c
		}
	}
	return best
}

// Dijkstra computes minimum travel times from start to every station of graph.
func Dijkstra(graph models.NeighbourGraph, start string) Table {
	return search(graph, start, "", false)
}

// DijkstraTo is Dijkstra stopping once target is finalised. Entries for
// stations not yet finalised at that point are tentative.
func DijkstraTo(graph models.NeighbourGraph, start, target string) Table {
	return search(graph, start, target, true)
}

func search(graph models.NeighbourGraph, start, target string, stopAtTarget bool) Table {
	nodes := GetNodes(graph)
	table := InitCosts(nodes, start)

	unvisited := make(map[string]bool, len(nodes))
	for _, node := range nodes {
		unvisited[node] = true
	}

	for len(unvisited) > 0 {
		current, ok := findMinCostNode(table, unvisited)
		if !ok {
			break
		}
		delete(unvisited, current)
		if stopAtTarget && current == target {
			break
		}

		for neighbour, connections := range graph[current] {
			if !unvisited[neighbour] {
				continue
			}
			fastest := Fastest(connections)
			if fastest == nil {
				continue
			}

			newCost := table[current].Cost + float64(fastest.Time)
			if newCost < table[neighbour].Cost {
				table[neighbour] = Entry{Previous: current, HasPrevious: true, Cost: newCost}
			}
		}
	}

	return table
}

// Travel walks predecessors back from end and returns the station IDs from
// start to end with the total cost. ok is false when end was not reached.
func Travel(table Table, start, end string) (path []string, cost float64, ok bool) {
	entry, exists := table[end]
	if !exists || math.IsInf(entry.Cost, 1) {
		return nil, 0, false
	}

	current := end
	for current != start {
		path = append(path, current)
		step := table[current]
		if !step.HasPrevious || len(path) > len(table) {
			return nil, 0, false
		}
		current = step.Previous
	}
	path = append(path, start)

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, entry.Cost, true
}
