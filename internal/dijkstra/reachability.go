package dijkstra

import (
	"sort"

	"tubemap/internal/models"
)

// FindInaccessibleNodes splits the stations of graph into those reachable from
// start and those that are not. Both lists are sorted. When start is not in the
// graph every station is inaccessible.
func FindInaccessibleNodes(graph models.NeighbourGraph, start string) ([]string, []string) {
	if len(graph) == 0 {
		return []string{}, []string{}
	}

	visited := make(map[string]bool)
	if _, exists := graph[start]; exists {
		queue := []string{start}
		visited[start] = true

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			for neighbour := range graph[current] {
				if !visited[neighbour] {
					visited[neighbour] = true
					queue = append(queue, neighbour)
				}
			}
		}
	}

	accessible := []string{}
	inaccessible := []string{}
	for node := range graph {
		if visited[node] {
			accessible = append(accessible, node)
		} else {
			inaccessible = append(inaccessible, node)
		}
	}
	sort.Strings(accessible)
	sort.Strings(inaccessible)
	return accessible, inaccessible
}

// Reachable partitions station IDs by whether they can be reached from startName.
func (pf *PathFinder) Reachable(startName string) (reachable, unreachable []string, ok bool) {
	start, ok := pf.StationByName(startName)
	if !ok {
		return nil, nil, false
	}
	reachable, unreachable = FindInaccessibleNodes(pf.graph, start.ID)
	return reachable, unreachable, true
}

// WithinMinutes returns a route to every other station reachable from startName
// in at most minutes, quickest first.
func (pf *PathFinder) WithinMinutes(startName string, minutes int) ([]models.Route, bool) {
	start, ok := pf.StationByName(startName)
	if !ok {
		return nil, false
	}

	table := Dijkstra(pf.graph, start.ID)
	routes := []models.Route{}
	for id, entry := range table {
		if id == start.ID || entry.Cost > float64(minutes) {
			continue
		}
		ids, _, ok := Travel(table, start.ID, id)
		if !ok {
			continue
		}
		routes = append(routes, pf.route(ids))
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].TotalTime != routes[j].TotalTime {
			return routes[i].TotalTime < routes[j].TotalTime
		}
		return routes[i].Stations[len(routes[i].Stations)-1].ID < routes[j].Stations[len(routes[j].Stations)-1].ID
	})
	return routes, true
}
