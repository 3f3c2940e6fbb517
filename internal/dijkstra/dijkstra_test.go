package dijkstra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubemap/internal/graph"
	"tubemap/internal/models"
)

func TestFindMinCostNode(t *testing.T) {
	costs := Table{
		"b": {Cost: 1},
		"a": {Cost: 1},
		"c": {Cost: 0.5},
		"d": {Cost: math.Inf(1)},
	}

	node, ok := findMinCostNode(costs, map[string]bool{"a": true, "b": true, "c": true})
	assert.True(t, ok)
	assert.Equal(t, "c", node)

	node, ok = findMinCostNode(costs, map[string]bool{"a": true, "b": true})
	assert.True(t, ok)
	assert.Equal(t, "a", node)

	_, ok = findMinCostNode(costs, map[string]bool{"d": true})
	assert.False(t, ok)
	_, ok = findMinCostNode(costs, map[string]bool{})
	assert.False(t, ok)

	node, ok = findMinCostNode(Table{"": {Cost: 0}, "a": {Cost: 0}}, map[string]bool{"": true, "a": true})
	assert.True(t, ok)
	assert.Equal(t, "", node)
}

func TestFastest(t *testing.T) {
	slow := &models.Connection{Time: 5}
	quick := &models.Connection{Time: 3}
	alsoQuick := &models.Connection{Time: 3}

	assert.Same(t, quick, Fastest([]*models.Connection{slow, quick, alsoQuick}))
	assert.Nil(t, Fastest(nil))
}

func TestDijkstraTable(t *testing.T) {
	network := newNetwork([]string{"A", "B", "C", "D"}, []link{
		{"A", "B", 1},
		{"B", "C", 2},
		{"A", "C", 5},
	})
	result := graph.Build(network)
	require.True(t, result.OK())

	table := Dijkstra(result.Graph, "A")
	assert.Equal(t, Entry{Cost: 0}, table["A"])
	assert.Equal(t, Entry{Previous: "A", HasPrevious: true, Cost: 1}, table["B"])
	assert.Equal(t, Entry{Previous: "B", HasPrevious: true, Cost: 3}, table["C"])
	assert.True(t, math.IsInf(table["D"].Cost, 1))

	path, cost, ok := Travel(table, "A", "C")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C"}, path)
	assert.Equal(t, 3.0, cost)

	_, _, ok = Travel(table, "A", "D")
	assert.False(t, ok)
	_, _, ok = Travel(table, "A", "Z")
	assert.False(t, ok)

	path, cost, ok = Travel(table, "A", "A")
	require.True(t, ok)
	assert.Equal(t, []string{"A"}, path)
	assert.Zero(t, cost)
}

func TestGetNodesIncludesDanglingNeighbours(t *testing.T) {
	g := models.NeighbourGraph{
		"A": {"B": {&models.Connection{Time: 1}}},
	}
	assert.ElementsMatch(t, []string{"A", "B"}, GetNodes(g))

	table := DijkstraTo(g, "A", "B")
	assert.Equal(t, Entry{Previous: "A", HasPrevious: true, Cost: 1}, table["B"])
}

func TestEmptyStationID(t *testing.T) {
	network := newNetwork([]string{"", "B", "C"}, []link{
		{"", "B", 2},
		{"B", "C", 3},
	})
	result := graph.Build(network)
	require.True(t, result.OK())

	t.Run("as start", func(t *testing.T) {
		path, cost, ok := Travel(DijkstraTo(result.Graph, "", "C"), "", "C")
		require.True(t, ok)
		assert.Equal(t, []string{"", "B", "C"}, path)
		assert.Equal(t, 5.0, cost)
	})

	t.Run("as target", func(t *testing.T) {
		path, _, ok := Travel(DijkstraTo(result.Graph, "C", ""), "C", "")
		require.True(t, ok)
		assert.Equal(t, []string{"C", "B", ""}, path)
	})

	t.Run("full search does not stop early", func(t *testing.T) {
		table := Dijkstra(result.Graph, "C")
		assert.Equal(t, Entry{Previous: "B", HasPrevious: true, Cost: 5}, table[""])
	})
}
