package loader

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubemap/internal/dijkstra"
	"tubemap/internal/logging"
	"tubemap/internal/models"
)

var samplePath = filepath.Join("..", "..", "testdata", "london_sample.json")

func newTestImporter(buf *bytes.Buffer) *Importer {
	return NewImporter(logging.NewStructuredLogger(buf, slog.LevelInfo))
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "network.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportSample(t *testing.T) {
	var buf bytes.Buffer
	network := models.NewNetwork()

	summary, err := newTestImporter(&buf).Import(network, samplePath)
	require.NoError(t, err)
	assert.Equal(t, Summary{Stations: 16, Lines: 6, Connections: 19, Skipped: 3}, summary)

	assert.Len(t, network.Stations, 16)
	assert.Len(t, network.Lines, 6)
	assert.Len(t, network.Connections, 19)

	assert.Equal(t, []int{1, 2}, network.Station("272").Zones)
	assert.Equal(t, []int{2}, network.Station("110").Zones)
	assert.Equal(t, []int{2, 3}, network.Station("265").Zones)
	assert.Equal(t, "245", network.StationIDs()[0])

	first := network.Connections[0]
	assert.Equal(t, "Stockwell", first.Stations[0].Name)
	assert.Equal(t, "Vauxhall", first.Stations[1].Name)
	assert.Equal(t, "Victoria Line", first.Line.Name)
	assert.Equal(t, 2, first.Time)

	output := buf.String()
	assert.Contains(t, output, `"msg":"skipping invalid record"`)
	assert.Contains(t, output, `"msg":"network_imported"`)
}

func TestImportedNetworkRoutes(t *testing.T) {
	network, err := NewImporter(nil).LoadFile(samplePath)
	require.NoError(t, err)
	pf := dijkstra.NewPathFinder(network, nil)

	route, ok := pf.ShortestRoute("Stockwell", "South Kensington")
	require.True(t, ok)
	assert.Equal(t, []string{"Stockwell", "Vauxhall", "Pimlico", "Victoria", "Sloane Square", "South Kensington"}, route.Names())
	assert.Equal(t, 10, route.TotalTime)

	route, ok = pf.ShortestRoute("Covent Garden", "Green Park")
	require.True(t, ok)
	assert.Equal(t, []string{"Covent Garden", "Leicester Square", "Piccadilly Circus", "Green Park"}, route.Names())

	_, ok = pf.ShortestRoute("Stockwell", "Kensington (Olympia)")
	assert.False(t, ok)
}

func TestImportFailureLeavesNetworkUntouched(t *testing.T) {
	existing := func() *models.Network {
		n := models.NewNetwork()
		n.AddStation(models.NewStation("1", "Bank", 1))
		return n
	}

	t.Run("missing file", func(t *testing.T) {
		network := existing()
		_, err := NewImporter(nil).Import(network, filepath.Join(t.TempDir(), "absent.json"))
		assert.ErrorIs(t, err, ErrSourceUnavailable)
		assert.Len(t, network.Stations, 1)
	})

	t.Run("malformed json", func(t *testing.T) {
		network := existing()
		_, err := NewImporter(nil).Import(network, writeFile(t, `{"stations": [`))
		assert.ErrorIs(t, err, ErrMalformedSource)
		assert.Len(t, network.Stations, 1)
		assert.Equal(t, []string{"1"}, network.StationIDs())
	})

	t.Run("wrong shape", func(t *testing.T) {
		network := existing()
		_, err := NewImporter(nil).Import(network, writeFile(t, `{"stations": {"id": "2"}}`))
		assert.ErrorIs(t, err, ErrMalformedSource)
		assert.Len(t, network.Stations, 1)
	})

	t.Run("nil network", func(t *testing.T) {
		_, err := NewImporter(nil).Import(nil, samplePath)
		assert.Error(t, err)
	})
}

func TestImportMergesIntoExistingNetwork(t *testing.T) {
	network := models.NewNetwork()
	network.AddStation(models.NewStation("1", "Bank", 1))

	path := writeFile(t, `{
		"stations": [{"id": "2", "name": "Monument", "zone": "1"}],
		"lines": [{"line": "1", "name": "Central Line"}],
		"connections": [
			{"station1": "1", "station2": "2", "line": "1", "time": "1"},
			{"station1": "1", "station2": "1", "line": "1", "time": "1"},
			{"station1": "1", "station2": "2", "line": "9", "time": "1"},
			{"station1": "1", "station2": "2", "line": "1", "time": "1.5"}
		]
	}`)

	summary, err := NewImporter(nil).Import(network, path)
	require.NoError(t, err)
	assert.Equal(t, Summary{Stations: 1, Lines: 1, Connections: 1, Skipped: 3}, summary)
	assert.Equal(t, []string{"1", "2"}, network.StationIDs())
	require.Len(t, network.Connections, 1)
	assert.Equal(t, "Bank", network.Connections[0].Stations[0].Name)
}

func TestImportRedefinesStation(t *testing.T) {
	importer := NewImporter(nil)
	network, err := importer.LoadFile(writeFile(t, `{
		"stations": [
			{"id": "1", "name": "Bank", "zone": "1"},
			{"id": "2", "name": "Monument", "zone": "1"}
		],
		"lines": [{"line": "1", "name": "Central Line"}],
		"connections": [{"station1": "1", "station2": "2", "line": "1", "time": "2"}]
	}`))
	require.NoError(t, err)

	_, err = importer.Import(network, writeFile(t, `{
		"stations": [{"id": "1", "name": "Bank (Northern)", "zone": "1"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Bank (Northern)", network.Station("1").Name)
	assert.Same(t, network.Station("1"), network.Connections[0].Stations[0])

	pf := dijkstra.NewPathFinder(network, nil)
	require.NoError(t, pf.BuildErr())
	route, ok := pf.ShortestRoute("Bank (Northern)", "Monument")
	require.True(t, ok)
	assert.Equal(t, 2, route.TotalTime)
}

func TestParseMinutes(t *testing.T) {
	for raw, want := range map[string]int{"3": 3, "3.0": 3, "12": 12} {
		got, err := parseMinutes(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}
	for _, raw := range []string{"0", "-2", "1.5", "soon"} {
		_, err := parseMinutes(raw)
		assert.Error(t, err, raw)
	}
}

func TestFileSource(t *testing.T) {
	source := FileSource{Path: samplePath}
	network, err := source.LoadNetwork(context.Background())
	require.NoError(t, err)
	assert.Len(t, network.Stations, 16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = source.LoadNetwork(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
