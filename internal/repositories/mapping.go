package repositories

import (
	"fmt"
	"sort"

	"tubemap/internal/models"
)

func asString(v any, field string) (string, error) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("field %s: expected non-empty string, got %T", field, v)
	}
	return s, nil
}

func asInt(v any, field string) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("field %s: expected integer, got %v", field, v)
}

func stationFromValues(id, name, zones any) (*models.Station, error) {
	sid, err := asString(id, "id")
	if err != nil {
		return nil, err
	}
	sname, err := asString(name, "name")
	if err != nil {
		return nil, fmt.Errorf("station %s: %w", sid, err)
	}

	var parsed []int
	if list, ok := zones.([]any); ok {
		for _, z := range list {
			zone, err := asInt(z, "zones")
			if err != nil {
				return nil, fmt.Errorf("station %s: %w", sid, err)
			}
			parsed = append(parsed, zone)
		}
	}
	return models.NewStation(sid, sname, parsed...), nil
}

func lineFromValues(id, name any) (*models.Line, error) {
	lid, err := asString(id, "id")
	if err != nil {
		return nil, err
	}
	lname, err := asString(name, "name")
	if err != nil {
		return nil, fmt.Errorf("line %s: %w", lid, err)
	}
	return models.NewLine(lid, lname), nil
}

func connectionFromValues(network *models.Network, station1, station2, line, minutes any) (*models.Connection, error) {
	aID, err := asString(station1, "station1")
	if err != nil {
		return nil, err
	}
	bID, err := asString(station2, "station2")
	if err != nil {
		return nil, err
	}
	lineID, err := asString(line, "line")
	if err != nil {
		return nil, err
	}
	t, err := asInt(minutes, "time")
	if err != nil {
		return nil, err
	}

	a, b, l := network.Station(aID), network.Station(bID), network.Line(lineID)
	switch {
	case a == nil || b == nil:
		return nil, fmt.Errorf("connection %s-%s: unknown station", aID, bID)
	case l == nil:
		return nil, fmt.Errorf("connection %s-%s: unknown line %s", aID, bID, lineID)
	case a == b:
		return nil, fmt.Errorf("connection %s-%s: links a station to itself", aID, bID)
	case t <= 0:
		return nil, fmt.Errorf("connection %s-%s: time must be positive", aID, bID)
	}
	return models.NewConnection(a, b, l, t), nil
}

// saveParams flattens a network into Cypher parameters. Values are plain
// []any and map[string]any so the driver can encode them without reflection.
func saveParams(network *models.Network) map[string]any {
	stations := make([]any, 0, len(network.Stations))
	for seq, id := range network.StationIDs() {
		s := network.Stations[id]
		zones := make([]any, len(s.Zones))
		for i, z := range s.Zones {
			zones[i] = int64(z)
		}
		stations = append(stations, map[string]any{
			"id": s.ID, "name": s.Name, "zones": zones, "seq": int64(seq),
		})
	}

	lineIDs := make([]string, 0, len(network.Lines))
	for id := range network.Lines {
		lineIDs = append(lineIDs, id)
	}
	sort.Strings(lineIDs)
	lines := make([]any, 0, len(lineIDs))
	for _, id := range lineIDs {
		lines = append(lines, map[string]any{"id": id, "name": network.Lines[id].Name})
	}

	connections := make([]any, 0, len(network.Connections))
	for seq, c := range network.Connections {
		if c == nil || c.Stations[0] == nil || c.Stations[1] == nil || c.Line == nil {
			continue
		}
		connections = append(connections, map[string]any{
			"station1": c.Stations[0].ID,
			"station2": c.Stations[1].ID,
			"line":     c.Line.ID,
			"time":     int64(c.Time),
			"seq":      int64(seq),
		})
	}

	return map[string]any{
		"stations":    stations,
		"lines":       lines,
		"connections": connections,
	}
}
