// repositories/network_repo.go
package repositories

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"tubemap/internal/logging"
	"tubemap/internal/models"
)

// NetworkRepository stores a network as (:Station) and (:Line) nodes joined by
// [:CONNECTS {line, time}] relationships. A seq property on nodes and
// relationships preserves network order.
type NetworkRepository struct {
	Driver neo4j.Driver
	logger *slog.Logger
}

func NewNetworkRepository(driver neo4j.Driver, logger *slog.Logger) *NetworkRepository {
	return &NetworkRepository{Driver: driver, logger: logging.OrDefault(logger)}
}

const (
	stationsQuery = `
	MATCH (s:Station)
	RETURN s.id AS id, s.name AS name, s.zones AS zones
	ORDER BY s.seq, s.id
	`
	linesQuery = `
	MATCH (l:Line)
	RETURN l.id AS id, l.name AS name
	`
	connectionsQuery = `
	MATCH (a:Station)-[r:CONNECTS]->(b:Station)
	RETURN a.id AS station1, b.id AS station2, r.line AS line, r.time AS time
	ORDER BY r.seq
	`
)

// LoadNetwork reads the whole network. Connections whose stations or line are
// missing are skipped and logged.
func (r *NetworkRepository) LoadNetwork(ctx context.Context) (network *models.Network, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session := r.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer logging.HandleDeferredError(&err, session.Close, r.logger, "close_read_session")

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		network := models.NewNetwork()

		stations, err := tx.Run(stationsQuery, nil)
		if err != nil {
			return nil, fmt.Errorf("error running stations query: %w", err)
		}
		for stations.Next() {
			record := stations.Record()
			id, _ := record.Get("id")
			name, _ := record.Get("name")
			zones, _ := record.Get("zones")
			station, err := stationFromValues(id, name, zones)
			if err != nil {
				return nil, err
			}
			network.AddStation(station)
		}
		if err := stations.Err(); err != nil {
			return nil, err
		}

		lines, err := tx.Run(linesQuery, nil)
		if err != nil {
			return nil, fmt.Errorf("error running lines query: %w", err)
		}
		for lines.Next() {
			record := lines.Record()
			id, _ := record.Get("id")
			name, _ := record.Get("name")
			line, err := lineFromValues(id, name)
			if err != nil {
				return nil, err
			}
			network.AddLine(line)
		}
		if err := lines.Err(); err != nil {
			return nil, err
		}

		connections, err := tx.Run(connectionsQuery, nil)
		if err != nil {
			return nil, fmt.Errorf("error running connections query: %w", err)
		}
		for connections.Next() {
			record := connections.Record()
			station1, _ := record.Get("station1")
			station2, _ := record.Get("station2")
			line, _ := record.Get("line")
			minutes, _ := record.Get("time")
			conn, err := connectionFromValues(network, station1, station2, line, minutes)
			if err != nil {
				r.logger.Warn("skipping stored connection", slog.String("error", err.Error()))
				continue
			}
			network.AddConnection(conn)
		}
		if err := connections.Err(); err != nil {
			return nil, err
		}

		return network, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error loading network: %w", err)
	}

	return result.(*models.Network), nil
}

// SaveNetwork replaces the stored connections and merges stations and lines.
func (r *NetworkRepository) SaveNetwork(ctx context.Context, network *models.Network) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if network == nil {
		return fmt.Errorf("save nil network")
	}

	params := saveParams(network)

	session := r.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer logging.HandleDeferredError(&err, session.Close, r.logger, "close_write_session")

	_, err = session.WriteTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		statements := []string{
			`MATCH ()-[r:CONNECTS]->() DELETE r`,
			`UNWIND $stations AS s
			MERGE (n:Station {id: s.id})
			SET n.name = s.name, n.zones = s.zones, n.seq = s.seq`,
			`UNWIND $lines AS l
			MERGE (n:Line {id: l.id})
			SET n.name = l.name`,
			`UNWIND $connections AS c
			MATCH (a:Station {id: c.station1}), (b:Station {id: c.station2})
			CREATE (a)-[:CONNECTS {line: c.line, time: c.time, seq: c.seq}]->(b)`,
		}
		for _, statement := range statements {
			if _, err := tx.Run(statement, params); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("error saving network: %w", err)
	}

	logging.LogOperation(r.logger, "network_saved",
		slog.Int("stations", len(network.Stations)),
		slog.Int("lines", len(network.Lines)),
		slog.Int("connections", len(network.Connections)))
	return nil
}
