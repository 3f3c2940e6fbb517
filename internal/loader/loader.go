// Package loader imports a transit network from a JSON file.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	"tubemap/internal/logging"
	"tubemap/internal/models"
)

var (
	// ErrSourceUnavailable is returned when the file cannot be read.
	ErrSourceUnavailable = errors.New("network source unavailable")

	// ErrMalformedSource is returned when the file is not a network document.
	ErrMalformedSource = errors.New("malformed network source")
)

// Summary counts what an import added and what it skipped.
type Summary struct {
	Stations    int `json:"stations"`
	Lines       int `json:"lines"`
	Connections int `json:"connections"`
	Skipped     int `json:"skipped"`
}

// Importer reads network files. Invalid records are skipped and logged; a file
// that cannot be read or decoded leaves the target network untouched.
type Importer struct {
	logger   *slog.Logger
	validate *validator.Validate
}

func NewImporter(logger *slog.Logger) *Importer {
	return &Importer{logger: logging.OrDefault(logger), validate: newValidator()}
}

// Import merges the file at path into network. A station or line the file
// redefines replaces the existing one, and connections already in the network
// are rebound to the replacement.
func (im *Importer) Import(network *models.Network, path string) (Summary, error) {
	if network == nil {
		return Summary{}, errors.New("import into nil network")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Summary{}, fmt.Errorf("%w: %s: %w", ErrMalformedSource, path, err)
	}

	staged := network.Clone()
	summary := im.apply(staged, doc)
	*network = *staged

	logging.LogOperation(im.logger, "network_imported",
		slog.String("path", path),
		slog.Int("stations", summary.Stations),
		slog.Int("lines", summary.Lines),
		slog.Int("connections", summary.Connections),
		slog.Int("skipped", summary.Skipped))
	return summary, nil
}

// LoadFile imports path into a new network.
func (im *Importer) LoadFile(path string) (*models.Network, error) {
	network := models.NewNetwork()
	if _, err := im.Import(network, path); err != nil {
		return nil, err
	}
	return network, nil
}

func (im *Importer) apply(network *models.Network, doc document) Summary {
	var summary Summary

	for i, rec := range doc.Stations {
		if err := im.validate.Struct(rec); err != nil {
			im.skip(&summary, "station", i, err)
			continue
		}
		zones, _ := models.ParseZone(string(rec.Zone))
		network.AddStation(models.NewStation(string(rec.ID), rec.Name, zones...))
		summary.Stations++
	}

	for i, rec := range doc.Lines {
		if err := im.validate.Struct(rec); err != nil {
			im.skip(&summary, "line", i, err)
			continue
		}
		network.AddLine(models.NewLine(string(rec.ID), rec.Name))
		summary.Lines++
	}

	for i, rec := range doc.Connections {
		if err := im.validate.Struct(rec); err != nil {
			im.skip(&summary, "connection", i, err)
			continue
		}
		a := network.Station(string(rec.Station1))
		b := network.Station(string(rec.Station2))
		line := network.Line(string(rec.Line))
		if a == nil || b == nil || line == nil {
			im.skip(&summary, "connection", i, fmt.Errorf("unknown reference station1=%s station2=%s line=%s",
				rec.Station1, rec.Station2, rec.Line))
			continue
		}
		minutes, _ := parseMinutes(string(rec.Time))
		network.AddConnection(models.NewConnection(a, b, line, minutes))
		summary.Connections++
	}

	return summary
}

func (im *Importer) skip(summary *Summary, kind string, index int, err error) {
	summary.Skipped++
	im.logger.Warn("skipping invalid record",
		slog.String("kind", kind),
		slog.Int("index", index),
		slog.String("error", err.Error()))
}

// FileSource loads a network from a JSON file on every call.
type FileSource struct {
	Path     string
	Importer *Importer
}

func (fs FileSource) LoadNetwork(ctx context.Context) (*models.Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	importer := fs.Importer
	if importer == nil {
		importer = NewImporter(nil)
	}
	return importer.LoadFile(fs.Path)
}
