package models

import (
	"fmt"
	"slices"
)

// Station is a node of the network. Stations are shared by reference between
// the network, the neighbour graph and path results, and are never mutated
// after construction.
type Station struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Zones []int  `json:"zones"`
}

func NewStation(id, name string, zones ...int) *Station {
	return &Station{ID: id, Name: name, Zones: normalizeZones(zones)}
}

func (s *Station) InZone(zone int) bool {
	return slices.Contains(s.Zones, zone)
}

func (s *Station) String() string {
	return fmt.Sprintf("Station(%s, %s, %v)", s.ID, s.Name, s.Zones)
}

// Line is a named service route.
type Line struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewLine(id, name string) *Line {
	return &Line{ID: id, Name: name}
}

func (l *Line) String() string {
	return fmt.Sprintf("Line(%s, %s)", l.ID, l.Name)
}
