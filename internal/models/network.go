package models

import "sort"

// Network is an in-memory snapshot of stations, lines and connections.
// Station insertion order is remembered so that name lookups resolve
// duplicates the same way on every run.
type Network struct {
	Stations    map[string]*Station
	Lines       map[string]*Line
	Connections []*Connection

	order []string
}

func NewNetwork() *Network {
	return &Network{
		Stations: make(map[string]*Station),
		Lines:    make(map[string]*Line),
	}
}

// AddStation inserts or replaces a station. Replacing keeps the original
// position, and connections to the old station are rebound to the new one.
func (n *Network) AddStation(s *Station) {
	if s == nil {
		return
	}
	old, exists := n.Stations[s.ID]
	if !exists {
		n.order = append(n.order, s.ID)
	}
	n.Stations[s.ID] = s
	if old != nil && old != s {
		n.rebind(func(c *Connection) bool { return c.Contains(old) }, func(c *Connection) {
			for i, end := range c.Stations {
				if end == old {
					c.Stations[i] = s
				}
			}
		})
	}
}

// AddLine inserts or replaces a line. Connections on the old line move to the new one.
func (n *Network) AddLine(l *Line) {
	if l == nil {
		return
	}
	old := n.Lines[l.ID]
	n.Lines[l.ID] = l
	if old != nil && old != l {
		n.rebind(func(c *Connection) bool { return c.Line == old }, func(c *Connection) { c.Line = l })
	}
}

// rebind replaces every matching connection with an updated copy. The
// originals may still be referenced by clones and neighbour graphs.
func (n *Network) rebind(match func(*Connection) bool, update func(*Connection)) {
	for i, c := range n.Connections {
		if c == nil || !match(c) {
			continue
		}
		rebound := *c
		update(&rebound)
		n.Connections[i] = &rebound
	}
}

func (n *Network) AddConnection(c *Connection) {
	n.Connections = append(n.Connections, c)
}

func (n *Network) Station(id string) *Station {
	return n.Stations[id]
}

func (n *Network) Line(id string) *Line {
	return n.Lines[id]
}

// StationIDs returns station IDs in insertion order. Stations added directly to
// the map without AddStation follow, sorted by ID.
func (n *Network) StationIDs() []string {
	ids := make([]string, 0, len(n.Stations))
	listed := make(map[string]bool, len(n.order))
	for _, id := range n.order {
		if _, ok := n.Stations[id]; ok && !listed[id] {
			listed[id] = true
			ids = append(ids, id)
		}
	}
	var extra []string
	for id := range n.Stations {
		if !listed[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(ids, extra...)
}

// Clone returns a copy whose maps and slices can be modified without touching n.
// Entities are shared.
func (n *Network) Clone() *Network {
	out := NewNetwork()
	out.order = n.StationIDs()
	for id, station := range n.Stations {
		out.Stations[id] = station
	}
	for id, l := range n.Lines {
		out.Lines[id] = l
	}
	out.Connections = append([]*Connection(nil), n.Connections...)
	return out
}
