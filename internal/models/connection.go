package models

import "fmt"

// Connection links two distinct stations on a line. The pair is unordered:
// Stations[0] and Stations[1] carry no direction. Time is in minutes.
type Connection struct {
	Stations [2]*Station
	Line     *Line
	Time     int
}

func NewConnection(a, b *Station, line *Line, minutes int) *Connection {
	return &Connection{Stations: [2]*Station{a, b}, Line: line, Time: minutes}
}

func (c *Connection) Contains(s *Station) bool {
	return c.Stations[0] == s || c.Stations[1] == s
}

// Other returns the station at the opposite end from s, or nil when s is not
// part of the connection.
func (c *Connection) Other(s *Station) *Station {
	switch s {
	case c.Stations[0]:
		return c.Stations[1]
	case c.Stations[1]:
		return c.Stations[0]
	}
	return nil
}

// Links reports whether the connection joins exactly a and b, in either order.
func (c *Connection) Links(a, b *Station) bool {
	return c.Stations[0] == a && c.Stations[1] == b ||
		c.Stations[0] == b && c.Stations[1] == a
}

func (c *Connection) String() string {
	var a, b, line string
	if c.Stations[0] != nil {
		a = c.Stations[0].Name
	}
	if c.Stations[1] != nil {
		b = c.Stations[1].Name
	}
	if c.Line != nil {
		line = c.Line.Name
	}
	return fmt.Sprintf("Connection(%s<->%s, %s, %d)", a, b, line, c.Time)
}
