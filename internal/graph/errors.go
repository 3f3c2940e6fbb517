// Package graph builds the neighbour graph of a transit network: for every
// station, the stations it is directly linked to and the connections that
// link them.
package graph

import "errors"

var (
	// ErrNilNetwork is reported when there is no network, or no station map, to build from.
	ErrNilNetwork = errors.New("network is nil")

	// ErrMalformedStation is reported when the station map holds a nil station or
	// files a station under a key other than its ID.
	ErrMalformedStation = errors.New("malformed station")

	// ErrMalformedConnection is reported when a connection has a missing endpoint,
	// links a station to itself, or references a station absent from the network.
	ErrMalformedConnection = errors.New("malformed connection")
)
