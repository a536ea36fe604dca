package storage

import "errors"

var (
	// ErrNodeNotFound is returned when a node id does not resolve.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound is returned when an edge triple does not resolve.
	ErrEdgeNotFound = errors.New("edge not found")
)
