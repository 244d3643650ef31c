// Package pdag: sentinel error set.
package pdag

import "errors"

var (
	// ErrUnknownVertex is returned when an edge references a vertex not
	// present in the graph.
	ErrUnknownVertex = errors.New("pdag: unknown vertex")

	// ErrEmptyVertexID is returned when a vertex name is the empty string.
	ErrEmptyVertexID = errors.New("pdag: empty vertex name")

	// ErrSelfLoop is returned when an edge would connect a vertex to
	// itself.
	ErrSelfLoop = errors.New("pdag: self-loop not allowed")

	// ErrDuplicateEdge is returned when the requested edge (directed or
	// undirected) already connects the two vertices.
	ErrDuplicateEdge = errors.New("pdag: edge already present")

	// ErrConflictingEdge is returned when a directed edge would
	// contradict an existing arrow between the same vertices.
	ErrConflictingEdge = errors.New("pdag: conflicting edge direction")

	// ErrNilResult is returned by FromSkeleton and ApplyCausal when the
	// input is nil.
	ErrNilResult = errors.New("pdag: nil input")
)
