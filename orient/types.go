// Package orient: types, sentinel errors, and options for edge
// orientation.
package orient

import (
	"errors"
	"fmt"
)

// Sentinel errors for orientation.
var (
	// ErrNoPairs is returned when Orient is invoked with no node pairs.
	ErrNoPairs = errors.New("orient: no node pairs")

	// ErrUnknownVariable is returned when a node pair references a
	// variable absent from the skeleton table.
	ErrUnknownVariable = errors.New("orient: unknown variable")

	// ErrUnknownCollider is returned when the collider is not among the
	// variables referenced by the node pairs.
	ErrUnknownCollider = errors.New("orient: collider not referenced by node pairs")

	// ErrConflictingOrientation is returned by Merge when two tables
	// disagree on an edge's direction (X→Y in one, Y→X in another).
	ErrConflictingOrientation = errors.New("orient: conflicting orientation")

	// ErrNilTable is returned by Merge when a nil table is supplied.
	ErrNilTable = errors.New("orient: nil table")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("orient: invalid option supplied")
)

// DirArrow is the direction marker carried by every finalized edge.
const DirArrow = "->"

// Edge is one directed causal edge, From → To.
type Edge struct {
	From string
	To   string
	Dir  string // always DirArrow after finalization
}

// Table is an ordered, deduplicated collection of directed edges, densely
// indexed by slice position.
type Table struct {
	Edges []Edge
}

// Tuples materializes the (from, to) view of the table for downstream
// consumption, in table order.
func (t *Table) Tuples() [][2]string {
	out := make([][2]string, len(t.Edges))
	for i, e := range t.Edges {
		out[i] = [2]string{e.From, e.To}
	}

	return out
}

// Len returns the number of edges in the table.
func (t *Table) Len() int { return len(t.Edges) }

// Has reports whether the table contains the edge from → to.
func (t *Table) Has(from, to string) bool {
	for _, e := range t.Edges {
		if e.From == from && e.To == to {
			return true
		}
	}

	return false
}

// hasFrom reports whether any edge uses v as its source endpoint.
func (t *Table) hasFrom(v string) bool {
	for _, e := range t.Edges {
		if e.From == v {
			return true
		}
	}

	return false
}

// Option configures Orient via functional arguments. An invalid Option
// is recorded internally and surfaced as ErrOptionViolation when Orient
// is invoked.
type Option func(*Options)

// Options holds the tunable parameters of an orientation pass.
type Options struct {
	// Alpha is the independence threshold consulted when reading the
	// skeleton table; it should match the threshold the table was built
	// with.
	Alpha float64

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with the default threshold 0.05.
func DefaultOptions() Options {
	return Options{Alpha: 0.05}
}

// WithAlpha overrides the independence threshold; a must lie strictly
// between 0 and 1, otherwise ErrOptionViolation.
func WithAlpha(a float64) Option {
	return func(o *Options) {
		if a <= 0 || a >= 1 {
			o.err = fmt.Errorf("%w: alpha must be in (0,1), got %g", ErrOptionViolation, a)

			return
		}
		o.Alpha = a
	}
}
