// SPDX-License-Identifier: MIT
// Package dataset: Dataset construction and accessors.
//
// Purpose:
//   - Own the name→column mapping for one table of continuous observations.
//   - Validate shape once, at the boundary, so numeric code never has to.
//   - Keep storage private and hand out copies; a Dataset never mutates.
//
// Complexity quicksheet:
//   - New: O(v·n) copy; Vars/Column: O(v)/O(n) copy; Has/Len: O(1);
//     Matrix: O(v·n).

package dataset

import (
	"fmt"

	"github.com/causalgo/pc/matrix"
)

// Dataset is an immutable table of named continuous columns.
// Rows are independent observations; column order is construction order.
type Dataset struct {
	names []string       // variable names in supplied order
	index map[string]int // name → position in names/cols
	cols  [][]float64    // private column storage, cols[i] ↔ names[i]
	n     int            // observations per column (> 0)
}

// New builds a Dataset from parallel name and column slices.
// Stage 1 (Validate): non-empty unique names, len(cols)==len(names),
// equal column lengths, at least one observation.
// Stage 2 (Copy): deep-copy every column so later caller mutation of the
// inputs cannot reach the Dataset.
// Stage 3 (Index): build the name→position map used by Has/Column.
//
// Errors: ErrNoVariables, ErrEmptyName, ErrDuplicateVariable,
// ErrRaggedColumns, ErrNoObservations.
func New(names []string, cols [][]float64) (*Dataset, error) {
	// Stage 1 (Validate): shape of the outer slices.
	if len(names) == 0 {
		return nil, ErrNoVariables
	}
	if len(cols) != len(names) {
		return nil, fmt.Errorf("New: %d names vs %d columns: %w", len(names), len(cols), ErrRaggedColumns)
	}

	// Stage 1 (Validate): names are non-empty and unique.
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("New: column %d: %w", i, ErrEmptyName)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("New: %q: %w", name, ErrDuplicateVariable)
		}
		index[name] = i
	}

	// Stage 1 (Validate): every column has the same positive length.
	n := len(cols[0])
	if n == 0 {
		return nil, ErrNoObservations
	}
	for i, col := range cols {
		if len(col) != n {
			return nil, fmt.Errorf("New: column %q has %d rows, want %d: %w", names[i], len(col), n, ErrRaggedColumns)
		}
	}

	// Stage 2 (Copy): private snapshots of names and columns.
	ds := &Dataset{
		names: append([]string(nil), names...),
		index: index,
		cols:  make([][]float64, len(cols)),
		n:     n,
	}
	for i, col := range cols {
		ds.cols[i] = append([]float64(nil), col...)
	}

	return ds, nil
}

// Vars returns the variable names in construction order (copy).
func (d *Dataset) Vars() []string {
	return append([]string(nil), d.names...)
}

// NumVars returns the number of variables (columns).
func (d *Dataset) NumVars() int { return len(d.names) }

// Len returns the number of observations (rows).
func (d *Dataset) Len() int { return d.n }

// Has reports whether name is a variable of this Dataset.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns a copy of the named column.
// Returns ErrUnknownVariable when name is not present.
func (d *Dataset) Column(name string) ([]float64, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("Column(%q): %w", name, ErrUnknownVariable)
	}

	return append([]float64(nil), d.cols[i]...), nil
}

// Matrix materializes the Dataset as a rows×variables Dense matrix,
// columns laid out in construction order. The result is independent
// storage; mutating it does not affect the Dataset.
func (d *Dataset) Matrix() (*matrix.Dense, error) {
	m, err := matrix.NewDense(d.n, len(d.names))
	if err != nil {
		return nil, fmt.Errorf("Matrix: %w", err)
	}
	// Deterministic column-major fill: column j, then row i.
	var i, j int
	for j = 0; j < len(d.cols); j++ {
		col := d.cols[j]
		for i = 0; i < d.n; i++ {
			_ = m.Set(i, j, col[i]) // indices are in range by construction
		}
	}

	return m, nil
}
