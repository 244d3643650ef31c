// SPDX-License-Identifier: MIT
// Package dataset: sentinel error set.
// Only package-level sentinels live here. Constructors and accessors
// return these (optionally wrapped with %w context); callers branch with
// errors.Is. No function in this package panics on user input.

package dataset

import "errors"

var (
	// ErrNoVariables is returned by New when names is empty.
	ErrNoVariables = errors.New("dataset: no variables")

	// ErrEmptyName is returned by New when a variable name is the empty string.
	ErrEmptyName = errors.New("dataset: empty variable name")

	// ErrDuplicateVariable is returned by New when two columns share a name.
	ErrDuplicateVariable = errors.New("dataset: duplicate variable name")

	// ErrRaggedColumns is returned by New when columns differ in length,
	// or when len(cols) != len(names).
	ErrRaggedColumns = errors.New("dataset: ragged columns")

	// ErrNoObservations is returned by New when columns have zero rows.
	ErrNoObservations = errors.New("dataset: no observations")

	// ErrUnknownVariable is returned when a referenced variable is not
	// present in the Dataset.
	ErrUnknownVariable = errors.New("dataset: unknown variable")
)
