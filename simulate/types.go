// Package simulate: sentinel error set.
package simulate

import "errors"

var (
	// ErrEmptySystem is returned by Sample when the system has no
	// equations.
	ErrEmptySystem = errors.New("simulate: empty system")

	// ErrBadSampleSize is returned by Sample when n is not positive.
	ErrBadSampleSize = errors.New("simulate: sample size must be positive")

	// ErrEmptyName is returned when an equation's variable name is the
	// empty string.
	ErrEmptyName = errors.New("simulate: empty variable name")

	// ErrDuplicateVariable is returned when two equations define the
	// same variable.
	ErrDuplicateVariable = errors.New("simulate: duplicate variable")

	// ErrUnknownParent is returned when an equation references a parent
	// that no earlier equation defines.
	ErrUnknownParent = errors.New("simulate: unknown parent")

	// ErrCoefMismatch is returned when an equation's coefficient count
	// differs from its parent count.
	ErrCoefMismatch = errors.New("simulate: coefficient/parent count mismatch")

	// ErrBadNoise is returned when an equation's noise scale is negative.
	ErrBadNoise = errors.New("simulate: negative noise scale")
)
