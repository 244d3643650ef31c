// Package citest: sentinel error set.
package citest

import "errors"

var (
	// ErrNilDataset is returned by New when the dataset is nil.
	ErrNilDataset = errors.New("citest: nil dataset")

	// ErrTooFewObservations is returned by New when the dataset has
	// fewer than three rows; no test is computable at that size.
	ErrTooFewObservations = errors.New("citest: too few observations")

	// ErrUnknownVariable is returned by PValue when x, y or a
	// conditioning variable is not present in the bound dataset.
	ErrUnknownVariable = errors.New("citest: unknown variable")

	// ErrSameVariable is returned by PValue when x == y.
	ErrSameVariable = errors.New("citest: x and y are the same variable")

	// ErrConditionerOverlap is returned by PValue when the conditioning
	// set contains x or y.
	ErrConditionerOverlap = errors.New("citest: conditioning set contains a tested variable")

	// ErrDuplicateConditioner is returned by PValue when the conditioning
	// set lists the same variable twice.
	ErrDuplicateConditioner = errors.New("citest: duplicate conditioning variable")

	// ErrNotComputable is returned by PValue when the test cannot produce
	// a p-value for this (x, y, given) combination: not enough degrees of
	// freedom, or a singular / ill-conditioned covariance submatrix
	// (e.g. perfectly collinear conditioning variables). It is never
	// converted to a default p-value; the caller decides how to treat an
	// inconclusive test.
	ErrNotComputable = errors.New("citest: test not computable")
)
