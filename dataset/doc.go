// SPDX-License-Identifier: MIT

// Package dataset holds the tabular continuous data that conditional
// independence testing runs against: an ordered collection of named
// float64 columns of equal length, where rows are independent
// observations.
//
// What
//
//   - Dataset: immutable after construction; column order is the order
//     supplied to New and is preserved by every accessor.
//   - New(names, cols): fail-fast validation (unique non-empty names,
//     equal column lengths, at least one variable and one observation).
//   - Column/Vars return defensive copies; callers can never corrupt a
//     Dataset through a returned slice.
//   - Matrix() bridges into the matrix package (rows×variables Dense)
//     for covariance-based computations.
//
// Why
//
//	Skeleton discovery and CI testing are driven entirely by variable
//	names. Centralizing the name→column mapping (and its validation)
//	here means every downstream package can fail fast on an unknown
//	variable reference instead of deep inside a numeric routine.
//
// Determinism
//
//	No maps are ever iterated for output. Vars() reflects construction
//	order; Matrix() lays columns out in that same order. Two Datasets
//	built from the same inputs are indistinguishable.
//
// Non-goals
//
//	File formats, CSV parsing, and missing-value imputation belong to
//	wrapper layers. NaN/Inf values are accepted at construction and
//	surface later as citest.ErrNotComputable when they poison a test.
package dataset
