// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra kernel used by the
// conditional-independence layer: a row-major Dense matrix with safe
// accessors, the canonical kernels (Transpose, Mul, Scale), submatrix
// extraction, and column statistics (centering, covariance, correlation).
//
// Determinism doctrine
//
//	Every loop in this package runs in a fixed i→j order, no map is ever
//	iterated, and no randomness exists. Identical inputs produce
//	bit-identical outputs across runs and platforms, which the audit-table
//	reproducibility of the skeleton layer depends on.
//
// Safety
//
//	Public indexers (At/Set) return ErrOutOfRange instead of panicking.
//	All validation errors are package sentinels checked with errors.Is;
//	wrapping only adds context via %w.
//
// Complexity quicksheet
//
//   - NewDense: O(r·c) zero-init; At/Set: O(1); Clone/Induced: O(size).
//   - Mul: O(r·k·c); Transpose/Scale: O(r·c).
//   - Covariance/Correlation: O(r·c²).
//
// AI-Hints:
//   - Prefer *Dense throughout; the kernels take the flat fast path and
//     fall back to At/Set only for foreign Matrix implementations.
//   - Use Dense.Induced to pull the submatrix for a conditioning set out
//     of a precomputed covariance matrix instead of recomputing it.
package matrix
