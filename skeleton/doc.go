// Package skeleton constructs the undirected skeleton of a causal graph
// by exhaustive conditional-independence testing.
//
// Build takes the variable list, the candidate edges to test, and a
// conditional-independence Oracle. For every candidate edge it queries
// the oracle once per subset of the remaining variables (the full power
// set, smallest conditioning sets first) and records every single test
// in an append-only audit Table. An edge is dropped from the surviving
// set as soon as any test reads as independence (p > alpha), but the
// sweep never short-circuits: downstream orientation logic consults
// specific table rows (the empty-conditioning-set test in particular),
// so the table's exact membership is part of the contract, not just the
// final survivor list.
//
// Two deliberate asymmetries to be aware of:
//
//   - The surviving set starts as the complete graph over the variable
//     list, regardless of the candidates. A pair absent from the
//     candidate list is never tested and therefore never removed; pass
//     AllPairs(vars) when a fully tested skeleton is wanted.
//   - An oracle failure (singular covariance, too few degrees of
//     freedom) does not abort the sweep by default: the record keeps the
//     PNotComputable sentinel and counts neither as independence nor as
//     significance. WithStrict switches to abort-on-first-failure.
//
// The sweep is embarrassingly parallel: every (edge, conditioning-set)
// test is independent. WithWorkers(k) fans the oracle calls out over k
// goroutines and joins results into pre-assigned table slots, so the
// resulting table is byte-identical to a sequential run.
//
// Complexity: O(|candidates| · 2^(v−2)) oracle calls for v variables;
// use WithContext for a deadline when v grows.
package skeleton
