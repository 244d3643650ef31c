// Package pc is a constraint-based causal discovery library for
// continuous data: it infers which variable pairs are plausibly causally
// connected (the skeleton) and partially orients those connections with
// the collider rule: the classical PC-algorithm family.
//
// The pipeline reads left to right:
//
//	dataset → citest → skeleton → orient → pdag
//
//   - dataset/  holds one immutable table of named continuous columns.
//   - matrix/   (+ matrix/ops) is the dense numeric kernel: covariance,
//     LU, inversion: everything the test statistic needs.
//   - citest/   is the conditional-independence oracle: a Gaussian
//     partial-correlation test returning a p-value per (x, y | given).
//   - skeleton/ drives the oracle over every candidate edge and every
//     conditioning subset, recording every test in an audit table and
//     removing edges that ever read as independent.
//   - orient/   applies the collider (v-structure) rule to the audit
//     table, one collider per call, with ordered conflict resolution.
//   - pdag/     is the result object: undirected links plus oriented
//     arrows, with conflict and cycle checking.
//   - simulate/ samples datasets from known structures for tests and
//     benchmarks.
//
// Sketch:
//
//	ds, _ := simulate.Collider(500, 42)
//	oracle, _ := citest.New(ds)
//	vars := ds.Vars()
//	res, _ := skeleton.Build(vars, skeleton.AllPairs(vars), oracle)
//	edges, _ := orient.Orient(res.Table, skeleton.AllPairs(vars), "C")
//	g, _ := pdag.FromSkeleton(res)
//	_ = g.ApplyCausal(edges)
//
// Everything is deterministic: fixed loop orders, sorted accessors,
// seeded simulation, and a pure oracle make identical inputs produce
// identical audit tables and identical graphs, run after run.
//
//	go get github.com/causalgo/pc
package pc
