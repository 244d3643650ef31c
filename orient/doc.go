// Package orient assigns causal directions to skeleton edges using the
// collider (v-structure) rule.
//
// A collider A→C←B is detectable from observational data alone: A and B
// are independent until C is conditioned on, at which point they become
// dependent. Orient reads that signature straight off the skeleton audit
// table (an independence record whose conditioning set excludes the
// collider) and points both pair members at the collider; pairs without
// the signature get the reverse orientation, away from it.
//
// Each Orient call is scoped to ONE collider variable. The canonical
// usage for an unshielded triple A–C–B is to pass every pair of the
// triple with collider C:
//
//	edges, err := orient.Orient(res.Table,
//	    []skeleton.Pair{{X: "A", Y: "B"}, {X: "A", Y: "C"}, {X: "B", Y: "C"}},
//	    "C")
//
// The v-structure trigger lives on the records of the unshielded pair
// (A, B); the (A, C) and (B, C) pairs contribute the candidate edges
// that the conflict-resolution pass then reconciles, inward assignments
// taking precedence over outward ones and earlier pairs winning ties.
// The order of the pairs is therefore significant and belongs to the
// caller.
//
// Results from multiple colliders compose via Merge, which rejects
// contradictory directions rather than guessing a priority across calls.
package orient
