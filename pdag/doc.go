// Package pdag holds the discovery result as a partially directed
// graph: undirected links for skeleton edges whose direction is still
// unknown, arrows for edges the collider rule oriented.
//
// Build one with FromSkeleton, then fold in orientation tables with
// ApplyCausal; an arrow consumes the matching undirected link.
// Antiparallel arrows are rejected at insertion (ErrConflictingEdge),
// and HasDirectedCycle validates the stronger global property that the
// oriented portion is acyclic, useful after merging orientations from
// several colliders, where per-call conflict resolution cannot see
// cross-call cycles.
//
// The graph is safe for concurrent use and every accessor returns
// sorted copies, so downstream consumption is deterministic.
package pdag
