package orient

import (
	"fmt"

	"github.com/causalgo/pc/skeleton"
)

// Orient assigns directions to edges around one collider variable using
// the v-structure rule, then resolves conflicts with a fixed priority.
//
// For each node pair (a, b), in caller order:
//
//  1. Collect the skeleton-table records whose endpoints equal {a, b}
//     in either order.
//  2. Collider condition: if any such record shows independence
//     (p > alpha) under a conditioning set that does NOT contain the
//     collider, then a and b form the v-structure signature (they are
//     dependent only once the collider is known) and both are oriented
//     toward it: a→collider, b→collider.
//  3. Otherwise both edges point away: collider→a, collider→b.
//
// Emitted edges accumulate across pairs, deduplicated by (from, to) with
// first emission order preserved. A record flagged inconclusive
// (skeleton.PNotComputable) never satisfies the collider condition.
//
// The conflict pass then walks the accumulated table in row order and
// drops every collider→t edge whose target t is the source of a
// still-present edge: inward assignments established by the collider
// rule outrank outward ones, and because the walk honors row order,
// pairs processed earlier win ties. The degenerate collider→collider
// row (emitted when a node pair includes the collider itself) always
// drops in this pass.
//
// Finalize: every surviving edge carries the "->" marker and the table
// is densely indexed in surviving order.
//
// Orient is stateless across calls and scoped to a single collider;
// compose multiple colliders with Merge.
//
// Errors: ErrNoPairs, ErrUnknownVariable (pair endpoint absent from the
// skeleton table), ErrUnknownCollider (collider not referenced by any
// pair), ErrOptionViolation. Validation runs before any orientation.
func Orient(table skeleton.Table, pairs []skeleton.Pair, collider string, opts ...Option) (*Table, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// Fail fast: pair endpoints must exist in the table's node universe,
	// and the collider must be referenced by the pairs.
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}
	universe := make(map[string]struct{})
	for _, v := range table.Variables() {
		universe[v] = struct{}{}
	}
	colliderSeen := false
	for _, p := range pairs {
		for _, v := range [2]string{p.X, p.Y} {
			if _, ok := universe[v]; !ok {
				return nil, fmt.Errorf("Orient: %q: %w", v, ErrUnknownVariable)
			}
			if v == collider {
				colliderSeen = true
			}
		}
	}
	if !colliderSeen {
		return nil, fmt.Errorf("Orient: %q: %w", collider, ErrUnknownCollider)
	}

	// Accumulate candidate directed edges pair by pair, deduplicating on
	// (from, to) and preserving first emission order.
	acc := &Table{}
	for _, p := range pairs {
		records := table.ForPair(p.X, p.Y)

		if colliderCondition(records, collider, o.Alpha) {
			appendUnique(acc, p.X, collider)
			appendUnique(acc, p.Y, collider)
		} else {
			appendUnique(acc, collider, p.X)
			appendUnique(acc, collider, p.Y)
		}
	}

	// Conflict pass over the live table state: a dropped row no longer
	// shields later rows, and rows before the cursor have already been
	// settled, so earlier pairs win.
	i := 0
	for i < len(acc.Edges) {
		e := acc.Edges[i]
		if e.From == collider && acc.hasFrom(e.To) {
			acc.Edges = append(acc.Edges[:i], acc.Edges[i+1:]...)

			continue
		}
		i++
	}

	// Finalize: direction markers and dense ordering.
	for i := range acc.Edges {
		acc.Edges[i].Dir = DirArrow
	}

	return acc, nil
}

// colliderCondition reports whether any record shows independence under a
// conditioning set excluding the collider. Inconclusive records (the
// PNotComputable sentinel) cannot trigger it.
func colliderCondition(records skeleton.Table, collider string, alpha float64) bool {
	for _, r := range records {
		if r.P == skeleton.PNotComputable {
			continue
		}
		if r.P > alpha && !r.HasConditioner(collider) {
			return true
		}
	}

	return false
}

// appendUnique adds from→to unless an identical edge is already present.
func appendUnique(t *Table, from, to string) {
	if t.Has(from, to) {
		return
	}
	t.Edges = append(t.Edges, Edge{From: from, To: to})
}

// Merge composes orientation tables produced by separate single-collider
// Orient calls into one deduplicated table, in argument order. It fails
// with ErrConflictingOrientation when any edge X→Y meets its reverse
// Y→X: the single-collider priority policy does not generalize across
// colliders, so a cross-call contradiction is an error for the caller
// to resolve, not a tie to break silently.
//
// Errors: ErrNilTable, ErrConflictingOrientation.
func Merge(tables ...*Table) (*Table, error) {
	out := &Table{}
	for i, t := range tables {
		if t == nil {
			return nil, fmt.Errorf("Merge: table %d: %w", i, ErrNilTable)
		}
		for _, e := range t.Edges {
			if out.Has(e.To, e.From) {
				return nil, fmt.Errorf("Merge: %s %s %s conflicts with %s %s %s: %w",
					e.From, DirArrow, e.To, e.To, DirArrow, e.From, ErrConflictingOrientation)
			}
			appendUnique(out, e.From, e.To)
		}
	}

	for i := range out.Edges {
		out.Edges[i].Dir = DirArrow
	}

	return out, nil
}
