package orient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causalgo/pc/orient"
	"github.com/causalgo/pc/skeleton"
)

// rec builds one audit-table row; test helper.
func rec(n1, n2 string, given []string, p float64) skeleton.Record {
	return skeleton.Record{
		Node1: n1,
		Node2: n2,
		Label: n1 + " - " + n2,
		Given: given,
		P:     p,
	}
}

// colliderTable is the audit table of the textbook v-structure A→C←B:
// A ⟂ B marginally, every other test dependent.
func colliderTable() skeleton.Table {
	return skeleton.Table{
		rec("A", "B", nil, 0.9),
		rec("A", "B", []string{"C"}, 0.01),
		rec("A", "C", nil, 0.01),
		rec("A", "C", []string{"B"}, 0.01),
		rec("B", "C", nil, 0.01),
		rec("B", "C", []string{"A"}, 0.01),
	}
}

// chainTable is the audit table of the chain A→B→C: the endpoints
// separate only when conditioning on B.
func chainTable() skeleton.Table {
	return skeleton.Table{
		rec("A", "B", nil, 0.01),
		rec("A", "B", []string{"C"}, 0.01),
		rec("A", "C", nil, 0.01),
		rec("A", "C", []string{"B"}, 0.9),
		rec("B", "C", nil, 0.01),
		rec("B", "C", []string{"A"}, 0.01),
	}
}

func triple(a, b, c string) []skeleton.Pair {
	return []skeleton.Pair{{X: a, Y: b}, {X: a, Y: c}, {X: b, Y: c}}
}

// TestOrient_Collider: the v-structure signature on the A-B records
// orients both parents into the collider, and only those two edges
// survive conflict resolution.
func TestOrient_Collider(t *testing.T) {
	res, err := orient.Orient(colliderTable(), triple("A", "B", "C"), "C")
	require.NoError(t, err)

	assert.Equal(t, []orient.Edge{
		{From: "A", To: "C", Dir: "->"},
		{From: "B", To: "C", Dir: "->"},
	}, res.Edges)
	assert.Equal(t, [][2]string{{"A", "C"}, {"B", "C"}}, res.Tuples())
}

// TestOrient_ChainNotCollider: for the chain, the only independence
// record conditions ON the middle variable, so the collider condition
// never fires and the reverse branch orients away from it.
func TestOrient_ChainNotCollider(t *testing.T) {
	res, err := orient.Orient(chainTable(),
		[]skeleton.Pair{{X: "A", Y: "C"}, {X: "A", Y: "B"}, {X: "B", Y: "C"}}, "B")
	require.NoError(t, err)

	assert.Equal(t, []orient.Edge{
		{From: "B", To: "A", Dir: "->"},
		{From: "B", To: "C", Dir: "->"},
	}, res.Edges)
}

// TestOrient_PairOrderConsistency: supplying the pairs in a different
// order must still produce a non-contradictory edge set; here the two
// orders agree entirely since inward assignments always outrank the
// outward ones they conflict with.
func TestOrient_PairOrderConsistency(t *testing.T) {
	fwd, err := orient.Orient(colliderTable(), triple("A", "B", "C"), "C")
	require.NoError(t, err)
	rev, err := orient.Orient(colliderTable(),
		[]skeleton.Pair{{X: "B", Y: "C"}, {X: "A", Y: "C"}, {X: "A", Y: "B"}}, "C")
	require.NoError(t, err)

	assert.ElementsMatch(t, fwd.Edges, rev.Edges)
	for _, e := range rev.Edges {
		assert.False(t, rev.Has(e.To, e.From), "no edge may appear in both directions")
	}
}

// TestOrient_InconclusiveNeverTriggers: a PNotComputable record with the
// right shape must not count as the independence signature.
func TestOrient_InconclusiveNeverTriggers(t *testing.T) {
	table := skeleton.Table{
		rec("A", "B", nil, skeleton.PNotComputable),
		rec("A", "B", []string{"C"}, 0.01),
		rec("A", "C", nil, 0.01),
		rec("B", "C", nil, 0.01),
	}

	res, err := orient.Orient(table, triple("A", "B", "C"), "C")
	require.NoError(t, err)

	// Without a trigger every pair falls to the outward branch; the
	// degenerate C→C row drops, the rest stay.
	assert.Equal(t, []orient.Edge{
		{From: "C", To: "A", Dir: "->"},
		{From: "C", To: "B", Dir: "->"},
	}, res.Edges)
}

// TestOrient_AlphaOverride: a p of 0.2 reads as marginal independence
// at the default threshold but not once alpha is raised past it.
func TestOrient_AlphaOverride(t *testing.T) {
	table := skeleton.Table{
		rec("A", "B", nil, 0.2),
		rec("A", "C", nil, 0.01),
		rec("B", "C", nil, 0.01),
	}

	def, err := orient.Orient(table, triple("A", "B", "C"), "C")
	require.NoError(t, err)
	assert.Equal(t, []orient.Edge{
		{From: "A", To: "C", Dir: "->"},
		{From: "B", To: "C", Dir: "->"},
	}, def.Edges, "0.2 exceeds the default threshold, so the pair separates")

	raised, err := orient.Orient(table, triple("A", "B", "C"), "C", orient.WithAlpha(0.3))
	require.NoError(t, err)
	assert.Equal(t, []orient.Edge{
		{From: "C", To: "A", Dir: "->"},
		{From: "C", To: "B", Dir: "->"},
	}, raised.Edges, "0.2 is below alpha 0.3, so the signature never fires")
}

// TestOrient_Validation covers every fail-fast path.
func TestOrient_Validation(t *testing.T) {
	table := colliderTable()

	_, err := orient.Orient(table, nil, "C")
	assert.ErrorIs(t, err, orient.ErrNoPairs)

	_, err = orient.Orient(table, []skeleton.Pair{{X: "A", Y: "Z"}}, "C")
	assert.ErrorIs(t, err, orient.ErrUnknownVariable)

	_, err = orient.Orient(table, []skeleton.Pair{{X: "A", Y: "B"}}, "C")
	assert.ErrorIs(t, err, orient.ErrUnknownCollider,
		"the collider must be referenced by the node pairs")

	_, err = orient.Orient(table, triple("A", "B", "C"), "C", orient.WithAlpha(0))
	assert.ErrorIs(t, err, orient.ErrOptionViolation)
}

// TestMerge_Compose deduplicates across single-collider tables.
func TestMerge_Compose(t *testing.T) {
	t1 := &orient.Table{Edges: []orient.Edge{
		{From: "A", To: "C", Dir: "->"},
		{From: "B", To: "C", Dir: "->"},
	}}
	t2 := &orient.Table{Edges: []orient.Edge{
		{From: "B", To: "C", Dir: "->"}, // duplicate
		{From: "C", To: "D", Dir: "->"},
	}}

	merged, err := orient.Merge(t1, t2)
	require.NoError(t, err)
	assert.Equal(t, []orient.Edge{
		{From: "A", To: "C", Dir: "->"},
		{From: "B", To: "C", Dir: "->"},
		{From: "C", To: "D", Dir: "->"},
	}, merged.Edges)
}

// TestMerge_Conflict rejects antiparallel directions across calls.
func TestMerge_Conflict(t *testing.T) {
	t1 := &orient.Table{Edges: []orient.Edge{{From: "A", To: "B", Dir: "->"}}}
	t2 := &orient.Table{Edges: []orient.Edge{{From: "B", To: "A", Dir: "->"}}}

	_, err := orient.Merge(t1, t2)
	assert.ErrorIs(t, err, orient.ErrConflictingOrientation)

	_, err = orient.Merge(t1, nil)
	assert.ErrorIs(t, err, orient.ErrNilTable)
}
