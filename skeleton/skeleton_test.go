package skeleton_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causalgo/pc/skeleton"
)

// fakeOracle serves scripted p-values keyed by the canonical form of
// (x, y, given); pairs and conditioning sets match in any order. Lookups
// with no script entry return pDefault. Keys listed in fail return
// errFake instead of a p-value.
type fakeOracle struct {
	ps   map[string]float64
	fail map[string]bool
}

var errFake = errors.New("fake oracle failure")

const pDefault = 0.01

func testKey(x, y string, given []string) string {
	if x > y {
		x, y = y, x
	}
	g := append([]string(nil), given...)
	sort.Strings(g)

	return x + "|" + y + "|" + strings.Join(g, ",")
}

func (f *fakeOracle) PValue(_ context.Context, x, y string, given []string) (float64, error) {
	k := testKey(x, y, given)
	if f.fail[k] {
		return 0, errFake
	}
	if p, ok := f.ps[k]; ok {
		return p, nil
	}

	return pDefault, nil
}

// scriptedCollider returns the oracle for the textbook v-structure
// A→C←B: A and B independent marginally, all other tests dependent.
func scriptedCollider() *fakeOracle {
	return &fakeOracle{ps: map[string]float64{
		testKey("A", "B", nil): 0.9,
	}}
}

// TestBuild_Completeness: each candidate edge gets 2^(v-2) records, one
// per conditioning subset.
func TestBuild_Completeness(t *testing.T) {
	vars := []string{"A", "B", "C", "D"}
	res, err := skeleton.Build(vars, skeleton.AllPairs(vars), &fakeOracle{})
	require.NoError(t, err)

	// 6 pairs × 2^2 subsets.
	assert.Len(t, res.Table, 24)
	for _, p := range skeleton.AllPairs(vars) {
		assert.Len(t, res.Table.ForPair(p.X, p.Y), 4, "records for %s-%s", p.X, p.Y)
	}
}

// TestBuild_SubsetOrder pins the enumeration: smallest subsets first,
// lexicographic by variable position within a size, one record each.
func TestBuild_SubsetOrder(t *testing.T) {
	vars := []string{"A", "B", "C", "D"}
	res, err := skeleton.Build(vars, []skeleton.Pair{{X: "A", Y: "B"}}, &fakeOracle{})
	require.NoError(t, err)

	var got [][]string
	for _, r := range res.Table {
		got = append(got, r.Given)
	}
	want := [][]string{{}, {"C"}, {"D"}, {"C", "D"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("subset enumeration mismatch (-want +got):\n%s", diff)
	}
}

// TestBuild_NoEarlyExit: an edge removed by its very first test is still
// tested against every remaining subset.
func TestBuild_NoEarlyExit(t *testing.T) {
	vars := []string{"A", "B", "C", "D"}
	oracle := &fakeOracle{ps: map[string]float64{
		testKey("A", "B", nil): 0.99, // removal triggers immediately
	}}
	res, err := skeleton.Build(vars, []skeleton.Pair{{X: "A", Y: "B"}}, oracle)
	require.NoError(t, err)

	assert.Len(t, res.Table, 4, "all subsets tested despite early removal")
	assert.NotContains(t, res.Surviving, skeleton.Pair{X: "A", Y: "B"})
}

// TestBuild_CandidateAsymmetry: a pair absent from the candidate list is
// never tested and survives in the complete graph by default.
func TestBuild_CandidateAsymmetry(t *testing.T) {
	vars := []string{"A", "B", "C"}
	// Only A-B is tested, and it reads independent everywhere.
	oracle := &fakeOracle{ps: map[string]float64{
		testKey("A", "B", nil):           0.9,
		testKey("A", "B", []string{"C"}): 0.9,
	}}
	res, err := skeleton.Build(vars, []skeleton.Pair{{X: "A", Y: "B"}}, oracle)
	require.NoError(t, err)

	assert.Len(t, res.Table, 2, "only the candidate edge is tested")
	assert.Equal(t,
		[]skeleton.Pair{{X: "A", Y: "C"}, {X: "B", Y: "C"}},
		res.Surviving,
		"untested pairs survive; the tested independent pair is removed")
}

// TestBuild_RemovedFlags: Removed mirrors the surviving set on every
// record of an edge, and survivors match rows flagged false.
func TestBuild_RemovedFlags(t *testing.T) {
	vars := []string{"A", "B", "C"}
	res, err := skeleton.Build(vars, skeleton.AllPairs(vars), scriptedCollider())
	require.NoError(t, err)

	assert.Equal(t,
		[]skeleton.Pair{{X: "A", Y: "C"}, {X: "B", Y: "C"}},
		res.Surviving)

	fromFlags := map[string]bool{} // label → removed
	for _, r := range res.Table {
		fromFlags[r.Label] = r.Removed
	}
	assert.Equal(t, map[string]bool{
		"A - B": true,
		"A - C": false,
		"B - C": false,
	}, fromFlags)
}

// TestBuild_SignificantLabels: distinct labels with at least one p-value
// below alpha, first occurrence retained; the A-B edge qualifies through
// its conditioned test even though it was removed.
func TestBuild_SignificantLabels(t *testing.T) {
	vars := []string{"A", "B", "C"}
	res, err := skeleton.Build(vars, skeleton.AllPairs(vars), scriptedCollider())
	require.NoError(t, err)

	assert.Equal(t, []string{"A - B", "A - C", "B - C"}, res.Significant)
}

// TestBuild_TwoVariables: no other variables means exactly one record
// per edge, with the empty conditioning set.
func TestBuild_TwoVariables(t *testing.T) {
	vars := []string{"X", "Y"}
	res, err := skeleton.Build(vars, skeleton.AllPairs(vars), &fakeOracle{})
	require.NoError(t, err)

	require.Len(t, res.Table, 1)
	assert.Empty(t, res.Table[0].Given)
	assert.Equal(t, "X - Y", res.Table[0].Label)
}

// TestBuild_Validation covers every fail-fast path.
func TestBuild_Validation(t *testing.T) {
	oracle := &fakeOracle{}

	_, err := skeleton.Build(nil, nil, oracle)
	assert.ErrorIs(t, err, skeleton.ErrNoVariables)

	_, err = skeleton.Build([]string{"A", "A"}, nil, oracle)
	assert.ErrorIs(t, err, skeleton.ErrDuplicateVariable)

	_, err = skeleton.Build([]string{"A", "B"}, []skeleton.Pair{{X: "A", Y: "Z"}}, oracle)
	assert.ErrorIs(t, err, skeleton.ErrUnknownVariable)

	_, err = skeleton.Build([]string{"A", "B"}, []skeleton.Pair{{X: "A", Y: "A"}}, oracle)
	assert.ErrorIs(t, err, skeleton.ErrSelfPair)

	_, err = skeleton.Build([]string{"A", "B"}, nil, nil)
	assert.ErrorIs(t, err, skeleton.ErrNilOracle)

	_, err = skeleton.Build([]string{"A", "B"}, nil, oracle, skeleton.WithAlpha(1.5))
	assert.ErrorIs(t, err, skeleton.ErrOptionViolation)

	_, err = skeleton.Build([]string{"A", "B"}, nil, oracle, skeleton.WithWorkers(0))
	assert.ErrorIs(t, err, skeleton.ErrOptionViolation)
}

// TestBuild_NotComputableFlagging: a failing test is recorded with the
// sentinel p-value; it neither removes the edge nor counts significant.
func TestBuild_NotComputableFlagging(t *testing.T) {
	vars := []string{"A", "B", "C"}
	oracle := &fakeOracle{
		ps:   map[string]float64{testKey("A", "B", nil): 0.2},
		fail: map[string]bool{testKey("A", "B", []string{"C"}): true},
	}
	res, err := skeleton.Build(vars, []skeleton.Pair{{X: "A", Y: "B"}}, oracle)
	require.NoError(t, err)

	require.Len(t, res.Table, 2)
	assert.Equal(t, skeleton.PNotComputable, res.Table[1].P)
	assert.NotContains(t, res.Significant, "A - B",
		"an inconclusive test is not significant")
	// Removal came from the first test (0.2 > 0.05), not the failure.
	assert.NotContains(t, res.Surviving, skeleton.Pair{X: "A", Y: "B"})
}

// TestBuild_StrictAbort: WithStrict propagates the first oracle failure.
func TestBuild_StrictAbort(t *testing.T) {
	vars := []string{"A", "B"}
	oracle := &fakeOracle{fail: map[string]bool{testKey("A", "B", nil): true}}

	_, err := skeleton.Build(vars, skeleton.AllPairs(vars), oracle, skeleton.WithStrict())
	assert.ErrorIs(t, err, errFake)
}

// TestBuild_AlphaOverride: with alpha 0.3, a p of 0.2 now reads as
// independence.
func TestBuild_AlphaOverride(t *testing.T) {
	vars := []string{"A", "B"}
	oracle := &fakeOracle{ps: map[string]float64{testKey("A", "B", nil): 0.2}}

	res, err := skeleton.Build(vars, skeleton.AllPairs(vars), oracle, skeleton.WithAlpha(0.3))
	require.NoError(t, err)
	assert.Empty(t, res.Surviving)
	assert.Equal(t, 0.3, res.Alpha)
}

// TestBuild_Cancelled stops the sweep on a cancelled context.
func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	vars := []string{"A", "B", "C"}
	_, err := skeleton.Build(vars, skeleton.AllPairs(vars), &fakeOracle{},
		skeleton.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestBuild_Idempotent: two runs over the same inputs produce identical
// results, table bytes included.
func TestBuild_Idempotent(t *testing.T) {
	vars := []string{"A", "B", "C", "D"}
	oracle := scriptedCollider()

	r1, err := skeleton.Build(vars, skeleton.AllPairs(vars), oracle)
	require.NoError(t, err)
	r2, err := skeleton.Build(vars, skeleton.AllPairs(vars), oracle)
	require.NoError(t, err)

	if diff := cmp.Diff(r1, r2); diff != "" {
		t.Errorf("repeated Build differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, r1.Table.String(), r2.Table.String())
}

// TestBuild_ParallelMatchesSequential: the fan-out path must join into a
// table byte-identical to the sequential sweep.
func TestBuild_ParallelMatchesSequential(t *testing.T) {
	vars := []string{"A", "B", "C", "D", "E"}
	oracle := scriptedCollider()

	seq, err := skeleton.Build(vars, skeleton.AllPairs(vars), oracle)
	require.NoError(t, err)
	par, err := skeleton.Build(vars, skeleton.AllPairs(vars), oracle, skeleton.WithWorkers(4))
	require.NoError(t, err)

	if diff := cmp.Diff(seq, par); diff != "" {
		t.Errorf("parallel build differs from sequential (-seq +par):\n%s", diff)
	}
	assert.Equal(t, seq.Table.String(), par.Table.String())
}

// TestTable_ForPair matches endpoints in either order.
func TestTable_ForPair(t *testing.T) {
	vars := []string{"A", "B", "C"}
	res, err := skeleton.Build(vars, skeleton.AllPairs(vars), &fakeOracle{})
	require.NoError(t, err)

	fwd := res.Table.ForPair("A", "B")
	rev := res.Table.ForPair("B", "A")
	assert.Equal(t, fwd, rev)
	assert.Len(t, fwd, 2)
}

// TestAllPairs enumerates i<j pairs in variable order.
func TestAllPairs(t *testing.T) {
	got := skeleton.AllPairs([]string{"A", "B", "C"})
	want := []skeleton.Pair{{X: "A", Y: "B"}, {X: "A", Y: "C"}, {X: "B", Y: "C"}}
	assert.Equal(t, want, got)

	assert.Empty(t, skeleton.AllPairs([]string{"A"}))
}

// BenchmarkBuild measures the exhaustive sweep on a scripted oracle.
func BenchmarkBuild(b *testing.B) {
	vars := make([]string, 8)
	for i := range vars {
		vars[i] = fmt.Sprintf("V%d", i)
	}
	pairs := skeleton.AllPairs(vars)
	oracle := &fakeOracle{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := skeleton.Build(vars, pairs, oracle); err != nil {
			b.Fatal(err)
		}
	}
}
