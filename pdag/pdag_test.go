package pdag_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causalgo/pc/orient"
	"github.com/causalgo/pc/pdag"
	"github.com/causalgo/pc/skeleton"
)

func TestGraph_Vertices(t *testing.T) {
	g := pdag.New("B", "A", "")

	assert.Equal(t, []string{"A", "B"}, g.Vars(), "empty names are ignored at construction")

	require.NoError(t, g.AddVertex("C"))
	require.NoError(t, g.AddVertex("C"), "re-adding a vertex is a no-op")
	assert.Equal(t, []string{"A", "B", "C"}, g.Vars())

	assert.ErrorIs(t, g.AddVertex(""), pdag.ErrEmptyVertexID)
}

func TestGraph_AddLink(t *testing.T) {
	g := pdag.New("A", "B", "C")

	require.NoError(t, g.AddLink("A", "B"))
	assert.True(t, g.HasLink("A", "B"))
	assert.True(t, g.HasLink("B", "A"), "links are symmetric")
	assert.False(t, g.HasLink("A", "C"))

	assert.ErrorIs(t, g.AddLink("A", "B"), pdag.ErrDuplicateEdge)
	assert.ErrorIs(t, g.AddLink("B", "A"), pdag.ErrDuplicateEdge)
	assert.ErrorIs(t, g.AddLink("A", "A"), pdag.ErrSelfLoop)
	assert.ErrorIs(t, g.AddLink("A", "Z"), pdag.ErrUnknownVertex)

	require.NoError(t, g.AddArrow("A", "C"))
	assert.ErrorIs(t, g.AddLink("A", "C"), pdag.ErrDuplicateEdge,
		"an arrow already connects the endpoints")
}

func TestGraph_AddArrow(t *testing.T) {
	g := pdag.New("A", "B", "C")

	require.NoError(t, g.AddArrow("A", "B"))
	assert.True(t, g.HasArrow("A", "B"))
	assert.False(t, g.HasArrow("B", "A"))

	assert.ErrorIs(t, g.AddArrow("A", "B"), pdag.ErrDuplicateEdge)
	assert.ErrorIs(t, g.AddArrow("B", "A"), pdag.ErrConflictingEdge)
	assert.ErrorIs(t, g.AddArrow("A", "A"), pdag.ErrSelfLoop)
	assert.ErrorIs(t, g.AddArrow("Z", "A"), pdag.ErrUnknownVertex)
}

// TestGraph_ArrowConsumesLink: orienting a skeleton link replaces it, so
// the pair does not appear twice in the adjacency structure.
func TestGraph_ArrowConsumesLink(t *testing.T) {
	g := pdag.New("A", "B")
	require.NoError(t, g.AddLink("A", "B"))

	require.NoError(t, g.AddArrow("A", "B"))
	assert.False(t, g.HasLink("A", "B"))
	assert.True(t, g.HasArrow("A", "B"))
	assert.Empty(t, g.Undirected())
}

func TestGraph_Accessors(t *testing.T) {
	g := pdag.New("A", "B", "C", "D")
	require.NoError(t, g.AddLink("C", "D"))
	require.NoError(t, g.AddLink("A", "D"))
	require.NoError(t, g.AddArrow("A", "B"))
	require.NoError(t, g.AddArrow("C", "B"))

	assert.Equal(t, []skeleton.Pair{{X: "A", Y: "D"}, {X: "C", Y: "D"}}, g.Undirected())
	assert.Equal(t, []orient.Edge{
		{From: "A", To: "B", Dir: "->"},
		{From: "C", To: "B", Dir: "->"},
	}, g.Arrows())

	assert.Equal(t, []string{"D"}, g.Neighbors("A"))
	assert.Equal(t, []string{"A", "C"}, g.Neighbors("D"))
	assert.Equal(t, []string{"A", "C"}, g.Parents("B"))
	assert.Empty(t, g.Parents("A"))
	assert.Equal(t, []string{"B"}, g.Children("A"))
	assert.Empty(t, g.Children("B"))
}

func TestFromSkeleton(t *testing.T) {
	res := &skeleton.Result{
		Table: skeleton.Table{
			{Node1: "A", Node2: "B", Label: "A - B", P: 0.9, Removed: true},
			{Node1: "A", Node2: "C", Label: "A - C", P: 0.01},
			{Node1: "B", Node2: "C", Label: "B - C", P: 0.01},
		},
		Surviving: []skeleton.Pair{{X: "A", Y: "C"}, {X: "B", Y: "C"}},
	}

	g, err := pdag.FromSkeleton(res)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, g.Vars())
	assert.True(t, g.HasLink("A", "C"))
	assert.True(t, g.HasLink("B", "C"))
	assert.False(t, g.HasLink("A", "B"), "removed edge does not survive")

	_, err = pdag.FromSkeleton(nil)
	assert.ErrorIs(t, err, pdag.ErrNilResult)
}

// TestApplyCausal drives the full skeleton-then-orient flow into a graph:
// the collider's two links become arrows, nothing stays undirected.
func TestApplyCausal(t *testing.T) {
	res := &skeleton.Result{
		Surviving: []skeleton.Pair{{X: "A", Y: "C"}, {X: "B", Y: "C"}},
	}
	g, err := pdag.FromSkeleton(res)
	require.NoError(t, err)

	causal := &orient.Table{Edges: []orient.Edge{
		{From: "A", To: "C", Dir: "->"},
		{From: "B", To: "C", Dir: "->"},
	}}
	require.NoError(t, g.ApplyCausal(causal))

	assert.Empty(t, g.Undirected())
	assert.Equal(t, []orient.Edge{
		{From: "A", To: "C", Dir: "->"},
		{From: "B", To: "C", Dir: "->"},
	}, g.Arrows())

	assert.ErrorIs(t, g.ApplyCausal(nil), pdag.ErrNilResult)

	reverse := &orient.Table{Edges: []orient.Edge{{From: "C", To: "A", Dir: "->"}}}
	assert.ErrorIs(t, g.ApplyCausal(reverse), pdag.ErrConflictingEdge)
}

// TestApplyCausal_RegistersVertices: edges over vertices the graph has
// not seen yet register them on the fly.
func TestApplyCausal_RegistersVertices(t *testing.T) {
	g := pdag.New()
	causal := &orient.Table{Edges: []orient.Edge{{From: "X", To: "Y", Dir: "->"}}}

	require.NoError(t, g.ApplyCausal(causal))
	assert.Equal(t, []string{"X", "Y"}, g.Vars())
	assert.True(t, g.HasArrow("X", "Y"))
}

func TestAdjacencyMatrix(t *testing.T) {
	g := pdag.New("A", "B", "C")
	require.NoError(t, g.AddLink("B", "C"))
	require.NoError(t, g.AddArrow("A", "B"))

	m, vars, err := g.AdjacencyMatrix()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, vars)

	want := [3][3]float64{
		{0, 1, 0}, // A→B
		{0, 0, 1}, // B–C, stored both ways
		{0, 1, 0},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			got, err := m.At(i, j)
			require.NoError(t, err)
			assert.Equal(t, want[i][j], got, "entry (%d,%d)", i, j)
		}
	}
}

func TestHasDirectedCycle(t *testing.T) {
	g := pdag.New("A", "B", "C", "D")
	require.NoError(t, g.AddArrow("A", "B"))
	require.NoError(t, g.AddArrow("B", "C"))
	require.NoError(t, g.AddLink("C", "D"))

	ok, cycle := g.HasDirectedCycle()
	assert.False(t, ok)
	assert.Nil(t, cycle)

	require.NoError(t, g.AddArrow("C", "A"))
	ok, cycle = g.HasDirectedCycle()
	assert.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C", "A"}, cycle,
		"witness starts at the smallest vertex and is closed")
}

// TestHasDirectedCycle_LinksDoNotCount: an undirected triangle is not a
// directed cycle.
func TestHasDirectedCycle_LinksDoNotCount(t *testing.T) {
	g := pdag.New("A", "B", "C")
	require.NoError(t, g.AddLink("A", "B"))
	require.NoError(t, g.AddLink("B", "C"))
	require.NoError(t, g.AddLink("C", "A"))

	ok, _ := g.HasDirectedCycle()
	assert.False(t, ok)
}

// TestGraph_ConcurrentReads exercises the read lock under the race
// detector.
func TestGraph_ConcurrentReads(t *testing.T) {
	g := pdag.New("A", "B", "C")
	require.NoError(t, g.AddLink("A", "B"))
	require.NoError(t, g.AddArrow("B", "C"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Vars()
			_ = g.Arrows()
			_ = g.Undirected()
			_, _ = g.HasDirectedCycle()
			_ = g.Neighbors("A")
		}()
	}
	wg.Wait()
}
