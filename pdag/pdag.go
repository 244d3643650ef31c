package pdag

import (
	"fmt"
	"sort"
	"sync"

	"github.com/causalgo/pc/matrix"
	"github.com/causalgo/pc/orient"
	"github.com/causalgo/pc/skeleton"
)

// Graph is a partially directed graph over named variables: skeleton
// links are undirected, causal conclusions are arrows. Loops and
// parallel edges are rejected, as are antiparallel arrows (x→y plus
// y→x).
//
// All methods are safe for concurrent use; reads take the shared lock.
// Accessors return sorted copies, so iteration over any result is
// deterministic.
type Graph struct {
	mu    sync.RWMutex
	verts map[string]struct{}
	und   map[string]map[string]struct{} // undirected adjacency, stored both ways
	dir   map[string]map[string]struct{} // arrows, from → to
}

// New creates a Graph holding the given vertices and no edges.
// Empty names are ignored here; AddVertex reports them.
func New(vars ...string) *Graph {
	g := &Graph{
		verts: make(map[string]struct{}, len(vars)),
		und:   make(map[string]map[string]struct{}),
		dir:   make(map[string]map[string]struct{}),
	}
	for _, v := range vars {
		if v != "" {
			g.verts[v] = struct{}{}
		}
	}

	return g
}

// FromSkeleton builds a Graph whose vertices are the skeleton's
// variables and whose undirected links are the surviving edges.
//
// Errors: ErrNilResult, plus AddLink errors on a malformed result.
func FromSkeleton(res *skeleton.Result) (*Graph, error) {
	if res == nil {
		return nil, fmt.Errorf("FromSkeleton: %w", ErrNilResult)
	}

	g := New(res.Table.Variables()...)
	for _, p := range res.Surviving {
		// Surviving pairs may reference vertices beyond the audit table
		// (untested edges survive by default); register them on sight.
		g.mu.Lock()
		g.verts[p.X] = struct{}{}
		g.verts[p.Y] = struct{}{}
		g.mu.Unlock()
		if err := g.AddLink(p.X, p.Y); err != nil {
			return nil, fmt.Errorf("FromSkeleton: %w", err)
		}
	}

	return g, nil
}

// AddVertex inserts a named vertex; adding an existing vertex is a no-op.
// Errors: ErrEmptyVertexID.
func (g *Graph) AddVertex(v string) error {
	if v == "" {
		return ErrEmptyVertexID
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verts[v] = struct{}{}

	return nil
}

// AddLink inserts the undirected link a–b.
// Errors: ErrUnknownVertex, ErrSelfLoop, ErrDuplicateEdge (an existing
// link or arrow between a and b).
func (g *Graph) AddLink(a, b string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkEndpoints(a, b); err != nil {
		return fmt.Errorf("AddLink(%q,%q): %w", a, b, err)
	}
	if g.linked(a, b) || g.arrow(a, b) || g.arrow(b, a) {
		return fmt.Errorf("AddLink(%q,%q): %w", a, b, ErrDuplicateEdge)
	}

	g.putUnd(a, b)
	g.putUnd(b, a)

	return nil
}

// AddArrow inserts the directed edge from→to. An existing undirected
// link between the two vertices is consumed: the link becomes the arrow.
// Errors: ErrUnknownVertex, ErrSelfLoop, ErrDuplicateEdge (same arrow
// already present), ErrConflictingEdge (reverse arrow present).
func (g *Graph) AddArrow(from, to string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkEndpoints(from, to); err != nil {
		return fmt.Errorf("AddArrow(%q,%q): %w", from, to, err)
	}
	if g.arrow(from, to) {
		return fmt.Errorf("AddArrow(%q,%q): %w", from, to, ErrDuplicateEdge)
	}
	if g.arrow(to, from) {
		return fmt.Errorf("AddArrow(%q,%q): %w", from, to, ErrConflictingEdge)
	}

	// Orienting an existing skeleton link replaces it.
	if g.linked(from, to) {
		delete(g.und[from], to)
		delete(g.und[to], from)
	}
	if g.dir[from] == nil {
		g.dir[from] = make(map[string]struct{})
	}
	g.dir[from][to] = struct{}{}

	return nil
}

// ApplyCausal orients the graph with the edges of an orientation table:
// each from→to arrow is inserted, consuming the matching undirected link
// when present. Vertices named by the table are registered on sight.
//
// Errors: ErrNilResult, ErrDuplicateEdge, ErrConflictingEdge.
func (g *Graph) ApplyCausal(t *orient.Table) error {
	if t == nil {
		return fmt.Errorf("ApplyCausal: %w", ErrNilResult)
	}
	for _, e := range t.Edges {
		if err := g.AddVertex(e.From); err != nil {
			return fmt.Errorf("ApplyCausal: %w", err)
		}
		if err := g.AddVertex(e.To); err != nil {
			return fmt.Errorf("ApplyCausal: %w", err)
		}
		if err := g.AddArrow(e.From, e.To); err != nil {
			return fmt.Errorf("ApplyCausal: %w", err)
		}
	}

	return nil
}

// Vars returns the vertex names in sorted order.
func (g *Graph) Vars() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return sortedKeys(g.verts)
}

// HasLink reports whether the undirected link a–b is present.
func (g *Graph) HasLink(a, b string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.linked(a, b)
}

// HasArrow reports whether the arrow from→to is present.
func (g *Graph) HasArrow(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.arrow(from, to)
}

// Undirected returns the undirected links as sorted pairs (X < Y),
// sorted among themselves.
func (g *Graph) Undirected() []skeleton.Pair {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []skeleton.Pair
	for a, nbrs := range g.und {
		for b := range nbrs {
			if a < b {
				out = append(out, skeleton.Pair{X: a, Y: b})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}

		return out[i].Y < out[j].Y
	})

	return out
}

// Arrows returns the directed edges as sorted orient.Edge values,
// (from, to) lexicographic.
func (g *Graph) Arrows() []orient.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []orient.Edge
	for from, tos := range g.dir {
		for to := range tos {
			out = append(out, orient.Edge{From: from, To: to, Dir: orient.DirArrow})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}

		return out[i].To < out[j].To
	})

	return out
}

// Neighbors returns the vertices linked to v by an undirected edge,
// sorted.
func (g *Graph) Neighbors(v string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return sortedKeys(g.und[v])
}

// Parents returns the vertices with an arrow into v, sorted.
func (g *Graph) Parents(v string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	set := make(map[string]struct{})
	for from, tos := range g.dir {
		if _, ok := tos[v]; ok {
			set[from] = struct{}{}
		}
	}

	return sortedKeys(set)
}

// Children returns the vertices v points an arrow at, sorted.
func (g *Graph) Children(v string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return sortedKeys(g.dir[v])
}

// AdjacencyMatrix exports the graph as an n×n Dense over the sorted
// vertex order (also returned): entry (i,j) is 1 for the arrow i→j, and
// both (i,j) and (j,i) are 1 for an undirected link.
func (g *Graph) AdjacencyMatrix() (*matrix.Dense, []string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	vars := sortedKeys(g.verts)
	m, err := matrix.NewDense(len(vars), len(vars))
	if err != nil {
		return nil, nil, fmt.Errorf("AdjacencyMatrix: %w", err)
	}
	index := make(map[string]int, len(vars))
	for i, v := range vars {
		index[v] = i
	}

	for a, nbrs := range g.und {
		for b := range nbrs {
			_ = m.Set(index[a], index[b], 1) // stored both ways already
		}
	}
	for from, tos := range g.dir {
		for to := range tos {
			_ = m.Set(index[from], index[to], 1)
		}
	}

	return m, vars, nil
}

// DFS colors for cycle detection.
const (
	white = 0 // unvisited
	gray  = 1 // on the recursion stack
	black = 2 // completed
)

// HasDirectedCycle reports whether the arrows of the graph contain a
// cycle, via three-color depth-first search over the directed edges only
// (undirected links do not count). Vertices and neighbors are visited in
// sorted order, so the first witness found is deterministic; the witness
// is returned as the vertex sequence of the cycle, closed (first element
// repeated last).
func (g *Graph) HasDirectedCycle() (bool, []string) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	state := make(map[string]int, len(g.verts))
	var stack []string

	var visit func(v string) []string
	visit = func(v string) []string {
		state[v] = gray
		stack = append(stack, v)
		for _, w := range sortedKeys(g.dir[v]) {
			switch state[w] {
			case gray:
				// Back edge: slice the cycle out of the current stack.
				for i, s := range stack {
					if s == w {
						cycle := append([]string(nil), stack[i:]...)

						return append(cycle, w)
					}
				}
			case white:
				if c := visit(w); c != nil {
					return c
				}
			}
		}
		state[v] = black
		stack = stack[:len(stack)-1]

		return nil
	}

	for _, v := range sortedKeys(g.verts) {
		if state[v] == white {
			if c := visit(v); c != nil {
				return true, c
			}
		}
	}

	return false, nil
}

// ---- unexported helpers (callers hold the lock) ----

func (g *Graph) checkEndpoints(a, b string) error {
	if a == b {
		return ErrSelfLoop
	}
	if _, ok := g.verts[a]; !ok {
		return fmt.Errorf("%q: %w", a, ErrUnknownVertex)
	}
	if _, ok := g.verts[b]; !ok {
		return fmt.Errorf("%q: %w", b, ErrUnknownVertex)
	}

	return nil
}

func (g *Graph) linked(a, b string) bool {
	_, ok := g.und[a][b]

	return ok
}

func (g *Graph) arrow(from, to string) bool {
	_, ok := g.dir[from][to]

	return ok
}

func (g *Graph) putUnd(a, b string) {
	if g.und[a] == nil {
		g.und[a] = make(map[string]struct{})
	}
	g.und[a][b] = struct{}{}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
