package skeleton

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// unit is one (candidate edge, conditioning set) test, addressed by its
// fixed position in the audit table. Precomputing every unit up front is
// what makes the parallel path byte-identical to the sequential one: the
// table slot of each result is known before any oracle call runs.
type unit struct {
	rec   int      // index into the records slice
	x, y  string   // tested edge, candidate order
	given []string // conditioning set
}

// AllPairs returns every unordered pair over vars in enumeration order
// (i<j by position). Passing the result as the candidate list yields a
// fully tested skeleton; any pair left out of the candidates is never
// tested and survives by default.
func AllPairs(vars []string) []Pair {
	var out []Pair
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			out = append(out, Pair{X: vars[i], Y: vars[j]})
		}
	}

	return out
}

// Build drives the conditional-independence oracle over every candidate
// edge and every conditioning subset of the remaining variables, and
// returns the audit table, the significant edge labels, and the
// surviving undirected edges.
//
// Algorithm:
//  1. The surviving set starts as ALL unordered pairs over vars (the
//     complete graph), independent of the candidate list. Candidates
//     control which pairs get tested, not which edges exist initially.
//  2. Per candidate (X, Y): enumerate the full power set of vars∖{X,Y},
//     smallest subsets first, lexicographic by variable position within
//     a size. One oracle call and one Record per subset, always: a test
//     that finds independence removes the edge but never short-circuits
//     the sweep, so the table is a complete audit log.
//  3. p > alpha for any test removes (X, Y) from the surviving set
//     (idempotent; removal is an order-independent OR over the tests).
//  4. After the sweep every record is marked Removed=true, then records
//     of surviving edges are flipped back to false; Significant collects
//     the distinct labels with at least one p in [0, alpha).
//
// An oracle failure flags the record with PNotComputable and the sweep
// continues; under WithStrict the build aborts with the wrapped error.
//
// Errors: ErrNoVariables, ErrDuplicateVariable, ErrUnknownVariable,
// ErrSelfPair, ErrNilOracle, ErrOptionViolation, ctx errors, and wrapped
// oracle errors in strict mode. Validation runs before any testing.
//
// Complexity: O(|candidates| · 2^(v−2)) oracle calls for v variables.
func Build(vars []string, candidates []Pair, oracle Oracle, opts ...Option) (*Result, error) {
	// Build options and catch any invalid ones immediately.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// Fail fast, before any oracle call.
	if len(vars) == 0 {
		return nil, ErrNoVariables
	}
	known := make(map[string]struct{}, len(vars))
	for _, v := range vars {
		if _, dup := known[v]; dup {
			return nil, fmt.Errorf("Build: %q: %w", v, ErrDuplicateVariable)
		}
		known[v] = struct{}{}
	}
	for _, c := range candidates {
		if c.X == c.Y {
			return nil, fmt.Errorf("Build: %q: %w", c.X, ErrSelfPair)
		}
		if _, ok := known[c.X]; !ok {
			return nil, fmt.Errorf("Build: %q: %w", c.X, ErrUnknownVariable)
		}
		if _, ok := known[c.Y]; !ok {
			return nil, fmt.Errorf("Build: %q: %w", c.Y, ErrUnknownVariable)
		}
	}
	if oracle == nil {
		return nil, ErrNilOracle
	}

	// Lay out the whole sweep: every (candidate, subset) gets a fixed
	// table slot in enumeration order.
	var units []unit
	for _, c := range candidates {
		other := otherVars(vars, c.X, c.Y)
		for _, given := range subsetsBySize(other) {
			units = append(units, unit{rec: len(units), x: c.X, y: c.Y, given: given})
		}
	}

	records := make(Table, len(units))
	var err error
	if o.Workers > 1 {
		err = runParallel(o, oracle, units, records)
	} else {
		err = runSequential(o, oracle, units, records)
	}
	if err != nil {
		return nil, err
	}

	// Removal is a disjunction over all tests of an edge; iteration order
	// cannot change the outcome.
	removed := make(map[string]struct{})
	for i := range records {
		if records[i].P > o.Alpha {
			removed[Pair{X: records[i].Node1, Y: records[i].Node2}.key()] = struct{}{}
		}
	}

	// The survivor set is the complete graph minus removed tested pairs.
	all := AllPairs(vars)
	surviving := make([]Pair, 0, len(all))
	for _, p := range all {
		if _, gone := removed[p.key()]; !gone {
			surviving = append(surviving, p)
		}
	}

	// Removed=true by default, then false for every surviving edge's rows.
	for i := range records {
		records[i].Removed = true
	}
	for _, p := range surviving {
		for i := range records {
			if records[i].matches(p.X, p.Y) {
				records[i].Removed = false
			}
		}
	}

	// Significant edge labels: at least one computable p below alpha,
	// deduplicated to the first occurrence.
	seen := make(map[string]struct{})
	var significant []string
	for i := range records {
		if records[i].P >= 0 && records[i].P < o.Alpha {
			if _, ok := seen[records[i].Label]; !ok {
				seen[records[i].Label] = struct{}{}
				significant = append(significant, records[i].Label)
			}
		}
	}

	return &Result{
		Table:       records,
		Significant: significant,
		Surviving:   surviving,
		Alpha:       o.Alpha,
	}, nil
}

// runSequential evaluates every unit in enumeration order, polling the
// context once per oracle call.
func runSequential(o Options, oracle Oracle, units []unit, records Table) error {
	for _, u := range units {
		select {
		case <-o.Ctx.Done():
			return o.Ctx.Err()
		default:
		}

		p, err := oracle.PValue(o.Ctx, u.x, u.y, u.given)
		if err != nil {
			if o.Strict {
				return fmt.Errorf("Build: test %q vs %q given %v: %w", u.x, u.y, u.given, err)
			}
			p = PNotComputable
		}
		records[u.rec] = newRecord(u, p)
	}

	return nil
}

// runParallel fans the units out over o.Workers goroutines. Every test is
// independent of every other, so the only join point is the preallocated
// records slice, written at disjoint indices; the finished table is
// byte-identical to the sequential one.
func runParallel(o Options, oracle Oracle, units []unit, records Table) error {
	g, ctx := errgroup.WithContext(o.Ctx)
	g.SetLimit(o.Workers)

	for _, u := range units {
		u := u
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			p, err := oracle.PValue(ctx, u.x, u.y, u.given)
			if err != nil {
				if o.Strict {
					return fmt.Errorf("Build: test %q vs %q given %v: %w", u.x, u.y, u.given, err)
				}
				p = PNotComputable
			}
			records[u.rec] = newRecord(u, p)

			return nil
		})
	}

	return g.Wait()
}

// newRecord materializes the audit row for one evaluated unit.
// Removed is settled by the post-sweep pass.
func newRecord(u unit, p float64) Record {
	return Record{
		Node1: u.x,
		Node2: u.y,
		Label: Pair{X: u.x, Y: u.y}.Label(),
		Given: u.given,
		P:     p,
	}
}

// otherVars returns vars minus {x, y}, preserving order.
func otherVars(vars []string, x, y string) []string {
	out := make([]string, 0, len(vars)-2)
	for _, v := range vars {
		if v != x && v != y {
			out = append(out, v)
		}
	}

	return out
}

// subsetsBySize enumerates the full power set of items: sizes 0 through
// len(items), and within a size the combinations in lexicographic order
// by position. The empty set is always first, so the audit table always
// opens each edge with its marginal (unconditioned) test.
func subsetsBySize(items []string) [][]string {
	total := 1 << len(items)
	out := make([][]string, 0, total)
	for r := 0; r <= len(items); r++ {
		forEachCombination(len(items), r, func(idx []int) {
			sub := make([]string, r)
			for i, k := range idx {
				sub[i] = items[k]
			}
			out = append(out, sub)
		})
	}

	return out
}

// forEachCombination visits every r-combination of {0..n-1} in
// lexicographic order.
func forEachCombination(n, r int, visit func(idx []int)) {
	if r == 0 {
		visit(nil)

		return
	}
	if r > n {
		return
	}
	idx := make([]int, r)
	for i := range idx {
		idx[i] = i
	}
	for {
		visit(idx)
		// Advance the rightmost index that can still move.
		i := r - 1
		for i >= 0 && idx[i] == n-r+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < r; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
