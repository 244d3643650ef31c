// Package skeleton: types, sentinel errors, and tunable options for
// skeleton discovery.
package skeleton

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sentinel errors for skeleton construction.
var (
	// ErrNoVariables is returned when the variable list is empty.
	ErrNoVariables = errors.New("skeleton: no variables")

	// ErrDuplicateVariable is returned when the variable list repeats a name.
	ErrDuplicateVariable = errors.New("skeleton: duplicate variable")

	// ErrUnknownVariable is returned when a candidate edge references a
	// variable absent from the variable list.
	ErrUnknownVariable = errors.New("skeleton: unknown variable")

	// ErrSelfPair is returned when a candidate edge pairs a variable
	// with itself.
	ErrSelfPair = errors.New("skeleton: candidate edge references one variable twice")

	// ErrNilOracle is returned when Build is invoked without an oracle.
	ErrNilOracle = errors.New("skeleton: nil oracle")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("skeleton: invalid option supplied")
)

// PNotComputable is the sentinel p-value recorded when the oracle could
// not produce a result for one (edge, conditioning-set) test. It lies
// outside [0,1], so it never reads as independence (p > alpha) nor as
// significance (p < alpha): the test is inconclusive and the audit table
// says so explicitly.
const PNotComputable = -1.0

// DefaultAlpha is the significance threshold used unless WithAlpha
// overrides it: p-values above it count as independence.
const DefaultAlpha = 0.05

// Oracle is the conditional-independence test the builder drives: a pure
// function of (x, y, given) for the dataset it is bound to, returning the
// p-value for the null hypothesis "x independent of y given the
// conditioning set".
//
// When Build runs with more than one worker, PValue must be safe for
// concurrent use. *citest.PartialCorr satisfies both requirements.
type Oracle interface {
	PValue(ctx context.Context, x, y string, given []string) (float64, error)
}

// Pair is an unordered candidate edge between two distinct variables.
// The field order is preserved as supplied; it decides node_1/node_2 in
// the audit table but carries no graph meaning.
type Pair struct {
	X, Y string
}

// key returns the order-insensitive identity of the pair.
func (p Pair) key() string {
	if p.X > p.Y {
		return p.Y + "\x00" + p.X
	}

	return p.X + "\x00" + p.Y
}

// Label renders the pair as the audit-table edge label "X - Y".
func (p Pair) Label() string { return p.X + " - " + p.Y }

// Record is one conditional-independence test in the audit table:
// the tested edge, the conditioning set, the p-value (or PNotComputable),
// and whether the edge ended up removed from the skeleton.
type Record struct {
	Node1   string
	Node2   string
	Label   string   // "Node1 - Node2"
	Given   []string // conditioning set, enumeration order
	P       float64
	Removed bool
}

// matches reports whether the record's endpoints equal {a, b} in either
// order.
func (r Record) matches(a, b string) bool {
	return (r.Node1 == a && r.Node2 == b) || (r.Node1 == b && r.Node2 == a)
}

// HasConditioner reports whether v is part of the record's conditioning
// set.
func (r Record) HasConditioner(v string) bool {
	for _, g := range r.Given {
		if g == v {
			return true
		}
	}

	return false
}

// Table is the complete, append-only audit log of every test evaluated
// during one Build: one Record per (candidate edge, conditioning set),
// in enumeration order. It is never mutated downstream.
type Table []Record

// ForPair returns the records whose endpoints equal {a, b} in either
// order, preserving table order.
func (t Table) ForPair(a, b string) Table {
	var out Table
	for _, r := range t {
		if r.matches(a, b) {
			out = append(out, r)
		}
	}

	return out
}

// Variables returns every distinct endpoint appearing in the table,
// first-occurrence order.
func (t Table) Variables() []string {
	seen := make(map[string]struct{}, len(t))
	var out []string
	for _, r := range t {
		if _, ok := seen[r.Node1]; !ok {
			seen[r.Node1] = struct{}{}
			out = append(out, r.Node1)
		}
		if _, ok := seen[r.Node2]; !ok {
			seen[r.Node2] = struct{}{}
			out = append(out, r.Node2)
		}
	}

	return out
}

// Labels returns every distinct edge label in the table,
// first-occurrence order.
func (t Table) Labels() []string {
	seen := make(map[string]struct{}, len(t))
	var out []string
	for _, r := range t {
		if _, ok := seen[r.Label]; !ok {
			seen[r.Label] = struct{}{}
			out = append(out, r.Label)
		}
	}

	return out
}

// WriteText renders the table in a stable line-per-record form suitable
// for diffing and golden files. The p-value column uses the shortest
// exact decimal form; an inconclusive test prints "n/a".
func (t Table) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "node_1\tnode_2\tedge\ts\tp-val\tremoved"); err != nil {
		return err
	}
	for _, r := range t {
		p := "n/a"
		if r.P != PNotComputable {
			p = strconv.FormatFloat(r.P, 'g', -1, 64)
		}
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t{%s}\t%s\t%t\n",
			r.Node1, r.Node2, r.Label, strings.Join(r.Given, ","), p, r.Removed)
		if err != nil {
			return err
		}
	}

	return nil
}

// String renders the table via WriteText.
func (t Table) String() string {
	var b strings.Builder
	_ = t.WriteText(&b)

	return b.String()
}

// Result is the outcome of one Build: the full audit table, the labels of
// edges with at least one significant test, and the surviving undirected
// edges.
type Result struct {
	// Table is the complete audit log, one record per evaluated test.
	Table Table

	// Significant lists the distinct edge labels having at least one
	// record with a p-value in [0, alpha), first occurrence retained.
	Significant []string

	// Surviving lists the undirected edges still present after the sweep,
	// in complete-graph enumeration order. It always starts from ALL
	// pairs over the variable list; only tested pairs can be removed.
	Surviving []Pair

	// Alpha is the significance threshold the sweep used.
	Alpha float64
}

// Option configures Build via functional arguments. An invalid Option is
// recorded internally and surfaced as ErrOptionViolation when Build is
// invoked.
type Option func(*Options)

// Options holds the tunable parameters of a skeleton sweep.
type Options struct {
	// Ctx allows cancellation and deadlines; polled once per oracle call.
	Ctx context.Context

	// Alpha is the independence threshold: p > Alpha removes the edge.
	Alpha float64

	// Workers is the number of concurrent oracle calls. 1 means a fully
	// sequential sweep; higher values fan the tests out and join results
	// back in enumeration order, so the table is identical either way.
	Workers int

	// Strict aborts the whole build on the first oracle failure instead
	// of flagging the record with PNotComputable.
	Strict bool

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with sane defaults: background context,
// Alpha 0.05, a single worker, non-strict oracle-failure policy.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		Alpha:   DefaultAlpha,
		Workers: 1,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithAlpha overrides the significance threshold; a must lie strictly
// between 0 and 1, otherwise ErrOptionViolation.
func WithAlpha(a float64) Option {
	return func(o *Options) {
		if a <= 0 || a >= 1 {
			o.err = fmt.Errorf("%w: alpha must be in (0,1), got %g", ErrOptionViolation, a)

			return
		}
		o.Alpha = a
	}
}

// WithWorkers sets the oracle fan-out width; k must be positive,
// otherwise ErrOptionViolation. The oracle must be safe for concurrent
// PValue calls when k > 1.
func WithWorkers(k int) Option {
	return func(o *Options) {
		if k <= 0 {
			o.err = fmt.Errorf("%w: workers must be positive, got %d", ErrOptionViolation, k)

			return
		}
		o.Workers = k
	}
}

// WithStrict makes any oracle failure abort the whole build.
func WithStrict() Option {
	return func(o *Options) { o.Strict = true }
}
