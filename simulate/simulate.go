package simulate

import (
	"fmt"
	"math/rand"

	"github.com/causalgo/pc/dataset"
)

// defaultSeed is the fixed seed substituted when callers pass seed==0,
// keeping "default" runs reproducible instead of time-dependent.
const defaultSeed int64 = 1

// Default structural parameters of the canned systems.
const (
	// DefaultEdgeCoef is the linear coefficient on every causal edge of
	// the canned Collider and Chain systems.
	DefaultEdgeCoef = 0.8

	// DefaultNoise is the noise scale of every equation in the canned
	// systems: x gains DefaultNoise·N(0,1) on top of its parents.
	DefaultNoise = 0.5
)

// Equation defines one variable of a structural equation model as a
// linear combination of earlier variables plus Gaussian noise:
//
//	Var = Σ Coefs[i]·Parents[i] + Noise·N(0,1)
//
// A root variable has no parents; Noise 0 makes the variable an exact
// function of its parents.
type Equation struct {
	Var     string
	Parents []string
	Coefs   []float64
	Noise   float64
}

// System is an ordered list of equations, ancestors first. The order is
// the sampling order; it is the caller's statement of topology, not
// something Sample infers.
type System []Equation

// Sample draws n observations from the system with a deterministic,
// seed-driven RNG and returns them as a Dataset in equation order.
// Identical (sys, n, seed) inputs produce a bit-identical Dataset;
// seed==0 selects the fixed default seed.
//
// Stage 1 (Validate): n>0; non-empty system; unique non-empty names;
// every parent defined by an earlier equation; one coefficient per
// parent; non-negative noise.
// Stage 2 (Execute): equations in order, rows in order within an
// equation, one NormFloat64 draw per (equation, row); fixed draw order
// is what pins the output bits.
//
// Errors: ErrEmptySystem, ErrBadSampleSize, ErrEmptyName,
// ErrDuplicateVariable, ErrUnknownParent, ErrCoefMismatch, ErrBadNoise.
func Sample(sys System, n int, seed int64) (*dataset.Dataset, error) {
	// Stage 1: validation before any sampling.
	if len(sys) == 0 {
		return nil, ErrEmptySystem
	}
	if n <= 0 {
		return nil, fmt.Errorf("Sample: n=%d: %w", n, ErrBadSampleSize)
	}
	defined := make(map[string]int, len(sys))
	for i, eq := range sys {
		if eq.Var == "" {
			return nil, fmt.Errorf("Sample: equation %d: %w", i, ErrEmptyName)
		}
		if _, dup := defined[eq.Var]; dup {
			return nil, fmt.Errorf("Sample: %q: %w", eq.Var, ErrDuplicateVariable)
		}
		if len(eq.Coefs) != len(eq.Parents) {
			return nil, fmt.Errorf("Sample: %q: %d coefs for %d parents: %w",
				eq.Var, len(eq.Coefs), len(eq.Parents), ErrCoefMismatch)
		}
		if eq.Noise < 0 {
			return nil, fmt.Errorf("Sample: %q: noise %g: %w", eq.Var, eq.Noise, ErrBadNoise)
		}
		for _, p := range eq.Parents {
			if _, ok := defined[p]; !ok {
				return nil, fmt.Errorf("Sample: %q needs %q: %w", eq.Var, p, ErrUnknownParent)
			}
		}
		defined[eq.Var] = i
	}

	// Stage 2: deterministic sampling, ancestors before dependents.
	rng := rand.New(rand.NewSource(seedOrDefault(seed)))
	names := make([]string, len(sys))
	cols := make([][]float64, len(sys))
	for i, eq := range sys {
		names[i] = eq.Var
		col := make([]float64, n)
		for row := 0; row < n; row++ {
			v := 0.0
			for k, p := range eq.Parents {
				v += eq.Coefs[k] * cols[defined[p]][row]
			}
			if eq.Noise > 0 {
				v += eq.Noise * rng.NormFloat64()
			}
			col[row] = v
		}
		cols[i] = col
	}

	ds, err := dataset.New(names, cols)
	if err != nil {
		return nil, fmt.Errorf("Sample: %w", err)
	}

	return ds, nil
}

// Collider samples n observations of the v-structure A→C←B: A and B are
// independent standard-normal roots, C mixes both with DefaultEdgeCoef
// and DefaultNoise. A and B are marginally independent and become
// dependent only when C is conditioned on.
func Collider(n int, seed int64) (*dataset.Dataset, error) {
	return Sample(System{
		{Var: "A", Noise: 1},
		{Var: "B", Noise: 1},
		{Var: "C", Parents: []string{"A", "B"}, Coefs: []float64{DefaultEdgeCoef, DefaultEdgeCoef}, Noise: DefaultNoise},
	}, n, seed)
}

// Chain samples n observations of the chain A→B→C with DefaultEdgeCoef
// and DefaultNoise: A and C are dependent, and become independent once B
// is conditioned on. B is NOT a collider here.
func Chain(n int, seed int64) (*dataset.Dataset, error) {
	return Sample(System{
		{Var: "A", Noise: 1},
		{Var: "B", Parents: []string{"A"}, Coefs: []float64{DefaultEdgeCoef}, Noise: DefaultNoise},
		{Var: "C", Parents: []string{"B"}, Coefs: []float64{DefaultEdgeCoef}, Noise: DefaultNoise},
	}, n, seed)
}

// seedOrDefault applies the seed==0 policy.
func seedOrDefault(seed int64) int64 {
	if seed == 0 {
		return defaultSeed
	}

	return seed
}
