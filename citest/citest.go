package citest

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/causalgo/pc/dataset"
	"github.com/causalgo/pc/matrix"
	"github.com/causalgo/pc/matrix/ops"
)

// minObservations is the smallest dataset size for which any test is
// computable: with zero conditioners, dof = n - 2 must be at least 1.
const minObservations = 3

// PartialCorr is a Gaussian conditional-independence oracle bound to one
// dataset. The sample covariance of all columns is computed once at
// construction; each PValue call extracts the submatrix it needs.
//
// A PartialCorr is immutable after New and safe for concurrent PValue
// calls.
type PartialCorr struct {
	vars  []string       // column names in dataset order
	index map[string]int // name → covariance row/col
	cov   *matrix.Dense  // sample covariance, vars × vars
	n     int            // observations
}

// New binds a PartialCorr oracle to ds, precomputing the covariance of
// every column pair.
//
// Errors: ErrNilDataset, ErrTooFewObservations, wrapped matrix errors.
func New(ds *dataset.Dataset) (*PartialCorr, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	if ds.Len() < minObservations {
		return nil, fmt.Errorf("New: %d observations: %w", ds.Len(), ErrTooFewObservations)
	}

	X, err := ds.Matrix()
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	cov, _, err := matrix.Covariance(X)
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	vars := ds.Vars()
	index := make(map[string]int, len(vars))
	for i, v := range vars {
		index[v] = i
	}

	return &PartialCorr{vars: vars, index: index, cov: cov, n: ds.Len()}, nil
}

// Vars returns the variable names of the bound dataset, in dataset order.
func (pc *PartialCorr) Vars() []string {
	return append([]string(nil), pc.vars...)
}

// PValue computes the p-value for the null hypothesis "x independent of y
// given the conditioning set", via partial correlation under the linear
// Gaussian model:
//
//  1. Invert the covariance submatrix over [x, y, given...] to obtain the
//     precision matrix P.
//  2. r = −P[0,1] / √(P[0,0]·P[1,1]); |r| ≥ 1 means exact linear
//     dependence, p = 0.
//  3. t = r·√(dof/(1−r²)) with dof = n − |given| − 2; p is the two-sided
//     tail of Student's t with dof degrees of freedom.
//
// PValue is a pure function of (dataset, x, y, given): identical inputs
// return bit-identical p-values. ctx is polled once at entry; a nil ctx
// is treated as context.Background().
//
// Errors: ErrUnknownVariable, ErrSameVariable, ErrConditionerOverlap,
// ErrDuplicateConditioner, ErrNotComputable, and ctx.Err() on
// cancellation.
func (pc *PartialCorr) PValue(ctx context.Context, x, y string, given []string) (float64, error) {
	if ctx != nil {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}
	}

	// Validate the variable references before any numeric work.
	ix, ok := pc.index[x]
	if !ok {
		return 0, fmt.Errorf("PValue(%q,%q): %w", x, y, ErrUnknownVariable)
	}
	iy, ok := pc.index[y]
	if !ok {
		return 0, fmt.Errorf("PValue(%q,%q): %w", x, y, ErrUnknownVariable)
	}
	if x == y {
		return 0, fmt.Errorf("PValue(%q,%q): %w", x, y, ErrSameVariable)
	}
	idx := make([]int, 0, len(given)+2)
	idx = append(idx, ix, iy)
	seen := make(map[string]struct{}, len(given))
	for _, g := range given {
		ig, ok := pc.index[g]
		if !ok {
			return 0, fmt.Errorf("PValue(%q,%q): conditioner %q: %w", x, y, g, ErrUnknownVariable)
		}
		if g == x || g == y {
			return 0, fmt.Errorf("PValue(%q,%q): conditioner %q: %w", x, y, g, ErrConditionerOverlap)
		}
		if _, dup := seen[g]; dup {
			return 0, fmt.Errorf("PValue(%q,%q): conditioner %q: %w", x, y, g, ErrDuplicateConditioner)
		}
		seen[g] = struct{}{}
		idx = append(idx, ig)
	}

	// Degrees of freedom: every conditioner consumes one.
	dof := pc.n - len(given) - 2
	if dof < 1 {
		return 0, fmt.Errorf("PValue(%q,%q): dof=%d with %d conditioners: %w", x, y, dof, len(given), ErrNotComputable)
	}

	// Precision matrix of the [x, y, given...] block.
	sub, err := pc.cov.Induced(idx, idx)
	if err != nil {
		return 0, fmt.Errorf("PValue(%q,%q): %w", x, y, err)
	}
	P, err := ops.Inverse(sub)
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return 0, fmt.Errorf("PValue(%q,%q): singular covariance: %w", x, y, ErrNotComputable)
		}

		return 0, fmt.Errorf("PValue(%q,%q): %w", x, y, err)
	}

	p00, _ := P.At(0, 0)
	p11, _ := P.At(1, 1)
	p01, _ := P.At(0, 1)
	// An ill-conditioned block can invert without an exact zero pivot yet
	// still produce a meaningless precision diagonal; surface it.
	if !(p00 > 0) || !(p11 > 0) || math.IsInf(p00, 0) || math.IsInf(p11, 0) || math.IsNaN(p01) {
		return 0, fmt.Errorf("PValue(%q,%q): ill-conditioned covariance: %w", x, y, ErrNotComputable)
	}

	r := -p01 / math.Sqrt(p00*p11)
	if math.IsNaN(r) {
		return 0, fmt.Errorf("PValue(%q,%q): ill-conditioned covariance: %w", x, y, ErrNotComputable)
	}
	if r >= 1 || r <= -1 {
		return 0, nil // exact linear dependence
	}

	t := r * math.Sqrt(float64(dof)/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}

	return 2 * dist.Survival(math.Abs(t)), nil
}
