// SPDX-License-Identifier: MIT
// Package matrix: column statistics (centering, covariance, correlation)
// as deterministic compositions over the canonical kernels.
//
// Exposed API:
//   - CenterColumns(X) -> (Xc, means)        // subtract per-column mean
//   - Covariance(X)    -> (Cov, means)       // sample covariance: (Xcᵀ·Xc)/(r-1)
//   - Correlation(X)   -> (Corr, means, stds) // Pearson via z-scoring
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops; Dense fast paths operate
//     on the row-major flat buffer.
//   - NaN/Inf observations propagate untouched; downstream layers decide
//     whether a non-finite statistic is an error.

package matrix

import (
	"fmt"
	"math"
)

// Operation tags for unified error wrapping.
const (
	opCenterColumns = "CenterColumns"
	opCovariance    = "Covariance"
	opCorrelation   = "Correlation"
)

// columnMeans accumulates per-column sums then divides by the row count.
// Deterministic i→j order; Dense fast path, At fallback.
func columnMeans(X Matrix) ([]float64, error) {
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)

	var i, j int
	if d, ok := X.(*Dense); ok {
		var base int
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				means[j] += d.data[base+j]
			}
		}
	} else {
		var v float64
		var err error
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, err
				}
				means[j] += v
			}
		}
	}

	inv := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= inv
	}

	return means, nil
}

// CenterColumns subtracts the per-column mean from every element.
// Stage 1 (Validate): non-nil, at least one row and column.
// Stage 2 (Means): deterministic accumulation pass.
// Stage 3 (Subtract): fresh centered copy; X is never mutated.
//
// Errors: ErrNilMatrix, ErrBadShape, wrapped At errors.
func CenterColumns(X Matrix) (*Dense, []float64, error) {
	if err := validateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	r, c := X.Rows(), X.Cols()
	if r == 0 || c == 0 {
		return nil, nil, matrixErrorf(opCenterColumns, ErrBadShape)
	}

	means, err := columnMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	res, err := NewDense(r, c)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	var i, j int
	if d, ok := X.(*Dense); ok {
		var base int
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				res.data[base+j] = d.data[base+j] - means[j]
			}
		}
	} else {
		var v float64
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, nil, matrixErrorf(opCenterColumns, err)
				}
				res.data[i*c+j] = v - means[j]
			}
		}
	}

	return res, means, nil
}

// Covariance computes the sample covariance of the columns of X:
// Cov = (Xcᵀ·Xc)/(r-1), where Xc is the column-centered copy of X.
// Stage 1 (Validate): non-nil; r>=2 observations required.
// Stage 2 (Center): reuse CenterColumns.
// Stage 3 (Compute): Gram matrix via the canonical kernels, then scale.
//
// The output is symmetric; the diagonal holds per-column sample variances.
// Errors: ErrNilMatrix, ErrDimensionMismatch (r<2), ErrBadShape.
//
// Complexity: O(r·c²) time, O(c²) space.
func Covariance(X Matrix) (*Dense, []float64, error) {
	if err := validateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	if X.Rows() < 2 {
		return nil, nil, fmt.Errorf("matrix.%s: %d observations: %w", opCovariance, X.Rows(), ErrDimensionMismatch)
	}

	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	Xct, err := Transpose(Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	G, err := Mul(Xct, Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	Cov, err := Scale(G, 1.0/float64(X.Rows()-1))
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	return Cov, means, nil
}

// Correlation computes the Pearson correlation of the columns of X via
// z-scoring: Corr = (Zᵀ·Z)/(r-1) with Z = Xc·diag(1/std). A degenerate
// column (std==0) is zeroed rather than divided, so its Corr row/column
// is all zeros instead of NaN.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (r<2), ErrBadShape.
//
// Complexity: O(r·c²) time, O(c²) space.
func Correlation(X Matrix) (*Dense, []float64, []float64, error) {
	if err := validateNotNil(X); err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	r, c := X.Rows(), X.Cols()
	if r < 2 {
		return nil, nil, nil, fmt.Errorf("matrix.%s: %d observations: %w", opCorrelation, r, ErrDimensionMismatch)
	}

	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}

	// Sample stds per column: std[j] = sqrt(Σ_i Xc[i,j]² / (r-1)).
	stds := make([]float64, c)
	var i, j, base int
	var v float64
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			v = Xc.data[base+j]
			stds[j] += v * v
		}
	}
	inv := 1.0 / float64(r-1)
	for j = 0; j < c; j++ {
		stds[j] = math.Sqrt(stds[j] * inv)
	}

	// Z-score in place on the centered copy (private to this call);
	// degenerate columns become all zeros.
	invStd := make([]float64, c)
	for j = 0; j < c; j++ {
		if stds[j] > 0 {
			invStd[j] = 1.0 / stds[j]
		}
	}
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			Xc.data[base+j] *= invStd[j]
		}
	}

	Zt, err := Transpose(Xc)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	G, err := Mul(Zt, Xc)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	Corr, err := Scale(G, inv)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}

	return Corr, means, stds, nil
}
