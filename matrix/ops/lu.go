// Package ops provides the triangular-decomposition routines layered on
// the matrix package: Doolittle LU and LU-based inversion.
//
// The scheme is deliberately non-pivoting: loop orders are fixed and no
// row exchange ever happens, so identical inputs decompose identically on
// every platform. The price is an exact zero-pivot guard instead of
// numerical rescue; a zero pivot surfaces as matrix.ErrSingular, which the
// conditional-independence layer maps to its "not computable" condition.
package ops

import (
	"fmt"

	"github.com/causalgo/pc/matrix"
)

// LU performs Doolittle LU decomposition on a square matrix m.
// It returns L (unit lower triangular) and U (upper triangular) such that
// m = L·U.
//
// Stage 1 (Validate): m non-nil and square.
// Stage 2 (Prepare): allocate L, U; unit diagonal on L.
// Stage 3 (Execute): for each pivot row i, fill U's row i then L's column i.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare,
// matrix.ErrSingular (zero pivot encountered while forming L).
//
// Complexity: O(n³) time, O(n²) memory.
func LU(m matrix.Matrix) (*matrix.Dense, *matrix.Dense, error) {
	// Stage 1: validate shape.
	if m == nil {
		return nil, nil, fmt.Errorf("LU: %w", matrix.ErrNilMatrix)
	}
	rows, cols := m.Rows(), m.Cols()
	if rows != cols {
		return nil, nil, fmt.Errorf("LU: non-square %dx%d: %w", rows, cols, matrix.ErrNonSquare)
	}
	n := rows

	// Stage 2: prepare L and U.
	L, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, nil, fmt.Errorf("LU: %w", err)
	}
	U, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, nil, fmt.Errorf("LU: %w", err)
	}
	for i := 0; i < n; i++ {
		_ = L.Set(i, i, 1) // unit lower triangular
	}

	// Stage 3: Doolittle sweep, fixed i→j→k order.
	var (
		i, j, k    int
		sum        float64
		lVal, uVal float64
		aVal       float64
		uDiag      float64
	)
	for i = 0; i < n; i++ {
		// U's row i for columns j >= i.
		for j = i; j < n; j++ {
			sum = 0
			for k = 0; k < i; k++ {
				lVal, _ = L.At(i, k)
				uVal, _ = U.At(k, j)
				sum += lVal * uVal
			}
			if aVal, err = m.At(i, j); err != nil {
				return nil, nil, fmt.Errorf("LU: %w", err)
			}
			_ = U.Set(i, j, aVal-sum)
		}
		// L's column i for rows j > i.
		uDiag, _ = U.At(i, i)
		for j = i + 1; j < n; j++ {
			if uDiag == 0 {
				return nil, nil, fmt.Errorf("LU: zero pivot at %d: %w", i, matrix.ErrSingular)
			}
			sum = 0
			for k = 0; k < i; k++ {
				lVal, _ = L.At(j, k)
				uVal, _ = U.At(k, i)
				sum += lVal * uVal
			}
			if aVal, err = m.At(j, i); err != nil {
				return nil, nil, fmt.Errorf("LU: %w", err)
			}
			_ = L.Set(j, i, (aVal-sum)/uDiag)
		}
	}

	return L, U, nil
}
