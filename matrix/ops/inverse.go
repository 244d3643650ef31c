// Package ops: LU-based matrix inversion via forward/backward substitution.
package ops

import (
	"fmt"

	"github.com/causalgo/pc/matrix"
)

// Inverse returns the inverse of the square matrix m.
//
// Blueprint:
//
//	Stage 1 (Validate): ensure m is non-nil and square.
//	Stage 2 (Decompose): m = L·U via Doolittle.
//	Stage 3 (Prepare): allocate the result and scratch slices.
//	Stage 4 (Execute): for each identity column eᵢ, solve L·y = eᵢ then U·x = y.
//	Stage 5 (Finalize): assemble the columns into the inverse.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare,
// matrix.ErrSingular (zero pivot in the decomposition or substitution).
//
// Complexity: O(n³) time, O(n²) memory.
func Inverse(m matrix.Matrix) (*matrix.Dense, error) {
	// Stage 1: validate shape.
	if m == nil {
		return nil, fmt.Errorf("Inverse: %w", matrix.ErrNilMatrix)
	}
	rows, cols := m.Rows(), m.Cols()
	if rows != cols {
		return nil, fmt.Errorf("Inverse: non-square %dx%d: %w", rows, cols, matrix.ErrNonSquare)
	}

	// Stage 2: LU decomposition.
	L, U, err := LU(m)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}

	// Stage 3: result container and substitution workspaces.
	inv, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}
	y := make([]float64, rows) // forward-substitution scratch
	x := make([]float64, rows) // backward-substitution scratch

	// Stage 4: solve one basis column at a time.
	var (
		col, i, k  int
		sum, pivot float64
		v          float64
	)
	for col = 0; col < cols; col++ {
		// Forward substitution: L·y = e_col.
		for i = 0; i < rows; i++ {
			sum = 0
			for k = 0; k < i; k++ {
				v, _ = L.At(i, k)
				sum += v * y[k]
			}
			if i == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}

		// Backward substitution: U·x = y.
		for i = rows - 1; i >= 0; i-- {
			sum = 0
			for k = i + 1; k < cols; k++ {
				v, _ = U.At(i, k)
				sum += v * x[k]
			}
			pivot, _ = U.At(i, i)
			if pivot == 0 {
				return nil, fmt.Errorf("Inverse: zero pivot at %d: %w", i, matrix.ErrSingular)
			}
			x[i] = (y[i] - sum) / pivot
		}

		// Stage 5: write solution x into column col.
		for i = 0; i < rows; i++ {
			_ = inv.Set(i, col, x[i])
		}
	}

	return inv, nil
}
