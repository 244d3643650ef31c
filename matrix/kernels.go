// SPDX-License-Identifier: MIT
// Package matrix: canonical kernels (Transpose, Mul, Scale).
//
// Purpose:
//   - Provide the small set of dense linear-algebra kernels the statistics
//     layer composes (covariance = scaled Gram of the centered matrix).
//   - Keep a flat fast path on *Dense and a safe At/Set fallback for any
//     other Matrix implementation.
//
// Determinism:
//   - Every kernel runs fixed loop orders independent of data values, so
//     identical inputs produce bit-identical outputs.
//
// Complexity quicksheet:
//   - Mul: O(r·k·c); Transpose/Scale: O(r·c).

package matrix

import "fmt"

// Operation tags for unified error wrapping.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
)

// matrixErrorf wraps err with the operation tag, preserving the sentinel.
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("matrix.%s: %w", op, err)
}

// validateNotNil guards interface arguments against typed and untyped nils.
func validateNotNil(m Matrix) error {
	if m == nil {
		return ErrNilMatrix
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return ErrNilMatrix
	}

	return nil
}

// Mul returns the product a·b as a fresh *Dense.
// Stage 1 (Validate): non-nil operands; a.Cols == b.Rows.
// Stage 2 (Execute): flat row-major triple loop for *Dense×*Dense;
// generic i→j→k fallback via At otherwise.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, wrapped At/Set errors.
func Mul(a, b Matrix) (*Dense, error) {
	if err := validateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := validateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	if aCols != b.Rows() {
		return nil, fmt.Errorf("matrix.%s: %dx%d by %dx%d: %w", opMul, aRows, aCols, b.Rows(), bCols, ErrDimensionMismatch)
	}

	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k int
		av, cur float64
	)
	// Fast path: both operands Dense, multiply over the flat buffers.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var offA, offB, offR int
			for i = 0; i < aRows; i++ {
				offA = i * aCols
				offR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[offA+k]
					if av == 0 {
						continue // zero row entry contributes nothing
					}
					offB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[offR+j] += av * db.data[offB+j]
					}
				}
			}

			return res, nil
		}
	}

	// Fallback: generic interface triple loop with full error propagation.
	var bv float64
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			cur = 0
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				cur += av * bv
			}
			res.data[i*bCols+j] = cur
		}
	}

	return res, nil
}

// Transpose returns mᵀ as a fresh *Dense; m is never mutated.
// Errors: ErrNilMatrix, wrapped At errors.
func Transpose(m Matrix) (*Dense, error) {
	if err := validateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	// Fast path: data[i*cols+j] → res.data[j*rows+i].
	if dm, ok := m.(*Dense); ok {
		var base int
		for i = 0; i < rows; i++ {
			base = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[base+j]
			}
		}

		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Scale returns alpha·m as a fresh *Dense; m is never mutated.
// alpha==0 yields an explicit zero matrix of the same shape.
// Errors: ErrNilMatrix, wrapped At errors.
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := validateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	// Fast path: single flat loop over the backing slice.
	if dm, ok := m.(*Dense); ok {
		n := rows * cols
		for idx := 0; idx < n; idx++ {
			res.data[idx] = dm.data[idx] * alpha
		}

		return res, nil
	}

	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, err)
			}
			res.data[i*cols+j] = v * alpha
		}
	}

	return res, nil
}
