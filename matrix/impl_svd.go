// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SVDFactors holds a full singular value decomposition A = U·Σ·Vᵀ.
//   - Values: min(m,n) singular values in non-increasing order.
//   - U: m×m orthogonal (nil from RightSingular); V: n×n orthogonal.
type SVDFactors struct {
	Values []float64
	U      *Dense
	V      *Dense
}

// SVD computes the full singular value decomposition of a via gonum's LAPACK port.
// MAIN DESCRIPTION:
//   - The bidiagonal QR iteration in gonum/lapack is the reference
//     implementation for dense SVD; this package only adapts its types.
//
// Implementation:
//   - Stage 1: validate (not nil, finite) and copy into a gonum *mat.Dense.
//   - Stage 2: Factorize with the requested kind; false → ErrDecomposition.
//   - Stage 3: copy the requested factors back into *Dense, check shapes and finiteness.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf, ErrDecomposition.
//
// Determinism:
//   - gonum is single-threaded and deterministic for a fixed input.
//
// Complexity:
//   - Time O(m·n·min(m,n) + m³ + n³), Space O(m² + n²).
func SVD(a Matrix) (*SVDFactors, error) {
	return factorize(a, mat.SVDFull)
}

// RightSingular is SVD without U: Values and the n×n V only (U is nil).
// Used by kernel computations that never read the left factor.
func RightSingular(a Matrix) (*SVDFactors, error) {
	return factorize(a, mat.SVDFullV)
}

// SingularValues returns only Σ; no singular vectors are formed.
func SingularValues(a Matrix) ([]float64, error) {
	f, err := factorize(a, mat.SVDNone)
	if err != nil {
		return nil, err
	}

	return f.Values, nil
}

func factorize(a Matrix, kind mat.SVDKind) (*SVDFactors, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	if err := ValidateFinite(a); err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	src, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	rows, cols := src.Shape()

	var svd mat.SVD
	if ok := svd.Factorize(mat.NewDense(rows, cols, src.data), kind); !ok {
		return nil, matrixErrorf(opSVD, ErrDecomposition)
	}

	out := &SVDFactors{Values: svd.Values(nil)}
	if want := min(rows, cols); len(out.Values) != want {
		return nil, matrixErrorf(opSVD, fmt.Errorf("%d singular values, want %d: %w", len(out.Values), want, ErrDecomposition))
	}
	for _, v := range out.Values {
		if isNonFinite(v) {
			return nil, matrixErrorf(opSVD, fmt.Errorf("non-finite singular value: %w", ErrDecomposition))
		}
	}
	if kind&mat.SVDFullU != 0 {
		var u mat.Dense
		svd.UTo(&u)
		if out.U, err = fromGonum(&u, rows, rows); err != nil {
			return nil, matrixErrorf(opSVD, err)
		}
	}
	if kind&mat.SVDFullV != 0 {
		var v mat.Dense
		svd.VTo(&v)
		if out.V, err = fromGonum(&v, cols, cols); err != nil {
			return nil, matrixErrorf(opSVD, err)
		}
	}

	return out, nil
}

// fromGonum copies a gonum matrix into *Dense after checking the expected shape.
func fromGonum(g mat.Matrix, rows, cols int) (*Dense, error) {
	r, c := g.Dims()
	if r != rows || c != cols {
		return nil, fmt.Errorf("factor is %dx%d, want %dx%d: %w", r, c, rows, cols, ErrDecomposition)
	}
	d, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := g.At(i, j)
			if isNonFinite(v) {
				return nil, fmt.Errorf("factor entry (%d,%d) not finite: %w", i, j, ErrDecomposition)
			}
			d.data[i*cols+j] = v
		}
	}

	return d, nil
}
