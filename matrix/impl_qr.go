// SPDX-License-Identifier: MIT

package matrix

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
)

// QR computes an economic Householder factorization with column pivoting,
// A·P = Q·R, for any m×n matrix.
// MAIN DESCRIPTION:
//   - Q is m×k with orthonormal columns, k = min(m, n).
//   - R is k×n upper triangular (with respect to the pivoted column order).
//   - perm lists the original column index placed at each position of A·P.
//
// Implementation:
//   - Stage 1: validate a (not nil, finite); clone into a working *Dense.
//   - Stage 2: lapack64.Geqp3 on the working buffer: reflectors below the
//     diagonal, R on and above it, pivots in perm (ties → lowest index).
//   - Stage 3: R := upper trapezoid of the first k rows, explicit zeros below.
//   - Stage 4: Q := lapack64.Orgqr over the first k columns of the reflectors.
//
// Behavior highlights:
//   - Pivoting makes |R[0,0]| ≥ |R[1,1]| ≥ ... so the leading r columns of Q span
//     the column space of a rank-r matrix even when A's leading columns are dependent.
//   - Column norms and reflectors are computed with scaling (dnrm2/dlarfg), so
//     finite entries near the under/overflow thresholds factor correctly.
//   - No sign canonicalization: columns of Q are defined up to sign.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf (input), ErrDecomposition (non-finite factors).
//
// Complexity:
//   - Time O(m·n·k), Space O(m·n).
//
// AI-Hints:
//   - The engine only needs Q; R and perm are returned for diagnostics and tests (A·P ≈ Q·R).
func QR(a Matrix) (q, r *Dense, perm []int, err error) {
	// Stage 1: validate and prepare.
	if err = ValidateNotNil(a); err != nil {
		return nil, nil, nil, matrixErrorf(opQR, err)
	}
	if err = ValidateFinite(a); err != nil {
		return nil, nil, nil, matrixErrorf(opQR, err)
	}
	work, err := toDense(a)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opQR, err)
	}
	rows, cols := work.Shape()
	k := min(rows, cols)

	// Stage 2: pivoted factorization in place.
	g := blas64.General{Rows: rows, Cols: cols, Stride: cols, Data: work.data}
	perm = make([]int, cols)
	for j := range perm {
		perm[j] = -1 // free column
	}
	tau := make([]float64, k)
	query := make([]float64, 1)
	lapack64.Geqp3(g, perm, tau, query, -1)
	buf := make([]float64, max(int(query[0]), 3*cols+1))
	lapack64.Geqp3(g, perm, tau, buf, len(buf))

	// Stage 3: R.
	if r, err = NewDense(k, cols); err != nil {
		return nil, nil, nil, matrixErrorf(opQR, err)
	}
	var i, j int
	for i = 0; i < k; i++ {
		for j = i; j < cols; j++ {
			r.data[i*cols+j] = work.data[i*cols+j]
		}
	}

	// Stage 4: Q from the first k reflectors.
	if q, err = NewDense(rows, k); err != nil {
		return nil, nil, nil, matrixErrorf(opQR, err)
	}
	for i = 0; i < rows; i++ {
		copy(q.data[i*k:(i+1)*k], work.data[i*cols:i*cols+k])
	}
	qg := blas64.General{Rows: rows, Cols: k, Stride: k, Data: q.data}
	lapack64.Orgqr(qg, tau, query, -1)
	buf = make([]float64, max(int(query[0]), k, 1))
	lapack64.Orgqr(qg, tau, buf, len(buf))

	if err = ValidateFinite(q); err != nil {
		return nil, nil, nil, matrixErrorf(opQR, ErrDecomposition)
	}

	return q, r, perm, nil
}

// toDense returns an independent *Dense copy of any Matrix.
func toDense(a Matrix) (*Dense, error) {
	if d, ok := a.(*Dense); ok {
		return d.Clone().(*Dense), nil
	}
	out, err := NewDense(a.Rows(), a.Cols())
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			if v, err = a.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}
