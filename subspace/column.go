// SPDX-License-Identifier: MIT

package subspace

import (
	"github.com/troy-haydens-bot/Strang-4-subspace/matrix"
)

// ColumnSpace returns an orthonormal basis of C(A) as an m×max(r,1) matrix.
// MAIN DESCRIPTION:
//   - The leading r columns of the pivoted economic QR factor Q span C(A).
//
// Implementation:
//   - Stage 1: check r ∈ [0, min(m,n)].
//   - Stage 2: r = 0 → m×1 zero column (trivial subspace), no factorization.
//   - Stage 3: Q from matrix.QR; copy its first r columns.
//
// Inputs:
//   - a: the m×n matrix; never mutated.
//   - r: the rank computed once by the caller (see Rank); not re-estimated here.
//
// Errors:
//   - ErrInvalidInput (nil, non-finite, r out of range), ErrNumericalFailure.
func ColumnSpace(a matrix.Matrix, r int) (*matrix.Dense, error) {
	if err := checkRank(opColumnSpace, a, r); err != nil {
		return nil, err
	}

	return orthonormalRange(opColumnSpace, a, r)
}

// RowSpace returns an orthonormal basis of C(Aᵀ) as an n×max(r,1) matrix:
// ColumnSpace applied to the transpose, with the same zero-rank convention.
func RowSpace(a matrix.Matrix, r int) (*matrix.Dense, error) {
	if err := checkRank(opRowSpace, a, r); err != nil {
		return nil, err
	}
	at, err := matrix.Transpose(a)
	if err != nil {
		return nil, classify(opRowSpace, err)
	}

	return orthonormalRange(opRowSpace, at, r)
}

// orthonormalRange returns the first r columns of Q for a = Q·R·Pᵀ.
func orthonormalRange(op string, a matrix.Matrix, r int) (*matrix.Dense, error) {
	if r == 0 {
		return zeroColumn(op, a.Rows())
	}
	q, _, _, err := matrix.QR(a)
	if err != nil {
		return nil, classify(op, err)
	}
	basis, err := q.LeadingCols(r)
	if err != nil {
		return nil, numericalFailure(op, err)
	}

	return basis, nil
}

// zeroColumn is the dim×1 placeholder for a trivial subspace {0}.
func zeroColumn(op string, dim int) (*matrix.Dense, error) {
	z, err := matrix.NewDense(dim, 1)
	if err != nil {
		return nil, invalidInput(op, err)
	}

	return z, nil
}
