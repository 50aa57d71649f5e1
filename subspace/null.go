// SPDX-License-Identifier: MIT

package subspace

import (
	"github.com/troy-haydens-bot/Strang-4-subspace/matrix"
)

// NullSpace returns an orthonormal basis of N(A) as an n×max(n−r,1) matrix.
// MAIN DESCRIPTION:
//   - Right singular vectors belonging to the n−r smallest singular values
//     (the trailing columns of V) span the kernel.
//
// Implementation:
//   - Stage 1: check r ∈ [0, min(m,n)].
//   - Stage 2: r = n (full column rank) → n×1 zero column; the SVD is skipped.
//   - Stage 3: V from matrix.RightSingular(A) (U is never formed); copy its last n−r columns (r = 0 → all of V).
//
// Errors:
//   - ErrInvalidInput (nil, non-finite, r out of range), ErrNumericalFailure.
func NullSpace(a matrix.Matrix, r int) (*matrix.Dense, error) {
	if err := checkRank(opNullSpace, a, r); err != nil {
		return nil, err
	}

	return kernel(opNullSpace, a, r)
}

// LeftNullSpace returns an orthonormal basis of N(Aᵀ) as an m×max(m−r,1)
// matrix: NullSpace of the transpose, with its own SVD of Aᵀ.
// r = m (full row rank) → m×1 zero column without factorization.
func LeftNullSpace(a matrix.Matrix, r int) (*matrix.Dense, error) {
	if err := checkRank(opLeftNullSpace, a, r); err != nil {
		return nil, err
	}
	at, err := matrix.Transpose(a)
	if err != nil {
		return nil, classify(opLeftNullSpace, err)
	}

	return kernel(opLeftNullSpace, at, r)
}

// kernel returns the trailing Cols()−r right singular vectors of a.
func kernel(op string, a matrix.Matrix, r int) (*matrix.Dense, error) {
	n := a.Cols()
	nullity := n - r
	if nullity == 0 {
		return zeroColumn(op, n)
	}
	f, err := matrix.RightSingular(a)
	if err != nil {
		return nil, classify(op, err)
	}
	basis, err := f.V.TrailingCols(nullity)
	if err != nil {
		return nil, numericalFailure(op, err)
	}

	return basis, nil
}
