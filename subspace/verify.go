// SPDX-License-Identifier: MIT

package subspace

import (
	"fmt"
	"math"

	"github.com/troy-haydens-bot/Strang-4-subspace/matrix"
)

// Verify checks a Result against the invariants of the four-subspace theorem.
// MAIN DESCRIPTION:
//   - Dimensions: dim C(A) = dim C(Aᵀ) = rank; dim C(A) + dim N(Aᵀ) = m; dim C(Aᵀ) + dim N(A) = n.
//   - Shapes: every basis is ambient×max(dim,1); trivial bases are all zero.
//   - Orthonormality of every non-trivial basis.
//   - A·N(A) ≈ 0, Aᵀ·N(Aᵀ) ≈ 0, C(A) ⊥ N(Aᵀ), C(Aᵀ) ⊥ N(A).
//
// Tolerances:
//   - Orthonormality uses tol; products with A use tol·max(1, max|a_ij|).
//   - NaN anywhere in a basis fails the check it reaches.
//   - tol ≤ 0 (or NaN, +Inf) selects DefaultVerifyTolerance.
//
// Errors:
//   - ErrVerification wrapped with the first failing check.
//   - ErrInvalidInput for a nil result or an unusable matrix.
func Verify(res *Result, tol float64) error {
	if res == nil {
		return invalidInput(opVerify, matrix.ErrNilMatrix)
	}
	if !(tol > 0) || math.IsInf(tol, 1) {
		tol = DefaultVerifyTolerance
	}
	a, err := matrix.NewDenseFromRows(res.Matrix)
	if err != nil {
		return invalidInput(opVerify, err)
	}
	at, err := matrix.Transpose(a)
	if err != nil {
		return invalidInput(opVerify, err)
	}
	m, n := a.Shape()
	d := res.Dimensions
	scaled := tol * math.Max(1, matrix.MaxAbs(a))

	// Dimensions.
	switch {
	case d.M != m || d.N != n:
		return verifyErrorf("dimensions %dx%d do not match matrix %dx%d", d.M, d.N, m, n)
	case res.ColumnSpace.Dimension != d.Rank || res.RowSpace.Dimension != d.Rank:
		return verifyErrorf("column/row space dimensions %d/%d differ from rank %d", res.ColumnSpace.Dimension, res.RowSpace.Dimension, d.Rank)
	case res.ColumnSpace.Dimension+res.LeftNullSpace.Dimension != m:
		return verifyErrorf("dim C(A) + dim N(A^T) = %d, want %d", res.ColumnSpace.Dimension+res.LeftNullSpace.Dimension, m)
	case res.RowSpace.Dimension+res.NullSpace.Dimension != n:
		return verifyErrorf("dim C(A^T) + dim N(A) = %d, want %d", res.RowSpace.Dimension+res.NullSpace.Dimension, n)
	}

	// Shapes and orthonormality.
	for _, s := range []struct {
		space   Space
		ambient int
	}{
		{res.ColumnSpace, m}, {res.NullSpace, n}, {res.RowSpace, n}, {res.LeftNullSpace, m},
	} {
		if err = checkBasis(s.space, s.ambient, tol); err != nil {
			return err
		}
	}

	// Annihilation and complements.
	if err = annihilates(a, res.NullSpace, scaled); err != nil {
		return err
	}
	if err = annihilates(at, res.LeftNullSpace, scaled); err != nil {
		return err
	}
	if err = orthogonal(res.ColumnSpace, res.LeftNullSpace, tol); err != nil {
		return err
	}

	return orthogonal(res.RowSpace, res.NullSpace, tol)
}

func verifyErrorf(format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", opVerify, ErrVerification, fmt.Sprintf(format, args...))
}

// checkBasis validates shape, zero placeholder and orthonormal columns.
func checkBasis(s Space, ambientDim int, tol float64) error {
	if s.Basis == nil {
		return verifyErrorf("%s: missing basis", s.Name)
	}
	want := max(s.Dimension, 1)
	if s.Basis.Rows() != ambientDim || s.Basis.Cols() != want {
		return verifyErrorf("%s: basis is %dx%d, want %dx%d", s.Name, s.Basis.Rows(), s.Basis.Cols(), ambientDim, want)
	}
	if s.Trivial() {
		if matrix.MaxAbs(s.Basis) != 0 {
			return verifyErrorf("%s: trivial subspace placeholder is not zero", s.Name)
		}
		return nil
	}

	ok, err := matrix.IsOrthonormal(s.Basis, matrix.WithEpsilon(tol))
	if err != nil {
		return verifyErrorf("%s: %v", s.Name, err)
	}
	if ok {
		return nil
	}

	// Name the first offending pair.
	vecs := s.Vectors()
	for i := range vecs {
		for j := i; j < len(vecs); j++ {
			dot, err := matrix.Dot(vecs[i], vecs[j])
			if err != nil {
				return verifyErrorf("%s: %v", s.Name, err)
			}
			want := 0.0
			if i == j {
				want = 1
			}
			if !(math.Abs(dot-want) <= tol) {
				return verifyErrorf("%s: <v%d, v%d> = %g, want %g", s.Name, i, j, dot, want)
			}
		}
	}

	return verifyErrorf("%s: columns are not orthonormal", s.Name)
}

// annihilates checks a·v ≈ 0 for every vector of a non-trivial space.
func annihilates(a matrix.Matrix, s Space, tol float64) error {
	for j, v := range s.Vectors() {
		y, err := matrix.MatVec(a, v)
		if err != nil {
			return verifyErrorf("%s: %v", s.Name, err)
		}
		if nrm := matrix.Norm2(y); !(nrm <= tol) {
			return verifyErrorf("%s: |A v%d| = %g exceeds %g", s.Name, j, nrm, tol)
		}
	}

	return nil
}

// orthogonal checks <u, v> ≈ 0 across two spaces sharing an ambient space.
func orthogonal(s, t Space, tol float64) error {
	for i, u := range s.Vectors() {
		for j, v := range t.Vectors() {
			dot, err := matrix.Dot(u, v)
			if err != nil {
				return verifyErrorf("%s vs %s: %v", s.Name, t.Name, err)
			}
			if !(math.Abs(dot) <= tol) {
				return verifyErrorf("%s v%d not orthogonal to %s v%d: %g", s.Name, i, t.Name, j, dot)
			}
		}
	}

	return nil
}
