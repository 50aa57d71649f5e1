// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/troy-haydens-bot/Strang-4-subspace/matrix"
)

// tol is the absolute tolerance for reconstruction checks on O(1)-sized fixtures.
const tol = 1e-9

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the non-*Dense (fallback) paths.
type hide struct{ matrix.Matrix }

// MustDense ALLOCATES an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return d
}

// MustRows BUILDS a *Dense from literal rows or fails the test.
func MustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return d
}

// MustAt READS m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// MustSet WRITES m[i,j]=v or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v))
}

// requireClose ASSERTS AllClose(a, b) with absolute tolerance tol.
func requireClose(t *testing.T, want, got matrix.Matrix) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, tol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ:\nwant:\n%v\ngot:\n%v", want, got)
}

// requireOrthonormalCols ASSERTS QᵀQ ≈ I for the columns of q.
func requireOrthonormalCols(t *testing.T, q *matrix.Dense) {
	t.Helper()
	qt, err := matrix.Transpose(q)
	require.NoError(t, err)
	gram, err := matrix.Mul(qt, q)
	require.NoError(t, err)
	id, err := matrix.NewIdentity(q.Cols())
	require.NoError(t, err)
	requireClose(t, id, gram)
}

// permuteCols RETURNS A·P where column j of the result is column perm[j] of a.
func permuteCols(t *testing.T, a *matrix.Dense, perm []int) *matrix.Dense {
	t.Helper()
	rows := make([]int, a.Rows())
	for i := range rows {
		rows[i] = i
	}
	out, err := a.Induced(rows, perm)
	require.NoError(t, err)

	return out
}

// fixtures are shared across QR/SVD tests: tall, wide, square, rank-deficient.
var fixtures = map[string][][]float64{
	"square_invertible": {{4, 1, 2}, {1, 3, 0}, {2, 0, 5}},
	"tall_full_rank":    {{1, 2}, {3, 4}, {5, 6}, {7, 8}},
	"wide_full_rank":    {{1, 0, 2, -1}, {0, 3, 1, 2}},
	"rank_one":          {{1, 2}, {2, 4}},
	"rank_two_3x3":      {{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
	"dependent_leading": {{0, 0, 1}, {0, 0, 1}},
	"zero":              {{0, 0}, {0, 0}, {0, 0}},
	"single":            {{-3}},
}

// sqrtHalf is 1/√2, the entry of normalized [1,1].
var sqrtHalf = 1 / math.Sqrt2
