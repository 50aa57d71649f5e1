// SPDX-License-Identifier: MIT
package subspace_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/troy-haydens-bot/Strang-4-subspace/matrix"
)

const tol = 1e-9

func identityRows(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		out[i][i] = 1
	}

	return out
}

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return d
}

// lowRank builds an m×n integer matrix of exact rank k as L·R with
// L = [I_k; X] (m×k) and R = [I_k | Y] (k×n), X and Y small random integers.
// Rows and columns are then shuffled so the independent ones are not leading.
// All arithmetic is exact in float64.
func lowRank(rng *rand.Rand, m, n, k int) [][]float64 {
	l := make([][]float64, m)
	for i := range l {
		l[i] = make([]float64, k)
		for j := range l[i] {
			if i < k {
				if i == j {
					l[i][j] = 1
				}
				continue
			}
			l[i][j] = float64(rng.Intn(7) - 3)
		}
	}
	r := make([][]float64, k)
	for i := range r {
		r[i] = make([]float64, n)
		for j := range r[i] {
			if j < k {
				if i == j {
					r[i][j] = 1
				}
				continue
			}
			r[i][j] = float64(rng.Intn(7) - 3)
		}
	}

	rowPerm, colPerm := rng.Perm(m), rng.Perm(n)
	out := make([][]float64, m)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			var sum float64
			for p := 0; p < k; p++ {
				sum += l[rowPerm[i]][p] * r[p][colPerm[j]]
			}
			out[i][j] = sum
		}
	}

	return out
}
