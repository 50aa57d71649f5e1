// SPDX-License-Identifier: MIT

package subspace

import (
	"fmt"

	"github.com/troy-haydens-bot/Strang-4-subspace/matrix"
)

// Tolerance returns the automatic rank threshold σ_max · max(m, n) · ε.
// singular must be sorted in non-increasing order (as SVD returns it).
// An empty slice or a zero matrix yields 0.
func Tolerance(singular []float64, m, n int) float64 {
	if len(singular) == 0 {
		return 0
	}

	return singular[0] * float64(max(m, n)) * matrix.MachineEpsilon
}

// Rank estimates the numerical rank of a by counting singular values above the
// tolerance (automatic unless WithTolerance is given).
// MAIN DESCRIPTION:
//   - Result is in [0, min(m, n)]: zero matrix → 0, invertible square → n.
//
// Errors:
//   - ErrInvalidInput for nil or non-finite input.
//   - ErrNumericalFailure when the SVD does not converge.
//
// Determinism:
//   - Same tolerance policy on every call; identical input → identical rank.
func Rank(a matrix.Matrix, opts ...Option) (int, error) {
	o := gatherOptions(opts...)
	if err := matrix.ValidateNotNil(a); err != nil {
		return 0, invalidInput(opRank, err)
	}
	if err := matrix.ValidateFinite(a); err != nil {
		return 0, invalidInput(opRank, err)
	}

	return estimateRank(a, o.tol)
}

// estimateRank assumes validated input. tol = 0 selects Tolerance().
func estimateRank(a matrix.Matrix, tol float64) (int, error) {
	s, err := matrix.SingularValues(a)
	if err != nil {
		return 0, classify(opRank, err)
	}
	if tol == 0 {
		tol = Tolerance(s, a.Rows(), a.Cols())
	}

	r := 0
	for _, v := range s {
		if v > tol {
			r++
		}
	}

	return r, nil
}

// checkRank guards deriver arguments: r ∈ [0, min(m, n)].
func checkRank(op string, a matrix.Matrix, r int) error {
	if err := matrix.ValidateNotNil(a); err != nil {
		return invalidInput(op, err)
	}
	if limit := min(a.Rows(), a.Cols()); r < 0 || r > limit {
		return invalidInput(op, fmt.Errorf("rank %d outside [0, %d]", r, limit))
	}

	return nil
}
