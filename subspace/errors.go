// SPDX-License-Identifier: MIT
// Package subspace: sentinel error set.
// Every failure returned by the engine matches exactly one category sentinel
// (ErrInvalidInput or ErrNumericalFailure) and, through %w, the matrix-level
// cause (matrix.ErrRagged, matrix.ErrNaNInf, matrix.ErrDecomposition, ...).

package subspace

import (
	"errors"
	"fmt"

	"github.com/troy-haydens-bot/Strang-4-subspace/matrix"
)

var (
	// ErrInvalidInput covers empty, ragged, oversized or non-finite matrices and
	// out-of-range rank arguments. Detected before any decomposition runs.
	ErrInvalidInput = errors.New("subspace: invalid input")

	// ErrNumericalFailure covers decompositions that fail to converge or return
	// factors of inconsistent shape. Deterministic for a given input; never retried.
	ErrNumericalFailure = errors.New("subspace: numerical failure")

	// ErrTooLarge is joined with ErrInvalidInput when a matrix exceeds the
	// limits configured with WithMaxDims.
	ErrTooLarge = errors.New("subspace: matrix exceeds size limit")

	// ErrVerification is returned by Verify when a result violates an invariant.
	ErrVerification = errors.New("subspace: verification failed")
)

// Operation tags used in error prefixes.
const (
	opCompute       = "Compute"
	opRank          = "Rank"
	opColumnSpace   = "ColumnSpace"
	opRowSpace      = "RowSpace"
	opNullSpace     = "NullSpace"
	opLeftNullSpace = "LeftNullSpace"
	opVerify        = "Verify"
)

// invalidInput tags err with op and the ErrInvalidInput category.
func invalidInput(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
}

// numericalFailure tags err with op and the ErrNumericalFailure category.
func numericalFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrNumericalFailure, err)
}

// classify maps a matrix kernel error onto its category: caller-data problems
// are invalid input, everything else is a numerical failure.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, matrix.ErrNaNInf),
		errors.Is(err, matrix.ErrNilMatrix),
		errors.Is(err, matrix.ErrEmpty),
		errors.Is(err, matrix.ErrRagged),
		errors.Is(err, matrix.ErrInvalidDimensions):
		return invalidInput(op, err)
	default:
		return numericalFailure(op, err)
	}
}
