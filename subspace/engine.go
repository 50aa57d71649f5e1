// SPDX-License-Identifier: MIT

package subspace

import (
	"fmt"
	"time"

	"github.com/troy-haydens-bot/Strang-4-subspace/matrix"
)

// Engine computes the four fundamental subspaces. It holds only immutable
// configuration and is safe for concurrent use.
type Engine struct {
	opts Options
}

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	return &Engine{opts: gatherOptions(opts...)}
}

// Compute is a convenience wrapper around New(opts...).Compute(rows).
func Compute(rows [][]float64, opts ...Option) (*Result, error) {
	return New(opts...).Compute(rows)
}

// Compute derives rank and the four orthonormal bases of the matrix given as rows.
// MAIN DESCRIPTION:
//   - Single entry point for callers holding decoded [][]float64 data.
//
// Implementation:
//   - Stage 1: reject empty/ragged rows, then the size limits, before copying anything.
//   - Stage 2: copy into *matrix.Dense (rejects NaN/±Inf).
//   - Stage 3: ComputeMatrix.
//
// Errors:
//   - ErrInvalidInput (joined with matrix.ErrEmpty / ErrRagged / ErrNaNInf or ErrTooLarge).
//   - ErrNumericalFailure.
//
// No partial result is ever returned alongside an error.
func (e *Engine) Compute(rows [][]float64) (*Result, error) {
	if err := matrix.ValidateRectangular(rows); err != nil {
		return nil, e.fail(invalidInput(opCompute, err))
	}
	if err := e.checkLimits(len(rows), len(rows[0])); err != nil {
		return nil, e.fail(err)
	}
	a, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, e.fail(invalidInput(opCompute, err))
	}

	return e.compute(a)
}

// ComputeMatrix is Compute for callers that already hold a Matrix.
// The input is copied; later mutation by the caller does not affect the Result.
func (e *Engine) ComputeMatrix(a matrix.Matrix) (*Result, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, e.fail(invalidInput(opCompute, err))
	}
	if err := e.checkLimits(a.Rows(), a.Cols()); err != nil {
		return nil, e.fail(err)
	}
	if err := matrix.ValidateFinite(a); err != nil {
		return nil, e.fail(invalidInput(opCompute, err))
	}
	d, err := matrix.NewDense(a.Rows(), a.Cols())
	if err != nil {
		return nil, e.fail(invalidInput(opCompute, err))
	}
	var v float64
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			if v, err = a.At(i, j); err != nil {
				return nil, e.fail(invalidInput(opCompute, err))
			}
			_ = d.Set(i, j, v) // finite and in range: validated above
		}
	}

	return e.compute(d)
}

// compute runs the pipeline on a private, validated copy: rank once, then each
// deriver exactly once with that rank.
func (e *Engine) compute(a *matrix.Dense) (*Result, error) {
	start := time.Now()

	r, err := estimateRank(a, e.opts.tol)
	if err != nil {
		return nil, e.fail(err)
	}

	col, err := ColumnSpace(a, r)
	if err != nil {
		return nil, e.fail(err)
	}
	null, err := NullSpace(a, r)
	if err != nil {
		return nil, e.fail(err)
	}
	row, err := RowSpace(a, r)
	if err != nil {
		return nil, e.fail(err)
	}
	left, err := LeftNullSpace(a, r)
	if err != nil {
		return nil, e.fail(err)
	}

	for _, b := range []struct {
		name  string
		basis *matrix.Dense
	}{{NameColumnSpace, col}, {NameNullSpace, null}, {NameRowSpace, row}, {NameLeftNullSpace, left}} {
		if err = matrix.ValidateFinite(b.basis); err != nil {
			return nil, e.fail(numericalFailure(opCompute, fmt.Errorf("%s basis (%v): %w", b.name, err, matrix.ErrDecomposition)))
		}
	}

	res := assemble(a, r, col, null, row, left)
	e.opts.logger.Debug().
		Int("m", res.Dimensions.M).
		Int("n", res.Dimensions.N).
		Int("rank", r).
		Dur("elapsed", time.Since(start)).
		Msg("subspaces computed")

	return res, nil
}

// checkLimits enforces WithMaxDims.
func (e *Engine) checkLimits(m, n int) error {
	if (e.opts.maxRows > 0 && m > e.opts.maxRows) || (e.opts.maxCols > 0 && n > e.opts.maxCols) {
		return invalidInput(opCompute, fmt.Errorf("%dx%d matrix, limit %dx%d: %w", m, n, e.opts.maxRows, e.opts.maxCols, ErrTooLarge))
	}

	return nil
}

// fail logs err at warn level and returns it unchanged.
func (e *Engine) fail(err error) error {
	e.opts.logger.Warn().Err(err).Msg("subspace computation failed")

	return err
}

// Limits reports the configured size limits (0 = unlimited).
func (e *Engine) Limits() (rows, cols int) { return e.opts.maxRows, e.opts.maxCols }
