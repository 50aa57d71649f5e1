// SPDX-License-Identifier: MIT

package subspace

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/troy-haydens-bot/Strang-4-subspace/matrix"
)

// Defaults (single source of truth).
const (
	// DefaultMaxRows / DefaultMaxCols = 0 means no limit; callers impose their own.
	DefaultMaxRows = 0
	DefaultMaxCols = 0

	// DefaultTolerance = 0 selects the automatic rank tolerance (see Tolerance).
	DefaultTolerance = 0.0

	// DefaultVerifyTolerance is the relative tolerance used by Verify.
	DefaultVerifyTolerance = matrix.DefaultEpsilon
)

const (
	panicMaxDimsInvalid   = "subspace: WithMaxDims: limits must be non-negative"
	panicToleranceInvalid = "subspace: WithTolerance: tol must be finite, non-negative"
)

// Option configures an Engine. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options is the resolved engine configuration.
type Options struct {
	maxRows, maxCols int
	tol              float64
	logger           zerolog.Logger
}

// WithMaxDims rejects matrices with more than rows×cols entries per side
// (ErrInvalidInput + ErrTooLarge) before any work is done. Zero disables a side.
func WithMaxDims(rows, cols int) Option {
	if rows < 0 || cols < 0 {
		panic(panicMaxDimsInvalid)
	}

	return func(o *Options) { o.maxRows, o.maxCols = rows, cols }
}

// WithTolerance fixes an absolute singular-value threshold for the rank
// estimator. Zero restores the automatic σ_max·max(m,n)·ε policy.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithLogger attaches a structured logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		maxRows: DefaultMaxRows,
		maxCols: DefaultMaxCols,
		tol:     DefaultTolerance,
		logger:  zerolog.Nop(),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
