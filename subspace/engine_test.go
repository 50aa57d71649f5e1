// SPDX-License-Identifier: MIT
package subspace_test

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/troy-haydens-bot/Strang-4-subspace/matrix"
	"github.com/troy-haydens-bot/Strang-4-subspace/subspace"
)

// EngineSuite groups end-to-end tests of Engine.Compute.
type EngineSuite struct {
	suite.Suite
	engine *subspace.Engine
}

func (s *EngineSuite) SetupTest() {
	s.engine = subspace.New()
}

// TestIdentity: rank n, C(A) = C(Aᵀ) = I up to sign, both null spaces trivial.
func (s *EngineSuite) TestIdentity() {
	res, err := s.engine.Compute(identityRows(3))
	require.NoError(s.T(), err)
	require.Equal(s.T(), subspace.Dimensions{M: 3, N: 3, Rank: 3}, res.Dimensions)

	for _, sp := range []subspace.Space{res.ColumnSpace, res.RowSpace} {
		require.Equal(s.T(), 3, sp.Dimension)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if i == j {
					want = 1
				}
				v, _ := sp.Basis.At(i, j)
				require.InDelta(s.T(), want, math.Abs(v), tol, "%s[%d,%d]", sp.Name, i, j)
			}
		}
	}
	for _, sp := range []subspace.Space{res.NullSpace, res.LeftNullSpace} {
		require.True(s.T(), sp.Trivial())
		require.Equal(s.T(), [][]float64{{0}, {0}, {0}}, sp.Basis.RowSlices())
	}
	require.NoError(s.T(), subspace.Verify(res, 0))
}

// TestZeroMatrix: rank 0, C(A) and C(Aᵀ) trivial, N(A) = R^n, N(Aᵀ) = R^m.
func (s *EngineSuite) TestZeroMatrix() {
	res, err := s.engine.Compute([][]float64{{0, 0, 0}, {0, 0, 0}})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0, res.Dimensions.Rank)

	require.Equal(s.T(), [][]float64{{0}, {0}}, res.ColumnSpace.Basis.RowSlices())
	require.Equal(s.T(), [][]float64{{0}, {0}, {0}}, res.RowSpace.Basis.RowSlices())
	require.Equal(s.T(), 3, res.NullSpace.Dimension)
	require.Equal(s.T(), 3, res.NullSpace.Basis.Cols())
	require.Equal(s.T(), 2, res.LeftNullSpace.Dimension)
	require.Equal(s.T(), 2, res.LeftNullSpace.Basis.Cols())
	require.NoError(s.T(), subspace.Verify(res, 0))
}

// TestRankOne: [[1,2],[2,4]] has a one-dimensional kernel along [2,-1].
func (s *EngineSuite) TestRankOne() {
	a := [][]float64{{1, 2}, {2, 4}}
	res, err := s.engine.Compute(a)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, res.Dimensions.Rank)
	require.Equal(s.T(), 1, res.NullSpace.Dimension)
	require.Equal(s.T(), 1, res.LeftNullSpace.Dimension)

	v := res.NullSpace.Vectors()[0]
	require.InDelta(s.T(), 2/math.Sqrt(5), math.Abs(v[0]), tol)
	require.InDelta(s.T(), 1/math.Sqrt(5), math.Abs(v[1]), tol)
	require.InDelta(s.T(), -2.0, v[0]/v[1], tol)

	av, err := matrix.MatVec(mustDense(s.T(), a), v)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 0, matrix.Norm2(av), tol)
	require.NoError(s.T(), subspace.Verify(res, 0))
}

// TestDependentLeadingColumns: the column space must follow the only non-zero column.
func (s *EngineSuite) TestDependentLeadingColumns() {
	res, err := s.engine.Compute([][]float64{{0, 0, 1}, {0, 0, 1}})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, res.Dimensions.Rank)
	c := res.ColumnSpace.Vectors()[0]
	require.InDelta(s.T(), c[0], c[1], tol)
	require.InDelta(s.T(), 1/math.Sqrt2, math.Abs(c[0]), tol)
	require.NoError(s.T(), subspace.Verify(res, 0))
}

// TestMalformedInput: no partial result, ErrInvalidInput plus the matrix cause.
func (s *EngineSuite) TestMalformedInput() {
	cases := []struct {
		name  string
		rows  [][]float64
		cause error
	}{
		{"ragged", [][]float64{{1, 2}, {3}}, matrix.ErrRagged},
		{"empty", [][]float64{}, matrix.ErrEmpty},
		{"nil", nil, matrix.ErrEmpty},
		{"empty_row", [][]float64{{}}, matrix.ErrEmpty},
		{"nan", [][]float64{{1, math.NaN()}, {0, 1}}, matrix.ErrNaNInf},
		{"inf", [][]float64{{math.Inf(1)}}, matrix.ErrNaNInf},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			res, err := s.engine.Compute(tc.rows)
			require.Nil(s.T(), res)
			require.ErrorIs(s.T(), err, subspace.ErrInvalidInput)
			require.ErrorIs(s.T(), err, tc.cause)
			require.NotErrorIs(s.T(), err, subspace.ErrNumericalFailure)
		})
	}
}

// TestSizeLimit: limits are checked before ingestion, so even NaN data over the
// limit reports ErrTooLarge.
func (s *EngineSuite) TestSizeLimit() {
	e := subspace.New(subspace.WithMaxDims(3, 3))
	rows, cols := e.Limits()
	require.Equal(s.T(), 3, rows)
	require.Equal(s.T(), 3, cols)

	_, err := e.Compute([][]float64{{1, 2, 3, math.NaN()}})
	require.ErrorIs(s.T(), err, subspace.ErrInvalidInput)
	require.ErrorIs(s.T(), err, subspace.ErrTooLarge)

	_, err = e.Compute(identityRows(4))
	require.ErrorIs(s.T(), err, subspace.ErrTooLarge)

	res, err := e.Compute(identityRows(3))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, res.Dimensions.Rank)

	// Zero on one side disables that side only.
	_, err = subspace.New(subspace.WithMaxDims(0, 2)).Compute([][]float64{{1}, {2}, {3}, {4}, {5}})
	require.NoError(s.T(), err)
}

// TestComputeMatrix accepts any Matrix and copies it.
func (s *EngineSuite) TestComputeMatrix() {
	a := mustDense(s.T(), [][]float64{{1, 2}, {2, 4}})
	res, err := s.engine.ComputeMatrix(a)
	require.NoError(s.T(), err)
	require.NoError(s.T(), a.Set(0, 0, 100))
	require.Equal(s.T(), 1.0, res.Matrix[0][0])
	require.Equal(s.T(), 1, res.Dimensions.Rank)

	_, err = s.engine.ComputeMatrix(nil)
	require.ErrorIs(s.T(), err, subspace.ErrInvalidInput)

	bad, err := matrix.NewDenseFromRows([][]float64{{math.NaN()}}, matrix.WithNoValidateNaNInf())
	require.NoError(s.T(), err)
	_, err = s.engine.ComputeMatrix(bad)
	require.ErrorIs(s.T(), err, matrix.ErrNaNInf)
}

// TestInputNotRetained: mutating the caller's rows after Compute changes nothing.
func (s *EngineSuite) TestInputNotRetained() {
	rows := [][]float64{{1, 0}, {0, 1}}
	res, err := s.engine.Compute(rows)
	require.NoError(s.T(), err)
	rows[0][0] = 42
	require.Equal(s.T(), [][]float64{{1, 0}, {0, 1}}, res.Matrix)
}

// TestLogger: failures are logged at warn level through the injected logger.
func (s *EngineSuite) TestLogger() {
	var buf bytes.Buffer
	e := subspace.New(subspace.WithLogger(zerolog.New(&buf)))
	_, err := e.Compute([][]float64{{1, 2}, {3}})
	require.Error(s.T(), err)
	require.Contains(s.T(), buf.String(), `"level":"warn"`)
	require.Contains(s.T(), buf.String(), "unequal length")
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

// TestProperties runs the rank-nullity and orthogonality properties over random
// full-rank and rank-deficient matrices of every shape up to 5×5.
func TestProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(20240601))
	e := subspace.New()
	for m := 1; m <= 5; m++ {
		for n := 1; n <= 5; n++ {
			for k := 0; k <= min(m, n); k++ {
				a := lowRank(rng, m, n, k)
				t.Run(fmt.Sprintf("%dx%d_rank%d", m, n, k), func(t *testing.T) {
					res, err := e.Compute(a)
					require.NoError(t, err)
					r := res.Dimensions.Rank
					require.Equal(t, k, r)
					require.Equal(t, r, res.ColumnSpace.Dimension)
					require.Equal(t, r, res.RowSpace.Dimension)
					require.Equal(t, n-r, res.NullSpace.Dimension)
					require.Equal(t, m-r, res.LeftNullSpace.Dimension)
					require.Equal(t, fmt.Sprintf("R^%d", m), res.ColumnSpace.Ambient)
					require.Equal(t, fmt.Sprintf("R^%d", n), res.NullSpace.Ambient)
					require.Equal(t, fmt.Sprintf("R^%d", n), res.RowSpace.Ambient)
					require.Equal(t, fmt.Sprintf("R^%d", m), res.LeftNullSpace.Ambient)
					require.NoError(t, subspace.Verify(res, 0))
				})
			}
		}
	}
}

// TestConcurrentCompute: a shared Engine yields identical results from many goroutines.
func TestConcurrentCompute(t *testing.T) {
	e := subspace.New()
	a := [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	want, err := e.Compute(a)
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	results := make([]*subspace.Result, workers)
	errs := make([]error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w], errs[w] = e.Compute(a)
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		require.NoError(t, errs[w])
		require.Equal(t, want.Dimensions, results[w].Dimensions)
		require.Equal(t, want.NullSpace.Basis.RowSlices(), results[w].NullSpace.Basis.RowSlices())
	}
}

// TestComputeExtremeScales keeps bases finite and verifiable for entries near
// the floating-point under/overflow thresholds.
func TestComputeExtremeScales(t *testing.T) {
	cases := []struct {
		base [][]float64
		rank int
	}{
		{[][]float64{{1, 0}, {1, 0}}, 1},
		{[][]float64{{1, 2}, {3, 4}, {5, 6}}, 2},
		{[][]float64{{1, 2, 3}, {4, 5, 6}}, 2},
	}
	e := subspace.New()
	for _, scale := range []float64{1e-200, 1e-170, 1e170, 1e200} {
		for i, tc := range cases {
			t.Run(fmt.Sprintf("%d/%g", i, scale), func(t *testing.T) {
				rows := make([][]float64, len(tc.base))
				for r := range tc.base {
					rows[r] = make([]float64, len(tc.base[r]))
					for c := range tc.base[r] {
						rows[r][c] = tc.base[r][c] * scale
					}
				}
				res, err := e.Compute(rows)
				require.NoError(t, err)
				require.Equal(t, tc.rank, res.Dimensions.Rank)
				require.NoError(t, subspace.Verify(res, 0))
				for _, sp := range res.Spaces() {
					require.NoError(t, matrix.ValidateFinite(sp.Basis), sp.Name)
				}
			})
		}
	}

	// C([[s,0],[s,0]]) is spanned by [1,1]/√2 at any scale.
	for _, scale := range []float64{1e-200, 1e200} {
		res, err := e.Compute([][]float64{{scale, 0}, {scale, 0}})
		require.NoError(t, err)
		v := res.ColumnSpace.Vectors()[0]
		require.InDelta(t, math.Sqrt2/2, math.Abs(v[0]), tol)
		require.InDelta(t, v[0], v[1], tol)
	}
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { subspace.WithMaxDims(-1, 3) })
	require.Panics(t, func() { subspace.WithTolerance(-1) })
	require.Panics(t, func() { subspace.WithTolerance(math.NaN()) })
}
