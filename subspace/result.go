// SPDX-License-Identifier: MIT

package subspace

import (
	"encoding/json"
	"fmt"

	"github.com/troy-haydens-bot/Strang-4-subspace/matrix"
)

// Display names of the four subspaces.
const (
	NameColumnSpace   = "Column Space C(A)"
	NameNullSpace     = "Null Space N(A)"
	NameRowSpace      = "Row Space C(A^T)"
	NameLeftNullSpace = "Left Null Space N(A^T)"
)

// Static orthogonality annotations. They state the theorem, not a numeric check;
// use Verify for the latter.
const (
	AnnotationColumnLeftNull = "C(A) ⊥ N(A^T) - Orthogonal complements in R^m"
	AnnotationRowNull        = "C(A^T) ⊥ N(A) - Orthogonal complements in R^n"
)

// Dimensions of the input and its rank.
type Dimensions struct {
	M    int `json:"m" yaml:"m"`
	N    int `json:"n" yaml:"n"`
	Rank int `json:"rank" yaml:"rank"`
}

// Space describes one fundamental subspace.
//
// Basis is ambient×max(Dimension,1). When Dimension is 0 the single column is
// all zeros: a placeholder that keeps the output shape regular, NOT a basis
// vector. Consumers must branch on Dimension, never on the basis width.
type Space struct {
	Name      string
	Dimension int
	Ambient   string
	Basis     *matrix.Dense
}

// Trivial reports whether the subspace is {0}.
func (s Space) Trivial() bool { return s.Dimension == 0 }

// Vectors returns the basis vectors (columns of Basis); nil for a trivial subspace.
func (s Space) Vectors() [][]float64 {
	if s.Trivial() || s.Basis == nil {
		return nil
	}
	out := make([][]float64, s.Dimension)
	for j := range out {
		out[j], _ = s.Basis.Col(j)
	}

	return out
}

// spaceWire is the encoded form: basis as a list of rows of the ambient×width matrix.
type spaceWire struct {
	Name      string      `json:"name" yaml:"name"`
	Dimension int         `json:"dimension" yaml:"dimension"`
	Ambient   string      `json:"ambient" yaml:"ambient"`
	Basis     [][]float64 `json:"basis" yaml:"basis"`
}

func (s Space) wire() spaceWire {
	w := spaceWire{Name: s.Name, Dimension: s.Dimension, Ambient: s.Ambient}
	if s.Basis != nil {
		w.Basis = s.Basis.RowSlices()
	}

	return w
}

// MarshalJSON encodes the basis as rows.
func (s Space) MarshalJSON() ([]byte, error) { return json.Marshal(s.wire()) }

// MarshalYAML encodes the basis as rows.
func (s Space) MarshalYAML() (interface{}, error) { return s.wire(), nil }

// Orthogonality carries the two static complement annotations.
type Orthogonality struct {
	ColumnNull  string `json:"column_null" yaml:"column_null"`
	RowLeftNull string `json:"row_left_null" yaml:"row_left_null"`
}

// Result is the immutable outcome of one Compute call.
type Result struct {
	Matrix        [][]float64   `json:"matrix" yaml:"matrix"`
	Dimensions    Dimensions    `json:"dimensions" yaml:"dimensions"`
	ColumnSpace   Space         `json:"column_space" yaml:"column_space"`
	NullSpace     Space         `json:"null_space" yaml:"null_space"`
	RowSpace      Space         `json:"row_space" yaml:"row_space"`
	LeftNullSpace Space         `json:"left_null_space" yaml:"left_null_space"`
	Orthogonality Orthogonality `json:"orthogonality" yaml:"orthogonality"`
}

// Spaces returns the four descriptors in canonical order.
func (r *Result) Spaces() []Space {
	return []Space{r.ColumnSpace, r.NullSpace, r.RowSpace, r.LeftNullSpace}
}

// ambient formats the label of R^k.
func ambient(k int) string { return fmt.Sprintf("R^%d", k) }

// assemble packs derived bases into a Result. It performs no numerical work.
func assemble(a *matrix.Dense, r int, col, null, row, left *matrix.Dense) *Result {
	m, n := a.Shape()

	return &Result{
		Matrix:        a.RowSlices(),
		Dimensions:    Dimensions{M: m, N: n, Rank: r},
		ColumnSpace:   Space{Name: NameColumnSpace, Dimension: r, Ambient: ambient(m), Basis: col},
		NullSpace:     Space{Name: NameNullSpace, Dimension: n - r, Ambient: ambient(n), Basis: null},
		RowSpace:      Space{Name: NameRowSpace, Dimension: r, Ambient: ambient(n), Basis: row},
		LeftNullSpace: Space{Name: NameLeftNullSpace, Dimension: m - r, Ambient: ambient(m), Basis: left},
		Orthogonality: Orthogonality{
			ColumnNull:  AnnotationColumnLeftNull,
			RowLeftNull: AnnotationRowNull,
		},
	}
}
