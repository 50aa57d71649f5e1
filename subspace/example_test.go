// SPDX-License-Identifier: MIT
package subspace_test

import (
	"errors"
	"fmt"

	"github.com/troy-haydens-bot/Strang-4-subspace/subspace"
)

// ExampleCompute derives all four subspaces of a rank-one matrix.
func ExampleCompute() {
	res, err := subspace.Compute([][]float64{{1, 2}, {2, 4}})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("rank:", res.Dimensions.Rank)
	for _, s := range res.Spaces() {
		fmt.Printf("%s: dim %d in %s\n", s.Name, s.Dimension, s.Ambient)
	}
	v := res.NullSpace.Vectors()[0]
	fmt.Printf("N(A) direction x/y = %.3f\n", v[0]/v[1])

	// Output:
	// rank: 1
	// Column Space C(A): dim 1 in R^2
	// Null Space N(A): dim 1 in R^2
	// Row Space C(A^T): dim 1 in R^2
	// Left Null Space N(A^T): dim 1 in R^2
	// N(A) direction x/y = -2.000
}

// ExampleEngine_Compute shows size limits and the error categories.
func ExampleEngine_Compute() {
	e := subspace.New(subspace.WithMaxDims(3, 3))

	_, err := e.Compute([][]float64{{1, 2, 3, 4}})
	fmt.Println(errors.Is(err, subspace.ErrInvalidInput), errors.Is(err, subspace.ErrTooLarge))

	_, err = e.Compute([][]float64{{1, 2}, {3}})
	fmt.Println(errors.Is(err, subspace.ErrInvalidInput), errors.Is(err, subspace.ErrNumericalFailure))

	// Output:
	// true true
	// true false
}

// ExampleVerify checks a result numerically.
func ExampleVerify() {
	res, _ := subspace.Compute([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	fmt.Println(res.Dimensions.Rank, subspace.Verify(res, 0))

	// Output:
	// 2 <nil>
}
