// SPDX-License-Identifier: MIT

// Package subspace computes the four fundamental subspaces of a real matrix.
//
// For an m×n matrix A of rank r:
//
//	C(A)   column space      dim r      in R^m   QR of A, leading r columns of Q
//	N(A)   null space        dim n-r    in R^n   SVD of A, trailing n-r columns of V
//	C(Aᵀ)  row space         dim r      in R^n   QR of Aᵀ, leading r columns of Q
//	N(Aᵀ)  left null space   dim m-r    in R^m   SVD of Aᵀ, trailing m-r columns of V
//
// The rank is estimated once per matrix (singular values above
// σ_max·max(m,n)·ε) and passed explicitly to every deriver, so the four bases
// can never disagree about it.
//
// A trivial subspace {0} is reported with Dimension 0 and a single zero column
// of the ambient size. The zero column only keeps the output rectangular; it is
// not a basis vector.
//
// Usage:
//
//	res, err := subspace.Compute([][]float64{{1, 2}, {2, 4}})
//	if errors.Is(err, subspace.ErrInvalidInput) { ... }
//	fmt.Println(res.Dimensions.Rank, res.NullSpace.Vectors())
//
// The package is pure: no I/O, no shared state, no goroutines. An Engine may be
// shared freely between goroutines.
package subspace
