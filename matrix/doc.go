// SPDX-License-Identifier: MIT

// Package matrix offers dense linear-algebra primitives for small real matrices.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and a
//     NaN/Inf numeric policy, plus NewDenseFromRows for validated ingestion
//     of [][]float64 input (empty, ragged and non-finite rows are rejected).
//   - Kernels: Transpose, Mul, MatVec, Dot, Norm2, MaxAbs, AllClose.
//   - Decompositions: economic Householder QR with column pivoting (QR) and
//     full singular value decomposition (SVD, backed by gonum).
//
// Every kernel validates its inputs through validators.go and reports failures
// with the sentinels in errors.go, wrapped with an operation tag:
//
//	q, _, _, err := matrix.QR(a)
//	if errors.Is(err, matrix.ErrNaNInf) { ... }
//
// Inputs are never mutated; every result is a freshly allocated *Dense.
package matrix
