// Package subspaces computes the four fundamental subspaces of a real matrix:
// rank plus orthonormal bases for C(A), N(A), C(Aᵀ) and N(Aᵀ).
//
// What is in the module?
//
//	• Rank: SVD with the σ_max·max(m,n)·ε threshold
//	• Column / row space: column-pivoted Householder QR of A and Aᵀ
//	• Null / left null space: trailing right singular vectors of A and Aᵀ
//	• Verification: orthonormality, annihilation, complement checks
//	• Callers: a CLI and a small HTTP API for the browser visualizer
//
// Layout:
//
//	matrix/            — Dense type, validators, QR, SVD (gonum-backed)
//	subspace/          — Engine, derivers, Result, Verify
//	internal/config/   — YAML configuration with env overrides
//	internal/logging/  — zerolog setup
//	internal/httpapi/  — gorilla/mux server, Prometheus metrics
//	cmd/subspaces/     — cobra CLI (compute, serve, version)
//
// The theorem in one picture, for A of size m×n and rank r:
//
//	   R^n                         R^m
//	┌──────────┐       A       ┌──────────┐
//	│ C(Aᵀ)  r │ ────────────▶ │ C(A)   r │
//	│    ⊥     │               │    ⊥     │
//	│ N(A) n-r │ ──▶ 0         │ N(Aᵀ) m-r│
//	└──────────┘               └──────────┘
//
// Quick start:
//
//	res, err := subspace.Compute([][]float64{{1, 2}, {2, 4}})
//	// res.Dimensions.Rank == 1, res.NullSpace.Vectors()[0] ∝ [2, -1]
//
//	go install github.com/troy-haydens-bot/Strang-4-subspace/cmd/subspaces@latest
package subspaces
