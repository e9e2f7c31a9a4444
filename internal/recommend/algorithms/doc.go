// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package algorithms implements the numeric core of content-based
// recommendation: tokenization, TF-IDF vectorization, pairwise cosine
// similarity and top-N ranking.
//
// # Pipeline
//
//	corpus ──► TFIDFVectorizer.Build ──► []SparseVector
//	                                         │
//	                                         ▼
//	                              ComputeCosineMatrix ──► SimilarityMatrix
//	                                                            │
//	matched entry ID ──────────────────────────────────────► Rank ──► []RankedItem
//
// # Determinism
//
// Every stage produces bit-identical output for identical input. The
// vocabulary is ordered lexicographically, sparse vectors keep their indices
// sorted, and the similarity matrix is split across workers so that each cell
// is computed by exactly one goroutine with the same operand order regardless
// of the worker count.
//
// # Memory
//
// The similarity matrix is dense: 8·N² bytes for N entries. Use MatrixBytes
// to check the cost before building.
//
// # Thread Safety
//
// Vectorizers and tokenizers are safe for concurrent use. Models and matrices
// are immutable once built and may be shared freely between goroutines.
package algorithms
