// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"context"
	"fmt"
	"sync"
)

// SimilarityMatrix is a dense, symmetric N×N matrix of cosine similarities
// stored row-major. Memory is 8·N² bytes regardless of vector sparsity:
// about 184 MB for 4,800 entries and 3.2 GB for 20,000.
//
// A matrix is read-only once returned by ComputeCosineMatrix.
type SimilarityMatrix struct {
	n    int
	data []float64
}

// MatrixBytes returns the memory needed for an n×n matrix.
func MatrixBytes(n int) int64 {
	return int64(n) * int64(n) * 8
}

func newSimilarityMatrix(n int) *SimilarityMatrix {
	return &SimilarityMatrix{n: n, data: make([]float64, n*n)}
}

// Size returns N.
func (m *SimilarityMatrix) Size() int {
	return m.n
}

// At returns similarity[i][j].
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Row returns a read-only view of row i. Callers must not modify it.
func (m *SimilarityMatrix) Row(i int) []float64 {
	return m.data[i*m.n : (i+1)*m.n : (i+1)*m.n]
}

// Bytes returns the memory held by the matrix values.
func (m *SimilarityMatrix) Bytes() int64 {
	return MatrixBytes(m.n)
}

func (m *SimilarityMatrix) set(i, j int, v float64) {
	m.data[i*m.n+j] = v
	m.data[j*m.n+i] = v
}

// ComputeCosineMatrix computes pairwise cosine similarity over vectors.
//
// Norms are recomputed from the vectors, so inputs need not be normalized.
// Each unordered pair is computed once and written to both cells, making the
// matrix exactly symmetric. The diagonal is 1 for a non-zero vector; a
// zero-norm vector has an all-zero row and column, diagonal included.
//
// Rows are distributed across workers by stride (worker w owns rows w, w+W,
// ...). A cell is only ever written by the owner of its smaller index, and
// the arithmetic per cell does not depend on the worker count, so results are
// bit-identical for any worker setting. workers <= 0 selects runtime.NumCPU().
func ComputeCosineMatrix(ctx context.Context, vectors []SparseVector, workers int) (*SimilarityMatrix, error) {
	n := len(vectors)
	m := newSimilarityMatrix(n)
	if n == 0 {
		return m, nil
	}

	norms := make([]float64, n)
	for i := range vectors {
		if len(vectors[i].Indices) != len(vectors[i].Values) {
			return nil, fmt.Errorf("vector %d has %d indices and %d values", i, len(vectors[i].Indices), len(vectors[i].Values))
		}
		norms[i] = vectors[i].Norm()
	}

	numWorkers := EffectiveWorkers(workers, n)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(first int) {
			defer wg.Done()

			for i := first; i < n; i += numWorkers {
				if ContextCancelled(ctx) {
					return
				}
				computeRow(m, vectors, norms, i)
			}
		}(w)
	}

	wg.Wait()

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	return m, nil
}

// computeRow fills cells (i, j) and (j, i) for j >= i.
func computeRow(m *SimilarityMatrix, vectors []SparseVector, norms []float64, i int) {
	if norms[i] == 0 {
		return
	}
	m.data[i*m.n+i] = 1

	for j := i + 1; j < m.n; j++ {
		if norms[j] == 0 {
			continue
		}
		dot := Dot(vectors[i], vectors[j])
		if dot == 0 {
			continue
		}
		m.set(i, j, clampUnit(dot/(norms[i]*norms[j])))
	}
}
