// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
)

func buildMatrix(t *testing.T, vectors []SparseVector, workers int) *SimilarityMatrix {
	t.Helper()

	m, err := ComputeCosineMatrix(context.Background(), vectors, workers)
	if err != nil {
		t.Fatalf("ComputeCosineMatrix() error = %v", err)
	}
	return m
}

func TestComputeCosineMatrix_Scenario(t *testing.T) {
	t.Parallel()

	model, err := NewTFIDFVectorizer(DefaultTFIDFConfig()).Build(context.Background(), scenarioCorpus(t))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	m := buildMatrix(t, model.Vectors, 2)

	if m.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", m.Size())
	}
	for i := 0; i < 3; i++ {
		if math.Abs(m.At(i, i)-1) > 1e-9 {
			t.Errorf("At(%d,%d) = %v, want 1", i, i, m.At(i, i))
		}
	}
	if !(m.At(0, 1) > m.At(0, 2)) {
		t.Errorf("At(0,1) = %v not greater than At(0,2) = %v", m.At(0, 1), m.At(0, 2))
	}
	if m.At(0, 2) != 0 {
		t.Errorf("At(0,2) = %v, want 0 for disjoint genres", m.At(0, 2))
	}
	if m.Bytes() != 72 {
		t.Errorf("Bytes() = %d, want 72", m.Bytes())
	}
}

func TestComputeCosineMatrix_Symmetric(t *testing.T) {
	t.Parallel()

	vectors := []SparseVector{
		{Indices: []int{0, 1, 3}, Values: []float64{0.3, 0.7, 0.1}},
		{Indices: []int{1, 2}, Values: []float64{0.9, 0.2}},
		{Indices: []int{0, 3}, Values: []float64{0.5, 0.5}},
		{Indices: []int{2, 3}, Values: []float64{0.4, 0.6}},
	}
	m := buildMatrix(t, vectors, 3)

	for i := 0; i < m.Size(); i++ {
		for j := 0; j < m.Size(); j++ {
			if m.At(i, j) != m.At(j, i) {
				t.Errorf("At(%d,%d) = %v != At(%d,%d) = %v", i, j, m.At(i, j), j, i, m.At(j, i))
			}
			if v := m.At(i, j); v < -1 || v > 1 || math.IsNaN(v) {
				t.Errorf("At(%d,%d) = %v out of range", i, j, v)
			}
		}
	}
}

func TestComputeCosineMatrix_ZeroVector(t *testing.T) {
	t.Parallel()

	vectors := []SparseVector{
		{Indices: []int{0}, Values: []float64{1}},
		{},
		{Indices: []int{0, 1}, Values: []float64{1, 1}},
	}
	m := buildMatrix(t, vectors, 1)

	for j := 0; j < m.Size(); j++ {
		if m.At(1, j) != 0 || m.At(j, 1) != 0 {
			t.Errorf("zero vector row/column not zero at %d: %v, %v", j, m.At(1, j), m.At(j, 1))
		}
	}
	if m.At(0, 0) != 1 {
		t.Errorf("At(0,0) = %v, want 1", m.At(0, 0))
	}
}

func TestComputeCosineMatrix_WorkerCountIndependent(t *testing.T) {
	t.Parallel()

	vectors := make([]SparseVector, 37)
	for i := range vectors {
		vectors[i] = SparseVector{
			Indices: []int{i % 5, 5 + i%7, 12 + i%3},
			Values:  []float64{float64(i%4) + 0.5, 1.0 / float64(i+1), 0.25},
		}
	}

	want := buildMatrix(t, vectors, 1)
	for _, workers := range []int{2, 4, 8, 64, 0} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got := buildMatrix(t, vectors, workers)
			for i := 0; i < want.Size(); i++ {
				for j := 0; j < want.Size(); j++ {
					if got.At(i, j) != want.At(i, j) {
						t.Fatalf("At(%d,%d) = %v, want %v", i, j, got.At(i, j), want.At(i, j))
					}
				}
			}
		})
	}
}

func TestComputeCosineMatrix_NormsRecomputed(t *testing.T) {
	t.Parallel()

	// Unnormalized inputs still produce a unit diagonal.
	vectors := []SparseVector{
		{Indices: []int{0, 1}, Values: []float64{3, 4}},
		{Indices: []int{0, 1}, Values: []float64{6, 8}},
	}
	m := buildMatrix(t, vectors, 1)
	if m.At(0, 0) != 1 {
		t.Errorf("At(0,0) = %v, want 1", m.At(0, 0))
	}
	if math.Abs(m.At(0, 1)-1) > 1e-12 {
		t.Errorf("At(0,1) = %v, want 1", m.At(0, 1))
	}
}

func TestComputeCosineMatrix_Empty(t *testing.T) {
	t.Parallel()

	m := buildMatrix(t, nil, 4)
	if m.Size() != 0 {
		t.Errorf("Size() = %d, want 0", m.Size())
	}
}

func TestComputeCosineMatrix_MalformedVector(t *testing.T) {
	t.Parallel()

	_, err := ComputeCosineMatrix(context.Background(), []SparseVector{
		{Indices: []int{0, 1}, Values: []float64{1}},
	}, 1)
	if err == nil {
		t.Error("ComputeCosineMatrix() error = nil, want error")
	}
}

func TestComputeCosineMatrix_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ComputeCosineMatrix(ctx, []SparseVector{{Indices: []int{0}, Values: []float64{1}}}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ComputeCosineMatrix() error = %v, want context.Canceled", err)
	}
}

func TestMatrixBytes(t *testing.T) {
	t.Parallel()

	if got := MatrixBytes(20000); got != 3_200_000_000 {
		t.Errorf("MatrixBytes(20000) = %d, want 3200000000", got)
	}
}
