// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import "math"

// SparseVector is a feature vector stored as parallel slices of strictly
// increasing column indices and their weights.
type SparseVector struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

// NNZ returns the number of stored (non-zero) entries.
func (v SparseVector) NNZ() int {
	return len(v.Indices)
}

// Norm returns the Euclidean norm, summing in index order.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// IsZero reports whether the vector has no non-zero weight.
func (v SparseVector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Get returns the weight stored at column idx, or 0.
func (v SparseVector) Get(idx int) float64 {
	lo, hi := 0, len(v.Indices)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case v.Indices[mid] == idx:
			return v.Values[mid]
		case v.Indices[mid] < idx:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}

// Dot returns the dot product of two sparse vectors using a merge join over
// their sorted indices.
func Dot(a, b SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine returns the cosine similarity of a and b with norms computed from
// the vectors themselves. It returns 0 when either vector has zero norm.
func Cosine(a, b SparseVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return clampUnit(Dot(a, b) / (na * nb))
}

// clampUnit bounds rounding drift to [-1, 1].
func clampUnit(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	default:
		return x
	}
}
