// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package algorithms

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SparseVector is a vector stored as strictly increasing indices with their
// non-zero values.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of stored entries.
func (v *SparseVector) Len() int {
	return len(v.Indices)
}

// Add appends an entry. Indices must be added in increasing order.
func (v *SparseVector) Add(index int, value float64) {
	v.Indices = append(v.Indices, index)
	v.Values = append(v.Values, value)
}

// ForIntersection calls fn for each index present in both vectors.
func (v *SparseVector) ForIntersection(other *SparseVector, fn func(index int, a, b float64)) {
	i, j := 0, 0
	for i < len(v.Indices) && j < len(other.Indices) {
		switch {
		case v.Indices[i] == other.Indices[j]:
			fn(v.Indices[i], v.Values[i], other.Values[j])
			i++
			j++
		case v.Indices[i] < other.Indices[j]:
			i++
		default:
			j++
		}
	}
}

// Dot returns the inner product of two vectors.
func (v *SparseVector) Dot(other *SparseVector) float64 {
	sum := 0.0
	v.ForIntersection(other, func(_ int, a, b float64) {
		sum += a * b
	})
	return sum
}

// Norm returns the euclidean norm.
func (v *SparseVector) Norm() float64 {
	if len(v.Values) == 0 {
		return 0
	}
	return floats.Norm(v.Values, 2)
}

// Normalize scales the vector to unit euclidean norm. Zero vectors are left
// unchanged.
func (v *SparseVector) Normalize() {
	n := v.Norm()
	if n == 0 {
		return
	}
	floats.Scale(1/n, v.Values)
}

// Dense expands the vector to a slice of length n.
func (v *SparseVector) Dense(n int) []float64 {
	out := make([]float64, n)
	for k, idx := range v.Indices {
		if idx < n {
			out[idx] = v.Values[k]
		}
	}
	return out
}

// At returns the value at index, or 0 when absent.
func (v *SparseVector) At(index int) float64 {
	lo, hi := 0, len(v.Indices)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if v.Indices[mid] < index {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(v.Indices) && v.Indices[lo] == index {
		return v.Values[lo]
	}
	return 0
}

// CosineDistance returns 1 - cos(a, b). A zero vector is at distance 1 from
// everything.
func CosineDistance(a, b *SparseVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 1
	}
	d := 1 - a.Dot(b)/(na*nb)
	// Rounding can push identical directions slightly below zero.
	return math.Max(d, 0)
}
