// Package vector provides sparse vectors and similarity helpers for L2-normalized vectors.
package vector

import "math"

// Sparse is a sparse vector. Indices are strictly increasing and Values[i] belongs to Indices[i].
type Sparse struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (s Sparse) Len() int {
	return len(s.Indices)
}

// IsZero reports whether the vector has no non-zero entries.
func (s Sparse) IsZero() bool {
	return len(s.Indices) == 0
}

// Dot returns the inner product of two sparse vectors (for normalized vectors equals cosine similarity).
func Dot(a, b Sparse) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			dot += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// L2Norm returns the L2 norm of a vector.
func L2Norm(x Sparse) float64 {
	var sum float64
	for _, v := range x.Values {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Normalize scales x in place to unit L2 norm. A zero vector is left unchanged.
func Normalize(x Sparse) {
	norm := L2Norm(x)
	if norm == 0 {
		return
	}
	for i := range x.Values {
		x.Values[i] /= norm
	}
}

// Cosine returns cosine similarity between two vectors, clamped to [0, 1].
// Either vector being zero yields 0.
func Cosine(a, b Sparse) float64 {
	na, nb := L2Norm(a), L2Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp01(Dot(a, b) / (na * nb))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
