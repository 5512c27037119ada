package search

import "math"

// SparseVector stores the non-zero entries of a term-weight vector.
// Indices are strictly increasing.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// Dot returns the inner product of v and w.
func (v SparseVector) Dot(w SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(w.Indices) {
		switch {
		case v.Indices[i] == w.Indices[j]:
			sum += v.Values[i] * w.Values[j]
			i++
			j++
		case v.Indices[i] < w.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the Euclidean length of v.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// A zero vector is similar to nothing.
func CosineSimilarity(a, b SparseVector) float64 {
	normA, normB := a.Norm(), b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}
	return a.Dot(b) / (normA * normB)
}
