package tfidf

import "math"

// Vector is a sparse document vector keyed by vocabulary index.
// A missing index means weight zero.
type Vector map[int]float64

// Dot returns the dot product of two sparse vectors.
func (v Vector) Dot(other Vector) float64 {
	// Iterate over the smaller map
	a, b := v, other
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for i, w := range a {
		if ow, ok := b[i]; ok {
			dot += w * ow
		}
	}
	return dot
}

// Norm returns the L2 norm of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity between two sparse vectors.
// Either vector having zero norm yields 0, never an error or NaN.
func Cosine(a, b Vector) float64 {
	normA := a.Norm()
	normB := b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}
	return a.Dot(b) / (normA * normB)
}

// Mean averages a set of vectors component-wise.
// An empty input yields an empty vector.
func Mean(vectors []Vector) Vector {
	out := make(Vector)
	if len(vectors) == 0 {
		return out
	}
	for _, v := range vectors {
		for i, w := range v {
			out[i] += w
		}
	}
	n := float64(len(vectors))
	for i := range out {
		out[i] /= n
	}
	return out
}
