// Package similarity compares embedding vectors.
package similarity

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when two vectors differ in length.
var ErrDimensionMismatch = errors.New("vector dimensions differ")

// Cosine returns the cosine similarity of v1 and v2 clamped into [0, 1].
//
// Negative similarity is reported as 0, so "orthogonal" and "opposed" inputs
// are indistinguishable. A zero-norm vector on either side yields 0.
// Accumulation happens in float64.
func Cosine(v1, v2 []float32) (float64, error) {
	if len(v1) != len(v2) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(v1), len(v2))
	}

	var dot, norm1, norm2 float64
	for i := range v1 {
		a, b := float64(v1[i]), float64(v2[i])
		dot += a * b
		norm1 += a * a
		norm2 += b * b
	}

	if norm1 == 0 || norm2 == 0 {
		return 0, nil
	}

	similarity := dot / (math.Sqrt(norm1) * math.Sqrt(norm2))
	if math.IsNaN(similarity) {
		return 0, errors.New("cosine similarity is not a number")
	}

	return Clamp(similarity), nil
}

// Clamp bounds a score into [0, 1].
func Clamp(score float64) float64 {
	return math.Max(0, math.Min(1, score))
}
