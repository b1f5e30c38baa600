package ai

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindsAreDistinct(t *testing.T) {
	kinds := []error{ErrEmbeddingUnavailable, ErrGenerationFailure, ErrMalformedResponse, ErrComputation, ErrDeclined}

	for i, a := range kinds {
		wrapped := fmt.Errorf("rubric evaluation: %w", a)
		for j, b := range kinds {
			if got := errors.Is(wrapped, b); got != (i == j) {
				t.Fatalf("errors.Is(%v, %v) = %v", wrapped, b, got)
			}
		}
	}
}
