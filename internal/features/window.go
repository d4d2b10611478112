package features

import "fmt"

// LastWindow returns a copy of the trailing n values of a scaled series.
// It fails when the series holds fewer than n values.
func LastWindow(scaled []float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("window length must be positive, got %d", n)
	}
	if len(scaled) < n {
		return nil, fmt.Errorf("series has %d values, need at least %d", len(scaled), n)
	}
	w := make([]float64, n)
	copy(w, scaled[len(scaled)-n:])
	return w, nil
}

// SlideWindow drops the oldest element and appends next, in place.
// The returned slice aliases w.
func SlideWindow(w []float64, next float64) []float64 {
	copy(w, w[1:])
	w[len(w)-1] = next
	return w
}
