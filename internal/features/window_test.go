package features

import "testing"

func TestLastWindow(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5}

	w, err := LastWindow(series, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w) != 3 || w[0] != 3 || w[1] != 4 || w[2] != 5 {
		t.Fatalf("unexpected window %v", w)
	}

	// Window must be a copy
	w[0] = 99
	if series[2] != 3 {
		t.Fatalf("window aliases input series")
	}
}

func TestLastWindowTooShort(t *testing.T) {
	if _, err := LastWindow([]float64{1, 2}, 3); err == nil {
		t.Fatalf("expected error for short series")
	}
	if _, err := LastWindow(nil, 1); err == nil {
		t.Fatalf("expected error for empty series")
	}
	if _, err := LastWindow([]float64{1}, 0); err == nil {
		t.Fatalf("expected error for non-positive window")
	}
}

func TestSlideWindow(t *testing.T) {
	w := []float64{1, 2, 3}
	w = SlideWindow(w, 4)
	if w[0] != 2 || w[1] != 3 || w[2] != 4 {
		t.Fatalf("unexpected window after slide: %v", w)
	}
	w = SlideWindow(w, 5)
	if w[0] != 3 || w[1] != 4 || w[2] != 5 {
		t.Fatalf("unexpected window after second slide: %v", w)
	}
}
