package features

import (
	"math"
	"testing"
)

func TestNewMinMaxScalerRejectsInvalidBounds(t *testing.T) {
	if _, err := NewMinMaxScaler(10, 10); err == nil {
		t.Fatalf("expected error for min == max")
	}
	if _, err := NewMinMaxScaler(20, 10); err == nil {
		t.Fatalf("expected error for min > max")
	}
}

func TestTransformValue(t *testing.T) {
	s, err := NewMinMaxScaler(100, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		price float64
		want  float64
	}{
		{100, 0},
		{200, 1},
		{150, 0.5},
		{125, 0.25},
	}
	for _, c := range cases {
		if got := s.TransformValue(c.price); math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("TransformValue(%v) = %v, want %v", c.price, got, c.want)
		}
	}
}

func TestTransformInverseRoundTrip(t *testing.T) {
	s, err := NewMinMaxScaler(78.73, 201.91)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prices := []float64{78.73, 100.5, 142.17, 199.99, 201.91}
	scaled := s.Transform(prices)
	back := s.InverseAll(scaled)

	for i := range prices {
		if math.Abs(back[i]-prices[i]) > 1e-9 {
			t.Fatalf("round trip mismatch at %d: got %v, want %v", i, back[i], prices[i])
		}
	}
}
