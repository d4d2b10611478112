package model

import (
	"math"
	"testing"
)

func loadTestArtifact(t *testing.T) *Artifact {
	t.Helper()
	a, err := LoadArtifact("testdata/model.json")
	if err != nil {
		t.Fatalf("load artifact: %v", err)
	}
	return a
}

func TestLoadArtifact(t *testing.T) {
	a := loadTestArtifact(t)
	if a.Ticker != "DIS" {
		t.Fatalf("unexpected ticker %q", a.Ticker)
	}
	if a.Window != 5 {
		t.Fatalf("unexpected window %d", a.Window)
	}
	if a.Scaler.Max <= a.Scaler.Min {
		t.Fatalf("unexpected scaler bounds %v/%v", a.Scaler.Min, a.Scaler.Max)
	}
}

func TestLoadArtifactMissingFile(t *testing.T) {
	if _, err := LoadArtifact("testdata/does_not_exist.json"); err == nil {
		t.Fatalf("expected error for missing artifact")
	}
}

func TestArtifactValidateDimensions(t *testing.T) {
	a := loadTestArtifact(t)

	a.LSTM.Bias = a.LSTM.Bias[:len(a.LSTM.Bias)-1]
	if err := a.Validate(); err == nil {
		t.Fatalf("expected error for truncated bias")
	}
}

func TestPredictDeterministic(t *testing.T) {
	m, err := New(loadTestArtifact(t))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	window := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	first, err := m.Predict(window)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	second, err := m.Predict(window)
	if err != nil {
		t.Fatalf("predict again: %v", err)
	}

	// State must not leak between calls.
	if first != second {
		t.Fatalf("predictions differ: %v vs %v", first, second)
	}
	if math.IsNaN(first) || math.IsInf(first, 0) {
		t.Fatalf("prediction not finite: %v", first)
	}
}

func TestPredictInputSensitivity(t *testing.T) {
	m, err := New(loadTestArtifact(t))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	a, err := m.Predict([]float64{0.1, 0.1, 0.1, 0.1, 0.1})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	b, err := m.Predict([]float64{0.9, 0.9, 0.9, 0.9, 0.9})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if a == b {
		t.Fatalf("model output ignores input")
	}
}

func TestPredictWrongWindowLength(t *testing.T) {
	m, err := New(loadTestArtifact(t))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if _, err := m.Predict([]float64{0.1, 0.2}); err == nil {
		t.Fatalf("expected error for wrong window length")
	}
}
