package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact is the trained model bundle exported by the training pipeline:
// network weights, scaler bounds, and the input window length, all fitted
// offline and reused unchanged at inference time.
type Artifact struct {
	Ticker     string `json:"ticker"`
	Window     int    `json:"window"`
	InputSize  int    `json:"input_size"`
	HiddenSize int    `json:"hidden_size"`
	Scaler     struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"scaler"`
	LSTM struct {
		// Gate rows are stacked input, forget, cell, output; 4*hidden rows total.
		WInput  [][]float64 `json:"w_input"`
		WHidden [][]float64 `json:"w_hidden"`
		Bias    []float64   `json:"bias"`
	} `json:"lstm"`
	Dense struct {
		Weights []float64 `json:"weights"`
		Bias    float64   `json:"bias"`
	} `json:"dense"`
}

// LoadArtifact reads and validates a model artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}

	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("validate model artifact: %w", err)
	}
	return &a, nil
}

// Validate checks artifact dimensions for consistency.
func (a *Artifact) Validate() error {
	if a.Window <= 0 {
		return fmt.Errorf("window must be positive, got %d", a.Window)
	}
	if a.InputSize != 1 {
		return fmt.Errorf("input_size must be 1 (close price only), got %d", a.InputSize)
	}
	if a.HiddenSize <= 0 {
		return fmt.Errorf("hidden_size must be positive, got %d", a.HiddenSize)
	}
	if a.Scaler.Max <= a.Scaler.Min {
		return fmt.Errorf("scaler bounds invalid: min=%v max=%v", a.Scaler.Min, a.Scaler.Max)
	}

	rows := 4 * a.HiddenSize
	if len(a.LSTM.WInput) != rows {
		return fmt.Errorf("w_input has %d rows, want %d", len(a.LSTM.WInput), rows)
	}
	if len(a.LSTM.WHidden) != rows {
		return fmt.Errorf("w_hidden has %d rows, want %d", len(a.LSTM.WHidden), rows)
	}
	if len(a.LSTM.Bias) != rows {
		return fmt.Errorf("bias has %d rows, want %d", len(a.LSTM.Bias), rows)
	}
	for i, r := range a.LSTM.WInput {
		if len(r) != a.InputSize {
			return fmt.Errorf("w_input row %d has %d cols, want %d", i, len(r), a.InputSize)
		}
	}
	for i, r := range a.LSTM.WHidden {
		if len(r) != a.HiddenSize {
			return fmt.Errorf("w_hidden row %d has %d cols, want %d", i, len(r), a.HiddenSize)
		}
	}
	if len(a.Dense.Weights) != a.HiddenSize {
		return fmt.Errorf("dense weights has %d values, want %d", len(a.Dense.Weights), a.HiddenSize)
	}
	return nil
}
