package model

import (
	"fmt"
	"math"
)

// LSTM is a single-layer sequence-to-one recurrent network. Each Predict
// call starts from zero state, consumes one scaled window value per step,
// and maps the final hidden state through the dense head to one scaled
// next-step prediction. The forward pass is pure: no state survives a call,
// so concurrent requests need no coordination.
type LSTM struct {
	window  int
	hidden  int
	wInput  [][]float64
	wHidden [][]float64
	bias    []float64
	denseW  []float64
	denseB  float64
}

// New builds an LSTM from a validated artifact.
func New(a *Artifact) (*LSTM, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &LSTM{
		window:  a.Window,
		hidden:  a.HiddenSize,
		wInput:  a.LSTM.WInput,
		wHidden: a.LSTM.WHidden,
		bias:    a.LSTM.Bias,
		denseW:  a.Dense.Weights,
		denseB:  a.Dense.Bias,
	}, nil
}

// Window returns the trained input window length.
func (m *LSTM) Window() int {
	return m.window
}

// Predict runs the forward pass over one scaled window.
func (m *LSTM) Predict(window []float64) (float64, error) {
	if len(window) != m.window {
		return 0, fmt.Errorf("window has %d values, model expects %d", len(window), m.window)
	}

	h := make([]float64, m.hidden)
	c := make([]float64, m.hidden)
	z := make([]float64, 4*m.hidden)

	for _, x := range window {
		// z = W_x*x + W_h*h + b, rows stacked input/forget/cell/output
		for r := 0; r < 4*m.hidden; r++ {
			sum := m.bias[r] + m.wInput[r][0]*x
			row := m.wHidden[r]
			for k, hv := range h {
				sum += row[k] * hv
			}
			z[r] = sum
		}

		for j := 0; j < m.hidden; j++ {
			i := sigmoid(z[j])
			f := sigmoid(z[m.hidden+j])
			g := math.Tanh(z[2*m.hidden+j])
			o := sigmoid(z[3*m.hidden+j])

			c[j] = f*c[j] + i*g
			h[j] = o * math.Tanh(c[j])
		}
	}

	out := m.denseB
	for j, w := range m.denseW {
		out += w * h[j]
	}
	return out, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
