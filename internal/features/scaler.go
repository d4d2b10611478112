package features

import "fmt"

// MinMaxScaler maps prices into [0,1] using min/max captured at training
// time. The bounds are fixed constants; refitting per request would make the
// transform inconsistent with the trained weights.
type MinMaxScaler struct {
	Min float64
	Max float64
}

// NewMinMaxScaler builds a scaler from training-time bounds.
func NewMinMaxScaler(min, max float64) (MinMaxScaler, error) {
	if max <= min {
		return MinMaxScaler{}, fmt.Errorf("scaler bounds invalid: min=%v max=%v", min, max)
	}
	return MinMaxScaler{Min: min, Max: max}, nil
}

// TransformValue scales one price into [0,1] relative to the training range.
func (s MinMaxScaler) TransformValue(price float64) float64 {
	return (price - s.Min) / (s.Max - s.Min)
}

// Transform scales a price series.
func (s MinMaxScaler) Transform(prices []float64) []float64 {
	out := make([]float64, len(prices))
	for i, p := range prices {
		out[i] = s.TransformValue(p)
	}
	return out
}

// InverseValue maps a scaled prediction back to a price.
func (s MinMaxScaler) InverseValue(scaled float64) float64 {
	return scaled*(s.Max-s.Min) + s.Min
}

// InverseAll maps scaled predictions back to prices.
func (s MinMaxScaler) InverseAll(scaled []float64) []float64 {
	out := make([]float64, len(scaled))
	for i, v := range scaled {
		out[i] = s.InverseValue(v)
	}
	return out
}
