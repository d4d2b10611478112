package models

import "time"

// PredictRequest is the payload for POST /predict.
type PredictRequest struct {
	Prices     []float64 `json:"prices" validate:"required,min=1,dive,gt=0"`
	DaysAhead  int       `json:"days_ahead" validate:"required,gte=1"`
	RealValues []float64 `json:"real_values,omitempty" validate:"omitempty,dive,gt=0"`
}

// Forecast is the result of one autoregressive prediction run.
type Forecast struct {
	Ticker       string    `json:"ticker"`
	FuturePrices []float64 `json:"future_prices"`
	Accuracy     *float64  `json:"accuracy,omitempty"`
	FromCache    bool      `json:"-"`
	At           time.Time `json:"-"`
}

// PerformanceRecord is one (path, elapsed) timing entry.
type PerformanceRecord struct {
	Path        string  `json:"path"`
	ProcessTime float64 `json:"process_time"`
}

// AccuracySample is one accuracy measurement kept for the accuracy history.
type AccuracySample struct {
	At       time.Time `json:"at"`
	Horizon  int       `json:"horizon"`
	Accuracy float64   `json:"accuracy"`
}

// ForecastEvent is the message published for each served forecast.
type ForecastEvent struct {
	Ticker       string    `json:"ticker"`
	At           time.Time `json:"at"`
	Horizon      int       `json:"horizon"`
	InputLen     int       `json:"input_len"`
	LastClose    float64   `json:"last_close"`
	FuturePrices []float64 `json:"future_prices"`
	Accuracy     *float64  `json:"accuracy,omitempty"`
}
