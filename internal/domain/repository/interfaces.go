package repository

import (
	"context"

	"StockCast/internal/domain/models"
)

// Model runs one forward pass of the trained network over a scaled window.
type Model interface {
	// Window is the fixed input window length the model was trained with.
	Window() int
	// Predict returns one scaled next-step prediction for a full window.
	Predict(window []float64) (float64, error)
}

// ForecastStore persists served forecasts for later analysis.
type ForecastStore interface {
	Store(ctx context.Context, ev *models.ForecastEvent) error
	Health(ctx context.Context) error
	Close() error
}

// EventPublisher emits a message for each served forecast.
type EventPublisher interface {
	Publish(ctx context.Context, ev *models.ForecastEvent) error
	Close() error
}

// Metrics records operational metrics.
type Metrics interface {
	RecordForecast(ticker, source string)
	RecordError(kind string)
	RecordLastForecast(ticker string, price float64)
	RecordAccuracy(ticker string, pct float64)
	RecordLatency(op string, seconds float64)
}
