//go:build wireinject
// +build wireinject

package di

import (
	"StockCast/pkg/config"
	"StockCast/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Model
		ProvideArtifact,
		ProvideLSTM,

		// In-memory state
		ProvidePerformanceLog,
		ProvideAccuracyLog,

		// Optional backends
		ProvideCache,
		ProvideForecastStore,
		ProvideEventPublisher,

		// Use case and API
		ProvideForecaster,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
