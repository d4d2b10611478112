package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	forecastsTotal *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	lastForecast   *prometheus.GaugeVec
	accuracy       *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		forecastsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockcast_forecasts_total",
				Help: "Total number of forecasts served",
			},
			[]string{"ticker", "source"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockcast_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastForecast: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockcast_last_forecast_price",
				Help: "Most recent one-step-ahead predicted price",
			},
			[]string{"ticker"},
		),
		accuracy: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockcast_last_accuracy_percent",
				Help: "Most recent forecast accuracy against supplied real values",
			},
			[]string{"ticker"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockcast_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordForecast records a served forecast; source is "model" or "cache".
func (r *Recorder) RecordForecast(ticker, source string) {
	r.forecastsTotal.WithLabelValues(ticker, source).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastForecast records the latest next-step predicted price.
func (r *Recorder) RecordLastForecast(ticker string, price float64) {
	r.lastForecast.WithLabelValues(ticker).Set(price)
}

// RecordAccuracy records the latest accuracy percentage for a ticker.
func (r *Recorder) RecordAccuracy(ticker string, pct float64) {
	r.accuracy.WithLabelValues(ticker).Set(pct)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
