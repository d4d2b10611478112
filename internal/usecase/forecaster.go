package usecase

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"StockCast/internal/domain/models"
	"StockCast/internal/domain/repository"
	"StockCast/internal/features"
	"StockCast/pkg/cache"
	applogger "StockCast/pkg/logger"
)

var (
	// ErrSeriesTooShort means the input holds fewer prices than one window.
	ErrSeriesTooShort = errors.New("price series too short")
	// ErrHorizonInvalid means days_ahead is below 1.
	ErrHorizonInvalid = errors.New("forecast horizon must be at least 1")
)

const backendTimeout = 3 * time.Second

// Forecaster runs the trained model autoregressively over a scaled input
// window to produce multi-step forecasts.
type Forecaster struct {
	ticker  string
	model   repository.Model
	scaler  features.MinMaxScaler
	metrics repository.Metrics
	acc     *AccuracyLog
	logger  *applogger.Logger

	cache     cache.Cache
	cacheTTL  time.Duration
	store     repository.ForecastStore
	publisher repository.EventPublisher
}

// NewForecaster creates a forecaster over a loaded model and its scaler.
func NewForecaster(
	ticker string,
	m repository.Model,
	scaler features.MinMaxScaler,
	metrics repository.Metrics,
	acc *AccuracyLog,
	l *applogger.Logger,
) *Forecaster {
	return &Forecaster{
		ticker:  ticker,
		model:   m,
		scaler:  scaler,
		metrics: metrics,
		acc:     acc,
		logger:  l,
	}
}

// WithCache enables response caching of predicted series.
func (f *Forecaster) WithCache(c cache.Cache, ttl time.Duration) *Forecaster {
	f.cache = c
	f.cacheTTL = ttl
	return f
}

// WithStore enables the forecast audit store.
func (f *Forecaster) WithStore(s repository.ForecastStore) *Forecaster {
	f.store = s
	return f
}

// WithPublisher enables forecast event publishing.
func (f *Forecaster) WithPublisher(p repository.EventPublisher) *Forecaster {
	f.publisher = p
	return f
}

// Window returns the model input window length.
func (f *Forecaster) Window() int {
	return f.model.Window()
}

// Forecast produces exactly horizon future prices for the given history.
// Each step feeds the model's own scaled prediction back in as the newest
// window element; ground truth is never consumed during the loop.
func (f *Forecaster) Forecast(ctx context.Context, req *models.PredictRequest) (*models.Forecast, error) {
	start := time.Now()

	if req.DaysAhead < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrHorizonInvalid, req.DaysAhead)
	}
	w := f.model.Window()
	if len(req.Prices) < w {
		return nil, fmt.Errorf("%w: need at least %d prices, got %d", ErrSeriesTooShort, w, len(req.Prices))
	}

	preds, fromCache, err := f.predict(ctx, req.Prices, req.DaysAhead)
	if err != nil {
		f.metrics.RecordError("forecast")
		return nil, err
	}

	result := &models.Forecast{
		Ticker:       f.ticker,
		FuturePrices: preds,
		FromCache:    fromCache,
		At:           time.Now(),
	}

	if len(req.RealValues) > 0 {
		acc := accuracyPercent(preds, req.RealValues)
		result.Accuracy = &acc
		f.acc.Append(req.DaysAhead, acc)
		f.metrics.RecordAccuracy(f.ticker, acc)
	}

	source := "model"
	if fromCache {
		source = "cache"
	}
	f.metrics.RecordForecast(f.ticker, source)
	f.metrics.RecordLastForecast(f.ticker, preds[0])
	f.metrics.RecordLatency("forecast", time.Since(start).Seconds())

	f.record(req, result)
	return result, nil
}

// predict returns the predicted series, consulting the cache first.
func (f *Forecaster) predict(ctx context.Context, prices []float64, horizon int) ([]float64, bool, error) {
	key := cacheKey(prices, horizon)

	if f.cache != nil {
		if b, ok, err := f.cache.Get(ctx, key); err != nil {
			f.logger.Warn("forecast cache get failed", applogger.Error(err))
		} else if ok {
			var preds []float64
			if err := json.Unmarshal(b, &preds); err == nil && len(preds) == horizon {
				return preds, true, nil
			}
		}
	}

	scaled := f.scaler.Transform(prices)
	window, err := features.LastWindow(scaled, f.model.Window())
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrSeriesTooShort, err)
	}

	preds := make([]float64, 0, horizon)
	for step := 0; step < horizon; step++ {
		next, err := f.model.Predict(window)
		if err != nil {
			return nil, false, fmt.Errorf("model step %d: %w", step+1, err)
		}
		preds = append(preds, f.scaler.InverseValue(next))
		window = features.SlideWindow(window, next)
	}

	if f.cache != nil {
		if b, err := json.Marshal(preds); err == nil {
			if err := f.cache.Set(ctx, key, b, f.cacheTTL); err != nil {
				f.logger.Warn("forecast cache set failed", applogger.Error(err))
			}
		}
	}
	return preds, false, nil
}

// record persists and publishes the forecast without blocking the request.
func (f *Forecaster) record(req *models.PredictRequest, res *models.Forecast) {
	if f.store == nil && f.publisher == nil {
		return
	}

	ev := &models.ForecastEvent{
		Ticker:       f.ticker,
		At:           res.At,
		Horizon:      req.DaysAhead,
		InputLen:     len(req.Prices),
		LastClose:    req.Prices[len(req.Prices)-1],
		FuturePrices: res.FuturePrices,
		Accuracy:     res.Accuracy,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()

		if f.store != nil {
			if err := f.store.Store(ctx, ev); err != nil {
				f.metrics.RecordError("store")
				f.logger.Warn("forecast store failed", applogger.Error(err))
			}
		}
		if f.publisher != nil {
			if err := f.publisher.Publish(ctx, ev); err != nil {
				f.metrics.RecordError("publish")
				f.logger.Warn("forecast publish failed", applogger.Error(err))
			}
		}
	}()
}

// accuracyPercent computes 100 - MAPE over the overlapping length, clamped
// to [0,100]. Zero real values are skipped; their percentage error is
// undefined.
func accuracyPercent(preds, real []float64) float64 {
	n := len(preds)
	if len(real) < n {
		n = len(real)
	}

	var sum float64
	var used int
	for i := 0; i < n; i++ {
		if real[i] == 0 {
			continue
		}
		sum += math.Abs(preds[i]-real[i]) / math.Abs(real[i])
		used++
	}
	if used == 0 {
		return 0
	}
	acc := 100 - 100*sum/float64(used)
	if acc < 0 {
		return 0
	}
	if acc > 100 {
		return 100
	}
	return acc
}

// cacheKey hashes the input series and horizon into a stable key.
func cacheKey(prices []float64, horizon int) string {
	h := fnv.New64a()
	var buf [8]byte
	for _, p := range prices {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(p))
		_, _ = h.Write(buf[:])
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(horizon))
	_, _ = h.Write(buf[:])
	return fmt.Sprintf("forecast:%x", h.Sum64())
}
