package api

import (
	"errors"

	"StockCast/internal/domain/models"
	domrepo "StockCast/internal/domain/repository"
	"StockCast/internal/service/ratelimit"
	"StockCast/internal/usecase"
	xhttp "StockCast/pkg/http"
	xlogger "StockCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ForecastHandler serves the prediction API over Echo.
type ForecastHandler struct {
	logger     *xlogger.Logger
	forecaster *usecase.Forecaster
	perf       *usecase.PerformanceLog
	acc        *usecase.AccuracyLog
	store      domrepo.ForecastStore

	limiter      *ratelimit.Limiter
	predictRPS   float64
	predictBurst float64
}

func NewForecastHandler(
	logger *xlogger.Logger,
	forecaster *usecase.Forecaster,
	perf *usecase.PerformanceLog,
	acc *usecase.AccuracyLog,
	store domrepo.ForecastStore,
) *ForecastHandler {
	return &ForecastHandler{
		logger:     logger,
		forecaster: forecaster,
		perf:       perf,
		acc:        acc,
		store:      store,
		limiter:    ratelimit.New(),
	}
}

// SetPredictRateLimit enables per-client rate limiting on /predict.
// rps <= 0 disables it.
func (h *ForecastHandler) SetPredictRateLimit(rps, burst float64) {
	h.predictRPS = rps
	h.predictBurst = burst
}

func (h *ForecastHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.POST("/predict", h.Predict)
	e.GET("/performance", h.Performance)
	e.GET("/performance/plot", h.PerformancePlot)
	e.GET("/performance/ws", h.PerformanceWS)
	e.GET("/accuracy/plot", h.AccuracyPlot)
	e.GET("/healthz", h.Health)
}

// Root is the liveness endpoint.
func (h *ForecastHandler) Root(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{
		"message": "price forecast service is running; POST a price history and days_ahead to /predict",
	})
}

// Predict runs the autoregressive forecast for the submitted price history.
func (h *ForecastHandler) Predict(c echo.Context) error {
	if h.predictRPS > 0 {
		burst := h.predictBurst
		if burst < 1 {
			burst = h.predictRPS
		}
		if !h.limiter.Allow(c.RealIP(), burst, h.predictRPS) {
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many prediction requests"))
		}
	}

	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.forecaster.Forecast(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrSeriesTooShort) || errors.Is(err, usecase.ErrHorizonInvalid) {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
		}
		h.logger.Error("forecast usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Performance returns all recorded per-request timings.
func (h *ForecastHandler) Performance(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"performance": h.perf.Snapshot(),
	})
}

// PerformancePlot renders the recorded process times as an inline chart.
func (h *ForecastHandler) PerformancePlot(c echo.Context) error {
	records := h.perf.Snapshot()
	if len(records) == 0 {
		return c.HTML(200, emptyChartHTML("No performance data recorded yet."))
	}

	ys := make([]float64, len(records))
	for i, r := range records {
		ys[i] = r.ProcessTime
	}
	return c.HTML(200, lineChartHTML("Request Process Time", "seconds", ys))
}

// AccuracyPlot renders the recorded accuracy samples as an inline chart.
func (h *ForecastHandler) AccuracyPlot(c echo.Context) error {
	samples := h.acc.Snapshot()
	if len(samples) == 0 {
		return c.HTML(200, emptyChartHTML("No accuracy data recorded yet."))
	}

	ys := make([]float64, len(samples))
	for i, s := range samples {
		ys[i] = s.Accuracy
	}
	return c.HTML(200, lineChartHTML("Forecast Accuracy", "percent", ys))
}

// Health checks optional backends.
func (h *ForecastHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			status["store"] = err.Error()
		} else {
			status["store"] = "ok"
		}
	}
	return xhttp.SuccessResponse(c, status)
}
