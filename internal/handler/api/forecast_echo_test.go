package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"StockCast/internal/features"
	internalrepo "StockCast/internal/repository"
	"StockCast/internal/usecase"
	"StockCast/pkg/http/middleware"
	applogger "StockCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubModel struct {
	window int
}

func (s *stubModel) Window() int { return s.window }

func (s *stubModel) Predict([]float64) (float64, error) { return 0.6, nil }

func newTestServer(t *testing.T) (*echo.Echo, *usecase.PerformanceLog) {
	t.Helper()

	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	scaler, err := features.NewMinMaxScaler(0, 1)
	if err != nil {
		t.Fatalf("scaler: %v", err)
	}

	acc := usecase.NewAccuracyLog(100)
	forecaster := usecase.NewForecaster("DIS", &stubModel{window: 30}, scaler, internalrepo.NopMetrics{}, acc, l)
	perf := usecase.NewPerformanceLog(1000)
	h := NewForecastHandler(l, forecaster, perf, acc, internalrepo.NopForecastStore{})

	e := echo.New()
	e.Use(middleware.Performance(perf, "/predict"))
	h.RegisterRoutes(e)
	return e, perf
}

func predictBody(n, daysAhead int, realValues string) string {
	prices := make([]string, n)
	for i := range prices {
		prices[i] = fmt.Sprintf("%d", 100+i)
	}
	body := fmt.Sprintf(`{"prices":[%s],"days_ahead":%d`, strings.Join(prices, ","), daysAhead)
	if realValues != "" {
		body += `,"real_values":` + realValues
	}
	return body + "}"
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type predictData struct {
	Ticker       string    `json:"ticker"`
	FuturePrices []float64 `json:"future_prices"`
	Accuracy     *float64  `json:"accuracy"`
}

func decodePredict(t *testing.T, rec *httptest.ResponseRecorder) predictData {
	t.Helper()
	var body struct {
		Status int         `json:"status"`
		Data   predictData `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return body.Data
}

func TestRoot(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "running") {
		t.Fatalf("unexpected liveness body %s", rec.Body.String())
	}
}

func TestPredictReturnsHorizonPrices(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/predict", predictBody(30, 3, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	data := decodePredict(t, rec)
	if len(data.FuturePrices) != 3 {
		t.Fatalf("got %d predictions, want 3", len(data.FuturePrices))
	}
	if data.Accuracy != nil {
		t.Fatalf("accuracy present without real_values")
	}
	if data.Ticker != "DIS" {
		t.Fatalf("unexpected ticker %q", data.Ticker)
	}
	if got := rec.Header().Get("X-Process-Time"); got == "" {
		t.Fatalf("missing X-Process-Time header")
	}
}

func TestPredictLargeHorizon(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/predict", predictBody(30, 400, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	data := decodePredict(t, rec)
	if len(data.FuturePrices) != 400 {
		t.Fatalf("got %d predictions, want 400", len(data.FuturePrices))
	}
}

func TestPredictWithRealValues(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/predict", predictBody(30, 3, "[130,131,132]"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	data := decodePredict(t, rec)
	if data.Accuracy == nil {
		t.Fatalf("accuracy missing with real_values")
	}
	if *data.Accuracy < 0 || *data.Accuracy > 100 {
		t.Fatalf("accuracy out of range: %v", *data.Accuracy)
	}
}

func TestPredictSeriesTooShort(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/predict", predictBody(29, 3, ""))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestPredictInvalidHorizon(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/predict", predictBody(30, 0, ""))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestPredictMalformedBody(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/predict", `{"prices": "nope"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestPerformanceCountsPredictRequests(t *testing.T) {
	e, _ := newTestServer(t)

	const n = 4
	for i := 0; i < n; i++ {
		doRequest(e, http.MethodPost, "/predict", predictBody(30, 1, ""))
	}
	// Non-predict traffic must not be recorded.
	doRequest(e, http.MethodGet, "/", "")

	rec := doRequest(e, http.MethodGet, "/performance", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var body struct {
		Data struct {
			Performance []struct {
				Path        string  `json:"path"`
				ProcessTime float64 `json:"process_time"`
			} `json:"performance"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Data.Performance) != n {
		t.Fatalf("got %d records, want %d", len(body.Data.Performance), n)
	}
	for _, r := range body.Data.Performance {
		if r.Path != "/predict" {
			t.Fatalf("unexpected path %q", r.Path)
		}
		if r.ProcessTime < 0 {
			t.Fatalf("negative process_time %v", r.ProcessTime)
		}
	}
}

func TestPlotsRender(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/performance/plot", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "No performance data") {
		t.Fatalf("unexpected empty plot response: %d %s", rec.Code, rec.Body.String())
	}

	doRequest(e, http.MethodPost, "/predict", predictBody(30, 1, ""))

	rec = doRequest(e, http.MethodGet, "/performance/plot", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<svg") {
		t.Fatalf("expected svg chart, got: %d", rec.Code)
	}

	rec = doRequest(e, http.MethodGet, "/accuracy/plot", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "No accuracy data") {
		t.Fatalf("unexpected empty accuracy plot: %d", rec.Code)
	}

	doRequest(e, http.MethodPost, "/predict", predictBody(30, 2, "[130,131]"))

	rec = doRequest(e, http.MethodGet, "/accuracy/plot", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<svg") {
		t.Fatalf("expected accuracy svg chart, got: %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body %s", rec.Body.String())
	}
}

func TestPredictRateLimited(t *testing.T) {
	l, _ := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	scaler, _ := features.NewMinMaxScaler(0, 1)
	acc := usecase.NewAccuracyLog(10)
	f := usecase.NewForecaster("DIS", &stubModel{window: 30}, scaler, internalrepo.NopMetrics{}, acc, l)
	perf := usecase.NewPerformanceLog(10)
	h := NewForecastHandler(l, f, perf, acc, internalrepo.NopForecastStore{})
	h.SetPredictRateLimit(0.0001, 1)

	e := echo.New()
	h.RegisterRoutes(e)

	first := doRequest(e, http.MethodPost, "/predict", predictBody(30, 1, ""))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status %d, want 200", first.Code)
	}
	second := doRequest(e, http.MethodPost, "/predict", predictBody(30, 1, ""))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status %d, want 429", second.Code)
	}
}
