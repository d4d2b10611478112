package di

import (
	"context"
	"time"

	"StockCast/internal/domain/repository"
	"StockCast/internal/features"
	"StockCast/internal/handler/api"
	"StockCast/internal/model"
	internalrepo "StockCast/internal/repository"
	"StockCast/internal/usecase"
	pkgcache "StockCast/pkg/cache"
	pkgch "StockCast/pkg/clickhouse"
	"StockCast/pkg/config"
	pkgkafka "StockCast/pkg/kafka"
	applogger "StockCast/pkg/logger"
	"StockCast/pkg/metrics"
	"StockCast/pkg/server"
)

// ProvideLogger creates the structured application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
	}
	output := cfg.Logging.Output
	if output == "" {
		output = "stdout"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: output})
}

// ProvideArtifact loads the trained model artifact. A load failure here is
// fatal to the process.
func ProvideArtifact(cfg *config.Config) (*model.Artifact, error) {
	return model.LoadArtifact(cfg.Model.Path)
}

// ProvideLSTM builds the network from the artifact weights.
func ProvideLSTM(a *model.Artifact) (*model.LSTM, error) {
	return model.New(a)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePerformanceLog creates the per-request timing log.
func ProvidePerformanceLog(cfg *config.Config) *usecase.PerformanceLog {
	return usecase.NewPerformanceLog(cfg.Performance.Capacity)
}

// ProvideAccuracyLog creates the accuracy history.
func ProvideAccuracyLog(cfg *config.Config) *usecase.AccuracyLog {
	return usecase.NewAccuracyLog(cfg.Performance.Capacity)
}

// ProvideCache creates the forecast response cache, or nil when disabled.
// A Redis connection failure degrades to the in-memory cache.
func ProvideCache(cfg *config.Config, l *applogger.Logger) pkgcache.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}
	if cfg.Cache.Redis.Enabled {
		c, err := pkgcache.NewRedis(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB, "stockcast:")
		if err == nil {
			return c
		}
		l.Warn("redis cache unavailable, using memory cache", applogger.Error(err))
	}
	return pkgcache.NewMemory()
}

// ProvideForecastStore creates the ClickHouse audit store, or a no-op store
// when disabled or unreachable.
func ProvideForecastStore(cfg *config.Config, l *applogger.Logger) repository.ForecastStore {
	if !cfg.ClickHouse.Enabled {
		return internalrepo.NopForecastStore{}
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		l.Warn("clickhouse unavailable, forecast audit disabled", applogger.Error(err))
		return internalrepo.NopForecastStore{}
	}

	table := cfg.ClickHouse.Table
	if table == "" {
		table = cfg.ClickHouse.Database + ".forecasts"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.Schema(cfg.ClickHouse.Database, table)); err != nil {
		l.Warn("clickhouse schema init failed, forecast audit disabled", applogger.Error(err))
		_ = client.Close()
		return internalrepo.NopForecastStore{}
	}

	return internalrepo.NewClickHouseForecastStore(client.DB(), table)
}

// ProvideEventPublisher creates the Kafka publisher, or a no-op publisher
// when disabled or unreachable.
func ProvideEventPublisher(cfg *config.Config, l *applogger.Logger) repository.EventPublisher {
	if !cfg.Kafka.Enabled {
		return internalrepo.NopEventPublisher{}
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithBatch(cfg.Kafka.BatchSize, cfg.Kafka.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		l.Warn("kafka unavailable, forecast events disabled", applogger.Error(err))
		return internalrepo.NopEventPublisher{}
	}

	return internalrepo.NewKafkaForecastPublisher(producer, cfg.Kafka.Topic)
}

// ProvideForecaster wires the forecasting use case.
func ProvideForecaster(
	cfg *config.Config,
	lstm *model.LSTM,
	artifact *model.Artifact,
	m repository.Metrics,
	acc *usecase.AccuracyLog,
	l *applogger.Logger,
	c pkgcache.Cache,
	store repository.ForecastStore,
	pub repository.EventPublisher,
) (*usecase.Forecaster, error) {
	scaler, err := features.NewMinMaxScaler(artifact.Scaler.Min, artifact.Scaler.Max)
	if err != nil {
		return nil, err
	}

	ticker := cfg.Model.Ticker
	if ticker == "" {
		ticker = artifact.Ticker
	}

	f := usecase.NewForecaster(ticker, lstm, scaler, m, acc, l)
	if c != nil {
		f.WithCache(c, cfg.Cache.TTL)
	}
	f.WithStore(store)
	f.WithPublisher(pub)
	return f, nil
}

// ProvideHandler creates the HTTP API handler.
func ProvideHandler(
	cfg *config.Config,
	l *applogger.Logger,
	forecaster *usecase.Forecaster,
	perf *usecase.PerformanceLog,
	acc *usecase.AccuracyLog,
	store repository.ForecastStore,
) *api.ForecastHandler {
	h := api.NewForecastHandler(l, forecaster, perf, acc, store)
	h.SetPredictRateLimit(cfg.Server.PredictRPS, cfg.Server.PredictBurst)
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	h *api.ForecastHandler,
	perf *usecase.PerformanceLog,
	store repository.ForecastStore,
	pub repository.EventPublisher,
	c pkgcache.Cache,
) *server.App {
	return server.New(cfg, l, h, perf, store, pub, c)
}
