package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"StockCast/internal/domain/models"
	"StockCast/internal/domain/repository"
	pkgkafka "StockCast/pkg/kafka"
)

// ClickHouseForecastStore persists one row per served forecast.
type ClickHouseForecastStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseForecastStore creates ClickHouse-backed forecast storage.
func NewClickHouseForecastStore(db *sql.DB, table string) repository.ForecastStore {
	return &ClickHouseForecastStore{db: db, table: table}
}

// Schema returns idempotent DDL for the forecast table.
func Schema(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ts DateTime,
			ticker String,
			horizon UInt32,
			input_len UInt32,
			last_close Float64,
			predictions String,
			accuracy Float64,
			has_accuracy UInt8
		) ENGINE=MergeTree ORDER BY (ticker, ts)`, table),
	}
}

func (s *ClickHouseForecastStore) Store(ctx context.Context, ev *models.ForecastEvent) error {
	preds, err := json.Marshal(ev.FuturePrices)
	if err != nil {
		return fmt.Errorf("marshal predictions: %w", err)
	}

	var accuracy float64
	var hasAccuracy uint8
	if ev.Accuracy != nil {
		accuracy = *ev.Accuracy
		hasAccuracy = 1
	}

	q := fmt.Sprintf("INSERT INTO %s (ts, ticker, horizon, input_len, last_close, predictions, accuracy, has_accuracy) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err = s.db.ExecContext(ctx, q,
		ev.At,
		ev.Ticker,
		uint32(ev.Horizon),
		uint32(ev.InputLen),
		ev.LastClose,
		string(preds),
		accuracy,
		hasAccuracy,
	)
	return err
}

func (s *ClickHouseForecastStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseForecastStore) Close() error {
	return nil // Connection pool managed by pkg/clickhouse client
}

// KafkaForecastPublisher emits one message per served forecast, keyed by
// ticker so per-ticker ordering is preserved.
type KafkaForecastPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaForecastPublisher creates a Kafka-backed publisher.
func NewKafkaForecastPublisher(producer *pkgkafka.Producer, topic string) repository.EventPublisher {
	return &KafkaForecastPublisher{producer: producer, topic: topic}
}

func (p *KafkaForecastPublisher) Publish(ctx context.Context, ev *models.ForecastEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Ticker), ev)
}

func (p *KafkaForecastPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NopForecastStore discards forecasts; used when ClickHouse is disabled.
type NopForecastStore struct{}

func (NopForecastStore) Store(context.Context, *models.ForecastEvent) error { return nil }
func (NopForecastStore) Health(context.Context) error                      { return nil }
func (NopForecastStore) Close() error                                      { return nil }

// NopEventPublisher discards events; used when Kafka is disabled.
type NopEventPublisher struct{}

func (NopEventPublisher) Publish(context.Context, *models.ForecastEvent) error { return nil }
func (NopEventPublisher) Close() error                                         { return nil }

// NopMetrics discards metrics; used in tests.
type NopMetrics struct{}

func (NopMetrics) RecordForecast(string, string)       {}
func (NopMetrics) RecordError(string)                  {}
func (NopMetrics) RecordLastForecast(string, float64)  {}
func (NopMetrics) RecordAccuracy(string, float64)      {}
func (NopMetrics) RecordLatency(string, float64)       {}
