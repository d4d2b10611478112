package di

import (
	"testing"

	internalrepo "StockCast/internal/repository"
	pkgcache "StockCast/pkg/cache"
	"StockCast/pkg/config"
	applogger "StockCast/pkg/logger"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.Environment = "test"
	c.Logging.Level = "error"
	c.Logging.Format = "json"
	c.Logging.Output = "stderr"
	return c
}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := ProvideLogger(testConfig())
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestProvideCacheDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = false
	if c := ProvideCache(cfg, testLogger(t)); c != nil {
		t.Fatalf("expected nil cache when disabled, got %T", c)
	}
}

func TestProvideCacheMemory(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = true
	c := ProvideCache(cfg, testLogger(t))
	if _, ok := c.(*pkgcache.Memory); !ok {
		t.Fatalf("expected memory cache, got %T", c)
	}
}

func TestProvideForecastStoreDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.ClickHouse.Enabled = false
	s := ProvideForecastStore(cfg, testLogger(t))
	if _, ok := s.(internalrepo.NopForecastStore); !ok {
		t.Fatalf("expected nop store when disabled, got %T", s)
	}
}

func TestProvideEventPublisherDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Kafka.Enabled = false
	p := ProvideEventPublisher(cfg, testLogger(t))
	if _, ok := p.(internalrepo.NopEventPublisher); !ok {
		t.Fatalf("expected nop publisher when disabled, got %T", p)
	}
}
