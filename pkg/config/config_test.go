package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validYAML = `
environment: test
server:
  port: 9090
  read_timeout: 10s
  write_timeout: 10s
  shutdown_timeout: 5s
  predict_rps: 20
  predict_burst: 40
model:
  path: model/dis_lstm.json
  ticker: DIS
performance:
  capacity: 500
cache:
  enabled: true
  ttl: 60s
logging:
  level: info
  format: json
  output: stdout
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 9090 {
		t.Fatalf("port = %d, want 9090", c.Server.Port)
	}
	if c.Model.Ticker != "DIS" {
		t.Fatalf("ticker = %q, want DIS", c.Model.Ticker)
	}
	if c.Cache.TTL != 60*time.Second {
		t.Fatalf("cache ttl = %v, want 60s", c.Cache.TTL)
	}
	if c.Performance.Capacity != 500 {
		t.Fatalf("performance capacity = %d, want 500", c.Performance.Capacity)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		wantErr  string
	}{
		{"missing environment", "environment: test", "", "environment is required"},
		{"missing model path", "path: model/dis_lstm.json", "path: \"\"", "model.path is required"},
		{"bad port", "port: 9090", "port: -1", "server.port must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yaml := strings.Replace(validYAML, tt.old, tt.new, 1)
			_, err := Load(writeConfig(t, yaml))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateKafkaBrokers(t *testing.T) {
	yaml := validYAML + "\nkafka:\n  enabled: true\n"
	_, err := Load(writeConfig(t, yaml))
	if err == nil || !strings.Contains(err.Error(), "kafka.brokers") {
		t.Fatalf("err = %v, want kafka.brokers error", err)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("MODEL_PATH", "/tmp/other.json")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 7070 {
		t.Fatalf("port = %d, want env override 7070", c.Server.Port)
	}
	if c.Model.Path != "/tmp/other.json" {
		t.Fatalf("model path = %q, want env override", c.Model.Path)
	}
	if c.Logging.Level != "debug" {
		t.Fatalf("log level = %q, want debug", c.Logging.Level)
	}
}
