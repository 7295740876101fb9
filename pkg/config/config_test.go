package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
environment: test
analytics:
  symbols:
    - ETHUSDT
    - SOLUSDT
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Analytics.Benchmark != "BTCUSDT" {
		t.Errorf("benchmark = %s, want BTCUSDT", cfg.Analytics.Benchmark)
	}
	if got := cfg.Analytics.WindowsDays; len(got) != 3 || got[0] != 7 || got[1] != 30 || got[2] != 90 {
		t.Errorf("windows = %v, want [7 30 90]", got)
	}
	if cfg.Analytics.CanonicalWindow != 30 {
		t.Errorf("canonical window = %d, want 30", cfg.Analytics.CanonicalWindow)
	}
	if cfg.Analytics.FallbackDominance != 57.4 {
		t.Errorf("fallback dominance = %v, want 57.4", cfg.Analytics.FallbackDominance)
	}
	if cfg.Scheduler.Workers != 8 {
		t.Errorf("workers = %d, want 8", cfg.Scheduler.Workers)
	}
	if cfg.PriceStore.Backend != "redis" {
		t.Errorf("backend = %s, want redis", cfg.PriceStore.Backend)
	}
}

func TestLoadRejectsEmptySymbols(t *testing.T) {
	if _, err := Load(writeConfig(t, "environment: test\n")); err == nil {
		t.Fatal("expected validation error for empty symbols")
	}
}

func TestLoadRejectsCanonicalOutsideWindows(t *testing.T) {
	body := minimalConfig + `
  windows_days: [7, 90]
  canonical_window_days: 30
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatal("expected validation error for canonical window outside windows_days")
	}
}

func TestLoadRejectsClickHouseWithoutHost(t *testing.T) {
	body := minimalConfig + `
price_store:
  backend: clickhouse
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatal("expected validation error for clickhouse backend without host")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	body := minimalConfig + `
price_store:
  backend: postgres
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatal("expected validation error for unknown backend")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("SYMBOLS", "ADAUSDT,DOTUSDT,LINKUSDT")
	t.Setenv("BENCHMARK", "ETHUSDT")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := LoadWithEnv(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(cfg.Analytics.Symbols) != 3 || cfg.Analytics.Symbols[0] != "ADAUSDT" {
		t.Errorf("symbols = %v", cfg.Analytics.Symbols)
	}
	if cfg.Analytics.Benchmark != "ETHUSDT" {
		t.Errorf("benchmark = %s, want ETHUSDT", cfg.Analytics.Benchmark)
	}
	if cfg.Redis.Host != "redis.internal" || cfg.Redis.Port != 6380 {
		t.Errorf("redis = %s:%d", cfg.Redis.Host, cfg.Redis.Port)
	}
}
