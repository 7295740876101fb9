package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"dev"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Redis struct {
		Host         string        `yaml:"host" default:"localhost"`
		Port         int           `yaml:"port" default:"6379"`
		Password     string        `yaml:"password"`
		DB           int           `yaml:"db"`
		PoolSize     int           `yaml:"pool_size" default:"10"`
		MinIdleConns int           `yaml:"min_idle_conns" default:"5"`
		PoolTimeout  time.Duration `yaml:"pool_timeout" default:"30s"`
		Prefix       string        `yaml:"prefix" default:"betapulse"`
	} `yaml:"redis"`
	PriceStore struct {
		Backend  string `yaml:"backend" default:"redis"` // redis or clickhouse
		Interval string `yaml:"interval" default:"1h"`
		MaxBars  int    `yaml:"max_bars" default:"2160"` // 90 days of hourly closes
	} `yaml:"price_store"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"betapulse"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"10s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"30s"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"betapulse.regime_events"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		Compression  string        `yaml:"compression" default:"gzip"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	} `yaml:"kafka"`
	Dominance struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"dominance"`
	Analytics struct {
		Benchmark         string        `yaml:"benchmark" default:"BTCUSDT"`
		Symbols           []string      `yaml:"symbols"`
		WindowsDays       []int         `yaml:"windows_days"`
		CanonicalWindow   int           `yaml:"canonical_window_days" default:"30"`
		RiskFreeRate      float64       `yaml:"risk_free_rate" default:"0.02"`
		PeriodsPerYear    float64       `yaml:"periods_per_year" default:"8760"`
		HistoryLimit      int           `yaml:"history_limit" default:"168"`
		SnapshotTTL       time.Duration `yaml:"snapshot_ttl" default:"1h"`
		HistoryTTL        time.Duration `yaml:"history_ttl" default:"168h"`
		FallbackDominance float64       `yaml:"fallback_btc_dominance" default:"57.4"`
	} `yaml:"analytics"`
	Scheduler struct {
		UpdateInterval   time.Duration `yaml:"update_interval" default:"1h"`
		RecoveryInterval time.Duration `yaml:"recovery_interval" default:"60s"`
		Workers          int           `yaml:"workers" default:"8"`
	} `yaml:"scheduler"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if len(c.Analytics.WindowsDays) == 0 {
		c.Analytics.WindowsDays = []int{7, 30, 90}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Analytics.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("BENCHMARK"); v != "" {
		c.Analytics.Benchmark = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Redis.Port = p
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("PRICE_STORE_BACKEND"); v != "" {
		c.PriceStore.Backend = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.PriceStore.Backend != "redis" && c.PriceStore.Backend != "clickhouse" {
		return fmt.Errorf("price_store.backend must be 'redis' or 'clickhouse', got '%s'", c.PriceStore.Backend)
	}
	if c.PriceStore.Backend == "clickhouse" && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required for the clickhouse price store")
	}
	if len(c.Analytics.Symbols) == 0 {
		return fmt.Errorf("analytics.symbols cannot be empty")
	}
	if c.Analytics.Benchmark == "" {
		return fmt.Errorf("analytics.benchmark is required")
	}
	for _, d := range c.Analytics.WindowsDays {
		if d <= 0 {
			return fmt.Errorf("analytics.windows_days entries must be positive, got %d", d)
		}
	}
	if !containsInt(c.Analytics.WindowsDays, c.Analytics.CanonicalWindow) {
		return fmt.Errorf("analytics.canonical_window_days %d must be one of windows_days %v",
			c.Analytics.CanonicalWindow, c.Analytics.WindowsDays)
	}
	if c.Analytics.PeriodsPerYear <= 0 {
		return fmt.Errorf("analytics.periods_per_year must be positive")
	}
	if c.Analytics.HistoryLimit <= 0 {
		return fmt.Errorf("analytics.history_limit must be positive")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Scheduler.UpdateInterval <= 0 {
		return fmt.Errorf("scheduler.update_interval must be positive")
	}
	if c.Scheduler.Workers <= 0 {
		return fmt.Errorf("scheduler.workers must be positive")
	}
	return nil
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
