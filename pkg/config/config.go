package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Sheets struct {
		APIKey          string        `yaml:"api_key"`
		SheetIDs        []string      `yaml:"sheet_ids"`
		WorksheetGID    string        `yaml:"worksheet_gid"`
		AlertsWorksheet string        `yaml:"alerts_worksheet"`
		Timeout         time.Duration `yaml:"timeout"`
	} `yaml:"sheets"`
	OpenAI struct {
		APIKey      string        `yaml:"api_key"`
		BaseURL     string        `yaml:"base_url"`
		Model       string        `yaml:"model"`
		Temperature float64       `yaml:"temperature"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"openai"`
	Chat struct {
		CacheTTL     time.Duration `yaml:"cache_ttl"`
		CacheSize    int           `yaml:"cache_size"`
		RateCapacity float64       `yaml:"rate_capacity"`
		RatePerSec   float64       `yaml:"rate_per_sec"`
	} `yaml:"chat"`
	Sync struct {
		AutoInterval time.Duration `yaml:"auto_interval"`
	} `yaml:"sync"`
	Cache struct {
		MemoryMaxSize int `yaml:"memory_max_size"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		EventsTopic  string   `yaml:"events_topic"`
		SignalsTopic string   `yaml:"signals_topic"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			BatchTimeout time.Duration `yaml:"batch_timeout"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID  string        `yaml:"group_id"`
			MinBytes int           `yaml:"min_bytes"`
			MaxBytes int           `yaml:"max_bytes"`
			MaxWait  time.Duration `yaml:"max_wait"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled      bool          `yaml:"enabled"`
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Database     string        `yaml:"database"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		DialTimeout  time.Duration `yaml:"dial_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"clickhouse"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	c, err := load(path)
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables. Validation runs after the overrides so required fields may
// come from either source.
func LoadWithEnv(path string) (*Config, error) {
	c, err := load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("GOOGLE_SHEETS_API_KEY"); v != "" {
		c.Sheets.APIKey = v
	}
	if v := os.Getenv("GOOGLE_SHEET_IDS"); v != "" {
		c.Sheets.SheetIDs = splitTrim(v)
	}
	if v := os.Getenv("GOOGLE_SHEET_GID"); v != "" {
		c.Sheets.WorksheetGID = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitTrim(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Sheets.AlertsWorksheet == "" {
		c.Sheets.AlertsWorksheet = "TradingView_Alerts"
	}
	if c.Sheets.Timeout == 0 {
		c.Sheets.Timeout = 15 * time.Second
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.Temperature == 0 {
		c.OpenAI.Temperature = 0.3
	}
	if c.OpenAI.Timeout == 0 {
		c.OpenAI.Timeout = 30 * time.Second
	}
	if c.Chat.CacheTTL == 0 {
		c.Chat.CacheTTL = 10 * time.Minute
	}
	if c.Chat.CacheSize == 0 {
		c.Chat.CacheSize = 100
	}
	if c.Chat.RateCapacity == 0 {
		c.Chat.RateCapacity = 5
	}
	if c.Chat.RatePerSec == 0 {
		c.Chat.RatePerSec = 0.5
	}
	if c.Cache.MemoryMaxSize == 0 {
		c.Cache.MemoryMaxSize = 1000
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if len(c.Sheets.SheetIDs) == 0 {
		return fmt.Errorf("sheets.sheet_ids cannot be empty")
	}
	if c.Sheets.APIKey == "" {
		return fmt.Errorf("sheets.api_key is required")
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
		}
		if c.Kafka.EventsTopic == "" {
			return fmt.Errorf("kafka.events_topic is required when kafka is enabled")
		}
	}
	if c.ClickHouse.Enabled {
		if c.ClickHouse.Host == "" || c.ClickHouse.Database == "" {
			return fmt.Errorf("clickhouse.host and clickhouse.database are required when clickhouse is enabled")
		}
	}
	return nil
}

func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
