package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Gecko       GeckoConfig       `yaml:"gecko"`
	DexScreener DexScreenerConfig `yaml:"dexscreener"`
	Cache       CacheConfig       `yaml:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout_secs"`
	WriteTimeout int    `yaml:"write_timeout_secs"`
	IdleTimeout  int    `yaml:"idle_timeout_secs"`

	// Per-request deadline. Must cover a worst-case cold refresh: the
	// whole sequential batch runs inside one request.
	RequestTimeout int `yaml:"request_timeout_secs"`
}

// GeckoConfig holds upstream aggregator settings.
type GeckoConfig struct {
	BaseURL         string  `yaml:"base_url"`
	UserAgent       string  `yaml:"user_agent"`
	TimeoutSecs     int     `yaml:"timeout_secs"`
	RPS             float64 `yaml:"rps"`
	Burst           int     `yaml:"burst"`
	BreakerFailures uint32  `yaml:"breaker_failures"`
	BreakerTimeout  int     `yaml:"breaker_timeout_secs"`
}

// DexScreenerConfig holds secondary verification source settings.
type DexScreenerConfig struct {
	BaseURL     string  `yaml:"base_url"`
	TimeoutSecs int     `yaml:"timeout_secs"`
	RPS         float64 `yaml:"rps"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	TTLSecs int `yaml:"ttl_secs"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			ReadTimeout:    10,
			WriteTimeout:   120,
			IdleTimeout:    60,
			RequestTimeout: 90,
		},
		Gecko: GeckoConfig{
			BaseURL:         "https://api.geckoterminal.com/api/v2",
			UserAgent:       "RoninTokenDashboard/1.0",
			TimeoutSecs:     10,
			RPS:             5,
			Burst:           1,
			BreakerFailures: 8,
			BreakerTimeout:  30,
		},
		DexScreener: DexScreenerConfig{
			BaseURL:     "https://api.dexscreener.com/latest/dex",
			TimeoutSecs: 10,
			RPS:         5,
		},
		Cache: CacheConfig{
			TTLSecs: 45,
		},
	}
}

// Load reads configuration from a YAML file layered over defaults. An
// empty path returns defaults. HTTP_PORT overrides the configured port
// either way.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if portStr := os.Getenv("HTTP_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_PORT %q: %w", portStr, err)
		}
		cfg.Server.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot serve.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Gecko.BaseURL == "" {
		return fmt.Errorf("gecko base_url must not be empty")
	}
	if c.Gecko.RPS <= 0 {
		return fmt.Errorf("gecko rps must be positive, got %v", c.Gecko.RPS)
	}
	if c.Cache.TTLSecs <= 0 {
		return fmt.Errorf("cache ttl_secs must be positive, got %d", c.Cache.TTLSecs)
	}
	return nil
}

// CacheTTL returns the result cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSecs) * time.Second
}

// RequestTimeoutDuration returns the per-request deadline as a duration.
func (c *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
