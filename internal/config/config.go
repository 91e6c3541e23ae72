// Package config loads and validates the application configuration from a
// YAML file, with environment variables expanded so credentials can stay
// out of the file itself.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache backends selectable via cache.backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds all pokedex-web configuration.
type Config struct {
	Listen   string         `yaml:"listen"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Cache    CacheConfig    `yaml:"cache"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Log      LogConfig      `yaml:"log"`
}

// UpstreamConfig points at the catalog API.
type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string      `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig configures the Redis backend. Only read when backend is
// "redis".
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CatalogConfig tunes the catalog service.
type CatalogConfig struct {
	// PageSize is the default list page size when the caller sends none.
	PageSize int `yaml:"page_size"`

	// DetailConcurrency caps concurrent per-entry detail fetches during a
	// page fetch. 1 resolves entries strictly in sequence.
	DetailConcurrency int `yaml:"detail_concurrency"`
}

// SMTPConfig configures outgoing mail. Username/Password are typically
// injected via ${VAR} expansion.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Listen: ":8080",
		Upstream: UpstreamConfig{
			BaseURL: "https://pokeapi.co/api/v2",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Backend: BackendMemory,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Catalog: CatalogConfig{
			PageSize:          20,
			DetailConcurrency: 1,
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file, expands environment variables, applies
// defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream base_url is required")
	}

	switch c.Cache.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q: use %q or %q",
			c.Cache.Backend, BackendMemory, BackendRedis)
	}

	if c.Catalog.PageSize < 1 {
		return fmt.Errorf("catalog page_size must be >= 1, got %d", c.Catalog.PageSize)
	}
	if c.Catalog.DetailConcurrency < 1 {
		return fmt.Errorf("catalog detail_concurrency must be >= 1, got %d", c.Catalog.DetailConcurrency)
	}

	if c.SMTP.Host != "" {
		if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
			return fmt.Errorf("smtp port %d out of range", c.SMTP.Port)
		}
		if c.SMTP.From == "" {
			return fmt.Errorf("smtp from address is required when smtp host is set")
		}
	}

	return nil
}

// MailEnabled reports whether outgoing mail is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTP.Host != ""
}
