// Package config loads service settings from an optional YAML file and the
// environment. Precedence is defaults, then the file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/qualcanal/qualcanal/internal/logger"
	"github.com/qualcanal/qualcanal/internal/scraper"
)

type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Cache    CacheConfig    `yaml:"cache"`
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	Log      LogConfig      `yaml:"log"`
}

type SourceConfig struct {
	URL     string            `yaml:"url"`
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

type CacheConfig struct {
	TTL   time.Duration `yaml:"ttl"` // <= 0 disables caching
	Redis RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"` // empty means in-memory cache
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type APIConfig struct {
	Listen      string          `yaml:"listen"`
	AllowOrigin string          `yaml:"allow_origin"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

type RateLimitConfig struct {
	Requests int           `yaml:"requests"` // 0 disables
	Window   time.Duration `yaml:"window"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			URL:     scraper.DefaultURL,
			Timeout: scraper.Timeout,
			Headers: map[string]string{},
		},
		Cache: CacheConfig{
			TTL: 300 * time.Second,
		},
		API: APIConfig{
			Listen:      ":8000",
			AllowOrigin: "*",
			RateLimit: RateLimitConfig{
				Requests: 60,
				Window:   time.Minute,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: string(logger.FormatJSON),
		},
	}
}

// Load reads path (if non-empty) over the defaults and applies environment
// overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	str("QUALCANAL_SOURCE_URL", &c.Source.URL)
	str("DATABASE_URL", &c.Database.URL)
	str("REDIS_ADDR", &c.Cache.Redis.Addr)
	str("REDIS_PASSWORD", &c.Cache.Redis.Password)
	str("API_ALLOW_ORIGIN", &c.API.AllowOrigin)
	str("QUALCANAL_LISTEN", &c.API.Listen)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("MATCH_CACHE_SECONDS"); ok {
		secs, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid MATCH_CACHE_SECONDS %q: %w", v, err)
		}
		c.Cache.TTL = time.Duration(secs) * time.Second
	}

	if v, ok := lookup("REDIS_DB"); ok {
		db, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		c.Cache.Redis.DB = db
	}

	return nil
}

// Validate checks settings that would otherwise fail later at startup.
func (c *Config) Validate() error {
	var errs []error

	if c.Source.URL == "" {
		errs = append(errs, errors.New("source.url is required"))
	}
	if c.Source.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("source.timeout must be positive, got %s", c.Source.Timeout))
	}
	if c.API.Listen == "" {
		errs = append(errs, errors.New("api.listen is required"))
	}
	if c.API.RateLimit.Requests < 0 {
		errs = append(errs, fmt.Errorf("api.rate_limit.requests must not be negative, got %d", c.API.RateLimit.Requests))
	}
	if c.API.RateLimit.Requests > 0 && c.API.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("api.rate_limit.window must be positive when requests is set"))
	}
	if c.Cache.Redis.DB < 0 {
		errs = append(errs, fmt.Errorf("cache.redis.db must not be negative, got %d", c.Cache.Redis.DB))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch logger.Format(c.Log.Format) {
	case logger.FormatJSON, logger.FormatConsole:
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Logger converts the log settings for logger.Configure.
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:  c.Log.Level,
		Format: logger.Format(c.Log.Format),
	}
}
