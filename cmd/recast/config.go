package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"recast/cache"
)

// cliConfig is the .recast.yaml configuration: inference settings plus the
// plan cache backend shared between invocations.
type cliConfig struct {
	Threshold   float64     `mapstructure:"threshold"`
	Conventions bool        `mapstructure:"conventions"`
	Cache       cacheConfig `mapstructure:"cache"`
}

type cacheConfig struct {
	Backend  string `mapstructure:"backend"` // memory, sqlite or redis
	Path     string `mapstructure:"path"`    // sqlite database file
	Addr     string `mapstructure:"addr"`    // redis address
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      string `mapstructure:"ttl"`
}

// loadConfig reads .recast.yaml from the working directory. A missing file is
// fine; defaults apply.
func loadConfig() (cliConfig, error) {
	v := viper.New()
	v.SetConfigName(".recast")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("threshold", 0.8)
	v.SetDefault("conventions", true)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.path", ".recast-plans.db")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cliConfig{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg cliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cliConfig{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// openCache builds the configured plan cache backend. The returned closer
// releases backend resources and is a no-op for the in-memory cache.
func openCache(cfg cliConfig) (cache.Backend, func(), error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		return cache.NewMemory(), func() {}, nil

	case "sqlite":
		backend, err := cache.NewSQLite(cfg.Cache.Path)
		if err != nil {
			return nil, nil, err
		}

		return backend, func() { backend.Close() }, nil

	case "redis":
		ttl := time.Duration(0)
		if cfg.Cache.TTL != "" {
			parsed, err := time.ParseDuration(cfg.Cache.TTL)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid cache.ttl %q: %w", cfg.Cache.TTL, err)
			}

			ttl = parsed
		}

		backend, err := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      ttl,
		})
		if err != nil {
			return nil, nil, err
		}

		return backend, func() { backend.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q, expected memory, sqlite or redis", cfg.Cache.Backend)
	}
}
