// Package config handles qbrdash.yaml configuration files and environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "qbrdash.yaml"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the full service configuration.
type Config struct {
	Listen  string        `yaml:"listen,omitempty"`
	Dataset DatasetConfig `yaml:"dataset,omitempty"`
	Cache   CacheConfig   `yaml:"cache,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
	CORS    CORSConfig    `yaml:"cors,omitempty"`
	Timeout time.Duration `yaml:"request_timeout,omitempty"`
}

// DatasetConfig locates the input data.
type DatasetConfig struct {
	Location string `yaml:"location,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// CacheConfig selects and tunes the summary cache.
type CacheConfig struct {
	Backend       string        `yaml:"backend,omitempty"`
	TTL           time.Duration `yaml:"ttl,omitempty"`
	RedisAddr     string        `yaml:"redis_addr,omitempty"`
	RedisPassword string        `yaml:"redis_password,omitempty"`
	RedisDB       int           `yaml:"redis_db,omitempty"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level,omitempty"`
	Development bool   `yaml:"development,omitempty"`
}

// CORSConfig lists origins allowed to call the JSON API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:  "0.0.0.0:8000",
		Dataset: DatasetConfig{Location: "qbr3_df.csv"},
		Cache: CacheConfig{
			Backend: CacheMemory,
			TTL:     time.Hour,
		},
		Log:     LogConfig{Level: "info"},
		CORS:    CORSConfig{AllowedOrigins: []string{"*"}},
		Timeout: 30 * time.Second,
	}
}

// Load reads path on top of the defaults and then applies environment
// overrides. A missing file is not an error when path is the default name.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	applyEnv(&cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if port := getenv("PORT"); port != "" {
		cfg.Listen = ":" + port
	}
	if v := getenv("QBR_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := getenv("QBR_DATASET"); v != "" {
		cfg.Dataset.Location = v
	} else if mount := getenv("RAILWAY_VOLUME_MOUNT_PATH"); mount != "" && !filepath.IsAbs(cfg.Dataset.Location) && !strings.Contains(cfg.Dataset.Location, "://") {
		cfg.Dataset.Location = filepath.Join(mount, cfg.Dataset.Location)
	}
	if v := getenv("QBR_DATASET_TOKEN"); v != "" {
		cfg.Dataset.Token = v
	}
	if v := getenv("QBR_CACHE"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := getenv("QBR_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = d
		}
	}
	if v := getenv("QBR_REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
		if getenv("QBR_CACHE") == "" {
			cfg.Cache.Backend = CacheRedis
		}
	}
	if v := getenv("QBR_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.RedisDB = n
		}
	}
	if v := getenv("QBR_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is empty")
	}
	if c.Dataset.Location == "" {
		return errors.New("dataset location is empty")
	}
	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New("cache backend redis needs cache.redis_addr")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend != CacheNone && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
