// Package config loads process and run configuration from a yaml file, the
// environment (prefix WYNNOPT) and an optional .env file.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/wynn-optimizer/internal/clients/wynnapi"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/logger"
	"github.com/KirkDiggler/wynn-optimizer/internal/repositories/results"
)

// EnvPrefix prefixes every environment override, e.g. WYNNOPT_REDIS_ADDR
const EnvPrefix = "WYNNOPT"

// Config represents the complete application configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Results   ResultsConfig   `mapstructure:"results"`
	Lease     LeaseConfig     `mapstructure:"lease"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Optimizer OptimizerConfig `mapstructure:"optimizer"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RedisConfig contains Redis connection configuration. An empty address runs
// without redis: no catalog cache tier, no leases, and file results.
type RedisConfig struct {
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	PoolSize   int    `mapstructure:"pool_size"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// CatalogConfig contains item database configuration
type CatalogConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	MaxRetries        int           `mapstructure:"max_retries"`
	// SnapshotPath is read when the API fails and refreshed after it succeeds
	SnapshotPath string `mapstructure:"snapshot_path"`
}

// ResultsConfig selects the result log backend
type ResultsConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

// LeaseConfig contains run lease configuration
type LeaseConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MetricsConfig contains the metrics endpoint configuration. Empty disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration. path may be empty, in which case config.yaml is
// looked up in the working directory and ./configs and is optional.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load .env")
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); path != "" || !ok {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logger.FormatJSON)

	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.max_retries", 3)

	v.SetDefault("catalog.base_url", wynnapi.DefaultBaseURL)
	v.SetDefault("catalog.timeout", "60s")
	v.SetDefault("catalog.cache_ttl", "1h")
	v.SetDefault("catalog.requests_per_minute", wynnapi.DefaultRequestsPerMinute)
	v.SetDefault("catalog.max_retries", 2)
	v.SetDefault("catalog.snapshot_path", "data/items.json")

	v.SetDefault("results.backend", results.BackendFile)
	v.SetDefault("results.dir", "data/results")

	v.SetDefault("lease.ttl", "10m")

	v.SetDefault("optimizer.shrink", 0.9)
	v.SetDefault("optimizer.backend", "branch_and_bound")
	v.SetDefault("optimizer.sp_pair", []string{"str", "dex"})
}

// Validate validates the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("log.level", c.Log.Level, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("log.format", c.Log.Format, []string{logger.FormatJSON, logger.FormatConsole}, vb)

	errors.ValidateEnum("results.backend", c.Results.Backend, []string{results.BackendRedis, results.BackendFile}, vb)
	if c.Results.Backend == results.BackendFile && c.Results.Dir == "" {
		vb.RequiredField("results.dir")
	}
	if c.Results.Backend == results.BackendRedis && c.Redis.Addr == "" {
		vb.Field("redis.addr", "is required for the redis results backend")
	}

	if c.Catalog.RequestsPerMinute <= 0 {
		vb.InvalidField("catalog.requests_per_minute", "must be positive")
	}
	if c.Catalog.CacheTTL < 0 {
		vb.InvalidField("catalog.cache_ttl", "must not be negative")
	}
	if c.Lease.TTL <= 0 {
		vb.InvalidField("lease.ttl", "must be positive")
	}

	c.Optimizer.validate(vb)

	return vb.Build()
}
