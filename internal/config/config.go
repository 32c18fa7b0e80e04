// Package config loads the engine configuration from a YAML file and
// GQLCORE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables, e.g.
// GQLCORE_EXECUTOR_MAX_CONCURRENCY overrides executor.max_concurrency.
const EnvPrefix = "GQLCORE"

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Executor ExecutorConfig `mapstructure:"executor"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

type ExecutorConfig struct {
	MaxConcurrency     int  `mapstructure:"max_concurrency"`
	SubscriptionBuffer int  `mapstructure:"subscription_buffer"`
	Introspection      bool `mapstructure:"introspection"`
}

type TracingConfig struct {
	// Endpoint is the OTLP gRPC collector address. Empty disables tracing.
	Endpoint string `mapstructure:"endpoint"`
	Service  string `mapstructure:"service"`
}

type MetricsConfig struct {
	// Address serves /metrics when set, e.g. ":9090".
	Address string `mapstructure:"address"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("executor.max_concurrency", 256)
	v.SetDefault("executor.subscription_buffer", 0)
	v.SetDefault("executor.introspection", true)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service", "gqlcore")
	v.SetDefault("metrics.address", "")
}

// Load reads path, or gqlcore.yaml from the working directory when path is
// empty, then applies environment overrides. A missing default file is not
// an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gqlcore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Executor.MaxConcurrency < 0 {
		return fmt.Errorf("config: executor.max_concurrency must not be negative")
	}
	if c.Executor.SubscriptionBuffer < 0 {
		return fmt.Errorf("config: executor.subscription_buffer must not be negative")
	}
	return nil
}
