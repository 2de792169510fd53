// Package config provides configuration loading and validation for faststat.
package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidSize         = errors.New("bench sizes must be positive")
	ErrInvalidIterations   = errors.New("bench iterations must be positive")
	ErrInvalidDistribution = errors.New("unknown distribution")
	ErrInvalidCases        = errors.New("check cases must be positive")
	ErrInvalidWorkers      = errors.New("check workers must be positive")
	ErrInvalidTolerance    = errors.New("tolerances must be non-negative")
	ErrInvalidLogFormat    = errors.New("log format must be text or json")
	ErrInvalidSampleRatio  = errors.New("telemetry sample_ratio must be within [0, 1]")
)

// Config holds all configuration for faststat.
type Config struct {
	Bench     BenchConfig     `mapstructure:"bench"`
	Check     CheckConfig     `mapstructure:"check"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// BenchConfig controls benchmark runs.
type BenchConfig struct {
	Distribution string   `mapstructure:"distribution"`
	Kernels      []string `mapstructure:"kernels"`
	Sizes        []int    `mapstructure:"sizes"`
	Seed         uint64   `mapstructure:"seed"`
	Iterations   int      `mapstructure:"iterations"`
}

// CheckConfig controls parity checks against the reference oracle.
type CheckConfig struct {
	Kernels []string `mapstructure:"kernels"`
	RelTol  float64  `mapstructure:"rel_tol"`
	AbsTol  float64  `mapstructure:"abs_tol"`
	Cases   int      `mapstructure:"cases"`
	MaxSize int      `mapstructure:"max_size"`
	Workers int      `mapstructure:"workers"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds export settings for traces and metrics.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	// OTLPHeaders is a "key=value,key=value" list sent as gRPC metadata.
	OTLPHeaders string `mapstructure:"otlp_headers"`
	// Environment becomes the deployment.environment resource attribute
	// and the env attribute of log records.
	Environment string `mapstructure:"environment"`
	MetricsFile string `mapstructure:"metrics_file"`
	// SampleRatio is the fraction of root spans kept; 0 keeps all of them.
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("faststat")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
	}

	viperCfg.SetEnvPrefix("FASTSTAT")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	// Bench defaults.
	viperCfg.SetDefault("bench.sizes", DefaultBenchSizes)
	viperCfg.SetDefault("bench.iterations", DefaultBenchIterations)
	viperCfg.SetDefault("bench.seed", DefaultBenchSeed)
	viperCfg.SetDefault("bench.distribution", DefaultBenchDistribution)
	viperCfg.SetDefault("bench.kernels", []string{})

	// Check defaults.
	viperCfg.SetDefault("check.cases", DefaultCheckCases)
	viperCfg.SetDefault("check.max_size", DefaultCheckMaxSize)
	viperCfg.SetDefault("check.workers", DefaultCheckWorkers)
	viperCfg.SetDefault("check.rel_tol", DefaultCheckRelTol)
	viperCfg.SetDefault("check.abs_tol", DefaultCheckAbsTol)
	viperCfg.SetDefault("check.kernels", []string{})

	// Logging defaults.
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	// Telemetry defaults.
	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.metrics_file", "")
	viperCfg.SetDefault("telemetry.otlp_headers", "")
	viperCfg.SetDefault("telemetry.environment", "")
	viperCfg.SetDefault("telemetry.sample_ratio", DefaultSampleRatio)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	for _, size := range config.Bench.Sizes {
		if size <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidSize, size)
		}
	}

	if config.Bench.Iterations <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIterations, config.Bench.Iterations)
	}

	if !slices.Contains(Distributions, config.Bench.Distribution) {
		return fmt.Errorf("%w: %q", ErrInvalidDistribution, config.Bench.Distribution)
	}

	if config.Check.Cases <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCases, config.Check.Cases)
	}

	if config.Check.MaxSize <= 0 {
		return fmt.Errorf("%w: max_size %d", ErrInvalidSize, config.Check.MaxSize)
	}

	if config.Check.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, config.Check.Workers)
	}

	if config.Check.RelTol < 0 || config.Check.AbsTol < 0 {
		return fmt.Errorf("%w: rel_tol %v, abs_tol %v", ErrInvalidTolerance,
			config.Check.RelTol, config.Check.AbsTol)
	}

	if config.Logging.Format != "text" && config.Logging.Format != "json" {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	ratio := config.Telemetry.SampleRatio
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, ratio)
	}

	return nil
}
