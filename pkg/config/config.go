// Package config loads the runtime's Config from flags, environment,
// config file, and defaults (in that precedence order), mirroring
// dittofs's pkg/config.Load.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// LoggingConfig controls internal/logger's level, format, and output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// MetricsConfig controls pkg/metrics's Prometheus exposition.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Address string `mapstructure:"address" validate:"required_if=Enabled true" yaml:"address"`
}

// TelemetryConfig controls internal/telemetry's OTLP/gRPC trace exporter.
// Disabled by default: this runtime ships no bundled collector, so tracing
// is an opt-in integrators enable by pointing Endpoint at their own.
type TelemetryConfig struct {
	Enabled    bool    `mapstructure:"enabled" yaml:"enabled"`
	Endpoint   string  `mapstructure:"endpoint" validate:"required_if=Enabled true" yaml:"endpoint"`
	Insecure   bool    `mapstructure:"insecure" yaml:"insecure"`
	SampleRate float64 `mapstructure:"sample_rate" validate:"min=0,max=1" yaml:"sample_rate"`
}

// UpdatePeriodConfig holds the periodic heartbeat handed to
// urgency.StateUpdateTimer.
type UpdatePeriodConfig struct {
	Heartbeat time.Duration `mapstructure:"heartbeat" validate:"required,gt=0" yaml:"heartbeat"`
}

// Config is the runtime's full static configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (VDA5050PP_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
type Config struct {
	// AGV is the registration-time description of the vehicle this process
	// drives.
	AGV vdamodel.AGVDescription `mapstructure:"agv" validate:"required" yaml:"agv"`

	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Metrics controls Prometheus metrics exposition.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Telemetry controls OTLP trace export.
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// UpdatePeriod controls the StateUpdateTimer's periodic heartbeat.
	UpdatePeriod UpdatePeriodConfig `mapstructure:"update_period" yaml:"update_period"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0" yaml:"shutdown_timeout"`
}

// Load loads configuration from flags, environment, file, and defaults.
//
// configPath, if non-empty, overrides the default config file location; a
// missing file is not an error. flags, if non-nil, is consulted (highest
// precedence) via viper's BindPFlags. Environment variables are consulted
// only for keys that the config file or a bound flag defines.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if _, err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves cfg to path in YAML format.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Encode through the same mapstructure keys Load decodes with, so the
	// file reads back (the AGV description carries no yaml tags).
	var raw map[string]interface{}
	if err := mapstructure.Decode(cfg, &raw); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper configures viper's environment and config-file search.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("VDA5050PP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// readConfigFile reads the configuration file if it exists. It reports
// (fileFound, error); a missing file is not an error, since defaults
// cover that case.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// getConfigDir returns $XDG_CONFIG_HOME/vda5050pp, falling back to
// $HOME/.config/vda5050pp.
func getConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vda5050pp")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vda5050pp"
	}
	return filepath.Join(home, ".config", "vda5050pp")
}

// GetDefaultConfigPath returns the default config file's path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists reports whether a config file exists at the default
// location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// configDecodeHooks returns the combined mapstructure decode hook for
// time.Duration and any other custom scalar types this config uses.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
	)
}

// durationDecodeHook parses human-readable durations like "30s", "5m" into
// time.Duration, since YAML/env have no native duration type.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

var validate = validator.New()

// Validate runs go-playground/validator against cfg's struct tags.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	return nil
}
