package config

import (
	"strings"
	"time"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// GetDefaultConfig returns a Config with every field set to its default,
// suitable for a fresh install with no config file.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills any unspecified configuration fields with sensible
// defaults, following dittofs's zero-value-replaced-by-default strategy:
// explicit values are always preserved.
func ApplyDefaults(cfg *Config) {
	applyAGVDefaults(&cfg.AGV)
	applyLoggingDefaults(&cfg.Logging)
	applyMetricsDefaults(&cfg.Metrics)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyUpdatePeriodDefaults(&cfg.UpdatePeriod)

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
}

func applyAGVDefaults(cfg *vdamodel.AGVDescription) {
	if cfg.AGVID == "" {
		cfg.AGVID = "agv-1"
	}
	if cfg.Manufacturer == "" {
		cfg.Manufacturer = "unknown"
	}
	if cfg.SerialNumber == "" {
		cfg.SerialNumber = "0"
	}
	if cfg.Navigation.DrivingMode == "" {
		cfg.Navigation.DrivingMode = vdamodel.DrivingModeAutomated
	}
	if cfg.Navigation.Kinematic == "" {
		cfg.Navigation.Kinematic = vdamodel.KinematicDiff
	}
	if cfg.Navigation.MaxVelocity == 0 {
		cfg.Navigation.MaxVelocity = 1.0
	}
	if cfg.Navigation.MaxAcceleration == 0 {
		cfg.Navigation.MaxAcceleration = 1.0
	}
	if cfg.Navigation.MaxDeceleration == 0 {
		cfg.Navigation.MaxDeceleration = 1.0
	}
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Enabled && cfg.Address == "" {
		cfg.Address = ":9090"
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Enabled && cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
}

func applyUpdatePeriodDefaults(cfg *UpdatePeriodConfig) {
	if cfg.Heartbeat == 0 {
		cfg.Heartbeat = time.Second
	}
}
