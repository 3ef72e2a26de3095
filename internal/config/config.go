// Package config loads and validates the report configuration: which series
// files to ingest, how each metric aggregates, and where artifacts go.
// Values come from a YAML file with GRIDPULSE_-prefixed environment
// overrides on top.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration.
type Config struct {
	Logging LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Report  ReportConfig   `yaml:"report" envconfig:"REPORT"`
	Metrics []MetricConfig `yaml:"metrics" validate:"required,min=1,dive"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ReportConfig controls report-wide behavior shared by every metric.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	// From and To bound the alignment window; empty means the full span of
	// the loaded data.
	From string `yaml:"from" envconfig:"FROM" validate:"omitempty,datetime=2006-01-02"`
	To   string `yaml:"to" envconfig:"TO" validate:"omitempty,datetime=2006-01-02"`
	// VarianceMode picks the control-band convention project-wide.
	VarianceMode string `yaml:"variance_mode" envconfig:"VARIANCE_MODE" validate:"oneof=population sample"`
}

// MetricConfig describes one ingested series and its aggregation behavior.
// Everything the engine treats as a parameter is explicit here; the engine
// itself has no hidden defaults.
type MetricConfig struct {
	Name   string `yaml:"name" validate:"required"`
	Path   string `yaml:"path" validate:"required"`
	Format string `yaml:"format" validate:"oneof=csv xlsx"`
	// ValueColumn is the logical column name for delimited files; matched
	// against the normalized header, with column index 1 as the fallback.
	ValueColumn string `yaml:"value_column"`
	// Mode is the combination mode: "sum" for energy-like series,
	// "average" for price-like series.
	Mode string `yaml:"mode" validate:"oneof=sum average"`
	// RollingWindows lists the trailing window sizes (days) to evaluate.
	RollingWindows []int `yaml:"rolling_windows" validate:"dive,gt=0"`
	// LagDays shifts this series backward in alignment windows, for series
	// reported with a delay.
	LagDays int `yaml:"lag_days" validate:"gte=0"`
	// TradingDayWindows switches rolling calculations to the last-N-present
	// -dates convention used for sparse trading-day series.
	TradingDayWindows bool `yaml:"trading_day_windows"`
}

// defaultConfig is the baseline every load starts from; the file and the
// environment override it in that order.
func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/gridcli.log",
		},
		Report: ReportConfig{
			OutputDir:    "reports",
			VarianceMode: "sample",
		},
	}
}

// Load reads configuration from the YAML file at path, applies
// GRIDPULSE_-prefixed environment overrides on top, and validates the
// result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Environment wins over the file.
	if err := envconfig.Process("GRIDPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("process env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
