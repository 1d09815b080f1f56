package config

import (
	"fmt"
	"time"

	"github.com/kbukum/seqinput/corpus"
	"github.com/kbukum/seqinput/observability"
)

// AppConfig is the configuration of the seqinput command.
type AppConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Storage       StorageConfig   `yaml:"storage" mapstructure:"storage"`
	Telemetry     TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
	Pipeline      PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
}

// StorageConfig configures where corpus files may live besides the local
// filesystem.
type StorageConfig struct {
	S3 corpus.S3Config `yaml:"s3" mapstructure:"s3"`
}

// TelemetryConfig configures OTLP export of reader spans and metrics.
type TelemetryConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// PipelineConfig names a default pipeline definition and overrides applied
// on top of its args.
type PipelineConfig struct {
	Definition string         `yaml:"definition" mapstructure:"definition"`
	Overrides  map[string]any `yaml:"overrides" mapstructure:"overrides"`
}

// ApplyDefaults applies defaults to every section.
func (c *AppConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Storage.S3.ApplyDefaults()

	t := &c.Telemetry
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4318"
	}
	if t.SampleRate == 0 {
		t.SampleRate = 1.0
	}
	if t.Interval == 0 {
		t.Interval = 30 * time.Second
	}
}

// Validate validates every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Storage.S3.Validate(); err != nil {
		return err
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("config.telemetry.sample_rate must be within [0, 1] (got: %v)", c.Telemetry.SampleRate)
	}
	if c.Telemetry.Interval < 0 {
		return fmt.Errorf("config.telemetry.interval must not be negative")
	}
	return nil
}

// TracerConfig maps the telemetry section to tracer settings.
func (c *AppConfig) TracerConfig() observability.TracerConfig {
	return observability.TracerConfig{
		ServiceName:    c.Name,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		Endpoint:       c.Telemetry.Endpoint,
		Insecure:       c.Telemetry.Insecure,
		SampleRate:     c.Telemetry.SampleRate,
	}
}

// MeterConfig maps the telemetry section to meter settings.
func (c *AppConfig) MeterConfig() observability.MeterConfig {
	return observability.MeterConfig{
		ServiceName:    c.Name,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		Endpoint:       c.Telemetry.Endpoint,
		Insecure:       c.Telemetry.Insecure,
		Interval:       c.Telemetry.Interval,
	}
}
