package config

import (
	"time"

	"github.com/kbukum/webclient/errors"
	"github.com/kbukum/webclient/logger"
	"github.com/kbukum/webclient/observability"
	"github.com/kbukum/webclient/session"
	"github.com/kbukum/webclient/validation"
	"github.com/kbukum/webclient/version"
)

// DefaultName is the client name used when none is configured. It is also
// the default environment prefix.
const DefaultName = "webclient"

const defaultOTLPEndpoint = "localhost:4318"

// ClientConfig is the complete configuration of a client process.
type ClientConfig struct {
	// Name identifies the client in logs, traces and metrics.
	Name string `yaml:"name" mapstructure:"name"`

	Session session.Config `yaml:"session" mapstructure:"session"`
	Logging logger.Config  `yaml:"logging" mapstructure:"logging"`
	Tracing TracingConfig  `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// TracingConfig enables OTLP trace export.
type TracingConfig struct {
	Enabled                    bool `yaml:"enabled" mapstructure:"enabled"`
	observability.TracerConfig `yaml:",inline" mapstructure:",squash"`
}

// MetricsConfig enables OTLP metric export.
type MetricsConfig struct {
	Enabled                   bool `yaml:"enabled" mapstructure:"enabled"`
	observability.MeterConfig `yaml:",inline" mapstructure:",squash"`
}

// ApplyDefaults fills unset values. Tracing and metrics defaults are only
// applied when the exporter is enabled.
func (c *ClientConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	c.Logging.ApplyDefaults()

	if c.Tracing.Enabled {
		t := &c.Tracing.TracerConfig
		if t.ServiceName == "" {
			t.ServiceName = c.Name
		}
		if t.ServiceVersion == "" {
			t.ServiceVersion = version.Get().String()
		}
		if t.Endpoint == "" {
			t.Endpoint = defaultOTLPEndpoint
		}
		if t.SampleRate == 0 {
			t.SampleRate = 1.0
		}
	}
	if c.Metrics.Enabled {
		m := &c.Metrics.MeterConfig
		if m.ServiceName == "" {
			m.ServiceName = c.Name
		}
		if m.ServiceVersion == "" {
			m.ServiceVersion = version.Get().String()
		}
		if m.Endpoint == "" {
			m.Endpoint = defaultOTLPEndpoint
		}
		if m.Interval == 0 {
			m.Interval = 15 * time.Second
		}
	}
}

// Validate checks every section. Call ApplyDefaults first.
func (c *ClientConfig) Validate() error {
	v := validation.New().Required("name", c.Name)
	if c.Tracing.Enabled {
		v.Required("tracing.endpoint", c.Tracing.Endpoint)
		v.Custom(c.Tracing.SampleRate >= 0 && c.Tracing.SampleRate <= 1,
			"tracing.sample_rate", "must be between 0 and 1")
	}
	if c.Metrics.Enabled {
		v.Required("metrics.endpoint", c.Metrics.Endpoint)
		v.Custom(c.Metrics.Interval >= 0, "metrics.interval", "must not be negative")
	}
	if err := v.Err(); err != nil {
		return err
	}

	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidInput("logging", err.Error())
	}
	return c.Session.Validate()
}
