package session

import (
	"time"

	"github.com/kbukum/webclient/errors"
	"github.com/kbukum/webclient/security"
	"github.com/kbukum/webclient/validation"
)

// Config describes a Session in configuration files.
type Config struct {
	// BaseURL is the scheme, host and base path requests are resolved against.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Headers are default request headers.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Username and Password enable HTTP Basic auth when Username is set.
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`

	// TLS configures HTTPS verification and client certificates.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Timeout bounds each exchange. Zero uses the transport default.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.TLS.Validate(); err != nil {
		return errors.InvalidInput("tls", err.Error())
	}
	return nil
}

// Options converts the configuration into Session options.
func (c *Config) Options() []Option {
	var opts []Option
	if len(c.Headers) > 0 {
		opts = append(opts, WithHeaders(c.Headers))
	}
	if c.Username != "" {
		opts = append(opts, WithAuth(BasicAuth(c.Username, c.Password)))
	}
	if c.TLS != nil {
		opts = append(opts, WithTLS(c.TLS))
	}
	if c.Timeout > 0 {
		opts = append(opts, WithTimeout(c.Timeout))
	}
	return opts
}

// NewFromConfig validates cfg and creates a Session from it. opts are
// applied after the configuration and take precedence.
func NewFromConfig(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(cfg.BaseURL, append(cfg.Options(), opts...)...)
}
