package client

import (
	"time"

	"github.com/kbukum/webclient/config"
	"github.com/kbukum/webclient/logger"
	"github.com/kbukum/webclient/session"
)

// Option configures the Client during creation.
type Option func(*clientOptions)

type clientOptions struct {
	logger          *logger.Logger
	sessionOpts     []session.Option
	loaderOpts      []config.LoaderOption
	shutdownTimeout *time.Duration
}

func resolveOptions(opts []Option) *clientOptions {
	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger. If not set, the global logger is initialized
// from the logging section of the configuration.
func WithLogger(l *logger.Logger) Option {
	return func(o *clientOptions) {
		o.logger = l
	}
}

// WithSessionOptions appends options applied after the configured ones.
func WithSessionOptions(opts ...session.Option) Option {
	return func(o *clientOptions) {
		o.sessionOpts = append(o.sessionOpts, opts...)
	}
}

// WithLoaderOptions passes options to config.LoadConfig. Only used by Load.
func WithLoaderOptions(opts ...config.LoaderOption) Option {
	return func(o *clientOptions) {
		o.loaderOpts = append(o.loaderOpts, opts...)
	}
}

// WithShutdownTimeout bounds the time spent flushing telemetry on shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.shutdownTimeout = &d
	}
}
