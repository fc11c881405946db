package client

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/webclient/config"
	"github.com/kbukum/webclient/logger"
	"github.com/kbukum/webclient/observability"
	"github.com/kbukum/webclient/session"
	"github.com/kbukum/webclient/version"
)

const defaultShutdownTimeout = 10 * time.Second

// Client owns a Session and the telemetry providers it reports to.
type Client struct {
	Name    string
	Cfg     *config.ClientConfig
	Session *session.Session
	Metrics *observability.Metrics
	Logger  *logger.Logger

	tracerProvider  *sdktrace.TracerProvider
	meterProvider   *sdkmetric.MeterProvider
	shutdownTimeout time.Duration
	onStop          []Hook
}

// Load reads the configuration for name with config.LoadConfig and creates
// a Client from it.
func Load(ctx context.Context, name string, opts ...Option) (*Client, error) {
	o := resolveOptions(opts)

	cfg := &config.ClientConfig{Name: name}
	if err := config.LoadConfig(name, cfg, o.loaderOpts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	return New(ctx, cfg, opts...)
}

// New applies defaults to cfg, validates it, initializes logging and the
// enabled telemetry exporters, then creates the Session.
func New(ctx context.Context, cfg *config.ClientConfig, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := resolveOptions(opts)
	c := &Client{
		Name:            cfg.Name,
		Cfg:             cfg,
		shutdownTimeout: defaultShutdownTimeout,
	}
	if o.shutdownTimeout != nil {
		c.shutdownTimeout = *o.shutdownTimeout
	}

	if o.logger != nil {
		c.Logger = o.logger
	} else {
		logger.Init(cfg.Logging, cfg.Name)
		c.Logger = logger.GetGlobalLogger()
	}

	if err := c.initTelemetry(ctx); err != nil {
		c.shutdownProviders()
		return nil, err
	}

	sessionOpts := []session.Option{session.WithLogger(c.Logger)}
	if c.Metrics != nil {
		sessionOpts = append(sessionOpts, session.WithMetrics(c.Metrics))
	}
	s, err := session.NewFromConfig(cfg.Session, append(sessionOpts, o.sessionOpts...)...)
	if err != nil {
		c.shutdownProviders()
		return nil, err
	}
	c.Session = s

	c.Logger.Info("client ready", logger.Fields(
		"name", c.Name,
		"version", version.Get().String(),
		"base_url", s.BaseURL(),
		"tracing", cfg.Tracing.Enabled,
		"metrics", cfg.Metrics.Enabled,
	))
	return c, nil
}

func (c *Client) initTelemetry(ctx context.Context) error {
	if c.Cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, c.Cfg.Tracing.TracerConfig)
		if err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
		c.tracerProvider = tp
	}

	if c.Cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, c.Cfg.Metrics.MeterConfig)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		c.meterProvider = mp

		m, err := observability.NewMetrics(mp.Meter(c.Name))
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		c.Metrics = m
	}
	return nil
}

// RunTask runs task with the client's Session and shuts the client down
// when it returns. SIGINT and SIGTERM cancel the task context.
func (c *Client) RunTask(ctx context.Context, task func(ctx context.Context, s *session.Session) error) error {
	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			c.Logger.Info("received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx, c.Session)

	if stopErr := c.Shutdown(context.Background()); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// Shutdown runs the OnStop hooks, closes the Session transport and flushes
// the telemetry providers within the shutdown timeout. It is safe to call more than once.
func (c *Client) Shutdown(ctx context.Context) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := runHooks(ctx, c.onStop); err != nil {
		c.Logger.Error("stop hook failed", logger.ErrorFields("shutdown", err))
		errs = append(errs, err)
	}
	c.onStop = nil

	if c.Session != nil {
		if err := c.Session.Close(); err != nil {
			errs = append(errs, fmt.Errorf("session: %w", err))
		}
	}

	if c.tracerProvider != nil {
		if err := c.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
		c.tracerProvider = nil
	}
	if c.meterProvider != nil {
		if err := c.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
		c.meterProvider = nil
	}

	err := stderrors.Join(errs...)
	if err != nil {
		c.Logger.Warn("shutdown completed with errors", logger.ErrorFields("shutdown", err))
	} else {
		c.Logger.Debug("client shut down", logger.DurationFields("shutdown", time.Since(start)))
	}
	return err
}

// shutdownProviders releases providers after a failed New.
func (c *Client) shutdownProviders() {
	ctx, cancel := context.WithTimeout(context.Background(), c.shutdownTimeout)
	defer cancel()
	if c.tracerProvider != nil {
		_ = c.tracerProvider.Shutdown(ctx)
	}
	if c.meterProvider != nil {
		_ = c.meterProvider.Shutdown(ctx)
	}
}
