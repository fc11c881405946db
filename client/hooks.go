package client

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback run on shutdown.
type Hook func(ctx context.Context) error

// OnStop registers hooks that run before the telemetry providers are shut
// down, in registration order.
func (c *Client) OnStop(hooks ...Hook) {
	c.onStop = append(c.onStop, hooks...)
}

func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}
