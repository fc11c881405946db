// Package client wires a configured Session together with logging, tracing
// and metrics, and manages their lifecycle.
//
//	c, err := client.Load(ctx, "webclient")
//	if err != nil {
//		return err
//	}
//	return c.RunTask(ctx, func(ctx context.Context, s *session.Session) error {
//		_, err := s.Get(ctx, "status")
//		return err
//	})
package client
