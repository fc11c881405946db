// Package observability provides OpenTelemetry tracing and metrics for
// outbound HTTP requests.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("webclient"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanHTTPRequest)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("webclient"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("webclient"))
//
// Per-request tracking ties both together:
//
//	rc := observability.NewRequestContext("webclient", "GET", "example.com", "/", id, metrics)
//	ctx, span := rc.Start(ctx)
//	defer rc.End(ctx, span, status, err)
package observability
