package observability

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/webclient/errors"
)

// RequestContext tracks one outbound request across tracing and metrics.
type RequestContext struct {
	ServiceName string
	Method      string
	Host        string
	Path        string
	RequestID   string
	StartTime   time.Time
	Metrics     *Metrics
}

// NewRequestContext creates a request context starting now.
// If metrics is nil, metric recording is silently skipped.
func NewRequestContext(serviceName, method, host, path, requestID string, metrics *Metrics) *RequestContext {
	return &RequestContext{
		ServiceName: serviceName,
		Method:      method,
		Host:        host,
		Path:        path,
		RequestID:   requestID,
		StartTime:   time.Now(),
		Metrics:     metrics,
	}
}

type requestContextKey struct{}

// WithRequestContext stores a RequestContext in the context.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// RequestContextFromContext retrieves the RequestContext from context, or nil.
func RequestContextFromContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(requestContextKey{}).(*RequestContext); ok {
		return rc
	}
	return nil
}

// Start opens a client span for the request and records the start metric.
// The returned context carries both the span and the RequestContext.
func (rc *RequestContext) Start(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanHTTPRequest, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String(AttrServiceName, rc.ServiceName),
		attribute.String(AttrHTTPMethod, rc.Method),
		attribute.String(AttrServerHost, rc.Host),
		attribute.String(AttrURLPath, rc.Path),
		attribute.String(AttrRequestID, rc.RequestID),
	)

	if rc.Metrics != nil {
		rc.Metrics.RecordRequestStart(ctx)
	}
	return WithRequestContext(ctx, rc), span
}

// End closes the span and records request-end metrics. A zero status means
// no response was received.
func (rc *RequestContext) End(ctx context.Context, span trace.Span, status int, err error) {
	duration := time.Since(rc.StartTime)

	statusLabel := "error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
		span.SetAttributes(attribute.Int(AttrStatusCode, status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		if appErr, ok := errors.AsAppError(err); ok {
			span.SetAttributes(attribute.String(AttrErrorCode, appErr.Code.String()))
			if rc.Metrics != nil {
				rc.Metrics.RecordError(ctx, appErr.Code.String(), rc.ServiceName)
			}
		}
	}
	span.SetAttributes(attribute.Int64(AttrDurationMs, duration.Milliseconds()))
	span.End()

	if rc.Metrics != nil {
		rc.Metrics.RecordRequestEnd(ctx, rc.Host, rc.Method, statusLabel, duration)
	}
}

// Duration returns the elapsed time since the request started.
func (rc *RequestContext) Duration() time.Duration {
	return time.Since(rc.StartTime)
}
