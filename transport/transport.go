package transport

import (
	"context"

	"github.com/kbukum/webclient/header"
)

// Request is a fully resolved outbound request.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Scheme is "http" or "https".
	Scheme string
	// Host is the authority, host[:port].
	Host string
	// Target is the request target: path plus optional "?query".
	Target string
	// Header holds the header lines in send order.
	Header []header.Field
	// Body is the request body; nil for none.
	Body []byte
}

// URL returns the absolute URL the request addresses.
func (r *Request) URL() string {
	return r.Scheme + "://" + r.Host + r.Target
}

// Secure reports whether the request is sent over TLS.
func (r *Request) Secure() bool {
	return r.Scheme == "https"
}

// Response is the raw result of one exchange.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Header holds the response header lines; repeated names keep wire order.
	Header []header.Field
	// Body is the complete, undecoded response body.
	Body []byte
}

// Transport performs one request/response exchange.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Func adapts a function to the Transport interface.
type Func func(ctx context.Context, req *Request) (*Response, error)

// Send calls f.
func (f Func) Send(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
