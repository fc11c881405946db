package session

import (
	"encoding/base64"
	"net/url"
	"time"

	"github.com/kbukum/webclient/header"
	"github.com/kbukum/webclient/logger"
	"github.com/kbukum/webclient/observability"
	"github.com/kbukum/webclient/security"
	"github.com/kbukum/webclient/transport"
)

// Credentials is a username/password pair sent with HTTP Basic auth.
type Credentials struct {
	Username string
	Password string
}

// BasicAuth returns credentials for HTTP Basic auth.
func BasicAuth(username, password string) *Credentials {
	return &Credentials{Username: username, Password: password}
}

// Header returns the Authorization header value for c.
func (c *Credentials) Header() string {
	token := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
	return "Basic " + token
}

// Option configures a Session.
type Option func(*Session)

// WithHeaders adds default headers sent with every request. They override the
// built-in defaults case-insensitively.
func WithHeaders(headers map[string]string) Option {
	return func(s *Session) {
		s.headers.Merge(header.FromStrings(headers))
	}
}

// WithHeader adds a single default header.
func WithHeader(name, value string) Option {
	return func(s *Session) {
		s.headers.Set(name, value)
	}
}

// WithAuth sets the session's default credentials.
func WithAuth(creds *Credentials) Option {
	return func(s *Session) {
		s.auth = creds
	}
}

// WithTLS configures HTTPS for the default transport. When a CA file is
// given the server certificate must verify against it; a client certificate
// without a CA disables verification.
func WithTLS(cfg *security.TLSConfig) Option {
	return func(s *Session) {
		s.transportCfg.TLS = cfg
	}
}

// WithTimeout bounds every exchange made by the default transport.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.transportCfg.Timeout = d
	}
}

// WithTransport replaces the default transport. TLS and timeout options are
// then ignored.
func WithTransport(t transport.Transport) Option {
	return func(s *Session) {
		s.transport = t
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) {
		s.log = l.WithComponent(componentName)
	}
}

// WithMetrics records request metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// requestOptions holds the per-call inputs of Do.
type requestOptions struct {
	payload url.Values
	headers *header.Map
	auth    *Credentials
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

// WithPayload sets the request payload. GET and HEAD append it to the query
// string; other methods send it as a form-urlencoded body.
func WithPayload(values url.Values) RequestOption {
	return func(o *requestOptions) {
		o.payload = values
	}
}

// WithQuery is WithPayload for GET requests.
func WithQuery(values url.Values) RequestOption {
	return WithPayload(values)
}

// WithForm is WithPayload for POST requests.
func WithForm(values url.Values) RequestOption {
	return WithPayload(values)
}

// WithRequestHeader sets a header for this request only, overriding the
// session default of the same name.
func WithRequestHeader(name, value string) RequestOption {
	return func(o *requestOptions) {
		o.headers.Set(name, value)
	}
}

// WithRequestHeaders sets several headers for this request only.
func WithRequestHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) {
		o.headers.Merge(header.FromStrings(headers))
	}
}

// WithRequestAuth overrides the session credentials for this request.
func WithRequestAuth(creds *Credentials) RequestOption {
	return func(o *requestOptions) {
		o.auth = creds
	}
}

func resolveRequestOptions(opts []RequestOption) *requestOptions {
	o := &requestOptions{headers: &header.Map{}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
