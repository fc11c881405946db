package session

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/net/http/httpguts"

	"github.com/kbukum/webclient/content"
	"github.com/kbukum/webclient/errors"
	"github.com/kbukum/webclient/header"
	"github.com/kbukum/webclient/logger"
	"github.com/kbukum/webclient/observability"
	"github.com/kbukum/webclient/transport"
	"github.com/kbukum/webclient/validation"
)

const (
	componentName = "session"

	// DefaultUserAgent identifies the client as a desktop browser.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/42.0.2311.90 Safari/537.36"
	// DefaultAccept is the Accept header sent unless overridden.
	DefaultAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"

	formContentType = "application/x-www-form-urlencoded"
)

// Session is a stateful client for one base URL.
type Session struct {
	mu sync.Mutex

	scheme   string
	host     string
	basePath string

	headers *header.Map
	cookies *cookieJar
	etags   map[string]string
	auth    *Credentials

	transport    transport.Transport
	transportCfg transport.Config
	log          *logger.Logger
	metrics      *observability.Metrics

	// Last request.
	method  string
	target  string
	payload url.Values

	// Last response.
	statusCode int
	respHeader map[string]string
	body       []byte

	// Lazy caches, cleared when a request starts.
	content []byte
	text    *string
	json    any
	jsonSet bool
}

// New creates a Session for baseURL. The scheme selects plaintext or TLS and
// must be http or https.
func New(baseURL string, opts ...Option) (*Session, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.InvalidInput("base_url", err.Error())
	}
	v := validation.New().
		Required("scheme", u.Scheme).
		OneOf("scheme", u.Scheme, []string{"http", "https"}).
		Required("host", u.Host)
	if err := v.Err(); err != nil {
		return nil, err
	}

	s := &Session{
		scheme:   u.Scheme,
		host:     u.Host,
		basePath: u.EscapedPath(),
		headers: header.NewMap(
			header.Field{Name: "User-Agent", Value: DefaultUserAgent},
			header.Field{Name: "Accept-Encoding", Value: "gzip"},
			header.Field{Name: "Accept", Value: DefaultAccept},
		),
		cookies: newCookieJar(),
		etags:   make(map[string]string),
		log:     logger.WithComponent(componentName),
	}
	if u.User != nil {
		password, _ := u.User.Password()
		s.auth = BasicAuth(u.User.Username(), password)
	}
	for _, opt := range opts {
		opt(s)
	}

	var invalid error
	s.headers.Each(func(name, value string) {
		if invalid == nil {
			invalid = header.Validate(name, value)
		}
	})
	if invalid != nil {
		return nil, invalid
	}

	if s.transport == nil {
		tr, err := transport.NewHTTP(s.transportCfg)
		if err != nil {
			return nil, err
		}
		s.transport = tr
	}
	return s, nil
}

// BaseURL returns the scheme, authority and base path the session targets.
func (s *Session) BaseURL() string {
	return s.scheme + "://" + s.host + s.basePath
}

// Close releases the transport's idle connections when the transport
// supports it. The Session stays usable.
func (s *Session) Close() error {
	if c, ok := s.transport.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Get issues a GET request. A payload set with WithQuery is appended to the
// query string.
func (s *Session) Get(ctx context.Context, path string, opts ...RequestOption) (int, error) {
	return s.Do(ctx, http.MethodGet, path, opts...)
}

// Head issues a HEAD request.
func (s *Session) Head(ctx context.Context, path string, opts ...RequestOption) (int, error) {
	return s.Do(ctx, http.MethodHead, path, opts...)
}

// Post issues a POST request. A payload set with WithForm is sent as an
// application/x-www-form-urlencoded body.
func (s *Session) Post(ctx context.Context, path string, opts ...RequestOption) (int, error) {
	return s.Do(ctx, http.MethodPost, path, opts...)
}

// Ajax issues a request marked with X-Requested-With: XMLHttpRequest.
func (s *Session) Ajax(ctx context.Context, method, path string, opts ...RequestOption) (int, error) {
	opts = append(slices.Clone(opts), WithRequestHeader("X-Requested-With", "XMLHttpRequest"))
	return s.Do(ctx, method, path, opts...)
}

// Do issues a request and records the response as the session's current one.
// It returns the status code. Transport failures are returned as
// TRANSPORT_ERROR with a zero status; a gzip body that fails to decompress is
// returned as PARSE_ERROR alongside the status.
func (s *Session) Do(ctx context.Context, method, path string, opts ...RequestOption) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := resolveRequestOptions(opts)
	return s.do(ctx, method, path, o.payload, o.headers, o.auth)
}

func (s *Session) do(ctx context.Context, method, path string, payload url.Values, callHeaders *header.Map, auth *Credentials) (status int, err error) {
	if !httpguts.ValidHeaderFieldName(method) {
		return 0, errors.InvalidInput("method", fmt.Sprintf("invalid method %q", method))
	}

	headers := s.headers.Clone()
	headers.Merge(callHeaders)

	if auth == nil {
		auth = s.auth
	}
	if auth != nil {
		headers.Set("Authorization", auth.Header())
	}

	if s.cookies.len() > 0 {
		headers.Set("Cookie", s.cookies.header())
	}

	target, err := s.resolve(path)
	if err != nil {
		return 0, err
	}

	var body []byte
	if len(payload) > 0 {
		if method == http.MethodGet || method == http.MethodHead {
			target = appendQuery(target, payload.Encode())
		} else {
			body = []byte(payload.Encode())
			if !headers.Has("Content-Type") {
				headers.Set("Content-Type", formContentType)
			}
		}
	}

	if etag, ok := s.etags[target]; ok {
		headers.Set("If-None-Match", etag)
	}

	fields := headers.Fields()
	for _, f := range fields {
		if err := header.Validate(f.Name, f.Value); err != nil {
			return 0, err
		}
	}

	s.reset()
	s.method = method
	s.target = target
	s.payload = payload

	requestID := uuid.NewString()
	rc := observability.NewRequestContext(componentName, method, s.host, target, requestID, s.metrics)
	ctx, span := rc.Start(ctx)
	defer func() { rc.End(ctx, span, status, err) }()

	logFields := logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldMethod, method,
		logger.FieldHost, s.host,
		logger.FieldPath, target,
	)

	resp, err := s.transport.Send(ctx, &transport.Request{
		Method: method,
		Scheme: s.scheme,
		Host:   s.host,
		Target: target,
		Header: fields,
		Body:   body,
	})
	if err != nil {
		if _, ok := errors.AsAppError(err); !ok {
			err = errors.Transport(err)
		}
		s.log.Warn("request failed", logger.MergeWithError(logger.MergeWithDuration(logFields, rc.Duration()), err))
		return 0, err
	}

	s.statusCode = resp.StatusCode
	s.body = resp.Body
	s.respHeader = header.Normalize(resp.Header)

	err = s.handleResponse(target, resp.Header)

	if s.metrics != nil {
		s.metrics.RecordResponseSize(ctx, s.host, len(s.body))
	}
	logFields[logger.FieldStatus] = s.statusCode
	logFields[logger.FieldBytes] = len(s.body)
	s.log.Debug("request completed", logger.MergeWithDuration(logFields, rc.Duration()))

	return s.statusCode, err
}

// handleResponse decodes the body and updates etags and cookies, in that
// order. A decompression failure leaves the raw body in place but still
// applies etags and cookies.
func (s *Session) handleResponse(target string, raw []header.Field) error {
	var decodeErr error
	if strings.Contains(s.respHeader["content-encoding"], "gzip") {
		decoded, err := content.Decompress(s.body)
		if err != nil {
			decodeErr = errors.Parse(err)
		} else {
			s.body = decoded
		}
	}

	if etag, ok := s.respHeader["etag"]; ok {
		s.etags[target] = etag
	}

	for _, line := range header.Values(raw, "Set-Cookie") {
		if err := s.cookies.apply(line); err != nil {
			s.log.Debug("ignoring malformed Set-Cookie", logger.Fields(logger.FieldError, err.Error()))
		}
	}
	return decodeErr
}

// reset clears everything derived from the previous response.
func (s *Session) reset() {
	s.statusCode = 0
	s.body = nil
	s.respHeader = nil
	s.content = nil
	s.text = nil
	s.json = nil
	s.jsonSet = false
}

// resolve joins path with the base path using RFC 3986 reference
// resolution and returns the request target. Absolute references must point
// at the session's own scheme and authority.
func (s *Session) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", errors.InvalidInput("path", err.Error())
	}
	if ref.IsAbs() || ref.Host != "" {
		if !s.sameOrigin(ref) {
			return "", errors.InvalidInput("path", fmt.Sprintf("%s is outside %s://%s", path, s.scheme, s.host))
		}
	}
	base := &url.URL{Scheme: s.scheme, Host: s.host}
	if err := setEscapedPath(base, s.basePath); err != nil {
		return "", errors.InvalidInput("base_url", err.Error())
	}
	return base.ResolveReference(ref).RequestURI(), nil
}

func (s *Session) sameOrigin(u *url.URL) bool {
	scheme := u.Scheme
	if scheme == "" {
		scheme = s.scheme
	}
	return strings.EqualFold(scheme, s.scheme) && strings.EqualFold(u.Host, s.host)
}

func setEscapedPath(u *url.URL, escaped string) error {
	p, err := url.PathUnescape(escaped)
	if err != nil {
		return err
	}
	u.Path = p
	u.RawPath = escaped
	return nil
}

func appendQuery(target, query string) string {
	if query == "" {
		return target
	}
	if strings.Contains(target, "?") {
		return target + "&" + query
	}
	return target + "?" + query
}

// ETag returns the entity tag stored for path, resolved against the base path.
func (s *Session) ETag(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, err := s.resolve(path)
	if err != nil {
		return "", false
	}
	etag, ok := s.etags[target]
	return etag, ok
}

// Cookies returns the session cookies in insertion order.
func (s *Session) Cookies() []Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cookies.list()
}

// Cookie returns the value of the named cookie.
func (s *Session) Cookie(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cookies.get(name)
}

// SetCookie stores a cookie as if a response had set it. An empty value
// removes it.
func (s *Session) SetCookie(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		s.cookies.del(name)
		return
	}
	s.cookies.set(name, value)
}

// ClearCookies removes every cookie. Entity tags are kept.
func (s *Session) ClearCookies() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookies.clear()
}
