package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/kbukum/webclient/errors"
	"github.com/kbukum/webclient/header"
)

// HTTP is the default Transport built on net/http. Every request uses its own
// connection, which is closed once the body has been read.
type HTTP struct {
	httpClient *http.Client
}

var _ Transport = (*HTTP)(nil)

// NewHTTP creates an HTTP transport with the given configuration.
func NewHTTP(cfg Config) (*HTTP, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.InvalidInput("transport", err.Error())
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableKeepAlives = true
	transport.DisableCompression = true
	transport.ForceAttemptHTTP2 = false
	transport.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}

	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, errors.InvalidInput("tls", err.Error())
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	return &HTTP{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// Send performs the exchange. Any connect, write or read failure is returned
// as a transport error; nothing is retried.
func (h *HTTP) Send(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL(), body)
	if err != nil {
		return nil, errors.InvalidInput("request", fmt.Sprintf("create request: %v", err))
	}
	for _, f := range req.Header {
		if strings.EqualFold(f.Name, "Host") {
			httpReq.Host = f.Value
			continue
		}
		httpReq.Header.Set(f.Name, f.Value)
	}

	resp, err := h.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Transport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Transport(fmt.Errorf("read response body: %w", err))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     headerFields(resp.Header),
		Body:       respBody,
	}, nil
}

// Close releases idle resources. The transport stays usable.
func (h *HTTP) Close() error {
	h.httpClient.CloseIdleConnections()
	return nil
}

// headerFields flattens http.Header into lines sorted by name. Values of a
// repeated name stay in wire order.
func headerFields(h http.Header) []header.Field {
	names := make([]string, 0, len(h))
	for k := range h {
		names = append(names, k)
	}
	sort.Strings(names)

	fields := make([]header.Field, 0, len(h))
	for _, name := range names {
		for _, v := range h[name] {
			fields = append(fields, header.Field{Name: name, Value: v})
		}
	}
	return fields
}
