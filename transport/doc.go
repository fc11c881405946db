// Package transport defines the byte-level exchange a session delegates to,
// and the default net/http implementation.
//
// A Transport receives a fully built Request (method, scheme, authority,
// request target, header lines and body) and returns the status code, header
// lines and the whole body. It holds no state beyond one exchange: HTTP opens a
// fresh connection per request, never follows redirects and never decodes the
// body, leaving content-encoding to the caller.
//
//	t, err := transport.NewHTTP(transport.Config{
//	    Timeout: 10 * time.Second,
//	    TLS:     &security.TLSConfig{CAFile: "ca.pem", CertFile: "c.pem", KeyFile: "k.pem"},
//	})
//	resp, err := t.Send(ctx, &transport.Request{
//	    Method: http.MethodGet, Scheme: "https", Host: "example.com", Target: "/",
//	})
//
// Package transporttest provides a scripted Transport for tests.
package transport
