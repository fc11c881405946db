// Package testutil provides an in-process HTTP server for exercising
// webclient sessions end to end.
//
// The server is a gin engine behind httptest with routes for cookies, entity
// tags, gzip bodies, redirects, JSON, form echoing and Basic auth:
//
//	srv := testutil.NewServer(t)
//	s, _ := session.New(srv.URL)
//	s.Get(ctx, "/cookies/set?sid=abc")
//
// NewTLSServer serves the same routes over TLS, optionally requiring a
// client certificate.
package testutil
