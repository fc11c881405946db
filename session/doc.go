// Package session implements a stateful HTTP/HTTPS client bound to one base
// URL.
//
// A Session threads cookies, entity tags, default headers and Basic
// credentials through successive requests. Every request opens its own
// connection through a pluggable transport.Transport. Gzip-encoded bodies are
// decompressed as soon as they arrive; text and JSON decoding happen lazily
// and are memoized until the next request starts.
//
//	s, err := session.New("https://example.com/app/",
//	    session.WithAuth(session.BasicAuth("user", "secret")),
//	)
//	status, err := s.Get(ctx, "search", session.WithQuery(url.Values{"q": {"a b"}}))
//	// GET /app/search?q=a+b
//	data, err := s.JSON()
//
// Redirects are never followed automatically. After a 207, 301, 302, 303 or
// 307 response, Follow re-issues the request against the Location header:
// 307 keeps the method and payload, every other code switches to a bodiless
// GET.
//
// State is reset before a request is dispatched. A request that fails in the
// transport therefore leaves the status, headers and body cleared rather than
// exposing the previous response.
//
// A Session serializes its requests and accessors with a mutex, so it is safe
// to share, but concurrent callers observe each other's responses. Use one
// Session per logical conversation.
package session
