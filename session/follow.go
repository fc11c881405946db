package session

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kbukum/webclient/errors"
	"github.com/kbukum/webclient/logger"
	"github.com/kbukum/webclient/observability"
)

// redirectCodes are the statuses Follow accepts.
var redirectCodes = map[int]bool{
	http.StatusMultiStatus:       true,
	http.StatusMovedPermanently:  true,
	http.StatusFound:             true,
	http.StatusSeeOther:          true,
	http.StatusTemporaryRedirect: true,
}

// Follow re-issues the last request against its Location header. The last
// status must be 207, 301, 302, 303 or 307. A 307 repeats the original method
// and payload; the other codes switch to GET without a body. The location is
// resolved against the last request and must stay on the session's origin.
func (s *Session) Follow(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := observability.StartSpan(ctx, observability.SpanHTTPFollow)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrStatusCode, s.statusCode)

	if !redirectCodes[s.statusCode] {
		return 0, s.rejectFollow(ctx, errors.Protocol(fmt.Sprintf("cannot follow status %d", s.statusCode)).
			WithDetail("status", s.statusCode))
	}
	location, ok := s.respHeader["location"]
	if !ok || location == "" {
		return 0, s.rejectFollow(ctx, errors.Protocol(fmt.Sprintf("redirect %d without Location header", s.statusCode)).
			WithDetail("status", s.statusCode))
	}
	observability.SetSpanAttribute(ctx, observability.AttrLocation, location)

	ref, err := url.Parse(location)
	if err != nil {
		return 0, s.rejectFollow(ctx, errors.Protocol(fmt.Sprintf("malformed Location %q", location)).WithCause(err))
	}
	if (ref.IsAbs() || ref.Host != "") && !s.sameOrigin(ref) {
		return 0, s.rejectFollow(ctx, errors.Protocol(fmt.Sprintf("redirect to %s leaves %s://%s", location, s.scheme, s.host)).
			WithDetail("location", location))
	}
	last := &url.URL{Scheme: s.scheme, Host: s.host}
	if current, err := url.ParseRequestURI(s.target); err == nil {
		last = last.ResolveReference(current)
	}
	next := last.ResolveReference(ref).RequestURI()

	method := http.MethodGet
	var payload url.Values
	if s.statusCode == http.StatusTemporaryRedirect {
		method = s.method
		payload = s.payload
		if method == http.MethodGet || method == http.MethodHead {
			// The query already carries the payload.
			payload = nil
		}
	}

	s.log.Debug("following redirect", logger.Fields(
		logger.FieldStatus, s.statusCode,
		logger.FieldLocation, location,
		logger.FieldMethod, method,
	))
	return s.do(ctx, method, next, payload, nil, nil)
}

func (s *Session) rejectFollow(ctx context.Context, err error) error {
	observability.SetSpanError(ctx, err)
	s.log.Debug("follow rejected", logger.ErrorFields("follow", err))
	return err
}
