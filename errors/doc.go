// Package errors provides the error kinds surfaced by the web client.
//
// Every failure is an *AppError carrying a machine-readable ErrorCode so callers
// can tell a network failure (TRANSPORT_ERROR) from a protocol-usage error
// (PROTOCOL_ERROR, MISSING_HEADER) from a content-decoding error
// (CONTENT_TYPE_ERROR, PARSE_ERROR):
//
//	if _, err := s.Follow(ctx); errors.IsProtocol(err) {
//	    // nothing to follow
//	}
//
// None of the kinds is retryable; the client makes a single attempt and leaves
// any resilience policy to the caller.
package errors
