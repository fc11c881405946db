package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Network errors
const (
	// ErrCodeTransport indicates a connect, send or receive failure.
	ErrCodeTransport ErrorCode = "TRANSPORT_ERROR"
)

// Protocol usage errors
const (
	// ErrCodeProtocol indicates a redirect that cannot be followed.
	ErrCodeProtocol ErrorCode = "PROTOCOL_ERROR"
	// ErrCodeMissingHeader indicates an expected response header is absent.
	ErrCodeMissingHeader ErrorCode = "MISSING_HEADER"
)

// Content decoding errors
const (
	// ErrCodeContentType indicates the response has the wrong media type for the accessor.
	ErrCodeContentType ErrorCode = "CONTENT_TYPE_ERROR"
	// ErrCodeParse indicates the response body could not be decoded.
	ErrCodeParse ErrorCode = "PARSE_ERROR"
)

// Caller errors
const (
	// ErrCodeInvalidInput indicates invalid configuration or request input.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// String returns the code value.
func (c ErrorCode) String() string {
	return string(c)
}
