package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified client error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code, so that
// stderrors.Is(err, &AppError{Code: ErrCodeParse}) matches any parse error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Transport wraps a connection, send or receive failure.
func Transport(cause error) *AppError {
	return &AppError{
		Code: ErrCodeTransport, Message: "request could not be completed",
		Cause: cause,
	}
}

// Protocol creates an error for a redirect that cannot be followed.
func Protocol(message string) *AppError {
	return &AppError{Code: ErrCodeProtocol, Message: message}
}

// MissingHeader creates an error for an absent response header.
func MissingHeader(name string) *AppError {
	return &AppError{
		Code: ErrCodeMissingHeader, Message: fmt.Sprintf("response has no %s header", name),
		Details: map[string]any{"header": name},
	}
}

// ContentType creates an error for a response whose media type does not match.
func ContentType(want, got string) *AppError {
	return &AppError{
		Code: ErrCodeContentType, Message: fmt.Sprintf("expected %s content, got %q", want, got),
		Details: map[string]any{"expected": want, "content_type": got},
	}
}

// Parse wraps a body decoding failure.
func Parse(cause error) *AppError {
	return &AppError{
		Code: ErrCodeParse, Message: "response body could not be decoded",
		Cause: cause,
	}
}

// InvalidInput creates an error for a bad request or configuration field.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates an error for failed struct validation.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsTransport checks if an error is a transport error.
func IsTransport(err error) bool { return HasCode(err, ErrCodeTransport) }

// IsProtocol checks if an error is a protocol error.
func IsProtocol(err error) bool { return HasCode(err, ErrCodeProtocol) }

// IsMissingHeader checks if an error is a missing-header error.
func IsMissingHeader(err error) bool { return HasCode(err, ErrCodeMissingHeader) }

// IsContentType checks if an error is a content-type error.
func IsContentType(err error) bool { return HasCode(err, ErrCodeContentType) }

// IsParse checks if an error is a parse error.
func IsParse(err error) bool { return HasCode(err, ErrCodeParse) }

// IsInvalidInput checks if an error is an invalid-input error.
func IsInvalidInput(err error) bool { return HasCode(err, ErrCodeInvalidInput) }
