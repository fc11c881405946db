package content

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// JSONMediaType is the media type the JSON accessors require.
const JSONMediaType = "application/json"

// MediaType returns the token before the first ';' of a Content-Type value.
func MediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(mt)
}

// Charset returns the charset parameter of a Content-Type value. Not every
// content type declares one, so ok is false when it is absent.
func Charset(contentType string) (charset string, ok bool) {
	segments := strings.Split(contentType, ";")
	for _, seg := range segments[1:] {
		key, value, found := strings.Cut(seg, "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "charset") {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if value == "" {
			return "", false
		}
		return value, true
	}
	return "", false
}

// IsJSON reports whether a Content-Type value declares JSON content.
func IsJSON(contentType string) bool {
	return strings.Contains(contentType, JSONMediaType)
}

// DecodeText converts body from charset to a UTF-8 string. An empty charset
// returns the body unchanged.
func DecodeText(body []byte, charset string) (string, error) {
	if charset == "" {
		return string(body), nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("content: unsupported charset %q: %w", charset, err)
	}
	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("content: decode %s: %w", charset, err)
	}
	return string(out), nil
}
