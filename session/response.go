package session

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/kbukum/webclient/content"
	"github.com/kbukum/webclient/errors"
)

// StatusCode returns the status of the last response, or 0 when there is
// none.
func (s *Session) StatusCode() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusCode
}

// Header returns a header of the last response. Lookup is case-insensitive
// and falls back to "-" for "_", so content_type finds Content-Type. When the
// header repeated, the last value wins.
func (s *Session) Header(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(name)
	if v, ok := s.respHeader[key]; ok {
		return v, ok
	}
	v, ok := s.respHeader[strings.ReplaceAll(key, "_", "-")]
	return v, ok
}

// Headers returns a copy of the last response headers keyed by lowercase
// name.
func (s *Session) Headers() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.respHeader))
	maps.Copy(out, s.respHeader)
	return out
}

// Content returns the body of the last response, already gunzipped when the
// server sent it gzip-encoded.
func (s *Session) Content() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentLocked()
}

func (s *Session) contentLocked() []byte {
	if s.content == nil {
		s.content = s.body
	}
	return s.content
}

// Text returns the body decoded to UTF-8 using the charset of the
// Content-Type header. Without a charset the body is returned as is.
func (s *Session) Text() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.text != nil {
		return *s.text, nil
	}
	charset, _ := content.Charset(s.respHeader["content-type"])
	text, err := content.DecodeText(s.contentLocked(), charset)
	if err != nil {
		return "", errors.Parse(err)
	}
	s.text = &text
	return text, nil
}

// JSON decodes the body of the last response. The Content-Type header must
// declare application/json.
func (s *Session) JSON() (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireJSON(); err != nil {
		return nil, err
	}
	if s.jsonSet {
		return s.json, nil
	}
	var v any
	if err := json.Unmarshal(s.contentLocked(), &v); err != nil {
		return nil, errors.Parse(err)
	}
	s.json = v
	s.jsonSet = true
	return v, nil
}

// DecodeJSON unmarshals the body of the last response into dst, applying the
// same Content-Type check as JSON.
func (s *Session) DecodeJSON(dst any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireJSON(); err != nil {
		return err
	}
	if err := json.Unmarshal(s.contentLocked(), dst); err != nil {
		return errors.Parse(err)
	}
	return nil
}

// JSONPath evaluates a gjson path against the body of the last response,
// e.g. "items.0.name". A path that matches nothing yields a Result whose
// Exists method reports false.
func (s *Session) JSONPath(path string) (gjson.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireJSON(); err != nil {
		return gjson.Result{}, err
	}
	body := s.contentLocked()
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errors.Parse(fmt.Errorf("invalid JSON body"))
	}
	return gjson.GetBytes(body, path), nil
}

func (s *Session) requireJSON() error {
	ct := s.respHeader["content-type"]
	if !content.IsJSON(ct) {
		return errors.ContentType(content.JSONMediaType, ct)
	}
	return nil
}

// ContentType returns the media type of the last response, without
// parameters.
func (s *Session) ContentType() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, ok := s.respHeader["content-type"]
	if !ok {
		return "", errors.MissingHeader("Content-Type")
	}
	return content.MediaType(ct), nil
}

// Charset returns the charset parameter of the last response's Content-Type.
// ok is false when the header or the parameter is absent.
func (s *Session) Charset() (charset string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return content.Charset(s.respHeader["content-type"])
}
