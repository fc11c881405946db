package session

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Cookie is a name/value pair held by a Session.
type Cookie struct {
	Name  string
	Value string
}

// cookieJar keeps cookies in insertion order. Names are case-sensitive.
type cookieJar struct {
	names  []string
	values map[string]string
}

func newCookieJar() *cookieJar {
	return &cookieJar{values: make(map[string]string)}
}

func (j *cookieJar) set(name, value string) {
	if _, ok := j.values[name]; !ok {
		j.names = append(j.names, name)
	}
	j.values[name] = value
}

func (j *cookieJar) get(name string) (string, bool) {
	v, ok := j.values[name]
	return v, ok
}

func (j *cookieJar) del(name string) {
	if _, ok := j.values[name]; !ok {
		return
	}
	delete(j.values, name)
	for i, n := range j.names {
		if n == name {
			j.names = append(j.names[:i], j.names[i+1:]...)
			return
		}
	}
}

func (j *cookieJar) len() int {
	return len(j.names)
}

func (j *cookieJar) clear() {
	j.names = nil
	j.values = make(map[string]string)
}

func (j *cookieJar) list() []Cookie {
	out := make([]Cookie, 0, len(j.names))
	for _, n := range j.names {
		out = append(out, Cookie{Name: n, Value: j.values[n]})
	}
	return out
}

// header renders the jar as a Cookie request header value.
func (j *cookieJar) header() string {
	pairs := make([]string, 0, len(j.names))
	for _, n := range j.names {
		pairs = append(pairs, n+"="+j.values[n])
	}
	return strings.Join(pairs, "; ")
}

// cookieAttributes are the Set-Cookie attribute names, lowercased. They
// never become cookies.
var cookieAttributes = map[string]bool{
	"path":     true,
	"domain":   true,
	"expires":  true,
	"max-age":  true,
	"secure":   true,
	"httponly": true,
	"samesite": true,
	"comment":  true,
	"version":  true,
}

type cookiePair struct {
	name, value string
	expired     bool
}

// apply updates the jar from one Set-Cookie header value. Every name=value
// pair on the line is applied in order; an empty value removes the cookie,
// as does a Max-Age of zero or less following it. Other attributes are
// ignored. A line with an invalid name changes nothing and returns an error.
func (j *cookieJar) apply(line string) error {
	pairs, err := parseSetCookie(line)
	if err != nil {
		return err
	}
	for _, p := range pairs {
		if p.value == "" || p.expired {
			j.del(p.name)
			continue
		}
		j.set(p.name, p.value)
	}
	return nil
}

func parseSetCookie(line string) ([]cookiePair, error) {
	var pairs []cookiePair
	for _, part := range strings.Split(line, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, hasValue := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		attr := strings.ToLower(name)
		if cookieAttributes[attr] {
			if attr == "max-age" && len(pairs) > 0 {
				if n, err := strconv.Atoi(value); err == nil && n <= 0 {
					pairs[len(pairs)-1].expired = true
				}
			}
			continue
		}
		if !hasValue {
			// bare flag such as Partitioned
			continue
		}
		if !httpguts.ValidHeaderFieldName(name) {
			return nil, fmt.Errorf("invalid cookie name %q", name)
		}
		pairs = append(pairs, cookiePair{name: name, value: unquote(value)})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no cookie in %q", line)
	}
	return pairs, nil
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}
