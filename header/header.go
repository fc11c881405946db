package header

import (
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/kbukum/webclient/errors"
)

// Field is a single header line as sent or received on the wire.
type Field struct {
	Name  string
	Value string
}

// Map is an ordered, case-insensitive header map. The zero value is ready to use.
type Map struct {
	keys   []string
	names  map[string]string
	values map[string]string
}

// NewMap creates a Map populated from fields, in order.
func NewMap(fields ...Field) *Map {
	m := &Map{}
	for _, f := range fields {
		m.Set(f.Name, f.Value)
	}
	return m
}

// FromStrings creates a Map from a plain map. Iteration order of src is not
// stable, so callers needing a fixed order should use NewMap.
func FromStrings(src map[string]string) *Map {
	m := &Map{}
	for k, v := range src {
		m.Set(k, v)
	}
	return m
}

func (m *Map) init() {
	if m.values == nil {
		m.names = make(map[string]string)
		m.values = make(map[string]string)
	}
}

// Set stores value under name, replacing any value stored under another casing.
func (m *Map) Set(name, value string) {
	m.init()
	key := strings.ToLower(name)
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
		m.names[key] = name
	}
	m.values[key] = value
}

// Get returns the value stored under name.
func (m *Map) Get(name string) (string, bool) {
	if m == nil || m.values == nil {
		return "", false
	}
	v, ok := m.values[strings.ToLower(name)]
	return v, ok
}

// Value returns the value stored under name or "".
func (m *Map) Value(name string) string {
	v, _ := m.Get(name)
	return v
}

// Has reports whether name is present.
func (m *Map) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Del removes name.
func (m *Map) Del(name string) {
	if m == nil || m.values == nil {
		return
	}
	key := strings.ToLower(name)
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	delete(m.names, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Each calls fn for every entry in insertion order with the wire spelling.
func (m *Map) Each(fn func(name, value string)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(m.names[k], m.values[k])
	}
}

// Fields returns the entries in insertion order.
func (m *Map) Fields() []Field {
	out := make([]Field, 0, m.Len())
	m.Each(func(name, value string) {
		out = append(out, Field{Name: name, Value: value})
	})
	return out
}

// Clone returns an independent copy.
func (m *Map) Clone() *Map {
	c := &Map{}
	m.Each(c.Set)
	return c
}

// Merge copies every entry of other into m; other wins on collision.
func (m *Map) Merge(other *Map) {
	other.Each(m.Set)
}

// Normalize folds a wire-ordered field list into a map keyed by lowercase
// name. When a name repeats, the last occurrence wins.
func Normalize(fields []Field) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[strings.ToLower(f.Name)] = f.Value
	}
	return out
}

// Values returns every value of name in wire order.
func Values(fields []Field, name string) []string {
	var out []string
	for _, f := range fields {
		if strings.EqualFold(f.Name, name) {
			out = append(out, f.Value)
		}
	}
	return out
}

// Validate rejects names and values that cannot be written on the wire.
func Validate(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return errors.InvalidInput("header", "invalid header name "+strconv.Quote(name))
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return errors.InvalidInput("header", "invalid value for header "+name)
	}
	return nil
}
