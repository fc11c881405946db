package header

import (
	"testing"

	"github.com/kbukum/webclient/errors"
)

func TestMap_CaseInsensitive(t *testing.T) {
	m := &Map{}
	m.Set("Content-Type", "text/html")
	m.Set("content-type", "application/json")

	if m.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", m.Len())
	}
	if got := m.Value("CONTENT-TYPE"); got != "application/json" {
		t.Errorf("expected overwritten value, got %q", got)
	}
	fields := m.Fields()
	if fields[0].Name != "Content-Type" {
		t.Errorf("expected first-seen spelling, got %q", fields[0].Name)
	}
}

func TestMap_InsertionOrder(t *testing.T) {
	m := NewMap(
		Field{"User-Agent", "a"},
		Field{"Accept", "b"},
		Field{"X-Custom", "c"},
	)
	m.Del("accept")
	m.Set("Accept", "d")

	var names []string
	m.Each(func(name, _ string) { names = append(names, name) })
	want := []string{"User-Agent", "X-Custom", "Accept"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestMap_CloneAndMerge(t *testing.T) {
	base := NewMap(Field{"Accept", "*/*"}, Field{"User-Agent", "ua"})
	clone := base.Clone()
	clone.Merge(NewMap(Field{"accept", "application/json"}, Field{"X-Extra", "1"}))

	if base.Value("Accept") != "*/*" {
		t.Error("merge into clone must not touch the original")
	}
	if clone.Value("Accept") != "application/json" {
		t.Errorf("expected merged value to win, got %q", clone.Value("Accept"))
	}
	if !clone.Has("x-extra") {
		t.Error("expected merged key")
	}
}

func TestFromStrings(t *testing.T) {
	m := FromStrings(map[string]string{"X-A": "1", "x-b": "2"})
	if m.Len() != 2 || m.Value("x-a") != "1" || m.Value("X-B") != "2" {
		t.Errorf("unexpected map %v", m.Fields())
	}
	if FromStrings(nil).Len() != 0 {
		t.Error("expected empty map from nil")
	}
}

func TestMap_NilSafe(t *testing.T) {
	var m *Map
	if m.Len() != 0 || m.Has("x") {
		t.Error("nil map should be empty")
	}
	m.Del("x")
	if len(m.Fields()) != 0 {
		t.Error("nil map should have no fields")
	}
}

func TestNormalize_LastDuplicateWins(t *testing.T) {
	got := Normalize([]Field{
		{"ETag", `"v1"`},
		{"Set-Cookie", "a=1"},
		{"etag", `"v2"`},
		{"SET-COOKIE", "b=2"},
	})
	if got["etag"] != `"v2"` {
		t.Errorf("expected last etag, got %q", got["etag"])
	}
	if got["set-cookie"] != "b=2" {
		t.Errorf("expected last set-cookie, got %q", got["set-cookie"])
	}
	if _, ok := got["ETag"]; ok {
		t.Error("keys must be lowercase")
	}
}

func TestValues(t *testing.T) {
	fields := []Field{{"Set-Cookie", "a=1"}, {"Date", "x"}, {"set-cookie", "b=2"}}
	got := Values(fields, "Set-Cookie")
	if len(got) != 2 || got[0] != "a=1" || got[1] != "b=2" {
		t.Errorf("unexpected values %v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{"valid", "X-Requested-With", "XMLHttpRequest", false},
		{"space in name", "Bad Name", "v", true},
		{"empty name", "", "v", true},
		{"newline in value", "X-Test", "a\r\nInjected: 1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.key, tt.value)
			if tt.wantErr {
				if !errors.IsInvalidInput(err) {
					t.Errorf("expected invalid input error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
