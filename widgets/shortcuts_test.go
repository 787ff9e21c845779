package widgets

import (
	"testing"

	"gioui.org/io/key"
)

func TestNewShortcuts_Bindings(t *testing.T) {
	var got []key.Modifiers
	ss := NewShortcuts(new(int),
		Shortcut{
			Key: NewShortcut(0, key.ModShift, "T"),
			F:   func(_ key.Name, m key.Modifiers) { got = append(got, m) },
		},
		Shortcut{
			Key: NewShortcut(key.ModCtrl, 0, "Q", "W"),
			F:   func(key.Name, key.Modifiers) {},
		},
	)

	if len(ss.eventFilters) != 3 {
		t.Fatalf("expected 3 filters, got %d", len(ss.eventFilters))
	}
	s, ok := ss.Lookup("T")
	if !ok || s.Key.Optional != key.ModShift {
		t.Fatalf("T binding: %+v %v", s.Key, ok)
	}
	s.F("T", key.ModShift)
	if len(got) != 1 || got[0] != key.ModShift {
		t.Fatalf("handler not called with modifiers: %v", got)
	}
	if s, ok := ss.Lookup("W"); !ok || s.Key.Required != key.ModCtrl {
		t.Fatalf("W binding: %+v %v", s.Key, ok)
	}
	if _, ok := ss.Lookup("X"); ok {
		t.Fatalf("unexpected X binding")
	}
}

func TestNewShortcuts_Panics(t *testing.T) {
	mustPanic := func(name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s: expected panic", name)
			}
		}()
		f()
	}

	mustPanic("empty", func() { NewShortcuts(nil) })
	mustPanic("repeated", func() {
		noop := func(key.Name, key.Modifiers) {}
		NewShortcuts(nil,
			Shortcut{Key: NewShortcut(0, 0, "T"), F: noop},
			Shortcut{Key: NewShortcut(0, 0, "T"), F: noop},
		)
	})
}
