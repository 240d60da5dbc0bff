package tui

import "testing"

func TestKeyRegistryLookupByScope(t *testing.T) {
	r := NewKeyRegistry()

	next := r.Lookup("tab", scopeForm)
	if next == nil || next.Action != actionNextField {
		t.Fatalf("tab in form = %v, want next_field", next)
	}
	// The composer owns tab while the picker is open.
	if got := r.Lookup("tab", scopePicker); got == nil || got.Action != actionCycle {
		t.Fatalf("tab in picker = %v, want cycle", got)
	}
	if got := r.Lookup("ctrl+c", scopePicker); got == nil || got.Action != actionQuit {
		t.Fatalf("ctrl+c should fall back to global quit, got %v", got)
	}
	if got := r.Lookup("q", scopePicker); got != nil {
		t.Fatalf("q must not quit from the picker, got %q", got.Action)
	}
}

func TestKeyRegistryNoDuplicateInSameScope(t *testing.T) {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}
	r.Register(Binding{Action: actionOpen, Keys: []string{"x"}, Help: "first", Scopes: []string{"a"}})
	r.Register(Binding{Action: actionCommit, Keys: []string{"x"}, Help: "duplicate", Scopes: []string{"a"}})
	r.Register(Binding{Action: actionCommit, Keys: []string{"x"}, Help: "other scope", Scopes: []string{"b"}})

	if a := r.BindingsForScope("a"); len(a) != 1 || a[0].Action != actionOpen {
		t.Fatalf("scope a = %+v", a)
	}
	if b := r.BindingsForScope("b"); len(b) != 1 || b[0].Action != actionCommit {
		t.Fatalf("scope b = %+v", b)
	}
}

func TestNormalizeKeyName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{" ", "space"},
		{"Q", "Q"},
		{"Ctrl+C", "ctrl+c"},
		{"control+t", "ctrl+t"},
		{"Return", "enter"},
		{"shift + tab", "shift+tab"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeKeyName(tt.in); got != tt.want {
			t.Fatalf("normalizeKeyName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHelpBindings(t *testing.T) {
	r := NewKeyRegistry()
	help := r.HelpBindings(scopePicker)
	if len(help) != 4 {
		t.Fatalf("picker help = %d entries, want 4", len(help))
	}
	if h := help[0].Help(); h.Key != "up/down" || h.Desc != "change" {
		t.Fatalf("first help = %+v", h)
	}
	if keys := help[0].Keys(); len(keys) != 2 || keys[0] != "up" || keys[1] != "down" {
		t.Fatalf("step keys = %v, want [up down]", keys)
	}
	if h := help[1].Help(); h.Key != "tab" {
		t.Fatalf("help key defaults to the first key, got %q", h.Key)
	}
}

func TestHelpLabelIsNotAKey(t *testing.T) {
	r := NewKeyRegistry()
	if got := r.Lookup("up/down", scopePicker); got != nil {
		t.Fatalf("up/down resolved to %q", got.Action)
	}
	if got := r.Lookup("up", scopePicker); got == nil || got.Action != actionStep {
		t.Fatalf("up in picker = %v, want step", got)
	}
}
