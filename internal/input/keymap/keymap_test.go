package keymap

import (
	"testing"

	"github.com/dshills/arbor/internal/input/key"
)

func TestScopeIsValid(t *testing.T) {
	for _, s := range []Scope{ScopeGlobal, ScopeTree, ScopeViewer} {
		if !s.IsValid() {
			t.Errorf("scope %q should be valid", s)
		}
	}
	if Scope("normal").IsValid() {
		t.Error("unknown scope should not be valid")
	}
}

func TestKeymapValidate(t *testing.T) {
	km := NewKeymap("test", ScopeTree).
		Add("j", "tree.cursorDown").
		Add("g g", "tree.top")
	if err := km.Validate(); err != nil {
		t.Errorf("valid keymap should validate: %v", err)
	}

	empty := &Keymap{Name: "bad", Scope: ScopeTree, Bindings: []Binding{{Keys: "", Action: "x"}}}
	if err := empty.Validate(); err == nil {
		t.Error("empty keys should fail validation")
	}

	noAction := &Keymap{Name: "bad", Scope: ScopeTree, Bindings: []Binding{{Keys: "j", Action: ""}}}
	if err := noAction.Validate(); err == nil {
		t.Error("empty action should fail validation")
	}

	badSeq := &Keymap{Name: "bad", Scope: ScopeTree, Bindings: []Binding{{Keys: "<Q-x>", Action: "x"}}}
	if err := badSeq.Validate(); err == nil {
		t.Error("unparseable keys should fail validation")
	}

	badScope := &Keymap{Name: "bad", Scope: "normal", Bindings: nil}
	if err := badScope.Validate(); err == nil {
		t.Error("unknown scope should fail validation")
	}
}

func TestKeymapParse(t *testing.T) {
	km := NewKeymap("test", ScopeTree).
		Add("g g", "tree.top").
		Add("<C-d>", "tree.halfPageDown")

	parsed, err := km.Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(parsed.ParsedBindings) != 2 {
		t.Fatalf("ParsedBindings = %d, want 2", len(parsed.ParsedBindings))
	}
	if parsed.ParsedBindings[0].Sequence.Len() != 2 {
		t.Error("'g g' should parse to two events")
	}
	if parsed.ParsedBindings[1].Sequence.Len() != 1 {
		t.Error("'<C-d>' should parse to one event")
	}
}

func TestParsedBindingMatchAndIsPrefix(t *testing.T) {
	km := NewKeymap("test", ScopeTree).Add("g g", "tree.top")
	parsed, err := km.Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	pb := &parsed.ParsedBindings[0]

	full := key.MustParseSequence("g g")
	partial := key.MustParseSequence("g")
	other := key.MustParseSequence("z")

	if !pb.Match(full) {
		t.Error("'g g' binding should match 'g g'")
	}
	if pb.Match(partial) {
		t.Error("'g g' binding should not match 'g'")
	}
	if !pb.IsPrefix(partial) {
		t.Error("'g' should be a proper prefix of 'g g'")
	}
	if pb.IsPrefix(full) {
		t.Error("a full match is not a proper prefix")
	}
	if pb.IsPrefix(other) {
		t.Error("'z' should not be a prefix of 'g g'")
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(nil); err == nil {
		t.Error("registering nil should fail")
	}

	km := NewKeymap("test", ScopeTree).Add("j", "tree.cursorDown")
	if err := r.Register(km); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if r.Get("test") == nil {
		t.Error("registered keymap should be retrievable")
	}

	// Same name replaces.
	replacement := NewKeymap("test", ScopeTree).Add("j", "tree.other")
	if err := r.Register(replacement); err != nil {
		t.Fatalf("Register replacement error: %v", err)
	}
	b := r.Lookup(key.MustParseSequence("j"), ScopeTree)
	if b == nil || b.Action != "tree.other" {
		t.Error("re-registering a name should replace its bindings")
	}

	bad := NewKeymap("bad", ScopeTree).Add("<Q-x>", "x")
	if err := r.Register(bad); err == nil {
		t.Error("registering invalid keymap should fail")
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	km := NewKeymap("test", ScopeTree).Add("j", "tree.cursorDown")
	if err := r.Register(km); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	r.Unregister("test")
	if r.Get("test") != nil {
		t.Error("unregistered keymap should not be retrievable")
	}
	if r.Lookup(key.MustParseSequence("j"), ScopeTree) != nil {
		t.Error("unregistered bindings should not resolve")
	}
}

func TestRegistryLookupScopes(t *testing.T) {
	r := NewRegistry()
	global := NewKeymap("global", ScopeGlobal).Add("q", "app.quit")
	tree := NewKeymap("tree", ScopeTree).Add("j", "tree.cursorDown")
	viewer := NewKeymap("viewer", ScopeViewer).Add("j", "view.scrollDown")
	for _, km := range []*Keymap{global, tree, viewer} {
		if err := r.Register(km); err != nil {
			t.Fatalf("Register error: %v", err)
		}
	}

	j := key.MustParseSequence("j")
	if b := r.Lookup(j, ScopeTree); b == nil || b.Action != "tree.cursorDown" {
		t.Error("'j' in tree scope should resolve to tree.cursorDown")
	}
	if b := r.Lookup(j, ScopeViewer); b == nil || b.Action != "view.scrollDown" {
		t.Error("'j' in viewer scope should resolve to view.scrollDown")
	}
	if b := r.Lookup(j, ScopeGlobal); b != nil {
		t.Error("'j' should not resolve in global scope")
	}

	// Global bindings resolve from any scope.
	q := key.MustParseSequence("q")
	for _, scope := range []Scope{ScopeGlobal, ScopeTree, ScopeViewer} {
		if b := r.Lookup(q, scope); b == nil || b.Action != "app.quit" {
			t.Errorf("'q' in %s scope should resolve to app.quit", scope)
		}
	}

	if r.Lookup(nil, ScopeTree) != nil {
		t.Error("nil sequence should not resolve")
	}
	if r.Lookup(key.NewSequence(), ScopeTree) != nil {
		t.Error("empty sequence should not resolve")
	}
}

func TestRegistryScopeWinsOverGlobal(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewKeymap("global", ScopeGlobal).Add("x", "global.x")); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := r.Register(NewKeymap("tree", ScopeTree).Add("x", "tree.x")); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	x := key.MustParseSequence("x")
	if b := r.Lookup(x, ScopeTree); b == nil || b.Action != "tree.x" {
		t.Error("scope binding should win over global")
	}
	if b := r.Lookup(x, ScopeViewer); b == nil || b.Action != "global.x" {
		t.Error("global binding should resolve where scope has none")
	}
}

func TestRegistryHasPrefix(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewKeymap("global", ScopeGlobal).Add("f h", "focus.tree")); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := r.Register(NewKeymap("tree", ScopeTree).Add("g g", "tree.top")); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	g := key.MustParseSequence("g")
	if !r.HasPrefix(g, ScopeTree) {
		t.Error("'g' should be a prefix in tree scope")
	}
	if r.HasPrefix(g, ScopeViewer) {
		t.Error("'g' should not be a prefix in viewer scope")
	}

	// Global prefixes are visible from every scope.
	f := key.MustParseSequence("f")
	for _, scope := range []Scope{ScopeGlobal, ScopeTree, ScopeViewer} {
		if !r.HasPrefix(f, scope) {
			t.Errorf("'f' should be a prefix in %s scope", scope)
		}
	}

	// A complete match is not a pending prefix.
	if r.HasPrefix(key.MustParseSequence("g g"), ScopeTree) {
		t.Error("a full sequence should not report as prefix")
	}

	if r.HasPrefix(key.MustParseSequence("x"), ScopeTree) {
		t.Error("unbound key should not be a prefix")
	}
	if r.HasPrefix(nil, ScopeTree) {
		t.Error("nil sequence should not be a prefix")
	}
}

func TestRegistryBindings(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewKeymap("global", ScopeGlobal).Add("q", "app.quit")); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := r.Register(NewKeymap("tree", ScopeTree).Add("j", "tree.cursorDown").Add("k", "tree.cursorUp")); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	tree := r.Bindings(ScopeTree)
	if len(tree) != 3 {
		t.Errorf("tree scope bindings = %d, want 3 (2 scoped + 1 global)", len(tree))
	}
	if tree[0].Action != "tree.cursorDown" {
		t.Error("scoped bindings should come before global ones")
	}

	global := r.Bindings(ScopeGlobal)
	if len(global) != 1 {
		t.Errorf("global scope bindings = %d, want 1", len(global))
	}
}

func TestLoadDefaults(t *testing.T) {
	r := NewRegistry()
	if err := LoadDefaults(r); err != nil {
		t.Fatalf("LoadDefaults error: %v", err)
	}

	tests := []struct {
		keys   string
		scope  Scope
		action string
	}{
		{"q", ScopeTree, "app.quit"},
		{"q", ScopeViewer, "app.quit"},
		{"<tab>", ScopeTree, "focus.cycle"},
		{"~", ScopeViewer, "sidebar.toggle"},
		{"f h", ScopeViewer, "focus.tree"},
		{"f k", ScopeTree, "focus.viewer"},
		{"j", ScopeTree, "tree.cursorDown"},
		{"<down>", ScopeTree, "tree.cursorDown"},
		{"k", ScopeTree, "tree.cursorUp"},
		{"<enter>", ScopeTree, "tree.confirm"},
		{"l", ScopeTree, "tree.expand"},
		{"<left>", ScopeTree, "tree.collapse"},
		{"z o", ScopeTree, "tree.expand"},
		{"z c", ScopeTree, "tree.collapse"},
		{"z M", ScopeTree, "tree.collapseAll"},
		{"g g", ScopeTree, "tree.top"},
		{"G", ScopeTree, "tree.bottom"},
		{"<C-d>", ScopeTree, "tree.halfPageDown"},
		{"j", ScopeViewer, "view.scrollDown"},
		{"<C-u>", ScopeViewer, "view.halfPageUp"},
		{"g g", ScopeViewer, "view.top"},
		{"G", ScopeViewer, "view.bottom"},
		{"<enter>", ScopeViewer, "focus.tree"},
	}

	for _, tt := range tests {
		seq := key.MustParseSequence(tt.keys)
		b := r.Lookup(seq, tt.scope)
		if b == nil {
			t.Errorf("Lookup(%q, %s) = nil, want %s", tt.keys, tt.scope, tt.action)
			continue
		}
		if b.Action != tt.action {
			t.Errorf("Lookup(%q, %s) = %s, want %s", tt.keys, tt.scope, b.Action, tt.action)
		}
	}

	// Multi-key prefixes wait for more input.
	prefixes := []struct {
		keys  string
		scope Scope
	}{
		{"g", ScopeTree},
		{"g", ScopeViewer},
		{"z", ScopeTree},
		{"f", ScopeTree},
		{"f", ScopeViewer},
	}
	for _, tt := range prefixes {
		if !r.HasPrefix(key.MustParseSequence(tt.keys), tt.scope) {
			t.Errorf("HasPrefix(%q, %s) should be true", tt.keys, tt.scope)
		}
	}

	// 'z' means nothing in the viewer.
	if r.HasPrefix(key.MustParseSequence("z"), ScopeViewer) {
		t.Error("'z' should not be a prefix in viewer scope")
	}
}
