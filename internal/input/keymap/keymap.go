package keymap

import (
	"fmt"

	"github.com/dshills/arbor/internal/input/key"
)

// Scope identifies which pane a keymap applies to.
type Scope string

const (
	// ScopeGlobal bindings are active regardless of focus.
	ScopeGlobal Scope = "global"

	// ScopeTree bindings are active while the tree pane is focused.
	ScopeTree Scope = "tree"

	// ScopeViewer bindings are active while the content viewer is focused.
	ScopeViewer Scope = "viewer"
)

// IsValid returns true for a known scope.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeGlobal, ScopeTree, ScopeViewer:
		return true
	}
	return false
}

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key sequence that triggers this binding.
	// Formats: "j", "g g", "<C-d>", "<enter>"
	Keys string

	// Action is the command to execute.
	// Examples: "tree.cursorDown", "app.quit"
	Action string

	// Description provides documentation for the binding.
	Description string
}

// Keymap holds key bindings for a scope.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Scope is the pane this keymap applies to.
	Scope Scope

	// Source indicates where this keymap was defined, e.g. "default".
	Source string

	// Bindings are the key-to-action mappings.
	Bindings []Binding
}

// NewKeymap creates an empty keymap for the given scope.
func NewKeymap(name string, scope Scope) *Keymap {
	return &Keymap{
		Name:     name,
		Scope:    scope,
		Bindings: make([]Binding, 0),
	}
}

// Add appends a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{
		Keys:   keys,
		Action: action,
	})
	return k
}

// Validate checks that the scope is known and all bindings are parseable.
func (k *Keymap) Validate() error {
	if !k.Scope.IsValid() {
		return fmt.Errorf("keymap %q: unknown scope %q", k.Name, k.Scope)
	}
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return fmt.Errorf("keymap %q: binding %d: empty keys", k.Name, i)
		}
		if b.Action == "" {
			return fmt.Errorf("keymap %q: binding %d (%s): empty action", k.Name, i, b.Keys)
		}
		if _, err := key.ParseSequence(b.Keys); err != nil {
			return fmt.Errorf("keymap %q: binding %d (%s): %w", k.Name, i, b.Keys, err)
		}
	}
	return nil
}

// ParsedBinding is a binding with a pre-parsed key sequence.
type ParsedBinding struct {
	Binding
	Sequence *key.Sequence
}

// Match checks if this binding's sequence matches the given sequence.
func (pb *ParsedBinding) Match(seq *key.Sequence) bool {
	if pb == nil || pb.Sequence == nil || seq == nil {
		return false
	}
	return pb.Sequence.Equals(seq)
}

// IsPrefix checks if the given sequence is a proper prefix of this
// binding's sequence, meaning more keys are still expected.
func (pb *ParsedBinding) IsPrefix(seq *key.Sequence) bool {
	if pb == nil || pb.Sequence == nil || seq == nil {
		return false
	}
	return pb.Sequence.Len() > seq.Len() && pb.Sequence.HasPrefix(seq)
}

// ParsedKeymap is a keymap with pre-parsed key sequences.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
}

// Parse validates the keymap and parses all binding sequences.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}

	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
	}

	for _, b := range k.Bindings {
		seq, err := key.ParseSequence(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", b.Keys, err)
		}
		parsed.ParsedBindings = append(parsed.ParsedBindings, ParsedBinding{
			Binding:  b,
			Sequence: seq,
		})
	}

	return parsed, nil
}
