package keymap

import (
	"fmt"
	"sync"

	"github.com/dshills/arbor/internal/input/key"
)

// Registry manages all keymaps and provides binding lookup.
//
// Lookup walks the registered bindings linearly. The full default set
// is a few dozen bindings, so a prefix index would buy nothing.
type Registry struct {
	mu      sync.RWMutex
	keymaps []*ParsedKeymap
}

// NewRegistry creates an empty keymap registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a keymap to the registry. A keymap with the same name
// replaces the previous one.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}

	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("registering keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.keymaps {
		if existing.Name == km.Name {
			r.keymaps[i] = parsed
			return nil
		}
	}
	r.keymaps = append(r.keymaps, parsed)
	return nil
}

// Unregister removes a keymap by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, km := range r.keymaps {
		if km.Name == name {
			r.keymaps = append(r.keymaps[:i], r.keymaps[i+1:]...)
			return
		}
	}
}

// Get returns a keymap by name, or nil.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, km := range r.keymaps {
		if km.Name == name {
			return km
		}
	}
	return nil
}

// Lookup finds the binding exactly matching a key sequence. Bindings in
// the given scope win over global ones.
func (r *Registry) Lookup(seq *key.Sequence, scope Scope) *Binding {
	if seq == nil || seq.IsEmpty() {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if b := r.lookupScope(seq, scope); b != nil {
		return b
	}
	if scope != ScopeGlobal {
		return r.lookupScope(seq, ScopeGlobal)
	}
	return nil
}

func (r *Registry) lookupScope(seq *key.Sequence, scope Scope) *Binding {
	for _, km := range r.keymaps {
		if km.Scope != scope {
			continue
		}
		for i := range km.ParsedBindings {
			pb := &km.ParsedBindings[i]
			if pb.Match(seq) {
				return &pb.Binding
			}
		}
	}
	return nil
}

// HasPrefix reports whether the sequence is a proper prefix of any
// binding in the given scope or the global scope, meaning the caller
// should wait for more keys.
func (r *Registry) HasPrefix(seq *key.Sequence, scope Scope) bool {
	if seq == nil || seq.IsEmpty() {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, km := range r.keymaps {
		if km.Scope != scope && km.Scope != ScopeGlobal {
			continue
		}
		for i := range km.ParsedBindings {
			if km.ParsedBindings[i].IsPrefix(seq) {
				return true
			}
		}
	}
	return false
}

// Bindings returns the bindings visible in a scope: scope-specific
// first, then global, in registration order.
func (r *Registry) Bindings(scope Scope) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Binding
	for _, km := range r.keymaps {
		if km.Scope == scope && scope != ScopeGlobal {
			result = append(result, km.Bindings...)
		}
	}
	for _, km := range r.keymaps {
		if km.Scope == ScopeGlobal {
			result = append(result, km.Bindings...)
		}
	}
	return result
}
