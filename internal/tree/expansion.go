package tree

// Expansion tracks which directories are expanded, keyed by node path.
// Paths survive reloads, so expansion state carries across refreshes.
type Expansion struct {
	state map[string]bool
}

// NewExpansion creates an empty expansion set.
func NewExpansion() *Expansion {
	return &Expansion{state: make(map[string]bool)}
}

// IsExpanded returns true if the path is expanded.
func (e *Expansion) IsExpanded(path string) bool {
	return e.state[path]
}

// Expand marks the path expanded.
func (e *Expansion) Expand(path string) {
	e.state[path] = true
}

// Collapse marks the path collapsed.
func (e *Expansion) Collapse(path string) {
	delete(e.state, path)
}

// Toggle flips the expansion state of the path and returns the new value.
func (e *Expansion) Toggle(path string) bool {
	if e.state[path] {
		delete(e.state, path)
		return false
	}
	e.state[path] = true
	return true
}

// CollapseAll clears all expansion state.
func (e *Expansion) CollapseAll() {
	e.state = make(map[string]bool)
}

// Len returns the number of expanded paths.
func (e *Expansion) Len() int {
	return len(e.state)
}
