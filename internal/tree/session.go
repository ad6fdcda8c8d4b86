package tree

import "path/filepath"

// Session bundles a loaded tree with its expansion and cursor state. It
// is the single façade the application drives; every mutation re-projects
// the visible list and re-clamps the cursor.
//
// Session is not safe for concurrent use. The application owns it from
// the event loop goroutine.
type Session struct {
	rootDir string
	opts    LoadOptions

	root    *Node
	exp     *Expansion
	state   State
	visible []*Node
}

// NewSession loads rootDir and returns a session with the root expanded
// and the cursor on it.
func NewSession(rootDir string, opts LoadOptions) (*Session, error) {
	root, err := Load(rootDir, opts)
	if err != nil {
		return nil, err
	}
	s := &Session{
		rootDir: rootDir,
		opts:    opts,
		root:    root,
		exp:     NewExpansion(),
	}
	s.exp.Expand(root.Path)
	s.visible = Flatten(s.root, s.exp)
	return s, nil
}

// Root returns the root node.
func (s *Session) Root() *Node {
	return s.root
}

// Visible returns the flattened visible nodes in display order.
func (s *Session) Visible() []*Node {
	return s.visible
}

// State returns the cursor and scroll state.
func (s *Session) State() *State {
	return &s.state
}

// Selected returns the node under the cursor, or nil for an empty list.
func (s *Session) Selected() *Node {
	if len(s.visible) == 0 {
		return nil
	}
	return s.visible[s.state.Cursor]
}

// IsExpanded reports whether a directory node is currently expanded.
func (s *Session) IsExpanded(n *Node) bool {
	return n != nil && n.IsDir && s.exp.IsExpanded(n.Path)
}

// SetViewport sets the pane height and scroll margin, then re-clamps.
func (s *Session) SetViewport(height, margin int) {
	s.state.Height = height
	s.state.Margin = margin
	s.state.ClampTo(len(s.visible))
}

// MoveCursor moves the selection by delta rows.
func (s *Session) MoveCursor(delta int) {
	s.state.MoveCursor(delta, len(s.visible))
}

// JumpTop moves the selection to the first row.
func (s *Session) JumpTop() {
	s.state.JumpTop()
}

// JumpBottom moves the selection to the last row.
func (s *Session) JumpBottom() {
	s.state.JumpBottom(len(s.visible))
}

// HalfPageDown moves the selection down half the pane height.
func (s *Session) HalfPageDown() {
	s.state.HalfPageDown(len(s.visible))
}

// HalfPageUp moves the selection up half the pane height.
func (s *Session) HalfPageUp() {
	s.state.HalfPageUp(len(s.visible))
}

// ToggleExpand toggles the directory under the cursor. Files are left
// alone.
func (s *Session) ToggleExpand() {
	n := s.Selected()
	if n == nil || !n.IsDir {
		return
	}
	s.exp.Toggle(n.Path)
	s.refreshKeeping(n.Path)
}

// Expand expands the directory under the cursor. When it is already
// expanded the cursor moves to its first child, so repeated presses walk
// into the tree.
func (s *Session) Expand() {
	n := s.Selected()
	if n == nil || !n.IsDir {
		return
	}
	if !s.exp.IsExpanded(n.Path) {
		s.exp.Expand(n.Path)
		s.refreshKeeping(n.Path)
		return
	}
	if i := FindFirstChild(s.visible, s.state.Cursor); i >= 0 {
		s.state.Cursor = i
		s.state.EnsureCursorVisible(len(s.visible))
	}
}

// Collapse collapses the directory under the cursor. On a file or an
// already collapsed directory the cursor jumps to the parent instead.
func (s *Session) Collapse() {
	n := s.Selected()
	if n == nil {
		return
	}
	if n.IsDir && s.exp.IsExpanded(n.Path) {
		s.exp.Collapse(n.Path)
		s.refreshKeeping(n.Path)
		return
	}
	if i := FindParentIndex(s.visible, s.state.Cursor); i >= 0 {
		s.state.Cursor = i
		s.state.EnsureCursorVisible(len(s.visible))
	}
}

// CollapseAll collapses every directory except the root. The cursor
// moves to the nearest ancestor that is still visible.
func (s *Session) CollapseAll() {
	var selected string
	if n := s.Selected(); n != nil {
		selected = n.Path
	}
	s.exp.CollapseAll()
	s.exp.Expand(s.root.Path)
	s.refreshKeeping(selected)
}

// Reload re-walks the root directory, preserving expansion state and
// keeping the cursor on the selected path or its nearest surviving
// ancestor. On error the previous tree stays in place.
func (s *Session) Reload() error {
	var selected string
	if n := s.Selected(); n != nil {
		selected = n.Path
	}
	root, err := Load(s.rootDir, s.opts)
	if err != nil {
		return err
	}
	s.root = root
	s.exp.Expand(root.Path)
	s.refreshKeeping(selected)
	return nil
}

// refreshKeeping re-projects the visible list and moves the cursor to
// path, or to its nearest visible ancestor when the path is gone.
func (s *Session) refreshKeeping(path string) {
	s.visible = Flatten(s.root, s.exp)
	if i := s.indexOf(path); i >= 0 {
		s.state.Cursor = i
	} else if i := s.nearestAncestor(path); i >= 0 {
		s.state.Cursor = i
	}
	s.state.ClampTo(len(s.visible))
}

func (s *Session) indexOf(path string) int {
	if path == "" {
		return -1
	}
	for i, n := range s.visible {
		if n.Path == path {
			return i
		}
	}
	return -1
}

func (s *Session) nearestAncestor(path string) int {
	for path != "" {
		parent := filepath.Dir(path)
		if parent == path {
			break
		}
		path = parent
		if i := s.indexOf(path); i >= 0 {
			return i
		}
	}
	return -1
}
