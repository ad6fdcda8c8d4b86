package keymap

// LoadDefaults loads the default keymaps into the registry.
func LoadDefaults(r *Registry) error {
	keymaps := []*Keymap{
		DefaultGlobalKeymap(),
		DefaultTreeKeymap(),
		DefaultViewerKeymap(),
	}

	for _, km := range keymaps {
		if err := r.Register(km); err != nil {
			return err
		}
	}

	return nil
}

// DefaultGlobalKeymap returns bindings active regardless of focus.
func DefaultGlobalKeymap() *Keymap {
	return &Keymap{
		Name:   "default-global",
		Scope:  ScopeGlobal,
		Source: "default",
		Bindings: []Binding{
			{Keys: "q", Action: "app.quit", Description: "Quit"},
			{Keys: "<tab>", Action: "focus.cycle", Description: "Switch pane"},
			{Keys: "~", Action: "sidebar.toggle", Description: "Toggle sidebar"},
			{Keys: "f h", Action: "focus.tree", Description: "Focus tree"},
			{Keys: "f k", Action: "focus.viewer", Description: "Focus viewer"},
		},
	}
}

// DefaultTreeKeymap returns bindings for the tree pane.
func DefaultTreeKeymap() *Keymap {
	return &Keymap{
		Name:   "default-tree",
		Scope:  ScopeTree,
		Source: "default",
		Bindings: []Binding{
			// Selection
			{Keys: "j", Action: "tree.cursorDown", Description: "Next entry"},
			{Keys: "<down>", Action: "tree.cursorDown", Description: "Next entry"},
			{Keys: "k", Action: "tree.cursorUp", Description: "Previous entry"},
			{Keys: "<up>", Action: "tree.cursorUp", Description: "Previous entry"},
			{Keys: "<enter>", Action: "tree.confirm", Description: "Open entry"},

			// Expand and collapse
			{Keys: "l", Action: "tree.expand", Description: "Expand directory"},
			{Keys: "<right>", Action: "tree.expand", Description: "Expand directory"},
			{Keys: "h", Action: "tree.collapse", Description: "Collapse directory"},
			{Keys: "<left>", Action: "tree.collapse", Description: "Collapse directory"},
			{Keys: "z o", Action: "tree.expand", Description: "Expand directory"},
			{Keys: "z c", Action: "tree.collapse", Description: "Collapse directory"},
			{Keys: "z M", Action: "tree.collapseAll", Description: "Collapse all"},

			// Jumps
			{Keys: "g g", Action: "tree.top", Description: "First entry"},
			{Keys: "G", Action: "tree.bottom", Description: "Last entry"},
			{Keys: "<C-d>", Action: "tree.halfPageDown", Description: "Half page down"},
			{Keys: "<C-u>", Action: "tree.halfPageUp", Description: "Half page up"},
			{Keys: "<pgdn>", Action: "tree.halfPageDown", Description: "Half page down"},
			{Keys: "<pgup>", Action: "tree.halfPageUp", Description: "Half page up"},
		},
	}
}

// DefaultViewerKeymap returns bindings for the content viewer.
func DefaultViewerKeymap() *Keymap {
	return &Keymap{
		Name:   "default-viewer",
		Scope:  ScopeViewer,
		Source: "default",
		Bindings: []Binding{
			{Keys: "j", Action: "view.scrollDown", Description: "Scroll down"},
			{Keys: "<down>", Action: "view.scrollDown", Description: "Scroll down"},
			{Keys: "k", Action: "view.scrollUp", Description: "Scroll up"},
			{Keys: "<up>", Action: "view.scrollUp", Description: "Scroll up"},
			{Keys: "<C-d>", Action: "view.halfPageDown", Description: "Half page down"},
			{Keys: "<C-u>", Action: "view.halfPageUp", Description: "Half page up"},
			{Keys: "<pgdn>", Action: "view.pageDown", Description: "Page down"},
			{Keys: "<pgup>", Action: "view.pageUp", Description: "Page up"},
			{Keys: "g g", Action: "view.top", Description: "Top"},
			{Keys: "G", Action: "view.bottom", Description: "Bottom"},
			{Keys: "<enter>", Action: "focus.tree", Description: "Back to tree"},
		},
	}
}
