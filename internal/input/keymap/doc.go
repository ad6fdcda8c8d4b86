// Package keymap maps key sequences to named actions.
//
// Bindings are grouped into keymaps, each tied to a scope: the tree
// pane, the content viewer, or global (active regardless of focus).
// The Registry resolves an accumulated key sequence against the
// focused scope first, then the global scope.
//
// Action names are dotted strings ("tree.cursorDown", "app.quit")
// dispatched by the application loop.
package keymap
