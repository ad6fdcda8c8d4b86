// Package key provides key event types and binding notation parsing.
//
// A single press is an Event: a special Key (Enter, arrows, paging) or a
// printable rune, plus modifiers. Multi-key bindings such as "g g" are
// Sequences.
//
// Binding specs accept three forms:
//
//   - Single keys: "q", "G", "~", "enter", "pgup"
//   - Modifier+key: "Ctrl+D", "Alt+Enter"
//   - Vim-style: "<C-d>", "<CR>", "<Esc>"
//
// Sequence specs are space-separated ("g g", "z o") or continuous
// ("gg", "<C-x><C-s>").
package key
