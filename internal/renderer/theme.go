package renderer

import (
	"path/filepath"
	"strings"

	"github.com/dshills/arbor/internal/renderer/core"
)

// Theme groups the styles the compositor draws with.
type Theme struct {
	Header          core.Style // top bar
	Tree            core.Style // tree pane file rows
	TreeDir         core.Style // tree pane directory rows
	TreeSelected    core.Style // cursor row, tree focused
	TreeSelectedDim core.Style // cursor row, tree unfocused
	Rule            core.Style // vertical pane divider
	Viewer          core.Style // viewer pane text
	Footer          core.Style // bottom bar
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	bar := core.DefaultStyle().
		WithBackground(core.ColorGray).
		WithForeground(core.ColorWhite)

	return Theme{
		Header:          bar.Bold(),
		Tree:            core.DefaultStyle(),
		TreeDir:         core.DefaultStyle().Bold(),
		TreeSelected:    core.DefaultStyle().Reverse(),
		TreeSelectedDim: core.DefaultStyle().Reverse().Dim(),
		Rule:            core.DefaultStyle().Dim(),
		Viewer:          core.DefaultStyle(),
		Footer:          bar,
	}
}

// Expansion markers for directory rows.
const (
	markerCollapsed = "▸ "
	markerExpanded  = "▾ "
	markerNone      = "  "
)

// iconFor returns the icon drawn before an entry name.
func iconFor(name string, isDir bool) rune {
	if isDir {
		return '📁'
	}
	if name == "Makefile" {
		return '🔧'
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".c", ".h", ".go":
		return '📄'
	case ".txt", ".md", ".info":
		return '📝'
	case ".mk":
		return '🔧'
	default:
		return '📎'
	}
}
