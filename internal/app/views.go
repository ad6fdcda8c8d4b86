package app

import (
	"fmt"
	"path/filepath"

	"github.com/dshills/arbor/internal/renderer"
)

// treeView adapts the tree session to the renderer's TreeProvider.
type treeView struct {
	app *Application
}

var _ renderer.TreeProvider = (*treeView)(nil)

func (v *treeView) RowCount() int {
	return len(v.app.session.Visible())
}

func (v *treeView) Row(i int) renderer.TreeRow {
	n := v.app.session.Visible()[i]
	return renderer.TreeRow{
		Name:     n.Name,
		Depth:    n.Depth,
		IsDir:    n.IsDir,
		Expanded: v.app.session.IsExpanded(n),
	}
}

func (v *treeView) Cursor() int {
	return v.app.session.State().Cursor
}

func (v *treeView) Scroll() int {
	return v.app.session.State().Scroll
}

func (v *treeView) Focused() bool {
	return v.app.focus == FocusTree
}

// contentView adapts the loaded content and viewport to the renderer's
// ContentProvider.
type contentView struct {
	app *Application
}

var _ renderer.ContentProvider = (*contentView)(nil)

func (v *contentView) Title() string {
	return v.app.current.Title
}

func (v *contentView) LineCount() int {
	return len(v.app.current.Lines)
}

func (v *contentView) Line(i int) string {
	return v.app.current.Lines[i]
}

func (v *contentView) Scroll() int {
	return v.app.viewer.TopLine()
}

func (v *contentView) Focused() bool {
	return v.app.focus == FocusViewer
}

// statusView adapts session and viewer state to the renderer's
// StatusProvider.
type statusView struct {
	app *Application
}

var _ renderer.StatusProvider = (*statusView)(nil)

func (v *statusView) RootPath() string {
	return v.app.session.Root().Path
}

func (v *statusView) SelectionPath() string {
	n := v.app.session.Selected()
	if n == nil {
		return ""
	}
	rel, err := filepath.Rel(v.app.session.Root().Path, n.Path)
	if err != nil || rel == "." {
		return n.Name
	}
	return rel
}

func (v *statusView) Position() string {
	switch {
	case v.app.viewer.AtTop():
		return "Top"
	case v.app.viewer.AtBottom():
		return "Bot"
	default:
		return fmt.Sprintf("%d%%", v.app.viewer.ScrollPercent())
	}
}
