// Package renderer composes the split-pane frame: header, tree pane,
// vertical rule, viewer pane, and footer. It consumes read-only
// providers and draws through the backend; it never mutates
// application state.
package renderer

import (
	"strings"
	"sync"

	"github.com/dshills/arbor/internal/renderer/backend"
	"github.com/dshills/arbor/internal/renderer/core"
)

// TreeRow is the renderer's view of one visible tree row.
type TreeRow struct {
	Name     string
	Depth    int
	IsDir    bool
	Expanded bool
}

// TreeProvider supplies the tree pane content.
type TreeProvider interface {
	// RowCount returns the number of visible rows.
	RowCount() int

	// Row returns the visible row at index i (0 <= i < RowCount).
	Row(i int) TreeRow

	// Cursor returns the selected row index.
	Cursor() int

	// Scroll returns the first visible row index.
	Scroll() int

	// Focused returns true when the tree pane has input focus.
	Focused() bool
}

// ContentProvider supplies the viewer pane content.
type ContentProvider interface {
	// Title names what is being viewed (file name, directory name).
	Title() string

	// LineCount returns the total number of content lines.
	LineCount() int

	// Line returns the content line at index i (0 <= i < LineCount).
	Line(i int) string

	// Scroll returns the first visible line index.
	Scroll() int

	// Focused returns true when the viewer pane has input focus.
	Focused() bool
}

// StatusProvider supplies header and footer text.
type StatusProvider interface {
	// RootPath returns the directory the tree was loaded from.
	RootPath() string

	// SelectionPath returns the selected entry's path relative to the
	// root, or "" when nothing is selected.
	SelectionPath() string

	// Position returns the viewer position indicator ("Top", "Bot",
	// or a percentage).
	Position() string
}

// footerHints is the static key summary shown on the left of the footer.
const footerHints = "j/k move · enter open · tab focus · ~ sidebar · q quit"

// Options configures the renderer.
type Options struct {
	// SidebarPercent is the tree pane width as a percent of the total.
	SidebarPercent int

	// SidebarVisible controls whether the tree pane is drawn.
	SidebarVisible bool

	// ShowIcons controls the entry icons in the tree pane.
	ShowIcons bool

	// Theme supplies the styles for every region.
	Theme Theme
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		SidebarPercent: 30,
		SidebarVisible: true,
		ShowIcons:      true,
		Theme:          DefaultTheme(),
	}
}

// Layout is the frame geometry for one render pass.
type Layout struct {
	Header core.ScreenRect
	Tree   core.ScreenRect
	Rule   core.ScreenRect
	Viewer core.ScreenRect
	Footer core.ScreenRect
}

// computeLayout splits the screen into regions. Degenerate sizes
// produce empty rects; rendering skips whatever has no area.
func computeLayout(width, height, sidebarPercent int, sidebarVisible bool) Layout {
	var l Layout
	if width <= 0 || height <= 0 {
		return l
	}

	l.Header = core.RectFromSize(0, 0, 1, width)
	if height == 1 {
		return l
	}
	l.Footer = core.RectFromSize(height-1, 0, 1, width)

	bodyH := height - 2
	if bodyH <= 0 {
		return l
	}

	// A split needs at least one tree column, the rule, and one
	// viewer column.
	if !sidebarVisible || width < 3 {
		l.Viewer = core.RectFromSize(1, 0, bodyH, width)
		return l
	}

	treeW := width * sidebarPercent / 100
	if treeW < 1 {
		treeW = 1
	}
	if treeW > width-2 {
		treeW = width - 2
	}

	l.Tree = core.RectFromSize(1, 0, bodyH, treeW)
	l.Rule = core.RectFromSize(1, treeW, bodyH, 1)
	l.Viewer = core.RectFromSize(1, treeW+1, bodyH, width-treeW-1)
	return l
}

// Renderer is the composition facade. It tracks a dirty flag so the
// event loop can redraw only when something changed.
type Renderer struct {
	mu sync.Mutex

	opts    Options
	backend backend.Backend
	width   int
	height  int

	treeProv    TreeProvider
	contentProv ContentProvider
	statusProv  StatusProvider

	needsRedraw bool
	frameCount  uint64
}

// New creates a renderer drawing to the given backend.
func New(b backend.Backend, opts Options) *Renderer {
	width, height := b.Size()
	return &Renderer{
		opts:        opts,
		backend:     b,
		width:       width,
		height:      height,
		needsRedraw: true,
	}
}

// SetTreeProvider sets the tree pane provider.
func (r *Renderer) SetTreeProvider(tp TreeProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.treeProv = tp
	r.needsRedraw = true
}

// SetContentProvider sets the viewer pane provider.
func (r *Renderer) SetContentProvider(cp ContentProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contentProv = cp
	r.needsRedraw = true
}

// SetStatusProvider sets the header/footer provider.
func (r *Renderer) SetStatusProvider(sp StatusProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusProv = sp
	r.needsRedraw = true
}

// Resize handles terminal resize events.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width = width
	r.height = height
	r.needsRedraw = true
}

// Layout returns the frame geometry for the current size and options.
func (r *Renderer) Layout() Layout {
	r.mu.Lock()
	defer r.mu.Unlock()
	return computeLayout(r.width, r.height, r.opts.SidebarPercent, r.opts.SidebarVisible)
}

// SetSidebarVisible shows or hides the tree pane.
func (r *Renderer) SetSidebarVisible(visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.SidebarVisible = visible
	r.needsRedraw = true
}

// SidebarVisible returns whether the tree pane is drawn.
func (r *Renderer) SidebarVisible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts.SidebarVisible
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// Size returns the current screen dimensions.
func (r *Renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// MarkDirty marks the renderer as needing a redraw.
func (r *Renderer) MarkDirty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.needsRedraw = true
}

// NeedsRedraw returns true if the renderer needs to redraw.
func (r *Renderer) NeedsRedraw() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.needsRedraw
}

// Render draws a frame if anything changed since the last one.
func (r *Renderer) Render() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.needsRedraw {
		return
	}
	r.render()
	r.needsRedraw = false
	r.frameCount++
}

// RenderNow draws a frame unconditionally.
func (r *Renderer) RenderNow() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.render()
	r.needsRedraw = false
	r.frameCount++
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// render draws the full frame (must hold lock).
func (r *Renderer) render() {
	layout := computeLayout(r.width, r.height, r.opts.SidebarPercent, r.opts.SidebarVisible)

	r.backend.Clear()

	if !layout.Header.IsEmpty() {
		r.renderHeader(layout.Header)
	}
	if !layout.Tree.IsEmpty() {
		r.renderTree(layout.Tree)
	}
	if !layout.Rule.IsEmpty() {
		r.renderRule(layout.Rule)
	}
	if !layout.Viewer.IsEmpty() {
		r.renderViewer(layout.Viewer)
	}
	if !layout.Footer.IsEmpty() {
		r.renderFooter(layout.Footer)
	}

	r.backend.HideCursor()
	r.backend.Show()
}

// renderHeader draws the title bar: app name and root path on the
// left, the viewed entry's name right-aligned.
func (r *Renderer) renderHeader(rect core.ScreenRect) {
	style := r.opts.Theme.Header
	r.backend.Fill(rect, core.NewStyledCell(' ', style))

	title := "arbor"
	if r.statusProv != nil && r.statusProv.RootPath() != "" {
		title = "arbor — " + r.statusProv.RootPath()
	}
	x := r.drawText(rect.Left+1, rect.Top, title, style, rect.Right)

	if r.contentProv != nil {
		name := r.contentProv.Title()
		if name != "" {
			start := rect.Right - core.StringWidth(name) - 1
			if start > x+1 {
				r.drawText(start, rect.Top, name, style, rect.Right)
			}
		}
	}
}

// renderTree draws the visible tree rows with the cursor row
// highlighted.
func (r *Renderer) renderTree(rect core.ScreenRect) {
	if r.treeProv == nil {
		return
	}

	count := r.treeProv.RowCount()
	cursor := r.treeProv.Cursor()
	scroll := r.treeProv.Scroll()
	focused := r.treeProv.Focused()

	for row := 0; row < rect.Height(); row++ {
		idx := scroll + row
		if idx >= count {
			break
		}

		tr := r.treeProv.Row(idx)

		style := r.opts.Theme.Tree
		if tr.IsDir {
			style = r.opts.Theme.TreeDir
		}
		if idx == cursor {
			if focused {
				style = r.opts.Theme.TreeSelected
			} else {
				style = r.opts.Theme.TreeSelectedDim
			}
			// The selection bar spans the whole pane width.
			bar := core.RectFromSize(rect.Top+row, rect.Left, 1, rect.Width())
			r.backend.Fill(bar, core.NewStyledCell(' ', style))
		}

		r.drawText(rect.Left, rect.Top+row, r.treeLabel(tr), style, rect.Right)
	}
}

// treeLabel builds the display text for a tree row: indent, expansion
// marker, optional icon, name.
func (r *Renderer) treeLabel(tr TreeRow) string {
	var b strings.Builder
	for i := 0; i < tr.Depth; i++ {
		b.WriteString("  ")
	}
	switch {
	case tr.IsDir && tr.Expanded:
		b.WriteString(markerExpanded)
	case tr.IsDir:
		b.WriteString(markerCollapsed)
	default:
		b.WriteString(markerNone)
	}
	if r.opts.ShowIcons {
		b.WriteRune(iconFor(tr.Name, tr.IsDir))
		b.WriteByte(' ')
	}
	b.WriteString(tr.Name)
	return b.String()
}

// renderRule draws the vertical divider between the panes.
func (r *Renderer) renderRule(rect core.ScreenRect) {
	cell := core.NewStyledCell('│', r.opts.Theme.Rule)
	for y := rect.Top; y < rect.Bottom; y++ {
		r.backend.SetCell(rect.Left, y, cell)
	}
}

// renderViewer draws the visible content lines.
func (r *Renderer) renderViewer(rect core.ScreenRect) {
	if r.contentProv == nil {
		return
	}

	count := r.contentProv.LineCount()
	scroll := r.contentProv.Scroll()

	for row := 0; row < rect.Height(); row++ {
		idx := scroll + row
		if idx >= count {
			break
		}
		r.drawText(rect.Left+1, rect.Top+row, r.contentProv.Line(idx), r.opts.Theme.Viewer, rect.Right)
	}
}

// renderFooter draws key hints on the left and the selection path plus
// position indicator right-aligned.
func (r *Renderer) renderFooter(rect core.ScreenRect) {
	style := r.opts.Theme.Footer
	r.backend.Fill(rect, core.NewStyledCell(' ', style))

	x := r.drawText(rect.Left+1, rect.Top, footerHints, style, rect.Right)

	if r.statusProv == nil {
		return
	}
	right := r.statusProv.Position()
	if sel := r.statusProv.SelectionPath(); sel != "" {
		if right != "" {
			right = sel + " · " + right
		} else {
			right = sel
		}
	}
	if right == "" {
		return
	}
	start := rect.Right - core.StringWidth(right) - 1
	if start > x+1 {
		r.drawText(start, rect.Top, right, style, rect.Right)
	}
}

// drawText writes s starting at (x, y), clipping at maxX. Wide runes
// that would straddle the clip edge are dropped whole. Returns the
// column after the last cell written.
func (r *Renderer) drawText(x, y int, s string, style core.Style, maxX int) int {
	for _, cell := range core.CellsFromString(s, style) {
		if x >= maxX {
			break
		}
		if cell.Width == 2 && x+1 >= maxX {
			break
		}
		r.backend.SetCell(x, y, cell)
		x++
	}
	return x
}
