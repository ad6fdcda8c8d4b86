// Package viewport provides scroll state for the content pane.
package viewport

// Viewport tracks the visible window over a list of content lines.
// All mutation happens on the event-loop goroutine, so no locking.
type Viewport struct {
	top       int
	width     int
	height    int
	lineCount int
}

// New creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func New(width, height int) *Viewport {
	v := &Viewport{}
	v.Resize(width, height)
	return v
}

// Width returns the viewport width.
func (v *Viewport) Width() int { return v.width }

// Height returns the viewport height.
func (v *Viewport) Height() int { return v.height }

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int { return v.top }

// LineCount returns the total number of content lines.
func (v *Viewport) LineCount() int { return v.lineCount }

// Resize updates the viewport size and re-clamps the scroll position.
func (v *Viewport) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
	v.clampTop()
}

// SetLineCount sets the total content length and re-clamps the scroll
// position. Call when the displayed content changes.
func (v *Viewport) SetLineCount(n int) {
	if n < 0 {
		n = 0
	}
	v.lineCount = n
	v.clampTop()
}

// maxTop returns the largest allowed top line: the content is
// bottom-aligned rather than scrolled past its end.
func (v *Viewport) maxTop() int {
	m := v.lineCount - v.height
	if m < 0 {
		return 0
	}
	return m
}

func (v *Viewport) clampTop() {
	if v.top > v.maxTop() {
		v.top = v.maxTop()
	}
	if v.top < 0 {
		v.top = 0
	}
}

// ScrollTo scrolls so the given line is at the top, clamped to range.
func (v *Viewport) ScrollTo(line int) {
	v.top = line
	v.clampTop()
}

// ScrollBy scrolls by a delta number of lines, clamped to range.
func (v *Viewport) ScrollBy(delta int) {
	v.ScrollTo(v.top + delta)
}

// PageDown scrolls down one page, keeping two lines of overlap.
func (v *Viewport) PageDown() {
	v.ScrollBy(v.pageSize())
}

// PageUp scrolls up one page, keeping two lines of overlap.
func (v *Viewport) PageUp() {
	v.ScrollBy(-v.pageSize())
}

func (v *Viewport) pageSize() int {
	size := v.height - 2
	if size < 1 {
		size = 1
	}
	return size
}

// HalfPageDown scrolls down half a page.
func (v *Viewport) HalfPageDown() {
	v.ScrollBy(v.halfPageSize())
}

// HalfPageUp scrolls up half a page.
func (v *Viewport) HalfPageUp() {
	v.ScrollBy(-v.halfPageSize())
}

func (v *Viewport) halfPageSize() int {
	size := v.height / 2
	if size < 1 {
		size = 1
	}
	return size
}

// ScrollToTop scrolls to the start of the content.
func (v *Viewport) ScrollToTop() {
	v.top = 0
}

// ScrollToBottom scrolls so the end of the content is visible.
func (v *Viewport) ScrollToBottom() {
	v.top = v.maxTop()
}

// VisibleRange returns the half-open range [start, end) of visible
// content lines.
func (v *Viewport) VisibleRange() (start, end int) {
	start = v.top
	end = v.top + v.height
	if end > v.lineCount {
		end = v.lineCount
	}
	if end < start {
		end = start
	}
	return start, end
}

// AtTop returns true if the first content line is visible.
func (v *Viewport) AtTop() bool {
	return v.top == 0
}

// AtBottom returns true if the last content line is visible.
func (v *Viewport) AtBottom() bool {
	return v.top >= v.maxTop()
}

// ScrollPercent returns the scroll position as 0-100.
func (v *Viewport) ScrollPercent() int {
	m := v.maxTop()
	if m == 0 {
		return 100
	}
	return v.top * 100 / m
}
