package tree

// State tracks the cursor and scroll window over the flattened node
// list. All movement clamps so the cursor stays inside the list and the
// scroll keeps the cursor on screen.
type State struct {
	Cursor int // index into the flattened visible list
	Scroll int // first visible row
	Height int // rows available to the tree pane
	Margin int // rows kept between the cursor and the window edges
}

// MoveCursor moves the cursor by delta rows, clamped to the visible list.
func (s *State) MoveCursor(delta, visibleLen int) {
	s.Cursor += delta
	s.ClampTo(visibleLen)
}

// JumpTop moves the cursor and scroll to the first row.
func (s *State) JumpTop() {
	s.Cursor = 0
	s.Scroll = 0
}

// JumpBottom moves the cursor to the last row.
func (s *State) JumpBottom(visibleLen int) {
	s.Cursor = visibleLen - 1
	s.ClampTo(visibleLen)
}

// HalfPageDown moves the cursor down half the pane height, at least one
// row.
func (s *State) HalfPageDown(visibleLen int) {
	s.MoveCursor(s.halfPage(), visibleLen)
}

// HalfPageUp moves the cursor up half the pane height, at least one row.
func (s *State) HalfPageUp(visibleLen int) {
	s.MoveCursor(-s.halfPage(), visibleLen)
}

func (s *State) halfPage() int {
	step := s.Height / 2
	if step < 1 {
		step = 1
	}
	return step
}

// ClampTo forces the cursor into [0, visibleLen-1] and re-anchors the
// scroll window.
func (s *State) ClampTo(visibleLen int) {
	if s.Cursor >= visibleLen {
		s.Cursor = visibleLen - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	s.EnsureCursorVisible(visibleLen)
}

// EnsureCursorVisible scrolls just enough to keep the cursor inside the
// window, honoring the margin where the list is long enough. The margin
// relaxes at the ends of the list.
func (s *State) EnsureCursorVisible(visibleLen int) {
	if s.Height <= 0 {
		s.Scroll = 0
		return
	}

	margin := s.Margin
	if margin*2 >= s.Height {
		margin = (s.Height - 1) / 2
	}

	if s.Cursor < s.Scroll+margin {
		s.Scroll = s.Cursor - margin
	}
	if s.Cursor > s.Scroll+s.Height-1-margin {
		s.Scroll = s.Cursor - s.Height + 1 + margin
	}

	maxScroll := visibleLen - s.Height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.Scroll > maxScroll {
		s.Scroll = maxScroll
	}
	if s.Scroll < 0 {
		s.Scroll = 0
	}
}
