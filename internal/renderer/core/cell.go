package core

// Cell represents a single terminal cell.
type Cell struct {
	// Rune is the character to display.
	// A value of 0 indicates a continuation cell (for wide characters).
	Rune rune

	// Width is the display width of this cell.
	// 0 for continuation cells, 1 for normal chars, 2 for wide chars.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns an empty cell with default style.
func EmptyCell() Cell {
	return Cell{
		Rune:  ' ',
		Width: 1,
		Style: DefaultStyle(),
	}
}

// NewCell creates a cell with the given rune and default style.
func NewCell(r rune) Cell {
	return Cell{
		Rune:  r,
		Width: RuneWidth(r),
		Style: DefaultStyle(),
	}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{
		Rune:  r,
		Width: RuneWidth(r),
		Style: style,
	}
}

// WithStyle returns a new cell with the given style.
func (c Cell) WithStyle(style Style) Cell {
	c.Style = style
	return c
}

// IsContinuation returns true if this is a continuation cell.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Rune == 0
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Rune == other.Rune &&
		c.Width == other.Width &&
		c.Style.Equals(other.Style)
}

// ContinuationCell returns a continuation cell for wide characters.
func ContinuationCell(style Style) Cell {
	return Cell{
		Rune:  0,
		Width: 0,
		Style: style,
	}
}

// RuneWidth returns the display width of a rune.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7F {
		return 0
	}
	if isWideRune(r) {
		return 2
	}
	return 1
}

// isWideRune checks if a rune is a wide (double-width) character.
// Covers the CJK blocks plus the emoji pictograph blocks used for
// tree entry icons.
func isWideRune(r rune) bool {
	switch {
	case r >= 0x1100 && r <= 0x115F: // Hangul Jamo
		return true
	case r >= 0x2E80 && r <= 0x9FFF: // CJK radicals through unified ideographs
		return true
	case r >= 0xAC00 && r <= 0xD7A3: // Hangul syllables
		return true
	case r >= 0xF900 && r <= 0xFAFF: // CJK compatibility ideographs
		return true
	case r >= 0xFE30 && r <= 0xFE6F: // CJK compatibility forms
		return true
	case r >= 0xFF00 && r <= 0xFF60: // Fullwidth forms
		return true
	case r >= 0xFFE0 && r <= 0xFFE6:
		return true
	case r >= 0x1F300 && r <= 0x1F64F: // Pictographs and emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // Transport pictographs
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // Supplemental pictographs
		return true
	case r >= 0x20000 && r <= 0x2FFFF: // CJK extensions
		return true
	}
	return false
}

// CellsFromString creates cells from a string, inserting continuation
// cells after wide runes.
func CellsFromString(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))
	for _, r := range s {
		width := RuneWidth(r)
		cells = append(cells, Cell{
			Rune:  r,
			Width: width,
			Style: style,
		})
		if width == 2 {
			cells = append(cells, ContinuationCell(style))
		}
	}
	return cells
}

// StringFromCells converts cells back to a string, skipping
// continuation cells.
func StringFromCells(cells []Cell) string {
	runes := make([]rune, 0, len(cells))
	for _, c := range cells {
		if !c.IsContinuation() && c.Rune != 0 {
			runes = append(runes, c.Rune)
		}
	}
	return string(runes)
}

// StringWidth returns the display width of a string in cells.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}
