// Package backend provides terminal backend abstraction for the renderer.
package backend

import "github.com/dshills/arbor/internal/renderer/core"

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventRefresh is a synthetic event posted when the watched
	// directory tree changes on disk.
	EventRefresh
	// EventInterrupt is a synthetic event posted to wake a blocked
	// PollEvent during shutdown.
	EventInterrupt
	EventError
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int

	// Error event field
	Err error
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend defines the interface for terminal/display backends.
// Implementations handle actual drawing to the terminal or other
// display surfaces.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Fini releases backend resources and restores terminal state.
	// Safe to call more than once.
	Fini()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// GetCell returns the cell at the given position.
	// Returns an empty cell for positions outside the terminal.
	GetCell(x, y int) core.Cell

	// Fill fills a rectangular region with the given cell.
	Fill(rect core.ScreenRect, cell core.Cell)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	// Call this after making changes to flush them to the screen.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	// This is a blocking call. Resize events are delivered through
	// it like any other event, so a single goroutine can own all
	// state mutation.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	// Safe to call from any goroutine.
	PostEvent(event Event)

	// HasTrueColor returns true if the backend supports 24-bit color.
	HasTrueColor() bool

	// Beep produces an audible or visual bell.
	Beep()
}

// NullBackend is an in-memory backend for testing without a TTY.
type NullBackend struct {
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	events        chan Event
	initCount     int
	finiCount     int
	beepCount     int
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.initCount++
	b.allocCells()
	return nil
}

func (b *NullBackend) Fini() {
	b.finiCount++
}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

func (b *NullBackend) GetCell(x, y int) core.Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

func (b *NullBackend) Fill(rect core.ScreenRect, cell core.Cell) {
	for y := rect.Top; y < rect.Bottom && y < b.height; y++ {
		for x := rect.Left; x < rect.Right && x < b.width; x++ {
			if x >= 0 && y >= 0 {
				b.cells[y][x] = cell
			}
		}
	}
}

func (b *NullBackend) Clear() {
	empty := core.EmptyCell()
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = empty
		}
	}
}

func (b *NullBackend) Show() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

func (b *NullBackend) HasTrueColor() bool { return true }

func (b *NullBackend) Beep() {
	b.beepCount++
}

func (b *NullBackend) allocCells() {
	b.cells = make([][]core.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = core.EmptyCell()
		}
	}
}

// PostKey posts a plain rune key event. Test helper.
func (b *NullBackend) PostKey(r rune) {
	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: r})
}

// PostSpecial posts a named key event. Test helper.
func (b *NullBackend) PostSpecial(k Key) {
	b.PostEvent(Event{Type: EventKey, Key: k})
}

// Resize changes the backend dimensions and reallocates the cell grid.
// Test helper; post an EventResize separately to drive the event loop.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.allocCells()
}

// RowString returns the visible text of a row. Test helper.
func (b *NullBackend) RowString(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	return core.StringFromCells(b.cells[y])
}

// CursorPosition returns the current cursor position. Test helper.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// InitCount returns how many times Init was called. Test helper.
func (b *NullBackend) InitCount() int { return b.initCount }

// FiniCount returns how many times Fini was called. Test helper.
func (b *NullBackend) FiniCount() int { return b.finiCount }

// BeepCount returns how many times Beep was called. Test helper.
func (b *NullBackend) BeepCount() int { return b.beepCount }
