package backend

import (
	"strings"
	"testing"

	"github.com/dshills/arbor/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
	if b.InitCount() != 1 {
		t.Errorf("InitCount = %d, want 1", b.InitCount())
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.NewStyledCell('X', core.NewStyle(core.ColorRed))
	b.SetCell(10, 5, cell)

	got := b.GetCell(10, 5)
	if !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)

	empty := b.GetCell(-1, 0)
	if !empty.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendFill(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.NewCell('.')
	rect := core.NewScreenRect(5, 10, 10, 20)
	b.Fill(rect, cell)

	if !b.GetCell(10, 5).Equals(cell) {
		t.Error("top-left of rect should be filled")
	}
	if !b.GetCell(19, 9).Equals(cell) {
		t.Error("bottom-right of rect should be filled")
	}
	if b.GetCell(20, 5).Equals(cell) {
		t.Error("right of rect should not be filled")
	}
	if b.GetCell(10, 10).Equals(cell) {
		t.Error("below rect should not be filled")
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.PostKey('j')
	b.PostSpecial(KeyEnter)
	b.PostEvent(Event{Type: EventRefresh})

	ev := b.PollEvent()
	if ev.Type != EventKey || ev.Rune != 'j' {
		t.Errorf("first event = %+v, want key 'j'", ev)
	}

	ev = b.PollEvent()
	if ev.Type != EventKey || ev.Key != KeyEnter {
		t.Errorf("second event = %+v, want enter", ev)
	}

	ev = b.PollEvent()
	if ev.Type != EventRefresh {
		t.Errorf("third event = %+v, want refresh", ev)
	}
}

func TestNullBackendRowString(t *testing.T) {
	b := NewNullBackend(10, 2)
	b.Init()

	for i, c := range core.CellsFromString("hi 📁", core.DefaultStyle()) {
		b.SetCell(i, 0, c)
	}

	if got := strings.TrimRight(b.RowString(0), " "); got != "hi 📁" {
		t.Errorf("RowString(0) = %q, want %q", got, "hi 📁")
	}
	if got := b.RowString(5); got != "" {
		t.Errorf("RowString out of range = %q, want empty", got)
	}
}

func TestNullBackendFiniCount(t *testing.T) {
	b := NewNullBackend(10, 10)
	b.Init()

	b.Fini()
	b.Fini()
	if b.FiniCount() != 2 {
		t.Errorf("FiniCount = %d, want 2", b.FiniCount())
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(10, 10)
	b.Init()

	b.ShowCursor(3, 4)
	x, y, visible := b.CursorPosition()
	if x != 3 || y != 4 || !visible {
		t.Errorf("cursor = (%d,%d,%v), want (3,4,true)", x, y, visible)
	}

	b.HideCursor()
	_, _, visible = b.CursorPosition()
	if visible {
		t.Error("cursor should be hidden")
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(10, 10)
	b.Init()

	b.Resize(20, 5)
	w, h := b.Size()
	if w != 20 || h != 5 {
		t.Errorf("size after resize = (%d,%d), want (20,5)", w, h)
	}
	if !b.GetCell(15, 2).Equals(core.EmptyCell()) {
		t.Error("resized grid should be empty cells")
	}
}

func TestModMaskHas(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Has(ModCtrl) {
		t.Error("expected ctrl")
	}
	if m.Has(ModAlt) {
		t.Error("did not expect alt")
	}
}
