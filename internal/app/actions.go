package app

import (
	"github.com/dshills/arbor/internal/input/key"
	"github.com/dshills/arbor/internal/renderer/backend"
)

// dispatch executes a resolved action name. Unknown actions are logged
// and ignored. Every action marks the renderer dirty; the loop redraws
// after dispatch returns.
func (app *Application) dispatch(action string) error {
	switch action {
	case "app.quit":
		app.LogInfo("quit requested")
		return ErrQuit

	case "focus.cycle":
		app.cycleFocus()
	case "focus.tree":
		app.setFocus(FocusTree)
	case "focus.viewer":
		app.setFocus(FocusViewer)
	case "sidebar.toggle":
		app.toggleSidebar()

	case "tree.cursorDown":
		app.session.MoveCursor(1)
		app.refreshContent()
	case "tree.cursorUp":
		app.session.MoveCursor(-1)
		app.refreshContent()
	case "tree.confirm":
		app.confirmSelection()
	case "tree.expand":
		app.session.Expand()
		app.refreshContent()
	case "tree.collapse":
		app.session.Collapse()
		app.refreshContent()
	case "tree.collapseAll":
		app.session.CollapseAll()
		app.refreshContent()
	case "tree.top":
		app.session.JumpTop()
		app.refreshContent()
	case "tree.bottom":
		app.session.JumpBottom()
		app.refreshContent()
	case "tree.halfPageDown":
		app.session.HalfPageDown()
		app.refreshContent()
	case "tree.halfPageUp":
		app.session.HalfPageUp()
		app.refreshContent()

	case "view.scrollDown":
		app.viewer.ScrollBy(1)
	case "view.scrollUp":
		app.viewer.ScrollBy(-1)
	case "view.halfPageDown":
		app.viewer.HalfPageDown()
	case "view.halfPageUp":
		app.viewer.HalfPageUp()
	case "view.pageDown":
		app.viewer.PageDown()
	case "view.pageUp":
		app.viewer.PageUp()
	case "view.top":
		app.viewer.ScrollToTop()
	case "view.bottom":
		app.viewer.ScrollToBottom()

	default:
		app.LogWarn("unknown action %q", action)
		return nil
	}

	app.renderer.MarkDirty()
	return nil
}

// refreshContent loads the selected node's content into the viewer and
// scrolls back to the top.
func (app *Application) refreshContent() {
	app.current = app.provider.For(app.session.Selected())
	app.viewer.SetLineCount(len(app.current.Lines))
	app.viewer.ScrollToTop()
}

// confirmSelection handles Enter in the tree: directories toggle their
// expansion, files hand focus to the viewer.
func (app *Application) confirmSelection() {
	n := app.session.Selected()
	if n == nil {
		return
	}
	if n.IsDir {
		app.session.ToggleExpand()
		app.refreshContent()
		return
	}
	app.setFocus(FocusViewer)
}

// cycleFocus switches between the tree and the viewer.
func (app *Application) cycleFocus() {
	if app.focus == FocusTree {
		app.focus = FocusViewer
		return
	}
	app.setFocus(FocusTree)
}

// setFocus moves focus to a pane. The tree cannot take focus while the
// sidebar is hidden.
func (app *Application) setFocus(f Focus) {
	if f == FocusTree && app.renderer != nil && !app.renderer.SidebarVisible() {
		return
	}
	app.focus = f
}

// toggleSidebar shows or hides the tree pane. Hiding it moves focus to
// the viewer; showing it focuses the tree.
func (app *Application) toggleSidebar() {
	visible := !app.renderer.SidebarVisible()
	app.renderer.SetSidebarVisible(visible)
	if visible {
		app.focus = FocusTree
	} else {
		app.focus = FocusViewer
	}
	app.syncPanes()
}

// keyEventFrom converts a backend key event into the input package's
// representation. Returns false for events that carry no key.
func keyEventFrom(ev backend.Event) (key.Event, bool) {
	if ev.Key >= backend.KeyCtrlA && ev.Key <= backend.KeyCtrlZ {
		r := rune('a' + int(ev.Key-backend.KeyCtrlA))
		return key.NewRuneEvent(r, key.ModCtrl), true
	}

	switch ev.Key {
	case backend.KeyRune:
		// Shifted runes already carry the shift in the rune itself.
		mods := modifiersFrom(ev.Mod).Without(key.ModShift)
		return key.NewRuneEvent(ev.Rune, mods), true
	case backend.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, modifiersFrom(ev.Mod)), true
	case backend.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, modifiersFrom(ev.Mod)), true
	case backend.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, modifiersFrom(ev.Mod)), true
	case backend.KeyBackspace:
		return key.NewSpecialEvent(key.KeyBackspace, modifiersFrom(ev.Mod)), true
	case backend.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, modifiersFrom(ev.Mod)), true
	case backend.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, modifiersFrom(ev.Mod)), true
	case backend.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, modifiersFrom(ev.Mod)), true
	case backend.KeyPageUp:
		return key.NewSpecialEvent(key.KeyPageUp, modifiersFrom(ev.Mod)), true
	case backend.KeyPageDown:
		return key.NewSpecialEvent(key.KeyPageDown, modifiersFrom(ev.Mod)), true
	case backend.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, modifiersFrom(ev.Mod)), true
	case backend.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, modifiersFrom(ev.Mod)), true
	case backend.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, modifiersFrom(ev.Mod)), true
	case backend.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, modifiersFrom(ev.Mod)), true
	}
	return key.Event{}, false
}

// modifiersFrom converts the backend modifier mask.
func modifiersFrom(m backend.ModMask) key.Modifier {
	var mods key.Modifier
	if m.Has(backend.ModShift) {
		mods |= key.ModShift
	}
	if m.Has(backend.ModCtrl) {
		mods |= key.ModCtrl
	}
	if m.Has(backend.ModAlt) {
		mods |= key.ModAlt
	}
	if m.Has(backend.ModMeta) {
		mods |= key.ModMeta
	}
	return mods
}
