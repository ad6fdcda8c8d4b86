package key

import "strings"

// Key identifies a keyboard key. Printable characters are represented by
// KeyRune with the character carried in Event.Rune.
type Key uint8

const (
	// KeyNone indicates no key.
	KeyNone Key = iota

	// KeyEscape is the Escape key.
	KeyEscape

	// KeyEnter is the Enter/Return key.
	KeyEnter

	// KeyTab is the Tab key.
	KeyTab

	// KeyBackspace is the Backspace key.
	KeyBackspace

	// KeyDelete is the Delete key.
	KeyDelete

	// KeyHome is the Home key.
	KeyHome

	// KeyEnd is the End key.
	KeyEnd

	// KeyPageUp is the Page Up key.
	KeyPageUp

	// KeyPageDown is the Page Down key.
	KeyPageDown

	// KeyUp is the up arrow key.
	KeyUp

	// KeyDown is the down arrow key.
	KeyDown

	// KeyLeft is the left arrow key.
	KeyLeft

	// KeyRight is the right arrow key.
	KeyRight

	// KeyRune indicates a printable character; see Event.Rune.
	KeyRune
)

// String returns the canonical short name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyEscape:
		return "Esc"
	case KeyEnter:
		return "Enter"
	case KeyTab:
		return "Tab"
	case KeyBackspace:
		return "BS"
	case KeyDelete:
		return "Del"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PgUp"
	case KeyPageDown:
		return "PgDn"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyRune:
		return "Rune"
	}
	return "Unknown"
}

// IsSpecial returns true for non-character keys.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsArrowKey returns true for the four arrow keys.
func (k Key) IsArrowKey() bool {
	switch k {
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		return true
	}
	return false
}

// IsNavigationKey returns true for keys that move a cursor or viewport.
func (k Key) IsNavigationKey() bool {
	if k.IsArrowKey() {
		return true
	}
	switch k {
	case KeyHome, KeyEnd, KeyPageUp, KeyPageDown:
		return true
	}
	return false
}

// keyNameMap maps lowercase key names and aliases to Key values.
var keyNameMap = map[string]Key{
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"cr":        KeyEnter,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"bs":        KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pageup":    KeyPageUp,
	"pgup":      KeyPageUp,
	"pagedown":  KeyPageDown,
	"pgdn":      KeyPageDown,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
}

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	if k, ok := keyNameMap[strings.ToLower(name)]; ok {
		return k
	}
	return KeyNone
}
