package key

import (
	"strings"
	"time"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(key Key, r rune, mods Modifier) Event {
	return Event{
		Key:       key,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{
		Key:       key,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if any modifier is pressed. For character
// events Shift is not considered a modifier, since the shifted rune
// already carries it.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// IsSpecial returns true if this is a special (non-character) key.
func (e Event) IsSpecial() bool {
	return e.Key.IsSpecial()
}

// String returns a canonical representation.
// Examples: "a", "G", "Space", "C-d", "Enter", "S-Tab"
func (e Event) String() string {
	var parts []string

	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	if e.Modifiers.HasMeta() {
		parts = append(parts, "M")
	}
	if e.Modifiers.HasShift() && !e.IsRune() {
		parts = append(parts, "S")
	}

	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "Space"
	case e.Key == KeyRune:
		name = string(e.Rune)
	default:
		name = e.Key.String()
	}
	parts = append(parts, name)

	return strings.Join(parts, "-")
}

// Equals returns true if two events represent the same key press.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// Matches checks if this event matches a key specification string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Equals(parsed)
}

// IsEscape returns true if this is the Escape key with no modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsEnter returns true if this is the Enter key with no modifiers.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && e.Modifiers == ModNone
}
