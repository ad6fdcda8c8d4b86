package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "G", "~"
//   - Key names: "enter", "tab", "pgup"
//   - With modifiers: "Ctrl+D", "Alt+Enter"
//   - Vim-style: "<C-d>", "<CR>", "<Esc>", and bare "C-d"
//
// Shifted characters are written as the character itself ("G", "~");
// terminals report them that way, so no Shift modifier is attached.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	if strings.Contains(spec, "+") && len(spec) > 1 {
		return parseModifierStyle(spec)
	}

	// Bare Vim-style without brackets: "C-d", "S-Tab".
	if strings.Contains(spec, "-") && len([]rune(spec)) > 1 {
		if event, err := parseVimStyle(spec); err == nil {
			return event, nil
		}
	}

	return parseSingle(spec)
}

// parseVimStyle parses the inside of <...> notation: "C-d", "CR", "Esc".
func parseVimStyle(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")

	var mods Modifier
	keyPart := parts[len(parts)-1]
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods = mods.With(ModCtrl)
		case "a":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		case "m", "d":
			mods = mods.With(ModMeta)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	return parseKeyWithModifiers(keyPart, mods)
}

// parseModifierStyle parses "Ctrl+D" style notation.
func parseModifierStyle(spec string) (Event, error) {
	parts := strings.Split(spec, "+")
	if len(parts) < 2 {
		return Event{}, ErrInvalidSpec
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKeyWithModifiers(strings.TrimSpace(parts[len(parts)-1]), mods)
}

// parseSingle parses a bare character or key name.
func parseSingle(spec string) (Event, error) {
	if k := KeyFromName(spec); k != KeyNone {
		return NewSpecialEvent(k, ModNone), nil
	}

	runes := []rune(spec)
	if len(runes) == 1 {
		return NewRuneEvent(runes[0], ModNone), nil
	}

	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// parseKeyWithModifiers resolves a key part under already-parsed modifiers.
func parseKeyWithModifiers(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	// Runes that need a name because the character is structural.
	switch strings.ToLower(keyPart) {
	case "space":
		return NewRuneEvent(' ', mods), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		// Ctrl combinations are case-insensitive.
		if mods.HasCtrl() {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}
