// Package core provides shared cell, style, and geometry types for the
// renderer subsystem. This package breaks import cycles between renderer
// and backend.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute represents text attributes (bold, dim, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint/dim text
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	// G and B are ignored in indexed mode.
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack = Color{R: 0, G: 0, B: 0}
	ColorWhite = Color{R: 255, G: 255, B: 255}
	ColorRed   = Color{R: 255, G: 0, B: 0}
	ColorGray  = Color{R: 128, G: 128, B: 128}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Indexed: false}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex creates a color from a hex string ("#RGB" or "#RRGGBB",
// the leading # optional).
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	var digits string
	switch len(hex) {
	case 3:
		digits = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
		digits = hex
	default:
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(digits[0:2], 16, 8)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	g, err := strconv.ParseUint(digits[2:4], 16, 8)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	b, err := strconv.ParseUint(digits[4:6], 16, 8)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}

	return Color{R: uint8(r), G: uint8(g), B: uint8(b), Indexed: false}, nil
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Lighten returns a lighter version of the color.
// Indexed colors are returned unchanged.
func (c Color) Lighten(amount float64) Color {
	if c.Indexed || c.Default {
		return c
	}
	return Color{
		R: uint8(min(255, float64(c.R)+float64(255-c.R)*amount)),
		G: uint8(min(255, float64(c.G)+float64(255-c.G)*amount)),
		B: uint8(min(255, float64(c.B)+float64(255-c.B)*amount)),
	}
}

// Darken returns a darker version of the color.
// Indexed colors are returned unchanged.
func (c Color) Darken(amount float64) Color {
	if c.Indexed || c.Default {
		return c
	}
	return Color{
		R: uint8(float64(c.R) * (1 - amount)),
		G: uint8(float64(c.G) * (1 - amount)),
		B: uint8(float64(c.B) * (1 - amount)),
	}
}
