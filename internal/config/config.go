// Package config loads and validates arbor's TOML configuration.
//
// Configuration is optional: a missing file yields the defaults, and a
// malformed one is reported but never fatal. Validate clamps values into
// their legal ranges so the rest of the application can trust them.
package config

import (
	"github.com/dshills/arbor/internal/content"
	"github.com/dshills/arbor/internal/tree"
)

// Config is the full application configuration.
type Config struct {
	UI     UIConfig     `toml:"ui"`
	Tree   TreeConfig   `toml:"tree"`
	Viewer ViewerConfig `toml:"viewer"`
	Log    LogConfig    `toml:"log"`
}

// UIConfig controls the layout.
type UIConfig struct {
	// SidebarPercent is the share of columns given to the tree pane.
	SidebarPercent int `toml:"sidebar_percent"`

	// ShowHidden includes dotfiles in the tree.
	ShowHidden bool `toml:"show_hidden"`

	// Icons draws type icons in front of tree entries.
	Icons bool `toml:"icons"`

	// ScrollMargin is the number of rows kept visible around the tree
	// cursor.
	ScrollMargin int `toml:"scroll_margin"`
}

// TreeConfig controls directory loading.
type TreeConfig struct {
	// Ignore lists entry names to skip, in filepath.Match syntax.
	Ignore []string `toml:"ignore"`

	// MaxDepth bounds tree recursion.
	MaxDepth int `toml:"max_depth"`
}

// ViewerConfig controls content display.
type ViewerConfig struct {
	// MaxFileSize is the number of bytes read before truncating.
	MaxFileSize int64 `toml:"max_file_size"`

	// TabWidth is the column width tabs expand to.
	TabWidth int `toml:"tab_width"`
}

// LogConfig controls the log sink.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// File is the log destination. Empty disables logging entirely; the
	// UI owns the terminal, so there is no stderr fallback.
	File string `toml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			SidebarPercent: 30,
			ShowHidden:     false,
			Icons:          true,
			ScrollMargin:   2,
		},
		Tree: TreeConfig{
			Ignore:   append([]string(nil), tree.DefaultIgnorePatterns...),
			MaxDepth: tree.DefaultMaxDepth,
		},
		Viewer: ViewerConfig{
			MaxFileSize: content.DefaultMaxFileSize,
			TabWidth:    content.DefaultTabWidth,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
