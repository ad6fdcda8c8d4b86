package config

import (
	"fmt"
	"strings"
)

// Legal ranges enforced by Validate.
const (
	MinSidebarPercent = 10
	MaxSidebarPercent = 80
	MaxScrollMargin   = 20
	MaxTabWidth       = 16
)

// ValidationError describes a single value Validate adjusted.
type ValidationError struct {
	// Path is the dotted TOML path to the value.
	Path string

	// Message describes the adjustment.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors collects the adjustments made by a Validate pass.
type ValidationErrors struct {
	Errors []*ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d config values adjusted: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Add records an adjustment.
func (e *ValidationErrors) Add(path, format string, args ...any) {
	e.Errors = append(e.Errors, &ValidationError{
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	})
}

// AsError returns nil when nothing was adjusted, otherwise self.
func (e *ValidationErrors) AsError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Validate clamps out-of-range values to their nearest legal value and
// returns an error listing every adjustment. The config is usable either
// way; callers log the error as a warning.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}
	def := Default()

	if c.UI.SidebarPercent < MinSidebarPercent || c.UI.SidebarPercent > MaxSidebarPercent {
		clamped := clampInt(c.UI.SidebarPercent, MinSidebarPercent, MaxSidebarPercent)
		errs.Add("ui.sidebar_percent", "%d out of range [%d,%d], using %d",
			c.UI.SidebarPercent, MinSidebarPercent, MaxSidebarPercent, clamped)
		c.UI.SidebarPercent = clamped
	}

	if c.UI.ScrollMargin < 0 || c.UI.ScrollMargin > MaxScrollMargin {
		clamped := clampInt(c.UI.ScrollMargin, 0, MaxScrollMargin)
		errs.Add("ui.scroll_margin", "%d out of range [0,%d], using %d",
			c.UI.ScrollMargin, MaxScrollMargin, clamped)
		c.UI.ScrollMargin = clamped
	}

	if c.Tree.MaxDepth < 1 {
		errs.Add("tree.max_depth", "%d is not positive, using %d", c.Tree.MaxDepth, def.Tree.MaxDepth)
		c.Tree.MaxDepth = def.Tree.MaxDepth
	}

	if c.Viewer.MaxFileSize < 1 {
		errs.Add("viewer.max_file_size", "%d is not positive, using %d",
			c.Viewer.MaxFileSize, def.Viewer.MaxFileSize)
		c.Viewer.MaxFileSize = def.Viewer.MaxFileSize
	}

	if c.Viewer.TabWidth < 1 || c.Viewer.TabWidth > MaxTabWidth {
		clamped := clampInt(c.Viewer.TabWidth, 1, MaxTabWidth)
		errs.Add("viewer.tab_width", "%d out of range [1,%d], using %d",
			c.Viewer.TabWidth, MaxTabWidth, clamped)
		c.Viewer.TabWidth = clamped
	}

	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch level {
	case "debug", "info", "warn", "error":
		c.Log.Level = level
	case "":
		c.Log.Level = def.Log.Level
	default:
		errs.Add("log.level", "unknown level %q, using %q", c.Log.Level, def.Log.Level)
		c.Log.Level = def.Log.Level
	}

	return errs.AsError()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
