// Package content turns tree nodes into the text shown in the viewer
// pane: file contents with guards for size and binary data, and summary
// listings for directories.
package content

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dshills/arbor/internal/tree"
)

// Limits applied when a Provider field is zero.
const (
	DefaultMaxFileSize = 1 << 20 // 1 MiB
	DefaultTabWidth    = 4
)

// binaryProbeSize is how many leading bytes are inspected for NUL bytes
// and UTF-8 validity.
const binaryProbeSize = 8000

// Content is what the viewer pane displays for a selected node.
type Content struct {
	Title     string
	Lines     []string
	Truncated bool
}

// Provider produces viewer content for tree nodes.
type Provider struct {
	// MaxFileSize caps how many bytes of a file are read. Zero means
	// DefaultMaxFileSize.
	MaxFileSize int64

	// TabWidth is the column width tabs expand to. Zero means
	// DefaultTabWidth.
	TabWidth int
}

// For returns the content for a node. Directories get a summary of their
// direct children; files are read from disk. Read problems are reported
// as the content itself, so the application keeps running.
func (p *Provider) For(n *tree.Node) Content {
	if n == nil {
		return p.Welcome()
	}
	if n.IsDir {
		return p.forDirectory(n)
	}
	return p.forFile(n)
}

// Welcome returns the start screen shown before the first selection.
func (p *Provider) Welcome() Content {
	return Content{
		Title: "Welcome",
		Lines: []string{
			"Welcome to arbor.",
			"",
			"Navigation:",
			"  j / k        move up and down, scroll the viewer",
			"  Enter        open or close a directory, view a file",
			"  Enter        return to the tree (in the viewer)",
			"  l / h        expand a directory, collapse or jump to parent",
			"  z o / z c    expand, collapse",
			"  z M          collapse everything",
			"  g g / G      jump to the top, the bottom",
			"  Ctrl+d/u     half page down, up",
			"  f h / f k    focus the tree, the viewer",
			"  Tab          switch panes",
			"  ~            toggle the sidebar",
			"  q            quit",
		},
	}
}

func (p *Provider) forDirectory(n *tree.Node) Content {
	files, dirs := n.CountChildren()
	return Content{
		Title: n.Name + "/",
		Lines: []string{
			n.Name + "/",
			"",
			"This directory contains:",
			"- " + plural(files, "file", "files"),
			"- " + plural(dirs, "directory", "directories"),
			"",
			"Select a file to view its contents.",
		},
	}
}

func (p *Provider) forFile(n *tree.Node) Content {
	maxSize := p.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	tabWidth := p.TabWidth
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	f, err := os.Open(n.Path)
	if err != nil {
		return errorContent(n, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return errorContent(n, err)
	}

	if isBinary(data) {
		return Content{
			Title: n.Name,
			Lines: []string{fmt.Sprintf("%s is a binary file (%d bytes).", n.Name, n.Size)},
		}
	}

	truncated := int64(len(data)) > maxSize
	if truncated {
		data = trimPartialRune(data[:maxSize])
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1] // final newline is not an extra row
	}
	for i, line := range lines {
		lines[i] = expandTabs(strings.TrimSuffix(line, "\r"), tabWidth)
	}

	if truncated {
		lines = append(lines, "", fmt.Sprintf("[truncated: showing %d of %d bytes]", maxSize, n.Size))
	}

	return Content{Title: n.Name, Lines: lines, Truncated: truncated}
}

func errorContent(n *tree.Node, err error) Content {
	return Content{
		Title: n.Name,
		Lines: []string{fmt.Sprintf("Error reading file: %v", err)},
	}
}

// isBinary reports whether the leading bytes look like binary data: a
// NUL byte or invalid UTF-8 within the probe window.
func isBinary(data []byte) bool {
	probe := data
	if len(probe) > binaryProbeSize {
		probe = probe[:binaryProbeSize]
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return true
	}
	return !validUTF8Prefix(probe)
}

// validUTF8Prefix reports whether data is valid UTF-8, tolerating one
// rune cut short at the end of the window.
func validUTF8Prefix(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return len(data) < utf8.UTFMax
		}
		data = data[size:]
	}
	return true
}

// trimPartialRune drops trailing bytes that do not form a complete rune,
// as happens when the size cap lands mid-rune.
func trimPartialRune(data []byte) []byte {
	for i := 0; i < utf8.UTFMax && len(data) > 0; i++ {
		r, size := utf8.DecodeLastRune(data)
		if r != utf8.RuneError || size != 1 {
			return data
		}
		data = data[:len(data)-1]
	}
	return data
}

// expandTabs replaces tabs with spaces up to the next tab stop. Columns
// are counted in runes, which is exact for the leading indentation tabs
// are used for.
func expandTabs(s string, width int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
