package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxDepth bounds tree recursion when LoadOptions does not set one.
const DefaultMaxDepth = 32

// LoadOptions control the directory walk.
type LoadOptions struct {
	// ShowHidden includes dotfile entries in the tree.
	ShowHidden bool

	// IgnorePatterns are entry names to skip, in filepath.Match syntax.
	IgnorePatterns []string

	// MaxDepth bounds recursion; directories below it stay unloaded.
	// Zero means DefaultMaxDepth.
	MaxDepth int

	// Warn receives non-fatal problems found during the walk, such as an
	// unreadable subdirectory. May be nil.
	Warn func(path string, err error)
}

// Load walks the directory rooted at root and returns its tree. Hidden
// entries are skipped unless ShowHidden is set, ignored names are always
// skipped, and children are sorted directories-first then
// case-insensitively by name. An unreadable subdirectory becomes a
// childless node rather than failing the whole walk.
func Load(root string, opts LoadOptions) (*Node, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	l := &loader{
		ignore:     NewIgnoreList(opts.IgnorePatterns),
		showHidden: opts.ShowHidden,
		maxDepth:   maxDepth,
		warn:       opts.Warn,
	}

	node := &Node{
		Name:  filepath.Base(abs),
		Path:  abs,
		IsDir: true,
	}
	l.loadChildren(node, 1)
	return node, nil
}

// loader carries the walk settings through the recursion.
type loader struct {
	ignore     *IgnoreList
	showHidden bool
	maxDepth   int
	warn       func(path string, err error)
}

func (l *loader) loadChildren(parent *Node, depth int) {
	if depth > l.maxDepth {
		return
	}

	entries, err := os.ReadDir(parent.Path)
	if err != nil {
		l.warnf(parent.Path, err)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !l.showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if l.ignore.Match(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue // entry vanished between ReadDir and Info
		}

		child := &Node{
			Name:  name,
			Path:  filepath.Join(parent.Path, name),
			IsDir: entry.IsDir(),
		}
		if !child.IsDir {
			child.Size = info.Size()
		}
		parent.AddChild(child)

		if child.IsDir {
			l.loadChildren(child, depth+1)
		}
	}

	sortChildren(parent.children)
}

func (l *loader) warnf(path string, err error) {
	if l.warn != nil {
		l.warn(path, err)
	}
}

// sortChildren orders directories before files, then case-insensitively
// by name. Names equal under folding fall back to a byte comparison so
// the order stays deterministic.
func sortChildren(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].IsDir != nodes[j].IsDir {
			return nodes[i].IsDir
		}
		ni, nj := strings.ToLower(nodes[i].Name), strings.ToLower(nodes[j].Name)
		if ni != nj {
			return ni < nj
		}
		return nodes[i].Name < nodes[j].Name
	})
}
