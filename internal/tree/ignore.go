package tree

import "path/filepath"

// DefaultIgnorePatterns are entry names hidden from the tree regardless
// of the hidden-file setting.
var DefaultIgnorePatterns = []string{
	"__pycache__",
	"*.pyc",
	".git",
}

// IgnoreList matches entry names against a set of glob patterns.
type IgnoreList struct {
	patterns []string
}

// NewIgnoreList creates a matcher for the given patterns. Nil or empty
// input yields a matcher that ignores nothing.
func NewIgnoreList(patterns []string) *IgnoreList {
	return &IgnoreList{patterns: patterns}
}

// Match returns true if the entry name matches any pattern. Patterns use
// filepath.Match syntax; a malformed pattern falls back to an exact
// comparison.
func (il *IgnoreList) Match(name string) bool {
	for _, p := range il.patterns {
		ok, err := filepath.Match(p, name)
		if err != nil {
			if p == name {
				return true
			}
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// Count returns the number of patterns.
func (il *IgnoreList) Count() int {
	return len(il.patterns)
}
