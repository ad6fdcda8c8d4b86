package tree

import "testing"

func TestIgnoreListMatch(t *testing.T) {
	il := NewIgnoreList([]string{"__pycache__", "*.pyc", ".git"})

	tests := []struct {
		name string
		want bool
	}{
		{"__pycache__", true},
		{"module.pyc", true},
		{".git", true},
		{".gitignore", false},
		{"pyc", false},
		{"main.py", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := il.Match(tt.name); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIgnoreListEmpty(t *testing.T) {
	il := NewIgnoreList(nil)
	if il.Match("anything") {
		t.Error("empty list should match nothing")
	}
	if il.Count() != 0 {
		t.Errorf("Count() = %d, want 0", il.Count())
	}
}

func TestIgnoreListMalformedPattern(t *testing.T) {
	// "[" is not valid filepath.Match syntax; it should fall back to an
	// exact comparison instead of matching everything or panicking.
	il := NewIgnoreList([]string{"["})

	if !il.Match("[") {
		t.Error("malformed pattern should still match itself exactly")
	}
	if il.Match("x") {
		t.Error("malformed pattern should not match other names")
	}
}

func TestDefaultIgnorePatterns(t *testing.T) {
	il := NewIgnoreList(DefaultIgnorePatterns)

	for _, name := range []string{"__pycache__", "cache.pyc", ".git"} {
		if !il.Match(name) {
			t.Errorf("defaults should ignore %q", name)
		}
	}
	if il.Match("main.go") {
		t.Error("defaults should not ignore main.go")
	}
}
