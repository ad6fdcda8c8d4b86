package tree

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll(%s) error = %v", path, err)
	}
}

func childNames(n *Node) []string {
	names := make([]string, 0, len(n.Children()))
	for _, c := range n.Children() {
		names = append(names, c.Name)
	}
	return names
}

func TestLoadSortsDirsFirstThenFolded(t *testing.T) {
	dir := t.TempDir()
	mkdir(t, filepath.Join(dir, "zeta"))
	mkdir(t, filepath.Join(dir, "Echo"))
	writeFile(t, filepath.Join(dir, "beta.txt"), "b")
	writeFile(t, filepath.Join(dir, "Alpha.txt"), "a")

	root, err := Load(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"Echo", "zeta", "Alpha.txt", "beta.txt"}
	got := childNames(root)
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}
}

func TestLoadSkipsHiddenByDefault(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".hidden"), "x")
	writeFile(t, filepath.Join(dir, "shown.txt"), "x")

	root, err := Load(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got := childNames(root)
	if len(got) != 1 || got[0] != "shown.txt" {
		t.Errorf("children = %v, want [shown.txt]", got)
	}

	root, err = Load(dir, LoadOptions{ShowHidden: true})
	if err != nil {
		t.Fatalf("Load(ShowHidden) error = %v", err)
	}
	if got := childNames(root); len(got) != 2 {
		t.Errorf("children with ShowHidden = %v, want 2 entries", got)
	}
}

func TestLoadAppliesIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	mkdir(t, filepath.Join(dir, "__pycache__"))
	writeFile(t, filepath.Join(dir, "mod.pyc"), "x")
	writeFile(t, filepath.Join(dir, "mod.py"), "x")

	root, err := Load(dir, LoadOptions{IgnorePatterns: DefaultIgnorePatterns})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got := childNames(root)
	if len(got) != 1 || got[0] != "mod.py" {
		t.Errorf("children = %v, want [mod.py]", got)
	}
}

func TestLoadSetsFileSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "five.txt"), "12345")
	mkdir(t, filepath.Join(dir, "sub"))

	root, err := Load(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, c := range root.Children() {
		switch c.Name {
		case "five.txt":
			if c.Size != 5 {
				t.Errorf("five.txt Size = %d, want 5", c.Size)
			}
			if c.IsDir {
				t.Error("five.txt IsDir = true, want false")
			}
		case "sub":
			if !c.IsDir {
				t.Error("sub IsDir = false, want true")
			}
			if c.Size != 0 {
				t.Errorf("sub Size = %d, want 0", c.Size)
			}
		}
	}
}

func TestLoadMaxDepth(t *testing.T) {
	dir := t.TempDir()
	mkdir(t, filepath.Join(dir, "a", "b", "c"))

	root, err := Load(dir, LoadOptions{MaxDepth: 2})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	a := root.Children()[0]
	if a.Name != "a" || !a.HasChildren() {
		t.Fatalf("depth 1 dir %q should be loaded", a.Name)
	}
	b := a.Children()[0]
	if b.Name != "b" {
		t.Fatalf("depth 2 child = %q, want b", b.Name)
	}
	if b.HasChildren() {
		t.Error("depth 3 children should stay unloaded at MaxDepth 2")
	}
	if !b.IsDir {
		t.Error("unloaded directory should still report IsDir")
	}
}

func TestLoadRejectsNonDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	writeFile(t, file, "x")

	if _, err := Load(file, LoadOptions{}); err == nil {
		t.Error("Load(file) error = nil, want error")
	}
}

func TestLoadMissingRoot(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope"), LoadOptions{}); err == nil {
		t.Error("Load(missing) error = nil, want error")
	}
}

func TestLoadEmptyRoot(t *testing.T) {
	root, err := Load(t.TempDir(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if root.HasChildren() {
		t.Errorf("children = %v, want none", childNames(root))
	}
	if !root.IsDir {
		t.Error("root IsDir = false, want true")
	}
}

func TestNodeCountChildren(t *testing.T) {
	dir := t.TempDir()
	mkdir(t, filepath.Join(dir, "d1"))
	mkdir(t, filepath.Join(dir, "d2"))
	writeFile(t, filepath.Join(dir, "f1"), "x")

	root, err := Load(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	files, dirs := root.CountChildren()
	if files != 1 || dirs != 2 {
		t.Errorf("CountChildren() = %d files, %d dirs, want 1, 2", files, dirs)
	}
}
