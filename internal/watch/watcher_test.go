package watch

import (
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dshills/arbor/internal/tree"
)

func newTestWatcher(t *testing.T, root string, cfg Config) (*Watcher, chan struct{}) {
	t.Helper()

	notified := make(chan struct{}, 64)
	notify := func() {
		select {
		case notified <- struct{}{}:
		default:
		}
	}

	w, err := New(root, notify, cfg)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })

	return w, notified
}

func waitNotify(ch chan struct{}, timeout time.Duration) bool {
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

func drainNotify(ch chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func TestNew_WatchesTree(t *testing.T) {
	tmpDir := t.TempDir()

	sub1 := filepath.Join(tmpDir, "sub1")
	sub2 := filepath.Join(sub1, "sub2")
	hidden := filepath.Join(tmpDir, ".git")
	ignored := filepath.Join(tmpDir, "__pycache__")
	for _, dir := range []string{sub2, hidden, ignored} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("MkdirAll error = %v", err)
		}
	}

	w, _ := newTestWatcher(t, tmpDir, Config{
		IgnorePatterns: tree.DefaultIgnorePatterns,
	})

	watched := w.Watched()
	for _, want := range []string{tmpDir, sub1, sub2} {
		if !slices.Contains(watched, want) {
			t.Errorf("expected %s in watched list %v", want, watched)
		}
	}
	for _, skip := range []string{hidden, ignored} {
		if slices.Contains(watched, skip) {
			t.Errorf("expected %s to be filtered from watched list", skip)
		}
	}
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New("/nonexistent/path/that/does/not/exist", func() {}, Config{})
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	tmpDir := t.TempDir()
	_, notified := newTestWatcher(t, tmpDir, Config{Debounce: 50 * time.Millisecond})

	testFile := filepath.Join(tmpDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	if !waitNotify(notified, 2*time.Second) {
		t.Error("timeout waiting for notification")
	}
}

func TestWatcher_CoalescesBurst(t *testing.T) {
	tmpDir := t.TempDir()

	var count atomic.Int32
	fired := make(chan struct{}, 64)
	notify := func() {
		count.Add(1)
		select {
		case fired <- struct{}{}:
		default:
		}
	}

	w, err := New(tmpDir, notify, Config{Debounce: 150 * time.Millisecond})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		name := filepath.Join(tmpDir, "file"+string(rune('a'+i))+".txt")
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile error = %v", err)
		}
	}

	if !waitNotify(fired, 2*time.Second) {
		t.Fatal("timeout waiting for notification")
	}

	// Let any stragglers fire before counting.
	time.Sleep(400 * time.Millisecond)

	if got := count.Load(); got != 1 {
		t.Errorf("notification count = %d, want 1", got)
	}
}

func TestWatcher_AutoWatchesNewDirs(t *testing.T) {
	tmpDir := t.TempDir()
	w, notified := newTestWatcher(t, tmpDir, Config{Debounce: 50 * time.Millisecond})

	newSub := filepath.Join(tmpDir, "newsub")
	if err := os.Mkdir(newSub, 0755); err != nil {
		t.Fatalf("Mkdir error = %v", err)
	}

	// Wait for the new directory to be registered.
	deadline := time.Now().Add(2 * time.Second)
	for !slices.Contains(w.Watched(), newSub) {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for %s to be watched, have %v", newSub, w.Watched())
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Clear the mkdir's own notification, then change inside the new dir.
	time.Sleep(200 * time.Millisecond)
	drainNotify(notified)

	inner := filepath.Join(newSub, "inner.txt")
	if err := os.WriteFile(inner, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	if !waitNotify(notified, 2*time.Second) {
		t.Error("timeout waiting for notification from new subdirectory")
	}
}

func TestWatcher_IgnoresHiddenChanges(t *testing.T) {
	tmpDir := t.TempDir()
	_, notified := newTestWatcher(t, tmpDir, Config{Debounce: 50 * time.Millisecond})

	hidden := filepath.Join(tmpDir, ".cache")
	if err := os.Mkdir(hidden, 0755); err != nil {
		t.Fatalf("Mkdir error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(hidden, "blob"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	if waitNotify(notified, 400*time.Millisecond) {
		t.Error("expected no notification for hidden directory changes")
	}
}

func TestWatcher_ShowHidden(t *testing.T) {
	tmpDir := t.TempDir()
	_, notified := newTestWatcher(t, tmpDir, Config{
		ShowHidden: true,
		Debounce:   50 * time.Millisecond,
	})

	if err := os.Mkdir(filepath.Join(tmpDir, ".cache"), 0755); err != nil {
		t.Fatalf("Mkdir error = %v", err)
	}

	if !waitNotify(notified, 2*time.Second) {
		t.Error("expected notification for hidden directory when ShowHidden is set")
	}
}

func TestWatcher_Close(t *testing.T) {
	tmpDir := t.TempDir()
	w, err := New(tmpDir, func() {}, Config{})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close again error = %v", err)
	}
}

func TestWatcher_Root(t *testing.T) {
	tmpDir := t.TempDir()
	w, _ := newTestWatcher(t, tmpDir, Config{})

	if w.Root() != tmpDir {
		t.Errorf("Root() = %s, want %s", w.Root(), tmpDir)
	}
}

func TestWatcher_ShouldIgnore(t *testing.T) {
	w := &Watcher{
		showHidden: false,
		ignore:     tree.NewIgnoreList([]string{"__pycache__", "*.pyc"}),
		logger:     nopLogger{},
	}

	tests := []struct {
		path     string
		expected bool
	}{
		{"/root/src", false},
		{"/root/.git", true},
		{"/root/__pycache__", true},
		{"/root/mod.pyc", true},
		{"/root/main.py", false},
	}

	for _, tt := range tests {
		if got := w.shouldIgnore(tt.path); got != tt.expected {
			t.Errorf("shouldIgnore(%q) = %v, want %v", tt.path, got, tt.expected)
		}
	}

	w.showHidden = true
	if w.shouldIgnore("/root/.git") {
		t.Error("expected hidden paths to pass when showHidden is set")
	}
}
