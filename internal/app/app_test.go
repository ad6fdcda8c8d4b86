package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/arbor/internal/renderer/backend"
)

// newTestRoot builds a small directory tree to view.
func newTestRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "alpha.txt"), []byte("first line\nsecond line\n"), 0o644); err != nil {
		t.Fatalf("write alpha.txt: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "beta.txt"), []byte("beta content\n"), 0o644); err != nil {
		t.Fatalf("write beta.txt: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir sub: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "nested.txt"), []byte("nested\n"), 0o644); err != nil {
		t.Fatalf("write nested.txt: %v", err)
	}

	return dir
}

func newTestApp(t *testing.T) (*Application, *backend.NullBackend) {
	t.Helper()

	app, err := New(Options{Root: newTestRoot(t), NoWatch: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	nb := backend.NewNullBackend(80, 24)
	if err := app.SetBackend(nb); err != nil {
		t.Fatalf("SetBackend() failed: %v", err)
	}

	return app, nb
}

// runApp starts Run on its own goroutine and returns the result channel.
func runApp(app *Application) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- app.Run(context.Background())
	}()
	return done
}

func waitForExit(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return")
		return nil
	}
}

func TestNewApplication(t *testing.T) {
	app, err := New(Options{Root: newTestRoot(t), NoWatch: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Close()

	if app.Config() == nil {
		t.Error("expected config to be initialized")
	}
	if app.Session() == nil {
		t.Error("expected tree session to be initialized")
	}
	if app.handler == nil {
		t.Error("expected input handler to be initialized")
	}
	if app.provider == nil {
		t.Error("expected content provider to be initialized")
	}
	if app.viewer == nil {
		t.Error("expected viewport to be initialized")
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}

	// The welcome screen shows until the first cursor move.
	if app.current.Title != "Welcome" {
		t.Errorf("initial content = %q, want Welcome", app.current.Title)
	}
}

func TestNewApplication_MissingRoot(t *testing.T) {
	_, err := New(Options{Root: filepath.Join(t.TempDir(), "does-not-exist"), NoWatch: true})
	if err == nil {
		t.Fatal("expected error for missing root directory")
	}

	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected *InitError, got %T", err)
	}
	if initErr.Component != "tree" {
		t.Errorf("InitError.Component = %q, want tree", initErr.Component)
	}
}

func TestApplication_IsRunning(t *testing.T) {
	app, _ := newTestApp(t)
	defer app.Close()

	if app.IsRunning() {
		t.Error("expected IsRunning() to be false before Run()")
	}
}

func TestApplication_ShutdownIdempotent(t *testing.T) {
	app, _ := newTestApp(t)
	defer app.Close()

	// Safe to call any number of times, running or not.
	app.Shutdown()
	app.Shutdown()
	app.Shutdown()
}

func TestApplication_RunWithoutBackend(t *testing.T) {
	app, err := New(Options{Root: newTestRoot(t), NoWatch: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Close()

	err = app.Run(context.Background())
	if err == nil {
		t.Fatal("expected Run() without a backend to fail")
	}
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestApplication_QuitKey(t *testing.T) {
	app, nb := newTestApp(t)
	defer app.Close()

	done := runApp(app)
	nb.PostKey('q')

	err := waitForExit(t, done)
	if !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
	if nb.FiniCount() != 1 {
		t.Errorf("Fini called %d times, want 1", nb.FiniCount())
	}
	if app.IsRunning() {
		t.Error("expected IsRunning() to be false after Run()")
	}
}

func TestApplication_ShutdownWakesRun(t *testing.T) {
	app, nb := newTestApp(t)
	defer app.Close()

	done := runApp(app)

	// Wait until the loop is live, then ask it to stop.
	for i := 0; i < 100 && !app.IsRunning(); i++ {
		time.Sleep(time.Millisecond)
	}
	app.Shutdown()

	if err := waitForExit(t, done); err != nil {
		t.Errorf("expected nil from Shutdown-driven exit, got %v", err)
	}
	if nb.FiniCount() != 1 {
		t.Errorf("Fini called %d times, want 1", nb.FiniCount())
	}
}

func TestApplication_ContextCancel(t *testing.T) {
	app, _ := newTestApp(t)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	for i := 0; i < 100 && !app.IsRunning(); i++ {
		time.Sleep(time.Millisecond)
	}
	cancel()

	if err := waitForExit(t, done); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestApplication_SetBackendWhileRunning(t *testing.T) {
	app, nb := newTestApp(t)
	defer app.Close()

	done := runApp(app)
	for i := 0; i < 100 && !app.IsRunning(); i++ {
		time.Sleep(time.Millisecond)
	}

	if err := app.SetBackend(backend.NewNullBackend(10, 10)); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}

	nb.PostKey('q')
	waitForExit(t, done)
}

func TestApplication_SelectionFollowsCursor(t *testing.T) {
	app, nb := newTestApp(t)
	defer app.Close()

	done := runApp(app)

	// Root row, then "sub" (directories sort first), then alpha.txt.
	nb.PostKey('j')
	nb.PostKey('j')
	nb.PostKey('q')
	waitForExit(t, done)

	if app.current.Title != "alpha.txt" {
		t.Errorf("viewer shows %q, want alpha.txt", app.current.Title)
	}
	if len(app.current.Lines) != 2 || app.current.Lines[0] != "first line" {
		t.Errorf("unexpected content lines: %q", app.current.Lines)
	}
}

func TestApplication_EnterTogglesDirectory(t *testing.T) {
	app, nb := newTestApp(t)
	defer app.Close()

	done := runApp(app)

	// Cursor to "sub", expand it, then quit.
	nb.PostKey('j')
	nb.PostSpecial(backend.KeyEnter)
	nb.PostKey('q')
	waitForExit(t, done)

	visible := app.Session().Visible()
	var names []string
	for _, n := range visible {
		names = append(names, n.Name)
	}
	found := false
	for _, name := range names {
		if name == "nested.txt" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected nested.txt to be visible after expand, got %v", names)
	}
}

func TestApplication_EnterOnFileFocusesViewer(t *testing.T) {
	app, nb := newTestApp(t)
	defer app.Close()

	done := runApp(app)

	// Cursor to alpha.txt, Enter to focus the viewer, Enter again to
	// come back.
	nb.PostKey('j')
	nb.PostKey('j')
	nb.PostSpecial(backend.KeyEnter)
	nb.PostKey('q')
	waitForExit(t, done)

	if app.focus != FocusViewer {
		t.Errorf("focus = %v, want FocusViewer", app.focus)
	}
}

func TestApplication_UnknownKeyBeeps(t *testing.T) {
	app, nb := newTestApp(t)
	defer app.Close()

	done := runApp(app)
	nb.PostKey('x') // bound to nothing
	nb.PostKey('q')
	waitForExit(t, done)

	if nb.BeepCount() != 1 {
		t.Errorf("Beep called %d times, want 1", nb.BeepCount())
	}
}

func TestApplication_RefreshReloadsTree(t *testing.T) {
	root := newTestRoot(t)
	app, err := New(Options{Root: root, NoWatch: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Close()

	nb := backend.NewNullBackend(80, 24)
	if err := app.SetBackend(nb); err != nil {
		t.Fatalf("SetBackend() failed: %v", err)
	}

	before := len(app.Session().Visible())

	if err := os.WriteFile(filepath.Join(root, "gamma.txt"), []byte("new\n"), 0o644); err != nil {
		t.Fatalf("write gamma.txt: %v", err)
	}

	done := runApp(app)
	nb.PostEvent(backend.Event{Type: backend.EventRefresh})
	nb.PostKey('q')
	waitForExit(t, done)

	if got := len(app.Session().Visible()); got != before+1 {
		t.Errorf("visible entries after refresh = %d, want %d", got, before+1)
	}
}

func TestApplication_ResizeKeepsCursorVisible(t *testing.T) {
	app, nb := newTestApp(t)
	defer app.Close()

	done := runApp(app)

	nb.Resize(40, 6)
	nb.PostEvent(backend.Event{Type: backend.EventResize, Width: 40, Height: 6})
	nb.PostKey('G') // jump to the last entry
	nb.PostKey('q')
	waitForExit(t, done)

	st := app.Session().State()
	visible := len(app.Session().Visible())
	if st.Cursor != visible-1 {
		t.Errorf("cursor = %d, want %d", st.Cursor, visible-1)
	}
	if st.Cursor < st.Scroll {
		t.Errorf("cursor %d scrolled off screen (scroll %d)", st.Cursor, st.Scroll)
	}
}

func TestApplication_RendersFrame(t *testing.T) {
	app, nb := newTestApp(t)
	defer app.Close()

	done := runApp(app)
	nb.PostKey('q')
	waitForExit(t, done)

	header := nb.RowString(0)
	if !strings.Contains(header, "arbor") {
		t.Errorf("header row %q does not mention arbor", header)
	}

	var body strings.Builder
	for y := 1; y < 23; y++ {
		body.WriteString(nb.RowString(y))
		body.WriteByte('\n')
	}
	if !strings.Contains(body.String(), "alpha.txt") {
		t.Errorf("frame does not show the tree:\n%s", body.String())
	}
}

func TestApplication_RunTwice(t *testing.T) {
	app, nb := newTestApp(t)
	defer app.Close()

	done := runApp(app)
	for i := 0; i < 100 && !app.IsRunning(); i++ {
		time.Sleep(time.Millisecond)
	}

	if err := app.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning from second Run(), got %v", err)
	}

	nb.PostKey('q')
	waitForExit(t, done)
}
