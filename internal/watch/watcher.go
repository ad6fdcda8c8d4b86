// Package watch delivers debounced change notifications for a directory
// tree. The application binds the callback to a backend refresh event;
// the watcher itself never touches the terminal.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/arbor/internal/tree"
)

// DefaultDebounce is how long changes are allowed to settle before a
// notification fires. Bursts (git checkout, builds) coalesce into one.
const DefaultDebounce = 200 * time.Millisecond

// Logger is the subset of the application logger the watcher uses.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Config configures a Watcher.
type Config struct {
	// ShowHidden also watches hidden directories.
	ShowHidden bool

	// IgnorePatterns filters directory names, using the same patterns
	// the tree loader applies.
	IgnorePatterns []string

	// Debounce is the settle delay before notifying. Zero or negative
	// uses DefaultDebounce.
	Debounce time.Duration

	// Logger receives watcher diagnostics. Nil discards them.
	Logger Logger
}

// Watcher watches a directory tree recursively and invokes a callback
// once changes settle. The callback runs on a watcher-owned goroutine
// and must not block; posting an event to the backend queue is the
// intended use.
type Watcher struct {
	fsw        *fsnotify.Watcher
	root       string
	notify     func()
	debounce   time.Duration
	showHidden bool
	ignore     *tree.IgnoreList
	logger     Logger

	mu      sync.Mutex
	timer   *time.Timer
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New creates a Watcher over root and starts its event loop. Directories
// are watched; fsnotify reports changes to their entries. Subdirectories
// that cannot be watched are logged and skipped.
func New(root string, notify func(), cfg Config) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	w := &Watcher{
		fsw:        fsw,
		root:       absRoot,
		notify:     notify,
		debounce:   debounce,
		showHidden: cfg.ShowHidden,
		ignore:     tree.NewIgnoreList(cfg.IgnorePatterns),
		logger:     logger,
		closeCh:    make(chan struct{}),
	}

	if err := w.fsw.Add(absRoot); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.addSubdirs(absRoot)

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Root returns the watched root directory.
func (w *Watcher) Root() string {
	return w.root
}

// Watched returns the directories currently registered with fsnotify.
func (w *Watcher) Watched() []string {
	return w.fsw.WatchList()
}

// Close stops the watcher and waits for its goroutine to exit.
// Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// loop drains fsnotify until Close.
func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error: %v", err)
		}
	}
}

// handleEvent filters one fsnotify event and schedules a notification.
func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if w.shouldIgnore(ev.Name) {
		return
	}

	w.logger.Debug("fs event: %s %s", ev.Op, ev.Name)

	// New directories must be registered or changes inside them go
	// unseen. MkdirAll can lay down a whole subtree before the Create
	// event arrives, so walk rather than Add the one path.
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			w.addSubdirs(ev.Name)
		}
	}

	w.scheduleNotify()
}

// addSubdirs walks root and registers every directory that passes the
// hidden/ignore filters. Re-adding a watched directory is a no-op.
func (w *Watcher) addSubdirs(root string) {
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && w.shouldIgnore(p) {
			return filepath.SkipDir
		}
		if addErr := w.fsw.Add(p); addErr != nil {
			w.logger.Warn("watch %s: %v", p, addErr)
		}
		return nil
	})
}

// shouldIgnore reports whether events for path are filtered out.
// Hidden and ignored directories are never added to fsnotify, so this
// only needs to test the entry name itself.
func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if !w.showHidden && strings.HasPrefix(base, ".") {
		return true
	}
	return w.ignore.Match(base)
}

// scheduleNotify starts or extends the settle timer.
func (w *Watcher) scheduleNotify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

// fire invokes the callback unless the watcher closed in the meantime.
func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	w.notify()
}
