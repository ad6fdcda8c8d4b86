package app

import (
	"context"
	"io"
	"runtime/debug"
	"sync/atomic"

	"github.com/dshills/arbor/internal/config"
	"github.com/dshills/arbor/internal/content"
	"github.com/dshills/arbor/internal/input"
	"github.com/dshills/arbor/internal/input/keymap"
	"github.com/dshills/arbor/internal/renderer"
	"github.com/dshills/arbor/internal/renderer/backend"
	"github.com/dshills/arbor/internal/renderer/viewport"
	"github.com/dshills/arbor/internal/tree"
	"github.com/dshills/arbor/internal/watch"
)

// Focus identifies the pane whose keymap scope is consulted first.
type Focus int

const (
	// FocusTree routes scoped keys to the tree pane.
	FocusTree Focus = iota

	// FocusViewer routes scoped keys to the content viewer.
	FocusViewer
)

// Scope returns the keymap scope for the focused pane.
func (f Focus) Scope() keymap.Scope {
	if f == FocusViewer {
		return keymap.ScopeViewer
	}
	return keymap.ScopeTree
}

// Options configures the application.
type Options struct {
	// Root is the directory shown in the tree. Empty means the current
	// directory.
	Root string

	// ConfigPath is an explicit configuration file path. Empty falls
	// back to the XDG search.
	ConfigPath string

	// ShowHidden includes dotfiles in the tree, overriding the config.
	ShowHidden bool

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// LogFile overrides the configured log destination when non-empty.
	LogFile string

	// NoWatch disables the filesystem watcher.
	NoWatch bool
}

// Application wires the tree session, content provider, input handler,
// and renderer together and runs the event loop.
//
// All UI state is owned by the event loop goroutine: one blocking event
// read per keystroke drives every mutation and redraw. Auxiliary
// goroutines (signal handler, watcher, context watcher) never touch
// state; they only post events. Lifecycle flags use atomics and nothing
// else needs locking.
type Application struct {
	opts   Options
	config *config.Config

	logger  *Logger
	logSink io.Closer

	backend  backend.Backend
	renderer *renderer.Renderer
	handler  *input.Handler

	session  *tree.Session
	provider *content.Provider
	viewer   *viewport.Viewport
	current  content.Content

	watcher *watch.Watcher
	focus   Focus

	running atomic.Bool
}

// New creates an application for the given options. A root directory
// that cannot be read is fatal; config problems degrade to defaults
// with a logged warning.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config. Load problems fall back to defaults and are reported
	// once the logger exists.
	loader := config.NewLoader()
	cfg, loadErr := loader.Load(loader.Locate(app.opts.ConfigPath))
	validErr := cfg.Validate()
	if app.opts.ShowHidden {
		cfg.UI.ShowHidden = true
	}
	app.config = cfg

	// 2. Logger. The UI owns the terminal, so without a file sink the
	// logs are discarded.
	level := ParseLogLevel(cfg.Log.Level)
	if app.opts.LogLevel != "" {
		level = ParseLogLevel(app.opts.LogLevel)
	}
	logFile := cfg.Log.File
	if app.opts.LogFile != "" {
		logFile = app.opts.LogFile
	}
	if logFile != "" {
		logger, sink, err := NewFileLogger(logFile, level)
		if err != nil {
			return NewInitError("logger", err)
		}
		app.logger = logger
		app.logSink = sink
	} else {
		lcfg := DefaultLoggerConfig()
		lcfg.Level = level
		app.logger = NewLogger(lcfg)
	}
	if loadErr != nil {
		app.LogWarn("config: %v", loadErr)
	}
	if validErr != nil {
		app.LogWarn("config: %v", validErr)
	}

	// 3. Tree session.
	root := app.opts.Root
	if root == "" {
		root = "."
	}
	session, err := tree.NewSession(root, tree.LoadOptions{
		ShowHidden:     cfg.UI.ShowHidden,
		IgnorePatterns: cfg.Tree.Ignore,
		MaxDepth:       cfg.Tree.MaxDepth,
		Warn: func(path string, err error) {
			app.LogWarn("tree: %s: %v", path, err)
		},
	})
	if err != nil {
		return NewInitError("tree", err)
	}
	app.session = session

	// 4. Input.
	registry := keymap.NewRegistry()
	if err := keymap.LoadDefaults(registry); err != nil {
		return NewInitError("keymap", err)
	}
	app.handler = input.NewHandler(registry)

	// 5. Content. The welcome screen shows until the first cursor move.
	app.provider = &content.Provider{
		MaxFileSize: cfg.Viewer.MaxFileSize,
		TabWidth:    cfg.Viewer.TabWidth,
	}
	app.viewer = viewport.New(1, 1)
	app.current = app.provider.Welcome()
	app.viewer.SetLineCount(len(app.current.Lines))

	return nil
}

// SetBackend injects the terminal backend. Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run initializes the backend and blocks in the event loop until the
// quit action fires (ErrQuit), Shutdown posts an interrupt (nil), or
// ctx is canceled (ctx.Err()). The terminal is restored on every exit
// path, panics included.
func (app *Application) Run(ctx context.Context) (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.backend == nil {
		return NewInitError("backend", ErrNotInitialized)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Registered before the Fini defer so the terminal is restored
	// before the panic becomes an error return.
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
			app.LogError("panic: %v", r)
		}
	}()

	if err := app.backend.Init(); err != nil {
		return NewInitError("backend", err)
	}
	defer app.backend.Fini()

	ropts := renderer.DefaultOptions()
	ropts.SidebarPercent = app.config.UI.SidebarPercent
	ropts.ShowIcons = app.config.UI.Icons
	app.renderer = renderer.New(app.backend, ropts)
	app.renderer.SetTreeProvider(&treeView{app: app})
	app.renderer.SetContentProvider(&contentView{app: app})
	app.renderer.SetStatusProvider(&statusView{app: app})
	app.syncPanes()

	if !app.opts.NoWatch {
		app.startWatcher()
		defer app.stopWatcher()
	}

	// Wake the blocking read when the context ends.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
		case <-stop:
		}
	}()

	app.LogInfo("running: root=%s", app.session.Root().Path)
	app.renderer.Render()

	for {
		ev := app.backend.PollEvent()

		switch ev.Type {
		case backend.EventInterrupt:
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			app.LogInfo("interrupt received, shutting down")
			return nil

		case backend.EventKey:
			if err := app.handleKey(ev); err != nil {
				return err
			}

		case backend.EventResize:
			app.handleResize(ev.Width, ev.Height)

		case backend.EventRefresh:
			app.handleRefresh()

		case backend.EventError:
			if ev.Err != nil {
				return WrapError(ev.Err, "backend")
			}
		}

		app.renderer.Render()
	}
}

// handleKey feeds one key event through the handler and dispatches the
// resolved action.
func (app *Application) handleKey(ev backend.Event) error {
	kev, ok := keyEventFrom(ev)
	if !ok {
		return nil
	}

	res := app.handler.Feed(kev, app.focus.Scope())
	switch res.Status {
	case input.StatusMatched:
		app.LogDebug("key %s -> %s", kev.String(), res.Action)
		return app.dispatch(res.Action)
	case input.StatusPending:
		return nil
	default:
		if !kev.IsEscape() {
			app.backend.Beep()
		}
		return nil
	}
}

// handleResize pushes the new dimensions through the renderer and
// re-clamps cursor and scroll to the new pane sizes.
func (app *Application) handleResize(width, height int) {
	app.LogDebug("resize to %dx%d", width, height)
	app.renderer.Resize(width, height)
	app.syncPanes()
}

// handleRefresh reloads the tree after a filesystem change, keeping
// expansion, cursor, and viewer scroll where they were. A failed reload
// keeps the previous tree.
func (app *Application) handleRefresh() {
	top := app.viewer.TopLine()
	if err := app.session.Reload(); err != nil {
		app.logComponentError("tree", NewOperationError("reload", app.session.Root().Path, err))
		return
	}
	app.refreshContent()
	app.viewer.ScrollTo(top)
	app.renderer.MarkDirty()
	app.LogDebug("tree reloaded: %d visible entries", len(app.session.Visible()))
}

// syncPanes pushes the current layout geometry into the tree state and
// the viewer so cursor and scroll stay clamped to what is on screen.
func (app *Application) syncPanes() {
	l := app.renderer.Layout()
	app.session.SetViewport(l.Tree.Height(), app.config.UI.ScrollMargin)
	app.viewer.Resize(l.Viewer.Width(), l.Viewer.Height())
}

// startWatcher begins watching the tree root. Failure is a warning; the
// application simply runs without auto-refresh.
func (app *Application) startWatcher() {
	w, err := watch.New(app.session.Root().Path, app.postRefresh, watch.Config{
		ShowHidden:     app.config.UI.ShowHidden,
		IgnorePatterns: app.config.Tree.Ignore,
		Logger:         app.Logger().WithComponent("watch"),
	})
	if err != nil {
		app.LogWarn("watcher unavailable: %v", err)
		return
	}
	app.watcher = w
}

func (app *Application) stopWatcher() {
	if app.watcher == nil {
		return
	}
	app.logComponentError("watch", app.watcher.Close())
	app.watcher = nil
}

// postRefresh is the watcher callback. It runs on the watcher's timer
// goroutine and only posts; the loop goroutine does the reload.
func (app *Application) postRefresh() {
	app.backend.PostEvent(backend.Event{Type: backend.EventRefresh})
}

// Shutdown wakes a blocked Run so it returns nil. Safe to call from any
// goroutine and more than once; used by the signal handler.
func (app *Application) Shutdown() {
	if !app.running.Load() {
		return
	}
	if app.backend != nil {
		app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
	}
}

// Close releases resources held outside the event loop. Call once Run
// has returned.
func (app *Application) Close() error {
	errs := NewErrorList()
	if app.logSink != nil {
		errs.Add(app.logSink.Close())
		app.logSink = nil
	}
	return errs.AsError()
}

// IsRunning reports whether the event loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Session returns the tree session.
func (app *Application) Session() *tree.Session {
	return app.session
}

// Renderer returns the renderer. Nil before Run.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}
