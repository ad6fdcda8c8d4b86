// Package main is the entry point for the arbor file viewer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/arbor/internal/app"
	"github.com/dshills/arbor/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(context.Background()); err != nil {
		// Normal quit via errors.Is for wrapped errors
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.ShowHidden, "show-hidden", false, "Include hidden files in the tree")
	flag.BoolVar(&opts.ShowHidden, "a", false, "Include hidden files in the tree (shorthand)")
	flag.BoolVar(&opts.NoWatch, "no-watch", false, "Disable filesystem change watching")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Log file path (logging disabled when empty)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Arbor - split-pane terminal file viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: arbor [options] [root]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  arbor                       View the current directory\n")
		fmt.Fprintf(os.Stderr, "  arbor ./assets              View a directory\n")
		fmt.Fprintf(os.Stderr, "  arbor -a -log-file a.log    Show dotfiles, log to a file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Arbor %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	// The single positional argument is the root directory.
	if args := flag.Args(); len(args) > 0 {
		if len(args) > 1 {
			fmt.Fprintf(os.Stderr, "Error: expected at most one root directory, got %d arguments\n", len(args))
			os.Exit(1)
		}
		opts.Root = args[0]
	}

	return opts
}
