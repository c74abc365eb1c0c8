// Package main is the entry point for the linecraft editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/linecraft/internal/app"
	"github.com/dshills/linecraft/internal/config"
	"github.com/dshills/linecraft/internal/display"
	"github.com/dshills/linecraft/internal/fileio"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	logFile    string
	readOnly   bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger, closeLog, err := buildLogger(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	files, err := buildFileService(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize file service: %v\n", err)
		return 1
	}

	term, err := display.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	application, err := app.New(term, files, flag.Args(),
		app.WithConfig(cfg),
		app.WithLogger(logger),
		app.WithReadOnly(opts.readOnly),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Reload configuration when the file changes on disk. The callback
	// runs on the watcher goroutine, so it hands the new config to the
	// app instead of touching shared state.
	if watcher, err := config.NewWatcher(cfgPath, func(next *config.Config) {
		logger.Info("configuration reloaded from %s", cfgPath)
		application.ApplyConfig(next)
	}); err == nil {
		defer watcher.Close()
	}

	// Restore the terminal before dying on a signal.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		term.Fini()
		os.Exit(1)
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// buildLogger writes to the configured log file, or discards logs when no
// file is set since the terminal belongs to the display while running.
func buildLogger(cfg *config.Config, opts options) (*app.Logger, func(), error) {
	logFile := opts.logFile
	if logFile == "" {
		logFile = cfg.Log.File
	}

	logger := app.DefaultLogger()
	logger.SetLevel(app.ParseLogLevel(cfg.Log.Level))

	if logFile == "" {
		logger.SetOutput(io.Discard)
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", logFile, err)
	}
	logger.SetOutput(f)
	return logger, func() { f.Close() }, nil
}

func buildFileService(cfg *config.Config) (fileio.FileService, error) {
	osFS, err := fileio.NewOS(fileio.WithBackup(cfg.Files.AutoBackup))
	if err != nil {
		return nil, err
	}
	return fileio.NewSafe(osFS, cfg.Files.MaxFileSize), nil
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&opts.readOnly, "readonly", false, "Open files in read-only mode")
	flag.BoolVar(&opts.readOnly, "R", false, "Open files in read-only mode (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Linecraft - a modal terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: linecraft [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  linecraft                   Open with an empty document\n")
		fmt.Fprintf(os.Stderr, "  linecraft notes.txt         Open a file\n")
		fmt.Fprintf(os.Stderr, "  linecraft -R notes.txt      Open a file read-only\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("linecraft %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
