// Dragon's Realm is a single-player tile-map RPG sandbox played in the terminal.
// Usage: dragonsrealm [--version] [--config <file>] [--world <dir>] [--plain] [--script <file>] [--trace] [--no-persist]
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nathoo/dragonsrealm/admin"
	"github.com/nathoo/dragonsrealm/cli"
	"github.com/nathoo/dragonsrealm/config"
	"github.com/nathoo/dragonsrealm/engine"
	"github.com/nathoo/dragonsrealm/loader"
	"github.com/nathoo/dragonsrealm/logger"
	"github.com/nathoo/dragonsrealm/meta"
	"github.com/nathoo/dragonsrealm/tui"
	"github.com/nathoo/dragonsrealm/worlds"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: dragonsrealm [--version] [--config <file>] [--world <dir>] [--plain] [--script <file>] [--trace] [--no-persist]"

type options struct {
	configFile string
	worldDir   string
	scriptFile string
	plain      bool
	trace      bool
	noPersist  bool
}

func main() {
	opts, done, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	if done {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs reads the command line. done is true when the invocation was
// fully served (--version).
func parseArgs(args []string) (opts options, done bool, err error) {
	next := func(i *int, flag string) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		*i++
		return args[*i], nil
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("dragonsrealm %s (commit %s, built %s)\n", version, commit, date)
			return opts, true, nil
		case "--plain":
			opts.plain = true
		case "--trace":
			opts.trace = true
		case "--no-persist":
			opts.noPersist = true
		case "--config":
			if opts.configFile, err = next(&i, "--config"); err != nil {
				return opts, false, err
			}
		case "--world":
			if opts.worldDir, err = next(&i, "--world"); err != nil {
				return opts, false, err
			}
		case "--script":
			if opts.scriptFile, err = next(&i, "--script"); err != nil {
				return opts, false, err
			}
		default:
			return opts, false, fmt.Errorf("unknown argument %q", args[i])
		}
	}
	return opts, false, nil
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	if opts.worldDir != "" {
		cfg.World.Dir = opts.worldDir
	}
	if opts.noPersist {
		cfg.Admin.Backend = "memory"
	}
	cfg.UI.Plain = cfg.UI.Plain || opts.plain
	cfg.UI.Trace = cfg.UI.Trace || opts.trace

	adminDir := cfg.Admin.Dir
	if adminDir == "" {
		adminDir = admin.DefaultDir()
	}
	log, closeLog, err := logger.Setup(cfg.Log, adminDir, version)
	if err != nil {
		return err
	}
	defer closeLog()

	res, err := loadWorld(cfg.World.Dir)
	if err != nil {
		return fmt.Errorf("loading world: %w", err)
	}
	for _, w := range res.Warnings {
		log.Warn("World warning", "warning", w)
	}
	log.Info("World loaded", "title", res.Defs.Game.Title, "rooms", len(res.Defs.Rooms))

	store, closeStore, err := openStore(ctx, cfg.Admin)
	if err != nil {
		return err
	}
	defer closeStore()

	// A load failure is already logged and leaves admin mode off.
	flag, _ := admin.New(ctx, store, log)

	eng := engine.New(res.Defs,
		engine.WithAdmin(flag),
		engine.WithLogger(log),
		engine.WithWalkDuration(cfg.Engine.WalkDuration),
		engine.WithMaxMessageLength(cfg.Engine.MaxMessageLength),
		engine.WithMessageHistory(cfg.Engine.MessageHistory),
	)
	handler := &meta.Handler{Engine: eng, Trace: cfg.UI.Trace}

	// Script mode: read commands from a file and echo them.
	if opts.scriptFile != "" {
		f, err := os.Open(opts.scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		runCLI(ctx, eng, handler, f, true)
		return nil
	}

	if cfg.UI.Plain || !isTerminal() {
		runCLI(ctx, eng, handler, os.Stdin, false)
		return nil
	}
	return tui.Run(ctx, eng, handler)
}

func runCLI(ctx context.Context, eng *engine.Engine, h *meta.Handler, in io.Reader, echo bool) {
	c := cli.New(eng)
	c.Meta = h
	c.In = in
	c.EchoInput = echo
	c.Run(ctx)
}

// loadWorld reads dir, or the embedded world when dir is empty.
func loadWorld(dir string) (*loader.LoadResult, error) {
	if dir == "" {
		return loader.LoadFS(worlds.FS, worlds.Dir)
	}
	return loader.Load(dir)
}

// openStore builds the admin flag store for the configured backend.
func openStore(ctx context.Context, cfg config.AdminConfig) (admin.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case "memory":
		return admin.NewMemoryStore(false), noop, nil
	case "redis":
		rs := admin.NewRedisStore(cfg.RedisAddr, cfg.Key)
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
		}
		slog.Debug("Admin store ready", "backend", "redis", "addr", cfg.RedisAddr)
		return rs, rs.Close, nil
	default:
		return admin.NewFileStore(cfg.Dir, cfg.Key), noop, nil
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
