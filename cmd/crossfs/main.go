package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/HecaiYuan/crossfs/internal/configuration"
	"github.com/HecaiYuan/crossfs/internal/filesystem"
	"github.com/HecaiYuan/crossfs/internal/io"
	"github.com/HecaiYuan/crossfs/internal/lasterr"
	"github.com/HecaiYuan/crossfs/internal/processors"
	"github.com/HecaiYuan/crossfs/internal/queue"
	"github.com/HecaiYuan/crossfs/internal/schema"
	"github.com/HecaiYuan/crossfs/internal/ui"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const (
	defaultEnvFile = ".crossfs.env"

	terminalLogHandler = "terminal"
	uiLogHandler       = "ui"
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string

	uiEnabled   = flag.Bool("ui", true, "enable the UI")
	startPath   = flag.String("path", "", "path to inspect (overrides the configured root)")
	globPattern = flag.String("glob", "", "report paths matching this pattern below the inspected path")
	longListing = flag.Bool("long", false, "report full metadata per entry")
	envFile     = flag.String("env", "", "additional environment file with configuration overrides")
	cpuprofile  = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile  = flag.String("memprofile", "", "write memory profile to this file")

	slogManager = NewSlogManager()
)

func setupLogging(level slog.Level) {
	slogManager.AddHandler(terminalLogHandler, tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slogManager.RemoveHandler(uiLogHandler)

	slog.SetDefault(slog.New(slogManager))
}

func configFiles() []string {
	files := []string{defaultEnvFile}

	if envFile != nil && *envFile != "" {
		files = append(files, *envFile)
	}

	return files
}

func startApp(ctx context.Context, wg *sync.WaitGroup, app *App) {
	defer wg.Done()

	if app.uiHandler != nil {
		if app.globPattern == "" {
			return
		}

		slog.Info("Waiting for UI...")
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if app.uiHandler.Ready.Load() || app.uiHandler.Failed.Load() {
				break
			}
		}
	}

	if err := app.Launch(ctx); err != nil {
		if msg := lasterr.Default().Message(); msg != "" {
			slog.Error("Last native failure:", "cause", msg)
		}

		ExitCode = 1
	}
}

func startUI(ctx context.Context, wg *sync.WaitGroup, app *App) {
	defer wg.Done()

	if app.uiHandler != nil {
		defer setupLogging(app.cfg.LogLevel)

		slogManager.AddHandler(uiLogHandler, tint.NewHandler(app.uiHandler.LogWriter, &tint.Options{
			Level:      app.cfg.LogLevel,
			TimeFormat: time.Kitchen,
		}))
		slogManager.RemoveHandler(terminalLogHandler)

		if err := app.LaunchUI(); err != nil {
			slog.Error("UI failure: falling back to terminal.", "err", err)
		}
	}
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.Parse()
	setupLogging(slog.LevelInfo)
	setupSignalHandlers(cancel)

	// Piped output gets the report, never the alternate screen.
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		*uiEnabled = false
	}

	memObserver := newMemoryObserver(ctx)
	defer memObserver.Stop()

	cpuProfiler := newCPUProfiler(ctx, cpuprofile)
	defer cpuProfiler.Stop()

	allocProfiler := newAllocProfiler(ctx, memprofile)
	defer allocProfiler.Stop()

	osProvider := &schema.OS{}
	configProvider := &configuration.GodotenvProvider{}

	configHandler := configuration.NewHandler(configProvider)

	cfg, err := configHandler.Load(configFiles()...)
	if err != nil {
		slog.Error("Failed to establish configuration.",
			"err", err,
		)
		ExitCode = 1

		return
	}

	setupLogging(cfg.LogLevel)

	backend := filesystem.NewDefaultBackend(lasterr.Default())
	fsHandler := filesystem.NewHandler(backend)

	ioHandler := io.NewHandler(backend, fsHandler, osProvider)
	ioHandler.CopyBufferSize = cfg.CopyBufferSize

	executor := processors.NewExecutor(ioHandler)
	opQueue := queue.NewOperationQueue()
	runner := newQueueRunner(executor, cfg.Workers)

	root := cfg.Root
	if *startPath != "" {
		root = *startPath
	}

	var uiHandler *ui.Handler
	if uiEnabled != nil && *uiEnabled {
		uiHandler = ui.NewHandler(ctx, cancel, fsHandler, runner, opQueue, root, cfg.ShowHidden)
	}

	var wg sync.WaitGroup
	app := NewApp(cfg, fsHandler, uiHandler, root, *globPattern, *longListing)

	wg.Add(1)
	go startUI(ctx, &wg, app)

	wg.Add(1)
	go startApp(ctx, &wg, app)

	wg.Wait()
}
