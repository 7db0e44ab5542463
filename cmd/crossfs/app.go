package main

import (
	"context"
	"fmt"

	"github.com/HecaiYuan/crossfs/internal/configuration"
	"github.com/HecaiYuan/crossfs/internal/filesystem"
	"github.com/HecaiYuan/crossfs/internal/ui"
)

type App struct {
	cfg       *configuration.Config
	fsHandler *filesystem.Handler
	uiHandler *ui.Handler

	reportPath  string
	globPattern string
	longListing bool
}

func NewApp(cfg *configuration.Config,
	fsHandler *filesystem.Handler,
	uiHandler *ui.Handler,
	reportPath string,
	globPattern string,
	longListing bool,
) *App {
	return &App{
		cfg:         cfg,
		fsHandler:   fsHandler,
		uiHandler:   uiHandler,
		reportPath:  reportPath,
		globPattern: globPattern,
		longListing: longListing,
	}
}

func (app *App) Launch(ctx context.Context) error {
	if app.globPattern != "" {
		if err := app.Glob(ctx); err != nil {
			return fmt.Errorf("(app) %w", err)
		}

		return nil
	}

	if err := app.Report(ctx); err != nil {
		return fmt.Errorf("(app) %w", err)
	}

	return nil
}

func (app *App) LaunchUI() error {
	if err := app.uiHandler.Launch(); err != nil {
		return fmt.Errorf("(app-ui) %w", err)
	}

	return nil
}
