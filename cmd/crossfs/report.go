package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/HecaiYuan/crossfs/internal/pathing"
	"github.com/HecaiYuan/crossfs/internal/schema"
	"github.com/dustin/go-humanize"
)

// Report lists the inspected directory on the log output, one record per
// entry. With the long listing enabled, every entry is also stat'ed for its
// full portable metadata.
func (app *App) Report(ctx context.Context) error {
	slog.Info("Listing directory:",
		"path", displayPath(app.reportPath),
	)

	var names []string

	if err := app.fsHandler.Enumerate(ctx, app.reportPath, func(dir, name string) schema.EnumerationResult {
		if !app.cfg.ShowHidden && len(name) > 0 && name[0] == '.' {
			return schema.EnumContinue
		}

		names = append(names, name)

		return schema.EnumContinue
	}); err != nil {
		return fmt.Errorf("(app-report) %w", err)
	}

	for _, name := range names {
		if app.longListing {
			app.reportEntry(name)
		} else {
			slog.Info("Entry:",
				"name", name,
			)
		}
	}

	slog.Info("Listing directory done:",
		"path", displayPath(app.reportPath),
		"entries", len(names),
	)

	return nil
}

// Glob reports every path below the inspected directory that matches the
// requested pattern.
func (app *App) Glob(ctx context.Context) error {
	slog.Info("Matching pattern:",
		"path", displayPath(app.reportPath),
		"pattern", app.globPattern,
	)

	matches, err := app.fsHandler.Glob(ctx, app.reportPath, app.globPattern)
	if err != nil {
		return fmt.Errorf("(app-glob) %w", err)
	}

	for _, match := range matches {
		if app.longListing {
			app.reportEntry(match)
		} else {
			slog.Info("Match:",
				"path", match,
			)
		}
	}

	slog.Info("Matching pattern done:",
		"pattern", app.globPattern,
		"matches", len(matches),
	)

	return nil
}

func (app *App) reportEntry(name string) {
	path := pathing.Child(app.reportPath, name)

	info, err := app.fsHandler.GetPathInfo(path)
	if err != nil {
		slog.Warn("Skipped entry metadata due to failure:",
			"err", err,
			"path", path,
		)

		return
	}

	slog.Info("Entry:",
		"name", name,
		"type", info.Type.String(),
		"size", humanize.Bytes(info.Size),
		"modified", reportTime(info.ModifyTime),
		"created", reportTime(info.CreateTime),
		"accessed", reportTime(info.AccessTime),
	)
}

// reportTime renders a Unix-seconds timestamp, with the zero value standing
// for a time the platform did not record.
func reportTime(unixSeconds int64) string {
	if unixSeconds == 0 {
		return "unrecorded"
	}

	return time.Unix(unixSeconds, 0).UTC().Format(time.RFC3339)
}

func displayPath(path string) string {
	if path == "" {
		return "(roots)"
	}

	return path
}
