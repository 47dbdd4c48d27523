// Package main implements the main entry point for the iQue video extractor
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/iquedec/internal/cli"
	"github.com/retroenv/iquedec/internal/config"
	"github.com/retroenv/iquedec/internal/fileprocessor"
	"github.com/retroenv/iquedec/internal/layout"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if !errors.As(err, &usageErr) {
			logger.Fatal(err.Error())
		}

		fileprocessor.PrintBanner(logger, opts, version, commit, date)
		if msg := usageErr.Error(); msg != "" {
			logger.Error(msg)
		}
		usageErr.ShowUsage()
		return
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if err := fileprocessor.ProcessFile(ctx, logger, opts, layout.Default()); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Extraction failed", log.Err(err))
		os.Exit(1)
	}

	logger.Info("Done")
}
