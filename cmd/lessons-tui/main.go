package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/lesson-browser/internal/config"
	"github.com/handiism/lesson-browser/internal/logging"
	"github.com/handiism/lesson-browser/internal/opener"
	"github.com/handiism/lesson-browser/internal/tui"
)

func main() {
	var (
		rootFlag    = flag.String("root", "", "Workspace root containing the plans directory (overrides config)")
		configFlag  = flag.String("config", "", "Path to config file (.json, .yaml or .yml)")
		saveDirFlag = flag.String("save-dir", "", "Custom directory for student_progress.json (overrides config)")
	)
	flag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *rootFlag != "" {
		settings.WorkspaceRoot = *rootFlag
	}
	if *saveDirFlag != "" {
		settings.SaveLocation = *saveDirFlag
	}

	logger, logFile, err := logging.OpenFile(settings.WorkspaceRoot, logging.ParseLevel(settings.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	op := opener.NewSystemOpener(settings.OpenCommand, settings.NotebookCommand)
	if err := tui.Run(ctx, settings, op, logger); err != nil {
		logFile.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
