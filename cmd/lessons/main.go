package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/handiism/lesson-browser/internal/config"
	"github.com/handiism/lesson-browser/internal/logging"
	"github.com/handiism/lesson-browser/internal/model"
	"github.com/handiism/lesson-browser/internal/opener"
	"github.com/handiism/lesson-browser/internal/progress"
	"github.com/handiism/lesson-browser/internal/session"
)

func main() {
	// Command line flags
	var (
		rootFlag     = flag.String("root", "", "Workspace root containing the plans directory (overrides config)")
		configFlag   = flag.String("config", "", "Path to config file (.json, .yaml or .yml)")
		saveDirFlag  = flag.String("save-dir", "", "Custom directory for student_progress.json (overrides config)")
		cdFlag       = flag.String("cd", "", "Folder to list, relative to the plans directory")
		openFlag     = flag.String("open", "", "Lesson to open and mark complete, e.g. plans/Unit1/intro.md")
		completeFlag = flag.String("complete", "", "Lesson to mark complete without opening it")
		statusFlag   = flag.Bool("status", false, "Show completion per unit")
		messageFlag  = flag.String("message", "", `Navigation message as JSON, e.g. {"type":"openFolder","value":"Unit1"}`)
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag   = flag.Bool("dry-run", false, "Record opens instead of launching anything")
	)

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *rootFlag != "" {
		settings.WorkspaceRoot = *rootFlag
	}
	if *saveDirFlag != "" {
		settings.SaveLocation = *saveDirFlag
	}
	if *verboseFlag {
		settings.LogLevel = "debug"
	}

	logger := logging.New(os.Stderr, logging.ParseLevel(settings.LogLevel))

	// Handle interrupts
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var op opener.Opener = opener.NewSystemOpener(settings.OpenCommand, settings.NotebookCommand)
	recorder := &opener.Recorder{}
	if *dryRunFlag {
		op = recorder
	}

	sess := session.New(settings, op, func(event session.Event) {
		if event.Level == session.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case session.LevelError:
			prefix = "❌ "
		case session.LevelWarning:
			prefix = "⚠️  "
		case session.LevelSuccess:
			prefix = "✅ "
		case session.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	}, session.WithLogger(logger))

	if *cdFlag != "" {
		sess.OpenFolder(*cdFlag)
	}

	var (
		view model.View
		err  error
	)
	switch {
	case *statusFlag:
		os.Exit(printStatus(ctx, sess))

	case *completeFlag != "":
		key := model.NormalizeKey(*completeFlag)
		if *dryRunFlag {
			if sess.Store().IsComplete(key) {
				fmt.Printf("[Dry run - %s is already complete]\n", key)
			} else {
				fmt.Printf("[Dry run - would mark %s complete]\n", key)
			}
			return
		}
		changed, err := sess.CompleteLesson(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitCode(err))
		}
		if changed {
			fmt.Printf("✅ Marked %s complete\n", key)
		} else {
			fmt.Printf("   %s was already complete\n", key)
		}
		return

	case *openFlag != "":
		view, err = sess.OpenLesson(ctx, model.NormalizeKey(*openFlag))

	case *messageFlag != "":
		var msg session.Message
		msg, err = session.ParseMessage([]byte(*messageFlag))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		view, err = sess.Handle(ctx, msg)

	default:
		view = sess.View()
	}

	if *dryRunFlag {
		for _, call := range recorder.Calls() {
			kind := "document"
			if call.Notebook {
				kind = "notebook"
			}
			fmt.Printf("[Dry run - would open %s %s]\n", kind, call.Path)
		}
	}

	printView(view)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps session errors to process exit codes. A lesson that opened
// but could not be saved is reported with its own code so scripts can warn
// about an unplugged drive.
func exitCode(err error) int {
	if errors.Is(err, progress.ErrNoSaveLocation) {
		return 3
	}
	return 1
}

func printView(view model.View) {
	fmt.Println("📚 Student Lessons")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if view.Path == "" {
		fmt.Println("plans")
	} else {
		fmt.Println("plans / " + strings.ReplaceAll(view.Path, "/", " / "))
	}
	fmt.Println()

	if view.HasBack {
		fmt.Println("  ⬅ ..")
	}
	if view.State != model.ViewReady {
		fmt.Println("  " + view.State.Placeholder())
		return
	}
	for _, e := range view.Folders() {
		fmt.Printf("  📁 %s\n", e.Name)
	}
	for _, e := range view.Files() {
		mark := "❌"
		if e.Done {
			mark = "✅"
		}
		fmt.Printf("  %s %-40s %s\n", mark, e.Name, e.Key)
	}
	fmt.Println()
	fmt.Printf("%d/%d completed here\n", view.DoneCount(), len(view.Files()))
}

func printStatus(ctx context.Context, sess *session.Session) int {
	summary, err := sess.Summary(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error summarizing plan: %v\n", err)
		return 1
	}

	fmt.Println("📚 Lesson Progress")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if summary.Loose.Lessons > 0 {
		fmt.Printf("  %-30s %3d/%-3d\n", "(plan root)", summary.Loose.Completed, summary.Loose.Lessons)
	}
	for _, unit := range summary.Units {
		fmt.Printf("  %-30s %3d/%-3d\n", unit.Name, unit.Completed, unit.Lessons)
	}
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ %d/%d lessons complete (%.0f%%)\n", summary.Completed, summary.Lessons, summary.Percent()*100)
	return 0
}
