package opener

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// Opener shows lessons to the student. It is the only way the lesson browser
// reaches outside itself, so the host editor, a desktop launcher, or a test
// double can all sit behind it.
type Opener interface {
	// OpenDocument opens a text document such as a Markdown lesson or a
	// companion script.
	OpenDocument(ctx context.Context, path string) error

	// OpenNotebook opens a notebook lesson.
	OpenNotebook(ctx context.Context, path string) error
}

// SystemOpener launches lessons with external commands.
//
// Commands are split on whitespace and the lesson path is appended as the
// last argument. An empty command uses the platform launcher: xdg-open on
// Linux and BSD, open on macOS, "cmd /c start" on Windows.
//
// Example:
//
//	o := NewSystemOpener("code --reuse-window", "jupyter notebook")
//	err := o.OpenNotebook(ctx, "/work/plans/Unit1/quiz.ipynb")
type SystemOpener struct {
	documentCmd []string
	notebookCmd []string

	// Wait makes the opener wait for the command to exit. Launchers return
	// at once, editors such as vim need the terminal until they exit.
	Wait bool
}

// NewSystemOpener creates a SystemOpener. Either command may be empty.
func NewSystemOpener(documentCmd, notebookCmd string) *SystemOpener {
	return &SystemOpener{
		documentCmd: strings.Fields(documentCmd),
		notebookCmd: strings.Fields(notebookCmd),
	}
}

// OpenDocument implements Opener.
func (o *SystemOpener) OpenDocument(ctx context.Context, path string) error {
	return o.run(ctx, o.documentCmd, path)
}

// OpenNotebook implements Opener. Without a notebook command the document
// command is used.
func (o *SystemOpener) OpenNotebook(ctx context.Context, path string) error {
	cmd := o.notebookCmd
	if len(cmd) == 0 {
		cmd = o.documentCmd
	}
	return o.run(ctx, cmd, path)
}

// command returns the command that would open path.
func (o *SystemOpener) command(ctx context.Context, argv []string, path string) *exec.Cmd {
	if len(argv) == 0 {
		argv = platformLauncher()
	}
	args := append(append([]string{}, argv[1:]...), path)
	return exec.CommandContext(ctx, argv[0], args...)
}

func (o *SystemOpener) run(ctx context.Context, argv []string, path string) error {
	if !o.Wait {
		// A launched viewer outlives the session that opened it.
		ctx = context.WithoutCancel(ctx)
	}
	cmd := o.command(ctx, argv, path)
	if o.Wait {
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("open %s: %w: %s", path, err, strings.TrimSpace(string(out)))
		}
		return nil
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	// Reap the launcher in the background so it does not linger as a zombie.
	go cmd.Wait()
	return nil
}

func platformLauncher() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"cmd", "/c", "start", ""}
	case "darwin":
		return []string{"open"}
	default:
		return []string{"xdg-open"}
	}
}

// Call is one recorded Recorder invocation.
type Call struct {
	Notebook bool
	Path     string
}

// Recorder is an Opener that only records what it was asked to open. It backs
// dry runs and tests. Err, when set, is returned from every call.
type Recorder struct {
	mu    sync.Mutex
	calls []Call

	Err error
}

// OpenDocument implements Opener.
func (r *Recorder) OpenDocument(_ context.Context, path string) error {
	return r.record(Call{Path: path})
}

// OpenNotebook implements Opener.
func (r *Recorder) OpenNotebook(_ context.Context, path string) error {
	return r.record(Call{Notebook: true, Path: path})
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.calls = append(r.calls, c)
	return nil
}
