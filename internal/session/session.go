package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/handiism/lesson-browser/internal/config"
	ioutils "github.com/handiism/lesson-browser/internal/io"
	"github.com/handiism/lesson-browser/internal/model"
	"github.com/handiism/lesson-browser/internal/notebook"
	"github.com/handiism/lesson-browser/internal/opener"
	"github.com/handiism/lesson-browser/internal/plan"
	"github.com/handiism/lesson-browser/internal/progress"
)

// ErrOutsidePlan is returned when a lesson key does not point below the plan
// root.
var ErrOutsidePlan = errors.New("lesson is outside the plan root")

// ErrLessonNotFound is returned when a lesson key does not name an existing
// lesson file.
var ErrLessonNotFound = errors.New("lesson file not found")

// Level indicates the severity/type of an event.
type Level int

const (
	LevelInfo Level = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// Event is a user-facing message produced by the session.
type Event struct {
	Message string
	Level   Level
}

// Session coordinates the navigation cursor, the plan listing, the progress
// store and the document opener for one student.
//
// The cursor starts at the plan root and is never persisted; a new Session
// always starts at the root.
type Session struct {
	settings   *config.Settings
	lister     *plan.Lister
	tree       *plan.Tree
	summarizer *plan.Summarizer
	store      *progress.Store
	opener     opener.Opener
	locker     *notebook.Locker
	logger     *slog.Logger

	onEvent func(Event)

	mu     sync.Mutex
	cursor model.Cursor
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used by the session and its progress store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Session. onEvent may be nil.
func New(settings *config.Settings, op opener.Opener, onEvent func(Event), opts ...Option) *Session {
	s := &Session{
		settings: settings,
		opener:   op,
		locker:   notebook.NewLocker(),
		logger:   slog.Default(),
		onEvent:  onEvent,
	}
	for _, opt := range opts {
		opt(s)
	}

	root := settings.PlanRoot()
	s.lister = plan.NewLister(settings.ToListerConfig())
	s.tree = plan.NewTree(root, s.lister)
	s.summarizer = plan.NewSummarizer(root, settings.PlanKey(), s.lister, settings.SummaryConcurrency)

	storeOpts := settings.ToStoreOptions()
	storeOpts.Logger = s.logger
	s.store = progress.NewStore(settings.WorkspaceRoot, storeOpts)

	return s
}

// Store returns the progress store.
func (s *Session) Store() *progress.Store {
	return s.store
}

// Tree returns the plan tree for the tree menu.
func (s *Session) Tree() *plan.Tree {
	return s.tree
}

// Cursor returns the current cursor path.
func (s *Session) Cursor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Path()
}

// KeyFor returns the completion key of a path relative to the plan root.
func (s *Session) KeyFor(rel string) model.Key {
	return model.JoinKey(string(s.settings.PlanKey()), rel)
}

// View lists the current cursor location and marks completed lessons.
func (s *Session) View() model.View {
	s.mu.Lock()
	rel := s.cursor.Path()
	atRoot := s.cursor.AtRoot()
	s.mu.Unlock()

	return s.viewAt(rel, atRoot)
}

func (s *Session) viewAt(rel string, atRoot bool) model.View {
	root := s.settings.PlanRoot()
	view := model.View{Path: rel, HasBack: !atRoot}

	if !s.lister.Exists(root, rel) {
		view.State = model.ViewNotFound
		return view
	}

	listing := s.lister.List(root, rel)
	if listing.Empty() {
		view.State = model.ViewEmpty
		return view
	}

	done := s.store.Completed()
	for _, name := range listing.Folders {
		view.Entries = append(view.Entries, model.Entry{Name: name, Folder: true})
	}
	for _, name := range listing.Files {
		key := model.JoinKey(string(s.settings.PlanKey()), rel, name)
		view.Entries = append(view.Entries, model.Entry{
			Name: name,
			Key:  key,
			Kind: model.KindOf(name),
			Done: done[key],
		})
	}
	view.State = model.ViewReady
	return view
}

// OpenFolder descends into name and returns the new view. The name is not
// validated; a missing folder renders as not found.
func (s *Session) OpenFolder(name string) model.View {
	s.mu.Lock()
	s.cursor.Descend(name)
	s.mu.Unlock()
	s.logger.Debug("open folder", "cursor", s.Cursor())
	return s.View()
}

// GoBack ascends one level and returns the new view. At the root it only
// re-renders.
func (s *Session) GoBack() model.View {
	s.mu.Lock()
	s.cursor.Ascend()
	s.mu.Unlock()
	s.logger.Debug("go back", "cursor", s.Cursor())
	return s.View()
}

// OpenLesson opens the lesson identified by key and marks it complete.
//
// The key must name an existing file with a lesson extension below the plan
// root; anything else fails with ErrOutsidePlan or ErrLessonNotFound and
// nothing is opened or marked.
//
// Notebook lessons are locked first (when enabled), opened as notebooks, and
// get a companion script scaffolded and opened next to them. Documents are
// opened as documents. When the opener fails the lesson is not marked and the
// error is returned. When progress cannot be saved a warning event is emitted
// and ErrNoSaveLocation is returned with the refreshed view.
func (s *Session) OpenLesson(ctx context.Context, key model.Key) (model.View, error) {
	key = model.NormalizeKey(string(key))
	path, err := s.resolveLesson(key)
	if err != nil {
		return s.View(), err
	}

	switch key.Kind() {
	case model.KindNotebook:
		if err := s.openNotebook(ctx, path); err != nil {
			s.emit(Event{Message: fmt.Sprintf("Could not open Notebook file: %v", err), Level: LevelError})
			return s.View(), err
		}
	default:
		if err := s.opener.OpenDocument(ctx, path); err != nil {
			s.emit(Event{Message: fmt.Sprintf("Could not open lesson file: %v", err), Level: LevelError})
			return s.View(), err
		}
	}

	if err := s.markComplete(key); err != nil {
		return s.View(), err
	}
	return s.View(), nil
}

// CompleteLesson marks the lesson identified by key complete without opening
// it. The key is checked the same way OpenLesson checks it. It returns true
// when the record changed.
func (s *Session) CompleteLesson(key model.Key) (bool, error) {
	key = model.NormalizeKey(string(key))
	if _, err := s.resolveLesson(key); err != nil {
		return false, err
	}
	changed, err := s.store.MarkComplete(key)
	if errors.Is(err, progress.ErrNoSaveLocation) {
		s.emit(Event{Message: "No valid save location found! Please plug in your drive.", Level: LevelWarning})
	}
	return changed, err
}

// resolveLesson returns the file behind key, or reports why key is not an
// openable lesson.
func (s *Session) resolveLesson(key model.Key) (string, error) {
	if !s.inPlan(key) {
		s.emit(Event{Message: fmt.Sprintf("Cannot open %s: outside the lesson plan", key), Level: LevelError})
		return "", fmt.Errorf("%w: %q", ErrOutsidePlan, key)
	}
	path := filepath.Join(s.settings.WorkspaceRoot, filepath.FromSlash(string(key)))
	if !ioutils.FileExists(path) || !s.lister.IsLesson(path) {
		s.emit(Event{Message: fmt.Sprintf("Could not open lesson file: %s not found", key), Level: LevelError})
		return "", fmt.Errorf("%w: %q", ErrLessonNotFound, key)
	}
	return path, nil
}

func (s *Session) markComplete(key model.Key) error {
	changed, err := s.store.MarkComplete(key)
	switch {
	case errors.Is(err, progress.ErrNoSaveLocation):
		s.emit(Event{Message: "No valid save location found! Please plug in your drive.", Level: LevelWarning})
		return err
	case err != nil:
		s.emit(Event{Message: fmt.Sprintf("Could not save progress: %v", err), Level: LevelError})
		return err
	case changed:
		s.emit(Event{Message: fmt.Sprintf("Completed %s", key.Base()), Level: LevelSuccess})
	default:
		s.emit(Event{Message: fmt.Sprintf("Opened %s", key.Base()), Level: LevelVerbose})
	}
	return nil
}

// openNotebook locks, opens and scaffolds a notebook lesson. Only a failure to
// open the notebook itself is returned; lock and companion problems are
// reported as warnings.
func (s *Session) openNotebook(ctx context.Context, path string) error {
	if s.settings.LockNotebooks {
		if n, err := s.locker.Lock(path); err != nil {
			s.emit(Event{Message: fmt.Sprintf("Could not lock notebook cells: %v", err), Level: LevelWarning})
		} else if n > 0 {
			s.emit(Event{Message: fmt.Sprintf("Locked %d cells in %s", n, filepath.Base(path)), Level: LevelVerbose})
		}
	}

	if err := s.opener.OpenNotebook(ctx, path); err != nil {
		return err
	}

	if !s.settings.ScaffoldCompanion {
		return nil
	}
	script := notebook.CompanionPath(path)
	created, err := notebook.Scaffold(script, s.settings.CompanionTemplate)
	if err != nil {
		s.emit(Event{Message: fmt.Sprintf("Could not create %s: %v", filepath.Base(script), err), Level: LevelWarning})
		return nil
	}
	if created {
		s.emit(Event{Message: fmt.Sprintf("Created %s", filepath.Base(script)), Level: LevelVerbose})
	}
	if err := s.opener.OpenDocument(ctx, script); err != nil {
		s.emit(Event{Message: fmt.Sprintf("Could not open %s: %v", filepath.Base(script), err), Level: LevelWarning})
	}
	return nil
}

// inPlan reports whether key names something below the plan root.
func (s *Session) inPlan(key model.Key) bool {
	k := string(key)
	if k == "" || k == ".." || strings.HasPrefix(k, "../") {
		return false
	}
	prefix := string(s.settings.PlanKey())
	return prefix == "" || strings.HasPrefix(k, prefix+"/")
}

// Summary counts lessons and completions for the whole plan.
func (s *Session) Summary(ctx context.Context) (plan.Summary, error) {
	done := s.store.Completed()
	return s.summarizer.Summarize(ctx, func(k model.Key) bool { return done[k] })
}

func (s *Session) emit(event Event) {
	switch event.Level {
	case LevelError:
		s.logger.Error(event.Message)
	case LevelWarning:
		s.logger.Warn(event.Message)
	case LevelVerbose:
		s.logger.Debug(event.Message)
	default:
		s.logger.Info(event.Message)
	}
	if s.onEvent != nil {
		s.onEvent(event)
	}
}
