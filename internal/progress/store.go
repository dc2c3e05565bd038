package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	ioutils "github.com/handiism/lesson-browser/internal/io"
	"github.com/handiism/lesson-browser/internal/model"
)

// FileName is the progress file written under the save location.
const FileName = "student_progress.json"

// ErrNoSaveLocation is returned when neither the custom save directory nor
// the storage root exists. The caller should warn the student instead of
// dropping the update silently.
var ErrNoSaveLocation = errors.New("no valid save location found")

// Options configures a Store.
type Options struct {
	// CustomSaveDir overrides the storage root while it exists on disk.
	CustomSaveDir string

	// Logger receives diagnostics such as a malformed progress file.
	// Nil means slog.Default().
	Logger *slog.Logger
}

// Store loads and saves the progress record for one storage root.
//
// Every Store on the same storage root shares one lock, so MarkComplete calls
// from different sessions never interleave their load and save.
//
// Example:
//
//	store := progress.NewStore("/work", progress.Options{CustomSaveDir: "/media/usb"})
//	changed, err := store.MarkComplete("plans/Unit1/intro.md")
//	if errors.Is(err, progress.ErrNoSaveLocation) {
//	    // Tell the student to plug the drive back in
//	}
type Store struct {
	root      string
	customDir string
	logger    *slog.Logger
	mu        *sync.Mutex
}

var (
	locksMu sync.Mutex
	locks   = make(map[string]*sync.Mutex)
)

// rootLock returns the mutex shared by every Store on root.
func rootLock(root string) *sync.Mutex {
	key := filepath.Clean(root)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}

	locksMu.Lock()
	defer locksMu.Unlock()
	mu, ok := locks[key]
	if !ok {
		mu = &sync.Mutex{}
		locks[key] = mu
	}
	return mu
}

// NewStore creates a Store for storageRoot.
func NewStore(storageRoot string, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		root:      storageRoot,
		customDir: opts.CustomSaveDir,
		logger:    logger,
		mu:        rootLock(storageRoot),
	}
}

// Path resolves the progress file location.
//
// The custom save directory wins while it exists; otherwise the storage root
// is used. The check runs on every call, so a removed drive is noticed on the
// next save.
func (s *Store) Path() (string, error) {
	if s.customDir != "" && ioutils.DirExists(s.customDir) {
		return filepath.Join(s.customDir, FileName), nil
	}
	if ioutils.DirExists(s.root) {
		return filepath.Join(s.root, FileName), nil
	}
	return "", fmt.Errorf("%w (custom: %q, root: %q)", ErrNoSaveLocation, s.customDir, s.root)
}

// Load returns the current progress record.
//
// A missing file and a malformed file both yield the zero record; a malformed
// file is logged and otherwise ignored.
func (s *Store) Load() model.ProgressRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save overwrites the progress file with record.
func (s *Store) Save(record model.ProgressRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(record)
}

// MarkComplete records key as completed.
//
// The load, insert and save run under the root lock. A key that is already
// recorded is a no-op and nothing is written. It returns true when the record
// changed.
func (s *Store) MarkComplete(key model.Key) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.load()
	if !record.Add(key) {
		return false, nil
	}
	if err := s.save(record); err != nil {
		return false, err
	}
	s.logger.Debug("lesson marked complete", "key", key.String())
	return true, nil
}

// IsComplete reports whether key is recorded as completed.
func (s *Store) IsComplete(key model.Key) bool {
	record := s.Load()
	return record.Has(key)
}

// Completed returns the normalized set of completed lessons.
func (s *Store) Completed() map[model.Key]bool {
	record := s.Load()
	return record.Completed()
}

func (s *Store) load() model.ProgressRecord {
	path, err := s.Path()
	if err != nil {
		// Nothing to read from; fall back to where the default would live.
		path = filepath.Join(s.root, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read progress file", "path", path, "error", err)
		}
		return model.NewProgressRecord()
	}

	var record model.ProgressRecord
	if err := json.Unmarshal(data, &record); err != nil {
		s.logger.Warn("discarding malformed progress file", "path", path, "error", err)
		return model.NewProgressRecord()
	}
	record.Normalize()
	return record
}

func (s *Store) save(record model.ProgressRecord) error {
	path, err := s.Path()
	if err != nil {
		return err
	}

	record.Normalize()
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := ioutils.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write progress file: %w", err)
	}
	return nil
}
