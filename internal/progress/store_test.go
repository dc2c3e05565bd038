package progress

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/lesson-browser/internal/model"
)

func readRecord(t *testing.T, path string) model.ProgressRecord {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec model.ProgressRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	return rec
}

func TestLoad_MissingFileReturnsZeroRecord(t *testing.T) {
	store := NewStore(t.TempDir(), Options{})

	rec := store.Load()
	assert.Equal(t, []string{}, rec.CompletedLessons)
	assert.Nil(t, rec.CurrentLesson)
}

func TestLoad_MalformedFileIsLoggedAndDiscarded(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("{oops"), 0644))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	store := NewStore(root, Options{Logger: logger})

	rec := store.Load()
	assert.Empty(t, rec.CompletedLessons)
	assert.Contains(t, logs.String(), "malformed progress file")
}

func TestMarkComplete_IsIdempotent(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, Options{})

	changed, err := store.MarkComplete("plans/Unit1/intro.md")
	require.NoError(t, err)
	assert.True(t, changed)
	once := readRecord(t, filepath.Join(root, FileName))

	changed, err = store.MarkComplete("plans/Unit1/intro.md")
	require.NoError(t, err)
	assert.False(t, changed)
	twice := readRecord(t, filepath.Join(root, FileName))

	assert.Equal(t, once.CompletedLessons, twice.CompletedLessons)
	assert.Equal(t, []string{"plans/Unit1/intro.md"}, twice.CompletedLessons)
}

func TestMarkComplete_NormalizesSeparators(t *testing.T) {
	store := NewStore(t.TempDir(), Options{})

	_, err := store.MarkComplete(`plans\Unit1\intro.md`)
	require.NoError(t, err)

	assert.True(t, store.IsComplete("plans/Unit1/intro.md"))
	assert.True(t, store.Completed()["plans/Unit1/intro.md"])
}

func TestMarkComplete_PreservesOrderAndCurrentLesson(t *testing.T) {
	root := t.TempDir()
	current := "plans/b.md"
	seed := model.ProgressRecord{CompletedLessons: []string{"plans/z.md"}, CurrentLesson: &current}
	store := NewStore(root, Options{})
	require.NoError(t, store.Save(seed))

	_, err := store.MarkComplete("plans/a.md")
	require.NoError(t, err)

	rec := readRecord(t, filepath.Join(root, FileName))
	assert.Equal(t, []string{"plans/z.md", "plans/a.md"}, rec.CompletedLessons)
	require.NotNil(t, rec.CurrentLesson)
	assert.Equal(t, "plans/b.md", *rec.CurrentLesson)
}

func TestMarkComplete_KeepsUnknownKeys(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, FileName)
	seed := `{"completedLessons": ["plans/z.md"], "currentLesson": null, "studentName": "Ada"}`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0644))

	_, err := NewStore(root, Options{}).MarkComplete("plans/a.md")
	require.NoError(t, err)

	rec := readRecord(t, path)
	assert.Equal(t, []string{"plans/z.md", "plans/a.md"}, rec.CompletedLessons)
	assert.JSONEq(t, `"Ada"`, string(rec.Extra["studentName"]))
}

func TestSave_FormattedJSON(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, Options{})
	require.NoError(t, store.Save(model.NewProgressRecord()))

	data, err := os.ReadFile(filepath.Join(root, FileName))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"completedLessons\": [],\n  \"currentLesson\": null\n}", string(data))
}

func TestSave_UsesCustomDirWhenPresent(t *testing.T) {
	root := t.TempDir()
	custom := t.TempDir()
	store := NewStore(root, Options{CustomSaveDir: custom})

	_, err := store.MarkComplete("plans/a.md")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(custom, FileName))
	assert.NoFileExists(t, filepath.Join(root, FileName))
	assert.True(t, store.IsComplete("plans/a.md"), "load should read from the custom dir too")
}

func TestSave_MissingCustomDirFallsBackToRoot(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, Options{CustomSaveDir: filepath.Join(root, "unplugged-drive")})

	_, err := store.MarkComplete("plans/a.md")
	require.NoError(t, err)

	rec := readRecord(t, filepath.Join(root, FileName))
	assert.Equal(t, []string{"plans/a.md"}, rec.CompletedLessons)
}

func TestPath_RecheckedOnEveryCall(t *testing.T) {
	root := t.TempDir()
	custom := filepath.Join(t.TempDir(), "drive")
	require.NoError(t, os.Mkdir(custom, 0755))
	store := NewStore(root, Options{CustomSaveDir: custom})

	path, err := store.Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(custom, FileName), path)

	require.NoError(t, os.Remove(custom))
	path, err = store.Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), path)
}

func TestSave_NoValidLocation(t *testing.T) {
	gone := filepath.Join(t.TempDir(), "missing-workspace")
	store := NewStore(gone, Options{CustomSaveDir: filepath.Join(gone, "drive")})

	err := store.Save(model.NewProgressRecord())
	assert.ErrorIs(t, err, ErrNoSaveLocation)

	_, err = store.MarkComplete("plans/a.md")
	assert.ErrorIs(t, err, ErrNoSaveLocation)
}

func TestMarkComplete_ConcurrentCallsAllPersist(t *testing.T) {
	root := t.TempDir()
	keys := []model.Key{"plans/a.md", "plans/b.md", "plans/c.md", "plans/d.md"}

	var wg sync.WaitGroup
	for _, key := range keys {
		wg.Add(1)
		go func(key model.Key) {
			defer wg.Done()
			// A separate Store per caller still shares the root lock.
			store := NewStore(root, Options{})
			_, err := store.MarkComplete(key)
			assert.NoError(t, err)
		}(key)
	}
	wg.Wait()

	rec := readRecord(t, filepath.Join(root, FileName))
	assert.ElementsMatch(t, []string{"plans/a.md", "plans/b.md", "plans/c.md", "plans/d.md"}, rec.CompletedLessons)
}

func TestRootLock_SharedAcrossEquivalentPaths(t *testing.T) {
	root := t.TempDir()
	a := NewStore(root, Options{})
	b := NewStore(root+string(filepath.Separator), Options{})
	assert.Same(t, a.mu, b.mu)
}
