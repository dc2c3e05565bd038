package plan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/lesson-browser/internal/model"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if filepath.Ext(p) == "" {
			require.NoError(t, os.MkdirAll(p, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
}

func defaultLister() *Lister {
	return NewLister(Config{Extensions: []string{".md", ".ipynb"}, Sort: true})
}

func TestList_FilterScenario(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"Unit1", "Extensions", ".git",
		"intro.md", "quiz.ipynb", "notes.txt",
	)

	listing := defaultLister().List(root, "")

	assert.Equal(t, []string{"Unit1"}, listing.Folders)
	assert.Equal(t, []string{"intro.md", "quiz.ipynb"}, listing.Files)
}

func TestList_HidesDotFilesAndConfiguredNames(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".hidden.md", "drafts", "keep.md")

	l := NewLister(Config{Extensions: []string{"md"}, Excluded: []string{"drafts"}, Sort: true})
	listing := l.List(root, "")

	assert.Empty(t, listing.Folders)
	assert.Equal(t, []string{"keep.md"}, listing.Files)
}

func TestList_ExtensionsAreCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "LOUD.MD", "Quiz.IPynb")

	listing := defaultLister().List(root, "")
	assert.Equal(t, []string{"LOUD.MD", "Quiz.IPynb"}, listing.Files)
}

func TestList_SortIsCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "beta", "Alpha", "gamma", "b.md", "A.md")

	listing := defaultLister().List(root, "")
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, listing.Folders)
	assert.Equal(t, []string{"A.md", "b.md"}, listing.Files)
}

func TestList_UnsortedKeepsEveryEntry(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "c.md", "a.md", "b.md")

	l := NewLister(Config{Extensions: []string{".md"}})
	listing := l.List(root, "")
	assert.ElementsMatch(t, []string{"a.md", "b.md", "c.md"}, listing.Files)
}

func TestList_NoRecursion(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "Unit1/Week1/deep.md", "Unit1/top.md")

	listing := defaultLister().List(root, "")
	assert.Equal(t, []string{"Unit1"}, listing.Folders)
	assert.Empty(t, listing.Files)

	listing = defaultLister().List(root, "Unit1")
	assert.Equal(t, []string{"Week1"}, listing.Folders)
	assert.Equal(t, []string{"top.md"}, listing.Files)
}

func TestList_MissingDirectoryFailsSoft(t *testing.T) {
	root := t.TempDir()
	l := defaultLister()

	listing := l.List(root, "does/not/exist")
	assert.True(t, listing.Empty())
	assert.False(t, l.Exists(root, "does/not/exist"))
	assert.True(t, l.Exists(root, ""))
}

func TestList_FollowsSymlinkedFolders(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	writeTree(t, target, "linked.md")
	if err := os.Symlink(target, filepath.Join(root, "Shared")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	listing := defaultLister().List(root, "")
	assert.Equal(t, []string{"Shared"}, listing.Folders)
}

func TestTree_Children(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "Unit1/a.md", "Unit1/Week1", "z.md", "Extensions/x.md")

	tree := NewTree(root, defaultLister())
	top := tree.Children(tree.Root())
	require.Len(t, top, 2)
	assert.Equal(t, Node{Name: "Unit1", Rel: "Unit1", Dir: true}, top[0])
	assert.Equal(t, Node{Name: "z.md", Rel: "z.md"}, top[1])

	unit := tree.Children(top[0])
	require.Len(t, unit, 2)
	assert.Equal(t, "Unit1/Week1", unit[0].Rel)
	assert.True(t, unit[0].Dir)
	assert.Equal(t, "Unit1/a.md", unit[1].Rel)

	assert.Nil(t, tree.Children(top[1]), "files have no children")
}

func TestSummarize(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"loose.md",
		"Unit1/a.md", "Unit1/Week1/b.ipynb",
		"Unit2/c.md", "Unit2/d.md",
		"Unit3",
	)
	done := map[model.Key]bool{
		"plans/Unit1/Week1/b.ipynb": true,
		"plans/Unit2/c.md":          true,
		"plans/loose.md":            true,
	}

	s := NewSummarizer(root, "plans", defaultLister(), 2)
	summary, err := s.Summarize(context.Background(), func(k model.Key) bool { return done[k] })
	require.NoError(t, err)

	require.Len(t, summary.Units, 3)
	assert.Equal(t, UnitSummary{Name: "Unit1", Lessons: 2, Completed: 1}, summary.Units[0])
	assert.Equal(t, UnitSummary{Name: "Unit2", Lessons: 2, Completed: 1}, summary.Units[1])
	assert.Equal(t, UnitSummary{Name: "Unit3"}, summary.Units[2])
	assert.Equal(t, 1, summary.Loose.Completed)
	assert.Equal(t, 5, summary.Lessons)
	assert.Equal(t, 3, summary.Completed)
	assert.InDelta(t, 0.6, summary.Percent(), 1e-9)
}

func TestSummarize_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "Unit1/a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSummarizer(root, "plans", defaultLister(), 1)
	_, err := s.Summarize(ctx, func(model.Key) bool { return false })
	assert.ErrorIs(t, err, context.Canceled)
}
