package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/lesson-browser/internal/config"
	"github.com/handiism/lesson-browser/internal/model"
	"github.com/handiism/lesson-browser/internal/opener"
	"github.com/handiism/lesson-browser/internal/plan"
	"github.com/handiism/lesson-browser/internal/session"
)

func writeWorkspace(t *testing.T) string {
	t.Helper()
	workspace := t.TempDir()
	for _, rel := range []string{
		"plans/intro.md",
		"plans/Unit1/lesson1.md",
		"plans/Unit1/Week1/deep.md",
		"plans/Extensions/hidden.md",
	} {
		p := filepath.Join(workspace, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("# lesson"), 0644))
	}
	return workspace
}

func newTestModel(t *testing.T) (Model, *opener.Recorder) {
	t.Helper()
	settings := config.DefaultSettings()
	settings.WorkspaceRoot = writeWorkspace(t)

	rec := &opener.Recorder{}
	sink := &EventSink{}
	sess := session.New(settings, rec, sink.Push)
	m, _ := update(t, NewModel(context.Background(), sess, sink), tea.WindowSizeMsg{Width: 100, Height: 60})
	return m, rec
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestMenuItemTitles(t *testing.T) {
	assert.Equal(t, "⬅ Back", menuItem{back: true}.Title())
	assert.Equal(t, "📁 Unit1", menuItem{entry: model.Entry{Name: "Unit1", Folder: true}}.Title())
	assert.Equal(t, "✅ a.md", menuItem{entry: model.Entry{Name: "a.md", Done: true}}.Title())
	assert.Equal(t, "❌ a.md", menuItem{entry: model.Entry{Name: "a.md"}}.Title())
	assert.Equal(t, "notebook · completed", menuItem{entry: model.Entry{Kind: model.KindNotebook, Done: true}}.Description())
}

func TestMenu_FolderDrillDownAndBack(t *testing.T) {
	m, _ := newTestModel(t)
	require.Len(t, m.menu.Items(), 2)

	m.menu.Select(0)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Unit1", m.view.Path)
	assert.True(t, m.menu.Items()[0].(menuItem).back)
	assert.Equal(t, "plans / Unit1", m.breadcrumb())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", m.view.Path)
	assert.Equal(t, "plans", m.breadcrumb())
}

func TestMenu_OpenLessonMarksDone(t *testing.T) {
	m, rec := newTestModel(t)

	m.menu.Select(1)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.opening)

	msg := cmd()
	opened, ok := msg.(LessonOpenedMsg)
	require.True(t, ok)
	require.NoError(t, opened.Err)

	m, _ = update(t, m, opened)
	assert.False(t, m.opening)
	require.Len(t, m.view.Files(), 1)
	assert.True(t, m.view.Files()[0].Done)
	assert.True(t, m.done["plans/intro.md"])
	require.Len(t, rec.Calls(), 1)

	require.NotEmpty(t, m.logs)
	assert.Equal(t, session.LevelSuccess, m.logs[len(m.logs)-1].Level)
}

func TestMenu_NotFoundShowsPlaceholder(t *testing.T) {
	m, _ := newTestModel(t)
	m.setView(m.session.OpenFolder("Missing"))

	assert.Equal(t, model.ViewNotFound, m.view.State)
	require.Len(t, m.menu.Items(), 1)
	assert.Contains(t, m.viewMenu(), "Folder not found.")
}

func TestToggleTreeAndQuit(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, StateTree, m.state)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, StateMenu, m.state)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestVerboseEventsAreFiltered(t *testing.T) {
	m, _ := newTestModel(t)
	m.addLog(LogEntry{Message: "debug", Level: session.LevelVerbose})
	assert.Empty(t, m.logs)

	m.verbose = true
	m.addLog(LogEntry{Message: "debug", Level: session.LevelVerbose})
	assert.Len(t, m.logs, 1)

	for i := 0; i < maxLogs+3; i++ {
		m.addLog(LogEntry{Message: "info", Level: session.LevelInfo})
	}
	assert.Len(t, m.logs, maxLogs)
}

func TestTreeState_ExpandCollapse(t *testing.T) {
	workspace := writeWorkspace(t)
	root := filepath.Join(workspace, "plans")
	lister := plan.NewLister(plan.Config{Extensions: []string{".md"}, Sort: true})
	s := newTreeState(plan.NewTree(root, lister))

	require.Len(t, s.rows, 2)
	assert.Equal(t, "Unit1", s.rows[0].node.Name)

	require.True(t, s.expand())
	assert.False(t, s.expand(), "second expand is a no-op")
	require.Len(t, s.rows, 4)
	assert.Equal(t, "Unit1/Week1", s.rows[1].node.Rel)
	assert.Equal(t, 1, s.rows[1].depth)

	s.down()
	s.down()
	row, ok := s.selected()
	require.True(t, ok)
	assert.Equal(t, "Unit1/lesson1.md", row.node.Rel)

	// Collapsing from a file moves to its folder, then closes it.
	s.collapse()
	row, _ = s.selected()
	assert.Equal(t, "Unit1", row.node.Rel)
	s.collapse()
	assert.Len(t, s.rows, 2)

	out := s.view(map[model.Key]bool{"plans/intro.md": true}, func(rel string) model.Key {
		return model.JoinKey("plans", rel)
	}, 10)
	assert.True(t, strings.Contains(out, "✅ intro.md"))
	assert.True(t, strings.Contains(out, "▸ 📁 Unit1"))
}
