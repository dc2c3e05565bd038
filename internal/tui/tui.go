// Package tui provides a Bubble Tea terminal user interface for the lesson browser.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/lesson-browser/internal/config"
	"github.com/handiism/lesson-browser/internal/model"
	"github.com/handiism/lesson-browser/internal/opener"
	"github.com/handiism/lesson-browser/internal/plan"
	"github.com/handiism/lesson-browser/internal/session"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
			MarginBottom(1)

	crumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D")).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	// StateMenu is the card menu with folder drill-down.
	StateMenu State = iota

	// StateTree is the expandable tree menu.
	StateTree
)

// maxLogs is how many event lines stay on screen.
const maxLogs = 5

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   session.Level
}

// Message types
type (
	// LessonOpenedMsg is sent when opening a lesson finished.
	LessonOpenedMsg struct {
		View model.View
		Err  error
	}

	// SummaryMsg carries a recomputed plan summary.
	SummaryMsg struct {
		Summary plan.Summary
		Err     error
	}
)

// menuItem implements list.Item for one menu card.
type menuItem struct {
	entry model.Entry
	back  bool
}

func (i menuItem) Title() string {
	switch {
	case i.back:
		return "⬅ Back"
	case i.entry.Folder:
		return "📁 " + i.entry.Name
	case i.entry.Done:
		return "✅ " + i.entry.Name
	default:
		return "❌ " + i.entry.Name
	}
}

func (i menuItem) Description() string {
	switch {
	case i.back:
		return "up one level"
	case i.entry.Folder:
		return "folder"
	case i.entry.Done:
		return i.entry.Kind.String() + " · completed"
	default:
		return i.entry.Kind.String()
	}
}

func (i menuItem) FilterValue() string { return i.entry.Name }

// EventSink collects session events. Lessons are opened from commands that
// run off the Bubble Tea loop, so events are buffered and drained by Update.
type EventSink struct {
	mu     sync.Mutex
	events []session.Event
}

// Push records an event. It is meant to be the session's event callback.
func (s *EventSink) Push(e session.Event) {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
}

func (s *EventSink) drain() []session.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.events
	s.events = nil
	return out
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state   State
	session *session.Session
	sink    *EventSink
	keys    keyMap

	menu     list.Model
	view     model.View
	tree     treeState
	done     map[model.Key]bool
	help     help.Model
	spinner  spinner.Model
	progress progress.Model

	summary plan.Summary
	opening bool
	verbose bool
	logs    []LogEntry

	ctx context.Context

	width  int
	height int
}

// NewModel creates a new TUI model around sess. sink must be the event
// callback target sess was created with.
func NewModel(ctx context.Context, sess *session.Session, sink *EventSink) Model {
	delegate := list.NewDefaultDelegate()
	menu := list.New(nil, delegate, 0, 0)
	menu.Title = "Student Lessons"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	if sink == nil {
		sink = &EventSink{}
	}

	m := Model{
		state:    StateMenu,
		session:  sess,
		sink:     sink,
		keys:     defaultKeyMap(),
		menu:     menu,
		tree:     newTreeState(sess.Tree()),
		help:     help.New(),
		spinner:  sp,
		progress: prog,
		logs:     make([]LogEntry, 0),
		ctx:      ctx,
	}
	m.setView(sess.View())
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSummary())
}

// setView replaces the menu cards with view and refreshes the completion set
// used by the tree.
func (m *Model) setView(view model.View) {
	m.view = view
	m.done = m.session.Store().Completed()

	var items []list.Item
	if view.HasBack {
		items = append(items, menuItem{back: true})
	}
	if view.State == model.ViewReady {
		for _, e := range view.Entries {
			items = append(items, menuItem{entry: e})
		}
	}
	m.menu.SetItems(items)
	m.menu.ResetSelected()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width, m.bodyHeight())
		m.help.Width = msg.Width
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case LessonOpenedMsg:
		m.opening = false
		m.collectEvents()
		m.setView(msg.View)
		m.tree.rebuild()
		cmds = append(cmds, m.loadSummary())

	case SummaryMsg:
		if msg.Err != nil {
			m.addLog(LogEntry{Message: fmt.Sprintf("Could not summarize plan: %v", msg.Err), Level: session.LevelWarning})
			break
		}
		m.summary = msg.Summary
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.menu.SetSize(m.width, m.bodyHeight())
		return m, nil

	case key.Matches(msg, m.keys.Verbose):
		m.verbose = !m.verbose
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if m.state == StateMenu {
			m.state = StateTree
			m.tree.rebuild()
		} else {
			m.state = StateMenu
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.setView(m.session.View())
		m.tree.rebuild()
		return m, m.loadSummary()
	}

	if m.opening {
		return m, nil
	}

	if m.state == StateTree {
		return m.handleTreeKey(msg)
	}
	return m.handleMenuKey(msg)
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.setView(m.session.GoBack())
		return m, nil

	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Expand):
		item, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		switch {
		case item.back:
			m.setView(m.session.GoBack())
			return m, nil
		case item.entry.Folder:
			m.setView(m.session.OpenFolder(item.entry.Name))
			return m, nil
		default:
			return m.startOpen(item.entry.Key)
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.tree.up()
	case key.Matches(msg, m.keys.Down):
		m.tree.down()
	case key.Matches(msg, m.keys.Expand):
		m.tree.expand()
	case key.Matches(msg, m.keys.Back):
		m.tree.collapse()
	case key.Matches(msg, m.keys.Open):
		row, ok := m.tree.selected()
		if !ok {
			break
		}
		if row.node.Dir {
			if !m.tree.expand() {
				m.tree.collapse()
			}
			break
		}
		return m.startOpen(m.session.KeyFor(row.node.Rel))
	}
	return m, nil
}

// startOpen opens lesson off the Bubble Tea loop.
func (m Model) startOpen(lesson model.Key) (tea.Model, tea.Cmd) {
	m.opening = true
	sess, ctx := m.session, m.ctx
	open := func() tea.Msg {
		view, err := sess.OpenLesson(ctx, lesson)
		return LessonOpenedMsg{View: view, Err: err}
	}
	return m, open
}

// loadSummary recomputes the plan summary in the background.
func (m Model) loadSummary() tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		summary, err := sess.Summary(ctx)
		return SummaryMsg{Summary: summary, Err: err}
	}
}

func (m *Model) collectEvents() {
	for _, e := range m.sink.drain() {
		m.addLog(LogEntry{Message: e.Message, Level: e.Level})
	}
}

func (m *Model) addLog(entry LogEntry) {
	// Filter verbose messages if not in verbose mode
	if entry.Level == session.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, entry)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// bodyHeight is what is left for the menu after header, logs and footer.
func (m Model) bodyHeight() int {
	h := m.height - 8 - maxLogs
	if m.help.ShowAll {
		h -= 4
	}
	if h < 5 {
		h = 5
	}
	return h
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("📚 Lesson Plans"))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(m.summary.Percent()))
	b.WriteString(" ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d lessons", m.summary.Completed, m.summary.Lessons)))
	b.WriteString("\n\n")

	switch m.state {
	case StateMenu:
		b.WriteString(m.viewMenu())
	case StateTree:
		b.WriteString(m.viewTree())
	}

	b.WriteString("\n")
	if m.opening {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(infoStyle.Render("Opening lesson..."))
		b.WriteString("\n")
	}
	b.WriteString(m.renderLogs())

	// Footer
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder

	b.WriteString(crumbStyle.Render(m.breadcrumb()))
	b.WriteString("\n")

	if m.view.State != model.ViewReady {
		if m.view.HasBack {
			b.WriteString(m.menu.View())
			b.WriteString("\n")
		}
		b.WriteString(emptyStyle.Render(m.view.State.Placeholder()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.menu.View())
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewTree() string {
	var b strings.Builder

	b.WriteString(crumbStyle.Render("Lesson tree"))
	b.WriteString("\n\n")
	b.WriteString(m.tree.view(m.done, m.session.KeyFor, m.bodyHeight()))
	return b.String()
}

func (m Model) breadcrumb() string {
	cursor := model.NewCursor(m.view.Path)
	return strings.Join(append([]string{"plans"}, cursor.Segments()...), " / ")
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case session.LevelError:
			style = errorStyle
			prefix = "✗"
		case session.LevelWarning:
			style = warningStyle
			prefix = "!"
		case session.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case session.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

// Run starts the TUI application.
func Run(ctx context.Context, settings *config.Settings, op opener.Opener, logger *slog.Logger) error {
	sink := &EventSink{}
	sess := session.New(settings, op, sink.Push, session.WithLogger(logger))

	p := tea.NewProgram(NewModel(ctx, sess, sink), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
