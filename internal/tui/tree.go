package tui

import (
	"path"
	"strings"

	"github.com/handiism/lesson-browser/internal/model"
	"github.com/handiism/lesson-browser/internal/plan"
)

// treeRow is one visible line of the tree menu.
type treeRow struct {
	node  plan.Node
	depth int
}

// treeState is the secondary menu: the plan as an expandable tree.
// Folders are listed only when they are expanded.
type treeState struct {
	tree     *plan.Tree
	expanded map[string]bool
	rows     []treeRow
	cursor   int
}

func newTreeState(tree *plan.Tree) treeState {
	s := treeState{tree: tree, expanded: make(map[string]bool)}
	s.rebuild()
	return s
}

// rebuild relists every expanded folder and keeps the cursor on the same
// node when it is still visible.
func (s *treeState) rebuild() {
	var current string
	if row, ok := s.selected(); ok {
		current = row.node.Rel
	}

	s.rows = nil
	s.appendChildren(s.tree.Root(), 0)

	s.cursor = 0
	for i, row := range s.rows {
		if row.node.Rel == current {
			s.cursor = i
			break
		}
	}
}

func (s *treeState) appendChildren(node plan.Node, depth int) {
	for _, child := range s.tree.Children(node) {
		s.rows = append(s.rows, treeRow{node: child, depth: depth})
		if child.Dir && s.expanded[child.Rel] {
			s.appendChildren(child, depth+1)
		}
	}
}

func (s *treeState) selected() (treeRow, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return treeRow{}, false
	}
	return s.rows[s.cursor], true
}

func (s *treeState) up() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *treeState) down() {
	if s.cursor < len(s.rows)-1 {
		s.cursor++
	}
}

// expand opens the selected folder. It reports false for files and for
// folders that are already open.
func (s *treeState) expand() bool {
	row, ok := s.selected()
	if !ok || !row.node.Dir || s.expanded[row.node.Rel] {
		return false
	}
	s.expanded[row.node.Rel] = true
	s.rebuild()
	return true
}

// collapse closes the selected folder, or moves to the parent folder when the
// selection is a file or an already closed folder.
func (s *treeState) collapse() {
	row, ok := s.selected()
	if !ok {
		return
	}
	if row.node.Dir && s.expanded[row.node.Rel] {
		delete(s.expanded, row.node.Rel)
		s.rebuild()
		return
	}
	parent := path.Dir(row.node.Rel)
	if parent == "." {
		return
	}
	for i, r := range s.rows {
		if r.node.Rel == parent {
			s.cursor = i
			return
		}
	}
}

// view renders at most height rows around the cursor. keyFor maps a plan
// relative path to its completion key.
func (s treeState) view(done map[model.Key]bool, keyFor func(string) model.Key, height int) string {
	if len(s.rows) == 0 {
		return emptyStyle.Render(model.ViewEmpty.Placeholder())
	}

	start, end := 0, len(s.rows)
	if height > 0 && end > height {
		start = s.cursor - height/2
		if start < 0 {
			start = 0
		}
		end = start + height
		if end > len(s.rows) {
			end = len(s.rows)
			start = end - height
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		row := s.rows[i]
		line := strings.Repeat("  ", row.depth)
		switch {
		case row.node.Dir && s.expanded[row.node.Rel]:
			line += "▾ 📁 " + row.node.Name
		case row.node.Dir:
			line += "▸ 📁 " + row.node.Name
		case done[keyFor(row.node.Rel)]:
			line += "  ✅ " + row.node.Name
		default:
			line += "  ❌ " + row.node.Name
		}

		if i == s.cursor {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
