package notebook

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/lesson-browser/internal/io"
)

// ErrNotNotebook is returned when a path does not have the .ipynb extension.
var ErrNotNotebook = errors.New("not a notebook file")

// Locker freezes notebook cells so a lesson cannot be edited after it is
// first opened.
//
// For every cell that is still editable, or that carries outputs, Locker sets
// metadata.editable and metadata.deletable to false. Code cells also lose
// their outputs and execution count, so the student starts from a clean
// notebook. Fields Locker does not know about are kept.
//
// Example:
//
//	locker := notebook.NewLocker()
//	n, err := locker.Lock("/work/plans/Unit1/quiz.ipynb")
//	fmt.Printf("locked %d cells\n", n)
type Locker struct{}

// NewLocker creates a new Locker.
func NewLocker() *Locker {
	return &Locker{}
}

// Lock rewrites the notebook at path and returns how many cells changed.
// The file is only written when at least one cell changed.
func (l *Locker) Lock(path string) (int, error) {
	if !strings.EqualFold(filepath.Ext(path), ".ipynb") {
		return 0, fmt.Errorf("%w: %s", ErrNotNotebook, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	out, changed, err := lockCells(data)
	if err != nil {
		return 0, fmt.Errorf("lock %s: %w", filepath.Base(path), err)
	}
	if changed == 0 {
		return 0, nil
	}

	if err := ioutils.WriteFileAtomic(path, out); err != nil {
		return 0, err
	}
	return changed, nil
}

// lockCells returns the rewritten notebook JSON and the number of changed
// cells.
func lockCells(data []byte) ([]byte, int, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("parse notebook: %w", err)
	}

	rawCells, ok := doc["cells"]
	if !ok {
		return data, 0, nil
	}

	var cells []map[string]any
	if err := json.Unmarshal(rawCells, &cells); err != nil {
		return nil, 0, fmt.Errorf("parse cells: %w", err)
	}

	changed := 0
	for _, cell := range cells {
		if lockCell(cell) {
			changed++
		}
	}
	if changed == 0 {
		return data, 0, nil
	}

	encoded, err := json.Marshal(cells)
	if err != nil {
		return nil, 0, err
	}
	doc["cells"] = encoded

	out, err := json.MarshalIndent(doc, "", " ")
	if err != nil {
		return nil, 0, err
	}
	return append(out, '\n'), changed, nil
}

// lockCell applies the lock to one cell and reports whether it changed.
func lockCell(cell map[string]any) bool {
	meta, _ := cell["metadata"].(map[string]any)
	if meta == nil {
		meta = make(map[string]any)
	}

	editable := true
	if v, ok := meta["editable"].(bool); ok {
		editable = v
	}
	outputs, _ := cell["outputs"].([]any)
	if !editable && len(outputs) == 0 {
		return false
	}

	meta["editable"] = false
	meta["deletable"] = false
	cell["metadata"] = meta

	if cell["cell_type"] == "code" {
		cell["outputs"] = []any{}
		cell["execution_count"] = nil
	}
	return true
}
