package notebook

import (
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/lesson-browser/internal/io"
)

// CompanionPath returns the script that sits next to a notebook lesson:
// same directory, same base name, .py extension.
//
// Example:
//
//	CompanionPath("/work/plans/Unit1/quiz.ipynb") // "/work/plans/Unit1/quiz.py"
func CompanionPath(notebookPath string) string {
	dir := filepath.Dir(notebookPath)
	base := filepath.Base(notebookPath)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".ipynb") {
		base = strings.TrimSuffix(base, ext)
	}
	return filepath.Join(dir, base+".py")
}

// Scaffold writes template to path unless the file already exists. It returns
// true when a new file was created; student code is never overwritten.
func Scaffold(path, template string) (bool, error) {
	return ioutils.WriteIfMissing(path, []byte(template))
}
