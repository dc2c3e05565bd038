package model

import (
	"path"
	"strings"
)

// Key is the normalized, forward-slash relative path that identifies a lesson.
//
// The same Key is stored in the progress record and handed to the document
// opener, so every producer and consumer must build it with NormalizeKey.
// A key built with platform separators on one side and forward slashes on the
// other never matches, and completion checkmarks silently stop showing.
//
// Example:
//
//	NormalizeKey(`plans\Unit1\intro.md`) // "plans/Unit1/intro.md"
//	NormalizeKey("./plans/Unit1/intro.md") // "plans/Unit1/intro.md"
type Key string

// String returns the key as a plain string.
func (k Key) String() string {
	return string(k)
}

// NormalizeKey converts any separator style to forward slashes and cleans the
// result into a relative path.
//
// The following transformations are applied:
//   - Backslashes are replaced with forward slashes
//   - Redundant separators and "." elements are removed
//   - A leading "/" or "./" is stripped
//
// The empty path normalizes to the empty key.
func NormalizeKey(p string) Key {
	p = strings.ReplaceAll(p, `\`, "/")
	if strings.TrimSpace(p) == "" {
		return ""
	}
	p = path.Clean(p)
	p = strings.TrimLeft(p, "/")
	if p == "." {
		return ""
	}
	return Key(p)
}

// JoinKey builds a key from path elements, normalizing each one.
func JoinKey(elems ...string) Key {
	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		if k := NormalizeKey(e); k != "" {
			parts = append(parts, string(k))
		}
	}
	return NormalizeKey(strings.Join(parts, "/"))
}

// Base returns the last element of the key.
func (k Key) Base() string {
	if k == "" {
		return ""
	}
	return path.Base(string(k))
}

// Kind returns the lesson kind implied by the key's extension.
func (k Key) Kind() Kind {
	return KindOf(string(k))
}

// Kind classifies lesson files by how they are opened.
type Kind int

const (
	// KindOther is any file that is neither a document nor a notebook.
	KindOther Kind = iota

	// KindDocument is a Markdown lesson (.md).
	KindDocument

	// KindNotebook is a Jupyter notebook lesson (.ipynb).
	KindNotebook
)

// Lesson extensions recognized out of the box.
const (
	ExtDocument = ".md"
	ExtNotebook = ".ipynb"
)

// KindOf classifies a file name by its extension.
func KindOf(name string) Kind {
	switch strings.ToLower(path.Ext(strings.ReplaceAll(name, `\`, "/"))) {
	case ExtDocument:
		return KindDocument
	case ExtNotebook:
		return KindNotebook
	default:
		return KindOther
	}
}

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindNotebook:
		return "notebook"
	default:
		return "other"
	}
}
