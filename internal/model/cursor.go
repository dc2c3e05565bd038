package model

import (
	"path"
	"strings"
)

// Cursor is the navigation position inside the plan root.
//
// The position is a forward-slash relative path; "" is the root. A Cursor
// never points above the root: a descent that would climb out is clamped back
// to the root, and Ascend at the root is a no-op.
//
// Descend does not check that the child exists. An invalid descent shows up as
// a "not found" view on the next render.
//
// Example:
//
//	var c Cursor
//	c.Descend("Unit1")
//	c.Descend("Week2")
//	c.Path()  // "Unit1/Week2"
//	c.Ascend()
//	c.Path()  // "Unit1"
type Cursor struct {
	rel string
}

// NewCursor returns a cursor positioned at rel, clamped to the root.
func NewCursor(rel string) Cursor {
	return Cursor{rel: clampRel(rel)}
}

// Path returns the current relative path.
func (c *Cursor) Path() string {
	return c.rel
}

// AtRoot reports whether the cursor is at the plan root.
func (c *Cursor) AtRoot() bool {
	return c.rel == ""
}

// Descend appends name to the current path.
func (c *Cursor) Descend(name string) {
	c.rel = clampRel(path.Join(c.rel, strings.ReplaceAll(name, `\`, "/")))
}

// Ascend removes the last path component.
func (c *Cursor) Ascend() {
	if c.rel == "" {
		return
	}
	c.rel = clampRel(path.Dir(c.rel))
}

// Segments returns the path components from the root, for breadcrumbs.
func (c *Cursor) Segments() []string {
	if c.rel == "" {
		return nil
	}
	return strings.Split(c.rel, "/")
}

func clampRel(rel string) string {
	k := string(NormalizeKey(rel))
	if k == ".." || strings.HasPrefix(k, "../") {
		return ""
	}
	return k
}
