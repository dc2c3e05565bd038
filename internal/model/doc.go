// Package model defines the core data structures used throughout
// the lesson browser.
//
// # Keys
//
// Key identifies a lesson by its normalized, forward-slash path relative to
// the workspace root:
//
//	key := model.NormalizeKey(`plans\Unit1\intro.md`)
//	fmt.Println(key)        // plans/Unit1/intro.md
//	fmt.Println(key.Kind()) // document
//
// # Progress
//
// ProgressRecord mirrors student_progress.json:
//
//	rec := model.NewProgressRecord()
//	rec.Add("plans/Unit1/intro.md") // true
//	rec.Add("plans/Unit1/intro.md") // false, already recorded
//
// # Navigation
//
// Cursor is the relative position inside the plan root, and View is the
// render model built for it:
//
//	var c model.Cursor
//	c.Descend("Unit1")
//	c.Ascend() // back at the root
//	c.Ascend() // still at the root
package model
