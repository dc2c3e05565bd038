// Package notebook applies the side effects of opening a notebook lesson.
//
// # Cell Locking
//
// Once a notebook lesson is opened its cells are frozen:
//
//	n, err := notebook.NewLocker().Lock(path)
//
// # Companion Script
//
// Students write their code in a .py file next to the notebook:
//
//	script := notebook.CompanionPath(path)
//	created, err := notebook.Scaffold(script, "# Write your code here:\n")
package notebook
