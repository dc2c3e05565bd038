// Package ioutils provides file system utilities.
//
// # File Operations
//
//	// Replace a file without exposing partial writes
//	err := ioutils.WriteFileAtomic("/work/student_progress.json", data)
//
//	// Create a file only if it is not there yet
//	created, err := ioutils.WriteIfMissing("/work/plans/quiz.py", template)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Existence Checks
//
// DirExists and FileExists never cache: removable drives that disappear
// between two calls are reported as missing on the second call.
package ioutils
