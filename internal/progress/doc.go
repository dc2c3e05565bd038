// Package progress persists which lessons a student has opened.
//
// Progress lives in a single JSON file, student_progress.json:
//
//	{
//	  "completedLessons": [
//	    "plans/Unit1/intro.md"
//	  ],
//	  "currentLesson": null
//	}
//
// The file is written under the configured custom save directory when that
// directory exists, and under the storage root (the workspace) otherwise.
// When neither exists, Save and MarkComplete return ErrNoSaveLocation.
//
// Every mutation rewrites the whole file. Mutations on one storage root are
// serialized through a process-wide lock.
package progress
