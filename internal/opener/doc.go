// Package opener defines how lessons are shown to the student.
//
// The Opener interface has two capabilities, OpenDocument and OpenNotebook.
// The lesson browser only needs to know whether opening succeeded; how the
// lesson is displayed is up to the implementation.
//
//	var o opener.Opener = opener.NewSystemOpener("", "")
//	if err := o.OpenDocument(ctx, "/work/plans/Unit1/intro.md"); err != nil {
//	    // surface to the student, do not mark the lesson complete
//	}
//
// Recorder is an in-memory Opener for dry runs and tests.
package opener
