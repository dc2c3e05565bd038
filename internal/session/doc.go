// Package session ties navigation, listing, progress and opening together.
//
// # Session
//
// A Session owns one navigation cursor and answers every navigation request
// with a fresh view:
//
//	s := session.New(settings, opener.NewSystemOpener("", ""), func(e session.Event) {
//	    fmt.Println(e.Message)
//	})
//
//	view := s.OpenFolder("Unit1")
//	view, err := s.OpenLesson(ctx, "plans/Unit1/intro.md")
//	view = s.GoBack()
//
// # Messages
//
// Front ends that talk JSON can post messages instead:
//
//	msg, _ := session.ParseMessage([]byte(`{"type":"openFolder","value":"Unit1"}`))
//	view, err := s.Handle(ctx, msg)
//
// # Events
//
// Warnings and errors the student should see are delivered to the event
// callback and logged:
//
//	type Event struct {
//	    Message string
//	    Level   Level // Info, Verbose, Warning, Error, Success
//	}
//
// Opening a lesson fails without marking it when the opener fails. A lesson
// that opened but could not be saved produces a warning and
// progress.ErrNoSaveLocation.
package session
