package model

// Listing is the content of one plan directory after filtering.
type Listing struct {
	Folders []string
	Files   []string
}

// Empty reports whether the listing has no folders and no files.
func (l Listing) Empty() bool {
	return len(l.Folders) == 0 && len(l.Files) == 0
}

// ViewState tells the renderer which placeholder, if any, to show.
type ViewState int

const (
	// ViewReady means the view has entries to render.
	ViewReady ViewState = iota

	// ViewEmpty means the directory exists but nothing survived filtering.
	ViewEmpty

	// ViewNotFound means the cursor resolves to a missing directory.
	ViewNotFound
)

// Placeholder returns the neutral message for non-ready views.
func (s ViewState) Placeholder() string {
	switch s {
	case ViewEmpty:
		return "This folder is empty."
	case ViewNotFound:
		return "Folder not found."
	default:
		return ""
	}
}

// Entry is one renderable row of a View.
type Entry struct {
	// Name is the file or folder name as listed.
	Name string

	// Folder is true for directories.
	Folder bool

	// Key is the completion key for files. Empty for folders.
	Key Key

	// Kind is the lesson kind for files.
	Kind Kind

	// Done is true when Key is recorded as completed.
	Done bool
}

// View is what the menu renders for the current cursor position.
type View struct {
	// Path is the cursor path ("" at the root).
	Path string

	// HasBack is true when the cursor can ascend.
	HasBack bool

	// State selects between entries and a placeholder.
	State ViewState

	// Entries lists folders first, then files, in listing order.
	Entries []Entry
}

// Folders returns the folder entries.
func (v View) Folders() []Entry {
	var out []Entry
	for _, e := range v.Entries {
		if e.Folder {
			out = append(out, e)
		}
	}
	return out
}

// Files returns the file entries.
func (v View) Files() []Entry {
	var out []Entry
	for _, e := range v.Entries {
		if !e.Folder {
			out = append(out, e)
		}
	}
	return out
}

// DoneCount returns how many file entries are completed.
func (v View) DoneCount() int {
	n := 0
	for _, e := range v.Entries {
		if !e.Folder && e.Done {
			n++
		}
	}
	return n
}
