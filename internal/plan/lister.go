package plan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/handiism/lesson-browser/internal/model"
)

// Config controls which entries a Lister reports.
type Config struct {
	// Extensions are the lesson file extensions, including the dot.
	// Matching is case-insensitive.
	Extensions []string

	// Excluded names are hidden whether they are files or folders.
	// The name "Extensions" is always excluded, listed here or not.
	Excluded []string

	// Sort orders folders and files case-insensitively. When false the raw
	// directory enumeration order is kept, which differs between platforms
	// and file systems.
	Sort bool
}

// alwaysExcluded is hidden regardless of Config.Excluded.
const alwaysExcluded = "Extensions"

// Lister lists one level of a plan directory.
//
// Lister never recurses: callers descend one level at a time and list again.
// It never fails either. A directory that is missing or unreadable lists as
// empty, and Exists tells the two cases apart when the caller needs to.
//
// Example:
//
//	l := NewLister(Config{Extensions: []string{".md", ".ipynb"}, Sort: true})
//	listing := l.List("/work/plans", "Unit1")
//	for _, f := range listing.Files {
//	    fmt.Println(f)
//	}
type Lister struct {
	exts     map[string]struct{}
	excluded map[string]struct{}
	sort     bool
}

// NewLister creates a Lister from cfg.
func NewLister(cfg Config) *Lister {
	l := &Lister{
		exts:     make(map[string]struct{}, len(cfg.Extensions)),
		excluded: map[string]struct{}{alwaysExcluded: {}},
		sort:     cfg.Sort,
	}
	for _, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		l.exts[ext] = struct{}{}
	}
	for _, name := range cfg.Excluded {
		l.excluded[name] = struct{}{}
	}
	return l
}

// Resolve returns the absolute directory for cursor under root.
func (l *Lister) Resolve(root, cursor string) string {
	return filepath.Join(root, filepath.FromSlash(cursor))
}

// Exists reports whether cursor resolves to an existing directory.
func (l *Lister) Exists(root, cursor string) bool {
	info, err := os.Stat(l.Resolve(root, cursor))
	return err == nil && info.IsDir()
}

// List returns the folders and lesson files directly under root/cursor.
func (l *Lister) List(root, cursor string) model.Listing {
	dir := l.Resolve(root, cursor)

	f, err := os.Open(dir)
	if err != nil {
		return model.Listing{}
	}
	defer f.Close()

	// (*os.File).ReadDir keeps directory order; os.ReadDir would sort by name.
	entries, err := f.ReadDir(-1)
	if err != nil {
		return model.Listing{}
	}

	var listing model.Listing
	for _, entry := range entries {
		name := entry.Name()
		if l.hidden(name) {
			continue
		}

		isDir, isFile := entry.IsDir(), entry.Type().IsRegular()
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			isDir, isFile = info.IsDir(), info.Mode().IsRegular()
		}

		switch {
		case isDir:
			listing.Folders = append(listing.Folders, name)
		case isFile && l.IsLesson(name):
			listing.Files = append(listing.Files, name)
		}
	}

	if l.sort {
		sortNames(listing.Folders)
		sortNames(listing.Files)
	}
	return listing
}

// IsLesson reports whether name has one of the configured lesson extensions.
func (l *Lister) IsLesson(name string) bool {
	_, ok := l.exts[strings.ToLower(filepath.Ext(name))]
	return ok
}

func (l *Lister) hidden(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := l.excluded[name]
	return ok
}

// sortNames orders names case-insensitively, falling back to a byte compare
// so names that differ only in case keep a stable order.
func sortNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
}
