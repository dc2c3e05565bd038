// Package plan lists and walks the lesson plan directory.
//
// The plan root is a directory (normally <workspace>/plans) whose folders
// group lessons and whose files are the lessons themselves.
//
// # Listing
//
// Lister returns one level at a time and applies the visibility rules:
//
//	lister := plan.NewLister(plan.Config{
//	    Extensions: []string{".md", ".ipynb"},
//	    Sort:       true,
//	})
//	listing := lister.List("/work/plans", "Unit1")
//
// Folders named "Extensions" and every entry starting with "." are hidden.
// Files are kept only when their extension is a lesson extension.
//
// # Tree
//
// Tree wraps a Lister for the expandable tree menu:
//
//	tree := plan.NewTree("/work/plans", lister)
//	for _, child := range tree.Children(tree.Root()) {
//	    fmt.Println(child.Rel, child.Dir)
//	}
//
// # Summary
//
// Summarizer counts lessons and completions per top-level unit, walking
// units concurrently:
//
//	s := plan.NewSummarizer("/work/plans", "plans", lister, 4)
//	summary, err := s.Summarize(ctx, store.IsComplete)
package plan
