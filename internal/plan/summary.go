package plan

import (
	"context"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/lesson-browser/internal/model"
)

// UnitSummary counts lessons below one top-level folder of the plan.
type UnitSummary struct {
	Name      string
	Lessons   int
	Completed int
}

// Summary is the completion overview for a whole plan.
type Summary struct {
	// Units are the top-level folders in listing order.
	Units []UnitSummary

	// Loose counts lesson files sitting directly in the plan root.
	Loose UnitSummary

	Lessons   int
	Completed int
}

// Percent returns the completed fraction between 0 and 1.
func (s Summary) Percent() float64 {
	if s.Lessons == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Lessons)
}

// Summarizer walks a plan and counts completed lessons.
type Summarizer struct {
	root   string
	prefix model.Key
	lister *Lister
	limit  int
}

// NewSummarizer creates a Summarizer for the plan at root. Completion keys are
// built as prefix/<relative path>, the same way the session builds them.
// limit caps how many units are walked at once; values below 1 mean 1.
func NewSummarizer(root string, prefix model.Key, lister *Lister, limit int) *Summarizer {
	if limit < 1 {
		limit = 1
	}
	return &Summarizer{root: root, prefix: prefix, lister: lister, limit: limit}
}

// Summarize walks every top-level unit concurrently. done reports whether a
// key is completed and must be safe for concurrent use.
func (s *Summarizer) Summarize(ctx context.Context, done func(model.Key) bool) (Summary, error) {
	top := s.lister.List(s.root, "")

	var summary Summary
	summary.Loose.Name = "."
	for _, file := range top.Files {
		summary.Loose.Lessons++
		if done(model.JoinKey(string(s.prefix), file)) {
			summary.Loose.Completed++
		}
	}

	// Each goroutine owns one slot of units.
	units := make([]UnitSummary, len(top.Folders))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)

	for i, folder := range top.Folders {
		i, folder := i, folder
		g.Go(func() error {
			unit := UnitSummary{Name: folder}
			if err := s.walk(ctx, folder, &unit, done); err != nil {
				return err
			}
			units[i] = unit
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary.Units = units
	summary.Lessons = summary.Loose.Lessons
	summary.Completed = summary.Loose.Completed
	for _, u := range units {
		summary.Lessons += u.Lessons
		summary.Completed += u.Completed
	}
	return summary, nil
}

func (s *Summarizer) walk(ctx context.Context, rel string, unit *UnitSummary, done func(model.Key) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	listing := s.lister.List(s.root, rel)
	for _, file := range listing.Files {
		unit.Lessons++
		if done(model.JoinKey(string(s.prefix), rel, file)) {
			unit.Completed++
		}
	}
	for _, folder := range listing.Folders {
		if err := s.walk(ctx, path.Join(rel, folder), unit, done); err != nil {
			return err
		}
	}
	return nil
}
