package task

import (
	"cmp"
	"slices"
	"strings"

	"github.com/fastygo/cooltodo/domain"
)

// Stats partitions the collection by status.
type Stats struct {
	Total     int `json:"total" yaml:"total"`
	Active    int `json:"active" yaml:"active"`
	Completed int `json:"completed" yaml:"completed"`
	Deleted   int `json:"deleted" yaml:"deleted"`
}

// Visible returns the tasks matching the state's filter, search term and category,
// highest priority first and newest first within a priority.
func Visible(s State) []domain.Task {
	term := strings.ToLower(s.Search)
	out := make([]domain.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if !s.Filter.Matches(t) {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(t.Text), term) {
			continue
		}
		if s.Category != "" && s.Category != domain.AllCategories && t.Category != s.Category {
			continue
		}
		out = append(out, t)
	}
	slices.SortStableFunc(out, compareTasks)
	return out
}

func compareTasks(a, b domain.Task) int {
	if c := cmp.Compare(b.Priority.Rank(), a.Priority.Rank()); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// Summarize counts tasks in a single pass.
func Summarize(tasks []domain.Task) Stats {
	var st Stats
	for _, t := range tasks {
		switch {
		case t.Deleted:
			st.Deleted++
			continue
		case t.Completed:
			st.Completed++
		default:
			st.Active++
		}
		st.Total++
	}
	return st
}
