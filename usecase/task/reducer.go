package task

import (
	"slices"
	"time"

	"github.com/fastygo/cooltodo/domain"
)

// State is the full Task Store state. Only Tasks is persisted; the rest is view state.
// Slices held by a State are never modified after it is produced.
type State struct {
	Tasks    []domain.Task
	Filter   domain.StatusFilter
	Search   string
	Category string
}

// InitialState is the empty store shown on first run.
func InitialState() State {
	return State{
		Tasks:    []domain.Task{},
		Filter:   domain.FilterAll,
		Category: domain.AllCategories,
	}
}

// Action is one of the task actions below.
type Action interface {
	taskAction()
}

type (
	// LoadTasks replaces the collection with persisted data.
	LoadTasks struct{ Tasks []domain.Task }
	// AddTask appends a validated draft. ID, OwnerID and At are assigned by the caller.
	AddTask struct {
		ID      string
		OwnerID string
		Draft   domain.TaskDraft
		At      time.Time
	}
	ToggleTask struct {
		ID string
		At time.Time
	}
	DeleteTask struct {
		ID string
		At time.Time
	}
	RestoreTask struct{ ID string }
	EditTask    struct {
		ID    string
		Draft domain.TaskDraft
	}
	SetFilter   struct{ Filter domain.StatusFilter }
	SetSearch   struct{ Term string }
	SetCategory struct{ Category string }
)

func (LoadTasks) taskAction()   {}
func (AddTask) taskAction()     {}
func (ToggleTask) taskAction()  {}
func (DeleteTask) taskAction()  {}
func (RestoreTask) taskAction() {}
func (EditTask) taskAction()    {}
func (SetFilter) taskAction()   {}
func (SetSearch) taskAction()   {}
func (SetCategory) taskAction() {}

// Reduce applies action to s and returns the next state. The flag reports whether
// the persisted task collection changed. Lookup misses return s unchanged.
func Reduce(s State, action Action) (State, bool) {
	switch a := action.(type) {
	case LoadTasks:
		tasks := a.Tasks
		if tasks == nil {
			tasks = []domain.Task{}
		}
		s.Tasks = tasks
		return s, true

	case AddTask:
		task := domain.Task{
			ID:        a.ID,
			Text:      a.Draft.Text,
			CreatedAt: a.At,
			Priority:  a.Draft.Priority,
			Category:  a.Draft.Category,
			OwnerID:   a.OwnerID,
		}
		s.Tasks = append(s.Tasks[:len(s.Tasks):len(s.Tasks)], task)
		return s, true

	case ToggleTask:
		return s.update(a.ID, func(t domain.Task) domain.Task {
			t.Completed = !t.Completed
			if t.Completed {
				at := a.At
				t.CompletedAt = &at
			} else {
				t.CompletedAt = nil
			}
			return t
		})

	case DeleteTask:
		return s.update(a.ID, func(t domain.Task) domain.Task {
			at := a.At
			t.Deleted = true
			t.DeletedAt = &at
			return t
		})

	case RestoreTask:
		return s.update(a.ID, func(t domain.Task) domain.Task {
			t.Deleted = false
			t.DeletedAt = nil
			return t
		})

	case EditTask:
		return s.update(a.ID, func(t domain.Task) domain.Task {
			t.Text = a.Draft.Text
			t.Priority = a.Draft.Priority
			t.Category = a.Draft.Category
			return t
		})

	case SetFilter:
		s.Filter = a.Filter
		return s, false

	case SetSearch:
		s.Search = a.Term
		return s, false

	case SetCategory:
		s.Category = a.Category
		return s, false

	default:
		return s, false
	}
}

func (s State) update(id string, fn func(domain.Task) domain.Task) (State, bool) {
	i := slices.IndexFunc(s.Tasks, func(t domain.Task) bool { return t.ID == id })
	if i < 0 {
		return s, false
	}
	next := slices.Clone(s.Tasks)
	next[i] = fn(next[i])
	s.Tasks = next
	return s, true
}

// Find returns the task with id.
func (s State) Find(id string) (domain.Task, bool) {
	i := slices.IndexFunc(s.Tasks, func(t domain.Task) bool { return t.ID == id })
	if i < 0 {
		return domain.Task{}, false
	}
	return s.Tasks[i], true
}
