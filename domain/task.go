package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTaskTextLength is the upper bound for trimmed task text, counted in runes.
const MaxTaskTextLength = 200

// DefaultOwnerID is the single-user placeholder stamped on every task.
const DefaultOwnerID = "current-user"

// Priority ranks tasks; higher values sort first.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities for sorting. Unknown values rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// ParsePriority accepts the lowercase names, falling back to medium on empty input.
func ParsePriority(value string) (Priority, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return PriorityMedium, nil
	}
	p := Priority(value)
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// Categories is the suggested category set. Tasks are not constrained to it.
var Categories = []string{"Personal", "Work", "Health", "Learning", "Shopping", "Other"}

// DefaultCategory is used when a draft leaves the category empty.
const DefaultCategory = "Personal"

// Task represents one user-created item of work.
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Text        string     `json:"text" yaml:"text"`
	Completed   bool       `json:"completed" yaml:"completed"`
	Deleted     bool       `json:"deleted" yaml:"deleted"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty" yaml:"deletedAt,omitempty"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Category    string     `json:"category" yaml:"category"`
	OwnerID     string     `json:"ownerId" yaml:"ownerId"`
}

// IsActive reports whether the task is neither completed nor deleted.
func (t Task) IsActive() bool {
	return !t.Completed && !t.Deleted
}

// IsDone reports whether the task is completed and still visible.
func (t Task) IsDone() bool {
	return t.Completed && !t.Deleted
}

// TaskDraft carries the user-supplied fields of a new or edited task.
type TaskDraft struct {
	Text     string   `json:"text" yaml:"text"`
	Priority Priority `json:"priority" yaml:"priority"`
	Category string   `json:"category" yaml:"category"`
}

// Normalize trims the draft and validates it, returning the cleaned copy.
func (d TaskDraft) Normalize() (TaskDraft, error) {
	d.Text = strings.TrimSpace(d.Text)
	if d.Text == "" {
		return d, ErrTextRequired
	}
	if utf8.RuneCountInString(d.Text) > MaxTaskTextLength {
		return d, ErrTextTooLong
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if !d.Priority.Valid() {
		return d, ErrInvalidPriority
	}
	d.Category = strings.TrimSpace(d.Category)
	if d.Category == "" {
		d.Category = DefaultCategory
	}
	return d, nil
}

// StatusFilter selects which tasks a list view shows.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
	FilterDeleted   StatusFilter = "deleted"
)

// AllCategories is the category sentinel matching every task.
const AllCategories = "all"

func (f StatusFilter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted, FilterDeleted:
		return true
	}
	return false
}

// Matches applies the status part of a list filter.
func (f StatusFilter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return t.IsActive()
	case FilterCompleted:
		return t.IsDone()
	case FilterDeleted:
		return t.Deleted
	default:
		return !t.Deleted
	}
}
