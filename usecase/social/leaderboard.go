package social

import (
	"cmp"
	"slices"
	"time"

	"github.com/fastygo/cooltodo/domain"
)

// Entry is one leaderboard row.
type Entry struct {
	Rank           int    `json:"rank" yaml:"rank"`
	Name           string `json:"name" yaml:"name"`
	Level          int    `json:"level" yaml:"level"`
	XP             int    `json:"xp" yaml:"xp"`
	TasksCompleted int    `json:"tasksCompleted" yaml:"tasksCompleted"`
	IsCurrentUser  bool   `json:"isCurrentUser" yaml:"isCurrentUser"`
}

// competitors are static; there is no backing service for other users.
var competitors = []Entry{
	{Name: "Alice Johnson", Level: 5, XP: 2450, TasksCompleted: 89},
	{Name: "Bob Smith", Level: 3, XP: 1200, TasksCompleted: 45},
	{Name: "Carol Davis", Level: 4, XP: 1850, TasksCompleted: 67},
}

// Leaderboard ranks the user among the mock competitors by XP, highest first.
// Ties keep the user ahead of the competitor.
func Leaderboard(u domain.User) []Entry {
	rows := make([]Entry, 0, len(competitors)+1)
	rows = append(rows, Entry{
		Name:           u.Name,
		Level:          u.Level,
		XP:             u.XP,
		TasksCompleted: u.TotalTasksCompleted,
		IsCurrentUser:  true,
	})
	rows = append(rows, competitors...)
	slices.SortStableFunc(rows, func(a, b Entry) int {
		return cmp.Compare(b.XP, a.XP)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// Activity is an item of the mock friend activity feed.
type Activity struct {
	ID          string          `json:"id" yaml:"id"`
	FriendName  string          `json:"friendName" yaml:"friendName"`
	FriendLevel int             `json:"friendLevel" yaml:"friendLevel"`
	Text        string          `json:"text" yaml:"text"`
	Completed   bool            `json:"completed" yaml:"completed"`
	Priority    domain.Priority `json:"priority" yaml:"priority"`
	Category    string          `json:"category" yaml:"category"`
	CompletedAt *time.Time      `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

// FriendActivity returns the static friend feed stamped relative to now.
func FriendActivity(now time.Time) []Activity {
	done := now
	return []Activity{
		{ID: "1", FriendName: "Alice Johnson", FriendLevel: 5, Text: "Finish quarterly report",
			Completed: true, Priority: domain.PriorityHigh, Category: "Work", CompletedAt: &done},
		{ID: "2", FriendName: "Alice Johnson", FriendLevel: 5, Text: "Morning workout",
			Priority: domain.PriorityMedium, Category: "Health"},
		{ID: "3", FriendName: "Bob Smith", FriendLevel: 3, Text: "Read 20 pages of new book",
			Completed: true, Priority: domain.PriorityLow, Category: "Learning", CompletedAt: &done},
	}
}
