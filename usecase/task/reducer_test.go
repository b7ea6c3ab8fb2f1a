package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/cooltodo/domain"
)

var t0 = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func seeded(t *testing.T) State {
	t.Helper()
	s := InitialState()
	var changed bool
	s, changed = Reduce(s, AddTask{ID: "a", OwnerID: domain.DefaultOwnerID, At: t0,
		Draft: domain.TaskDraft{Text: "Write report", Priority: domain.PriorityHigh, Category: "Work"}})
	require.True(t, changed)
	s, _ = Reduce(s, AddTask{ID: "b", OwnerID: domain.DefaultOwnerID, At: t0.Add(time.Minute),
		Draft: domain.TaskDraft{Text: "Buy milk", Priority: domain.PriorityLow, Category: "Shopping"}})
	return s
}

func TestReduceAdd(t *testing.T) {
	s := seeded(t)
	require.Len(t, s.Tasks, 2)

	added := s.Tasks[0]
	assert.Equal(t, "a", added.ID)
	assert.Equal(t, "Write report", added.Text)
	assert.Equal(t, t0, added.CreatedAt)
	assert.Equal(t, domain.DefaultOwnerID, added.OwnerID)
	assert.False(t, added.Completed)
	assert.Nil(t, added.CompletedAt)
	assert.Nil(t, added.DeletedAt)
}

func TestReduceDoesNotMutatePreviousState(t *testing.T) {
	before := seeded(t)
	after, changed := Reduce(before, ToggleTask{ID: "a", At: t0})
	require.True(t, changed)

	assert.False(t, before.Tasks[0].Completed)
	assert.True(t, after.Tasks[0].Completed)

	grown, _ := Reduce(before, AddTask{ID: "c", Draft: domain.TaskDraft{Text: "c"}})
	assert.Len(t, before.Tasks, 2)
	assert.Len(t, grown.Tasks, 3)
}

func TestReduceToggle(t *testing.T) {
	s := seeded(t)
	at := t0.Add(time.Hour)

	s, changed := Reduce(s, ToggleTask{ID: "a", At: at})
	require.True(t, changed)
	task, _ := s.Find("a")
	assert.True(t, task.Completed)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, at, *task.CompletedAt)

	s, _ = Reduce(s, ToggleTask{ID: "a", At: at})
	task, _ = s.Find("a")
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
}

func TestReduceDeleteRestore(t *testing.T) {
	s := seeded(t)
	s, changed := Reduce(s, DeleteTask{ID: "b", At: t0})
	require.True(t, changed)

	task, ok := s.Find("b")
	require.True(t, ok, "soft delete keeps the record")
	assert.True(t, task.Deleted)
	require.NotNil(t, task.DeletedAt)

	s, _ = Reduce(s, RestoreTask{ID: "b"})
	task, _ = s.Find("b")
	assert.False(t, task.Deleted)
	assert.Nil(t, task.DeletedAt)
}

func TestReduceEdit(t *testing.T) {
	s := seeded(t)
	s, changed := Reduce(s, EditTask{ID: "b", Draft: domain.TaskDraft{Text: "Buy oat milk", Priority: domain.PriorityMedium, Category: "Personal"}})
	require.True(t, changed)

	task, _ := s.Find("b")
	assert.Equal(t, "Buy oat milk", task.Text)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, "Personal", task.Category)
	assert.Equal(t, t0.Add(time.Minute), task.CreatedAt)
}

func TestReduceUnknownIDIsNoop(t *testing.T) {
	s := seeded(t)
	for _, action := range []Action{
		ToggleTask{ID: "missing"},
		DeleteTask{ID: "missing"},
		RestoreTask{ID: "missing"},
		EditTask{ID: "missing", Draft: domain.TaskDraft{Text: "x"}},
	} {
		next, changed := Reduce(s, action)
		assert.False(t, changed, "%T", action)
		assert.Equal(t, s, next)
	}
}

func TestReduceViewStateDoesNotChangeCollection(t *testing.T) {
	s := seeded(t)
	s, changed := Reduce(s, SetFilter{Filter: domain.FilterCompleted})
	assert.False(t, changed)
	s, changed = Reduce(s, SetSearch{Term: "milk"})
	assert.False(t, changed)
	s, changed = Reduce(s, SetCategory{Category: "Work"})
	assert.False(t, changed)

	assert.Equal(t, domain.FilterCompleted, s.Filter)
	assert.Equal(t, "milk", s.Search)
	assert.Equal(t, "Work", s.Category)
}

func TestReduceLoadReplaces(t *testing.T) {
	s := seeded(t)
	s, changed := Reduce(s, LoadTasks{})
	assert.True(t, changed)
	assert.NotNil(t, s.Tasks)
	assert.Empty(t, s.Tasks)
}
