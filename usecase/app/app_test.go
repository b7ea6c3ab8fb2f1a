package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/internal/services"
	"github.com/fastygo/cooltodo/repository/memory"
	"github.com/fastygo/cooltodo/usecase/profile"
	"github.com/fastygo/cooltodo/usecase/task"
)

type AppTestSuite struct {
	suite.Suite
	ctx context.Context
	kv  *memory.KVRepository
	now time.Time
	app *App
}

func (s *AppTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.kv = memory.NewKVRepository()
	s.now = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	s.app = s.build()
}

func (s *AppTestSuite) build() *App {
	clock := func() time.Time { return s.now }
	bridge := services.NewSnapshotBridge(s.kv, nil)
	tasks := task.New(bridge, nil, task.Config{Clock: clock})
	prof := profile.New(bridge, nil, profile.Config{Clock: clock})
	a := New(tasks, prof, clock, nil)
	a.Load(s.ctx)
	return a
}

func (s *AppTestSuite) TestCreateTaskAwardsCreationXP() {
	out, err := s.app.CreateTask(s.ctx, domain.TaskDraft{Text: "Plan week"})
	s.Require().NoError(err)
	s.Require().NotNil(out.Task)
	s.Equal("Plan week", out.Task.Text)
	s.Equal(CreationXP, out.XPAwarded)

	user := s.app.Profile.User()
	s.Equal(5, user.XP)
	s.Equal(1, user.TotalTasksCompleted)
	s.Require().Len(out.Unlocked, 1)
	s.Equal("first-task", out.Unlocked[0].ID)
}

func (s *AppTestSuite) TestInvalidDraftAwardsNothing() {
	_, err := s.app.CreateTask(s.ctx, domain.TaskDraft{Text: " "})
	s.ErrorIs(err, domain.ErrTextRequired)
	s.Equal(0, s.app.Profile.User().XP)
	s.Equal(0, s.kv.Writes())
}

func (s *AppTestSuite) TestCompletionXPByPriority() {
	for _, tc := range []struct {
		priority domain.Priority
		xp       int
	}{
		{domain.PriorityHigh, 20},
		{domain.PriorityMedium, 15},
		{domain.PriorityLow, 10},
	} {
		created, err := s.app.CreateTask(s.ctx, domain.TaskDraft{Text: "t", Priority: tc.priority})
		s.Require().NoError(err)
		before := s.app.Profile.User().XP

		out, err := s.app.ToggleTask(s.ctx, created.Task.ID)
		s.Require().NoError(err)
		s.True(out.Found)
		s.Equal(tc.xp, out.XPAwarded, tc.priority)
		s.Equal(before+tc.xp, s.app.Profile.User().XP)
	}
}

func (s *AppTestSuite) TestUncompleteAwardsNothing() {
	created, err := s.app.CreateTask(s.ctx, domain.TaskDraft{Text: "t"})
	s.Require().NoError(err)
	_, err = s.app.ToggleTask(s.ctx, created.Task.ID)
	s.Require().NoError(err)
	xp := s.app.Profile.User().XP

	out, err := s.app.ToggleTask(s.ctx, created.Task.ID)
	s.Require().NoError(err)
	s.False(out.Task.Completed)
	s.Equal(0, out.XPAwarded)
	s.Equal(xp, s.app.Profile.User().XP)
}

func (s *AppTestSuite) TestToggleUnknownIsNoop() {
	out, err := s.app.ToggleTask(s.ctx, "missing")
	s.NoError(err)
	s.False(out.Found)
	s.Equal(0, s.kv.Writes())
}

func (s *AppTestSuite) TestToggleDeletedTaskIsRejected() {
	created, err := s.app.CreateTask(s.ctx, domain.TaskDraft{Text: "t", Priority: domain.PriorityHigh})
	s.Require().NoError(err)
	_, _, err = s.app.Tasks.Delete(s.ctx, created.Task.ID)
	s.Require().NoError(err)
	xp, writes := s.app.Profile.User().XP, s.kv.Writes()

	for i := 0; i < 3; i++ {
		out, err := s.app.ToggleTask(s.ctx, created.Task.ID)
		s.ErrorIs(err, domain.ErrTaskDeleted)
		s.True(out.Found)
		s.Require().NotNil(out.Task)
		s.False(out.Task.Completed)
		s.Equal(0, out.XPAwarded)
	}
	s.Equal(xp, s.app.Profile.User().XP)
	s.Equal(1, s.app.Profile.User().TotalTasksCompleted)
	s.Equal(writes, s.kv.Writes())

	_, _, err = s.app.Tasks.Restore(s.ctx, created.Task.ID)
	s.Require().NoError(err)
	out, err := s.app.ToggleTask(s.ctx, created.Task.ID)
	s.Require().NoError(err)
	s.Equal(20, out.XPAwarded)
}

func (s *AppTestSuite) TestMilestonesFireOnceEach() {
	var unlocked []string
	for i := 0; i < 60; i++ {
		out, err := s.app.AwardXP(s.ctx, 1)
		s.Require().NoError(err)
		for _, a := range out.Unlocked {
			unlocked = append(unlocked, a.ID)
		}
	}
	s.Equal([]string{"first-task", "ten-tasks", "fifty-tasks"}, unlocked)
	s.Len(s.app.Profile.User().Achievements, 3)
}

func (s *AppTestSuite) TestLevelUpAddsNotification() {
	out, err := s.app.AwardXP(s.ctx, 120)
	s.Require().NoError(err)
	s.True(out.LeveledUp)
	s.Equal(2, out.Level)

	kinds := map[domain.NotificationKind]int{}
	for _, n := range s.app.Profile.Notifications() {
		kinds[n.Kind]++
	}
	s.Equal(1, kinds[domain.NotificationLevelUp])
	s.Equal(1, kinds[domain.NotificationAchievement])
}

func (s *AppTestSuite) TestCompletingUpdatesStreak() {
	created, err := s.app.CreateTask(s.ctx, domain.TaskDraft{Text: "daily"})
	s.Require().NoError(err)
	out, err := s.app.ToggleTask(s.ctx, created.Task.ID)
	s.Require().NoError(err)
	s.Equal(1, out.Streak)
	s.Equal(1, s.app.Profile.User().Streak)

	s.now = s.now.Add(72 * time.Hour)
	streak, err := s.app.RefreshStreak(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, streak)
	s.Equal(0, s.app.Profile.User().Streak)
}

func (s *AppTestSuite) TestStateSurvivesRestart() {
	created, err := s.app.CreateTask(s.ctx, domain.TaskDraft{Text: "persist me", Priority: domain.PriorityHigh})
	s.Require().NoError(err)
	_, err = s.app.ToggleTask(s.ctx, created.Task.ID)
	s.Require().NoError(err)

	restarted := s.build()
	got, ok := restarted.Tasks.Get(created.Task.ID)
	s.Require().True(ok)
	s.True(got.Completed)
	s.Require().NotNil(got.CompletedAt)
	s.Equal(25, restarted.Profile.User().XP)
	s.Len(restarted.Profile.User().Achievements, 1)
}

func (s *AppTestSuite) TestNilStoresPanic() {
	s.Panics(func() { New(nil, s.app.Profile, nil, nil) })
	s.Panics(func() { New(s.app.Tasks, nil, nil, nil) })
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}
