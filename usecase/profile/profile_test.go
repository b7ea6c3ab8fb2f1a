package profile

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/internal/services"
	"github.com/fastygo/cooltodo/repository/memory"
)

type ProfileUseCaseTestSuite struct {
	suite.Suite
	ctx   context.Context
	kv    *memory.KVRepository
	seq   int
	store *UseCase
}

func (s *ProfileUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.kv = memory.NewKVRepository()
	s.seq = 0
	s.store = s.newStore()
}

func (s *ProfileUseCaseTestSuite) newStore() *UseCase {
	return New(services.NewSnapshotBridge(s.kv, nil), nil, Config{
		Clock: func() time.Time { return t0 },
		NewID: func() string {
			s.seq++
			return fmt.Sprintf("n-%d", s.seq)
		},
	})
}

func (s *ProfileUseCaseTestSuite) TestDefaultsWhenNothingStored() {
	s.False(s.store.Load(s.ctx))
	s.Equal("Cool Todo User", s.store.User().Name)
	s.Empty(s.store.Notifications())
	s.Equal(0, s.kv.Writes())
}

func (s *ProfileUseCaseTestSuite) TestAddXPPersistsBothSlots() {
	user, leveledUp, err := s.store.AddXP(s.ctx, 100)
	s.Require().NoError(err)
	s.True(leveledUp)
	s.Equal(2, user.Level)
	s.Equal(2, s.kv.Writes())

	reloaded := s.newStore()
	s.True(reloaded.Load(s.ctx))
	s.Equal(100, reloaded.User().XP)
	s.Equal(2, reloaded.User().Level)
	s.Require().Len(reloaded.Notifications(), 1)
	s.Equal(domain.NotificationLevelUp, reloaded.Notifications()[0].Kind)
}

func (s *ProfileUseCaseTestSuite) TestAddXPValidates() {
	_, _, err := s.store.AddXP(s.ctx, 0)
	s.ErrorIs(err, domain.ErrInvalidXPAmount)
	_, _, err = s.store.AddXP(s.ctx, -5)
	s.ErrorIs(err, domain.ErrInvalidXPAmount)
	s.Equal(0, s.kv.Writes())
}

func (s *ProfileUseCaseTestSuite) TestUnlockOnlyOnce() {
	achievement := Milestones[1].Achievement
	unlocked, err := s.store.UnlockAchievement(s.ctx, achievement)
	s.Require().NoError(err)
	s.True(unlocked)
	writes := s.kv.Writes()

	unlocked, err = s.store.UnlockAchievement(s.ctx, achievement)
	s.Require().NoError(err)
	s.False(unlocked)
	s.Equal(writes, s.kv.Writes())
	s.Len(s.store.User().Achievements, 1)
	s.Equal(1, s.store.UnreadCount())
}

func (s *ProfileUseCaseTestSuite) TestNotifyAndMarkRead() {
	n, err := s.store.Notify(s.ctx, domain.NotificationFriendRequest, "Dana wants to be friends")
	s.Require().NoError(err)
	s.Equal("n-1", n.ID)
	s.Equal(1, s.store.UnreadCount())

	found, err := s.store.MarkRead(s.ctx, n.ID)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(0, s.store.UnreadCount())

	found, err = s.store.MarkRead(s.ctx, "missing")
	s.NoError(err)
	s.False(found)

	_, err = s.store.Notify(s.ctx, "reminder", "x")
	s.ErrorIs(err, domain.ErrInvalidPayload)
}

func (s *ProfileUseCaseTestSuite) TestFriendsAndStreak() {
	added, err := s.store.AddFriend(s.ctx, domain.Friend{Name: "Carol Davis", Level: 4})
	s.Require().NoError(err)
	s.True(added)
	friends := s.store.User().Friends
	s.Require().Len(friends, 3)
	s.Equal("n-1", friends[2].ID)
	s.Equal(t0, friends[2].LastActive)

	added, err = s.store.AddFriend(s.ctx, domain.Friend{ID: "friend-1", Name: "Alice Johnson"})
	s.Require().NoError(err)
	s.False(added)

	s.Require().NoError(s.store.UpdateStreak(s.ctx, 4))
	s.Equal(4, s.store.User().Streak)
	s.ErrorIs(s.store.UpdateStreak(s.ctx, -1), domain.ErrInvalidStreak)
}

func (s *ProfileUseCaseTestSuite) TestCorruptNotificationsKeepUser() {
	_, _, err := s.store.AddXP(s.ctx, 40)
	s.Require().NoError(err)
	s.Require().NoError(s.kv.Save(s.ctx, "cool-todo-v1-notifications", []byte("garbage")))

	reloaded := s.newStore()
	s.True(reloaded.Load(s.ctx))
	s.Equal(40, reloaded.User().XP)
	s.Empty(reloaded.Notifications())
}

func TestProfileUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileUseCaseTestSuite))
}
