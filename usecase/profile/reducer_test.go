package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/cooltodo/domain"
)

var t0 = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func TestReduceAddXPWithinLevel(t *testing.T) {
	s := InitialState(t0)
	s, change := Reduce(s, AddXP{Amount: 15, NotificationID: "n1", At: t0})

	assert.Equal(t, UserChanged, change)
	assert.Equal(t, 15, s.User.XP)
	assert.Equal(t, 1, s.User.Level)
	assert.Equal(t, 85, s.User.XPToNextLevel)
	assert.Equal(t, 1, s.User.TotalTasksCompleted)
	assert.Empty(t, s.Notifications)
}

func TestReduceAddXPLevelUp(t *testing.T) {
	s := InitialState(t0)
	s.User = s.User.WithXP(95)

	s, change := Reduce(s, AddXP{Amount: 10, NotificationID: "n1", At: t0})
	assert.True(t, change.Has(UserChanged))
	assert.True(t, change.Has(NotificationsChanged))
	assert.Equal(t, 2, s.User.Level)
	assert.Equal(t, 95, s.User.XPToNextLevel)

	require.Len(t, s.Notifications, 1)
	n := s.Notifications[0]
	assert.Equal(t, "n1", n.ID)
	assert.Equal(t, domain.NotificationLevelUp, n.Kind)
	assert.Equal(t, "Congratulations! You've reached level 2!", n.Message)
	assert.False(t, n.Read)
}

func TestReduceAddXPRejectsNonPositive(t *testing.T) {
	s := InitialState(t0)
	next, change := Reduce(s, AddXP{Amount: 0})
	assert.Equal(t, Change(0), change)
	assert.Equal(t, s, next)
}

func TestReduceUnlockAchievementIsIdempotent(t *testing.T) {
	s := InitialState(t0)
	achievement := Milestones[0].Achievement

	s, change := Reduce(s, UnlockAchievement{Achievement: achievement, NotificationID: "n1", At: t0})
	assert.Equal(t, UserChanged|NotificationsChanged, change)
	require.Len(t, s.User.Achievements, 1)
	assert.Equal(t, t0, s.User.Achievements[0].UnlockedAt)
	require.Len(t, s.Notifications, 1)
	assert.Equal(t, "Achievement unlocked: Getting Started!", s.Notifications[0].Message)

	again, change := Reduce(s, UnlockAchievement{Achievement: achievement, NotificationID: "n2", At: t0})
	assert.Equal(t, Change(0), change)
	assert.Equal(t, s, again)
}

func TestReduceAddFriend(t *testing.T) {
	s := InitialState(t0)
	friend := domain.Friend{ID: "friend-3", Name: "Carol Davis", Level: 4}

	s, change := Reduce(s, AddFriend{Friend: friend})
	assert.Equal(t, UserChanged, change)
	assert.Len(t, s.User.Friends, 3)

	_, change = Reduce(s, AddFriend{Friend: friend})
	assert.Equal(t, Change(0), change)
}

func TestReduceNotifications(t *testing.T) {
	s := InitialState(t0)
	s, change := Reduce(s, AddNotification{ID: "a", Kind: domain.NotificationFriendRequest, Message: "hi", At: t0})
	assert.Equal(t, NotificationsChanged, change)
	before := s

	s, change = Reduce(s, MarkNotificationRead{ID: "a"})
	assert.Equal(t, NotificationsChanged, change)
	assert.True(t, s.Notifications[0].Read)
	assert.False(t, before.Notifications[0].Read, "previous snapshot is untouched")

	_, change = Reduce(s, MarkNotificationRead{ID: "missing"})
	assert.Equal(t, Change(0), change)
}

func TestReduceLoadUserRecomputesLevel(t *testing.T) {
	s := InitialState(t0)
	s, _ = Reduce(s, LoadUser{User: domain.User{Name: "Stored", XP: 230, Level: 1}})

	assert.Equal(t, 3, s.User.Level)
	assert.Equal(t, 70, s.User.XPToNextLevel)
	assert.Equal(t, domain.DefaultOwnerID, s.User.ID)
	assert.NotNil(t, s.User.Achievements)
	assert.NotNil(t, s.User.Friends)
}

func TestMilestonesReached(t *testing.T) {
	assert.Len(t, MilestonesReached(1), 1)
	assert.Empty(t, MilestonesReached(2))
	assert.Equal(t, "ten-tasks", MilestonesReached(10)[0].ID)
	assert.Equal(t, "fifty-tasks", MilestonesReached(50)[0].ID)
	assert.Empty(t, MilestonesReached(51))
}

func TestViews(t *testing.T) {
	assert.Equal(t, 0.0, XPProgress(domain.User{}))
	assert.InDelta(t, 0.25, XPProgress(domain.User{XP: 25, XPToNextLevel: 75}), 1e-9)
	assert.Equal(t, 1.0, XPProgress(domain.User{XP: 300, XPToNextLevel: -50}))

	notifications := []domain.Notification{{ID: "a"}, {ID: "b", Read: true}, {ID: "c"}}
	assert.Equal(t, 2, UnreadCount(notifications))
}
