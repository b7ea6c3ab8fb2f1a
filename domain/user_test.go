package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	cases := []struct {
		xp, level, toNext int
	}{
		{0, 1, 100},
		{99, 1, 1},
		{100, 2, 100},
		{250, 3, 50},
		{-10, 1, 100},
	}
	for _, tc := range cases {
		level, toNext := LevelFor(tc.xp)
		assert.Equal(t, tc.level, level, "xp=%d", tc.xp)
		assert.Equal(t, tc.toNext, toNext, "xp=%d", tc.xp)
	}
}

func TestDefaultUser(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	u := DefaultUser(now)

	assert.Equal(t, DefaultOwnerID, u.ID)
	assert.Equal(t, "Cool Todo User", u.Name)
	assert.Equal(t, 1, u.Level)
	assert.Equal(t, 0, u.XP)
	assert.Equal(t, 100, u.XPToNextLevel)
	assert.Empty(t, u.Achievements)
	assert.NotNil(t, u.Achievements)

	if assert.Len(t, u.Friends, 2) {
		assert.Equal(t, "Alice Johnson", u.Friends[0].Name)
		assert.True(t, u.Friends[0].IsOnline)
		assert.Equal(t, "Bob Smith", u.Friends[1].Name)
		assert.False(t, u.Friends[1].IsOnline)
		assert.Equal(t, now.Add(-time.Hour), u.Friends[1].LastActive)
	}
	assert.True(t, u.HasFriend("friend-1"))
	assert.False(t, u.HasAchievement("first-task"))
}
