package domain

import "time"

// XPPerLevel is the XP span of a single level.
const XPPerLevel = 100

// User is the gamification profile of the single active user.
type User struct {
	ID                  string        `json:"id" yaml:"id"`
	Name                string        `json:"name" yaml:"name"`
	Level               int           `json:"level" yaml:"level"`
	XP                  int           `json:"xp" yaml:"xp"`
	XPToNextLevel       int           `json:"xpToNextLevel" yaml:"xpToNextLevel"`
	TotalTasksCompleted int           `json:"totalTasksCompleted" yaml:"totalTasksCompleted"`
	Streak              int           `json:"streak" yaml:"streak"`
	Achievements        []Achievement `json:"achievements" yaml:"achievements"`
	Friends             []Friend      `json:"friends" yaml:"friends"`
}

// Achievement is a milestone the user has unlocked.
type Achievement struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Icon        string    `json:"icon" yaml:"icon"`
	UnlockedAt  time.Time `json:"unlockedAt" yaml:"unlockedAt"`
}

// Friend is a static social contact.
type Friend struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Level      int       `json:"level" yaml:"level"`
	IsOnline   bool      `json:"isOnline" yaml:"isOnline"`
	LastActive time.Time `json:"lastActive" yaml:"lastActive"`
}

// LevelFor returns the level and remaining XP to the next level for a total.
func LevelFor(xp int) (level, xpToNext int) {
	if xp < 0 {
		xp = 0
	}
	level = xp/XPPerLevel + 1
	return level, level*XPPerLevel - xp
}

// WithXP returns a copy of the user carrying xp and the level fields derived from it.
func (u User) WithXP(xp int) User {
	if xp < 0 {
		xp = 0
	}
	u.XP = xp
	u.Level, u.XPToNextLevel = LevelFor(xp)
	return u
}

// HasAchievement reports whether an achievement id is already unlocked.
func (u User) HasAchievement(id string) bool {
	for _, a := range u.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// HasFriend reports whether a friend id is already present.
func (u User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f.ID == id {
			return true
		}
	}
	return false
}

// DefaultUser builds the first-run profile with the seeded mock friends.
func DefaultUser(now time.Time) User {
	u := User{
		ID:           DefaultOwnerID,
		Name:         "Cool Todo User",
		Achievements: []Achievement{},
		Friends: []Friend{
			{ID: "friend-1", Name: "Alice Johnson", Level: 5, IsOnline: true, LastActive: now},
			{ID: "friend-2", Name: "Bob Smith", Level: 3, IsOnline: false, LastActive: now.Add(-time.Hour)},
		},
	}
	return u.WithXP(0)
}
