package profile

import (
	"fmt"
	"slices"
	"time"

	"github.com/fastygo/cooltodo/domain"
)

// State is the User Profile Store state: the profile plus its notification queue.
type State struct {
	User          domain.User
	Notifications []domain.Notification
}

// InitialState is the first-run profile.
func InitialState(now time.Time) State {
	return State{
		User:          domain.DefaultUser(now),
		Notifications: []domain.Notification{},
	}
}

// Change reports which persisted slots an action touched.
type Change uint8

const (
	UserChanged Change = 1 << iota
	NotificationsChanged
)

func (c Change) Has(flag Change) bool {
	return c&flag != 0
}

// Action is one of the profile actions below.
type Action interface {
	profileAction()
}

type (
	LoadUser          struct{ User domain.User }
	LoadNotifications struct{ Notifications []domain.Notification }
	// AddXP grants Amount XP. NotificationID and At are used only if the level rises.
	AddXP struct {
		Amount         int
		NotificationID string
		At             time.Time
	}
	// UnlockAchievement is a no-op when the achievement id is already unlocked.
	UnlockAchievement struct {
		Achievement    domain.Achievement
		NotificationID string
		At             time.Time
	}
	AddFriend        struct{ Friend domain.Friend }
	UpdateStreak     struct{ Streak int }
	AddNotification  struct {
		ID      string
		Kind    domain.NotificationKind
		Message string
		At      time.Time
	}
	MarkNotificationRead struct{ ID string }
)

func (LoadUser) profileAction()             {}
func (LoadNotifications) profileAction()    {}
func (AddXP) profileAction()                {}
func (UnlockAchievement) profileAction()    {}
func (AddFriend) profileAction()            {}
func (UpdateStreak) profileAction()         {}
func (AddNotification) profileAction()      {}
func (MarkNotificationRead) profileAction() {}

// LevelUpMessage is the text of the notification appended on a level rise.
func LevelUpMessage(level int) string {
	return fmt.Sprintf("Congratulations! You've reached level %d!", level)
}

// AchievementMessage is the text of the notification appended on an unlock.
func AchievementMessage(name string) string {
	return fmt.Sprintf("Achievement unlocked: %s!", name)
}

// Reduce applies action to s and returns the next state with the slots it changed.
func Reduce(s State, action Action) (State, Change) {
	switch a := action.(type) {
	case LoadUser:
		s.User = normalizeUser(a.User)
		return s, UserChanged

	case LoadNotifications:
		s.Notifications = a.Notifications
		if s.Notifications == nil {
			s.Notifications = []domain.Notification{}
		}
		return s, NotificationsChanged

	case AddXP:
		if a.Amount <= 0 {
			return s, 0
		}
		prevLevel := s.User.Level
		s.User = s.User.WithXP(s.User.XP + a.Amount)
		s.User.TotalTasksCompleted++
		if s.User.Level <= prevLevel {
			return s, UserChanged
		}
		s.Notifications = appendNotification(s.Notifications, domain.Notification{
			ID:        a.NotificationID,
			Kind:      domain.NotificationLevelUp,
			Message:   LevelUpMessage(s.User.Level),
			CreatedAt: a.At,
		})
		return s, UserChanged | NotificationsChanged

	case UnlockAchievement:
		if s.User.HasAchievement(a.Achievement.ID) {
			return s, 0
		}
		unlocked := a.Achievement
		unlocked.UnlockedAt = a.At
		s.User.Achievements = append(s.User.Achievements[:len(s.User.Achievements):len(s.User.Achievements)], unlocked)
		s.Notifications = appendNotification(s.Notifications, domain.Notification{
			ID:        a.NotificationID,
			Kind:      domain.NotificationAchievement,
			Message:   AchievementMessage(unlocked.Name),
			CreatedAt: a.At,
		})
		return s, UserChanged | NotificationsChanged

	case AddFriend:
		if s.User.HasFriend(a.Friend.ID) {
			return s, 0
		}
		s.User.Friends = append(s.User.Friends[:len(s.User.Friends):len(s.User.Friends)], a.Friend)
		return s, UserChanged

	case UpdateStreak:
		s.User.Streak = a.Streak
		return s, UserChanged

	case AddNotification:
		s.Notifications = appendNotification(s.Notifications, domain.Notification{
			ID:        a.ID,
			Kind:      a.Kind,
			Message:   a.Message,
			CreatedAt: a.At,
		})
		return s, NotificationsChanged

	case MarkNotificationRead:
		i := slices.IndexFunc(s.Notifications, func(n domain.Notification) bool { return n.ID == a.ID })
		if i < 0 {
			return s, 0
		}
		next := slices.Clone(s.Notifications)
		next[i].Read = true
		s.Notifications = next
		return s, NotificationsChanged

	default:
		return s, 0
	}
}

func appendNotification(list []domain.Notification, n domain.Notification) []domain.Notification {
	return append(list[:len(list):len(list)], n)
}

// normalizeUser recomputes the derived level fields from xp and fills empty collections.
func normalizeUser(u domain.User) domain.User {
	u = u.WithXP(u.XP)
	if u.Achievements == nil {
		u.Achievements = []domain.Achievement{}
	}
	if u.Friends == nil {
		u.Friends = []domain.Friend{}
	}
	if u.ID == "" {
		u.ID = domain.DefaultOwnerID
	}
	return u
}
