package app

import (
	"context"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/usecase"
	"github.com/fastygo/cooltodo/usecase/social"
	"github.com/fastygo/cooltodo/usecase/task"
)

// Command and query names registered on the dispatcher.
const (
	CmdTaskAdd          = "task.add"
	CmdTaskToggle       = "task.toggle"
	CmdTaskDelete       = "task.delete"
	CmdTaskRestore      = "task.restore"
	CmdTaskEdit         = "task.edit"
	CmdTaskFilter       = "task.filter"
	CmdTaskSearch       = "task.search"
	CmdTaskCategory     = "task.category"
	CmdProfileXP        = "profile.xp"
	CmdProfileUnlock    = "profile.achievement"
	CmdProfileFriend    = "profile.friend"
	CmdProfileStreak    = "profile.streak"
	CmdStreakRefresh    = "profile.streak.refresh"
	CmdNotificationAdd  = "notification.add"
	CmdNotificationRead = "notification.read"

	QryTaskList       = "task.list"
	QryTaskStats      = "task.stats"
	QryProfile        = "profile.get"
	QryNotifications  = "notification.list"
	QryLeaderboard    = "social.leaderboard"
	QryFriendActivity = "social.activity"
	QryExport         = "export"
)

// IDRequest targets a single record.
type IDRequest struct {
	ID string `json:"id"`
}

type EditRequest struct {
	ID    string           `json:"id"`
	Draft domain.TaskDraft `json:"draft"`
}

type FilterRequest struct {
	Filter domain.StatusFilter `json:"filter"`
}

type SearchRequest struct {
	Term string `json:"term"`
}

type CategoryRequest struct {
	Category string `json:"category"`
}

type XPRequest struct {
	Amount int `json:"amount"`
}

type StreakRequest struct {
	Streak int `json:"streak"`
}

type NotificationRequest struct {
	Kind    domain.NotificationKind `json:"type"`
	Message string                  `json:"message"`
}

// ListView is the visible task list together with the view state that produced it.
type ListView struct {
	Tasks    []domain.Task       `json:"tasks" yaml:"tasks"`
	Filter   domain.StatusFilter `json:"filter" yaml:"filter"`
	Search   string              `json:"search" yaml:"search"`
	Category string              `json:"category" yaml:"category"`
	Stats    task.Stats          `json:"stats" yaml:"stats"`
}

// ProfileView is the profile with its derived display values.
type ProfileView struct {
	User        domain.User `json:"user" yaml:"user"`
	XPProgress  float64     `json:"xpProgress" yaml:"xpProgress"`
	UnreadCount int         `json:"unreadCount" yaml:"unreadCount"`
}

// Export is a full dump of both stores.
type Export struct {
	Version       int                   `json:"version" yaml:"version"`
	Tasks         []domain.Task         `json:"tasks" yaml:"tasks"`
	User          domain.User           `json:"user" yaml:"user"`
	Notifications []domain.Notification `json:"notifications" yaml:"notifications"`
}

// Register exposes every store action on d.
func (a *App) Register(d *usecase.Dispatcher) {
	d.RegisterCommand(CmdTaskAdd, func(ctx context.Context, payload interface{}) (interface{}, error) {
		draft, err := payloadAs[domain.TaskDraft](payload)
		if err != nil {
			return nil, err
		}
		return a.CreateTask(ctx, draft)
	})
	d.RegisterCommand(CmdTaskToggle, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, err := payloadAs[IDRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.ToggleTask(ctx, req.ID)
	})
	d.RegisterCommand(CmdTaskDelete, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, err := payloadAs[IDRequest](payload)
		if err != nil {
			return nil, err
		}
		return taskOutcome(a.Tasks.Delete(ctx, req.ID))
	})
	d.RegisterCommand(CmdTaskRestore, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, err := payloadAs[IDRequest](payload)
		if err != nil {
			return nil, err
		}
		return taskOutcome(a.Tasks.Restore(ctx, req.ID))
	})
	d.RegisterCommand(CmdTaskEdit, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, err := payloadAs[EditRequest](payload)
		if err != nil {
			return nil, err
		}
		return taskOutcome(a.Tasks.Edit(ctx, req.ID, req.Draft))
	})
	d.RegisterCommand(CmdTaskFilter, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, err := payloadAs[FilterRequest](payload)
		if err != nil {
			return nil, err
		}
		return nil, a.Tasks.SetFilter(ctx, req.Filter)
	})
	d.RegisterCommand(CmdTaskSearch, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, err := payloadAs[SearchRequest](payload)
		if err != nil {
			return nil, err
		}
		return nil, a.Tasks.SetSearch(ctx, req.Term)
	})
	d.RegisterCommand(CmdTaskCategory, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, err := payloadAs[CategoryRequest](payload)
		if err != nil {
			return nil, err
		}
		return nil, a.Tasks.SetCategory(ctx, req.Category)
	})

	d.RegisterCommand(CmdProfileXP, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, err := payloadAs[XPRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.AwardXP(ctx, req.Amount)
	})
	d.RegisterCommand(CmdProfileUnlock, func(ctx context.Context, payload interface{}) (interface{}, error) {
		achievement, err := payloadAs[domain.Achievement](payload)
		if err != nil {
			return nil, err
		}
		unlocked, err := a.Profile.UnlockAchievement(ctx, achievement)
		out := Outcome{Found: unlocked}
		if unlocked {
			out.Unlocked = []domain.Achievement{achievement}
		}
		return out, err
	})
	d.RegisterCommand(CmdProfileFriend, func(ctx context.Context, payload interface{}) (interface{}, error) {
		friend, err := payloadAs[domain.Friend](payload)
		if err != nil {
			return nil, err
		}
		added, err := a.Profile.AddFriend(ctx, friend)
		return Outcome{Found: added}, err
	})
	d.RegisterCommand(CmdProfileStreak, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, err := payloadAs[StreakRequest](payload)
		if err != nil {
			return nil, err
		}
		return Outcome{Streak: req.Streak}, a.Profile.UpdateStreak(ctx, req.Streak)
	})
	d.RegisterCommand(CmdStreakRefresh, func(ctx context.Context, _ interface{}) (interface{}, error) {
		streak, err := a.RefreshStreak(ctx)
		return Outcome{Streak: streak}, err
	})
	d.RegisterCommand(CmdNotificationAdd, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, err := payloadAs[NotificationRequest](payload)
		if err != nil {
			return nil, err
		}
		n, err := a.Profile.Notify(ctx, req.Kind, req.Message)
		if err != nil {
			return nil, err
		}
		return Outcome{Notification: &n, Found: true}, nil
	})
	d.RegisterCommand(CmdNotificationRead, func(ctx context.Context, payload interface{}) (interface{}, error) {
		req, err := payloadAs[IDRequest](payload)
		if err != nil {
			return nil, err
		}
		found, err := a.Profile.MarkRead(ctx, req.ID)
		return Outcome{Found: found}, err
	})

	d.RegisterQuery(QryTaskList, func(context.Context, interface{}) (interface{}, error) {
		state := a.Tasks.State()
		return ListView{
			Tasks:    a.Tasks.Visible(),
			Filter:   state.Filter,
			Search:   state.Search,
			Category: state.Category,
			Stats:    a.Tasks.Stats(),
		}, nil
	})
	d.RegisterQuery(QryTaskStats, func(context.Context, interface{}) (interface{}, error) {
		return a.Tasks.Stats(), nil
	})
	d.RegisterQuery(QryProfile, func(context.Context, interface{}) (interface{}, error) {
		return ProfileView{
			User:        a.Profile.User(),
			XPProgress:  a.Profile.XPProgress(),
			UnreadCount: a.Profile.UnreadCount(),
		}, nil
	})
	d.RegisterQuery(QryNotifications, func(context.Context, interface{}) (interface{}, error) {
		return a.Profile.Notifications(), nil
	})
	d.RegisterQuery(QryLeaderboard, func(context.Context, interface{}) (interface{}, error) {
		return social.Leaderboard(a.Profile.User()), nil
	})
	d.RegisterQuery(QryFriendActivity, func(context.Context, interface{}) (interface{}, error) {
		return social.FriendActivity(a.clock()), nil
	})
	d.RegisterQuery(QryExport, func(context.Context, interface{}) (interface{}, error) {
		return Export{
			Version:       domain.SnapshotVersion,
			Tasks:         a.Tasks.State().Tasks,
			User:          a.Profile.User(),
			Notifications: a.Profile.Notifications(),
		}, nil
	})
}

func taskOutcome(t domain.Task, found bool, err error) (interface{}, error) {
	if !found {
		return Outcome{}, err
	}
	return Outcome{Task: &t, Found: true}, err
}

// payloadAs accepts a T or *T payload.
func payloadAs[T any](payload interface{}) (T, error) {
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}
	var zero T
	return zero, domain.ErrInvalidPayload
}
