package domain

import "time"

// NotificationKind classifies a notification.
type NotificationKind string

const (
	NotificationAchievement   NotificationKind = "achievement"
	NotificationFriendRequest NotificationKind = "friend_request"
	NotificationLevelUp       NotificationKind = "level_up"
)

func (k NotificationKind) Valid() bool {
	switch k {
	case NotificationAchievement, NotificationFriendRequest, NotificationLevelUp:
		return true
	}
	return false
}

// Notification is an append-only message for the user.
type Notification struct {
	ID        string           `json:"id" yaml:"id"`
	Kind      NotificationKind `json:"type" yaml:"type"`
	Message   string           `json:"message" yaml:"message"`
	CreatedAt time.Time        `json:"createdAt" yaml:"createdAt"`
	Read      bool             `json:"read" yaml:"read"`
}
