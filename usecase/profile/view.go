package profile

import "github.com/fastygo/cooltodo/domain"

// UnreadCount counts notifications not yet marked read.
func UnreadCount(notifications []domain.Notification) int {
	n := 0
	for _, item := range notifications {
		if !item.Read {
			n++
		}
	}
	return n
}

// XPProgress is the XP-bar fill, xp / (xp + xpToNextLevel), clamped to [0,1].
func XPProgress(u domain.User) float64 {
	denom := u.XP + u.XPToNextLevel
	if denom <= 0 {
		return 0
	}
	p := float64(u.XP) / float64(denom)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
