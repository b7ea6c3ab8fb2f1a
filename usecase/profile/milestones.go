package profile

import "github.com/fastygo/cooltodo/domain"

// Milestone unlocks Achievement when the completed-task counter equals Threshold.
type Milestone struct {
	Threshold   int
	Achievement domain.Achievement
}

var Milestones = []Milestone{
	{Threshold: 1, Achievement: domain.Achievement{
		ID: "first-task", Name: "Getting Started", Description: "Complete your first task", Icon: "🎯",
	}},
	{Threshold: 10, Achievement: domain.Achievement{
		ID: "ten-tasks", Name: "Task Master", Description: "Complete 10 tasks", Icon: "⭐",
	}},
	{Threshold: 50, Achievement: domain.Achievement{
		ID: "fifty-tasks", Name: "Productivity Pro", Description: "Complete 50 tasks", Icon: "🏆",
	}},
}

// MilestonesReached returns the achievements whose threshold is exactly total.
func MilestonesReached(total int) []domain.Achievement {
	var out []domain.Achievement
	for _, m := range Milestones {
		if m.Threshold == total {
			out = append(out, m.Achievement)
		}
	}
	return out
}
