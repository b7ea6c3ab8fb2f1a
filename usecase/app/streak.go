package app

import (
	"time"

	"github.com/fastygo/cooltodo/domain"
)

// ComputeStreak counts consecutive calendar days, in now's location, with at least
// one completed non-deleted task. The run may end today or yesterday; an older run is 0.
func ComputeStreak(tasks []domain.Task, now time.Time) int {
	loc := now.Location()
	days := make(map[string]struct{})
	for _, t := range tasks {
		if !t.IsDone() || t.CompletedAt == nil {
			continue
		}
		days[dayKey(t.CompletedAt.In(loc))] = struct{}{}
	}

	day := dayOf(now)
	if _, ok := days[dayKey(day)]; !ok {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for {
		if _, ok := days[dayKey(day)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
