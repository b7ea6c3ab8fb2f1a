package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/pkg/logger"
	"github.com/fastygo/cooltodo/usecase/profile"
	"github.com/fastygo/cooltodo/usecase/task"
)

// CreationXP is granted for every task created.
const CreationXP = 5

// CompletionXP is the grant for completing a task of the given priority.
func CompletionXP(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return 20
	case domain.PriorityMedium:
		return 15
	default:
		return 10
	}
}

// Outcome describes everything a single orchestrated action changed.
type Outcome struct {
	Task         *domain.Task         `json:"task,omitempty" yaml:"task,omitempty"`
	Found        bool                 `json:"found" yaml:"found"`
	XPAwarded    int                  `json:"xpAwarded" yaml:"xpAwarded"`
	Level        int                  `json:"level" yaml:"level"`
	LeveledUp    bool                 `json:"leveledUp" yaml:"leveledUp"`
	Unlocked     []domain.Achievement `json:"unlocked,omitempty" yaml:"unlocked,omitempty"`
	Streak       int                  `json:"streak" yaml:"streak"`
	Notification *domain.Notification `json:"notification,omitempty" yaml:"notification,omitempty"`
}

// App composes both stores. It is passed explicitly to every front end and is the
// only place where task events turn into profile changes.
type App struct {
	Tasks   *task.UseCase
	Profile *profile.UseCase

	clock  func() time.Time
	logger *zap.Logger
	mu     sync.Mutex
}

func New(tasks *task.UseCase, prof *profile.UseCase, clock func() time.Time, logger *zap.Logger) *App {
	if tasks == nil {
		panic("app: task store is required")
	}
	if prof == nil {
		panic("app: profile store is required")
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		Tasks:   tasks,
		Profile: prof,
		clock:   clock,
		logger:  logger,
	}
}

// Load restores both stores from durable storage.
func (a *App) Load(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	tasksFound := a.Tasks.Load(ctx)
	userFound := a.Profile.Load(ctx)
	a.logger.Debug("state loaded", zap.Bool("tasks", tasksFound), zap.Bool("user", userFound))
}

// CreateTask adds a task and grants the creation XP.
func (a *App) CreateTask(ctx context.Context, draft domain.TaskDraft) (Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	created, err := a.Tasks.Add(ctx, draft)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Task: &created, Found: true}
	if err := a.award(ctx, CreationXP, &out); err != nil {
		return out, err
	}
	return out, nil
}

// ToggleTask flips completion. Completing a task grants XP by priority and checks
// milestones against the counter the grant produced, all under one lock.
// An unknown id is a no-op; a deleted task is rejected untouched.
func (a *App) ToggleTask(ctx context.Context, id string) (Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if current, ok := a.Tasks.Get(id); ok && current.Deleted {
		return Outcome{Task: &current, Found: true}, domain.ErrTaskDeleted
	}
	toggled, found, err := a.Tasks.Toggle(ctx, id)
	if !found {
		return Outcome{}, err
	}
	out := Outcome{Task: &toggled, Found: true}
	if err != nil {
		return out, err
	}
	if toggled.Completed {
		if err := a.award(ctx, CompletionXP(toggled.Priority), &out); err != nil {
			return out, err
		}
	}
	streak, err := a.refreshStreak(ctx)
	out.Streak = streak
	return out, err
}

// AwardXP grants amount XP directly and checks milestones.
func (a *App) AwardXP(ctx context.Context, amount int) (Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out Outcome
	err := a.award(ctx, amount, &out)
	return out, err
}

// RefreshStreak recomputes the streak from completion history.
func (a *App) RefreshStreak(ctx context.Context) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.refreshStreak(ctx)
}

func (a *App) award(ctx context.Context, amount int, out *Outcome) error {
	user, leveledUp, err := a.Profile.AddXP(ctx, amount)
	out.Level = user.Level
	out.Streak = user.Streak
	if err != nil {
		return err
	}
	out.XPAwarded = amount
	out.LeveledUp = leveledUp

	for _, achievement := range profile.MilestonesReached(user.TotalTasksCompleted) {
		unlocked, err := a.Profile.UnlockAchievement(ctx, achievement)
		if err != nil {
			return err
		}
		if unlocked {
			out.Unlocked = append(out.Unlocked, achievement)
		}
	}
	logger.WithActionID(ctx, a.logger).Debug("xp awarded",
		zap.Int("amount", amount),
		zap.Int("total_tasks", user.TotalTasksCompleted),
		zap.Int("unlocked", len(out.Unlocked)))
	return nil
}

func (a *App) refreshStreak(ctx context.Context) (int, error) {
	streak := ComputeStreak(a.Tasks.State().Tasks, a.clock())
	if streak == a.Profile.User().Streak {
		return streak, nil
	}
	return streak, a.Profile.UpdateStreak(ctx, streak)
}
