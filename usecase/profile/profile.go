package profile

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/pkg/logger"
	"github.com/fastygo/cooltodo/usecase"
)

type Config struct {
	UserKey          string
	NotificationsKey string
	Clock            func() time.Time
	NewID            func() string
}

// UseCase is the User Profile Store.
type UseCase struct {
	store  usecase.StateStore
	cfg    Config
	logger *zap.Logger

	mu       sync.Mutex
	state    State
	revision uint64

	unreadMu  sync.Mutex
	unreadRev uint64
	unread    int
	unreadOK  bool
}

func New(store usecase.StateStore, logger *zap.Logger, cfg Config) *UseCase {
	if store == nil {
		panic("profile: state store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.UserKey == "" {
		cfg.UserKey = "cool-todo-v1-user"
	}
	if cfg.NotificationsKey == "" {
		cfg.NotificationsKey = "cool-todo-v1-notifications"
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &UseCase{
		store:  store,
		cfg:    cfg,
		logger: logger,
		state:  InitialState(cfg.Clock()),
	}
}

// Load restores the profile and notification queue. Each slot falls back to its
// default independently when missing or unreadable; failures are only logged.
func (uc *UseCase) Load(ctx context.Context) bool {
	var user domain.User
	userFound, err := uc.store.LoadState(ctx, domain.KindUser, uc.cfg.UserKey, &user)
	if err != nil {
		uc.logger.Warn("failed to load profile, using defaults", zap.String("key", uc.cfg.UserKey), zap.Error(err))
		userFound = false
	}

	var notifications []domain.Notification
	notifFound, err := uc.store.LoadState(ctx, domain.KindNotifications, uc.cfg.NotificationsKey, &notifications)
	if err != nil {
		uc.logger.Warn("failed to load notifications, starting empty", zap.String("key", uc.cfg.NotificationsKey), zap.Error(err))
		notifFound = false
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if userFound {
		uc.state, _ = Reduce(uc.state, LoadUser{User: user})
	}
	if notifFound {
		uc.state, _ = Reduce(uc.state, LoadNotifications{Notifications: notifications})
	}
	uc.revision++
	return userFound
}

// Dispatch applies an action and writes every slot it changed.
func (uc *UseCase) Dispatch(ctx context.Context, action Action) (State, Change, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next, change := Reduce(uc.state, action)
	uc.state = next
	uc.revision++

	log := logger.WithActionID(ctx, uc.logger)
	if change.Has(UserChanged) {
		if err := uc.store.SaveState(ctx, domain.KindUser, uc.cfg.UserKey, next.User); err != nil {
			log.Error("failed to persist profile", zap.String("key", uc.cfg.UserKey), zap.Error(err))
			return next, change, domain.WrapError(domain.ErrCodeInternal, "failed to persist profile", err)
		}
	}
	if change.Has(NotificationsChanged) {
		if err := uc.store.SaveState(ctx, domain.KindNotifications, uc.cfg.NotificationsKey, next.Notifications); err != nil {
			log.Error("failed to persist notifications", zap.String("key", uc.cfg.NotificationsKey), zap.Error(err))
			return next, change, domain.WrapError(domain.ErrCodeInternal, "failed to persist notifications", err)
		}
	}
	return next, change, nil
}

// AddXP grants amount XP and bumps the completed-task counter. leveledUp reports
// whether a level_up notification was appended.
func (uc *UseCase) AddXP(ctx context.Context, amount int) (user domain.User, leveledUp bool, err error) {
	if amount <= 0 {
		return uc.User(), false, domain.ErrInvalidXPAmount
	}
	state, change, err := uc.Dispatch(ctx, AddXP{
		Amount:         amount,
		NotificationID: uc.cfg.NewID(),
		At:             uc.cfg.Clock(),
	})
	leveledUp = change.Has(NotificationsChanged)
	if leveledUp {
		logger.WithActionID(ctx, uc.logger).Info("level up", zap.Int("level", state.User.Level))
	}
	return state.User, leveledUp, err
}

// UnlockAchievement appends the achievement unless its id is already unlocked.
func (uc *UseCase) UnlockAchievement(ctx context.Context, achievement domain.Achievement) (bool, error) {
	if achievement.ID == "" {
		return false, domain.ErrInvalidPayload
	}
	_, change, err := uc.Dispatch(ctx, UnlockAchievement{
		Achievement:    achievement,
		NotificationID: uc.cfg.NewID(),
		At:             uc.cfg.Clock(),
	})
	if change.Has(UserChanged) {
		logger.WithActionID(ctx, uc.logger).Info("achievement unlocked", zap.String("achievement", achievement.ID))
	}
	return change.Has(UserChanged), err
}

// AddFriend appends a friend; a known id is ignored.
func (uc *UseCase) AddFriend(ctx context.Context, friend domain.Friend) (bool, error) {
	if friend.ID == "" {
		friend.ID = uc.cfg.NewID()
	}
	if friend.LastActive.IsZero() {
		friend.LastActive = uc.cfg.Clock()
	}
	_, change, err := uc.Dispatch(ctx, AddFriend{Friend: friend})
	return change.Has(UserChanged), err
}

func (uc *UseCase) UpdateStreak(ctx context.Context, streak int) error {
	if streak < 0 {
		return domain.ErrInvalidStreak
	}
	_, _, err := uc.Dispatch(ctx, UpdateStreak{Streak: streak})
	return err
}

// Notify appends an unread notification.
func (uc *UseCase) Notify(ctx context.Context, kind domain.NotificationKind, message string) (domain.Notification, error) {
	if !kind.Valid() || message == "" {
		return domain.Notification{}, domain.ErrInvalidPayload
	}
	id := uc.cfg.NewID()
	state, _, err := uc.Dispatch(ctx, AddNotification{
		ID:      id,
		Kind:    kind,
		Message: message,
		At:      uc.cfg.Clock(),
	})
	return state.Notifications[len(state.Notifications)-1], err
}

// MarkRead flags a notification as read. found is false for unknown ids.
func (uc *UseCase) MarkRead(ctx context.Context, id string) (found bool, err error) {
	_, change, err := uc.Dispatch(ctx, MarkNotificationRead{ID: id})
	return change.Has(NotificationsChanged), err
}

// State returns the current snapshot. Callers must treat its slices as read-only.
func (uc *UseCase) State() State {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

func (uc *UseCase) User() domain.User {
	return uc.State().User
}

func (uc *UseCase) Notifications() []domain.Notification {
	return slices.Clone(uc.State().Notifications)
}

// UnreadCount is memoized per state revision.
func (uc *UseCase) UnreadCount() int {
	uc.mu.Lock()
	state, rev := uc.state, uc.revision
	uc.mu.Unlock()

	uc.unreadMu.Lock()
	defer uc.unreadMu.Unlock()
	if !uc.unreadOK || uc.unreadRev != rev {
		uc.unread, uc.unreadRev, uc.unreadOK = UnreadCount(state.Notifications), rev, true
	}
	return uc.unread
}

func (uc *UseCase) XPProgress() float64 {
	return XPProgress(uc.User())
}
