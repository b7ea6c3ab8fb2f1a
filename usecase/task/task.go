package task

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

// Config controls the store's slot key and its sources of time and identity.
type Config struct {
	Key     string
	OwnerID string
	Clock   func() time.Time
	NewID   func() string
}

// UseCase is the Task Store. Dispatches are serialized and each one that changes the
// collection is written through in full before the next is accepted.
type UseCase struct {
	store  usecase.StateStore
	cfg    Config
	logger *zap.Logger

	mu       sync.Mutex
	state    State
	revision uint64

	viewMu  sync.Mutex
	visible memo[[]domain.Task]
	stats   memo[Stats]
}

type memo[T any] struct {
	revision uint64
	valid    bool
	value    T
}

func New(store usecase.StateStore, logger *zap.Logger, cfg Config) *UseCase {
	if store == nil {
		panic("task: state store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Key == "" {
		cfg.Key = "cool-todo-v1-todos"
	}
	if cfg.OwnerID == "" {
		cfg.OwnerID = domain.DefaultOwnerID
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
		state:  InitialState(),
	}
}

// Load reads the persisted collection once. Missing or unreadable data leaves the
// store empty; the failure is logged and never returned. It reports whether data was restored.
func (uc *UseCase) Load(ctx context.Context) bool {
	var tasks []domain.Task
	found, err := uc.store.LoadState(ctx, domain.KindTasks, uc.cfg.Key, &tasks)
	if err != nil {
		uc.logger.Warn("failed to load tasks, starting empty", zap.String("key", uc.cfg.Key), zap.Error(err))
		found, tasks = false, nil
	}
	if !found {
		tasks = nil
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state, _ = Reduce(uc.state, LoadTasks{Tasks: uc.sanitize(tasks)})
	uc.revision++
	return found
}

// Dispatch applies an action and persists the collection when it changed.
// The returned state is the snapshot the action produced.
func (uc *UseCase) Dispatch(ctx context.Context, action Action) (State, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next, changed := Reduce(uc.state, action)
	uc.state = next
	uc.revision++
	if !changed {
		return next, nil
	}
	if err := uc.store.SaveState(ctx, domain.KindTasks, uc.cfg.Key, next.Tasks); err != nil {
		logger.WithActionID(ctx, uc.logger).Error("failed to persist tasks", zap.String("key", uc.cfg.Key), zap.Error(err))
		return next, domain.WrapError(domain.ErrCodeInternal, "failed to persist tasks", err)
	}
	return next, nil
}

// Add validates the draft and appends a new task.
func (uc *UseCase) Add(ctx context.Context, draft domain.TaskDraft) (domain.Task, error) {
	draft, err := draft.Normalize()
	if err != nil {
		return domain.Task{}, err
	}
	id := uc.cfg.NewID()
	state, err := uc.Dispatch(ctx, AddTask{
		ID:      id,
		OwnerID: uc.cfg.OwnerID,
		Draft:   draft,
		At:      uc.cfg.Clock(),
	})
	created, _ := state.Find(id)
	if err == nil {
		logger.WithActionID(ctx, uc.logger).Debug("task added", zap.String("task_id", id))
	}
	return created, err
}

// Toggle flips the completed flag. found is false when id is unknown.
func (uc *UseCase) Toggle(ctx context.Context, id string) (task domain.Task, found bool, err error) {
	return uc.apply(ctx, id, ToggleTask{ID: id, At: uc.cfg.Clock()})
}

// Delete soft-deletes the task.
func (uc *UseCase) Delete(ctx context.Context, id string) (domain.Task, bool, error) {
	return uc.apply(ctx, id, DeleteTask{ID: id, At: uc.cfg.Clock()})
}

// Restore undoes a soft delete.
func (uc *UseCase) Restore(ctx context.Context, id string) (domain.Task, bool, error) {
	return uc.apply(ctx, id, RestoreTask{ID: id})
}

// Edit replaces text, priority and category after validating them like Add.
func (uc *UseCase) Edit(ctx context.Context, id string, draft domain.TaskDraft) (domain.Task, bool, error) {
	draft, err := draft.Normalize()
	if err != nil {
		return domain.Task{}, false, err
	}
	return uc.apply(ctx, id, EditTask{ID: id, Draft: draft})
}

func (uc *UseCase) SetFilter(ctx context.Context, filter domain.StatusFilter) error {
	if !filter.Valid() {
		return domain.ErrInvalidFilter
	}
	_, err := uc.Dispatch(ctx, SetFilter{Filter: filter})
	return err
}

func (uc *UseCase) SetSearch(ctx context.Context, term string) error {
	_, err := uc.Dispatch(ctx, SetSearch{Term: term})
	return err
}

func (uc *UseCase) SetCategory(ctx context.Context, category string) error {
	if category == "" {
		category = domain.AllCategories
	}
	_, err := uc.Dispatch(ctx, SetCategory{Category: category})
	return err
}

// State returns the current snapshot. Callers must treat its slices as read-only.
func (uc *UseCase) State() State {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

// Get looks up a single task.
func (uc *UseCase) Get(id string) (domain.Task, bool) {
	return uc.State().Find(id)
}

// Visible returns the filtered, sorted list for the current view state.
func (uc *UseCase) Visible() []domain.Task {
	state, rev := uc.snapshot()
	uc.viewMu.Lock()
	defer uc.viewMu.Unlock()
	if !uc.visible.valid || uc.visible.revision != rev {
		uc.visible = memo[[]domain.Task]{revision: rev, valid: true, value: Visible(state)}
	}
	return slices.Clone(uc.visible.value)
}

// Stats returns the aggregate counts for the whole collection.
func (uc *UseCase) Stats() Stats {
	state, rev := uc.snapshot()
	uc.viewMu.Lock()
	defer uc.viewMu.Unlock()
	if !uc.stats.valid || uc.stats.revision != rev {
		uc.stats = memo[Stats]{revision: rev, valid: true, value: Summarize(state.Tasks)}
	}
	return uc.stats.value
}

func (uc *UseCase) snapshot() (State, uint64) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state, uc.revision
}

func (uc *UseCase) apply(ctx context.Context, id string, action Action) (domain.Task, bool, error) {
	state, err := uc.Dispatch(ctx, action)
	task, found := state.Find(id)
	return task, found, err
}

// sanitize repairs loaded records so they honour the record invariants. A set
// flag without its timestamp borrows CreatedAt; records whose text is empty or
// too long are skipped.
func (uc *UseCase) sanitize(tasks []domain.Task) []domain.Task {
	kept := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		draft, err := domain.TaskDraft{Text: t.Text, Category: t.Category}.Normalize()
		if err != nil {
			uc.logger.Warn("skipping invalid stored task", zap.String("task_id", t.ID), zap.Error(err))
			continue
		}
		t.Text, t.Category = draft.Text, draft.Category
		if !t.Priority.Valid() {
			t.Priority = domain.PriorityMedium
		}
		t.CompletedAt = stampFor(t.Completed, t.CompletedAt, t.CreatedAt)
		t.DeletedAt = stampFor(t.Deleted, t.DeletedAt, t.CreatedAt)
		kept = append(kept, t)
	}
	return kept
}

func stampFor(flag bool, at *time.Time, fallback time.Time) *time.Time {
	switch {
	case !flag:
		return nil
	case at != nil:
		return at
	default:
		return &fallback
	}
}
