package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/internal/config"
	"github.com/fastygo/cooltodo/internal/infrastructure/monitor"
	"github.com/fastygo/cooltodo/internal/services"
	"github.com/fastygo/cooltodo/internal/services/lifecycle"
	"github.com/fastygo/cooltodo/pkg/logger"
	"github.com/fastygo/cooltodo/repository"
	"github.com/fastygo/cooltodo/usecase"
	"github.com/fastygo/cooltodo/usecase/app"
	"github.com/fastygo/cooltodo/usecase/profile"
	"github.com/fastygo/cooltodo/usecase/task"
)

var Version = "dev"

// runtime holds everything one process builds on first use. The shell keeps it
// open across lines; single commands close it when they finish.
type runtime struct {
	jsonOut   bool
	ephemeral bool
	inShell   bool

	cfg        *config.Config
	logger     *zap.Logger
	store      repository.KeyValueStore
	app        *app.App
	dispatcher *usecase.Dispatcher
	monitor    *monitor.Monitor
	lifecycle  *lifecycle.Manager
}

func main() {
	rt := &runtime{}
	root := newRootCmd(rt)
	err := root.ExecuteContext(context.Background())
	if closeErr := rt.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "cooltodo",
		Short:         "Cool Todo - a task tracker that levels you up",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.open(cmd.Context())
		},
	}

	root.PersistentFlags().BoolVar(&rt.jsonOut, "json", false, "Print results as a JSON envelope")
	root.PersistentFlags().BoolVar(&rt.ephemeral, "ephemeral", false, "Keep state in memory only")

	root.AddCommand(addCmd(rt))
	root.AddCommand(toggleCmd(rt))
	root.AddCommand(deleteCmd(rt))
	root.AddCommand(restoreCmd(rt))
	root.AddCommand(editCmd(rt))
	root.AddCommand(listCmd(rt))
	root.AddCommand(statsCmd(rt))

	root.AddCommand(profileCmd(rt))
	root.AddCommand(xpCmd(rt))
	root.AddCommand(streakCmd(rt))
	root.AddCommand(notificationsCmd(rt))
	root.AddCommand(readCmd(rt))
	root.AddCommand(notifyCmd(rt))
	root.AddCommand(friendsCmd(rt))
	root.AddCommand(friendCmd(rt))

	root.AddCommand(leaderboardCmd(rt))
	root.AddCommand(activityCmd(rt))
	root.AddCommand(exportCmd(rt))
	root.AddCommand(statusCmd(rt))
	root.AddCommand(shellCmd(rt))

	return root
}

// open wires config, logging, storage and both stores. Calling it again is a no-op.
func (rt *runtime) open(ctx context.Context) error {
	if rt.app != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if rt.ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		return fmt.Errorf("logger error: %w", err)
	}

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Register("logger", func(context.Context) error {
		_ = zapLogger.Sync()
		return nil
	})

	openCtx, cancel := context.WithTimeout(ctx, cfg.Context.OperationTimeout)
	defer cancel()
	store, err := services.OpenStore(openCtx, cfg, zapLogger)
	if err != nil {
		_ = manager.Shutdown(context.Background())
		return err
	}
	manager.Register("store", func(context.Context) error {
		return store.Close()
	})

	bridge := services.NewSnapshotBridge(store, zapLogger)
	clock := time.Now
	tasks := task.New(bridge, zapLogger, task.Config{
		Key:   cfg.Keys.Tasks,
		Clock: clock,
	})
	prof := profile.New(bridge, zapLogger, profile.Config{
		UserKey:          cfg.Keys.User,
		NotificationsKey: cfg.Keys.Notifications,
		Clock:            clock,
	})

	application := app.New(tasks, prof, clock, zapLogger)
	application.Load(ctx)

	dispatcher := usecase.NewDispatcher()
	application.Register(dispatcher)

	rt.cfg = cfg
	rt.logger = zapLogger
	rt.store = store
	rt.app = application
	rt.dispatcher = dispatcher
	rt.lifecycle = manager
	rt.monitor = monitor.New(cfg.Storage.Backend, store,
		[]string{cfg.Keys.Tasks, cfg.Keys.User, cfg.Keys.Notifications}, zapLogger)

	zapLogger.Debug("cooltodo ready",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("env", cfg.Environment))
	return nil
}

func (rt *runtime) close() error {
	if rt.lifecycle == nil {
		return nil
	}
	return rt.lifecycle.Shutdown(context.Background())
}

func (rt *runtime) command(cmd *cobra.Command, name string, payload interface{}) (interface{}, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), rt.cfg.Context.OperationTimeout)
	defer cancel()
	return rt.dispatcher.ExecuteCommand(ctx, name, payload)
}

func (rt *runtime) query(cmd *cobra.Command, name string, params interface{}) (interface{}, error) {
	return rt.dispatcher.ExecuteQuery(cmd.Context(), name, params)
}

// resultAs narrows a dispatcher result to the type the command prints.
func resultAs[T any](res interface{}) (T, error) {
	v, ok := res.(T)
	if !ok {
		return v, domain.ErrInvalidPayload
	}
	return v, nil
}
