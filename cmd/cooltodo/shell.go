package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/cooltodo/internal/services"
)

func shellCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively with the streak scheduler active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rt.inShell {
				return errors.New("already in a shell")
			}
			rt.inShell = true
			defer func() { rt.inShell = false }()

			scheduler, err := services.NewStreakScheduler(rt.app, rt.cfg.Streak.Schedule, rt.cfg.Context.OperationTimeout, rt.logger)
			if err != nil {
				return fmt.Errorf("invalid STREAK_SCHEDULE %q: %w", rt.cfg.Streak.Schedule, err)
			}
			scheduler.Run()
			scheduler.Start()
			rt.lifecycle.Register("streak_scheduler", func(ctx context.Context) error {
				scheduler.Stop(ctx)
				return nil
			})

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			stop := rt.lifecycle.Listen(cancel)
			defer stop()

			return rt.repl(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// repl executes one command tree per input line against the already open runtime.
func (rt *runtime) repl(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	jsonOut := rt.jsonOut
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	printf(out, "cooltodo shell, type help for commands or exit to quit\n")
	for {
		printf(out, "> ")
		var line string
		select {
		case <-ctx.Done():
			printf(out, "\n")
			return nil
		case l, ok := <-lines:
			if !ok {
				printf(out, "\n")
				return nil
			}
			line = strings.TrimSpace(l)
		}

		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		args, err := splitArgs(line)
		if err != nil {
			printf(errOut, "error: %v\n", err)
			continue
		}
		root := newRootCmd(rt)
		if jsonOut {
			_ = root.PersistentFlags().Set("json", "true")
		}
		root.SetArgs(args)
		root.SetIn(strings.NewReader(""))
		root.SetOut(out)
		root.SetErr(errOut)
		if err := root.ExecuteContext(ctx); err != nil {
			var reported *reportedError
			if !errors.As(err, &reported) {
				printf(errOut, "error: %v\n", err)
			}
			rt.logger.Debug("shell command failed", zap.String("line", line), zap.Error(err))
		}
	}
}

// splitArgs splits a line the way a POSIX shell would, honouring quotes and
// backslash escapes. Environment variables and backticks are left alone.
func splitArgs(line string) ([]string, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", line, err)
	}
	return args, nil
}
