package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/usecase/app"
	"github.com/fastygo/cooltodo/usecase/task"
)

func addCmd(rt *runtime) *cobra.Command {
	var priority, category string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ParsePriority(priority)
			if err != nil {
				return rt.fail(cmd, err)
			}
			draft := domain.TaskDraft{Text: strings.Join(args, " "), Priority: p, Category: category}
			res, err := rt.command(cmd, app.CmdTaskAdd, draft)
			if err != nil {
				return rt.fail(cmd, err)
			}
			out, err := resultAs[app.Outcome](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return rt.render(cmd, out, func(w io.Writer) {
				printf(w, "added %s  %s\n", shortID(out.Task.ID), out.Task.Text)
				printOutcome(w, out)
			})
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (low, medium, high)")
	cmd.Flags().StringVarP(&category, "category", "c", domain.DefaultCategory, "Category")
	return cmd
}

func toggleCmd(rt *runtime) *cobra.Command {
	return taskActionCmd(rt, "toggle <id>", "Mark a task done or not done", app.CmdTaskToggle, "toggled")
}

func deleteCmd(rt *runtime) *cobra.Command {
	return taskActionCmd(rt, "delete <id>", "Move a task to the trash", app.CmdTaskDelete, "deleted")
}

func restoreCmd(rt *runtime) *cobra.Command {
	return taskActionCmd(rt, "restore <id>", "Bring a deleted task back", app.CmdTaskRestore, "restored")
}

func taskActionCmd(rt *runtime, use, short, name, verb string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(rt, args[0])
			if err != nil {
				return rt.fail(cmd, err)
			}
			res, err := rt.command(cmd, name, app.IDRequest{ID: id})
			if err != nil {
				return rt.fail(cmd, err)
			}
			out, err := resultAs[app.Outcome](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return rt.render(cmd, out, func(w io.Writer) {
				if !out.Found {
					printf(w, "no task %s\n", args[0])
					return
				}
				printf(w, "%s %s  %s\n", verb, shortID(out.Task.ID), out.Task.Text)
				printOutcome(w, out)
			})
		},
	}
}

func editCmd(rt *runtime) *cobra.Command {
	var priority, category string
	cmd := &cobra.Command{
		Use:   "edit <id> [text]",
		Short: "Change a task's text, priority or category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(rt, args[0])
			if err != nil {
				return rt.fail(cmd, err)
			}
			current, ok := rt.app.Tasks.Get(id)
			if !ok {
				return rt.render(cmd, app.Outcome{}, func(w io.Writer) {
					printf(w, "no task %s\n", args[0])
				})
			}

			draft := domain.TaskDraft{Text: current.Text, Priority: current.Priority, Category: current.Category}
			if len(args) > 1 {
				draft.Text = strings.Join(args[1:], " ")
			}
			if cmd.Flags().Changed("priority") {
				if draft.Priority, err = domain.ParsePriority(priority); err != nil {
					return rt.fail(cmd, err)
				}
			}
			if cmd.Flags().Changed("category") {
				draft.Category = category
			}

			res, err := rt.command(cmd, app.CmdTaskEdit, app.EditRequest{ID: id, Draft: draft})
			if err != nil {
				return rt.fail(cmd, err)
			}
			out, err := resultAs[app.Outcome](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return rt.render(cmd, out, func(w io.Writer) {
				if !out.Found {
					printf(w, "no task %s\n", args[0])
					return
				}
				printf(w, "edited %s  %s [%s, %s]\n", shortID(out.Task.ID), out.Task.Text, out.Task.Priority, out.Task.Category)
			})
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (low, medium, high)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category")
	return cmd
}

func listCmd(rt *runtime) *cobra.Command {
	var filter, search, category string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := []struct {
				name    string
				payload interface{}
			}{
				{app.CmdTaskFilter, app.FilterRequest{Filter: domain.StatusFilter(strings.ToLower(filter))}},
				{app.CmdTaskSearch, app.SearchRequest{Term: search}},
				{app.CmdTaskCategory, app.CategoryRequest{Category: category}},
			}
			for _, step := range steps {
				if _, err := rt.command(cmd, step.name, step.payload); err != nil {
					return rt.fail(cmd, err)
				}
			}

			res, err := rt.query(cmd, app.QryTaskList, nil)
			if err != nil {
				return rt.fail(cmd, err)
			}
			view, err := resultAs[app.ListView](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return rt.render(cmd, view, func(w io.Writer) {
				if len(view.Tasks) == 0 {
					printf(w, "no tasks\n")
					return
				}
				tw := table(w)
				printf(tw, "ID\tDONE\tPRIORITY\tCATEGORY\tTEXT\n")
				for _, t := range view.Tasks {
					printf(tw, "%s\t%s\t%s\t%s\t%s\n", shortID(t.ID), checkbox(t), t.Priority, t.Category, t.Text)
				}
				_ = tw.Flush()
				printStats(w, view.Stats)
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(domain.FilterAll), "Status filter (all, active, completed, deleted)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive text search")
	cmd.Flags().StringVarP(&category, "category", "c", domain.AllCategories, "Category, or all")
	return cmd
}

func statsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.query(cmd, app.QryTaskStats, nil)
			if err != nil {
				return rt.fail(cmd, err)
			}
			stats, err := resultAs[task.Stats](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return rt.render(cmd, stats, func(w io.Writer) {
				printStats(w, stats)
			})
		},
	}
}

// resolveTaskID accepts a full id or a unique prefix of one. Unknown input is
// returned unchanged so the store treats it as a lookup miss.
func resolveTaskID(rt *runtime, arg string) (string, error) {
	var match string
	for _, t := range rt.app.Tasks.State().Tasks {
		if t.ID == arg {
			return arg, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			if match != "" {
				return "", domain.NewError(domain.ErrCodeInvalid, "ambiguous task id "+arg)
			}
			match = t.ID
		}
	}
	if match == "" {
		return arg, nil
	}
	return match, nil
}

func checkbox(t domain.Task) string {
	switch {
	case t.Deleted:
		return "[-]"
	case t.Completed:
		return "[x]"
	default:
		return "[ ]"
	}
}

func printStats(w io.Writer, s task.Stats) {
	printf(w, "%d total, %d active, %d completed, %d deleted\n", s.Total, s.Active, s.Completed, s.Deleted)
}

func printOutcome(w io.Writer, out app.Outcome) {
	if out.XPAwarded > 0 {
		printf(w, "+%d XP (level %d)\n", out.XPAwarded, out.Level)
	}
	if out.LeveledUp {
		printf(w, "level up! you reached level %d\n", out.Level)
	}
	for _, a := range out.Unlocked {
		printf(w, "%s achievement unlocked: %s\n", a.Icon, a.Name)
	}
}
