package main

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/usecase/app"
)

func profileCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show level, XP and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.query(cmd, app.QryProfile, nil)
			if err != nil {
				return rt.fail(cmd, err)
			}
			view, err := resultAs[app.ProfileView](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return rt.render(cmd, view, func(w io.Writer) {
				u := view.User
				printf(w, "%s  level %d\n", u.Name, u.Level)
				printf(w, "%s %d XP, %d to next level\n", progressBar(view.XPProgress, 20), u.XP, u.XPToNextLevel)
				printf(w, "tasks completed: %d  streak: %d days  unread: %d\n", u.TotalTasksCompleted, u.Streak, view.UnreadCount)
				if len(u.Achievements) == 0 {
					return
				}
				printf(w, "achievements:\n")
				for _, a := range u.Achievements {
					printf(w, "  %s %s  %s\n", a.Icon, a.Name, a.Description)
				}
			})
		},
	}
}

func xpCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "xp <amount>",
		Short: "Grant XP directly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return rt.fail(cmd, domain.ErrInvalidXPAmount)
			}
			res, err := rt.command(cmd, app.CmdProfileXP, app.XPRequest{Amount: amount})
			if err != nil {
				return rt.fail(cmd, err)
			}
			out, err := resultAs[app.Outcome](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return rt.render(cmd, out, func(w io.Writer) {
				printOutcome(w, out)
			})
		},
	}
}

func streakCmd(rt *runtime) *cobra.Command {
	var set int
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Recompute the daily completion streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, payload := app.CmdStreakRefresh, interface{}(nil)
			if cmd.Flags().Changed("set") {
				name, payload = app.CmdProfileStreak, app.StreakRequest{Streak: set}
			}
			res, err := rt.command(cmd, name, payload)
			if err != nil {
				return rt.fail(cmd, err)
			}
			out, err := resultAs[app.Outcome](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return rt.render(cmd, out, func(w io.Writer) {
				printf(w, "streak: %d days\n", out.Streak)
			})
		},
	}
	cmd.Flags().IntVar(&set, "set", 0, "Store this value instead of recomputing")
	return cmd
}

func notificationsCmd(rt *runtime) *cobra.Command {
	var unreadOnly bool
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.query(cmd, app.QryNotifications, nil)
			if err != nil {
				return rt.fail(cmd, err)
			}
			items, err := resultAs[[]domain.Notification](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			if unreadOnly {
				kept := items[:0]
				for _, n := range items {
					if !n.Read {
						kept = append(kept, n)
					}
				}
				items = kept
			}
			return rt.render(cmd, items, func(w io.Writer) {
				if len(items) == 0 {
					printf(w, "no notifications\n")
					return
				}
				tw := table(w)
				printf(tw, "ID\tREAD\tTYPE\tWHEN\tMESSAGE\n")
				for _, n := range items {
					printf(tw, "%s\t%s\t%s\t%s\t%s\n", shortID(n.ID), yesNo(n.Read), n.Kind, n.CreatedAt.Format(time.DateTime), n.Message)
				}
				_ = tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVarP(&unreadOnly, "unread", "u", false, "Only unread notifications")
	return cmd
}

func readCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := resolveNotificationID(rt, args[0])
			res, err := rt.command(cmd, app.CmdNotificationRead, app.IDRequest{ID: id})
			if err != nil {
				return rt.fail(cmd, err)
			}
			out, err := resultAs[app.Outcome](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return rt.render(cmd, out, func(w io.Writer) {
				if out.Found {
					printf(w, "marked %s as read\n", shortID(id))
					return
				}
				printf(w, "no unread notification %s\n", args[0])
			})
		},
	}
}

func notifyCmd(rt *runtime) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "notify <message>",
		Short: "Queue a notification",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NotificationRequest{
				Kind:    domain.NotificationKind(kind),
				Message: strings.Join(args, " "),
			}
			res, err := rt.command(cmd, app.CmdNotificationAdd, req)
			if err != nil {
				return rt.fail(cmd, err)
			}
			out, err := resultAs[app.Outcome](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return rt.render(cmd, out, func(w io.Writer) {
				printf(w, "queued %s\n", shortID(out.Notification.ID))
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", string(domain.NotificationFriendRequest), "Kind (achievement, friend_request, level_up)")
	return cmd
}

func friendsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "friends",
		Short: "List friends",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.query(cmd, app.QryProfile, nil)
			if err != nil {
				return rt.fail(cmd, err)
			}
			view, err := resultAs[app.ProfileView](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			friends := view.User.Friends
			return rt.render(cmd, friends, func(w io.Writer) {
				tw := table(w)
				printf(tw, "NAME\tLEVEL\tONLINE\tLAST ACTIVE\n")
				for _, f := range friends {
					printf(tw, "%s\t%d\t%s\t%s\n", f.Name, f.Level, yesNo(f.IsOnline), f.LastActive.Format(time.DateTime))
				}
				_ = tw.Flush()
			})
		},
	}
}

func friendCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friend",
		Short: "Manage friends",
	}

	var id string
	var level int
	var online bool
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a friend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			friend := domain.Friend{
				ID:       id,
				Name:     strings.Join(args, " "),
				Level:    level,
				IsOnline: online,
			}
			res, err := rt.command(cmd, app.CmdProfileFriend, friend)
			if err != nil {
				return rt.fail(cmd, err)
			}
			out, err := resultAs[app.Outcome](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return rt.render(cmd, out, func(w io.Writer) {
				if out.Found {
					printf(w, "added friend %s\n", friend.Name)
					return
				}
				printf(w, "%s is already a friend\n", friend.Name)
			})
		},
	}
	add.Flags().StringVar(&id, "id", "", "Friend id; generated when empty")
	add.Flags().IntVar(&level, "level", 1, "Friend's level")
	add.Flags().BoolVar(&online, "online", false, "Friend is online")
	cmd.AddCommand(add)
	return cmd
}

func resolveNotificationID(rt *runtime, arg string) string {
	var match string
	for _, n := range rt.app.Profile.Notifications() {
		if n.ID == arg {
			return arg
		}
		if strings.HasPrefix(n.ID, arg) {
			if match != "" {
				return arg
			}
			match = n.ID
		}
	}
	if match == "" {
		return arg
	}
	return match
}

func progressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
