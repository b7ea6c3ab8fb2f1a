package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/fastygo/cooltodo/usecase/app"
	"github.com/fastygo/cooltodo/usecase/social"
)

func leaderboardCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank yourself against friends by XP",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.query(cmd, app.QryLeaderboard, nil)
			if err != nil {
				return rt.fail(cmd, err)
			}
			rows, err := resultAs[[]social.Entry](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return rt.render(cmd, rows, func(w io.Writer) {
				tw := table(w)
				printf(tw, "RANK\tNAME\tLEVEL\tXP\tTASKS\n")
				for _, r := range rows {
					name := r.Name
					if r.IsCurrentUser {
						name += " (you)"
					}
					printf(tw, "%d\t%s\t%d\t%d\t%d\n", r.Rank, name, r.Level, r.XP, r.TasksCompleted)
				}
				_ = tw.Flush()
			})
		},
	}
}

func activityCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "activity",
		Short: "Show what friends have been doing",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.query(cmd, app.QryFriendActivity, nil)
			if err != nil {
				return rt.fail(cmd, err)
			}
			items, err := resultAs[[]social.Activity](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return rt.render(cmd, items, func(w io.Writer) {
				tw := table(w)
				printf(tw, "FRIEND\tDONE\tPRIORITY\tCATEGORY\tTASK\tWHEN\n")
				for _, a := range items {
					when := "-"
					if a.CompletedAt != nil {
						when = a.CompletedAt.Format(time.DateTime)
					}
					printf(tw, "%s (lvl %d)\t%s\t%s\t%s\t%s\t%s\n",
						a.FriendName, a.FriendLevel, yesNo(a.Completed), a.Priority, a.Category, a.Text, when)
				}
				_ = tw.Flush()
			})
		},
	}
}
