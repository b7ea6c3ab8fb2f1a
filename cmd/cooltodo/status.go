package main

import (
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

func statusCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the storage backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			status := rt.monitor.Check(cmd.Context())
			return rt.render(cmd, status, func(w io.Writer) {
				printf(w, "Cool Todo Status\n")
				printf(w, "%s\n", strings.Repeat("=", 40))
				printf(w, "  Backend:  %s\n", status.Backend)
				if status.Online {
					printf(w, "  Status:   ONLINE\n")
				} else {
					printf(w, "  Status:   FAILED (%s)\n", status.Error)
				}

				keys := make([]string, 0, len(status.Slots))
				for k := range status.Slots {
					keys = append(keys, k)
				}
				slices.Sort(keys)
				printf(w, "\nSlots:\n")
				for _, k := range keys {
					printf(w, "  %-28s %d bytes\n", k+":", status.Slots[k])
				}
			})
		},
	}
}
