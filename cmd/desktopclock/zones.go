package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siegfried/desktopclock/internal/clock"
	"github.com/siegfried/desktopclock/internal/settings"
)

func zonesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones [filter]",
		Short: "List selectable time zones",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			online, _ := cmd.Flags().GetBool("online")
			zones := clock.NewZones()

			choices := settings.ZoneChoices(zones.System())
			status := ""
			if online {
				choices, status = settings.RefreshZones(cmd.Context(), zones)
			}

			out := cmd.OutOrStdout()
			for _, z := range choices {
				if len(args) == 1 && !strings.Contains(strings.ToLower(z), strings.ToLower(args[0])) {
					continue
				}
				fmt.Fprintln(out, z)
			}
			if status != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), status)
			}
			return nil
		},
	}
	cmd.Flags().Bool("online", false, "fetch the list from worldtimeapi.org, falling back to the system list")
	return cmd
}
