package main

import (
	"fmt"
	"log"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/siegfried/desktopclock/internal/config"
	"github.com/siegfried/desktopclock/internal/history"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List and restore earlier configurations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved configurations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			m, err := manager()
			if err != nil {
				return err
			}
			store, err := history.OpenBeside(m.Path())
			if err != nil {
				return err
			}
			defer store.Close()

			revs, err := store.List(limit)
			if err != nil {
				return err
			}
			if len(revs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved configurations")
				return nil
			}

			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSAVED\tSOURCE\tSETTINGS")
			for _, r := range revs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ShortID(), r.Age(now), r.Source, r.Describe())
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s saved configurations shown\n", humanize.Comma(int64(len(revs))))
			return nil
		},
	}
	list.Flags().Int("limit", 20, "maximum number of entries")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "restore <id>",
		Short: "Make an earlier configuration current",
		Long:  "Make an earlier configuration current. Any unique prefix of the id works. A running clock picks the change up from the file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			store, err := history.OpenBeside(m.Path())
			if err != nil {
				return err
			}
			defer store.Close()

			saver, err := saverFor(m)
			if err != nil {
				return err
			}
			rev, err := store.Restore(args[0], saver)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", rev.ShortID(), humanize.Time(rev.SavedAt))
			return nil
		},
	})

	return cmd
}

// record journals the stored configuration after a CLI edit. The journal is
// optional, so failures only warn.
func record(m *config.Manager, source string) {
	store, err := history.OpenBeside(m.Path())
	if err != nil {
		log.Printf("Warning: history unavailable: %v", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(m.Load(), source); err != nil {
		log.Printf("Warning: failed to record history: %v", err)
		return
	}
	if _, err := store.Prune(history.DefaultKeep); err != nil {
		log.Printf("Warning: failed to prune history: %v", err)
	}
}
