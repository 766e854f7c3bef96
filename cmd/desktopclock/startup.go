package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siegfried/desktopclock/internal/config"
	"github.com/siegfried/desktopclock/internal/history"
	"github.com/siegfried/desktopclock/internal/startup"
)

func startupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "startup",
		Short: "Show or change whether the clock starts with the system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			sm, err := startup.NewManager(m)
			if err != nil {
				return err
			}
			enabled, err := sm.Enabled()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "start with system: %s\n", onOff(enabled))
			return nil
		},
	}

	set := func(enabled bool) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			sm, err := startup.NewManager(m)
			if err != nil {
				return err
			}
			if err := sm.SetStartup(enabled); err != nil {
				return err
			}
			record(m, history.SourceCLI)
			fmt.Fprintf(cmd.OutOrStdout(), "start with system: %s\n", onOff(enabled))
			return nil
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "on",
		Short: "Register the clock to start at login",
		Args:  cobra.NoArgs,
		RunE:  set(true),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "off",
		Short: "Remove the login registration",
		Args:  cobra.NoArgs,
		RunE:  set(false),
	})

	return cmd
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// syncStartup brings the autostart entry in line with the stored flag after
// a write that did not go through the startup manager
func syncStartup(m *config.Manager) error {
	sm, err := startup.NewManager(m)
	if errors.Is(err, startup.ErrUnsupported) {
		return nil
	}
	if err != nil {
		return err
	}
	return sm.Reconcile()
}

// saverFor picks how a restored configuration is written: through the
// startup manager where autostart is supported, so the entry follows the
// restored flag, otherwise straight to the file
func saverFor(m *config.Manager) (history.Saver, error) {
	sm, err := startup.NewManager(m)
	if errors.Is(err, startup.ErrUnsupported) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	return sm, nil
}
