package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/siegfried/desktopclock/internal/app"
	"github.com/siegfried/desktopclock/internal/config"
	"github.com/siegfried/desktopclock/internal/instance"
	"github.com/siegfried/desktopclock/internal/logging"
	"github.com/siegfried/desktopclock/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// configPath is the --config flag shared by every command
var configPath string

// lockName names the single-instance lock
var lockName = instance.DefaultName

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "desktopclock",
		Short:        "Transparent always-on-top desktop clock",
		Long:         "Shows the time (and optionally the date) in a borderless, click-through overlay, configured from the tray or this CLI.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClock()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the user config directory)")

	root.AddCommand(
		runCmd(),
		configCmd(),
		startupCmd(),
		zonesCmd(),
		renderCmd(),
		historyCmd(),
	)
	return root
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Show the clock and the tray icon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClock()
		},
	}
}

func runClock() error {
	dir, err := logDir()
	if err != nil {
		return err
	}
	logFile, err := logging.Setup(dir)
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	defer logFile.Close()

	a, err := app.New(app.Options{ConfigPath: configPath, LockName: lockName})
	if app.IsAlreadyRunning(err) {
		// on macOS this shows an alert and exits once it is dismissed
		ui.Notice("Desktop Clock", "Desktop Clock is already running.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		a.Quit()
	}()

	return a.Run()
}

func logDir() (string, error) {
	if configPath != "" {
		return filepath.Dir(configPath), nil
	}
	return config.Dir()
}

// manager opens the configuration selected by --config
func manager() (*config.Manager, error) {
	if configPath != "" {
		return config.NewManagerAt(configPath), nil
	}
	return config.NewManager()
}
