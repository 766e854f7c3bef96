package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/siegfried/desktopclock/internal/appearance"
	"github.com/siegfried/desktopclock/internal/clock"
	"github.com/siegfried/desktopclock/internal/config"
	"github.com/siegfried/desktopclock/internal/history"
	"github.com/siegfried/desktopclock/internal/instance"
	"github.com/siegfried/desktopclock/internal/overlay"
	"github.com/siegfried/desktopclock/internal/settings"
	"github.com/siegfried/desktopclock/internal/startup"
	"github.com/siegfried/desktopclock/internal/theme"
	"github.com/siegfried/desktopclock/internal/ui"
)

// ErrAlreadyRunning is returned by New when another clock holds the lock
var ErrAlreadyRunning = instance.ErrAlreadyRunning

// Options tune a run. The zero value runs with the default config file.
type Options struct {
	// ConfigPath overrides the config file location
	ConfigPath string
	// LockName overrides the single-instance lock name
	LockName string
}

// App is the main application coordinator
type App struct {
	lock           *instance.Lock
	configManager  *config.Manager
	historyStore   *history.Store
	startupManager *startup.Manager
	monitor        *appearance.Monitor
	watcher        *config.Watcher
	menuBar        *ui.MenuBar
	reporter       ui.AlertReporter

	loop   overlay.Dispatcher
	engine *overlay.Engine
	tray   *ui.Tray

	ctx    context.Context
	cancel context.CancelFunc
	exit   func(code int)
}

// New creates a new application instance. It fails with ErrAlreadyRunning
// without touching anything when another instance is running.
func New(opts Options) (*App, error) {
	name := opts.LockName
	if name == "" {
		name = instance.DefaultName
	}
	lock, err := instance.Acquire(name)
	if err != nil {
		return nil, err
	}

	app := &App{lock: lock, exit: os.Exit}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	// Initialize config manager
	if opts.ConfigPath != "" {
		app.configManager = config.NewManagerAt(opts.ConfigPath)
	} else {
		configManager, err := config.NewManager()
		if err != nil {
			lock.Release()
			return nil, fmt.Errorf("failed to create config manager: %w", err)
		}
		app.configManager = configManager
	}

	// History and startup registration are optional
	historyStore, err := history.OpenBeside(app.configManager.Path())
	if err != nil {
		log.Printf("Warning: history unavailable: %v", err)
	} else {
		app.historyStore = historyStore
	}

	startupManager, err := startup.NewManager(app.configManager)
	if err != nil {
		log.Printf("Warning: startup registration unavailable: %v", err)
	} else {
		app.startupManager = startupManager
	}

	app.monitor = appearance.NewMonitor(theme.Detect(), appearance.DefaultInterval)
	app.menuBar = ui.NewMenuBar()
	app.loop = app.newUILoop()

	return app, nil
}

// Run starts the overlay and blocks in the tray until quit
func (a *App) Run() error {
	a.loop.Dispatch(func() { a.start(newWindow(), a.loop) })

	log.Println("Application started successfully")

	// Run menu bar (this blocks until quit)
	a.menuBar.Start()

	return nil
}

// start wires everything that needs the overlay window. It runs on the UI
// loop.
func (a *App) start(window overlay.Window, dispatcher overlay.Dispatcher) {
	a.engine = overlay.NewEngine(a.configManager, window, a.monitor)
	a.engine.Apply()

	go a.engine.Run(a.ctx, dispatcher)

	a.monitor.SetOnChange(func(s appearance.State) {
		log.Printf("System appearance changed (dark=%v) - reapplying", s.Dark)
		dispatcher.Dispatch(func() { a.engine.Apply() })
	})
	a.monitor.Start()

	watcher, err := a.configManager.Watch(func() {
		log.Println("Config file changed on disk - reloading")
		dispatcher.Dispatch(func() { a.reload(history.SourceExternal) })
	})
	if err != nil {
		log.Printf("Warning: failed to watch config file: %v", err)
	} else {
		a.watcher = watcher
	}

	var journal ui.Journal
	if a.historyStore != nil {
		journal = a.historyStore
	}
	a.tray = ui.NewTray(a.engine, a.configManager, a.startupEntry(), a.reporter, journal, clock.NewZones())
	a.setupCallbacks()
	a.menuBar.SetTray(a.tray)
}

// startupEntry avoids handing the tray a typed nil
func (a *App) startupEntry() settings.Startup {
	if a.startupManager == nil {
		return nil
	}
	return a.startupManager
}

// setupCallbacks configures all tray callbacks
func (a *App) setupCallbacks() {
	a.tray.SetOnReload(func() {
		log.Println("User requested reload")
		a.reload(history.SourceTray)
	})

	a.tray.SetOnSaved(func() {
		log.Println("Settings saved")
		a.engine.Apply()
		a.record(history.SourceSettings)
	})

	a.tray.SetOnToggleStartup(func(enabled bool) {
		log.Printf("User set start with system: %v", enabled)
		if a.startupManager == nil {
			a.reporter.Report("Start with System", startup.ErrUnsupported)
			return
		}
		if err := a.startupManager.SetStartup(enabled); err != nil {
			a.reporter.Report("Start with System", err)
			return
		}
		a.engine.Apply()
		a.record(history.SourceTray)
	})

	a.tray.SetOnRestore(func(id string) {
		if a.historyStore == nil {
			return
		}
		rev, err := a.historyStore.Restore(id, a.saver())
		if err != nil {
			a.reporter.Report("Could not restore settings", err)
			return
		}
		log.Printf("Restored settings from %s", rev.ShortID())
		a.engine.Apply()
	})

	a.tray.SetOnQuit(func() {
		log.Println("User requested quit")
		a.Shutdown()
		a.exit(0)
	})
}

// reload picks up a file written elsewhere and brings the startup entry in
// line with it
func (a *App) reload(source string) {
	a.configManager.Invalidate()
	a.engine.Apply()
	if a.startupManager != nil {
		if err := a.startupManager.Reconcile(); err != nil {
			log.Printf("Warning: failed to sync startup entry: %v", err)
		}
	}
	a.record(source)
}

// saver writes restored configurations; with startup registration available
// it keeps the entry in line with the restored flag
func (a *App) saver() history.Saver {
	if a.startupManager == nil {
		return a.configManager
	}
	return a.startupManager
}

// record journals the configuration now on screen
func (a *App) record(source string) {
	if a.historyStore == nil {
		return
	}
	if _, err := a.historyStore.Record(a.engine.Snapshot(), source); err != nil {
		log.Printf("Warning: failed to record history: %v", err)
		return
	}
	if _, err := a.historyStore.Prune(history.DefaultKeep); err != nil {
		log.Printf("Warning: failed to prune history: %v", err)
	}
}

// Quit shuts down on the UI loop and exits. Signal handlers use it since
// shutdown may put a previewed window back.
func (a *App) Quit() {
	a.loop.Dispatch(func() {
		a.Shutdown()
		a.exit(0)
	})
}

// Shutdown performs cleanup before exit. Call it on the UI loop.
func (a *App) Shutdown() {
	log.Println("Shutting down application...")

	a.cancel()
	a.monitor.Stop()

	if a.tray != nil {
		a.tray.Discard()
	}

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("Warning: failed to stop config watcher: %v", err)
		}
	}

	// Close history store
	if a.historyStore != nil {
		if err := a.historyStore.Close(); err != nil {
			log.Printf("Warning: failed to close history store: %v", err)
		}
	}

	a.menuBar.Stop()

	if err := a.lock.Release(); err != nil {
		log.Printf("Warning: failed to release instance lock: %v", err)
	}

	log.Println("Shutdown complete")
}

// IsAlreadyRunning reports whether err came from the single-instance lock
func IsAlreadyRunning(err error) bool {
	return errors.Is(err, ErrAlreadyRunning)
}
