// Package startup registers the clock to launch when the user logs in.
package startup

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/siegfried/desktopclock/internal/config"
)

// Identifiers used for the autostart entry on every platform
const (
	AppName = "DesktopClock"
	Label   = "com.siegfried.desktopclock"
)

// ErrUnsupported is returned where no autostart mechanism is known
var ErrUnsupported = errors.New("startup registration not supported on this platform")

// Entry is a platform autostart entry
type Entry interface {
	// Enabled reports whether the entry exists
	Enabled() (bool, error)
	// Enable creates or replaces the entry so it runs command
	Enable(command []string) error
	// Disable removes the entry; a missing entry is not an error
	Disable() error
}

// ConfigStore persists the start-with-system flag
type ConfigStore interface {
	Load() *config.Config
	Save(cfg *config.Config) error
	Update(fn func(*config.Config)) error
}

// Manager keeps the autostart entry and the stored flag together
type Manager struct {
	entry   Entry
	command []string
	store   ConfigStore
}

// NewManager uses the platform's entry and the running executable
func NewManager(store ConfigStore) (*Manager, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	entry, err := DefaultEntry()
	if err != nil {
		return nil, err
	}
	return NewManagerWith(entry, []string{exe, "run"}, store), nil
}

// NewManagerWith builds a manager from explicit parts
func NewManagerWith(entry Entry, command []string, store ConfigStore) *Manager {
	return &Manager{entry: entry, command: command, store: store}
}

// Enabled reports whether the autostart entry exists
func (m *Manager) Enabled() (bool, error) {
	return m.entry.Enabled()
}

// Sync creates or removes the entry without touching the configuration.
// Calling it repeatedly with the same value is safe.
func (m *Manager) Sync(enabled bool) error {
	if enabled {
		return m.entry.Enable(m.command)
	}
	return m.entry.Disable()
}

// SetStartup syncs the entry and persists the flag. If the flag cannot be
// stored the entry is put back the way it was.
func (m *Manager) SetStartup(enabled bool) error {
	return m.commit(enabled, func() error {
		if err := m.store.Update(func(c *config.Config) { c.StartWithSystem = enabled }); err != nil {
			return fmt.Errorf("failed to save startup setting: %w", err)
		}
		return nil
	})
}

// Save writes a whole configuration and brings the entry in line with its
// flag, entry first and file second, like SetStartup. Restoring history
// saves through it.
func (m *Manager) Save(cfg *config.Config) error {
	return m.commit(cfg.StartWithSystem, func() error {
		return m.store.Save(cfg)
	})
}

func (m *Manager) commit(enabled bool, write func() error) error {
	was, err := m.entry.Enabled()
	if err != nil {
		return fmt.Errorf("failed to read startup entry: %w", err)
	}

	if err := m.Sync(enabled); err != nil {
		return fmt.Errorf("failed to update startup entry: %w", err)
	}

	if m.store == nil {
		return nil
	}
	if err := write(); err != nil {
		if rerr := m.Sync(was); rerr != nil {
			log.Printf("Warning: failed to restore startup entry: %v", rerr)
		}
		return err
	}
	return nil
}

// Reconcile makes the entry match the stored flag. It follows writes that
// bypass the manager: resets, single-key edits, external edits.
func (m *Manager) Reconcile() error {
	if m.store == nil {
		return nil
	}
	enabled := m.store.Load().StartWithSystem

	on, err := m.entry.Enabled()
	if err != nil {
		return fmt.Errorf("failed to read startup entry: %w", err)
	}
	if on == enabled {
		return nil
	}
	if err := m.Sync(enabled); err != nil {
		return fmt.Errorf("failed to update startup entry: %w", err)
	}
	return nil
}
