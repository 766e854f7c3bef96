package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	appName        = "desktopclock"
	configFileName = "config.json"

	// CacheExpiry is how long a loaded snapshot is served without re-reading the file
	CacheExpiry = 5 * time.Second
)

// Manager handles loading and saving configuration. Loads are cached for
// CacheExpiry and every successful Save invalidates the cache.
type Manager struct {
	mu         sync.Mutex
	configPath string
	cached     *Config
	readAt     time.Time
	written    []byte
	now        func() time.Time
}

// NewManager creates a config manager rooted in the user config directory
func NewManager() (*Manager, error) {
	configDir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	// Ensure config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigDirCreation, err)
	}

	return NewManagerAt(filepath.Join(configDir, configFileName)), nil
}

// NewManagerAt creates a config manager for an explicit file path
func NewManagerAt(path string) *Manager {
	return &Manager{
		configPath: path,
		now:        time.Now,
	}
}

// SetClock replaces the time source used for cache expiry
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Path returns the config file location
func (m *Manager) Path() string {
	return m.configPath
}

// Load returns a snapshot of the configuration. A missing or unreadable file
// yields defaults; Load never fails. The returned value is a copy the caller
// may modify.
func (m *Manager) Load() *Config {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if m.cached != nil && now.Sub(m.readAt) < CacheExpiry {
		return m.cached.Clone()
	}

	m.cached = m.read()
	m.readAt = now
	return m.cached.Clone()
}

// read decodes the file over a default config so missing keys keep defaults
func (m *Manager) read() *Config {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: failed to read config, using defaults: %v", err)
		}
		return DefaultConfig()
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		log.Printf("Warning: failed to parse %s, using defaults: %v", m.configPath, err)
		return DefaultConfig()
	}

	config.normalize()
	return config
}

// Save validates and writes the configuration. The file is replaced
// atomically; on failure both the file and the cached snapshot are left as
// they were.
func (m *Manager) Save(config *Config) error {
	if config == nil {
		config = DefaultConfig()
	}

	// Validate before saving
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.writeFile(data); err != nil {
		return err
	}

	m.written = data
	m.cached = nil
	return nil
}

// Invalidate drops the cached snapshot so the next Load reads the file
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cached = nil
}

// Update loads the current configuration, applies fn and saves the result
func (m *Manager) Update(fn func(*Config)) error {
	config := m.Load()
	fn(config)
	return m.Save(config)
}

// Reset replaces the stored configuration with defaults
func (m *Manager) Reset() error {
	return m.Save(DefaultConfig())
}

// changedOnDisk reports whether the file differs from what this manager
// last wrote, so the watcher can skip our own saves.
func (m *Manager) changedOnDisk() bool {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return !bytes.Equal(data, m.written)
}

func (m *Manager) writeFile(data []byte) error {
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigDirCreation, err)
	}

	tmp, err := os.CreateTemp(dir, configFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp.Name(), m.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Dir returns the application's config directory, e.g.
// ~/Library/Application Support/desktopclock on macOS
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}
