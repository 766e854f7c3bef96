// Package appearance polls the operating system's light/dark mode and accent
// color so the clock can follow them while it runs.
package appearance

import (
	"sync"
	"time"

	"github.com/siegfried/desktopclock/internal/theme"
)

// DefaultInterval is how often the system appearance is polled
const DefaultInterval = 5 * time.Second

// State is one reading of the system appearance
type State struct {
	Dark   bool
	Accent theme.Color
}

// Monitor tracks the system appearance and reports changes
type Monitor struct {
	system       theme.System
	pollInterval time.Duration
	current      State
	ticker       *time.Ticker
	stopChan     chan struct{}
	onChange     func(State)
	mu           sync.Mutex
	running      bool
}

// NewMonitor creates a monitor reading from system
func NewMonitor(system theme.System, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		system:       system,
		pollInterval: interval,
		current:      read(system),
	}
}

func read(system theme.System) State {
	return State{Dark: system.IsDark(), Accent: system.Accent()}
}

// Start begins polling
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	m.running = true
	m.stopChan = make(chan struct{})
	m.ticker = time.NewTicker(m.pollInterval)

	go m.monitorLoop(m.ticker, m.stopChan)
}

// Stop stops polling. It is safe to call more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.running = false
	close(m.stopChan)
	m.ticker.Stop()
	m.ticker = nil
}

// Current returns the last reading
func (m *Monitor) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsDark implements theme.System from the last reading
func (m *Monitor) IsDark() bool {
	return m.Current().Dark
}

// Accent implements theme.System from the last reading
func (m *Monitor) Accent() theme.Color {
	return m.Current().Accent
}

// SetOnChange sets the callback for appearance changes
func (m *Monitor) SetOnChange(callback func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = callback
}

func (m *Monitor) monitorLoop(ticker *time.Ticker, stop chan struct{}) {
	for {
		select {
		case <-ticker.C:
			m.Check()
		case <-stop:
			return
		}
	}
}

// Check reads the appearance once and fires the callback if it changed
func (m *Monitor) Check() bool {
	s := read(m.system)

	m.mu.Lock()
	if s == m.current {
		m.mu.Unlock()
		return false
	}
	m.current = s
	callback := m.onChange
	m.mu.Unlock()

	if callback != nil {
		callback(s)
	}
	return true
}
