//go:build darwin

package ui

import (
	"os"
	"sync"

	"github.com/caseymrm/menuet"
	"github.com/progrium/darwinkit/dispatch"
)

const appLabel = "com.siegfried.desktopclock"

// MenuBar shows the tray in the macOS menu bar
type MenuBar struct {
	mu   sync.Mutex
	tray *Tray
}

// NewMenuBar creates the menu bar. The tray can be attached later, once the
// overlay exists.
func NewMenuBar() *MenuBar {
	return &MenuBar{}
}

// SetTray attaches the menu model
func (m *MenuBar) SetTray(t *Tray) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tray = t
}

// Start initializes and runs the menu bar; it blocks until the app quits
func (m *MenuBar) Start() {
	menuet.App().Label = appLabel
	menuet.App().Children = m.menuItems

	menuet.App().SetMenuState(&menuet.MenuState{
		Title: "🕒",
	})

	menuet.App().RunApplication()
}

// Stop is a no-op: the menu bar lives as long as the process
func (m *MenuBar) Stop() {}

func (m *MenuBar) menuItems() []menuet.MenuItem {
	m.mu.Lock()
	t := m.tray
	m.mu.Unlock()

	if t == nil {
		return []menuet.MenuItem{{Text: "Starting..."}}
	}
	return convert(t.Items())
}

func convert(items []Item) []menuet.MenuItem {
	out := make([]menuet.MenuItem, 0, len(items))
	for _, it := range items {
		if it.Separator {
			out = append(out, menuet.MenuItem{Type: menuet.Separator})
			continue
		}

		mi := menuet.MenuItem{
			Text:    it.Text,
			State:   it.Checked,
			Clicked: onMain(it.Clicked),
		}
		if it.Children != nil {
			children := it.Children
			mi.Children = func() []menuet.MenuItem { return convert(children()) }
		}
		out = append(out, mi)
	}
	return out
}

// onMain moves a click handler onto the main queue. menuet calls handlers
// on their own goroutine and the overlay window is AppKit state.
func onMain(fn func()) func() {
	if fn == nil {
		return nil
	}
	return func() { dispatch.MainQueue().DispatchAsync(fn) }
}

// AlertReporter shows errors as a menu bar alert
type AlertReporter struct{}

// Report implements settings.Reporter
func (AlertReporter) Report(title string, err error) {
	go menuet.App().Alert(menuet.Alert{
		MessageText:     title,
		InformativeText: err.Error(),
		Buttons:         []string{"OK"},
	})
}

// Notice shows a one-off message before the menu bar runs, e.g. when another
// instance holds the lock. An alert needs the application's run loop, so
// Notice runs it and exits the process once the alert is dismissed; it never
// returns.
func Notice(title, message string) {
	go func() {
		menuet.App().Alert(menuet.Alert{
			MessageText:     title,
			InformativeText: message,
			Buttons:         []string{"OK"},
		})
		os.Exit(0)
	}()

	menuet.App().Label = appLabel
	menuet.App().RunApplication()
}
