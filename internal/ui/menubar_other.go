//go:build !darwin

package ui

import (
	"log"
	"sync"

	"github.com/siegfried/desktopclock/internal/settings"
)

// MenuBar stands in for a tray where none is available. Start blocks until
// Stop.
type MenuBar struct {
	done chan struct{}
	once sync.Once
}

// NewMenuBar creates the stand-in
func NewMenuBar() *MenuBar {
	return &MenuBar{done: make(chan struct{})}
}

// SetTray is a no-op: there is nothing to show the menu on
func (m *MenuBar) SetTray(*Tray) {}

// Start blocks until Stop
func (m *MenuBar) Start() {
	log.Println("No tray available on this platform, running headless")
	<-m.done
}

// Stop releases Start
func (m *MenuBar) Stop() {
	m.once.Do(func() { close(m.done) })
}

// AlertReporter logs errors where no alert UI exists
type AlertReporter = settings.LogReporter

// Notice logs a one-off message and returns
func Notice(title, message string) {
	log.Printf("%s: %s", title, message)
}
