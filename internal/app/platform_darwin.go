//go:build darwin

package app

import (
	"github.com/siegfried/desktopclock/internal/overlay"
)

// newUILoop returns AppKit's main queue. Nothing queued there runs until the
// menu bar starts the application's run loop.
func (a *App) newUILoop() overlay.Dispatcher {
	return overlay.MainQueue{}
}

// newWindow must be called on the main queue
func newWindow() overlay.Window {
	return overlay.NewNativeWindow()
}
