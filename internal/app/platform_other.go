//go:build !darwin

package app

import (
	"github.com/siegfried/desktopclock/internal/overlay"
	"github.com/siegfried/desktopclock/internal/render"
)

// newUILoop starts a channel loop that lives until shutdown
func (a *App) newUILoop() overlay.Dispatcher {
	loop := overlay.NewLoop()
	go loop.Run(a.ctx)
	return loop
}

// newWindow draws into an offscreen canvas
func newWindow() overlay.Window {
	return render.NewCanvas(render.DefaultScreen)
}
