package overlay

import (
	"context"

	"github.com/siegfried/desktopclock/internal/layout"
)

// Window is the overlay window as the engine sees it. Implementations must
// only be called from the UI loop.
type Window interface {
	// SetStyle applies fonts, colors, shadow and opacity
	SetStyle(v VisualState)
	// SetText replaces the labels; an empty dateText hides the date
	SetText(timeText, dateText string)

	// Size is the window's current measured size
	Size() layout.Size
	// Position is the window's top-left corner in screen coordinates
	Position() layout.Point
	SetPosition(p layout.Point)
	// ScreenSize is the primary screen's size
	ScreenSize() layout.Size

	SetClickThrough(enabled bool)
	SetTopmost(enabled bool)
}

// Dispatcher runs functions on the UI loop
type Dispatcher interface {
	Dispatch(fn func())
}

// Inline runs every function immediately on the caller's goroutine
type Inline struct{}

// Dispatch implements Dispatcher
func (Inline) Dispatch(fn func()) { fn() }

// Loop is a channel-driven UI loop for hosts without a native one
type Loop struct {
	queue chan func()
}

// NewLoop creates a loop with a small buffer
func NewLoop() *Loop {
	return &Loop{queue: make(chan func(), 64)}
}

// Dispatch queues fn; it blocks while the queue is full
func (l *Loop) Dispatch(fn func()) {
	l.queue <- fn
}

// Run executes queued functions until ctx is done
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case fn := <-l.queue:
			fn()
		case <-ctx.Done():
			return
		}
	}
}
