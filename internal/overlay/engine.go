// Package overlay owns the live clock configuration and applies it to the
// overlay window: colors, font, shadow, opacity, labels and position.
package overlay

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/siegfried/desktopclock/internal/clock"
	"github.com/siegfried/desktopclock/internal/config"
	"github.com/siegfried/desktopclock/internal/layout"
	"github.com/siegfried/desktopclock/internal/notify"
	"github.com/siegfried/desktopclock/internal/theme"
)

// TickInterval is how often the time label is refreshed
const TickInterval = time.Second

// Store is where the engine reads its configuration from
type Store interface {
	Load() *config.Config
}

// Engine is the presentation engine. All exported methods are safe to call
// from any goroutine, but the Window is only touched while the engine lock is
// held so ticks, resizes and reloads never interleave.
type Engine struct {
	mu       sync.Mutex
	store    Store
	window   Window
	system   theme.System
	now      func() time.Time
	notifier *notify.Notifier

	config     *config.Config
	visual     VisualState
	anchored   bool
	previewing bool
	lastSize   layout.Size
	lastScreen layout.Size
	timeText   string
	dateText   string
}

// NewEngine creates an engine. Call Apply before the first Tick.
func NewEngine(store Store, window Window, system theme.System) *Engine {
	if system == nil {
		system = theme.Fallback
	}
	return &Engine{
		store:    store,
		window:   window,
		system:   system,
		now:      time.Now,
		notifier: notify.New(),
		config:   config.DefaultConfig(),
	}
}

// SetClock replaces the time source for the labels
func (e *Engine) SetClock(now func() time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
}

// Subscribe registers an observer that receives every applied snapshot
func (e *Engine) Subscribe(observer notify.Observer) *notify.Subscription {
	return e.notifier.Subscribe(observer)
}

// Snapshot returns a copy of the configuration currently on screen
func (e *Engine) Snapshot() *config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.Clone()
}

// Visual returns the visual state currently on screen
func (e *Engine) Visual() VisualState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visual
}

// Labels returns the time and date text currently on screen
func (e *Engine) Labels() (timeText, dateText string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timeText, e.dateText
}

// Apply reloads the configuration from the store, applies it to the window
// and notifies subscribers. Applying an unchanged store twice yields the same
// state. A failure part way through keeps the last good configuration and
// skips the notification.
func (e *Engine) Apply() VisualState {
	e.mu.Lock()
	snapshot, visual, ok := e.applyLocked()
	e.mu.Unlock()

	if ok {
		e.notifier.Notify(snapshot)
	}
	return visual
}

func (e *Engine) applyLocked() (snapshot *config.Config, visual VisualState, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: failed to apply configuration: %v", r)
			snapshot, visual, ok = nil, e.visual, false
		}
	}()

	cfg := e.store.Load()
	visual = Resolve(cfg, e.system)

	e.window.SetStyle(visual)
	e.window.SetTopmost(cfg.AlwaysOnTop)
	e.window.SetClickThrough(true)

	e.config = cfg
	e.visual = visual
	e.refreshLabelsLocked(true)
	e.positionLocked()
	e.lastSize = e.window.Size()
	e.lastScreen = e.window.ScreenSize()

	return cfg.Clone(), visual, true
}

// positionLocked places the window: a live preview keeps it where it is,
// explicit coordinates come next, the anchor is the fallback. Drag mode does
// not change placement; it only stops resize pinning and re-anchoring.
func (e *Engine) positionLocked() {
	cfg := e.config

	switch {
	case e.previewing:
		e.anchored = false
	case cfg.HasExplicitPosition():
		e.anchored = false
		e.window.SetPosition(cfg.ExplicitPosition())
	default:
		e.anchored = true
		e.window.SetPosition(layout.Resolve(cfg.Position, e.window.Size(), e.window.ScreenSize()))
	}
}

// Tick refreshes the labels and follows any size change they caused. A
// change of screen size re-resolves the anchor.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.refreshLabelsLocked(false)

	if size := e.window.Size(); size != e.lastSize {
		prev := e.lastSize
		e.lastSize = size
		e.resizeLocked(size, prev)
	}

	if screen := e.window.ScreenSize(); screen != e.lastScreen {
		e.lastScreen = screen
		if e.governedByAnchorLocked() {
			e.window.SetPosition(layout.Resolve(e.config.Position, e.lastSize, screen))
		}
	}
}

func (e *Engine) governedByAnchorLocked() bool {
	return e.anchored && !e.previewing && !e.config.DragMode && !e.config.HasExplicitPosition()
}

func (e *Engine) refreshLabelsLocked(force bool) {
	cfg := e.config
	timeText, dateText := clock.Labels(e.now(), cfg.TimeZone, cfg.ShowSeconds, cfg.ShowDate, cfg.DateFormat)
	if !force && timeText == e.timeText && dateText == e.dateText {
		return
	}
	e.timeText, e.dateText = timeText, dateText
	e.window.SetText(timeText, dateText)
}

// Resize handles a size change reported by the window host
func (e *Engine) Resize(newSize, oldSize layout.Size) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastSize = newSize
	e.resizeLocked(newSize, oldSize)
}

// resizeLocked keeps the anchored edge in place. It does nothing unless the
// anchor governs: no explicit coordinates, no drag-mode, no preview.
func (e *Engine) resizeLocked(newSize, oldSize layout.Size) {
	if !e.governedByAnchorLocked() {
		return
	}

	pos := layout.ResizeShift(e.config.Position, e.window.Position(), newSize, oldSize, e.window.ScreenSize())
	if pos.Valid() {
		e.window.SetPosition(pos)
	}
}

// WindowGeometry returns the window position, window size and screen size
func (e *Engine) WindowGeometry() (pos layout.Point, window, screen layout.Size) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.window.Position(), e.window.Size(), e.window.ScreenSize()
}

// Preview moves the window directly without touching the store. Until
// EndPreview, reloads and resizes leave the window where it was put.
func (e *Engine) Preview(p layout.Point) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !p.Valid() {
		return
	}
	e.previewing = true
	e.anchored = false
	e.window.SetPosition(p)
}

// PreviewAnchor moves the window to where anchor would put it and returns
// that position
func (e *Engine) PreviewAnchor(anchor layout.Anchor) layout.Point {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := layout.Resolve(anchor, e.window.Size(), e.window.ScreenSize())
	e.previewing = true
	e.anchored = false
	e.window.SetPosition(p)
	return p
}

// Previewing reports whether a live preview is active
func (e *Engine) Previewing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.previewing
}

// EndPreview hands positioning back to the configuration. The window stays
// put until the next Apply.
func (e *Engine) EndPreview() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.previewing = false
}

// Run dispatches a Tick every second until ctx is done
func (e *Engine) Run(ctx context.Context, d Dispatcher) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.Dispatch(e.Tick)
		case <-ctx.Done():
			return
		}
	}
}
