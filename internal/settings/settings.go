// Package settings edits a draft of the clock configuration against the live
// overlay and commits it on save.
package settings

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/siegfried/desktopclock/internal/config"
	"github.com/siegfried/desktopclock/internal/layout"
	"github.com/siegfried/desktopclock/internal/notify"
	"github.com/siegfried/desktopclock/internal/overlay"
)

// ErrClosed is returned by Save after Close
var ErrClosed = errors.New("settings closed")

// Overlay is the part of the presentation engine the settings view drives
type Overlay interface {
	Snapshot() *config.Config
	Subscribe(observer notify.Observer) *notify.Subscription
	Apply() overlay.VisualState
	Preview(p layout.Point)
	PreviewAnchor(anchor layout.Anchor) layout.Point
	EndPreview()
	Previewing() bool
	WindowGeometry() (pos layout.Point, window, screen layout.Size)
}

// Store persists a committed configuration
type Store interface {
	Save(cfg *config.Config) error
}

// Startup keeps the platform autostart entry in line with a flag
type Startup interface {
	Sync(enabled bool) error
}

// Reporter shows an error to the user
type Reporter interface {
	Report(title string, err error)
}

// LogReporter reports through the standard logger
type LogReporter struct{}

// Report implements Reporter
func (LogReporter) Report(title string, err error) {
	log.Printf("Error: %s: %v", title, err)
}

// Synchronizer is one open settings view
type Synchronizer struct {
	mu       sync.Mutex
	overlay  Overlay
	store    Store
	startup  Startup
	reporter Reporter
	sub      *notify.Subscription
	controls Controls
	onChange func(Controls)
	saved    bool
	closed   bool
}

// Open loads the current snapshot into the controls and follows every
// configuration the overlay applies until Close. startup may be nil.
func Open(ov Overlay, store Store, startup Startup, reporter Reporter) *Synchronizer {
	if reporter == nil {
		reporter = LogReporter{}
	}
	s := &Synchronizer{
		overlay:  ov,
		store:    store,
		startup:  startup,
		reporter: reporter,
	}
	s.controls = s.populate(ov.Snapshot())
	s.sub = ov.Subscribe(s.resync)
	return s
}

// populate fills the controls from cfg and the sliders from where the
// window is, or where explicit coordinates put it
func (s *Synchronizer) populate(cfg *config.Config) Controls {
	c := controlsFrom(cfg)

	pos, window, screen := s.overlay.WindowGeometry()
	if cfg.HasExplicitPosition() {
		pos = cfg.ExplicitPosition()
	}
	pct := layout.ToPercent(pos, window, screen)
	c.PercentX, c.PercentY = pct.X, pct.Y
	return c
}

func (s *Synchronizer) resync(cfg *config.Config) {
	c := s.populate(cfg)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.controls = c
	hook := s.onChange
	s.mu.Unlock()

	if hook != nil {
		hook(c)
	}
}

// OnChange sets a hook called with the new controls after every resync
func (s *Synchronizer) OnChange(fn func(Controls)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Controls returns the current draft
func (s *Synchronizer) Controls() Controls {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controls
}

// Edit changes the draft without touching the overlay or the store
func (s *Synchronizer) Edit(fn func(*Controls)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.controls)
}

// SetPositionPercent moves the overlay to the slider position right away
// and switches the anchor to custom. Nothing is persisted until Save.
func (s *Synchronizer) SetPositionPercent(x, y float64) {
	_, window, screen := s.overlay.WindowGeometry()
	p := layout.FromPercent(layout.Point{X: x, Y: y}, window, screen)
	pct := layout.ToPercent(p, window, screen)

	s.mu.Lock()
	s.controls.Position = layout.AnchorCustom
	s.controls.PercentX, s.controls.PercentY = pct.X, pct.Y
	s.mu.Unlock()

	s.overlay.Preview(p)
}

// SelectAnchor previews an anchor and moves the sliders to match it.
// Selecting custom leaves the window where it is.
func (s *Synchronizer) SelectAnchor(anchor layout.Anchor) {
	if !anchor.Known() {
		return
	}
	if anchor == layout.AnchorCustom {
		s.Edit(func(c *Controls) { c.Position = anchor })
		return
	}

	p := s.overlay.PreviewAnchor(anchor)
	_, window, screen := s.overlay.WindowGeometry()
	pct := layout.ToPercent(p, window, screen)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls.Position = anchor
	s.controls.PercentX, s.controls.PercentY = pct.X, pct.Y
}

// Draft builds the configuration Save would commit. A named anchor leaves
// the coordinates unset so the anchor governs; custom keeps the window
// where the preview put it.
func (s *Synchronizer) Draft() *config.Config {
	c := s.Controls()
	cfg := c.Build()
	if cfg.Position == layout.AnchorCustom {
		pos, _, _ := s.overlay.WindowGeometry()
		if pos.Valid() {
			cfg.WindowLeft = layout.Coord(pos.X)
			cfg.WindowTop = layout.Coord(pos.Y)
		}
	}
	return cfg
}

// Save commits the draft. The startup entry is synced first and rolled back
// if the configuration cannot be written, so both stay consistent. Errors
// are reported and returned; on success the caller applies the overlay and
// closes the view.
func (s *Synchronizer) Save() error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}

	cfg := s.Draft()
	prev := s.overlay.Snapshot()

	if s.startup != nil {
		if err := s.startup.Sync(cfg.StartWithSystem); err != nil {
			err = fmt.Errorf("failed to update startup entry: %w", err)
			s.reporter.Report("Could not save settings", err)
			return err
		}
	}

	if err := s.store.Save(cfg); err != nil {
		if s.startup != nil {
			if rerr := s.startup.Sync(prev.StartWithSystem); rerr != nil {
				log.Printf("Warning: failed to roll back startup entry: %v", rerr)
			}
		}
		s.reporter.Report("Could not save settings", err)
		return err
	}

	s.mu.Lock()
	s.saved = true
	s.mu.Unlock()

	if s.overlay.Previewing() {
		s.overlay.EndPreview()
	}
	return nil
}

// Close unsubscribes and, when a preview was never saved, puts the overlay
// back where the configuration says. Calling it again is a no-op.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	saved := s.saved
	s.mu.Unlock()

	s.sub.Unsubscribe()

	if !saved && s.overlay.Previewing() {
		s.overlay.EndPreview()
		s.overlay.Apply()
	}
}
