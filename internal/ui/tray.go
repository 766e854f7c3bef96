// Package ui builds the tray menu: settings submenus that edit a draft
// against the live overlay, reload, startup, history and quit.
package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/siegfried/desktopclock/internal/config"
	"github.com/siegfried/desktopclock/internal/history"
	"github.com/siegfried/desktopclock/internal/layout"
	"github.com/siegfried/desktopclock/internal/settings"
	"github.com/siegfried/desktopclock/internal/theme"
)

// HistoryItems is how many revisions the history submenu shows
const HistoryItems = 10

// Item is one menu entry, independent of the tray toolkit
type Item struct {
	Text      string
	Separator bool
	Checked   bool
	Clicked   func()
	Children  func() []Item
}

// Journal lists saved revisions
type Journal interface {
	List(limit int) ([]history.Revision, error)
}

// Preset values offered where the tray cannot show a slider or text field
var (
	FontSizes    = []int{48, 72, 96, 120, 160, 200}
	Opacities    = []float64{0.25, 0.5, 0.75, 1}
	BlurRadii    = []float64{0, 4, 8, 16}
	Percents     = []float64{0, 25, 50, 75, 100}
	TextColors   = []string{"#FFFFFF", "#000000", "#FF1E90FF", "#FFFF6347", "#FF32CD32", "#FFFFD700"}
	ShadowColors = []string{"#000000", "#FFFFFF", "#80000000"}
	anchorLabels = map[layout.Anchor]string{
		layout.AnchorCenter:      "Center",
		layout.AnchorTopLeft:     "Top Left",
		layout.AnchorTopRight:    "Top Right",
		layout.AnchorBottomLeft:  "Bottom Left",
		layout.AnchorBottomRight: "Bottom Right",
		layout.AnchorCustom:      "Custom",
	}
)

// Tray holds the menu state and the callbacks behind each action
type Tray struct {
	overlay  settings.Overlay
	store    settings.Store
	startup  settings.Startup
	reporter settings.Reporter
	journal  Journal
	zones    settings.ZoneSource
	now      func() time.Time

	mu          sync.Mutex
	session     *settings.Synchronizer
	zoneChoices []string
	zoneStatus  string
	refreshing  bool

	onReload        func()
	onToggleStartup func(bool)
	onRestore       func(id string)
	onSaved         func()
	onQuit          func()
}

// NewTray creates the tray model. journal, zones and startup may be nil.
func NewTray(ov settings.Overlay, store settings.Store, startup settings.Startup, reporter settings.Reporter, journal Journal, zones settings.ZoneSource) *Tray {
	return &Tray{
		overlay:  ov,
		store:    store,
		startup:  startup,
		reporter: reporter,
		journal:  journal,
		zones:    zones,
		now:      time.Now,
	}
}

// SetOnReload sets the callback for the reload action
func (t *Tray) SetOnReload(callback func()) {
	t.onReload = callback
}

// SetOnToggleStartup sets the callback for the start-with-system toggle
func (t *Tray) SetOnToggleStartup(callback func(bool)) {
	t.onToggleStartup = callback
}

// SetOnRestore sets the callback for restoring a history revision
func (t *Tray) SetOnRestore(callback func(id string)) {
	t.onRestore = callback
}

// SetOnSaved sets the callback run after settings were saved
func (t *Tray) SetOnSaved(callback func()) {
	t.onSaved = callback
}

// SetOnQuit sets the callback for the quit action
func (t *Tray) SetOnQuit(callback func()) {
	t.onQuit = callback
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// Items returns the top-level menu
func (t *Tray) Items() []Item {
	snapshot := t.overlay.Snapshot()

	items := []Item{
		{Text: "Settings", Children: t.settingsItems},
		{Text: "Reload Configuration", Clicked: func() { call(t.onReload) }},
		{Separator: true},
		{
			Text:    "Start with System",
			Checked: snapshot.StartWithSystem,
			Clicked: func() {
				if t.onToggleStartup != nil {
					t.onToggleStartup(!snapshot.StartWithSystem)
				}
			},
		},
	}

	if t.journal != nil {
		items = append(items, Item{Text: "History", Children: t.historyItems})
	}

	items = append(items,
		Item{Separator: true},
		Item{Text: "Quit", Clicked: func() { call(t.onQuit) }},
	)
	return items
}

func (t *Tray) historyItems() []Item {
	revs, err := t.journal.List(HistoryItems)
	if err != nil {
		return []Item{{Text: "History unavailable"}}
	}
	if len(revs) == 0 {
		return []Item{{Text: "No saved settings yet"}}
	}

	now := t.now()
	items := make([]Item, 0, len(revs))
	for _, rev := range revs {
		id := rev.ID
		items = append(items, Item{
			Text: rev.Summary(now),
			Clicked: func() {
				if t.onRestore != nil {
					t.onRestore(id)
				}
			},
		})
	}
	return items
}

// Editing reports whether a settings draft is open
func (t *Tray) Editing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session != nil
}

// draft opens the settings session on first use
func (t *Tray) draft() *settings.Synchronizer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		t.session = settings.Open(t.overlay, t.store, t.startup, t.reporter)
	}
	if t.zoneChoices == nil {
		if sys, ok := t.zones.(interface{ System() []string }); ok {
			zones := sys.System()
			t.zoneChoices = settings.ZoneChoices(zones)
			t.zoneStatus = fmt.Sprintf("Loaded %d system time zones", len(zones))
		}
	}
	return t.session
}

func (t *Tray) edit(fn func(*settings.Controls)) func() {
	return func() { t.draft().Edit(fn) }
}

// Save commits the open draft. On success the session ends and the saved
// callback runs.
func (t *Tray) Save() error {
	s := t.draft()
	if err := s.Save(); err != nil {
		return err
	}

	t.mu.Lock()
	t.session = nil
	t.mu.Unlock()

	s.Close()
	call(t.onSaved)
	return nil
}

// Discard drops the open draft and puts the overlay back
func (t *Tray) Discard() {
	t.mu.Lock()
	s := t.session
	t.session = nil
	t.mu.Unlock()

	if s != nil {
		s.Close()
	}
}

func (t *Tray) settingsItems() []Item {
	s := t.draft()
	c := s.Controls()

	items := []Item{
		{Text: "Font", Children: func() []Item {
			return choices(settings.FontFamilies(c.FontFamily), c.FontFamily, func(v string) string { return v },
				func(v string) func() { return t.edit(func(c *settings.Controls) { c.FontFamily = v }) })
		}},
		{Text: fmt.Sprintf("Size (%d)", c.FontSize), Children: func() []Item {
			return choices(FontSizes, c.FontSize, func(v int) string { return fmt.Sprintf("%d pt", v) },
				func(v int) func() { return t.edit(func(c *settings.Controls) { c.FontSize = v }) })
		}},
		{Text: "Weight", Children: func() []Item {
			return choices(config.FontWeights, c.FontWeight, func(v config.FontWeight) string { return string(v) },
				func(v config.FontWeight) func() { return t.edit(func(c *settings.Controls) { c.FontWeight = v }) })
		}},
		{Text: "Opacity", Children: func() []Item {
			return choices(Opacities, c.Opacity, func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
				func(v float64) func() { return t.edit(func(c *settings.Controls) { c.Opacity = v }) })
		}},
		{Separator: true},
		{Text: "Theme", Children: func() []Item {
			return choices(theme.Modes, c.ThemeMode, func(v theme.Mode) string { return string(v) },
				func(v theme.Mode) func() { return t.edit(func(c *settings.Controls) { c.ThemeMode = v }) })
		}},
		toggle("Use System Accent", c.UseSystemAccent, t.edit(func(c *settings.Controls) { c.UseSystemAccent = !c.UseSystemAccent })),
		{Text: "Accent Adjustment", Children: func() []Item {
			return choices(theme.Adjustments, c.ColorAdjustment, func(v theme.Adjustment) string { return string(v) },
				func(v theme.Adjustment) func() { return t.edit(func(c *settings.Controls) { c.ColorAdjustment = v }) })
		}},
		{Text: "Text Color", Children: func() []Item {
			return choices(withCurrent(TextColors, c.TextColor), c.TextColor, func(v string) string { return v },
				func(v string) func() { return t.edit(func(c *settings.Controls) { c.TextColor = v }) })
		}},
		{Separator: true},
		toggle("Shadow", c.ShowShadow, t.edit(func(c *settings.Controls) { c.ShowShadow = !c.ShowShadow })),
		{Text: "Shadow Blur", Children: func() []Item {
			return choices(BlurRadii, c.ShadowBlurRadius, func(v float64) string { return fmt.Sprintf("%g px", v) },
				func(v float64) func() { return t.edit(func(c *settings.Controls) { c.ShadowBlurRadius = v }) })
		}},
		{Text: "Shadow Color", Children: func() []Item {
			return choices(withCurrent(ShadowColors, c.ShadowColor), c.ShadowColor, func(v string) string { return v },
				func(v string) func() { return t.edit(func(c *settings.Controls) { c.ShadowColor = v }) })
		}},
		{Separator: true},
		{Text: "Position", Children: func() []Item {
			return choices(layout.Anchors, c.Position, func(v layout.Anchor) string { return anchorLabels[v] },
				func(v layout.Anchor) func() { return func() { s.SelectAnchor(v) } })
		}},
		{Text: fmt.Sprintf("Horizontal (%.0f%%)", c.PercentX), Children: func() []Item {
			return choices(Percents, c.PercentX, func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
				func(v float64) func() { return func() { s.SetPositionPercent(v, s.Controls().PercentY) } })
		}},
		{Text: fmt.Sprintf("Vertical (%.0f%%)", c.PercentY), Children: func() []Item {
			return choices(Percents, c.PercentY, func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
				func(v float64) func() { return func() { s.SetPositionPercent(s.Controls().PercentX, v) } })
		}},
		{Separator: true},
		toggle("Show Seconds", c.ShowSeconds, t.edit(func(c *settings.Controls) { c.ShowSeconds = !c.ShowSeconds })),
		toggle("Show Date", c.ShowDate, t.edit(func(c *settings.Controls) { c.ShowDate = !c.ShowDate })),
		{Text: "Date Format", Children: func() []Item {
			return choices(withCurrent(settings.DateFormats, c.DateFormat), c.DateFormat, func(v string) string { return v },
				func(v string) func() { return t.edit(func(c *settings.Controls) { c.DateFormat = v }) })
		}},
		{Text: fmt.Sprintf("Time Zone (%s)", c.TimeZone), Children: func() []Item { return t.zoneItems(c.TimeZone) }},
		{Separator: true},
		toggle("Always on Top", c.AlwaysOnTop, t.edit(func(c *settings.Controls) { c.AlwaysOnTop = !c.AlwaysOnTop })),
		toggle("Start with System", c.StartWithSystem, t.edit(func(c *settings.Controls) { c.StartWithSystem = !c.StartWithSystem })),
		{Separator: true},
		{Text: "Save", Clicked: func() { t.Save() }},
		{Text: "Discard Changes", Clicked: t.Discard},
	}
	return items
}

func toggle(text string, on bool, clicked func()) Item {
	return Item{Text: text, Checked: on, Clicked: clicked}
}

func choices[T comparable](values []T, current T, label func(T) string, clicked func(T) func()) []Item {
	items := make([]Item, 0, len(values))
	for _, v := range values {
		items = append(items, Item{Text: label(v), Checked: v == current, Clicked: clicked(v)})
	}
	return items
}

func withCurrent(values []string, current string) []string {
	for _, v := range values {
		if strings.EqualFold(v, current) {
			return values
		}
	}
	if current == "" {
		return values
	}
	return append(append([]string(nil), values...), current)
}

// RefreshZones fetches the zone list off the UI thread. done runs when the
// list is in place.
func (t *Tray) RefreshZones(ctx context.Context, done func()) {
	if t.zones == nil {
		return
	}
	t.mu.Lock()
	if t.refreshing {
		t.mu.Unlock()
		return
	}
	t.refreshing = true
	t.zoneStatus = "Loading time zones..."
	t.mu.Unlock()

	go func() {
		zones, status := settings.RefreshZones(ctx, t.zones)

		t.mu.Lock()
		t.zoneChoices, t.zoneStatus = zones, status
		t.refreshing = false
		t.mu.Unlock()

		if done != nil {
			done()
		}
	}()
}

// ZoneStatus returns the last refresh status line
func (t *Tray) ZoneStatus() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.zoneStatus
}

func (t *Tray) zoneItems(current string) []Item {
	t.mu.Lock()
	zones := t.zoneChoices
	status := t.zoneStatus
	t.mu.Unlock()

	items := []Item{{Text: "Refresh from Network", Clicked: func() { t.RefreshZones(context.Background(), nil) }}}
	if status != "" {
		items = append(items, Item{Text: status})
	}
	items = append(items, Item{Separator: true})

	pick := func(zone string) func() {
		return t.edit(func(c *settings.Controls) { c.TimeZone = zone })
	}
	items = append(items, Item{Text: "Local", Checked: current == "Local", Clicked: pick("Local")})

	// Group by region so the menu stays short
	regions := map[string][]string{}
	for _, z := range zones {
		if z == "Local" {
			continue
		}
		region, _, found := strings.Cut(z, "/")
		if !found {
			region = "Other"
		}
		regions[region] = append(regions[region], z)
	}

	names := make([]string, 0, len(regions))
	for r := range regions {
		names = append(names, r)
	}
	sort.Strings(names)

	for _, r := range names {
		list := regions[r]
		checked := false
		for _, z := range list {
			if z == current {
				checked = true
			}
		}
		items = append(items, Item{
			Text:    r,
			Checked: checked,
			Children: func() []Item {
				return choices(list, current, func(v string) string { return v }, pick)
			},
		})
	}
	return items
}
