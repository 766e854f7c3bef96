package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/siegfried/desktopclock/internal/clock"
	"github.com/siegfried/desktopclock/internal/config"
	"github.com/siegfried/desktopclock/internal/history"
	"github.com/siegfried/desktopclock/internal/layout"
	"github.com/siegfried/desktopclock/internal/overlay"
	"github.com/siegfried/desktopclock/internal/theme"
)

type fakeWindow struct {
	pos layout.Point
}

func (w *fakeWindow) SetStyle(overlay.VisualState) {}
func (w *fakeWindow) SetText(string, string)       {}
func (w *fakeWindow) Size() layout.Size            { return layout.Size{Width: 400, Height: 200} }
func (w *fakeWindow) Position() layout.Point       { return w.pos }
func (w *fakeWindow) SetPosition(p layout.Point)   { w.pos = p }
func (w *fakeWindow) ScreenSize() layout.Size      { return layout.Size{Width: 1920, Height: 1080} }
func (w *fakeWindow) SetClickThrough(bool)         {}
func (w *fakeWindow) SetTopmost(bool)              {}

type fakeJournal struct {
	revs []history.Revision
	err  error
}

func (j fakeJournal) List(limit int) ([]history.Revision, error) {
	return j.revs, j.err
}

type fakeZones struct{}

func (fakeZones) List(context.Context) ([]string, clock.Origin, error) {
	return []string{"Europe/Berlin", "America/New_York", "Europe/Paris", "UTC"}, clock.OriginNetwork, nil
}

func (fakeZones) System() []string {
	return []string{"Asia/Tokyo", "UTC"}
}

type nopReporter struct{}

func (nopReporter) Report(string, error) {}

type trayFixture struct {
	tray   *Tray
	store  *config.Manager
	engine *overlay.Engine
	window *fakeWindow
}

func newTrayFixture(t *testing.T, journal Journal) *trayFixture {
	t.Helper()
	store := config.NewManagerAt(filepath.Join(t.TempDir(), "config.json"))
	win := &fakeWindow{}
	engine := overlay.NewEngine(store, win, theme.Fallback)
	engine.Apply()

	tray := NewTray(engine, store, nil, nopReporter{}, journal, fakeZones{})
	tray.SetOnSaved(func() { engine.Apply() })
	return &trayFixture{tray: tray, store: store, engine: engine, window: win}
}

func find(t *testing.T, items []Item, prefix string) Item {
	t.Helper()
	for _, it := range items {
		if strings.HasPrefix(it.Text, prefix) {
			return it
		}
	}
	t.Fatalf("no item starting with %q", prefix)
	return Item{}
}

func TestItems_TopLevel(t *testing.T) {
	f := newTrayFixture(t, fakeJournal{})

	reloaded, quit := false, false
	var toggled []bool
	f.tray.SetOnReload(func() { reloaded = true })
	f.tray.SetOnQuit(func() { quit = true })
	f.tray.SetOnToggleStartup(func(on bool) { toggled = append(toggled, on) })

	items := f.tray.Items()
	find(t, items, "Reload").Clicked()
	find(t, items, "Quit").Clicked()
	startup := find(t, items, "Start with System")
	startup.Clicked()

	if !reloaded || !quit {
		t.Errorf("reload %v, quit %v", reloaded, quit)
	}
	if startup.Checked || len(toggled) != 1 || !toggled[0] {
		t.Errorf("startup item checked=%v, toggled %v", startup.Checked, toggled)
	}
	find(t, items, "History")
	find(t, items, "Settings")
}

func TestItems_NoJournal(t *testing.T) {
	f := newTrayFixture(t, nil)
	for _, it := range f.tray.Items() {
		if it.Text == "History" {
			t.Error("history shown without a journal")
		}
	}
}

func TestSettings_EditAndSave(t *testing.T) {
	f := newTrayFixture(t, nil)

	settingsMenu := find(t, f.tray.Items(), "Settings").Children()
	find(t, find(t, settingsMenu, "Size").Children(), "72 pt").Clicked()

	if !f.tray.Editing() {
		t.Fatal("no draft open after an edit")
	}
	if f.store.Load().FontSize != 120 {
		t.Fatal("edit was saved before Save")
	}

	settingsMenu = find(t, f.tray.Items(), "Settings").Children()
	if size := find(t, settingsMenu, "Size"); size.Text != "Size (72)" {
		t.Errorf("size label = %q", size.Text)
	}
	find(t, settingsMenu, "Save").Clicked()

	if f.tray.Editing() {
		t.Error("draft still open after save")
	}
	if got := f.store.Load().FontSize; got != 72 {
		t.Errorf("saved font size = %d, want 72", got)
	}
	if f.engine.Snapshot().FontSize != 72 {
		t.Error("engine not re-applied after save")
	}
}

func TestSettings_PositionPreviewAndDiscard(t *testing.T) {
	f := newTrayFixture(t, nil)
	before := f.window.pos

	settingsMenu := find(t, f.tray.Items(), "Settings").Children()
	find(t, find(t, settingsMenu, "Position").Children(), "Top Left").Clicked()

	if want := (layout.Point{X: 20, Y: 20}); f.window.pos != want {
		t.Errorf("preview = %v, want %v", f.window.pos, want)
	}

	f.tray.Discard()

	if f.window.pos != before {
		t.Errorf("window = %v after discard, want %v", f.window.pos, before)
	}
	if f.tray.Editing() {
		t.Error("draft still open after discard")
	}
}

func TestSettings_Sliders(t *testing.T) {
	f := newTrayFixture(t, nil)

	settingsMenu := find(t, f.tray.Items(), "Settings").Children()
	find(t, find(t, settingsMenu, "Horizontal").Children(), "100%").Clicked()

	if f.window.pos.X != 1520 {
		t.Errorf("x = %v, want 1520", f.window.pos.X)
	}
	settingsMenu = find(t, f.tray.Items(), "Settings").Children()
	custom := find(t, find(t, settingsMenu, "Position").Children(), "Custom")
	if !custom.Checked {
		t.Error("slider move did not select the custom anchor")
	}
	f.tray.Discard()
}

func TestHistoryItems(t *testing.T) {
	now := time.Now()
	journal := fakeJournal{revs: []history.Revision{
		{ID: "aaaa-1", SavedAt: now.Add(-2 * time.Hour), Source: history.SourceSettings, Config: config.DefaultConfig()},
		{ID: "bbbb-2", SavedAt: now.Add(-3 * 24 * time.Hour), Source: history.SourceCLI, Config: config.DefaultConfig()},
	}}
	f := newTrayFixture(t, journal)

	var restored string
	f.tray.SetOnRestore(func(id string) { restored = id })

	items := find(t, f.tray.Items(), "History").Children()
	if len(items) != 2 || !strings.HasPrefix(items[0].Text, "2 hours ago") {
		t.Fatalf("history items = %+v", items)
	}
	items[1].Clicked()
	if restored != "bbbb-2" {
		t.Errorf("restored %q, want bbbb-2", restored)
	}
}

func TestHistoryItems_Errors(t *testing.T) {
	f := newTrayFixture(t, fakeJournal{err: errors.New("locked")})
	items := find(t, f.tray.Items(), "History").Children()
	if len(items) != 1 || items[0].Text != "History unavailable" {
		t.Errorf("items = %+v", items)
	}
}

func TestZoneItems(t *testing.T) {
	f := newTrayFixture(t, nil)

	settingsMenu := find(t, f.tray.Items(), "Settings").Children()
	zones := find(t, settingsMenu, "Time Zone").Children()

	find(t, zones, "Loaded 2 system time zones")
	local := find(t, zones, "Local")
	if !local.Checked {
		t.Error("Local not checked by default")
	}
	asia := find(t, zones, "Asia").Children()
	find(t, asia, "Asia/Tokyo").Clicked()
	find(t, zones, "Other")

	done := make(chan struct{})
	f.tray.RefreshZones(context.Background(), func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not finish")
	}
	if got := f.tray.ZoneStatus(); got != "Loaded 4 time zones from worldtimeapi.org" {
		t.Errorf("status = %q", got)
	}

	settingsMenu = find(t, f.tray.Items(), "Settings").Children()
	zoneMenu := find(t, settingsMenu, "Time Zone (Asia/Tokyo)").Children()
	europe := find(t, zoneMenu, "Europe").Children()
	if len(europe) != 2 {
		t.Errorf("europe = %+v", europe)
	}
	f.tray.Discard()
}
