package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/siegfried/desktopclock/internal/appearance"
	"github.com/siegfried/desktopclock/internal/config"
	"github.com/siegfried/desktopclock/internal/history"
	"github.com/siegfried/desktopclock/internal/layout"
	"github.com/siegfried/desktopclock/internal/overlay"
	"github.com/siegfried/desktopclock/internal/settings"
	"github.com/siegfried/desktopclock/internal/startup"
	"github.com/siegfried/desktopclock/internal/theme"
	"github.com/siegfried/desktopclock/internal/ui"
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

// queue holds dispatched functions until the test runs them
type queue struct {
	fns []func()
}

func (q *queue) Dispatch(fn func()) { q.fns = append(q.fns, fn) }

func (q *queue) drain() {
	for len(q.fns) > 0 {
		fn := q.fns[0]
		q.fns = q.fns[1:]
		fn()
	}
}

type testApp struct {
	*App
	loop   *queue
	window *fakeWindow
	exits  []int
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store := config.NewManagerAt(filepath.Join(t.TempDir(), "config.json"))
	win := &fakeWindow{}
	engine := overlay.NewEngine(store, win, theme.Fallback)
	engine.Apply()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ta := &testApp{loop: &queue{}, window: win}
	ta.App = &App{
		configManager: store,
		monitor:       appearance.NewMonitor(theme.Fallback, time.Hour),
		menuBar:       ui.NewMenuBar(),
		loop:          ta.loop,
		engine:        engine,
		tray:          ui.NewTray(engine, store, nil, settings.LogReporter{}, nil, nil),
		ctx:           ctx,
		cancel:        cancel,
		exit:          func(code int) { ta.exits = append(ta.exits, code) },
	}
	return ta
}

func find(t *testing.T, items []ui.Item, prefix string) ui.Item {
	t.Helper()
	for _, it := range items {
		if strings.HasPrefix(it.Text, prefix) {
			return it
		}
	}
	t.Fatalf("no item starting with %q", prefix)
	return ui.Item{}
}

func TestQuit_ShutsDownOnUILoop(t *testing.T) {
	a := newTestApp(t)
	before := a.window.pos

	settingsMenu := find(t, a.tray.Items(), "Settings").Children()
	find(t, find(t, settingsMenu, "Position").Children(), "Top Left").Clicked()
	previewed := a.window.pos
	if previewed == before {
		t.Fatal("preview did not move the window")
	}

	a.Quit()

	if len(a.exits) != 0 || a.window.pos != previewed {
		t.Fatal("shutdown ran before the UI loop picked it up")
	}
	if len(a.loop.fns) != 1 {
		t.Fatalf("dispatched %d functions, want 1", len(a.loop.fns))
	}

	a.loop.drain()

	if a.window.pos != before {
		t.Errorf("window = %v after quit, want the unsaved preview undone (%v)", a.window.pos, before)
	}
	if len(a.exits) != 1 || a.exits[0] != 0 {
		t.Errorf("exit codes = %v, want [0]", a.exits)
	}
	if a.ctx.Err() == nil {
		t.Error("context not cancelled")
	}
	if a.tray.Editing() {
		t.Error("settings draft still open")
	}
}

func newEntry(t *testing.T) startup.FileEntry {
	return startup.FileEntry{
		Path:   filepath.Join(t.TempDir(), "autostart", "desktopclock.desktop"),
		Render: startup.DesktopEntry,
	}
}

func entryExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestReload_SyncsStartupEntry(t *testing.T) {
	a := newTestApp(t)
	entry := newEntry(t)
	a.startupManager = startup.NewManagerWith(entry, []string{"desktopclock", "run"}, a.configManager)

	// written by another process
	if err := config.NewManagerAt(a.configManager.Path()).Update(func(c *config.Config) {
		c.StartWithSystem = true
	}); err != nil {
		t.Fatal(err)
	}
	a.reload(history.SourceExternal)

	if !entryExists(entry.Path) {
		t.Error("entry not created after reloading a config with startup on")
	}
	if !a.engine.Snapshot().StartWithSystem {
		t.Error("engine did not pick up the reloaded config")
	}
}

func TestRestore_SyncsStartupEntry(t *testing.T) {
	a := newTestApp(t)
	entry := newEntry(t)
	a.startupManager = startup.NewManagerWith(entry, []string{"desktopclock", "run"}, a.configManager)

	journal, err := history.Open(filepath.Join(t.TempDir(), history.FileName))
	if err != nil {
		t.Fatal(err)
	}
	defer journal.Close()

	cfg := config.DefaultConfig()
	cfg.StartWithSystem = true
	rev, err := journal.Record(cfg, history.SourceSettings)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := journal.Restore(rev.ID, a.saver()); err != nil {
		t.Fatal(err)
	}

	if !entryExists(entry.Path) {
		t.Error("entry not created when restoring a revision with startup on")
	}
	if !a.configManager.Load().StartWithSystem {
		t.Error("restored flag not saved")
	}
}

func TestSaver_WithoutStartup(t *testing.T) {
	a := newTestApp(t)
	if a.saver() != history.Saver(a.configManager) {
		t.Error("saver should write straight to the config file without startup registration")
	}
}
