package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/siegfried/desktopclock/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	})
	return s
}

func withFontSize(size int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.FontSize = size
	return cfg
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t)

	for _, size := range []int{60, 80, 100} {
		if _, err := s.Record(withFontSize(size), SourceSettings); err != nil {
			t.Fatalf("Record(%d) error = %v", size, err)
		}
	}

	revs, err := s.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(revs) != 3 {
		t.Fatalf("List() returned %d revisions, want 3", len(revs))
	}
	for i, want := range []int{100, 80, 60} {
		if revs[i].Config.FontSize != want {
			t.Errorf("revs[%d].FontSize = %d, want %d", i, revs[i].Config.FontSize, want)
		}
	}
	if !revs[0].SavedAt.After(revs[1].SavedAt) {
		t.Errorf("revisions not newest first: %v, %v", revs[0].SavedAt, revs[1].SavedAt)
	}

	limited, err := s.List(2)
	if err != nil || len(limited) != 2 {
		t.Errorf("List(2) = %d revisions, %v", len(limited), err)
	}
}

func TestRecord_SkipsDuplicateOfLatest(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Record(withFontSize(60), SourceSettings)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	again, err := s.Record(withFontSize(60), SourceCLI)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("duplicate recorded as %s, want %s", again.ID, first.ID)
	}
	if revs, _ := s.List(0); len(revs) != 1 {
		t.Errorf("List() = %d revisions, want 1", len(revs))
	}
}

func TestRecord_KeepsUnsetCoordinates(t *testing.T) {
	s := newTestStore(t)

	rev, err := s.Record(config.DefaultConfig(), SourceSettings)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	got, err := s.Get(rev.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Config.HasExplicitPosition() || !got.Config.Equal(config.DefaultConfig()) {
		t.Errorf("decoded config = %+v", got.Config)
	}
}

func TestGet(t *testing.T) {
	s := newTestStore(t)
	rev, err := s.Record(withFontSize(42), SourceCLI)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := s.Get(rev.ShortID())
	if err != nil {
		t.Fatalf("Get(prefix) error = %v", err)
	}
	if got.ID != rev.ID || got.Source != SourceCLI || got.Config.FontSize != 42 {
		t.Errorf("Get() = %+v", got)
	}

	if _, err := s.Get("ffffffff-nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(\"\") error = %v, want ErrNotFound", err)
	}
}

func TestLatest_Empty(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Latest(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Latest() error = %v, want ErrNotFound", err)
	}
}

type saverFunc func(*config.Config) error

func (f saverFunc) Save(cfg *config.Config) error { return f(cfg) }

func TestRestore(t *testing.T) {
	s := newTestStore(t)
	old, _ := s.Record(withFontSize(50), SourceSettings)
	s.Record(withFontSize(90), SourceSettings)

	var saved *config.Config
	rev, err := s.Restore(old.ID, saverFunc(func(c *config.Config) error {
		saved = c
		return nil
	}))
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if rev.ID != old.ID || saved == nil || saved.FontSize != 50 {
		t.Errorf("restored %+v, saved %+v", rev, saved)
	}

	latest, err := s.Latest()
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.Source != SourceRestore || latest.Config.FontSize != 50 {
		t.Errorf("latest = %+v, want restore of font size 50", latest)
	}
}

func TestRestore_SaveFailure(t *testing.T) {
	s := newTestStore(t)
	old, _ := s.Record(withFontSize(50), SourceSettings)
	s.Record(withFontSize(90), SourceSettings)

	_, err := s.Restore(old.ID, saverFunc(func(*config.Config) error { return errors.New("disk full") }))
	if err == nil {
		t.Fatal("Restore() error = nil, want failure")
	}
	if latest, _ := s.Latest(); latest.Config.FontSize != 90 {
		t.Errorf("failed restore was journaled: %+v", latest)
	}
}

func TestPrune(t *testing.T) {
	s := newTestStore(t)
	for size := 10; size < 15; size++ {
		s.Record(withFontSize(size), SourceSettings)
	}

	n, err := s.Prune(2)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Prune() removed %d, want 3", n)
	}
	revs, _ := s.List(0)
	if len(revs) != 2 || revs[0].Config.FontSize != 14 || revs[1].Config.FontSize != 13 {
		t.Errorf("remaining = %+v", revs)
	}
}

func TestRevisionAge(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rev := Revision{
		ID:      "0123456789abcdef",
		SavedAt: now.Add(-3 * time.Minute),
		Source:  SourceTray,
		Config:  config.DefaultConfig(),
	}

	if got := rev.Age(now); got != "3 minutes ago" {
		t.Errorf("Age() = %q, want %q", got, "3 minutes ago")
	}
	if got := rev.ShortID(); got != "01234567" {
		t.Errorf("ShortID() = %q", got)
	}
	if got, want := rev.Summary(now), "3 minutes ago · Helvetica Neue 120pt, center (tray)"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
