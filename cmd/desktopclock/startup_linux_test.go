package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/siegfried/desktopclock/internal/history"
)

// autostartFixture points the XDG autostart directory at a temp dir
func autostartFixture(t *testing.T) (cfgPath, entry string) {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	return filepath.Join(t.TempDir(), "config.json"), filepath.Join(xdg, "autostart", "desktopclock.desktop")
}

func entryExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}

func TestStartup_OnOff(t *testing.T) {
	cfgPath, entry := autostartFixture(t)

	out, err := execute(t, cfgPath, "startup", "on")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "start with system: on") || !entryExists(t, entry) {
		t.Fatalf("startup on: %q, entry %v", out, entryExists(t, entry))
	}

	if _, err := execute(t, cfgPath, "startup", "off"); err != nil {
		t.Fatal(err)
	}
	if entryExists(t, entry) {
		t.Error("entry left after startup off")
	}
}

func TestConfigReset_RemovesStartupEntry(t *testing.T) {
	cfgPath, entry := autostartFixture(t)

	if _, err := execute(t, cfgPath, "startup", "on"); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, cfgPath, "config", "reset"); err != nil {
		t.Fatal(err)
	}

	if entryExists(t, entry) {
		t.Error("entry left after reset turned the flag off")
	}
	out, err := execute(t, cfgPath, "startup")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "start with system: off") {
		t.Errorf("status = %q", out)
	}
}

func TestConfigSet_SyncsStartupEntry(t *testing.T) {
	cfgPath, entry := autostartFixture(t)

	if _, err := execute(t, cfgPath, "config", "set", "start_with_system", "true"); err != nil {
		t.Fatal(err)
	}
	if !entryExists(t, entry) {
		t.Error("entry not created by config set")
	}

	if _, err := execute(t, cfgPath, "config", "set", "start_with_system", "false"); err != nil {
		t.Fatal(err)
	}
	if entryExists(t, entry) {
		t.Error("entry not removed by config set")
	}
}

func TestHistoryRestore_SyncsStartupEntry(t *testing.T) {
	cfgPath, entry := autostartFixture(t)

	if _, err := execute(t, cfgPath, "startup", "on"); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, cfgPath, "startup", "off"); err != nil {
		t.Fatal(err)
	}

	store, err := history.OpenBeside(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	revs, err := store.List(0)
	store.Close()
	if err != nil {
		t.Fatal(err)
	}
	var id string
	for _, r := range revs {
		if r.Config.StartWithSystem {
			id = r.ID
		}
	}
	if id == "" {
		t.Fatalf("no revision with startup on among %d", len(revs))
	}

	if _, err := execute(t, cfgPath, "history", "restore", id); err != nil {
		t.Fatal(err)
	}

	if !entryExists(t, entry) {
		t.Error("entry not recreated by restoring a revision with startup on")
	}
	out, err := execute(t, cfgPath, "config", "get", "start_with_system")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "true" {
		t.Errorf("start_with_system = %q, want true", out)
	}
}
