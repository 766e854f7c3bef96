package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain keeps autostart entries written by the commands out of the real
// user directories
func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "desktopclock-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("HOME", home)
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	code := m.Run()
	os.RemoveAll(home)
	os.Exit(code)
}

// execute runs the command tree against a config file in a temp dir
func execute(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestConfig_PathSetGet(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	out, err := execute(t, cfgPath, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != cfgPath {
		t.Errorf("path = %q, want %q", out, cfgPath)
	}

	if _, err := execute(t, cfgPath, "config", "set", "font_size", "72"); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, cfgPath, "config", "get", "font_size")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "72" {
		t.Errorf("font_size = %q, want 72", out)
	}

	if _, err := execute(t, cfgPath, "config", "get", "no_such_key"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestConfig_ShowYAML(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	out, err := execute(t, cfgPath, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"font_size: 120", "position: center", "window_left: null"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml output missing %q:\n%s", want, out)
		}
	}

	if _, err := execute(t, cfgPath, "config", "show", "--format", "toml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestConfig_ResetAndHistory(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	if _, err := execute(t, cfgPath, "config", "set", "position", "top-left"); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, cfgPath, "config", "reset"); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, cfgPath, "config", "get", "position")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != `"center"` {
		t.Errorf("position after reset = %q, want \"center\"", out)
	}

	out, err = execute(t, cfgPath, "history", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "top-left") || !strings.Contains(out, "center") {
		t.Errorf("history should list both saves:\n%s", out)
	}
	if !strings.Contains(out, "2 saved configurations shown") {
		t.Errorf("history count missing:\n%s", out)
	}
}

func TestRender_WritesPNG(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	output := filepath.Join(dir, "clock.png")

	out, err := execute(t, cfgPath, "render", "-o", output, "--screen-width", "800", "--screen-height", "600")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Wrote") {
		t.Errorf("unexpected output %q", out)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		t.Errorf("empty image %v", b)
	}
}

func TestConfig_GetRequiresKey(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	if _, err := execute(t, cfgPath, "config", "get"); err == nil {
		t.Error("expected error for missing key")
	}
}
