package theme

import "strings"

// GNOME accent names and their palette colors
var gnomeAccents = map[string]Color{
	"blue":   {A: 0xFF, R: 0x35, G: 0x84, B: 0xE4},
	"teal":   {A: 0xFF, R: 0x21, G: 0x90, B: 0xA4},
	"green":  {A: 0xFF, R: 0x3A, G: 0x94, B: 0x4A},
	"yellow": {A: 0xFF, R: 0xC8, G: 0x88, B: 0x00},
	"orange": {A: 0xFF, R: 0xED, G: 0x5B, B: 0x00},
	"red":    {A: 0xFF, R: 0xE6, G: 0x2D, B: 0x42},
	"pink":   {A: 0xFF, R: 0xD5, G: 0x61, B: 0x99},
	"purple": {A: 0xFF, R: 0x91, G: 0x41, B: 0xAC},
	"slate":  {A: 0xFF, R: 0x6F, G: 0x83, B: 0x96},
}

type gnomeSystem struct{}

// Detect returns the System for the running OS
func Detect() System {
	return gnomeSystem{}
}

func (gnomeSystem) IsDark() bool {
	if v, ok := readSetting("gsettings", "get", "org.gnome.desktop.interface", "color-scheme"); ok {
		if strings.Contains(v, "dark") {
			return true
		}
		if v == "prefer-light" {
			return false
		}
	}
	v, ok := readSetting("gsettings", "get", "org.gnome.desktop.interface", "gtk-theme")
	return ok && strings.HasSuffix(strings.ToLower(v), "-dark")
}

func (gnomeSystem) Accent() Color {
	v, ok := readSetting("gsettings", "get", "org.gnome.desktop.interface", "accent-color")
	if !ok {
		return Fallback.AccentColor
	}
	if c, ok := gnomeAccents[v]; ok {
		return c
	}
	return Fallback.AccentColor
}
