package settings

import (
	"math"
	"sort"

	"github.com/siegfried/desktopclock/internal/config"
	"github.com/siegfried/desktopclock/internal/layout"
	"github.com/siegfried/desktopclock/internal/theme"
)

// Controls is the editable draft shown by the settings view
type Controls struct {
	FontFamily string
	FontSize   int
	FontWeight config.FontWeight
	Opacity    float64

	TextColor       string
	UseSystemAccent bool
	ColorAdjustment theme.Adjustment
	ThemeMode       theme.Mode

	ShowShadow       bool
	ShadowBlurRadius float64
	ShadowColor      string

	Position layout.Anchor
	// PercentX and PercentY are the position sliders, 0-100 of travel
	PercentX float64
	PercentY float64

	ShowSeconds bool
	ShowDate    bool
	DateFormat  string
	TimeZone    string

	AlwaysOnTop     bool
	StartWithSystem bool
}

// controlsFrom populates controls from a snapshot. The sliders are left at
// zero; the synchronizer fills them from the window geometry.
func controlsFrom(cfg *config.Config) Controls {
	return Controls{
		FontFamily:       cfg.FontFamily,
		FontSize:         cfg.FontSize,
		FontWeight:       cfg.FontWeight,
		Opacity:          cfg.Opacity,
		TextColor:        cfg.TextColor,
		UseSystemAccent:  cfg.ColorSource == theme.SourceSystem,
		ColorAdjustment:  cfg.ColorAdjustment,
		ThemeMode:        cfg.ThemeMode,
		ShowShadow:       cfg.ShowShadow,
		ShadowBlurRadius: cfg.ShadowBlurRadius,
		ShadowColor:      cfg.ShadowColor,
		Position:         cfg.Position,
		ShowSeconds:      cfg.ShowSeconds,
		ShowDate:         cfg.ShowDate,
		DateFormat:       cfg.DateFormat,
		TimeZone:         cfg.TimeZone,
		AlwaysOnTop:      cfg.AlwaysOnTop,
		StartWithSystem:  cfg.StartWithSystem,
	}
}

// Build turns the draft into a complete configuration. A control without a
// usable value falls back to its default. Colors are kept as typed: a bad
// color degrades when it is applied. Coordinates are left unset.
func (c Controls) Build() *config.Config {
	def := config.DefaultConfig()
	cfg := config.DefaultConfig()

	cfg.FontFamily = orString(c.FontFamily, def.FontFamily)
	if c.FontSize > 0 {
		cfg.FontSize = c.FontSize
	}
	if known(c.FontWeight, config.FontWeights) {
		cfg.FontWeight = c.FontWeight
	}
	if !math.IsNaN(c.Opacity) && !math.IsInf(c.Opacity, 0) {
		cfg.Opacity = c.Opacity
	}

	cfg.TextColor = orString(c.TextColor, def.TextColor)
	cfg.ColorSource = theme.SourceCustom
	if c.UseSystemAccent {
		cfg.ColorSource = theme.SourceSystem
	}
	if known(c.ColorAdjustment, theme.Adjustments) {
		cfg.ColorAdjustment = c.ColorAdjustment
	}
	if known(c.ThemeMode, theme.Modes) {
		cfg.ThemeMode = c.ThemeMode
	}

	cfg.ShowShadow = c.ShowShadow
	if c.ShadowBlurRadius >= 0 {
		cfg.ShadowBlurRadius = c.ShadowBlurRadius
	}
	cfg.ShadowColor = orString(c.ShadowColor, def.ShadowColor)

	if c.Position.Known() {
		cfg.Position = c.Position
	}
	cfg.DragMode = false

	cfg.ShowSeconds = c.ShowSeconds
	cfg.ShowDate = c.ShowDate
	cfg.DateFormat = orString(c.DateFormat, def.DateFormat)
	cfg.TimeZone = orString(c.TimeZone, def.TimeZone)

	cfg.AlwaysOnTop = c.AlwaysOnTop
	cfg.StartWithSystem = c.StartWithSystem
	return cfg
}

func orString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func known[T comparable](v T, set []T) bool {
	for _, k := range set {
		if v == k {
			return true
		}
	}
	return false
}

// CommonFonts are offered in the font menu on every platform
var CommonFonts = []string{
	"Arial",
	"Avenir Next",
	"DejaVu Sans",
	"Futura",
	"Georgia",
	"Helvetica",
	"Helvetica Neue",
	"Menlo",
	"SF Pro Display",
	"Segoe UI",
	"Ubuntu",
}

// FontFamilies returns the selectable families, including current when it is
// not one of the common ones
func FontFamilies(current string) []string {
	fonts := append([]string(nil), CommonFonts...)
	if current != "" && !known(current, fonts) {
		fonts = append(fonts, current)
		sort.Strings(fonts)
	}
	return fonts
}

// DateFormats are the date patterns offered in the settings view
var DateFormats = []string{
	"%m/%d %a",
	"%Y-%m-%d",
	"%d/%m/%Y",
	"%a, %b %d",
	"%A %e %B",
}
