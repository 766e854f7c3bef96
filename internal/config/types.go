package config

import (
	"math"

	"github.com/siegfried/desktopclock/internal/layout"
	"github.com/siegfried/desktopclock/internal/theme"
)

// FontWeight is the clock's font weight
type FontWeight string

const (
	WeightLight    FontWeight = "Light"
	WeightNormal   FontWeight = "Normal"
	WeightSemiBold FontWeight = "SemiBold"
	WeightBold     FontWeight = "Bold"
)

// FontWeights lists the selectable weights in menu order
var FontWeights = []FontWeight{WeightLight, WeightNormal, WeightSemiBold, WeightBold}

// LocalZone is the time zone sentinel that means "use the machine's zone"
const LocalZone = "Local"

// Opacity bounds applied when the configuration is rendered
const (
	MinOpacity = 0.1
	MaxOpacity = 1.0
)

// Config holds everything that drives the clock's presentation
type Config struct {
	// Typography
	FontFamily string     `json:"font_family" yaml:"font_family"`
	FontSize   int        `json:"font_size" yaml:"font_size"`
	FontWeight FontWeight `json:"font_weight" yaml:"font_weight"`
	Opacity    float64    `json:"opacity" yaml:"opacity"`

	// Color
	TextColor       string           `json:"text_color" yaml:"text_color"`
	ColorSource     theme.Source     `json:"color_source" yaml:"color_source"`
	ColorAdjustment theme.Adjustment `json:"color_adjustment" yaml:"color_adjustment"`
	ThemeMode       theme.Mode       `json:"theme_mode" yaml:"theme_mode"`

	// Shadow
	ShowShadow       bool    `json:"show_shadow" yaml:"show_shadow"`
	ShadowBlurRadius float64 `json:"shadow_blur_radius" yaml:"shadow_blur_radius"`
	ShadowColor      string  `json:"shadow_color" yaml:"shadow_color"`

	// Layout
	Position   layout.Anchor `json:"position" yaml:"position"`
	WindowLeft layout.Coord  `json:"window_left" yaml:"window_left"`
	WindowTop  layout.Coord  `json:"window_top" yaml:"window_top"`
	DragMode   bool          `json:"drag_mode" yaml:"drag_mode"`

	// Time display
	ShowSeconds bool   `json:"show_seconds" yaml:"show_seconds"`
	ShowDate    bool   `json:"show_date" yaml:"show_date"`
	DateFormat  string `json:"date_format" yaml:"date_format"`
	TimeZone    string `json:"time_zone" yaml:"time_zone"`

	AlwaysOnTop     bool `json:"always_on_top" yaml:"always_on_top"`
	StartWithSystem bool `json:"start_with_system" yaml:"start_with_system"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		FontFamily:       "Helvetica Neue",
		FontSize:         120,
		FontWeight:       WeightLight,
		Opacity:          1.0,
		TextColor:        "#FFFFFF",
		ColorSource:      theme.SourceSystem,
		ColorAdjustment:  theme.AdjustNone,
		ThemeMode:        theme.ModeAuto,
		ShowShadow:       true,
		ShadowBlurRadius: 8.0,
		ShadowColor:      "#000000",
		Position:         layout.AnchorCenter,
		WindowLeft:       layout.Unset(),
		WindowTop:        layout.Unset(),
		DateFormat:       "%m/%d %a",
		TimeZone:         LocalZone,
		AlwaysOnTop:      true,
	}
}

// Clone returns an independent copy
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// HasExplicitPosition reports whether both window coordinates are set, in
// which case they govern layout instead of the anchor.
func (c *Config) HasExplicitPosition() bool {
	return c.WindowLeft.IsSet() && c.WindowTop.IsSet()
}

// ExplicitPosition returns the stored coordinates
func (c *Config) ExplicitPosition() layout.Point {
	return layout.Point{X: float64(c.WindowLeft), Y: float64(c.WindowTop)}
}

// ClearPosition drops the explicit coordinates so the anchor governs again
func (c *Config) ClearPosition() {
	c.WindowLeft = layout.Unset()
	c.WindowTop = layout.Unset()
}

// ClampedOpacity returns Opacity limited to [MinOpacity, MaxOpacity]
func (c *Config) ClampedOpacity() float64 {
	if math.IsNaN(c.Opacity) {
		return MaxOpacity
	}
	return math.Max(MinOpacity, math.Min(MaxOpacity, c.Opacity))
}

// Equal compares two configurations field by field; unset coordinates are
// equal to each other.
func (c *Config) Equal(o *Config) bool {
	if c == nil || o == nil {
		return c == o
	}
	a, b := *c, *o
	if !sameCoord(a.WindowLeft, b.WindowLeft) || !sameCoord(a.WindowTop, b.WindowTop) {
		return false
	}
	a.WindowLeft, a.WindowTop = 0, 0
	b.WindowLeft, b.WindowTop = 0, 0
	return a == b
}

func sameCoord(a, b layout.Coord) bool {
	if !a.IsSet() || !b.IsSet() {
		return a.IsSet() == b.IsSet()
	}
	return a == b
}

// Validate checks if the configuration values are valid. Colors are not
// checked: a bad color falls back when it is applied.
func (c *Config) Validate() error {
	if c.FontSize <= 0 {
		return ErrInvalidFontSize
	}
	if c.ShadowBlurRadius < 0 || math.IsNaN(c.ShadowBlurRadius) {
		return ErrInvalidBlurRadius
	}
	if math.IsNaN(c.Opacity) || math.IsInf(c.Opacity, 0) {
		return ErrInvalidOpacity
	}
	if !knownWeight(c.FontWeight) {
		return ErrInvalidFontWeight
	}
	if !knownMode(c.ThemeMode) || !knownSource(c.ColorSource) || !knownAdjustment(c.ColorAdjustment) {
		return ErrInvalidTheme
	}
	if !c.Position.Known() {
		return ErrInvalidPosition
	}
	return nil
}

// normalize replaces individually invalid fields with their defaults so a
// partly broken file still loads.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.FontSize <= 0 {
		c.FontSize = def.FontSize
	}
	if c.ShadowBlurRadius < 0 || math.IsNaN(c.ShadowBlurRadius) {
		c.ShadowBlurRadius = def.ShadowBlurRadius
	}
	if math.IsNaN(c.Opacity) || math.IsInf(c.Opacity, 0) {
		c.Opacity = def.Opacity
	}
	if !knownWeight(c.FontWeight) {
		c.FontWeight = def.FontWeight
	}
	if !knownMode(c.ThemeMode) {
		c.ThemeMode = def.ThemeMode
	}
	if !knownSource(c.ColorSource) {
		c.ColorSource = def.ColorSource
	}
	if !knownAdjustment(c.ColorAdjustment) {
		c.ColorAdjustment = def.ColorAdjustment
	}
	if !c.Position.Known() {
		c.Position = def.Position
	}
	if c.TimeZone == "" {
		c.TimeZone = def.TimeZone
	}
	if c.DateFormat == "" {
		c.DateFormat = def.DateFormat
	}
}

func knownWeight(w FontWeight) bool {
	for _, k := range FontWeights {
		if w == k {
			return true
		}
	}
	return false
}

func knownMode(m theme.Mode) bool {
	for _, k := range theme.Modes {
		if m == k {
			return true
		}
	}
	return false
}

func knownSource(s theme.Source) bool {
	for _, k := range theme.Sources {
		if s == k {
			return true
		}
	}
	return false
}

func knownAdjustment(a theme.Adjustment) bool {
	for _, k := range theme.Adjustments {
		if a == k {
			return true
		}
	}
	return false
}
