package overlay

import (
	"math"

	"github.com/siegfried/desktopclock/internal/config"
	"github.com/siegfried/desktopclock/internal/theme"
)

// Drop shadow parameters that are not user-configurable
const (
	ShadowDepth   = 2.0
	ShadowOpacity = 0.8
	// ShadowDirection is in degrees counterclockwise from the positive x
	// axis, so 315 puts the shadow below and to the right.
	ShadowDirection = 315.0

	// DateScale sizes the date label relative to the time label
	DateScale = 0.27
)

// Shadow describes the drop shadow behind the clock text
type Shadow struct {
	Enabled    bool
	Color      theme.Color
	BlurRadius float64
	Depth      float64
	Opacity    float64
}

// Offset returns the shadow displacement in screen points (y grows downward)
func (s Shadow) Offset() (dx, dy float64) {
	rad := ShadowDirection * math.Pi / 180
	return s.Depth * math.Cos(rad), -s.Depth * math.Sin(rad)
}

// VisualState is a configuration resolved into concrete presentation values
type VisualState struct {
	FontFamily   string
	FontSize     float64
	DateFontSize float64
	FontWeight   config.FontWeight
	TextColor    theme.Color
	Shadow       Shadow
	Opacity      float64
	ShowDate     bool
	Topmost      bool
}

// Resolve turns a configuration into visual state. Color strings that do not
// parse degrade to white text or to no shadow; Resolve never fails.
func Resolve(cfg *config.Config, sys theme.System) VisualState {
	if sys == nil {
		sys = theme.Fallback
	}

	textHex, shadowHex := theme.Resolve(theme.Inputs{
		Mode:        cfg.ThemeMode,
		Source:      cfg.ColorSource,
		Adjustment:  cfg.ColorAdjustment,
		TextColor:   cfg.TextColor,
		ShadowColor: cfg.ShadowColor,
		SystemDark:  sys.IsDark(),
		Accent:      sys.Accent(),
	})

	size := float64(cfg.FontSize)
	if size <= 0 {
		size = float64(config.DefaultConfig().FontSize)
	}

	v := VisualState{
		FontFamily:   cfg.FontFamily,
		FontSize:     size,
		DateFontSize: size * DateScale,
		FontWeight:   weightOrDefault(cfg.FontWeight),
		TextColor:    theme.ParseOr(textHex, theme.White),
		Opacity:      cfg.ClampedOpacity(),
		ShowDate:     cfg.ShowDate,
		Topmost:      cfg.AlwaysOnTop,
	}

	if cfg.ShowShadow {
		if c, err := theme.ParseHex(shadowHex); err == nil {
			v.Shadow = Shadow{
				Enabled:    true,
				Color:      c,
				BlurRadius: math.Max(0, cfg.ShadowBlurRadius),
				Depth:      ShadowDepth,
				Opacity:    ShadowOpacity,
			}
		}
	}

	return v
}

func weightOrDefault(w config.FontWeight) config.FontWeight {
	for _, k := range config.FontWeights {
		if w == k {
			return w
		}
	}
	return config.WeightLight
}
