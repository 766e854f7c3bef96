// Package theme resolves the clock's text and shadow colors from the theme
// mode, the color source and the operating system's appearance.
package theme

// Mode selects where text and shadow colors come from
type Mode string

const (
	ModeAuto   Mode = "Auto"
	ModeLight  Mode = "Light"
	ModeDark   Mode = "Dark"
	ModeCustom Mode = "Custom"
)

// Source selects whether the text color follows the system accent
type Source string

const (
	SourceSystem Source = "System"
	SourceCustom Source = "Custom"
)

// Adjustment is applied to the accent color when Source is System
type Adjustment string

const (
	AdjustNone     Adjustment = "None"
	AdjustBrighten Adjustment = "Brighten"
	AdjustDarken   Adjustment = "Darken"
)

// Modes, Sources and Adjustments list the selectable values in menu order
var (
	Modes       = []Mode{ModeAuto, ModeLight, ModeDark, ModeCustom}
	Sources     = []Source{SourceSystem, SourceCustom}
	Adjustments = []Adjustment{AdjustNone, AdjustBrighten, AdjustDarken}
)

// Inputs is everything Resolve looks at
type Inputs struct {
	Mode        Mode
	Source      Source
	Adjustment  Adjustment
	TextColor   string
	ShadowColor string
	SystemDark  bool
	Accent      Color
}

// Resolve returns the text and shadow colors as hex strings. The theme mode
// picks both colors; a System color source then replaces the text color with
// the adjusted accent and never touches the shadow. Parsing is left to the
// caller so a bad configured color can fall back where it is applied.
func Resolve(in Inputs) (text, shadow string) {
	text, shadow = in.TextColor, in.ShadowColor

	switch in.Mode {
	case ModeLight:
		text, shadow = Black.Hex(), White.Hex()
	case ModeDark:
		text, shadow = White.Hex(), Black.Hex()
	case ModeAuto:
		if in.SystemDark {
			text, shadow = White.Hex(), Black.Hex()
		} else {
			text, shadow = Black.Hex(), White.Hex()
		}
	}

	if in.Source == SourceSystem {
		text = Adjust(in.Accent, in.Adjustment).Hex()
	}

	return text, shadow
}

// Adjust applies an adjustment to c. Unknown adjustments leave c unchanged.
func Adjust(c Color, adj Adjustment) Color {
	switch adj {
	case AdjustBrighten:
		return Brighten(c)
	case AdjustDarken:
		return Darken(c)
	default:
		return c
	}
}
