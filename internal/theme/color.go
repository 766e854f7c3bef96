package theme

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a string is not #RRGGBB or #AARRGGBB
var ErrInvalidColor = errors.New("invalid color")

// Color is an 8-bit ARGB color
type Color struct {
	A, R, G, B uint8
}

// Fixed colors used by the resolver and as parse fallbacks
var (
	Black      = Color{A: 0xFF}
	White      = Color{A: 0xFF, R: 0xFF, G: 0xFF, B: 0xFF}
	DodgerBlue = Color{A: 0xFF, R: 0x1E, G: 0x90, B: 0xFF}
)

// ParseHex parses "#RRGGBB" or "#AARRGGBB". Alpha defaults to opaque.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	alpha := uint8(0xFF)
	rgb := s[1:]
	switch len(rgb) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(rgb[:2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = uint8(a)
		rgb = rgb[2:]
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	c, err := colorful.Hex("#" + rgb)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return Color{A: alpha, R: r, G: g, B: b}, nil
}

// ParseOr parses s and returns fallback if it is not a valid color
func ParseOr(s string, fallback Color) Color {
	c, err := ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}

// Hex formats the color as #AARRGGBB
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}

// NRGBA converts to the image/color representation
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Components returns the channels scaled to [0,1] in r, g, b, a order
func (c Color) Components() (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

// Brighten moves each channel 30% of the way toward 255
func Brighten(c Color) Color {
	return Color{A: c.A, R: brighten(c.R), G: brighten(c.G), B: brighten(c.B)}
}

// Darken scales each channel to 70%
func Darken(c Color) Color {
	return Color{A: c.A, R: darken(c.R), G: darken(c.G), B: darken(c.B)}
}

// Channels are truncated, not rounded: 0 brightens to 76 and 255 darkens to 178.
func brighten(v uint8) uint8 {
	f := float64(v)
	return clampByte(f + (255-f)*adjustFactor)
}

func darken(v uint8) uint8 {
	return clampByte(float64(v) * (1 - adjustFactor))
}

const adjustFactor = 0.3

func clampByte(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 255:
		return 255
	default:
		return uint8(f)
	}
}
