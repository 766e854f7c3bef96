// Package layout turns a named anchor or a slider percentage into overlay
// window coordinates on the primary screen.
package layout

import "math"

// Anchor is a named screen-relative position for the overlay window
type Anchor string

const (
	AnchorCenter      Anchor = "center"
	AnchorTopLeft     Anchor = "top-left"
	AnchorTopRight    Anchor = "top-right"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottomRight Anchor = "bottom-right"
	// AnchorCustom means the position comes from explicit coordinates
	AnchorCustom Anchor = "custom"
)

// Anchors lists the selectable anchors in menu order
var Anchors = []Anchor{
	AnchorCenter,
	AnchorTopLeft,
	AnchorTopRight,
	AnchorBottomLeft,
	AnchorBottomRight,
	AnchorCustom,
}

// Screen margins. The bottom margin is larger to clear the taskbar / dock.
const (
	MarginX      = 20.0
	MarginTop    = 20.0
	MarginBottom = 40.0
)

// Size of the window used before the toolkit has measured it
const (
	fallbackWidth  = 400.0
	fallbackHeight = 200.0
)

// Size is a width/height pair in screen points
type Size struct {
	Width  float64
	Height float64
}

// Point is a top-left window origin in screen points
type Point struct {
	X float64
	Y float64
}

// OrDefault replaces unmeasured dimensions with the fallback window size
func (s Size) OrDefault() Size {
	if !(s.Width > 0) {
		s.Width = fallbackWidth
	}
	if !(s.Height > 0) {
		s.Height = fallbackHeight
	}
	return s
}

// Valid reports whether both coordinates are finite numbers
func (p Point) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// IsRight reports whether the anchor pins the window's right edge
func (a Anchor) IsRight() bool {
	return a == AnchorTopRight || a == AnchorBottomRight
}

// Known reports whether a is one of the selectable anchors
func (a Anchor) Known() bool {
	for _, k := range Anchors {
		if a == k {
			return true
		}
	}
	return false
}

// Resolve computes the window origin for an anchor. Unknown anchors, including
// custom, resolve to center.
func Resolve(anchor Anchor, window, screen Size) Point {
	window = window.OrDefault()

	switch anchor {
	case AnchorTopLeft:
		return Point{X: MarginX, Y: MarginTop}
	case AnchorTopRight:
		return Point{X: screen.Width - window.Width - MarginX, Y: MarginTop}
	case AnchorBottomLeft:
		return Point{X: MarginX, Y: screen.Height - window.Height - MarginBottom}
	case AnchorBottomRight:
		return Point{
			X: screen.Width - window.Width - MarginX,
			Y: screen.Height - window.Height - MarginBottom,
		}
	default:
		return Point{
			X: (screen.Width - window.Width) / 2,
			Y: (screen.Height - window.Height) / 2,
		}
	}
}

// ResizeShift returns the new origin after the window changed size while an
// anchor governs its position. Center re-centers, right anchors keep the right
// edge where it was, left anchors keep the origin.
func ResizeShift(anchor Anchor, pos Point, newSize, oldSize, screen Size) Point {
	switch {
	case anchor == AnchorCenter:
		return Resolve(AnchorCenter, newSize, screen)
	case anchor.IsRight():
		delta := newSize.Width - oldSize.Width
		if oldSize.Width > 0 && math.Abs(delta) > 0.1 {
			pos.X -= delta
		}
		return pos
	default:
		return pos
	}
}

// FromPercent maps slider percentages (0-100 of the available travel on each
// axis) to a window origin.
func FromPercent(pct Point, window, screen Size) Point {
	window = window.OrDefault()
	return Point{
		X: (screen.Width - window.Width) * clampPercent(pct.X) / 100,
		Y: (screen.Height - window.Height) * clampPercent(pct.Y) / 100,
	}
}

// ToPercent is the inverse of FromPercent. An axis with no travel maps to 0.
func ToPercent(pos Point, window, screen Size) Point {
	window = window.OrDefault()
	return Point{
		X: toPercent(pos.X, screen.Width-window.Width),
		Y: toPercent(pos.Y, screen.Height-window.Height),
	}
}

func toPercent(v, travel float64) float64 {
	if travel == 0 || math.IsNaN(v) {
		return 0
	}
	return clampPercent(v / travel * 100)
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Max(0, math.Min(100, p))
}
