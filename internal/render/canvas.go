// Package render draws the overlay offscreen. Canvas implements the
// overlay window contract without a windowing system, for headless runs and
// the render command.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/siegfried/desktopclock/internal/config"
	"github.com/siegfried/desktopclock/internal/layout"
	"github.com/siegfried/desktopclock/internal/overlay"
)

// Padding around the labels, matching the native window
const Padding = 8

// DefaultScreen is used when no screen size is known
var DefaultScreen = layout.Size{Width: 1920, Height: 1080}

type faceKey struct {
	weight config.FontWeight
	size   float64
}

// Canvas is an in-memory overlay window
type Canvas struct {
	mu           sync.Mutex
	screen       layout.Size
	pos          layout.Point
	size         layout.Size
	style        overlay.VisualState
	timeText     string
	dateText     string
	clickThrough bool
	topmost      bool
	faces        map[faceKey]font.Face
}

// NewCanvas creates a canvas on a screen of the given size
func NewCanvas(screen layout.Size) *Canvas {
	if !(screen.Width > 0 && screen.Height > 0) {
		screen = DefaultScreen
	}
	return &Canvas{
		screen: screen,
		faces:  make(map[faceKey]font.Face),
	}
}

// SetStyle implements overlay.Window
func (c *Canvas) SetStyle(v overlay.VisualState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.style = v
	c.measureLocked()
}

// SetText implements overlay.Window
func (c *Canvas) SetText(timeText, dateText string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeText, c.dateText = timeText, dateText
	c.measureLocked()
}

// Size implements overlay.Window
func (c *Canvas) Size() layout.Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Position implements overlay.Window
func (c *Canvas) Position() layout.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

// SetPosition implements overlay.Window
func (c *Canvas) SetPosition(p layout.Point) {
	if !p.Valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos = p
}

// ScreenSize implements overlay.Window
func (c *Canvas) ScreenSize() layout.Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// SetClickThrough implements overlay.Window
func (c *Canvas) SetClickThrough(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clickThrough = enabled
}

// SetTopmost implements overlay.Window
func (c *Canvas) SetTopmost(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topmost = enabled
}

// Flags returns the click-through and topmost state last applied
func (c *Canvas) Flags() (clickThrough, topmost bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clickThrough, c.topmost
}

// Text returns the labels last set
func (c *Canvas) Text() (timeText, dateText string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeText, c.dateText
}

func (c *Canvas) measureLocked() {
	if c.style.FontSize <= 0 {
		c.size = layout.Size{}
		return
	}

	tw, th := c.textExtent(c.timeText, c.style.FontSize)
	dw, dh := 0, 0
	if c.dateText != "" {
		dw, dh = c.textExtent(c.dateText, c.style.DateFontSize)
	}

	c.size = layout.Size{
		Width:  float64(max(tw, dw) + 2*Padding),
		Height: float64(th + dh + 2*Padding),
	}
}

func (c *Canvas) textExtent(text string, size float64) (width, height int) {
	face := c.faceLocked(size)
	m := face.Metrics()
	width = font.MeasureString(face, text).Ceil()
	height = (m.Ascent + m.Descent).Ceil()
	return width, height
}

// faceLocked returns a cached Go font face. The Go fonts stand in for any
// family: the canvas has no access to the system's fonts.
func (c *Canvas) faceLocked(size float64) font.Face {
	key := faceKey{weight: c.style.FontWeight, size: size}
	if f, ok := c.faces[key]; ok {
		return f
	}

	face, err := newFace(key.weight, size)
	if err != nil {
		panic(fmt.Sprintf("render: bundled font: %v", err))
	}
	c.faces[key] = face
	return face
}

func newFace(weight config.FontWeight, size float64) (font.Face, error) {
	data := goregular.TTF
	switch weight {
	case config.WeightSemiBold:
		data = gomedium.TTF
	case config.WeightBold:
		data = gobold.TTF
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Render draws the window contents: shadow, labels, then window opacity
func (c *Canvas) Render() *image.NRGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, h := int(math.Ceil(c.size.Width)), int(math.Ceil(c.size.Height))
	out := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	if w == 0 || h == 0 {
		return out
	}

	text := image.NewAlpha(out.Bounds())
	c.drawLabelsLocked(text)

	layer := image.NewNRGBA(out.Bounds())
	if s := c.style.Shadow; s.Enabled {
		dx, dy := s.Offset()
		mask := boxBlur(text, int(math.Round(s.BlurRadius/2)))
		shadow := s.Color.NRGBA()
		shadow.A = uint8(math.Round(float64(shadow.A) * s.Opacity))

		offset := image.Pt(-int(math.Round(dx)), -int(math.Round(dy)))
		xdraw.DrawMask(layer, layer.Bounds(), image.NewUniform(shadow), image.Point{}, mask, offset, xdraw.Over)
	}
	xdraw.DrawMask(layer, layer.Bounds(), image.NewUniform(c.style.TextColor.NRGBA()), image.Point{}, text, image.Point{}, xdraw.Over)

	opacity := image.NewUniform(color.Alpha{A: uint8(math.Round(255 * c.style.Opacity))})
	xdraw.DrawMask(out, out.Bounds(), layer, image.Point{}, opacity, image.Point{}, xdraw.Over)
	return out
}

func (c *Canvas) drawLabelsLocked(dst *image.Alpha) {
	width := dst.Bounds().Dx()
	y := Padding

	draw := func(text string, size float64) {
		face := c.faceLocked(size)
		m := face.Metrics()
		d := &font.Drawer{Dst: dst, Src: image.Opaque, Face: face}
		x := (width - d.MeasureString(text).Ceil()) / 2
		d.Dot = fixed.P(x, y+m.Ascent.Ceil())
		d.DrawString(text)
		y += (m.Ascent + m.Descent).Ceil()
	}

	draw(c.timeText, c.style.FontSize)
	if c.dateText != "" {
		draw(c.dateText, c.style.DateFontSize)
	}
}

// WritePNG encodes the rendered window
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.Render()); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// boxBlur is a separable box blur over an alpha mask
func boxBlur(src *image.Alpha, radius int) *image.Alpha {
	if radius <= 0 {
		return src
	}
	b := src.Bounds()
	tmp := image.NewAlpha(b)
	dst := image.NewAlpha(b)
	span := 2*radius + 1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum := 0
			for k := -radius; k <= radius; k++ {
				if xx := x + k; xx >= b.Min.X && xx < b.Max.X {
					sum += int(src.AlphaAt(xx, y).A)
				}
			}
			tmp.SetAlpha(x, y, color.Alpha{A: uint8(sum / span)})
		}
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum := 0
			for k := -radius; k <= radius; k++ {
				if yy := y + k; yy >= b.Min.Y && yy < b.Max.Y {
					sum += int(tmp.AlphaAt(x, yy).A)
				}
			}
			dst.SetAlpha(x, y, color.Alpha{A: uint8(sum / span)})
		}
	}
	return dst
}
