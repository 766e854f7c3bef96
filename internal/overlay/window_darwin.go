//go:build darwin

package overlay

import (
	"math"

	"github.com/progrium/darwinkit/dispatch"
	"github.com/progrium/darwinkit/macos/appkit"
	"github.com/progrium/darwinkit/macos/foundation"
	"github.com/progrium/darwinkit/objc"

	"github.com/siegfried/desktopclock/internal/config"
	"github.com/siegfried/desktopclock/internal/layout"
)

// padding around the labels inside the overlay window
const windowPadding = 8.0

// NativeWindow is the overlay as a borderless, transparent AppKit window.
// All methods must run on the main queue.
type NativeWindow struct {
	win       appkit.Window
	view      appkit.View
	timeLabel appkit.TextField
	dateLabel appkit.TextField
	style     VisualState
	dateText  string
}

// NewNativeWindow creates the overlay window and shows it
func NewNativeWindow() *NativeWindow {
	frame := foundation.Rect{Size: foundation.Size{Width: 400, Height: 200}}

	// Borderless window (styleMask = 0)
	win := appkit.NewWindowWithContentRectStyleMaskBackingDefer(
		frame,
		0,
		appkit.BackingStoreBuffered,
		false,
	)
	objc.Retain(&win)

	win.SetOpaque(false)
	win.SetHasShadow(false)
	win.SetBackgroundColor(appkit.Color_ClearColor())
	win.SetCollectionBehavior(
		appkit.WindowCollectionBehaviorCanJoinAllSpaces |
			appkit.WindowCollectionBehaviorStationary |
			appkit.WindowCollectionBehaviorFullScreenAuxiliary,
	)

	view := appkit.NewViewWithFrame(frame)
	view.SetWantsLayer(true)

	w := &NativeWindow{
		win:       win,
		view:      view,
		timeLabel: newClockLabel(),
		dateLabel: newClockLabel(),
	}
	view.AddSubview(w.timeLabel)
	view.AddSubview(w.dateLabel)
	win.SetContentView(view)
	win.OrderFrontRegardless()

	return w
}

func newClockLabel() appkit.TextField {
	label := appkit.NewLabel("")
	label.SetAlignment(appkit.TextAlignmentCenter)
	label.SetBackgroundColor(appkit.Color_ClearColor())
	label.SetBezeled(false)
	label.SetEditable(false)
	label.SetSelectable(false)
	return label
}

// SetStyle applies fonts, colors, shadow and opacity to both labels
func (w *NativeWindow) SetStyle(v VisualState) {
	w.style = v

	r, g, b, a := v.TextColor.Components()
	textColor := appkit.Color_ColorWithSRGBRedGreenBlueAlpha(r, g, b, a)

	for _, l := range []struct {
		label appkit.TextField
		size  float64
	}{
		{w.timeLabel, v.FontSize},
		{w.dateLabel, v.DateFontSize},
	} {
		l.label.SetFont(clockFont(v.FontFamily, l.size, v.FontWeight))
		l.label.SetTextColor(textColor)
	}

	if v.Shadow.Enabled {
		r, g, b, a := v.Shadow.Color.Components()
		dx, dy := v.Shadow.Offset()

		shadow := appkit.NewShadow()
		shadow.SetShadowColor(appkit.Color_ColorWithSRGBRedGreenBlueAlpha(r, g, b, a*v.Shadow.Opacity))
		shadow.SetShadowBlurRadius(v.Shadow.BlurRadius)
		// AppKit's y axis points up
		shadow.SetShadowOffset(foundation.Size{Width: dx, Height: -dy})
		w.view.SetShadow(shadow)
	} else {
		w.view.SetShadow(appkit.Shadow{})
	}

	w.win.SetAlphaValue(v.Opacity)
	w.layout()
}

// clockFont looks up family with a PostScript weight suffix first, then the
// bare family, then the system font.
func clockFont(family string, size float64, weight config.FontWeight) appkit.Font {
	suffix, systemWeight := weightTraits(weight)
	for _, name := range []string{family + "-" + suffix, family} {
		if name == "" || name == "-"+suffix {
			continue
		}
		if f := appkit.Font_FontWithNameSize(name, size); !f.IsNil() {
			return f
		}
	}
	return appkit.Font_SystemFontOfSizeWeight(size, systemWeight)
}

func weightTraits(weight config.FontWeight) (suffix string, system appkit.FontWeight) {
	switch weight {
	case config.WeightNormal:
		return "Regular", appkit.FontWeightRegular
	case config.WeightSemiBold:
		return "Medium", appkit.FontWeightSemibold
	case config.WeightBold:
		return "Bold", appkit.FontWeightBold
	default:
		return "Light", appkit.FontWeightLight
	}
}

// SetText replaces the labels and resizes the window to fit them
func (w *NativeWindow) SetText(timeText, dateText string) {
	w.timeLabel.SetStringValue(timeText)
	w.dateLabel.SetStringValue(dateText)
	w.dateLabel.SetHidden(dateText == "")
	w.dateText = dateText
	w.layout()
}

// layout sizes the window to its labels, keeping the top-left corner fixed
func (w *NativeWindow) layout() {
	w.timeLabel.SizeToFit()
	w.dateLabel.SizeToFit()

	ts := w.timeLabel.Frame().Size
	ds := foundation.Size{}
	if w.dateText != "" {
		ds = w.dateLabel.Frame().Size
	}

	width := math.Ceil(math.Max(ts.Width, ds.Width) + 2*windowPadding)
	height := math.Ceil(ts.Height + ds.Height + 2*windowPadding)

	// AppKit frames grow upward from the bottom-left corner
	w.dateLabel.SetFrame(foundation.Rect{
		Origin: foundation.Point{X: (width - ds.Width) / 2, Y: windowPadding},
		Size:   ds,
	})
	w.timeLabel.SetFrame(foundation.Rect{
		Origin: foundation.Point{X: (width - ts.Width) / 2, Y: windowPadding + ds.Height},
		Size:   ts,
	})

	top := w.Position()
	frame := w.win.Frame()
	frame.Size = foundation.Size{Width: width, Height: height}
	frame.Origin.Y = primaryHeight() - top.Y - height
	w.win.SetFrameDisplay(frame, true)
}

// Size is the window's current frame size
func (w *NativeWindow) Size() layout.Size {
	s := w.win.Frame().Size
	return layout.Size{Width: s.Width, Height: s.Height}
}

// Position returns the top-left corner with y growing downward
func (w *NativeWindow) Position() layout.Point {
	f := w.win.Frame()
	return layout.Point{X: f.Origin.X, Y: primaryHeight() - f.Origin.Y - f.Size.Height}
}

// SetPosition moves the window's top-left corner to p
func (w *NativeWindow) SetPosition(p layout.Point) {
	if !p.Valid() {
		return
	}
	h := w.win.Frame().Size.Height
	w.win.SetFrameOrigin(foundation.Point{X: p.X, Y: primaryHeight() - p.Y - h})
}

// ScreenSize returns the primary screen's size
func (w *NativeWindow) ScreenSize() layout.Size {
	screens := appkit.Screen_Screens()
	if len(screens) == 0 {
		return layout.Size{}
	}
	s := screens[0].Frame().Size
	return layout.Size{Width: s.Width, Height: s.Height}
}

// SetClickThrough lets mouse events pass through to the windows below
func (w *NativeWindow) SetClickThrough(enabled bool) {
	w.win.SetIgnoresMouseEvents(enabled)
}

// SetTopmost floats the window above normal windows
func (w *NativeWindow) SetTopmost(enabled bool) {
	if enabled {
		w.win.SetLevel(appkit.FloatingWindowLevel)
		return
	}
	w.win.SetLevel(appkit.NormalWindowLevel)
}

func primaryHeight() float64 {
	screens := appkit.Screen_Screens()
	if len(screens) == 0 {
		return 0
	}
	return screens[0].Frame().Size.Height
}

// MainQueue dispatches onto the AppKit main thread
type MainQueue struct{}

// Dispatch implements Dispatcher
func (MainQueue) Dispatch(fn func()) {
	dispatch.MainQueue().DispatchAsync(fn)
}
