package output

import (
	"github.com/etherdesk/etherwm/internal/types"
)

// Border is the number of character cells reserved around the desktop
const Border = 1

// ScalingContext handles coordinate transformation from pixel space to
// terminal character space
type ScalingContext struct {
	// Desktop dimensions in pixels
	PixelWidth  float64
	PixelHeight float64

	// Terminal dimensions in characters
	TermWidth  int
	TermHeight int

	// Scale factors
	ScaleX float64
	ScaleY float64
}

// AspectRatio corrects for terminal cells being about twice as tall as wide
const AspectRatio = 2.0

// NewScalingContext fits a desktop of the given pixel size into at most
// termWidth x termHeight cells, preserving its proportions.
func NewScalingContext(desktop types.Size, termWidth, termHeight int) *ScalingContext {
	if desktop.Width <= 0 || desktop.Height <= 0 {
		desktop = types.Size{Width: 1920, Height: 1080}
	}

	availWidth := max(termWidth-2*Border, 10)
	availHeight := max(termHeight-2*Border, 5)

	// One scale for both axes, with rows counted double
	scale := float64(availWidth) / desktop.Width
	if s := float64(availHeight) * AspectRatio / desktop.Height; s < scale {
		scale = s
	}

	return &ScalingContext{
		PixelWidth:  desktop.Width,
		PixelHeight: desktop.Height,
		TermWidth:   int(desktop.Width*scale) + 2*Border,
		TermHeight:  int(desktop.Height*scale/AspectRatio) + 2*Border,
		ScaleX:      scale,
		ScaleY:      scale / AspectRatio,
	}
}

// PixelToTerminal converts pixel coordinates to terminal coordinates
func (sc *ScalingContext) PixelToTerminal(x, y float64) (int, int) {
	return int(x*sc.ScaleX) + Border, int(y*sc.ScaleY) + Border
}

// ScaleSize converts pixel dimensions to terminal character dimensions,
// never smaller than a 3x2 box
func (sc *ScalingContext) ScaleSize(w, h float64) (int, int) {
	return max(int(w*sc.ScaleX), 3), max(int(h*sc.ScaleY), 2)
}

// RectToTerminal converts a pixel rect and clamps it to the canvas
func (sc *ScalingContext) RectToTerminal(r types.Rect) (x, y, w, h int) {
	x, y = sc.PixelToTerminal(r.X, r.Y)
	w, h = sc.ScaleSize(r.Width, r.Height)
	return sc.ClampToCanvas(x, y, w, h)
}

// ClampToCanvas ensures coordinates are within canvas bounds. Windows may
// be dragged partly off-screen, so only the visible part is kept.
func (sc *ScalingContext) ClampToCanvas(x, y, w, h int) (int, int, int, int) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > sc.TermWidth {
		w = sc.TermWidth - x
	}
	if y+h > sc.TermHeight {
		h = sc.TermHeight - y
	}
	return x, y, max(w, 0), max(h, 0)
}
