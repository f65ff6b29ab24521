package layout

import (
	"github.com/etherdesk/etherwm/internal/types"
)

// Desktop is the viewport windows are laid out in.
// The menu bar is a fixed strip across the top.
type Desktop struct {
	Width         float64
	Height        float64
	MenuBarHeight float64
}

// Bounds returns the whole viewport
func (d Desktop) Bounds() types.Rect {
	return types.Rect{Width: d.Width, Height: d.Height}
}

// MaximizedRect returns the geometry of a maximized window: full width,
// full height below the menu bar, pinned at (0, menuBarHeight).
func (d Desktop) MaximizedRect() types.Rect {
	h := d.Height - d.MenuBarHeight
	if h < 0 {
		h = 0
	}
	return types.Rect{X: 0, Y: d.MenuBarHeight, Width: d.Width, Height: h}
}

// EffectiveSize resolves the 0x0 sentinel to the app default size
func EffectiveSize(w types.Window, defaultSize types.Size) types.Size {
	if w.Size.IsZero() {
		return defaultSize
	}
	return w.Size
}

// EffectiveRect returns where the window is actually drawn.
// Minimized windows draw nothing and return false. Maximized geometry is
// computed here and never written back to the stored rectangle.
func (d Desktop) EffectiveRect(w types.Window, defaultSize types.Size) (types.Rect, bool) {
	if w.IsMinimized {
		return types.Rect{}, false
	}
	if w.IsMaximized {
		return d.MaximizedRect(), true
	}
	return types.NewRect(w.Position, EffectiveSize(w, defaultSize)), true
}
