package types

// Window is one open application window instance.
// IsMinimized takes precedence over IsMaximized for rendering and geometry.
type Window struct {
	ID          string `json:"id"`
	AppID       string `json:"appId"`
	Title       string `json:"title"`
	Position    Point  `json:"position"`
	Size        Size   `json:"size"`
	IsMinimized bool   `json:"isMinimized"`
	IsMaximized bool   `json:"isMaximized"`
	ZIndex      int    `json:"zIndex"`

	// LaunchArgs is consumed once by the hosted app and never persisted
	LaunchArgs any `json:"-"`
}

// Visible returns true if the window renders at all
func (w Window) Visible() bool {
	return !w.IsMinimized
}

// StoredRect returns the stored (non-maximized) rectangle.
// Size may still be the 0x0 sentinel.
func (w Window) StoredRect() Rect {
	return NewRect(w.Position, w.Size)
}
