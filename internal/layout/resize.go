package layout

import (
	"github.com/etherdesk/etherwm/internal/types"
)

// ClampSize raises each dimension of s to at least the matching minimum.
func ClampSize(s types.Size, minSize types.Size) types.Size {
	return types.Size{
		Width:  clampDim(s.Width, minSize.Width),
		Height: clampDim(s.Height, minSize.Height),
	}
}

// ResizeRect computes the rectangle produced by dragging a resize handle.
//
// Parameters:
//   - edge: The handle the gesture started on (n, s, e, w or a corner)
//   - initial: Window rectangle captured at gesture start
//   - delta: Pointer movement since gesture start
//   - minSize: Minimum width/height
//
// West and north handles anchor the opposite edge: the left/top edge moves
// by the clamped size change, never by the raw pointer delta, so the
// right/bottom edge stays fixed even when the minimum is hit.
func ResizeRect(edge types.Edge, initial types.Rect, delta types.Point, minSize types.Size) types.Rect {
	r := initial

	switch {
	case edge.HasEast():
		r.Width = clampDim(initial.Width+delta.X, minSize.Width)
	case edge.HasWest():
		r.Width = clampDim(initial.Width-delta.X, minSize.Width)
		r.X = initial.X + (initial.Width - r.Width)
	}

	switch {
	case edge.HasSouth():
		r.Height = clampDim(initial.Height+delta.Y, minSize.Height)
	case edge.HasNorth():
		r.Height = clampDim(initial.Height-delta.Y, minSize.Height)
		r.Y = initial.Y + (initial.Height - r.Height)
	}

	return r
}

func clampDim(v, minimum float64) float64 {
	if v < minimum {
		return minimum
	}
	return v
}
