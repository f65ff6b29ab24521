package layout

import (
	"github.com/etherdesk/etherwm/internal/types"
)

// Cascade returns the launch position for the index-th window,
// offset by stagger on both axes.
func Cascade(index int, origin types.Point, stagger float64) types.Point {
	if index < 0 {
		index = 0
	}
	offset := float64(index) * stagger
	return types.Point{X: origin.X + offset, Y: origin.Y + offset}
}

// Translate converts a pointer position into a window position given the
// offset captured when the drag started.
func Translate(pointer types.Point, offset types.Point) types.Point {
	return pointer.Sub(offset)
}
