package window

import (
	"github.com/etherdesk/etherwm/internal/apps"
	"github.com/etherdesk/etherwm/internal/types"
)

// Window chrome metrics in pixels
const (
	TitleBarHeight  = 40
	ButtonSize      = 12
	ButtonSpacing   = 8
	ButtonInset     = 16 // left padding before the close button
	HandleThickness = 6  // resize handle width along each border
)

// Region is the part of a window a pointer is over
type Region int

const (
	RegionOutside Region = iota
	RegionEdge
	RegionTitleBar
	RegionClose
	RegionMinimize
	RegionMaximize
	RegionContent
)

var regionNames = map[Region]string{
	RegionOutside:  "outside",
	RegionEdge:     "edge",
	RegionTitleBar: "titlebar",
	RegionClose:    "close",
	RegionMinimize: "minimize",
	RegionMaximize: "maximize",
	RegionContent:  "content",
}

func (r Region) String() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return "unknown"
}

// Hit is the result of a hit test
type Hit struct {
	Region Region
	Edge   types.Edge // Set when Region is RegionEdge
}

// HitTest classifies a pointer position against a window drawn at r.
// Chromeless apps have no title bar or traffic-light buttons. Maximized
// windows have no resize handles.
func HitTest(desc apps.Descriptor, r types.Rect, maximized bool, p types.Point) Hit {
	if !r.Contains(p) {
		return Hit{Region: RegionOutside}
	}
	if !maximized {
		if e := edgeAt(r, p); e != "" {
			return Hit{Region: RegionEdge, Edge: e}
		}
	}
	if desc.HideTitleBar || p.Y >= r.Y+TitleBarHeight {
		return Hit{Region: RegionContent}
	}

	// Traffic lights are vertically centered in the title bar
	top := r.Y + (TitleBarHeight-ButtonSize)/2
	if p.Y >= top && p.Y < top+ButtonSize {
		left := r.X + ButtonInset
		for _, region := range []Region{RegionClose, RegionMinimize, RegionMaximize} {
			if p.X >= left && p.X < left+ButtonSize {
				return Hit{Region: region}
			}
			left += ButtonSize + ButtonSpacing
		}
	}
	return Hit{Region: RegionTitleBar}
}

func edgeAt(r types.Rect, p types.Point) types.Edge {
	var e string
	switch {
	case p.Y < r.Y+HandleThickness:
		e = "n"
	case p.Y >= r.Bottom()-HandleThickness:
		e = "s"
	}
	switch {
	case p.X < r.X+HandleThickness:
		e += "w"
	case p.X >= r.Right()-HandleThickness:
		e += "e"
	}
	return types.Edge(e)
}

// DragRegion reports whether a pointer-down on hit starts a window drag.
// The title bar always does. For chromeless apps any interior point does,
// unless the app reports an interactive control under the pointer.
func DragRegion(desc apps.Descriptor, hit Hit, onControl bool) bool {
	switch hit.Region {
	case RegionTitleBar:
		return true
	case RegionContent:
		return desc.HideTitleBar && !onControl
	default:
		return false
	}
}
