// Package focus implements the stacking and focus policy for desktop windows.
//
// Stacking is a monotonic counter: every focus-causing event gives the
// window a zIndex one above the current maximum. Other windows are never
// renumbered.
package focus

import (
	"sort"

	"github.com/etherdesk/etherwm/internal/types"
)

// NextZ returns the zIndex to allocate for the next focus event.
// An empty desktop starts at 1.
func NextZ(windows []types.Window) int {
	maxZ := 0
	for _, w := range windows {
		if w.ZIndex > maxZ {
			maxZ = w.ZIndex
		}
	}
	return maxZ + 1
}

// Topmost returns the visible window with the highest zIndex.
// Ties keep the earlier window in registry order.
func Topmost(windows []types.Window) (string, bool) {
	var (
		best  string
		bestZ int
		found bool
	)
	for _, w := range windows {
		if w.IsMinimized {
			continue
		}
		if !found || w.ZIndex > bestZ {
			best, bestZ, found = w.ID, w.ZIndex, true
		}
	}
	return best, found
}

// Order returns the windows in paint order, bottom first.
func Order(windows []types.Window) []types.Window {
	out := make([]types.Window, len(windows))
	copy(out, windows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}

// ActiveAfterClose returns the active window id once closed is removed.
// Closing the active window leaves nothing active; the next window is not
// refocused automatically.
func ActiveAfterClose(active, closed string) string {
	if active == closed {
		return ""
	}
	return active
}

// ActiveAfterMinimize returns the active window id once minimized is hidden.
func ActiveAfterMinimize(active, minimized string) string {
	return ActiveAfterClose(active, minimized)
}
