package focus

import (
	"sort"

	"github.com/etherdesk/etherwm/internal/types"
)

// CycleWindowIndex calculates the next index when cycling through windows.
// Wraps around at boundaries.
func CycleWindowIndex(current, total int, forward bool) int {
	if total <= 0 {
		return 0
	}

	if forward {
		return (current + 1) % total
	}

	// Backward - handle wrap-around
	return (current - 1 + total) % total
}

// FindWindowIndex finds the index of a window ID in the slice.
// Returns -1 if not found.
func FindWindowIndex(ids []string, id string) int {
	for i, wid := range ids {
		if wid == id {
			return i
		}
	}
	return -1
}

// CycleOrder returns visible window ids from top to bottom of the stack.
func CycleOrder(windows []types.Window) []string {
	visible := make([]types.Window, 0, len(windows))
	for _, w := range windows {
		if !w.IsMinimized {
			visible = append(visible, w)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].ZIndex > visible[j].ZIndex
	})

	ids := make([]string, len(visible))
	for i, w := range visible {
		ids[i] = w.ID
	}
	return ids
}

// Cycle picks the window to focus when switching windows from the keyboard.
// Forward walks down the stack (the topmost is current), backward walks up
// from the bottom. With no active window the topmost window is chosen.
func Cycle(windows []types.Window, active string, forward bool) (string, bool) {
	order := CycleOrder(windows)
	if len(order) == 0 {
		return "", false
	}

	idx := FindWindowIndex(order, active)
	if idx < 0 {
		return order[0], true
	}
	if len(order) == 1 {
		return order[0], true
	}

	return order[CycleWindowIndex(idx, len(order), forward)], true
}
