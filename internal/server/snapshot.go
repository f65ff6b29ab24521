package server

import (
	"context"
	"fmt"
	"sort"

	"github.com/etherdesk/etherwm/internal/client"
	"github.com/etherdesk/etherwm/internal/models"
	"github.com/etherdesk/etherwm/internal/types"
)

// Snapshot is a parsed, read-only view of daemon state at a point in time.
type Snapshot struct {
	*models.State
	Viewport  types.Rect            // Full desktop area
	WindowIDs map[string]bool       // Quick lookup: does window exist?
	Bounds    map[string]types.Rect // Effective rects of visible windows
}

// Fetch calls dump ONCE and parses into a Snapshot.
func Fetch(ctx context.Context, c *client.Client) (*Snapshot, error) {
	raw, err := c.Dump(ctx)
	if err != nil {
		return nil, fmt.Errorf("dump failed: %w", err)
	}
	return parseSnapshot(raw)
}

func parseSnapshot(raw map[string]interface{}) (*Snapshot, error) {
	st, err := models.ParseState(raw)
	if err != nil {
		return nil, err
	}
	if st.Desktop.Width <= 0 || st.Desktop.Height <= 0 {
		return nil, fmt.Errorf("dump has no desktop size")
	}

	snap := &Snapshot{
		State:     st,
		Viewport:  types.Rect{Width: st.Desktop.Width, Height: st.Desktop.Height},
		WindowIDs: make(map[string]bool, len(st.Windows)),
		Bounds:    make(map[string]types.Rect, len(st.Windows)),
	}
	for _, w := range st.Windows {
		snap.WindowIDs[w.ID] = true
		if w.Bounds != nil {
			snap.Bounds[w.ID] = *w.Bounds
		}
	}
	return snap, nil
}

// PaintOrder returns the visible windows bottom first
func (s *Snapshot) PaintOrder() []*models.Window {
	out := s.VisibleWindows()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}

// WindowAt returns the topmost visible window containing p
func (s *Snapshot) WindowAt(p types.Point) *models.Window {
	order := s.PaintOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if b := order[i].Bounds; b != nil && b.Contains(p) {
			return order[i]
		}
	}
	return nil
}
