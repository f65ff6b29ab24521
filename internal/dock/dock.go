// Package dock decides when the dock should slide out of the way of
// windows. Visibility is derived from window geometry on every call and
// never stored.
package dock

import (
	"github.com/etherdesk/etherwm/internal/apps"
	"github.com/etherdesk/etherwm/internal/layout"
	"github.com/etherdesk/etherwm/internal/types"
)

// LaunchpadID is the dock item that toggles the launcher
const LaunchpadID = "launchpad"

// Config describes dock geometry in pixels
type Config struct {
	AutoHide     bool
	Height       float64
	IconSlot     float64 // Width per icon, including spacing
	Padding      float64 // Horizontal padding inside the dock
	BottomOffset float64 // Gap between dock and viewport bottom
	Margin       float64 // Proximity margin around the dock
}

// DefaultConfig returns the stock dock geometry
func DefaultConfig() Config {
	return Config{
		AutoHide:     true,
		Height:       72,
		IconSlot:     56,
		Padding:      16,
		BottomOffset: 16,
		Margin:       20,
	}
}

// Result is the outcome of one evaluation
type Result struct {
	Hidden      bool       `json:"hidden"`
	Region      types.Rect `json:"region"`      // Dock bounds expanded by the margin
	Obstructing []string   `json:"obstructing"` // Windows that reach the region
}

// IconCount returns the number of dock icons: the launchpad plus every
// dockable app.
func IconCount() int {
	return len(apps.DockApps()) + 1
}

// Region returns the dock rectangle expanded by the proximity margin.
// The dock is horizontally centered with its bottom BottomOffset above
// the bottom of the viewport.
func Region(viewport types.Size, cfg Config) types.Rect {
	width := float64(IconCount())*cfg.IconSlot + 2*cfg.Padding
	dock := types.Rect{
		X:      (viewport.Width - width) / 2,
		Y:      viewport.Height - cfg.BottomOffset - cfg.Height,
		Width:  width,
		Height: cfg.Height,
	}
	return dock.Expand(cfg.Margin)
}

// Evaluate checks every visible window against the dock region.
// Maximized windows always obstruct. Other windows obstruct when their
// effective rectangle reaches below the region's top and overlaps it
// horizontally.
func Evaluate(windows []types.Window, desktop layout.Desktop, cfg Config) Result {
	return EvaluateSized(windows, desktop, cfg, registrySize)
}

// EvaluateSized is Evaluate with a caller-supplied default size lookup,
// for sessions that override app default sizes.
func EvaluateSized(windows []types.Window, desktop layout.Desktop, cfg Config, defaultSize func(appID string) types.Size) Result {
	region := Region(types.Size{Width: desktop.Width, Height: desktop.Height}, cfg)
	res := Result{Region: region, Obstructing: make([]string, 0)}

	for _, w := range windows {
		if obstructs(w, desktop, region, defaultSize(w.AppID)) {
			res.Obstructing = append(res.Obstructing, w.ID)
		}
	}

	res.Hidden = cfg.AutoHide && len(res.Obstructing) > 0
	return res
}

// ShouldHide reports whether the dock should be hidden
func ShouldHide(windows []types.Window, desktop layout.Desktop, cfg Config) bool {
	return Evaluate(windows, desktop, cfg).Hidden
}

func registrySize(appID string) types.Size {
	return apps.DefaultSize(apps.ID(appID))
}

func obstructs(w types.Window, desktop layout.Desktop, region types.Rect, defaultSize types.Size) bool {
	if w.IsMinimized {
		return false
	}
	if w.IsMaximized {
		return true
	}
	r, _ := desktop.EffectiveRect(w, defaultSize)
	return r.Bottom() > region.Y && r.Right() > region.X && r.X < region.Right()
}

// Item is one dock icon
type Item struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Running bool   `json:"running"` // At least one window of the app is open
}

// Items returns the dock icons in display order: the launchpad, Finder,
// then every other dockable app.
func Items(windows []types.Window) []Item {
	running := make(map[string]bool, len(windows))
	for _, w := range windows {
		running[w.AppID] = true
	}

	items := []Item{{ID: LaunchpadID, Name: "Launchpad"}}
	for _, d := range apps.DockApps() {
		items = append(items, Item{
			ID:      string(d.ID),
			Name:    d.Name,
			Running: running[string(d.ID)],
		})
	}
	return items
}
