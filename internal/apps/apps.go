// Package apps is the closed registry of applications the shell can host.
// Every app id maps to a descriptor fixed at compile time.
package apps

import (
	"fmt"
	"strings"

	"github.com/etherdesk/etherwm/internal/types"
)

// ID identifies an application body
type ID string

const (
	Finder      ID = "finder"
	Browser     ID = "browser"
	Notes       ID = "notes"
	Camera      ID = "camera"
	PixelPaint  ID = "pixelpaint"
	Game2048    ID = "game2048"
	Calendar    ID = "calendar"
	Clock       ID = "clock"
	Terminal    ID = "terminal"
	Settings    ID = "settings"
	Calculator  ID = "calculator"
	TaskManager ID = "taskmanager"
	About       ID = "about"
	Snake       ID = "snake"
	Minesweeper ID = "minesweeper"
)

// FallbackSize is used for ids missing from the registry (old persisted state)
var FallbackSize = types.Size{Width: 600, Height: 400}

// Descriptor holds the default chrome and geometry for an app
type Descriptor struct {
	ID               ID
	Name             string
	DefaultSize      types.Size
	HideTitleBar     bool // Chromeless: the app body is its own drag region
	HideFromDock     bool
	HideFromLauncher bool
	Favorite         bool
}

// registry order is the dock order
var registry = []Descriptor{
	{ID: Finder, Name: "Finder", DefaultSize: types.Size{Width: 800, Height: 500}, Favorite: true},
	{ID: Browser, Name: "Browser", DefaultSize: types.Size{Width: 1000, Height: 600}, HideTitleBar: true, Favorite: true},
	{ID: Notes, Name: "Notes", DefaultSize: types.Size{Width: 700, Height: 500}, Favorite: true},
	{ID: Camera, Name: "Camera", DefaultSize: types.Size{Width: 700, Height: 500}, HideTitleBar: true},
	{ID: PixelPaint, Name: "Pixel Paint", DefaultSize: types.Size{Width: 800, Height: 600}},
	{ID: Game2048, Name: "2048", DefaultSize: types.Size{Width: 500, Height: 650}, HideTitleBar: true},
	{ID: Calendar, Name: "Calendar", DefaultSize: types.Size{Width: 800, Height: 600}},
	{ID: Clock, Name: "Clock", DefaultSize: types.Size{Width: 500, Height: 600}},
	{ID: Terminal, Name: "Terminal", DefaultSize: types.Size{Width: 600, Height: 400}, Favorite: true},
	{ID: Settings, Name: "Settings", DefaultSize: types.Size{Width: 600, Height: 450}},
	{ID: Calculator, Name: "Calculator", DefaultSize: types.Size{Width: 320, Height: 450}, HideTitleBar: true},
	{ID: TaskManager, Name: "Task Manager", DefaultSize: types.Size{Width: 500, Height: 400}},
	{ID: About, Name: "About This Ether", DefaultSize: types.Size{Width: 400, Height: 520}, HideFromDock: true},
	{ID: Snake, Name: "Snake", DefaultSize: types.Size{Width: 500, Height: 580}, HideTitleBar: true},
	{ID: Minesweeper, Name: "Minesweeper", DefaultSize: types.Size{Width: 500, Height: 600}, HideTitleBar: true},
}

var byID = func() map[ID]Descriptor {
	m := make(map[ID]Descriptor, len(registry))
	for _, d := range registry {
		m[d.ID] = d
	}
	return m
}()

// Lookup returns the descriptor for an app id
func Lookup(id ID) (Descriptor, bool) {
	d, ok := byID[id]
	return d, ok
}

// Known reports whether id is in the registry
func Known(id ID) bool {
	_, ok := byID[id]
	return ok
}

// Parse converts user input to a registered ID
func Parse(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if !Known(id) {
		return "", fmt.Errorf("unknown app: %q", s)
	}
	return id, nil
}

// All returns every descriptor in registry order
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// DockApps returns the apps that get a dock icon, Finder first
func DockApps() []Descriptor {
	out := make([]Descriptor, 0, len(registry))
	for _, d := range registry {
		if !d.HideFromDock {
			out = append(out, d)
		}
	}
	return out
}

// LauncherApps returns the apps shown in the launcher grid
func LauncherApps() []Descriptor {
	out := make([]Descriptor, 0, len(registry))
	for _, d := range registry {
		if !d.HideFromLauncher {
			out = append(out, d)
		}
	}
	return out
}

// DefaultSize returns the configured default size, or FallbackSize for unknown ids
func DefaultSize(id ID) types.Size {
	if d, ok := byID[id]; ok {
		return d.DefaultSize
	}
	return FallbackSize
}

// Name returns the display name for an app id, or the raw id if unknown
func Name(id ID) string {
	if d, ok := byID[id]; ok {
		return d.Name
	}
	return string(id)
}

// Chromeless reports whether the app hides the title bar
func Chromeless(id ID) bool {
	d, ok := byID[id]
	return ok && d.HideTitleBar
}
