package models

import (
	"fmt"
	"time"

	"github.com/etherdesk/etherwm/internal/types"
)

// Window is a window as reported by the daemon
type Window struct {
	ID          string      `json:"id"`
	AppID       string      `json:"appId"`
	AppName     string      `json:"appName"`
	Title       string      `json:"title"`
	Position    types.Point `json:"position"`
	Size        types.Size  `json:"size"`   // 0x0 means the app default
	Bounds      *types.Rect `json:"bounds"` // Effective on-screen rect, nil when minimized
	IsMinimized bool        `json:"isMinimized"`
	IsMaximized bool        `json:"isMaximized"`
	ZIndex      int         `json:"zIndex"`
	IsActive    bool        `json:"isActive"`
}

// FormatBounds returns a formatted string representation of the effective rect
func (w *Window) FormatBounds() string {
	if w.Bounds == nil {
		return "-"
	}
	b := w.Bounds
	return fmt.Sprintf("%.0f,%.0f %.0fx%.0f", b.X, b.Y, b.Width, b.Height)
}

// State returns a short label for the window's flags
func (w *Window) State() string {
	switch {
	case w.IsMinimized:
		return "minimized"
	case w.IsMaximized:
		return "maximized"
	default:
		return "normal"
	}
}

// Theme mirrors the persisted theme preferences
type Theme struct {
	Wallpaper  string `json:"wallpaper"`
	DarkMode   bool   `json:"darkMode"`
	Brightness int    `json:"brightness"`
	Volume     int    `json:"volume"`
}

// Desktop is the non-window desktop state
type Desktop struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	MenuBarHeight float64 `json:"menuBarHeight"`
	Theme         Theme   `json:"theme"`
	LauncherOpen  bool    `json:"launcherOpen"`
}

// DockItem is one dock icon
type DockItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Running bool   `json:"running"`
}

// Dock is the dock visibility verdict
type Dock struct {
	Hidden      bool       `json:"hidden"`
	AutoHide    bool       `json:"autoHide"`
	Region      types.Rect `json:"region"`
	Obstructing []string   `json:"obstructing"`
	Items       []DockItem `json:"items"`
}

// Gesture is the pointer gesture in progress
type Gesture struct {
	Mode     string `json:"mode"` // "idle", "dragging" or "resizing"
	WindowID string `json:"windowId,omitempty"`
	Edge     string `json:"edge,omitempty"`
}

// Metadata describes the daemon
type Metadata struct {
	ServerVersion string    `json:"serverVersion"`
	StatePath     string    `json:"statePath"`
	LastUpdated   time.Time `json:"lastUpdated"`
	Timestamp     time.Time `json:"timestamp"`
}

// State is the result of the dump method
type State struct {
	Windows        []*Window `json:"windows"` // Registry (launch) order
	ActiveWindowID string    `json:"activeWindowId"`
	Desktop        Desktop   `json:"desktop"`
	Dock           Dock      `json:"dock"`
	Gesture        Gesture   `json:"gesture"`
	Metadata       Metadata  `json:"metadata"`
}

// ParseState parses the dump result into a State struct
func ParseState(result map[string]interface{}) (*State, error) {
	var state State
	if err := Decode(result, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}
	return &state, nil
}

// FindWindowByID finds a window by its ID
func (s *State) FindWindowByID(id string) *Window {
	for _, w := range s.Windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// ActiveWindow returns the active window, or nil
func (s *State) ActiveWindow() *Window {
	if s.ActiveWindowID == "" {
		return nil
	}
	return s.FindWindowByID(s.ActiveWindowID)
}

// VisibleWindows returns the non-minimized windows
func (s *State) VisibleWindows() []*Window {
	out := make([]*Window, 0, len(s.Windows))
	for _, w := range s.Windows {
		if !w.IsMinimized {
			out = append(out, w)
		}
	}
	return out
}
