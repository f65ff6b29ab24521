package state

import (
	"fmt"
	"time"

	"github.com/etherdesk/etherwm/internal/focus"
	"github.com/etherdesk/etherwm/internal/types"
)

// Windows returns a copy of every window in registry (launch) order
func (s *Session) Windows() []types.Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values()
}

// PaintOrder returns the windows in ascending z order, bottom first
func (s *Session) PaintOrder() []types.Window {
	return focus.Order(s.Windows())
}

// Window returns a copy of a single window
func (s *Session) Window(id string) (types.Window, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, _ := s.find(id)
	if w == nil {
		return types.Window{}, false
	}
	return *w, true
}

// ActiveWindowID returns the active window id, or "" when none is active
func (s *Session) ActiveWindowID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Len returns the number of open windows
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.windows)
}

// Desktop returns the desktop preferences
func (s *Session) Desktop() DesktopState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.desktop
}

// LastUpdated returns the time of the last committed command
func (s *Session) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// EffectiveRect returns the on-screen rectangle of a window: the maximized
// area, or stored position with the app default substituted for a 0x0 size.
// Returns false for unknown and minimized windows.
func (s *Session) EffectiveRect(id string) (types.Rect, bool) {
	w, ok := s.Window(id)
	if !ok {
		return types.Rect{}, false
	}
	return s.opts.Desktop.EffectiveRect(w, s.DefaultSize(w.AppID))
}

// Summary returns a one-line description for logs and `etherwm info`
func (s *Session) Summary() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var minimized, maximized int
	for _, w := range s.windows {
		if w.IsMinimized {
			minimized++
		}
		if w.IsMaximized {
			maximized++
		}
	}

	active := s.activeID
	if active == "" {
		active = "none"
	}
	return fmt.Sprintf("%d windows (%d minimized, %d maximized), active: %s",
		len(s.windows), minimized, maximized, active)
}
