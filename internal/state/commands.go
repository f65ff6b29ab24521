package state

import (
	"fmt"

	"github.com/etherdesk/etherwm/internal/apps"
	"github.com/etherdesk/etherwm/internal/focus"
	"github.com/etherdesk/etherwm/internal/layout"
	"github.com/etherdesk/etherwm/internal/types"
)

// Commands that take a window id return false and change nothing when the
// id is unknown. Stale ids are expected from a UI event stream (double
// clicks on close, gestures racing a close) and are not errors.

// Launch opens a new window for appID and makes it active.
// Multiple windows of the same app are allowed.
func (s *Session) Launch(appID apps.ID, launchArgs any) string {
	s.mu.Lock()
	id := s.newID(appID)
	w := &types.Window{
		ID:         id,
		AppID:      string(appID),
		Title:      apps.Name(appID),
		Position:   layout.Cascade(len(s.windows), s.opts.Origin, s.opts.Stagger),
		ZIndex:     focus.NextZ(s.values()),
		LaunchArgs: launchArgs,
	}
	s.windows = append(s.windows, w)
	s.activeID = id
	s.desktop.LauncherOpen = false
	s.touch()
	s.mu.Unlock()

	s.emit(Event{Type: EventLaunched, WindowID: id})
	return id
}

// newID builds "<app>-<unix millis>", suffixed when the id was already
// issued in this session, including to windows since closed. A stale id
// held by a caller can therefore never address a newer window.
// Caller must hold mu.
func (s *Session) newID(appID apps.ID) string {
	base := fmt.Sprintf("%s-%d", appID, s.opts.Clock().UnixMilli())
	id := base
	for n := 2; s.issued[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	s.issued[id] = true
	return id
}

// Close removes the window. If it was active nothing becomes active;
// the next window down the stack is deliberately not refocused.
func (s *Session) Close(id string) bool {
	s.mu.Lock()
	_, idx := s.find(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.windows = append(s.windows[:idx], s.windows[idx+1:]...)
	s.activeID = focus.ActiveAfterClose(s.activeID, id)
	s.touch()
	s.mu.Unlock()

	s.emit(Event{Type: EventClosed, WindowID: id})
	return true
}

// Focus raises the window above every other window and makes it active.
// A minimized window is restored first so the active window is always visible.
func (s *Session) Focus(id string) bool {
	s.mu.Lock()
	events, ok := s.focusLocked(id)
	s.mu.Unlock()

	s.emit(events...)
	return ok
}

func (s *Session) focusLocked(id string) ([]Event, bool) {
	w, _ := s.find(id)
	if w == nil {
		return nil, false
	}

	var events []Event
	if w.IsMinimized {
		w.IsMinimized = false
		events = append(events, Event{Type: EventRestored, WindowID: id})
	}
	w.ZIndex = focus.NextZ(s.values())
	s.activeID = id
	s.touch()
	return append(events, Event{Type: EventFocused, WindowID: id}), true
}

// Minimize toggles the minimized flag. Minimizing the active window
// leaves nothing active.
func (s *Session) Minimize(id string) bool {
	s.mu.Lock()
	w, _ := s.find(id)
	if w == nil {
		s.mu.Unlock()
		return false
	}
	w.IsMinimized = !w.IsMinimized
	ev := Event{Type: EventRestored, WindowID: id}
	if w.IsMinimized {
		s.activeID = focus.ActiveAfterMinimize(s.activeID, id)
		ev.Type = EventMinimized
	}
	s.touch()
	s.mu.Unlock()

	s.emit(ev)
	return true
}

// Maximize toggles the maximized flag. Stored position and size are kept
// so un-maximizing returns to the previous geometry.
func (s *Session) Maximize(id string) bool {
	s.mu.Lock()
	w, _ := s.find(id)
	if w == nil {
		s.mu.Unlock()
		return false
	}
	w.IsMaximized = !w.IsMaximized
	s.touch()
	s.mu.Unlock()

	s.emit(Event{Type: EventMaximized, WindowID: id})
	return true
}

// SetPosition writes the stored top-left corner unconditionally.
func (s *Session) SetPosition(id string, x, y float64) bool {
	s.mu.Lock()
	w, _ := s.find(id)
	if w == nil {
		s.mu.Unlock()
		return false
	}
	w.Position = types.Point{X: x, Y: y}
	s.touch()
	s.mu.Unlock()

	s.emit(Event{Type: EventMoved, WindowID: id})
	return true
}

// SetSize writes the stored size unconditionally; callers enforce minimums.
func (s *Session) SetSize(id string, width, height float64) bool {
	s.mu.Lock()
	w, _ := s.find(id)
	if w == nil {
		s.mu.Unlock()
		return false
	}
	w.Size = types.Size{Width: width, Height: height}
	s.touch()
	s.mu.Unlock()

	s.emit(Event{Type: EventResized, WindowID: id})
	return true
}

// SetBounds writes position and size in one transaction so no reader can
// observe the new position with the old size.
func (s *Session) SetBounds(id string, r types.Rect) bool {
	s.mu.Lock()
	w, _ := s.find(id)
	if w == nil {
		s.mu.Unlock()
		return false
	}
	w.Position = r.Origin()
	w.Size = r.Size()
	s.touch()
	s.mu.Unlock()

	s.emit(Event{Type: EventResized, WindowID: id})
	return true
}

// SetTitle replaces the window title shown in chrome and task lists.
func (s *Session) SetTitle(id, title string) bool {
	s.mu.Lock()
	w, _ := s.find(id)
	if w == nil {
		s.mu.Unlock()
		return false
	}
	w.Title = title
	s.touch()
	s.mu.Unlock()

	s.emit(Event{Type: EventRetitled, WindowID: id})
	return true
}

// TakeLaunchArgs hands the launch payload to the app body exactly once.
func (s *Session) TakeLaunchArgs(id string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, _ := s.find(id)
	if w == nil || w.LaunchArgs == nil {
		return nil, false
	}
	args := w.LaunchArgs
	w.LaunchArgs = nil
	return args, true
}

// CycleFocus focuses the next (or previous) visible window in stack order.
// Returns the focused id, or false when nothing is visible.
func (s *Session) CycleFocus(forward bool) (string, bool) {
	s.mu.Lock()
	target, ok := focus.Cycle(s.values(), s.activeID, forward)
	var events []Event
	if ok {
		events, ok = s.focusLocked(target)
	}
	s.mu.Unlock()

	s.emit(events...)
	return target, ok
}

// FocusDirection focuses the visible window nearest the active one in a
// direction, optionally wrapping to the far edge of the desktop.
func (s *Session) FocusDirection(dir types.Direction, wrap bool) (string, bool) {
	s.mu.Lock()
	bounds := make(map[string]types.Rect, len(s.windows))
	for _, w := range s.windows {
		if r, ok := s.opts.Desktop.EffectiveRect(*w, s.DefaultSize(w.AppID)); ok {
			bounds[w.ID] = r
		}
	}

	target, ok := focus.FindTargetWindow(s.activeID, dir, bounds, wrap)
	var events []Event
	if ok {
		events, ok = s.focusLocked(target)
	}
	s.mu.Unlock()

	s.emit(events...)
	return target, ok
}

// SetTheme replaces the theme preferences; brightness and volume are
// clamped to 0-100.
func (s *Session) SetTheme(t Theme) {
	t.Brightness = clampPercent(t.Brightness)
	t.Volume = clampPercent(t.Volume)

	s.mu.Lock()
	s.desktop.Theme = t
	s.touch()
	s.mu.Unlock()
}

// SetLauncherOpen shows or hides the app launcher overlay
func (s *Session) SetLauncherOpen(open bool) {
	s.mu.Lock()
	s.desktop.LauncherOpen = open
	s.touch()
	s.mu.Unlock()
}

// ToggleLauncher flips the launcher overlay and returns the new state
func (s *Session) ToggleLauncher() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.desktop.LauncherOpen = !s.desktop.LauncherOpen
	s.touch()
	return s.desktop.LauncherOpen
}

// Reset closes every window and restores desktop defaults
func (s *Session) Reset() {
	s.mu.Lock()
	s.windows = make([]*types.Window, 0)
	s.activeID = ""
	s.desktop = DefaultDesktopState()
	s.touch()
	s.mu.Unlock()

	s.emit(Event{Type: EventReset})
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
