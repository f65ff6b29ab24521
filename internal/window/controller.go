// Package window implements pointer-driven window interaction: moving a
// window by its drag region and resizing it by an edge or corner.
//
// A Controller is an explicit state machine (Idle, Dragging, Resizing)
// fed pointer-down, pointer-move and pointer-up events. There is one
// pointer, so at most one gesture is active per controller.
package window

import (
	"sync"

	"github.com/etherdesk/etherwm/internal/layout"
	"github.com/etherdesk/etherwm/internal/logging"
	"github.com/etherdesk/etherwm/internal/state"
	"github.com/etherdesk/etherwm/internal/types"
)

// Mode is the controller's gesture state
type Mode int

const (
	Idle Mode = iota
	Dragging
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Gesture describes the active gesture, if any
type Gesture struct {
	Mode     Mode       `json:"-"`
	WindowID string     `json:"windowId,omitempty"`
	Edge     types.Edge `json:"edge,omitempty"`
}

// Controller turns pointer events into session writes
type Controller struct {
	session *state.Session

	mu       sync.Mutex
	mode     Mode
	windowID string

	// Dragging
	offset types.Point // pointer - window position at pointer-down

	// Resizing; captured once at pointer-down and never updated
	edge    types.Edge
	start   types.Point
	initial types.Rect

	unsubscribe func()
}

// NewController creates an idle controller bound to a session
func NewController(s *state.Session) *Controller {
	return &Controller{session: s}
}

// BeginDrag starts moving a window. It refuses unknown and minimized
// windows, and refuses while another gesture is active.
//
// Maximized windows are pinned to the work area and are refused too. A
// drag there would move the stored rectangle the user cannot see, so the
// window would jump on restore. Un-maximize first to move it.
//
// The window is focused before the offset is captured.
func (c *Controller) BeginDrag(id string, pointer types.Point) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.grab(id)
	if !ok {
		return false
	}

	c.mode = Dragging
	c.windowID = id
	c.offset = pointer.Sub(w.Position)
	c.attach()

	logging.Debug().Str("window", id).Float64("x", pointer.X).Float64("y", pointer.Y).Msg("drag started")
	return true
}

// BeginResize starts resizing a window from an edge or corner. Refusals
// match BeginDrag. The starting geometry uses the app default size when
// the stored size is the 0x0 sentinel.
func (c *Controller) BeginResize(id string, edge types.Edge, pointer types.Point) bool {
	if !edge.Valid() {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.grab(id)
	if !ok {
		return false
	}

	c.mode = Resizing
	c.windowID = id
	c.edge = edge
	c.start = pointer
	c.initial = types.NewRect(w.Position, layout.EffectiveSize(w, c.session.DefaultSize(w.AppID)))
	c.attach()

	logging.Debug().Str("window", id).Str("edge", edge.String()).Msg("resize started")
	return true
}

// grab validates and focuses the target of a new gesture. Caller must hold mu.
func (c *Controller) grab(id string) (types.Window, bool) {
	if c.mode != Idle {
		return types.Window{}, false
	}
	w, ok := c.session.Window(id)
	if !ok || w.IsMinimized || w.IsMaximized {
		return types.Window{}, false
	}
	if !c.session.Focus(id) {
		return types.Window{}, false
	}
	return w, true
}

// Move applies a pointer-move. It is ignored while idle.
func (c *Controller) Move(pointer types.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var ok bool
	switch c.mode {
	case Dragging:
		p := layout.Translate(pointer, c.offset)
		ok = c.session.SetPosition(c.windowID, p.X, p.Y)
	case Resizing:
		delta := pointer.Sub(c.start)
		r := layout.ResizeRect(c.edge, c.initial, delta, c.session.Options().MinSize)
		ok = c.session.SetBounds(c.windowID, r)
	default:
		return
	}

	// The window disappeared without us seeing the close event
	if !ok {
		c.reset()
	}
}

// End finishes the gesture on pointer-up. It returns false if no gesture
// was active.
func (c *Controller) End() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == Idle {
		return false
	}
	logging.Debug().Str("window", c.windowID).Str("mode", c.mode.String()).Msg("gesture ended")
	c.reset()
	return true
}

// Mode returns the current gesture state
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Active returns the gesture in progress
func (c *Controller) Active() Gesture {
	c.mu.Lock()
	defer c.mu.Unlock()

	g := Gesture{Mode: c.mode, WindowID: c.windowID}
	if c.mode == Resizing {
		g.Edge = c.edge
	}
	return g
}

// attach listens for the gesture's window being closed. Caller must hold mu.
func (c *Controller) attach() {
	target := c.windowID
	c.unsubscribe = c.session.Subscribe(func(ev state.Event) {
		// Only close events take the lock; Move holds it while writing
		if ev.Type != state.EventClosed && ev.Type != state.EventReset {
			return
		}
		if ev.Type == state.EventClosed && ev.WindowID != target {
			return
		}
		c.abort(target)
	})
}

func (c *Controller) abort(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == Idle || c.windowID != id {
		return
	}
	logging.Debug().Str("window", id).Str("mode", c.mode.String()).Msg("gesture aborted, window closed")
	c.reset()
}

// reset returns to Idle and detaches from the session. Caller must hold mu.
func (c *Controller) reset() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.mode = Idle
	c.windowID = ""
	c.offset = types.Point{}
	c.edge = ""
	c.start = types.Point{}
	c.initial = types.Rect{}
}
