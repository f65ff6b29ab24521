package window

import (
	"testing"

	"github.com/etherdesk/etherwm/internal/apps"
	"github.com/etherdesk/etherwm/internal/state"
	"github.com/etherdesk/etherwm/internal/types"
)

func newTestController(t *testing.T) (*Controller, *state.Session, string) {
	t.Helper()
	s := state.New(state.DefaultOptions())
	id := s.Launch(apps.Notes, nil)
	return NewController(s), s, id
}

func TestDragScenario(t *testing.T) {
	c, s, id := newTestController(t)
	s.SetPosition(id, 100, 50)

	if !c.BeginDrag(id, types.Point{X: 110, Y: 60}) {
		t.Fatal("BeginDrag refused")
	}
	if c.Mode() != Dragging {
		t.Fatalf("Mode = %s, want dragging", c.Mode())
	}

	c.Move(types.Point{X: 300, Y: 260})

	w, _ := s.Window(id)
	if w.Position != (types.Point{X: 290, Y: 250}) {
		t.Errorf("Position = %+v, want {290 250}", w.Position)
	}
	if !w.Size.IsZero() {
		t.Error("drag should not touch size")
	}

	if !c.End() {
		t.Error("End should report an active gesture")
	}
	if c.Mode() != Idle {
		t.Error("End should return to idle")
	}
	if s.SubscriberCount() != 0 {
		t.Error("End should detach from the session")
	}

	// Moves after pointer-up are ignored
	c.Move(types.Point{X: 0, Y: 0})
	w, _ = s.Window(id)
	if w.Position != (types.Point{X: 290, Y: 250}) {
		t.Error("move while idle changed position")
	}
}

func TestBeginFocusesWindow(t *testing.T) {
	c, s, id := newTestController(t)
	other := s.Launch(apps.Clock, nil)

	c.BeginDrag(id, types.Point{X: 120, Y: 60})
	if s.ActiveWindowID() != id {
		t.Errorf("active = %q, want %q", s.ActiveWindowID(), id)
	}
	w, _ := s.Window(id)
	o, _ := s.Window(other)
	if w.ZIndex <= o.ZIndex {
		t.Error("dragged window should be raised")
	}
}

func TestBeginRefusals(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Controller, *state.Session, string) string
	}{
		{"unknown", func(_ *Controller, _ *state.Session, _ string) string { return "ghost" }},
		{"minimized", func(_ *Controller, s *state.Session, id string) string {
			s.Minimize(id)
			return id
		}},
		{"maximized", func(_ *Controller, s *state.Session, id string) string {
			s.Maximize(id)
			return id
		}},
		{"gesture active", func(c *Controller, s *state.Session, id string) string {
			other := s.Launch(apps.Clock, nil)
			c.BeginDrag(other, types.Point{X: 200, Y: 100})
			return id
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, s, id := newTestController(t)
			target := tt.setup(c, s, id)
			mode := c.Mode()

			if c.BeginDrag(target, types.Point{X: 150, Y: 60}) {
				t.Error("BeginDrag should refuse")
			}
			if c.BeginResize(target, types.EdgeSE, types.Point{X: 150, Y: 60}) {
				t.Error("BeginResize should refuse")
			}
			if c.Mode() != mode {
				t.Errorf("Mode changed to %s", c.Mode())
			}
		})
	}
}

func TestMaximizedWindowKeepsRestoreGeometry(t *testing.T) {
	c, s, id := newTestController(t)
	s.SetPosition(id, 100, 50)
	s.Maximize(id)

	if c.BeginDrag(id, types.Point{X: 400, Y: 40}) {
		c.Move(types.Point{X: 900, Y: 600})
		c.End()
		t.Fatal("BeginDrag should refuse a maximized window")
	}

	s.Maximize(id)
	w, _ := s.Window(id)
	if w.Position != (types.Point{X: 100, Y: 50}) {
		t.Errorf("restored Position = %+v, want {100 50}", w.Position)
	}
	if !c.BeginDrag(id, types.Point{X: 110, Y: 60}) {
		t.Error("BeginDrag should accept once un-maximized")
	}
}

func TestBeginResizeInvalidEdge(t *testing.T) {
	c, _, id := newTestController(t)
	if c.BeginResize(id, types.Edge("x"), types.Point{}) {
		t.Error("BeginResize should refuse an unknown edge")
	}
}

func TestResizeUsesDefaultSize(t *testing.T) {
	c, s, id := newTestController(t) // notes defaults to 700x500
	s.SetPosition(id, 100, 100)

	c.BeginResize(id, types.EdgeSE, types.Point{X: 800, Y: 600})
	c.Move(types.Point{X: 850, Y: 640})
	c.End()

	w, _ := s.Window(id)
	want := types.Rect{X: 100, Y: 100, Width: 750, Height: 540}
	if w.StoredRect() != want {
		t.Errorf("rect = %+v, want %+v", w.StoredRect(), want)
	}
}

func TestResizeWestKeepsRightEdge(t *testing.T) {
	for _, edge := range []types.Edge{types.EdgeW, types.EdgeSW, types.EdgeNW} {
		t.Run(edge.String(), func(t *testing.T) {
			c, s, id := newTestController(t)
			s.SetBounds(id, types.Rect{X: 400, Y: 300, Width: 500, Height: 400})

			c.BeginResize(id, edge, types.Point{X: 400, Y: 300})
			for _, dx := range []float64{-50, 120, 450, 1000, -10} {
				c.Move(types.Point{X: 400 + dx, Y: 300})
				w, _ := s.Window(id)
				r := w.StoredRect()
				if r.Right() != 900 {
					t.Errorf("dx=%v: right edge = %v, want 900", dx, r.Right())
				}
				if r.Width < 300 || r.Height < 200 {
					t.Errorf("dx=%v: size %vx%v below minimum", dx, r.Width, r.Height)
				}
			}
			c.End()
		})
	}
}

func TestResizeNorthKeepsBottomEdge(t *testing.T) {
	c, s, id := newTestController(t)
	s.SetBounds(id, types.Rect{X: 100, Y: 100, Width: 400, Height: 300})

	c.BeginResize(id, types.EdgeN, types.Point{X: 300, Y: 100})
	c.Move(types.Point{X: 300, Y: 500})

	w, _ := s.Window(id)
	if w.Size.Height != 200 || w.StoredRect().Bottom() != 400 {
		t.Errorf("rect = %+v, want height 200 with bottom 400", w.StoredRect())
	}
	if w.Size.Width != 400 {
		t.Errorf("north resize changed width to %v", w.Size.Width)
	}
}

func TestCloseMidGestureAborts(t *testing.T) {
	for _, mode := range []Mode{Dragging, Resizing} {
		t.Run(mode.String(), func(t *testing.T) {
			c, s, id := newTestController(t)
			if mode == Dragging {
				c.BeginDrag(id, types.Point{X: 150, Y: 60})
			} else {
				c.BeginResize(id, types.EdgeE, types.Point{X: 150, Y: 60})
			}

			s.Close(id)

			if c.Mode() != Idle {
				t.Fatalf("Mode = %s after close, want idle", c.Mode())
			}
			if s.SubscriberCount() != 0 {
				t.Error("abort should detach the subscription")
			}

			// A late move must not resurrect or touch anything
			c.Move(types.Point{X: 500, Y: 500})
			if s.Len() != 0 {
				t.Error("late move created a window")
			}

			// The controller accepts a new gesture afterwards
			next := s.Launch(apps.Clock, nil)
			if !c.BeginDrag(next, types.Point{X: 150, Y: 60}) {
				t.Error("controller stuck after abort")
			}
		})
	}
}

func TestCloseOtherWindowKeepsGesture(t *testing.T) {
	c, s, id := newTestController(t)
	other := s.Launch(apps.Clock, nil)

	c.BeginDrag(id, types.Point{X: 150, Y: 60})
	s.Close(other)

	if c.Active().WindowID != id || c.Mode() != Dragging {
		t.Errorf("gesture = %+v, want dragging %s", c.Active(), id)
	}
}

func TestEndWhileIdle(t *testing.T) {
	c, _, _ := newTestController(t)
	if c.End() {
		t.Error("End while idle should report false")
	}
}

func TestActive(t *testing.T) {
	c, _, id := newTestController(t)
	c.BeginResize(id, types.EdgeNE, types.Point{X: 100, Y: 50})

	g := c.Active()
	if g.Mode != Resizing || g.WindowID != id || g.Edge != types.EdgeNE {
		t.Errorf("Active = %+v", g)
	}
}
