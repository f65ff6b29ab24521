package mouse

import (
	"context"
	"errors"
	"testing"

	"github.com/etherdesk/etherwm/internal/types"
)

type call struct {
	method string
	mode   string
	edge   types.Edge
	p      types.Point
}

type fakePointer struct {
	calls   []call
	refuse  bool
	moveErr error
}

func (f *fakePointer) PointerDown(_ context.Context, id, mode string, edge types.Edge, p types.Point) (bool, error) {
	f.calls = append(f.calls, call{method: "down", mode: mode, edge: edge, p: p})
	return !f.refuse, nil
}

func (f *fakePointer) PointerMove(_ context.Context, p types.Point) error {
	f.calls = append(f.calls, call{method: "move", p: p})
	return f.moveErr
}

func (f *fakePointer) PointerUp(_ context.Context) (bool, error) {
	f.calls = append(f.calls, call{method: "up"})
	return true, nil
}

func TestPath(t *testing.T) {
	got := Path(types.Point{X: 0, Y: 0}, types.Point{X: 100, Y: 50}, 4)
	want := []types.Point{{X: 25, Y: 12.5}, {X: 50, Y: 25}, {X: 75, Y: 37.5}, {X: 100, Y: 50}}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}

	if pts := Path(types.Point{}, types.Point{X: 3, Y: 3}, 0); len(pts) != 1 || pts[0] != (types.Point{X: 3, Y: 3}) {
		t.Errorf("zero steps = %v, want a single point at the target", pts)
	}
}

func TestDrag(t *testing.T) {
	f := &fakePointer{}
	err := Drag(context.Background(), f, "notes-1", types.Point{X: 150, Y: 110}, types.Point{X: 290, Y: 250}, 2)
	if err != nil {
		t.Fatalf("Drag() error = %v", err)
	}

	if len(f.calls) != 4 {
		t.Fatalf("got %d calls, want 4", len(f.calls))
	}
	if f.calls[0].method != "down" || f.calls[0].mode != "drag" {
		t.Errorf("first call = %+v", f.calls[0])
	}
	if f.calls[2].p != (types.Point{X: 290, Y: 250}) {
		t.Errorf("last move = %v", f.calls[2].p)
	}
	if f.calls[3].method != "up" {
		t.Errorf("last call = %+v, want up", f.calls[3])
	}
}

func TestResizeEdge(t *testing.T) {
	f := &fakePointer{}
	err := ResizeEdge(context.Background(), f, "notes-1", types.EdgeSE, types.Point{X: 10, Y: 10}, types.Point{X: 60, Y: 60}, 1)
	if err != nil {
		t.Fatalf("ResizeEdge() error = %v", err)
	}
	if f.calls[0].mode != "resize" || f.calls[0].edge != types.EdgeSE {
		t.Errorf("down call = %+v", f.calls[0])
	}

	if err := ResizeEdge(context.Background(), f, "notes-1", "middle", types.Point{}, types.Point{}, 1); err == nil {
		t.Error("invalid edge should fail")
	}
}

func TestGestureRefused(t *testing.T) {
	f := &fakePointer{refuse: true}
	err := Drag(context.Background(), f, "gone", types.Point{}, types.Point{X: 1}, 3)
	if !errors.Is(err, ErrNotStarted) {
		t.Fatalf("error = %v, want ErrNotStarted", err)
	}
	if len(f.calls) != 1 {
		t.Errorf("got %d calls after refusal, want 1", len(f.calls))
	}
}

func TestGestureReleasesOnMoveError(t *testing.T) {
	f := &fakePointer{moveErr: errors.New("connection reset")}
	if err := Drag(context.Background(), f, "notes-1", types.Point{}, types.Point{X: 10}, 5); err == nil {
		t.Fatal("expected move error")
	}
	last := f.calls[len(f.calls)-1]
	if last.method != "up" {
		t.Errorf("last call = %q, want up", last.method)
	}
}

func TestClick(t *testing.T) {
	f := &fakePointer{}
	if err := Click(context.Background(), f, types.Point{X: 400, Y: 70}); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if len(f.calls) != 2 || f.calls[0].mode != "auto" || f.calls[1].method != "up" {
		t.Errorf("calls = %+v", f.calls)
	}
}
