// Package mouse scripts pointer gestures against the session daemon: a
// press, a run of interpolated moves, and a release.
package mouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/etherdesk/etherwm/internal/logging"
	"github.com/etherdesk/etherwm/internal/models"
	"github.com/etherdesk/etherwm/internal/types"
)

// DefaultSteps is the number of move events sent per gesture
const DefaultSteps = 10

// ErrNotStarted is returned when the daemon refuses to begin a gesture
var ErrNotStarted = errors.New("gesture not started")

// Pointer is the subset of the client used to drive gestures
type Pointer interface {
	PointerDown(ctx context.Context, id, mode string, edge types.Edge, p types.Point) (bool, error)
	PointerMove(ctx context.Context, p types.Point) error
	PointerUp(ctx context.Context) (bool, error)
}

// Drag presses on a window at from, moves to to, and releases
func Drag(ctx context.Context, p Pointer, windowID string, from, to types.Point, steps int) error {
	return gesture(ctx, p, windowID, models.PointerDrag, "", from, to, steps)
}

// ResizeEdge presses on a window's edge handle at from, moves to to, and
// releases
func ResizeEdge(ctx context.Context, p Pointer, windowID string, edge types.Edge, from, to types.Point, steps int) error {
	if !edge.Valid() {
		return fmt.Errorf("invalid edge %q", edge)
	}
	return gesture(ctx, p, windowID, models.PointerResize, edge, from, to, steps)
}

// Click presses and releases at a desktop point, letting the daemon
// hit-test whatever is under it
func Click(ctx context.Context, p Pointer, at types.Point) error {
	if _, err := p.PointerDown(ctx, "", models.PointerAuto, "", at); err != nil {
		return fmt.Errorf("pointer down failed: %w", err)
	}
	if _, err := p.PointerUp(ctx); err != nil {
		return fmt.Errorf("pointer up failed: %w", err)
	}
	return nil
}

func gesture(ctx context.Context, p Pointer, windowID, mode string, edge types.Edge, from, to types.Point, steps int) error {
	started, err := p.PointerDown(ctx, windowID, mode, edge, from)
	if err != nil {
		return fmt.Errorf("pointer down failed: %w", err)
	}
	if !started {
		return fmt.Errorf("%s %s: %w", mode, windowID, ErrNotStarted)
	}

	for _, pt := range Path(from, to, steps) {
		if err := p.PointerMove(ctx, pt); err != nil {
			// Release so the daemon is not left mid-gesture
			_, _ = p.PointerUp(context.WithoutCancel(ctx))
			return fmt.Errorf("pointer move failed: %w", err)
		}
	}

	ended, err := p.PointerUp(ctx)
	if err != nil {
		return fmt.Errorf("pointer up failed: %w", err)
	}
	if !ended {
		// The window closed mid-gesture and the daemon aborted it
		logging.Debug().Str("window", windowID).Str("mode", mode).Msg("gesture aborted before release")
	}
	return nil
}

// Path returns steps evenly spaced points from just past from up to and
// including to
func Path(from, to types.Point, steps int) []types.Point {
	if steps < 1 {
		steps = 1
	}
	delta := to.Sub(from)
	out := make([]types.Point, steps)
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		out[i-1] = types.Point{X: from.X + delta.X*f, Y: from.Y + delta.Y*f}
	}
	out[steps-1] = to
	return out
}
