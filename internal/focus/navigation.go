package focus

import (
	"math"

	"github.com/etherdesk/etherwm/internal/types"
)

// FindTargetWindow finds the window to focus when moving in a direction.
// Candidates are compared by their centers; the one with the lowest
// directional score wins, ties broken by id so results are stable.
// With wrapAround, a miss wraps to the most aligned window on the far edge.
func FindTargetWindow(currentID string, direction types.Direction, windowBounds map[string]types.Rect, wrapAround bool) (string, bool) {
	current, ok := windowBounds[currentID]
	if !ok {
		return "", false
	}
	from := current.Center()

	id, found := pick(currentID, windowBounds, func(to types.Point) (float64, bool) {
		if !isInDirection(from, to, direction) {
			return 0, false
		}
		return directionalScore(from, to, direction), true
	})
	if found || !wrapAround {
		return id, found
	}

	extent := centerExtent(windowBounds)
	return pick(currentID, windowBounds, func(to types.Point) (float64, bool) {
		if !extent.onFarEdge(to, direction) {
			return 0, false
		}
		return crossAxisDistance(from, to, direction), true
	})
}

// GetWindowInDirection returns the neighbor without wrap-around, or "".
func GetWindowInDirection(currentID string, direction types.Direction, windowBounds map[string]types.Rect) string {
	id, _ := FindTargetWindow(currentID, direction, windowBounds, false)
	return id
}

func pick(currentID string, windowBounds map[string]types.Rect, score func(types.Point) (float64, bool)) (string, bool) {
	best := ""
	bestScore := math.MaxFloat64
	for id, b := range windowBounds {
		if id == currentID {
			continue
		}
		s, ok := score(b.Center())
		if !ok {
			continue
		}
		if s < bestScore || (s == bestScore && id < best) {
			best, bestScore = id, s
		}
	}
	return best, best != ""
}

func isInDirection(from, to types.Point, direction types.Direction) bool {
	switch direction {
	case types.DirLeft:
		return to.X < from.X
	case types.DirRight:
		return to.X > from.X
	case types.DirUp:
		return to.Y < from.Y
	case types.DirDown:
		return to.Y > from.Y
	default:
		return false
	}
}

// directionalScore weights the cross axis double so windows in line with
// the movement beat closer windows off to the side.
func directionalScore(from, to types.Point, direction types.Direction) float64 {
	dx := math.Abs(to.X - from.X)
	dy := math.Abs(to.Y - from.Y)

	switch direction {
	case types.DirLeft, types.DirRight:
		return dx + dy*2
	case types.DirUp, types.DirDown:
		return dy + dx*2
	default:
		return math.Hypot(dx, dy)
	}
}

func crossAxisDistance(from, to types.Point, direction types.Direction) float64 {
	switch direction {
	case types.DirLeft, types.DirRight:
		return math.Abs(to.Y - from.Y)
	case types.DirUp, types.DirDown:
		return math.Abs(to.X - from.X)
	default:
		return math.Hypot(to.X-from.X, to.Y-from.Y)
	}
}

type extent struct {
	minX, maxX, minY, maxY float64
}

func centerExtent(windowBounds map[string]types.Rect) extent {
	e := extent{minX: math.MaxFloat64, maxX: -math.MaxFloat64, minY: math.MaxFloat64, maxY: -math.MaxFloat64}
	for _, b := range windowBounds {
		c := b.Center()
		e.minX = math.Min(e.minX, c.X)
		e.maxX = math.Max(e.maxX, c.X)
		e.minY = math.Min(e.minY, c.Y)
		e.maxY = math.Max(e.maxY, c.Y)
	}
	return e
}

// onFarEdge: within 10% of the extreme on the opposite side (1px when the
// windows sit in a single row or column).
func (e extent) onFarEdge(p types.Point, direction types.Direction) bool {
	xTol := math.Max((e.maxX-e.minX)*0.1, 1)
	yTol := math.Max((e.maxY-e.minY)*0.1, 1)

	switch direction {
	case types.DirLeft:
		return p.X >= e.maxX-xTol
	case types.DirRight:
		return p.X <= e.minX+xTol
	case types.DirUp:
		return p.Y >= e.maxY-yTol
	case types.DirDown:
		return p.Y <= e.minY+yTol
	default:
		return false
	}
}
