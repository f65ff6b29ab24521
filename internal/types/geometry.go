package types

// Point represents a 2D coordinate in desktop space
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p minus other
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Add returns p plus other
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Size is a content box dimension. The zero Size means "use the app default".
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsZero reports whether s is the 0x0 default-size sentinel
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Rect represents pixel bounds on the desktop
type Rect struct {
	X      float64 `json:"x"`      // Left edge
	Y      float64 `json:"y"`      // Top edge
	Width  float64 `json:"width"`  // Width in pixels
	Height float64 `json:"height"` // Height in pixels
}

// NewRect builds a Rect from a position and a size
func NewRect(pos Point, size Size) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// Origin returns the top-left corner
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rect dimensions
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Center returns the center point of a Rect
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains checks if a point is inside the rect (edges inclusive)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() &&
		p.Y >= r.Y && p.Y <= r.Bottom()
}

// Overlap returns the area of intersection between two Rects
func (r Rect) Overlap(other Rect) float64 {
	left := max(r.X, other.X)
	right := min(r.Right(), other.Right())
	top := max(r.Y, other.Y)
	bottom := min(r.Bottom(), other.Bottom())

	if left >= right || top >= bottom {
		return 0
	}
	return (right - left) * (bottom - top)
}

// Intersects reports whether the two rects share any interior area
func (r Rect) Intersects(other Rect) bool {
	return r.Overlap(other) > 0
}

// Expand grows the rect by margin on all four sides
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}
