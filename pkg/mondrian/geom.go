package mondrian

import "math"

// Line widths in canvas units.
const (
	LineWidth     = 5.0
	ThinLineWidth = 1.0
)

// adjust is half the outline width: outline strokes are centered on tile
// edges and reach this far beyond them.
const adjust = LineWidth / 2

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Manhattan returns the L1 distance between p and q.
func (p Point) Manhattan(q Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

// Rect is an axis-aligned rectangle. Top is less than Bottom.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Width returns the horizontal span of r.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of r.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Area returns Width × Height.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Expand grows r by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// Contains reports whether o lies within r (edges inclusive).
func (r Rect) Contains(o Rect) bool {
	return o.Left >= r.Left && o.Right <= r.Right && o.Top >= r.Top && o.Bottom <= r.Bottom
}

// Overlaps reports whether the interiors of r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Direction is the drawing direction of a line.
type Direction string

const (
	DirRight Direction = "left_to_right"
	DirLeft  Direction = "right_to_left"
	DirDown  Direction = "up_to_down"
	DirUp    Direction = "down_to_up"
)

// direction returns the direction from a to b of an axis-aligned segment.
func direction(a, b Point) Direction {
	if a.X == b.X {
		if a.Y <= b.Y {
			return DirDown
		}
		return DirUp
	}
	if a.X <= b.X {
		return DirRight
	}
	return DirLeft
}

// LineKind distinguishes the roles lines play on a map.
type LineKind string

const (
	KindBorder    LineKind = "border"
	KindGrid      LineKind = "grid"
	KindOutline   LineKind = "outline"
	KindConnector LineKind = "connector"
)

// Line is a straight, axis-aligned stroke.
type Line struct {
	A     Point     `json:"a"`
	B     Point     `json:"b"`
	Dir   Direction `json:"dir"`
	Color Color     `json:"color"`
	Width float64   `json:"width"`
	Kind  LineKind  `json:"kind"`
}

func newLine(a, b Point, c Color, width float64, kind LineKind) Line {
	return Line{A: a, B: b, Dir: direction(a, b), Color: c, Width: width, Kind: kind}
}

// Length returns the length of the line.
func (l Line) Length() float64 { return l.A.Dist(l.B) }

// Horizontal reports whether the line runs along the x axis.
func (l Line) Horizontal() bool { return l.A.Y == l.B.Y }

// Crosses reports whether the line passes through the interior of r.
// Running along an edge of r does not count.
func (l Line) Crosses(r Rect) bool {
	if l.Horizontal() {
		x1, x2 := math.Min(l.A.X, l.B.X), math.Max(l.A.X, l.B.X)
		return l.A.Y > r.Top && l.A.Y < r.Bottom && math.Max(x1, r.Left) < math.Min(x2, r.Right)
	}
	y1, y2 := math.Min(l.A.Y, l.B.Y), math.Max(l.A.Y, l.B.Y)
	return l.A.X > r.Left && l.A.X < r.Right && math.Max(y1, r.Top) < math.Min(y2, r.Bottom)
}

// CornerPos identifies one of the four corners of a tile.
type CornerPos int

const (
	TopLeft CornerPos = iota
	TopRight
	BottomLeft
	BottomRight
)

// String returns the corner name.
func (p CornerPos) String() string {
	switch p {
	case TopLeft:
		return "top_left"
	case TopRight:
		return "top_right"
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	}
	return "unknown"
}

// Corner is a tile corner used as a connector anchor.
type Corner struct {
	Point
	Pos CornerPos
}
