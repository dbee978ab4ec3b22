package mondrian

import "math"

// Route names how a connector was laid out.
type Route string

const (
	// RouteDirect is the L-shaped (or straight) path through the preferred elbow.
	RouteDirect Route = "direct"
	// RouteAlternate uses the other elbow because the preferred one crossed a tile.
	RouteAlternate Route = "alternate"
	// RouteGutter runs along cell boundaries, which tiles never reach.
	RouteGutter Route = "gutter"
)

// Connector is an orthogonal path between two related blocks.
type Connector struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Color    Color  `json:"color"`
	Route    Route  `json:"route"`
	Segments []Line `json:"segments"`
}

// Length returns the total length of the path.
func (c Connector) Length() float64 {
	var n float64
	for _, s := range c.Segments {
		n += s.Length()
	}
	return n
}

// router routes connectors around a fixed set of tiles.
type router struct {
	grid  GridSystem
	tiles []Rect
}

// connect routes a connector from s to b.
//
// The path starts at the corner of s closest (Manhattan) to b's center. It
// ends at the corner of b that lies outside both the horizontal and vertical
// span of s and is closest to s's center; its elbow is whichever of the two
// L-shaped candidates lies farther from b's center. When every corner of b
// shares a span with s, the path ends at b's corner closest to s's center
// and the elbow is the candidate farther from s's center.
//
// A path that would pass through any tile tries the other elbow, and then
// falls back to a route along cell boundaries.
func (r router) connect(s, b Block) Connector {
	c := Connector{From: s.ID, To: b.ID, Color: ConnectorColor(s.Category, b.Category)}

	cp1 := closestCorner(s, b.Center())
	cp2, ok := outsideCorner(s, b)
	ref := b.Center()
	if !ok {
		cp2 = closestCorner(b, s.Center())
		ref = s.Center()
	}

	elbow, other := elbows(cp1.Point, cp2.Point, ref)
	if segs := r.path(c.Color, cp1.Point, elbow, cp2.Point); r.clear(segs) {
		c.Route, c.Segments = RouteDirect, segs
		return c
	}
	if segs := r.path(c.Color, cp1.Point, other, cp2.Point); r.clear(segs) {
		c.Route, c.Segments = RouteAlternate, segs
		return c
	}
	c.Route, c.Segments = RouteGutter, r.gutter(c.Color, s, b, cp1.Point, cp2.Point)
	return c
}

// closestCorner returns the corner of blk with the smallest Manhattan
// distance to p. Corners are tried clockwise from the top left.
func closestCorner(blk Block, p Point) Corner {
	cs := blk.Corners()
	best := cs[TopLeft]
	for _, c := range []Corner{cs[TopRight], cs[BottomRight], cs[BottomLeft]} {
		if c.Manhattan(p) < best.Manhattan(p) {
			best = c
		}
	}
	return best
}

// outsideCorner returns the corner of b outside both spans of s that is
// closest (Euclidean) to s's center.
func outsideCorner(s, b Block) (Corner, bool) {
	var (
		best  Corner
		bestD = math.Inf(1)
		found bool
	)
	ctr := s.Center()
	for _, c := range b.Corners() {
		outX := c.X < s.Rect.Left || c.X > s.Rect.Right
		outY := c.Y < s.Rect.Top || c.Y > s.Rect.Bottom
		if !outX || !outY {
			continue
		}
		if d := c.Dist(ctr); d < bestD {
			best, bestD, found = c, d, true
		}
	}
	return best, found
}

// elbows returns the two L-path elbows between a and b, the one farther from
// ref first. Ties prefer the vertical-first elbow.
func elbows(a, b, ref Point) (Point, Point) {
	p := Point{X: a.X, Y: b.Y}
	q := Point{X: b.X, Y: a.Y}
	if p.Dist(ref) > q.Dist(ref) {
		return p, q
	}
	return q, p
}

// path builds the segments a → elbow → b, dropping empty ones.
func (r router) path(c Color, pts ...Point) []Line {
	return simplify(c, pts)
}

// clear reports whether no segment passes through a tile.
func (r router) clear(segs []Line) bool {
	for _, s := range segs {
		for _, t := range r.tiles {
			if s.Crosses(t) {
				return false
			}
		}
	}
	return true
}

// gutter routes from cp1 across s's cell to the cell boundary facing b,
// along that boundary to the horizontal boundary of b's cell facing s, then
// along it to above or below cp2 and into cp2.
func (r router) gutter(c Color, s, b Block, cp1, cp2 Point) []Line {
	sc := r.grid.CellRect(s.Cell)
	bc := r.grid.CellRect(b.Cell)

	gx := sc.Right
	if b.Center().X < s.Center().X {
		gx = sc.Left
	}
	gy := bc.Top
	if s.Center().Y > b.Center().Y {
		gy = bc.Bottom
	}

	return simplify(c, []Point{
		cp1,
		{X: gx, Y: cp1.Y},
		{X: gx, Y: gy},
		{X: cp2.X, Y: gy},
		cp2,
	})
}

// simplify joins consecutive points into connector segments, skipping
// repeated points and merging colinear runs.
func simplify(c Color, pts []Point) []Line {
	var kept []Point
	for _, p := range pts {
		if n := len(kept); n > 0 && kept[n-1] == p {
			continue
		}
		if n := len(kept); n >= 2 && colinear(kept[n-2], kept[n-1], p) {
			kept[n-1] = p
			continue
		}
		kept = append(kept, p)
	}
	segs := make([]Line, 0, len(kept))
	for i := 0; i+1 < len(kept); i++ {
		segs = append(segs, newLine(kept[i], kept[i+1], c, LineWidth, KindConnector))
	}
	return segs
}

func colinear(a, b, c Point) bool {
	return (a.X == b.X && b.X == c.X) || (a.Y == b.Y && b.Y == c.Y)
}
