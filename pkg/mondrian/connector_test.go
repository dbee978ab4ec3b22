package mondrian

import (
	"testing"

	"github.com/matzehuels/mondrian/pkg/pathway"
)

func TestConnectDirect(t *testing.T) {
	l, err := Build([]pathway.Record{rec("S", 2, 25, 25), rec("B", 2, 125, 125)},
		[]pathway.Relation{{From: "S", To: "B"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Connectors) != 1 {
		t.Fatalf("len(Connectors) = %d, want 1", len(l.Connectors))
	}
	c := l.Connectors[0]
	s, _ := l.Block("S")
	b, _ := l.Block("B")

	if c.Route != RouteDirect {
		t.Errorf("Route = %s, want direct", c.Route)
	}
	if c.Color != Red {
		t.Errorf("Color = %s, want red", c.Color)
	}
	if len(c.Segments) != 2 {
		t.Fatalf("len(Segments) = %d, want 2", len(c.Segments))
	}
	if got, want := c.Segments[0].A, s.Corners()[BottomRight].Point; got != want {
		t.Errorf("start = %v, want S bottom-right %v", got, want)
	}
	if got, want := c.Segments[1].B, b.Corners()[TopLeft].Point; got != want {
		t.Errorf("end = %v, want B top-left %v", got, want)
	}
	// Tiles are wider than tall, so the elbow farther from B's center is
	// reached horizontally first.
	if !c.Segments[0].Horizontal() || c.Segments[0].Dir != DirRight {
		t.Errorf("first segment = %+v, want left-to-right", c.Segments[0])
	}
	if c.Segments[1].Dir != DirDown {
		t.Errorf("second segment dir = %s, want %s", c.Segments[1].Dir, DirDown)
	}
	for _, s := range c.Segments {
		if s.Width != LineWidth || s.Kind != KindConnector {
			t.Errorf("segment %+v, want connector of width %v", s, LineWidth)
		}
	}
}

func TestConnectStraight(t *testing.T) {
	l, err := Build([]pathway.Record{rec("S", 2, 25, 25), rec("B", 2, 225, 25)},
		[]pathway.Relation{{From: "S", To: "B"}})
	if err != nil {
		t.Fatal(err)
	}
	c := l.Connectors[0]
	if len(c.Segments) != 1 {
		t.Fatalf("len(Segments) = %d, want 1: %+v", len(c.Segments), c.Segments)
	}
	s, _ := l.Block("S")
	b, _ := l.Block("B")
	if c.Segments[0].A != s.Corners()[TopRight].Point || c.Segments[0].B != b.Corners()[TopLeft].Point {
		t.Errorf("segment = %+v, want S top-right to B top-left", c.Segments[0])
	}
}

func TestConnectGutter(t *testing.T) {
	// S and B are minimal tiles on either side of a large tile in the same
	// row, so both L-shaped paths cut through it.
	l, err := Build([]pathway.Record{
		rec("S", 1, 25, 25),
		rec("X", 4, 75, 25),
		rec("B", 1, 125, 25),
	}, []pathway.Relation{{From: "S", To: "B"}})
	if err != nil {
		t.Fatal(err)
	}
	c := l.Connectors[0]
	if c.Route != RouteGutter {
		t.Fatalf("Route = %s, want gutter", c.Route)
	}
	if len(c.Segments) != 4 {
		t.Fatalf("len(Segments) = %d, want 4: %+v", len(c.Segments), c.Segments)
	}
	want := []Point{{27, 23}, {50, 23}, {50, 0}, {123, 0}, {123, 23}}
	for i, s := range c.Segments {
		if s.A != want[i] || s.B != want[i+1] {
			t.Errorf("segment %d = %v→%v, want %v→%v", i, s.A, s.B, want[i], want[i+1])
		}
	}
	for _, b := range l.Blocks {
		for _, s := range c.Segments {
			if s.Crosses(b.Rect) {
				t.Errorf("segment %+v crosses %s", s, b.ID)
			}
		}
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want int
	}{
		{"Single", []Point{{0, 0}}, 0},
		{"Repeated", []Point{{0, 0}, {0, 0}, {5, 0}}, 1},
		{"Colinear", []Point{{0, 0}, {5, 0}, {10, 0}}, 1},
		{"Elbow", []Point{{0, 0}, {5, 0}, {5, 5}}, 2},
		{"Staircase", []Point{{0, 0}, {5, 0}, {5, 5}, {10, 5}, {10, 10}}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := simplify(Red, tt.pts); len(got) != tt.want {
				t.Errorf("simplify(%v) = %d segments, want %d", tt.pts, len(got), tt.want)
			}
		})
	}
}
