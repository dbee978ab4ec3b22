package mondrian

import (
	"math"
	"testing"

	"github.com/matzehuels/mondrian/pkg/pathway"
)

func TestGridLinesSingleTile(t *testing.T) {
	l, err := Build([]pathway.Record{rec("A", 4, 525, 525)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	tile := l.Blocks[0].Rect
	if math.Abs(tile.Left-505) > 1e-6 || math.Abs(tile.Top-510) > 1e-6 || math.Abs(tile.Right-545) > 1e-6 || math.Abs(tile.Bottom-540) > 1e-6 {
		t.Fatalf("tile = %+v, want 505,510 to 545,540", tile)
	}

	x1, x2, y1, y2 := tile.Left, tile.Right, tile.Top, tile.Bottom
	want := []Line{
		{A: Point{x1, 0}, B: Point{x1, y1}},
		{A: Point{x1, y2}, B: Point{x1, 1000}},
		{A: Point{x2, 0}, B: Point{x2, y1}},
		{A: Point{x2, y2}, B: Point{x2, 1000}},
		{A: Point{0, y1}, B: Point{x1, y1}},
		{A: Point{x2, y1}, B: Point{1000, y1}},
		{A: Point{0, y2}, B: Point{x1, y2}},
		{A: Point{x2, y2}, B: Point{1000, y2}},
	}
	if len(l.GridLines) != len(want) {
		t.Fatalf("len(GridLines) = %d, want %d: %+v", len(l.GridLines), len(want), l.GridLines)
	}
	for i, w := range want {
		got := l.GridLines[i]
		if got.A != w.A || got.B != w.B {
			t.Errorf("GridLines[%d] = %v→%v, want %v→%v", i, got.A, got.B, w.A, w.B)
		}
		if got.Color != LightGray || got.Width != ThinLineWidth || got.Kind != KindGrid {
			t.Errorf("GridLines[%d] style = %s/%v/%s", i, got.Color, got.Width, got.Kind)
		}
	}
}

func TestFree(t *testing.T) {
	tests := []struct {
		name string
		hits []span
		want []span
	}{
		{"None", nil, []span{{0, 100}}},
		{"Middle", []span{{40, 60}}, []span{{0, 40}, {60, 100}}},
		{"NarrowGap", []span{{10, 20}, {25, 40}}, []span{{0, 10}, {40, 100}}},
		{"WideGap", []span{{60, 80}, {10, 20}}, []span{{0, 10}, {20, 60}, {80, 100}}},
		{"TouchingEdges", []span{{0, 20}, {80, 100}}, []span{{20, 80}}},
		{"Overlapping", []span{{10, 30}, {20, 50}}, []span{{0, 10}, {50, 100}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := free(tt.hits, 0, 100)
			if len(got) != len(tt.want) {
				t.Fatalf("free(%v) = %v, want %v", tt.hits, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("free(%v)[%d] = %v, want %v", tt.hits, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBorderLines(t *testing.T) {
	lines := BorderLines(Rect{Right: 1000, Bottom: 1000})
	if len(lines) != 4 {
		t.Fatalf("len = %d, want 4", len(lines))
	}
	dirs := []Direction{DirRight, DirDown, DirLeft, DirUp}
	for i, l := range lines {
		if l.Dir != dirs[i] || l.Color != Gray || l.Width != ThinLineWidth {
			t.Errorf("border %d = %+v", i, l)
		}
	}
}

func TestBlockOutline(t *testing.T) {
	b := Block{Rect: Rect{Left: 10, Top: 10, Right: 40, Bottom: 30}}
	out := b.Outline()
	if len(out) != 4 {
		t.Fatalf("len(Outline()) = %d, want 4", len(out))
	}
	for _, l := range out {
		if l.Color != Black || l.Width != LineWidth {
			t.Errorf("outline %+v, want black width %v", l, LineWidth)
		}
	}
	if got := b.Bounds(); got != (Rect{7.5, 7.5, 42.5, 32.5}) {
		t.Errorf("Bounds() = %+v", got)
	}
}
