package sink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/pathway"
	"github.com/matzehuels/mondrian/pkg/render"
	"github.com/matzehuels/mondrian/pkg/render/styles"
)

const sampleCSV = `GS_ID,wFC,pFDR,x,y,NAME,Description
WAG002659,1.1057,3.5e-17,360,220,Glycolysis,Sugar & energy
WAG002805,-1.42,0.0001,610,480,Apoptosis,
WAG000345,0.72,0.02,120,810,TCA cycle,
WAG001180,0.2,0.01,880,130,Wnt signaling,
WAG002210,2.5,0.3,505,505,Notch,
WAG004000,,0.01,45,45,Unmeasured,
`

func sampleLayout(t *testing.T) mondrian.Layout {
	t.Helper()
	ds, err := pathway.ReadCSV(strings.NewReader(sampleCSV), "sample")
	if err != nil {
		t.Fatal(err)
	}
	rels := []pathway.Relation{{From: "WAG002659", To: "WAG002805"}, {From: "WAG000345", To: "WAG001180"}}
	l, err := mondrian.Build(ds.Records, rels, mondrian.WithTitle("Sample"))
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRenderSVG(t *testing.T) {
	l := sampleLayout(t)

	tests := []struct {
		name    string
		opts    []SVGOption
		want    []string
		notWant []string
	}{
		{
			name: "Default",
			want: []string{`width="600"`, `<text class="title"`, ">Sample</text>", `class="outline"`, `class="connector"`, `fill="#E70503"`},
			notWant: []string{`class="label"`, "<title>"},
		},
		{
			name: "Maximized",
			opts: []SVGOption{WithMaximize(), WithTitle("Override")},
			want: []string{`width="1000"`, ">Override</text>"},
		},
		{
			name: "IDsAndTooltips",
			opts: []SVGOption{WithIDs(), WithTooltips()},
			want: []string{`class="label"`, ">2659</text>", "<title>Glycolysis (WAG002659)", "Sugar &amp; energy"},
		},
		{
			name:    "Flat",
			opts:    []SVGOption{WithStyle(styles.Flat{})},
			want:    []string{`class="grid"`},
			notWant: []string{`class="outline"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(l, tt.opts...))
			if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
				t.Fatalf("not an SVG document: %.80s", svg)
			}
			for _, w := range tt.want {
				if !strings.Contains(svg, w) {
					t.Errorf("RenderSVG() missing %s", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(svg, w) {
					t.Errorf("RenderSVG() contains %s", w)
				}
			}
		})
	}
}

func TestRenderCSVRoundTrip(t *testing.T) {
	l := sampleLayout(t)
	data, err := RenderCSV(l)
	if err != nil {
		t.Fatal(err)
	}

	ds, err := pathway.ReadCSV(bytes.NewReader(data), "roundtrip")
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Errors) != 0 {
		t.Fatalf("reloaded CSV has row errors: %v", ds.Errors)
	}
	again, err := mondrian.Build(ds.Records, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Blocks) != len(l.Blocks) {
		t.Fatalf("reloaded %d blocks, want %d", len(again.Blocks), len(l.Blocks))
	}
	for _, b := range l.Blocks {
		got, ok := again.Block(b.ID)
		if !ok {
			t.Errorf("block %s lost in round trip", b.ID)
			continue
		}
		if got.Category != b.Category {
			t.Errorf("block %s category = %s, want %s", b.ID, got.Category, b.Category)
		}
		rec, _ := ds.Lookup(b.ID)
		if rec.Extra[ColCategory] != string(b.Category) {
			t.Errorf("row %s category column = %q, want %s", b.ID, rec.Extra[ColCategory], b.Category)
		}
	}
}

func TestRenderCSVExtraColumns(t *testing.T) {
	const in = `GS_ID,wFC,pFDR,x,y,NAME,Tissue,category
WAG002659,1.1057,3.5e-17,360,220,Glycolysis,liver,stale
WAG002805,-1.42,0.0001,610,480,Apoptosis,,stale
`
	ds, err := pathway.ReadCSV(strings.NewReader(in), "extra")
	if err != nil {
		t.Fatal(err)
	}
	l, err := mondrian.Build(ds.Records, nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := RenderCSV(l)
	if err != nil {
		t.Fatal(err)
	}

	header := strings.SplitN(string(data), "\n", 2)[0]
	if !strings.HasSuffix(header, ","+pathway.ColDisease+",Tissue") {
		t.Errorf("header = %q, want Tissue as the last column", header)
	}
	if strings.Count(header, ColCategory) != 1 {
		t.Errorf("header = %q, want a single category column", header)
	}

	again, err := pathway.ReadCSV(bytes.NewReader(data), "roundtrip")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		id, tissue, category string
	}{
		{"WAG002659", "liver", string(mondrian.Up)},
		{"WAG002805", "", string(mondrian.Down)},
	}
	for _, tt := range tests {
		rec, ok := again.Lookup(tt.id)
		if !ok {
			t.Fatalf("row %s lost in round trip", tt.id)
		}
		if rec.Extra["Tissue"] != tt.tissue {
			t.Errorf("row %s Tissue = %q, want %q", tt.id, rec.Extra["Tissue"], tt.tissue)
		}
		if rec.Extra[ColCategory] != tt.category {
			t.Errorf("row %s category = %q, want %q", tt.id, rec.Extra[ColCategory], tt.category)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	l := sampleLayout(t)
	data, err := RenderJSON(l)
	if err != nil {
		t.Fatal(err)
	}
	got, err := mondrian.UnmarshalLayout(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Blocks) != len(l.Blocks) || len(got.Connectors) != len(l.Connectors) {
		t.Errorf("round trip = %d blocks %d connectors", len(got.Blocks), len(got.Connectors))
	}

	compact, err := RenderJSON(l, WithJSONCompact(), WithJSONBlocksOnly())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(compact, []byte("\n")) || bytes.Contains(compact, []byte(`"grid_lines"`)) {
		t.Errorf("compact blocks-only JSON = %.120s", compact)
	}
	if len(l.Connectors) == 0 || len(l.Connectors[0].Segments) == 0 {
		t.Error("WithJSONBlocksOnly modified the caller's layout")
	}
}

func TestRenderCanvas(t *testing.T) {
	l := sampleLayout(t)
	other := l
	other.Title = "Second"

	svg, err := RenderCanvas([]mondrian.Layout{l, other}, 1, 2, WithTitle("Comparison"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(svg)
	if got := strings.Count(s, `class="map"`); got != 2 {
		t.Errorf("canvas has %d maps, want 2", got)
	}
	for _, w := range []string{`width="1200"`, ">Comparison</text>", ">Sample</text>", ">Second</text>"} {
		if !strings.Contains(s, w) {
			t.Errorf("RenderCanvas() missing %s", w)
		}
	}

	tests := []struct {
		name       string
		maps       int
		rows, cols int
		code       apperrors.Code
	}{
		{"NoRows", 1, 0, 2, apperrors.ErrCodeInvalidInput},
		{"TooMany", 3, 1, 2, apperrors.ErrCodeInvalidInput},
		{"Empty", 0, 2, 2, apperrors.ErrCodeInvalidInput},
		{"Huge", 1, 10, 10, apperrors.ErrCodeTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maps := make([]mondrian.Layout, tt.maps)
			for i := range maps {
				maps[i] = l
			}
			_, err := RenderCanvas(maps, tt.rows, tt.cols)
			if !apperrors.Is(err, tt.code) {
				t.Errorf("RenderCanvas() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderLegend(t *testing.T) {
	svg := string(RenderLegend(mondrian.DefaultThresholds()))
	for _, c := range mondrian.Categories() {
		if !strings.Contains(svg, string(c.Color())) {
			t.Errorf("legend missing color %s", c.Color())
		}
	}
	for _, w := range []string{"Up-regulated (FC ≥ 1)", "Non-significant (p ≥ 0.05)", "Other crosstalk"} {
		if !strings.Contains(svg, w) {
			t.Errorf("legend missing %q", w)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := RenderPNG(context.Background(), sampleLayout(t), WithScale(1))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("RenderPNG() did not return a PNG")
	}
}
