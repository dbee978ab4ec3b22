package network

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/pathway"
)

func testLayout(t *testing.T) mondrian.Layout {
	t.Helper()
	recs := []pathway.Record{
		{ID: "WAG000001", Name: "Glycolysis", FoldChange: 2, PValue: 0.001, X: 25, Y: 25},
		{ID: "WAG000002", Name: "Apoptosis", FoldChange: 2.5, PValue: 0.001, X: 225, Y: 225},
		{ID: "WAG000003", Name: "Wnt", FoldChange: -2, PValue: 0.001, X: 425, Y: 25},
		{ID: "WAG000004", Name: "Lonely", FoldChange: 0.7, PValue: 0.01, X: 825, Y: 825},
	}
	rels := []pathway.Relation{
		{From: "WAG000001", To: "WAG000002"},
		{From: "WAG000002", To: "WAG000003"},
	}
	l, err := mondrian.Build(recs, rels)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testLayout(t), Options{})

	if !strings.Contains(dot, "graph G") {
		t.Error("ToDOT() output missing graph declaration")
	}
	for _, want := range []string{
		`"WAG000001" [label="0001"`,
		`fillcolor="#E70503"`,
		`fillcolor="#0300AD"`,
		`"WAG000001" -- "WAG000002" [color="#E70503"]`,
		`"WAG000002" -- "WAG000003" [color="#FDDE06"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s", want)
		}
	}
	if strings.Contains(dot, "WAG000004") {
		t.Error("ToDOT() included a pathway without relations")
	}
}

func TestToDOT_Options(t *testing.T) {
	dot := ToDOT(testLayout(t), Options{All: true, Detailed: true})
	if !strings.Contains(dot, `"WAG000004"`) {
		t.Error("ToDOT(All) missing isolated pathway")
	}
	if !strings.Contains(dot, `Glycolysis\nwFC 2`) {
		t.Errorf("ToDOT(Detailed) missing detailed label:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.HasPrefix(got, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if plain := []byte("<svg></svg>"); string(normalizeViewBox(plain)) != "<svg></svg>" {
		t.Error("normalizeViewBox() changed an SVG without viewBox")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testLayout(t), Options{}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() did not return SVG")
	}
}
