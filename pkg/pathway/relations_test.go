package pathway

import (
	"reflect"
	"strings"
	"testing"
)

func TestReadRelations(t *testing.T) {
	input := "GS_A_ID,GS_B_ID,weight\nA,B,1\nB,C,2\n,C,3\nC,D\n"
	rels, err := ReadRelations(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRelations error: %v", err)
	}
	want := []Relation{{"A", "B"}, {"B", "C"}, {"C", "D"}}
	if !reflect.DeepEqual(rels, want) {
		t.Errorf("ReadRelations() = %v, want %v", rels, want)
	}
}

func TestReadRelationsMissingColumn(t *testing.T) {
	if _, err := ReadRelations(strings.NewReader("GS_A_ID,other\nA,B\n")); err == nil {
		t.Error("ReadRelations should fail without GS_B_ID")
	}
}

func TestSelectRelations(t *testing.T) {
	known := map[string]bool{"A": true, "B": true, "C": true, "D": true, "E": true}
	isKnown := func(id string) bool { return known[id] }

	tests := []struct {
		name string
		in   []Relation
		max  int
		want []Relation
	}{
		{
			name: "reverse pair deduped",
			in:   []Relation{{"A", "B"}, {"B", "A"}},
			want: []Relation{{"A", "B"}},
		},
		{
			name: "exact duplicate deduped",
			in:   []Relation{{"A", "B"}, {"A", "B"}},
			want: []Relation{{"A", "B"}},
		},
		{
			name: "limit per pathway",
			in:   []Relation{{"A", "B"}, {"A", "C"}, {"A", "D"}, {"B", "C"}},
			want: []Relation{{"A", "B"}, {"A", "C"}, {"B", "C"}},
		},
		{
			name: "custom limit",
			in:   []Relation{{"A", "B"}, {"A", "C"}},
			max:  1,
			want: []Relation{{"A", "B"}},
		},
		{
			name: "unknown and self loops dropped",
			in:   []Relation{{"A", "Z"}, {"E", "E"}, {"D", "E"}},
			want: []Relation{{"D", "E"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectRelations(tt.in, isKnown, tt.max)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SelectRelations() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInfoEnrich(t *testing.T) {
	info, err := ReadInfo(strings.NewReader(`{
		"A": {"NAME": "Apoptosis", "Description": "cell death", "Pathway Ontology": "PW:1", "Disease": "cancer"},
		"Z": {"NAME": "unused"}
	}`))
	if err != nil {
		t.Fatalf("ReadInfo error: %v", err)
	}

	ds := &Dataset{Records: []Record{
		{ID: "A", Name: "raw", Description: "kept"},
		{ID: "B", Name: "b"},
	}}
	if n := info.Enrich(ds); n != 1 {
		t.Errorf("Enrich() = %d, want 1", n)
	}

	a, _ := ds.Lookup("A")
	if a.Name != "Apoptosis" || a.Description != "kept" || a.Ontology != "PW:1" || a.Disease != "cancer" {
		t.Errorf("enriched record = %+v", a)
	}
	b, _ := ds.Lookup("B")
	if b.Name != "b" {
		t.Errorf("unmatched record changed: %+v", b)
	}
}

func TestReadInfoInvalid(t *testing.T) {
	if _, err := ReadInfo(strings.NewReader("not json")); err == nil {
		t.Error("ReadInfo should fail on invalid JSON")
	}
}
