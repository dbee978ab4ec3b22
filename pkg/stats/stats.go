// Package stats summarizes pathway datasets: category counts, fold-change
// distribution, the strongest pathways and the most connected ones.
package stats

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/pathway"
)

// DefaultTopN is the number of pathways listed in Summary.Top and Summary.Hubs.
const DefaultTopN = 10

// PageRank parameters.
const (
	damping   = 0.85
	tolerance = 1e-6
)

// Summary describes one dataset.
type Summary struct {
	Dataset     string                    `json:"dataset"`
	Total       int                       `json:"total"`
	Rejected    int                       `json:"rejected"`
	Significant int                       `json:"significant"`
	Counts      map[mondrian.Category]int `json:"counts"`

	// Fold-change distribution over records with a measured change.
	Measured int     `json:"measured"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`

	Top  []Entry `json:"top,omitempty"`
	Hubs []Hub   `json:"hubs,omitempty"`
}

// Up returns the number of up-regulated pathways.
func (s Summary) Up() int { return s.Counts[mondrian.Up] }

// Down returns the number of down-regulated pathways.
func (s Summary) Down() int { return s.Counts[mondrian.Down] }

// Entry is a pathway ranked by the magnitude of its fold change.
type Entry struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	FoldChange float64           `json:"wfc"`
	PValue     float64           `json:"pfdr"`
	Category   mondrian.Category `json:"category"`
}

// Hub is a pathway ranked by its crosstalk connectivity.
type Hub struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Degree      int     `json:"degree"`
	Betweenness float64 `json:"betweenness"`
	PageRank    float64 `json:"pagerank"`
}

// Summarize computes the statistics of ds. Relations are optional; when
// given, Hubs lists the topN most connected pathways. A topN of zero or
// less uses DefaultTopN.
func Summarize(ds *pathway.Dataset, th mondrian.Thresholds, rels []pathway.Relation, topN int) Summary {
	if topN <= 0 {
		topN = DefaultTopN
	}
	s := Summary{
		Dataset:  ds.Name,
		Total:    ds.Len(),
		Rejected: len(ds.Errors),
		Counts:   make(map[mondrian.Category]int, len(mondrian.Categories())),
	}
	for _, c := range mondrian.Categories() {
		s.Counts[c] = 0
	}

	var fcs []float64
	entries := make([]Entry, 0, ds.Len())
	for _, r := range ds.Records {
		c := th.Classify(r.FoldChange, r.PValue)
		s.Counts[c]++
		if r.PValue < th.Significance {
			s.Significant++
		}
		if r.FoldChange != 0 {
			fcs = append(fcs, r.FoldChange)
		}
		entries = append(entries, Entry{
			ID:         r.ID,
			Name:       r.DisplayName(),
			FoldChange: r.FoldChange,
			PValue:     r.PValue,
			Category:   c,
		})
	}

	s.Measured = len(fcs)
	if len(fcs) > 0 {
		slices.Sort(fcs)
		s.Mean = stat.Mean(fcs, nil)
		s.Median = median(fcs)
		s.Min, s.Max = fcs[0], fcs[len(fcs)-1]
		if len(fcs) > 1 {
			s.StdDev = stat.StdDev(fcs, nil)
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(math.Abs(b.FoldChange), math.Abs(a.FoldChange))
	})
	s.Top = entries[:min(topN, len(entries))]

	if len(rels) > 0 {
		name := func(id string) string {
			if r, ok := ds.Lookup(id); ok {
				return r.DisplayName()
			}
			return id
		}
		hubs := Hubs(rels, name)
		s.Hubs = hubs[:min(topN, len(hubs))]
	}
	return s
}

// Hubs ranks the pathways of a relation network by degree, then
// betweenness centrality, then ID. PageRank treats each relation as a link
// from its first to its second pathway. name may be nil.
func Hubs(rels []pathway.Relation, name func(id string) string) []Hub {
	ids := make(map[string]int64)
	var names []string
	node := func(id string) int64 {
		if n, ok := ids[id]; ok {
			return n
		}
		n := int64(len(names))
		ids[id] = n
		names = append(names, id)
		return n
	}

	ug := simple.NewUndirectedGraph()
	dg := simple.NewDirectedGraph()
	for _, r := range rels {
		if r.From == r.To {
			continue
		}
		f, t := node(r.From), node(r.To)
		for _, n := range []int64{f, t} {
			if ug.Node(n) == nil {
				ug.AddNode(simple.Node(n))
				dg.AddNode(simple.Node(n))
			}
		}
		ug.SetEdge(simple.Edge{F: simple.Node(f), T: simple.Node(t)})
		dg.SetEdge(simple.Edge{F: simple.Node(f), T: simple.Node(t)})
	}
	if len(names) == 0 {
		return nil
	}

	between := network.Betweenness(ug)
	rank := network.PageRank(dg, damping, tolerance)

	hubs := make([]Hub, len(names))
	for i, id := range names {
		n := int64(i)
		h := Hub{
			ID:          id,
			Name:        id,
			Degree:      ug.From(n).Len(),
			Betweenness: between[n],
			PageRank:    rank[n],
		}
		if name != nil {
			h.Name = name(id)
		}
		hubs[i] = h
	}
	slices.SortFunc(hubs, func(a, b Hub) int {
		if c := cmp.Compare(b.Degree, a.Degree); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Betweenness, a.Betweenness); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return hubs
}

// median returns the middle value of sorted xs, averaging the two middle
// values when the count is even.
func median(xs []float64) float64 {
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}
	return stat.Mean(xs[n/2-1:n/2+1], nil)
}
