package sink

import (
	"bytes"
	"cmp"
	"encoding/csv"
	"maps"
	"slices"
	"strconv"

	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/pathway"
)

// Extra CSV columns describing the computed shape of each row.
const (
	ColCategory = "category"
	ColColor    = "color"
	ColArea     = "area"
	ColCellCol  = "cell_col"
	ColCellRow  = "cell_row"
	ColLeft     = "left"
	ColTop      = "top"
	ColRight    = "right"
	ColBottom   = "bottom"
)

// CSVHeader is the fixed part of the header written by RenderCSV. The
// leading columns are the dataset input columns, so the output loads back as
// a dataset.
var CSVHeader = []string{
	pathway.ColID, pathway.ColName, pathway.ColFoldChange, pathway.ColPValue, pathway.ColX, pathway.ColY,
	ColCategory, ColColor, ColArea, ColCellCol, ColCellRow, ColLeft, ColTop, ColRight, ColBottom,
	pathway.ColDescription, pathway.ColOntology, pathway.ColDisease,
}

// RenderCSV writes one row per block, ordered by source row then ID.
// Uninterpreted input columns follow CSVHeader in name order; a block
// without a value for one of them leaves the cell empty.
func RenderCSV(l mondrian.Layout) ([]byte, error) {
	blocks := slices.Clone(l.Blocks)
	slices.SortStableFunc(blocks, func(a, b mondrian.Block) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	extra := extraColumns(blocks)
	if err := w.Write(append(slices.Clone(CSVHeader), extra...)); err != nil {
		return nil, err
	}
	for _, b := range blocks {
		row := []string{
			b.ID, b.Name, ftoa(b.FoldChange), ftoa(b.PValue), ftoa(b.X), ftoa(b.Y),
			string(b.Category), string(b.Color), ftoa(b.Area),
			strconv.Itoa(b.Cell.Col), strconv.Itoa(b.Cell.Row),
			ftoa(b.Rect.Left), ftoa(b.Rect.Top), ftoa(b.Rect.Right), ftoa(b.Rect.Bottom),
			b.Description, b.Ontology, b.Disease,
		}
		for _, k := range extra {
			row = append(row, b.Extra[k])
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// extraColumns returns the sorted names of the blocks' extra columns.
// Names already in CSVHeader are left out, so a reloaded output keeps its
// computed columns instead of the stale copies.
func extraColumns(blocks []mondrian.Block) []string {
	seen := make(map[string]bool)
	for _, b := range blocks {
		for k := range b.Extra {
			if !slices.Contains(CSVHeader, k) {
				seen[k] = true
			}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
