package pathway

import (
	"cmp"
	"slices"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
)

// Column names of the dataset CSV format.
const (
	ColID          = "GS_ID"
	ColFoldChange  = "wFC"
	ColPValue      = "pFDR"
	ColX           = "x"
	ColY           = "y"
	ColName        = "NAME"
	ColDescription = "Description"
	ColOntology    = "Ontology"
	ColDisease     = "Disease"
)

// RequiredColumns lists the columns every dataset must provide.
var RequiredColumns = []string{ColID, ColFoldChange, ColPValue, ColX, ColY, ColName}

// Record is one pathway row. Records are immutable once loaded.
type Record struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	FoldChange  float64           `json:"wfc"`
	PValue      float64           `json:"pfdr"`
	X           float64           `json:"x"`
	Y           float64           `json:"y"`
	Description string            `json:"description,omitempty"`
	Ontology    string            `json:"ontology,omitempty"`
	Disease     string            `json:"disease,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`

	// Row is the 1-based line of the record in its source file (header is 1).
	Row int `json:"row,omitempty"`
}

// DisplayName returns Name, falling back to ID.
func (r Record) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// ShortID returns the last four characters of the ID, the compact label
// used on map tiles.
func (r Record) ShortID() string {
	return ShortID(r.ID)
}

// ShortID returns the last four characters of id.
func ShortID(id string) string {
	runes := []rune(id)
	if len(runes) <= 4 {
		return id
	}
	return string(runes[len(runes)-4:])
}

// Dataset is a named collection of pathway records.
type Dataset struct {
	Name    string   `json:"name"`
	Records []Record `json:"records"`

	// Errors holds the rows that were rejected while loading.
	Errors []*apperrors.ValidationError `json:"errors,omitempty"`

	index map[string]int
}

// Len returns the number of valid records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// IDs returns the record IDs in input order.
func (d *Dataset) IDs() []string {
	ids := make([]string, len(d.Records))
	for i, r := range d.Records {
		ids[i] = r.ID
	}
	return ids
}

// Lookup returns the record with the given ID.
func (d *Dataset) Lookup(id string) (Record, bool) {
	if d.index == nil {
		d.reindex()
	}
	i, ok := d.index[id]
	if !ok {
		return Record{}, false
	}
	return d.Records[i], true
}

// Has reports whether a record with the given ID exists.
func (d *Dataset) Has(id string) bool {
	_, ok := d.Lookup(id)
	return ok
}

// Sorted returns a copy of the records ordered by ID.
func (d *Dataset) Sorted() []Record {
	out := slices.Clone(d.Records)
	slices.SortFunc(out, func(a, b Record) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (d *Dataset) reindex() {
	d.index = make(map[string]int, len(d.Records))
	for i, r := range d.Records {
		d.index[r.ID] = i
	}
}
