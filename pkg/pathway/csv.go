package pathway

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
)

// utf8BOM is stripped from the first header cell (spreadsheet exports).
const utf8BOM = "\ufeff"

// missingValues are the spellings of an absent fold change.
var missingValues = map[string]bool{"": true, "na": true, "nan": true, "null": true, "none": true}

// LoadCSV reads a dataset from a CSV file. The dataset is named after the
// file's base name without extension.
func LoadCSV(path string) (*Dataset, error) {
	if err := apperrors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "dataset not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadCSV(f, name)
}

// ReadCSV parses a dataset from r.
//
// A missing required column fails the whole read. Row-level problems do not:
// the offending row is skipped and recorded in Dataset.Errors, and parsing
// continues with the next row.
func ReadCSV(r io.Reader, name string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "dataset %q is empty", name)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read header")
	}
	header = normalizeHeader(header)

	if missing := apperrors.RequireColumns(header, RequiredColumns); missing != nil {
		cols := make([]string, len(missing))
		for i, m := range missing {
			cols[i] = m.Column
		}
		return nil, apperrors.New(apperrors.ErrCodeInvalidColumn, "missing required columns: %s", strings.Join(cols, ", "))
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}

	ds := &Dataset{Name: name}
	seen := make(map[string]int)

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				ds.Errors = append(ds.Errors, apperrors.RowError(perr.StartLine, "", "", "malformed CSV: %v", perr.Err))
				continue
			}
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read dataset")
		}
		if isBlank(fields) {
			continue
		}
		row, _ := cr.FieldPos(0)

		rec, verr := parseRecord(fields, header, idx, row)
		if verr != nil {
			ds.Errors = append(ds.Errors, verr)
			continue
		}
		if first, dup := seen[rec.ID]; dup {
			ds.Errors = append(ds.Errors, apperrors.RowError(row, ColID, rec.ID, "duplicate GS_ID (first seen on row %d)", first))
			continue
		}
		seen[rec.ID] = row
		ds.Records = append(ds.Records, rec)
	}

	ds.reindex()
	return ds, nil
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseRecord(fields, header []string, idx map[string]int, row int) (Record, *apperrors.ValidationError) {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	rec := Record{
		ID:          get(ColID),
		Name:        get(ColName),
		Description: get(ColDescription),
		Ontology:    get(ColOntology),
		Disease:     get(ColDisease),
		Row:         row,
	}
	if rec.ID == "" {
		return Record{}, apperrors.RowError(row, ColID, "", "missing pathway ID")
	}

	fc := get(ColFoldChange)
	if !missingValues[strings.ToLower(fc)] {
		v, err := parseFinite(fc)
		if err != nil {
			return Record{}, apperrors.RowError(row, ColFoldChange, fc, "%v", err)
		}
		rec.FoldChange = v
	}

	var err error
	p := get(ColPValue)
	if p == "" {
		return Record{}, apperrors.RowError(row, ColPValue, "", "missing p-value")
	}
	if rec.PValue, err = parseFinite(p); err != nil {
		return Record{}, apperrors.RowError(row, ColPValue, p, "%v", err)
	}
	if rec.PValue < 0 || rec.PValue > 1 {
		return Record{}, apperrors.RowError(row, ColPValue, p, "p-value must be within [0, 1]")
	}

	for _, c := range []struct {
		col string
		dst *float64
	}{{ColX, &rec.X}, {ColY, &rec.Y}} {
		v := get(c.col)
		if v == "" {
			return Record{}, apperrors.RowError(row, c.col, "", "missing coordinate")
		}
		if *c.dst, err = parseFinite(v); err != nil {
			return Record{}, apperrors.RowError(row, c.col, v, "%v", err)
		}
	}

	for i, h := range header {
		if isKnownColumn(h) || h == "" || i >= len(fields) {
			continue
		}
		if v := strings.TrimSpace(fields[i]); v != "" {
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[h] = v
		}
	}

	return rec, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return v, nil
}

func isKnownColumn(h string) bool {
	switch h {
	case ColID, ColFoldChange, ColPValue, ColX, ColY, ColName, ColDescription, ColOntology, ColDisease:
		return true
	}
	return false
}
