package pathway

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
)

// Column names of the relations (pathway network) CSV format.
const (
	ColRelationA = "GS_A_ID"
	ColRelationB = "GS_B_ID"
)

// DefaultMaxRelations is the number of connectors a pathway may take part in.
const DefaultMaxRelations = 2

// Relation links two pathways that share crosstalk.
type Relation struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// LoadRelations reads relations from a CSV file.
func LoadRelations(path string) ([]Relation, error) {
	if err := apperrors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "relations not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadRelations(f)
}

// ReadRelations parses GS_A_ID/GS_B_ID pairs from r. Rows with an empty
// endpoint are skipped.
func ReadRelations(r io.Reader) ([]Relation, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read relations header")
	}
	header = normalizeHeader(header)
	if missing := apperrors.RequireColumns(header, []string{ColRelationA, ColRelationB}); missing != nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidColumn, "relations: %s", missing[0].Describe())
	}

	ai, bi := -1, -1
	for i, h := range header {
		switch h {
		case ColRelationA:
			ai = i
		case ColRelationB:
			bi = i
		}
	}

	var rels []Relation
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read relations")
		}
		if ai >= len(fields) || bi >= len(fields) {
			continue
		}
		a, b := strings.TrimSpace(fields[ai]), strings.TrimSpace(fields[bi])
		if a == "" || b == "" {
			continue
		}
		rels = append(rels, Relation{From: a, To: b})
	}
	return rels, nil
}

// SelectRelations prunes rels to the pairs drawn as connectors.
//
// Pairs are considered in input order. A pair is kept when both endpoints
// satisfy known (if non-nil), it is not a self loop, neither it nor its
// reverse was already kept, and both endpoints have fewer than max kept
// relations. A max of zero or less uses DefaultMaxRelations.
func SelectRelations(rels []Relation, known func(id string) bool, max int) []Relation {
	if max <= 0 {
		max = DefaultMaxRelations
	}

	var kept []Relation
	seen := make(map[Relation]bool)
	count := make(map[string]int)

	for _, r := range rels {
		if r.From == r.To {
			continue
		}
		if known != nil && (!known(r.From) || !known(r.To)) {
			continue
		}
		if seen[r] || seen[Relation{From: r.To, To: r.From}] {
			continue
		}
		if count[r.From] >= max || count[r.To] >= max {
			continue
		}
		kept = append(kept, r)
		seen[r] = true
		count[r.From]++
		count[r.To]++
	}
	return kept
}
