package pathway

import (
	"encoding/json"
	"io"
	"os"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
)

// InfoEntry is the annotation of a single pathway.
type InfoEntry struct {
	Name        string `json:"NAME"`
	Description string `json:"Description"`
	Ontology    string `json:"Pathway Ontology"`
	Disease     string `json:"Disease"`
}

// Info maps pathway IDs to their annotations.
type Info map[string]InfoEntry

// LoadInfo reads pathway annotations from a JSON file.
func LoadInfo(path string) (Info, error) {
	if err := apperrors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "pathway info not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadInfo(f)
}

// ReadInfo decodes pathway annotations from r.
func ReadInfo(r io.Reader) (Info, error) {
	var info Info
	if err := json.NewDecoder(r).Decode(&info); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode pathway info")
	}
	return info, nil
}

// Enrich applies annotations to the records of d. A non-empty NAME in the
// info file replaces the dataset's name; the other fields only fill blanks.
// It returns the number of records that had an entry.
func (info Info) Enrich(d *Dataset) int {
	matched := 0
	for i := range d.Records {
		rec := &d.Records[i]
		e, ok := info[rec.ID]
		if !ok {
			continue
		}
		matched++
		if e.Name != "" {
			rec.Name = e.Name
		}
		if rec.Description == "" {
			rec.Description = e.Description
		}
		if rec.Ontology == "" {
			rec.Ontology = e.Ontology
		}
		if rec.Disease == "" {
			rec.Disease = e.Disease
		}
	}
	return matched
}
