package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/mondrian/pkg/cache"
	apperrors "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/pathway"
)

// Input is a loaded dataset together with its optional relations and
// annotations.
type Input struct {
	Dataset   *pathway.Dataset
	Relations []pathway.Relation

	// Hash is the content hash of the raw dataset CSV.
	Hash string
	// RelationsHash and InfoHash are empty when the file was not given.
	RelationsHash string
	InfoHash      string

	// Enriched counts the records that had a pathway info entry.
	Enriched int
}

// Selected returns the relations drawn as connectors: pairs between known
// pathways, at most max per pathway.
func (in *Input) Selected(max int) []pathway.Relation {
	return pathway.SelectRelations(in.Relations, in.Dataset.Has, max)
}

// source holds the raw bytes of the three input files.
type source struct {
	name      string
	dataset   []byte
	relations []byte
	info      []byte
}

// readSource reads the inputs named by opts.
func readSource(opts Options) (source, error) {
	var (
		src source
		err error
	)
	if src.dataset, err = readInput(opts.Dataset, opts.DatasetPath, "dataset"); err != nil {
		return source{}, err
	}
	if src.relations, err = readInput(opts.Relations, opts.RelationsPath, "relations"); err != nil {
		return source{}, err
	}
	if src.info, err = readInput(opts.Info, opts.InfoPath, "pathway info"); err != nil {
		return source{}, err
	}

	src.name = opts.DatasetName
	if src.name == "" && opts.DatasetPath != "" {
		src.name = strings.TrimSuffix(filepath.Base(opts.DatasetPath), filepath.Ext(opts.DatasetPath))
	}
	if src.name == "" {
		src.name = "dataset"
	}
	return src, nil
}

func readInput(data []byte, path, what string) ([]byte, error) {
	if data != nil {
		return data, nil
	}
	if path == "" {
		return nil, nil
	}
	if err := apperrors.ValidatePath(path); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "%s not found: %s", what, path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read %s", what)
	}
	return b, nil
}

// parseDataset parses the dataset CSV. The result is what gets cached.
func parseDataset(data []byte, name string) (*pathway.Dataset, error) {
	return pathway.ReadCSV(bytes.NewReader(data), name)
}

// attach parses relations and info and applies them to a parsed dataset.
func attach(ds *pathway.Dataset, src source, hash string) (*Input, error) {
	in := &Input{Dataset: ds, Hash: hash}

	if src.relations != nil {
		rels, err := pathway.ReadRelations(bytes.NewReader(src.relations))
		if err != nil {
			return nil, err
		}
		in.Relations = rels
		in.RelationsHash = cache.Hash(src.relations)
	}

	if src.info != nil {
		info, err := pathway.ReadInfo(bytes.NewReader(src.info))
		if err != nil {
			return nil, err
		}
		in.Enriched = info.Enrich(ds)
		in.InfoHash = cache.Hash(src.info)
	}
	return in, nil
}

func marshalDataset(ds *pathway.Dataset) ([]byte, error) {
	return json.Marshal(ds)
}

func unmarshalDataset(data []byte) (*pathway.Dataset, error) {
	var ds pathway.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}
