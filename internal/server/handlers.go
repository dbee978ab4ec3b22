package server

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mondrian/pkg/buildinfo"
	apperrors "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/pipeline"
	"github.com/matzehuels/mondrian/pkg/render/sink"
	"github.com/matzehuels/mondrian/pkg/stats"
	"github.com/matzehuels/mondrian/pkg/store"
)

// Multipart field names of an upload.
const (
	fieldDataset   = "dataset"
	fieldRelations = "relations"
	fieldInfo      = "info"
	fieldName      = "name"
)

// =============================================================================
// Misc
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) {
	th := s.cfg.Thresholds
	if v := r.URL.Query().Get("scale"); v != "" {
		var err error
		if th, err = mondrian.ThresholdsFor(mondrian.Scale(v)); err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeArtifact(w, pipeline.FormatSVG, sink.RenderLegend(th))
}

// =============================================================================
// Datasets
// =============================================================================

type uploadResponse struct {
	Dataset store.Meta                   `json:"dataset"`
	Errors  []*apperrors.ValidationError `json:"errors,omitempty"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.cfg.Server.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if statusFor(err) == http.StatusRequestEntityTooLarge {
			writeError(w, r, err)
			return
		}
		writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	data, filename, err := readUpload(r, fieldDataset, true, ".csv")
	if err != nil {
		writeError(w, r, err)
		return
	}
	relations, _, err := readUpload(r, fieldRelations, false, ".csv")
	if err != nil {
		writeError(w, r, err)
		return
	}
	info, _, err := readUpload(r, fieldInfo, false, ".json")
	if err != nil {
		writeError(w, r, err)
		return
	}

	name := strings.TrimSpace(r.FormValue(fieldName))
	if name == "" {
		name = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	in, err := s.runner.Load(r.Context(), pipeline.Options{
		Dataset:     data,
		DatasetName: name,
		Relations:   relations,
		Info:        info,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if in.Dataset.Len() == 0 {
		body := errorBody(string(apperrors.ErrCodeInvalidRow), "dataset has no valid rows")
		body.Error.Details = in.Dataset.Errors
		writeJSON(w, r, http.StatusUnprocessableEntity, body)
		return
	}

	e := store.New(name, filename, data, s.cfg.Server.DatasetTTL.Duration)
	e.RelationsData = relations
	e.InfoData = info
	e.Records = in.Dataset.Len()
	e.Invalid = len(in.Dataset.Errors)
	e.Relations = len(in.Relations)
	if err := s.store.Put(r.Context(), e); err != nil {
		writeError(w, r, err)
		return
	}

	s.logger.Info("dataset uploaded", "id", e.ID, "name", name, "records", e.Records, "invalid", e.Invalid)
	writeJSON(w, r, http.StatusCreated, uploadResponse{Dataset: e.Meta(), Errors: in.Dataset.Errors})
}

// readUpload returns the contents and name of a multipart file field.
func readUpload(r *http.Request, field string, required bool, exts ...string) ([]byte, string, error) {
	f, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		if required {
			return nil, "", apperrors.New(apperrors.ErrCodeInvalidInput, "missing file field %q", field)
		}
		return nil, "", nil
	}
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read %s", field)
	}
	defer f.Close()

	if err := apperrors.ValidateUploadFilename(header.Filename, exts...); err != nil {
		return nil, "", err
	}
	data, err := readAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

func readAll(f multipart.File) ([]byte, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read upload")
	}
	return data, nil
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []store.Meta{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"datasets": list})
}

func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	in, err := s.runner.Load(r.Context(), s.baseOptions(e))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, uploadResponse{Dataset: e.Meta(), Errors: in.Dataset.Errors})
}

func (s *Server) handleDeleteDataset(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), e.ID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// entry loads the dataset named by the {id} URL parameter, writing a 404
// when it does not exist.
func (s *Server) entry(w http.ResponseWriter, r *http.Request) (*store.Entry, bool) {
	id := chi.URLParam(r, "id")
	e, err := s.lookup(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return e, true
}

func (s *Server) lookup(ctx context.Context, id string) (*store.Entry, error) {
	if !store.ValidID(id) {
		return nil, apperrors.New(apperrors.ErrCodeDatasetNotFound, "dataset %q not found", id)
	}
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apperrors.New(apperrors.ErrCodeDatasetNotFound, "dataset %q not found", id)
	}
	return e, nil
}

// =============================================================================
// Rendering
// =============================================================================

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pipeline.KindMap)
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pipeline.KindNetwork)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, kind string) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	format := chi.URLParam(r, "format")

	opts := s.baseOptions(e)
	if err := applyQuery(&opts, r); err != nil {
		writeError(w, r, err)
		return
	}
	opts.Kind = kind
	opts.Formats = []string{format}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Server.RenderTimeout.Duration)
	defer cancel()

	res, err := s.runner.Execute(ctx, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cacheState := "miss"
	if res.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("X-Cache", cacheState)
	w.Header().Set("X-Mondrian-Blocks", strconv.Itoa(res.Stats.Blocks))
	w.Header().Set("X-Mondrian-Rejected", strconv.Itoa(res.Stats.Rejected))
	writeArtifact(w, format, res.Artifacts[format])
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	opts := s.baseOptions(e)
	if err := applyQuery(&opts, r); err != nil {
		writeError(w, r, err)
		return
	}
	top, err := intParam(r, "top", stats.DefaultTopN)
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := s.runner.Summarize(r.Context(), opts, top)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleCanvas(w http.ResponseWriter, r *http.Request) {
	var ids []string
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "ids is required"))
		return
	}

	rows, err := intParam(r, "rows", 1)
	if err != nil {
		writeError(w, r, err)
		return
	}
	cols, err := intParam(r, "cols", (len(ids)+rows-1)/max(rows, 1))
	if err != nil {
		writeError(w, r, err)
		return
	}

	maps := make([]pipeline.Options, 0, len(ids))
	for _, id := range ids {
		e, err := s.lookup(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		opts := s.baseOptions(e)
		if err := applyQuery(&opts, r); err != nil {
			writeError(w, r, err)
			return
		}
		opts.Title = e.Name
		maps = append(maps, opts)
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Server.RenderTimeout.Duration)
	defer cancel()

	svg, err := s.runner.Canvas(ctx, maps, rows, cols)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeArtifact(w, pipeline.FormatSVG, svg)
}

// =============================================================================
// Options
// =============================================================================

// baseOptions builds pipeline options for an entry from the configuration.
func (s *Server) baseOptions(e *store.Entry) pipeline.Options {
	opts := pipeline.FromConfig(s.cfg)
	opts.Dataset = e.Data
	opts.DatasetName = e.Name
	opts.Relations = e.RelationsData
	opts.Info = e.InfoData
	opts.Title = e.Name
	return opts
}

// applyQuery overrides options from query parameters.
func applyQuery(opts *pipeline.Options, r *http.Request) error {
	q := r.URL.Query()

	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if q.Has("title") {
		opts.Title = q.Get("title")
	}
	if v := q.Get("scale"); v != "" {
		th, err := mondrian.ThresholdsFor(mondrian.Scale(v))
		if err != nil {
			return err
		}
		opts.Thresholds = th
	}

	for _, b := range []struct {
		name string
		dst  *bool
	}{
		{"show_ids", &opts.ShowIDs},
		{"tooltips", &opts.Tooltips},
		{"maximize", &opts.Maximize},
		{"detailed", &opts.Detailed},
		{"all", &opts.AllNodes},
	} {
		if !q.Has(b.name) {
			continue
		}
		v, err := strconv.ParseBool(q.Get(b.name))
		if err != nil {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "%s: not a boolean: %q", b.name, q.Get(b.name))
		}
		*b.dst = v
	}

	cell, err := intParam(r, "cell", 0)
	if err != nil {
		return err
	}
	if cell != 0 {
		opts.CellWidth, opts.CellHeight = cell, cell
	}
	maxRel, err := intParam(r, "max_relations", opts.MaxRelations)
	if err != nil {
		return err
	}
	opts.MaxRelations = maxRel
	return nil
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidInput, "%s: not a non-negative integer: %q", name, v)
	}
	return n, nil
}
