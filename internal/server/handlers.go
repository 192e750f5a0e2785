package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/boxbake/pkg/buildinfo"
	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/layoutfile"
	"github.com/matzehuels/boxbake/pkg/pipeline"
	"github.com/matzehuels/boxbake/pkg/store"
)

// =============================================================================
// Request Types
// =============================================================================

// bakeRequest is the body of POST /v1/bake.
type bakeRequest struct {
	Document json.RawMessage `json:"document"`
	Width    int             `json:"width,omitempty"`
	Height   int             `json:"height,omitempty"`
	Refresh  bool            `json:"refresh,omitempty"`
}

// renderRequest is the body of POST /v1/render.
type renderRequest struct {
	bakeRequest
	Formats    []string `json:"formats,omitempty"`
	Theme      string   `json:"theme,omitempty"`
	Labels     bool     `json:"labels,omitempty"`
	Rows       bool     `json:"rows,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	CellWidth  int      `json:"cell_width,omitempty"`
	CellHeight int      `json:"cell_height,omitempty"`
}

func (r bakeRequest) options() pipeline.Options {
	return pipeline.Options{Width: r.Width, Height: r.Height, Refresh: r.Refresh}
}

func (r renderRequest) options() pipeline.Options {
	opts := r.bakeRequest.options()
	opts.Formats = r.Formats
	opts.Theme = r.Theme
	opts.Labels = r.Labels
	opts.Rows = r.Rows
	opts.Detailed = r.Detailed
	opts.Scale = r.Scale
	opts.CellWidth = r.CellWidth
	opts.CellHeight = r.CellHeight
	return opts
}

// renderResponse carries several artifacts at once. []byte values are
// base64 in JSON.
type renderResponse struct {
	Artifacts map[string][]byte `json:"artifacts"`
	Cached    bool              `json:"cached"`
}

type layoutResponse struct {
	*store.Record
	Document json.RawMessage `json:"document"`
}

type listResponse struct {
	Layouts []*store.Record `json:"layouts"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Get(),
	})
}

func (s *Server) handleBake(w http.ResponseWriter, r *http.Request) {
	var req bakeRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := parseDocument(req.Document)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.bake(w, r, doc, req.options())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := parseDocument(req.Document)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts := req.options()
	artifacts, cached, err := s.render(r, doc, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(opts.Formats) == 1 {
		setCacheHeader(w, cached)
		writeArtifact(w, opts.Formats[0], artifacts[opts.Formats[0]])
		return
	}
	writeJSON(w, http.StatusOK, renderResponse{Artifacts: artifacts, Cached: cached})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	format, err := bodyFormat(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := layoutfile.Read(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes), format)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := s.opts.Store.Create(r.Context(), doc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.opts.Logger.Debug("stored layout", "id", rec.ID, "name", rec.Name, "kind", rec.Kind)
	w.Header().Set("Location", "/v1/layouts/"+rec.ID)
	writeJSON(w, http.StatusCreated, layoutResponse{Record: rec, Document: json.RawMessage(rec.Source)})
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	recs, err := s.opts.Store.List(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	writeJSON(w, http.StatusOK, listResponse{Layouts: recs, Limit: limit, Offset: opts.Offset})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	rec, err := s.opts.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{Record: rec, Document: json.RawMessage(rec.Source)})
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBakeLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.storedDocument(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := queryOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.bake(w, r, doc, opts)
}

func (s *Server) handleRenderLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.storedDocument(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := queryOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	artifacts, cached, err := s.render(r, doc, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeader(w, cached)
	writeArtifact(w, format, artifacts[format])
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) bake(w http.ResponseWriter, r *http.Request, doc layoutfile.Document, opts pipeline.Options) {
	res, hit, err := s.opts.Runner.BakeWithCacheInfo(r.Context(), doc, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) render(r *http.Request, doc layoutfile.Document, opts pipeline.Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	res, bakeHit, err := s.opts.Runner.BakeWithCacheInfo(r.Context(), doc, opts)
	if err != nil {
		return nil, false, err
	}
	artifacts, renderHit, err := s.opts.Runner.RenderWithCacheInfo(r.Context(), doc, res, opts)
	if err != nil {
		return nil, false, err
	}
	return artifacts, bakeHit && renderHit, nil
}

func (s *Server) storedDocument(r *http.Request) (layoutfile.Document, error) {
	rec, err := s.opts.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return layoutfile.Document{}, err
	}
	return rec.Document()
}

// decode reads a JSON body strictly into v.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body: %v", err)
	}
	return nil
}

func parseDocument(raw json.RawMessage) (layoutfile.Document, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return layoutfile.Document{}, errors.New(errors.ErrCodeInvalidInput, "document is required")
	}
	return layoutfile.Parse(raw, layoutfile.FormatJSON)
}

// bodyFormat picks the document format from the Content-Type header.
// JSON is assumed when the header is missing.
func bodyFormat(r *http.Request) (layoutfile.Format, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return layoutfile.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid content type %q", ct)
	}
	switch mt {
	case "application/json":
		return layoutfile.FormatJSON, nil
	case "application/toml":
		return layoutfile.FormatTOML, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return layoutfile.FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", mt)
}

// queryOptions reads size, theme, labels, rows, detailed and scale.
func queryOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	var opts pipeline.Options
	if v := q.Get("size"); v != "" {
		size, err := pipeline.ParseSize(v)
		if err != nil {
			return opts, err
		}
		opts.Width, opts.Height = size.Width, size.Height
	}
	opts.Theme = q.Get("theme")

	for name, dst := range map[string]*bool{
		"labels":   &opts.Labels,
		"rows":     &opts.Rows,
		"detailed": &opts.Detailed,
		"refresh":  &opts.Refresh,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", name, v)
		}
		*dst = b
	}

	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v)
		}
		opts.Scale = f
	}
	return opts, nil
}

func listOptions(r *http.Request) (store.ListOptions, error) {
	var opts store.ListOptions
	q := r.URL.Query()
	for name, dst := range map[string]*int{"limit": &opts.Limit, "offset": &opts.Offset} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", name, v)
		}
		*dst = n
	}
	return opts, nil
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
}
