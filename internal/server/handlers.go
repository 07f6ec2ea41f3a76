package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/matzehuels/constellation/pkg/buildinfo"
	cerrors "github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/graph"
	"github.com/matzehuels/constellation/pkg/pipeline"
)

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	backend := s.backend
	if backend == "" {
		backend = "none"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Get().Version,
		"uptime":  time.Since(s.started).Seconds(),
		"cache":   backend,
	})
}

// =============================================================================
// POST /api/layout
// =============================================================================

type layoutRequest struct {
	Topics  []topicInput  `json:"topics" validate:"dive"`
	Edges   []edgeInput   `json:"edges" validate:"dive"`
	Width   float64       `json:"width" validate:"omitempty,gt=0"`
	Height  float64       `json:"height" validate:"omitempty,gt=0"`
	Seeder  string        `json:"seeder,omitempty" validate:"omitempty,oneof=hash splitmix"`
	Salt    uint64        `json:"salt,omitempty"`
	// Physics fields present in the body override the server preset; the
	// rest keep their preset value.
	Physics json.RawMessage `json:"physics,omitempty"`
}

type topicInput struct {
	Word     string   `json:"word" validate:"required,max=256"`
	Count    int      `json:"count" validate:"gte=0"`
	EntryIDs []string `json:"entry_ids,omitempty"`
}

type edgeInput struct {
	Source string  `json:"source" validate:"required"`
	Target string  `json:"target" validate:"required"`
	Weight float64 `json:"weight"`
}

type layoutResponse struct {
	ID         string            `json:"id"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Iterations int               `json:"iterations"`
	Positions  graph.PositionMap `json:"positions"`
}

func (req layoutRequest) graph() graph.Graph {
	g := graph.Graph{
		Topics: make([]graph.Topic, len(req.Topics)),
		Edges:  make([]graph.Edge, len(req.Edges)),
	}
	for i, t := range req.Topics {
		g.Topics[i] = graph.Topic{Word: t.Word, Count: t.Count, DocumentIDs: t.EntryIDs}
	}
	for i, e := range req.Edges {
		g.Edges[i] = graph.Edge{Source: e.Source, Target: e.Target, Weight: e.Weight}
	}
	return g
}

// handleLayout lays out the posted graph. A partial physics object is merged
// over the current preset and the result is validated as a whole.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "invalid JSON body"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	opts := s.options()
	if req.Width > 0 {
		opts.Width = req.Width
	}
	if req.Height > 0 {
		opts.Height = req.Height
	}
	if req.Seeder != "" {
		opts.Seeder = req.Seeder
	}
	opts.Salt = req.Salt
	if len(req.Physics) > 0 {
		if err := json.Unmarshal(req.Physics, &opts.Physics); err != nil {
			s.writeError(w, r, cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "invalid physics"))
			return
		}
	}

	layout, err := s.runner.GenerateLayout(r.Context(), req.graph(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		ID:         uuid.NewString(),
		Width:      layout.Width,
		Height:     layout.Height,
		Iterations: layout.Iterations,
		Positions:  layout.Positions,
	})
}

// validationError turns validator output into one INVALID_INPUT error
// listing every failed field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "invalid request")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return cerrors.New(cerrors.ErrCodeInvalidInput, "%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// fieldPath turns "layoutRequest.Topics[2].Word" into "topics[2].word".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}

// =============================================================================
// GET /api/constellation(.svg)
// =============================================================================

// queryOptions overlays the query parameters shared by both constellation
// routes onto the server defaults.
func (s *Server) queryOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.options()
	q := r.URL.Query()

	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, cerrors.New(cerrors.ErrCodeInvalidDimensions, "%s must be a number, got %q", p.name, raw)
		}
		*p.dst = v
	}

	if raw := q.Get("refresh"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, cerrors.New(cerrors.ErrCodeInvalidInput, "refresh must be a boolean, got %q", raw)
		}
		opts.Refresh = v
	}
	return opts, nil
}

func (s *Server) constellation(r *http.Request, opts pipeline.Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	g, _, err := s.runner.Fetch(r.Context(), opts)
	if err != nil {
		return graph.Layout{}, err
	}
	return s.runner.GenerateLayout(r.Context(), g, opts)
}

func (s *Server) handleConstellation(w http.ResponseWriter, r *http.Request) {
	opts, err := s.queryOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	layout, err := s.constellation(r, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleConstellationSVG(w http.ResponseWriter, r *http.Request) {
	opts, err := s.queryOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	opts.Formats = []string{pipeline.FormatSVG}
	opts.Selected = q.Get("selected")
	if style := q.Get("style"); style != "" {
		opts.Style = style
	}
	for _, p := range []struct {
		name string
		dst  *bool
	}{
		{"labels", &opts.Labels},
		{"animate", &opts.Animate},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, r, cerrors.New(cerrors.ErrCodeInvalidInput, "%s must be a boolean, got %q", p.name, raw))
			return
		}
		*p.dst = v
	}
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, r, err)
		return
	}

	layout, err := s.constellation(r, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), layout, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(artifacts[pipeline.FormatSVG])
}
