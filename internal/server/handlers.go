package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/lewis/pkg/buildinfo"
	"github.com/matzehuels/lewis/pkg/errors"
	"github.com/matzehuels/lewis/pkg/formula"
	"github.com/matzehuels/lewis/pkg/graph"
	"github.com/matzehuels/lewis/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:   "image/svg+xml",
	pipeline.FormatPNG:   "image/png",
	pipeline.FormatJSON:  "application/json",
	pipeline.FormatDOT:   "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatText:  "text/plain; charset=utf-8",
	pipeline.FormatNeato: "image/svg+xml",
}

type solveResponse struct {
	Formula    string            `json:"formula"`
	Cached     bool              `json:"cached"`
	Structures []graph.Structure `json:"structures"`
}

type errorBody struct {
	Error struct {
		Code      errors.Code `json:"code"`
		Message   string      `json:"message"`
		RequestID string      `json:"request_id,omitempty"`
	} `json:"error"`
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	data, err := static.ReadFile("static/index.html")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request) {
	q, err := parseSolveQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := s.options(q)
	structures, cached, err := s.runner.SolveWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.remember(r, structures)

	writeJSON(w, http.StatusOK, solveResponse{
		Formula:    structures[0].Formula,
		Cached:     cached,
		Structures: structures,
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}
	q, err := parseRenderQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := s.options(q.solveQuery)
	opts.Formats = []string{format}
	opts.Index = q.Index
	opts.Detailed = q.Detailed
	if q.Size > 0 {
		opts.Size = q.Size
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.remember(r, result.Structures)

	cacheState := "miss"
	if result.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheState)
	w.Write(result.Artifacts[format])
}

func (s *Server) formulas(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, errors.New(errors.ErrCodeUnsupported, "no structure store configured"))
		return
	}
	list, err := s.store.Formulas(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"formulas": list})
}

func (s *Server) structures(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, errors.New(errors.ErrCodeUnsupported, "no structure store configured"))
		return
	}
	normalized, err := formula.Normalize(chi.URLParam(r, "formula"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	list, err := s.store.Find(r.Context(), normalized)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(list) == 0 {
		s.fail(w, r, errors.New(errors.ErrCodeNotFound, "no stored structures for %s", normalized))
		return
	}
	writeJSON(w, http.StatusOK, solveResponse{Formula: normalized, Cached: true, Structures: list})
}

// options seeds pipeline options from the configuration and overlays the query.
func (s *Server) options(q solveQuery) pipeline.Options {
	opts := s.cfg.PipelineOptions(q.Formula)
	if q.Mode != "" {
		opts.Mode = q.Mode
	}
	if q.Limit > 0 {
		opts.Limit = q.Limit
	}
	if q.MaxIonCharge > 0 {
		opts.MaxIonCharge = q.MaxIonCharge
	}
	opts.Refresh = q.Refresh
	return opts
}

// remember saves structures to the store. Failures are logged, not returned.
func (s *Server) remember(r *http.Request, structures []graph.Structure) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(r.Context(), structures); err != nil {
		s.logger.Warn("store save failed", "err", err, "request_id", RequestID(r.Context()))
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.HTTPStatus(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", RequestID(r.Context()))
	}

	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	body.Error.RequestID = RequestID(r.Context())
	writeJSON(w, code, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
