// Package server exposes an engine over HTTP.
//
// Operations are POSTed as JSON and answer with the operation result plus the
// resulting tiles. A rejected operation is a 422 carrying the same body, so
// clients always read violations from one place. Malformed input is a 400;
// anything else that fails is a 500.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tilegrid/pkg/engine"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/observability"
)

// maxBodyBytes bounds request bodies; snapshots of the largest layouts fit
// comfortably.
const maxBodyBytes = 1 << 20

// Server serves one engine.
type Server struct {
	eng    *engine.Engine
	logger *log.Logger
	router chi.Router
}

// New returns a server for eng. A nil logger discards output.
func New(eng *engine.Engine, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{eng: eng, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	s.RegisterHTTP(r)
	s.router = r
	return s
}

// RegisterHTTP mounts the API routes on r.
func (s *Server) RegisterHTTP(r chi.Router) {
	r.Get("/version", s.handleVersion)
	r.Get("/tiling", s.handleTiling)
	r.Get("/seams", s.handleSeams)
	r.Get("/seams/{id}/clamp", s.handleClampSeam)
	r.Get("/tiles/{id}/edges/{edge}/clamp", s.handleClampEdge)

	r.Post("/split", s.handleSplit)
	r.Post("/delete", s.handleDelete)
	r.Post("/insert", s.handleInsert)
	r.Post("/resize", s.handleResize)
	r.Post("/seam-resize", s.handleSeamResize)
	r.Post("/validate", s.handleValidate)
	r.Post("/adjust", s.handleAdjust)
	r.Post("/undo", s.handleUndo)
	r.Post("/redo", s.handleRedo)

	r.Get("/render", s.handleRender)
	r.Get("/snapshot", s.handleGetSnapshot)
	r.Put("/snapshot", s.handlePutSnapshot)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// observe reports every request to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		d := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), d)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", d)
	})
}

// errorBody is the JSON shape of every non-operation failure.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	var body errorBody
	body.Error.Code = string(errors.GetCode(err))
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, body)
}

// statusOf maps error codes to HTTP statuses.
func statusOf(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSnapshot, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidTile, errors.ErrCodeDuplicateTile, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSeamNotFound:
		return http.StatusNotFound
	case errors.ErrCodeSeamNotCovered, errors.ErrCodeDeltaOutOfRange, errors.ErrCodeAdjustFailed,
		errors.ErrCodeOverlap, errors.ErrCodeOutOfBounds, errors.ErrCodeCoverageGap:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
