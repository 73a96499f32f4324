package server

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tilegrid/pkg/adjust"
	"github.com/matzehuels/tilegrid/pkg/buildinfo"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/ops"
	"github.com/matzehuels/tilegrid/pkg/render"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// tilingBody describes the current layout.
type tilingBody struct {
	Version uint64        `json:"version"`
	Tiles   []tiling.Tile `json:"tiles"`
	Groups  tiling.Groups `json:"groups,omitempty"`
	CanUndo bool          `json:"canUndo"`
	CanRedo bool          `json:"canRedo"`
}

// resultBody is an operation result together with the layout after it.
type resultBody struct {
	ops.Result
	Tiles []tiling.Tile `json:"tiles"`
}

type splitRequest struct {
	TileID      string  `json:"tileId"`
	Orientation string  `json:"orientation"`
	Ratio       float64 `json:"ratio"`
}

type deleteRequest struct {
	TileID string `json:"tileId"`
}

type insertRequest struct {
	RefID string  `json:"refId"`
	Side  string  `json:"side"`
	Size  float64 `json:"size"`
}

type resizeRequest struct {
	TileID string  `json:"tileId"`
	Edge   string  `json:"edge"`
	Delta  float64 `json:"delta"`
}

type seamResizeRequest struct {
	SeamID string  `json:"seamId"`
	Delta  float64 `json:"delta"`
}

type adjustRequest struct {
	Overrides map[string]tiling.Constraints `json:"overrides,omitempty"`
}

type adjustBody struct {
	adjust.Result
	Error string        `json:"error,omitempty"`
	Tiles []tiling.Tile `json:"tiles"`
}

type historyBody struct {
	Changed bool          `json:"changed"`
	Tiles   []tiling.Tile `json:"tiles"`
}

func (s *Server) tilingBody() tilingBody {
	st := s.eng.State()
	return tilingBody{
		Version: st.Version(),
		Tiles:   st.Tiles(),
		Groups:  st.Groups(),
		CanUndo: s.eng.CanUndo(),
		CanRedo: s.eng.CanRedo(),
	}
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleTiling(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tilingBody())
}

func (s *Server) handleSeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"seams": s.eng.Seams()})
}

// deltaParam reads the optional ?delta= query parameter.
func deltaParam(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("delta")
	if raw == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid delta %q", raw)
	}
	return d, nil
}

// pathParam returns a decoded URL parameter. Seam ids contain '|', which
// clients escape.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func (s *Server) handleClampSeam(w http.ResponseWriter, r *http.Request) {
	delta, err := deltaParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rng, err := s.eng.ClampSeam(pathParam(r, "id"), delta)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rng)
}

func (s *Server) handleClampEdge(w http.ResponseWriter, r *http.Request) {
	delta, err := deltaParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rng, err := s.eng.ClampEdge(pathParam(r, "id"), pathParam(r, "edge"), delta)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rng)
}

// writeResult answers with 200 for committed operations and 422 for
// rejections.
func (s *Server) writeResult(w http.ResponseWriter, res ops.Result, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	status := http.StatusOK
	if !res.Valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resultBody{Result: res, Tiles: res.State.Tiles()})
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.eng.Split(r.Context(), req.TileID, req.Orientation, req.Ratio)
	s.writeResult(w, res, err)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.eng.Delete(r.Context(), req.TileID)
	s.writeResult(w, res, err)
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.eng.Insert(r.Context(), req.RefID, req.Side, req.Size)
	s.writeResult(w, res, err)
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.eng.Resize(r.Context(), req.TileID, req.Edge, req.Delta)
	s.writeResult(w, res, err)
}

func (s *Server) handleSeamResize(w http.ResponseWriter, r *http.Request) {
	var req seamResizeRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.eng.SeamResize(r.Context(), req.SeamID, req.Delta)
	s.writeResult(w, res, err)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	res, err := s.eng.Validate(r.Context())
	s.writeResult(w, res, err)
}

func (s *Server) handleAdjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
	}
	res := s.eng.Adjust(r.Context(), req.Overrides)
	body := adjustBody{Result: res, Tiles: s.eng.State().Tiles()}
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
		if res.Err != nil {
			body.Error = errors.UserMessage(res.Err)
		}
	}
	writeJSON(w, status, body)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	changed := s.eng.Undo()
	writeJSON(w, http.StatusOK, historyBody{Changed: changed, Tiles: s.eng.State().Tiles()})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	changed := s.eng.Redo()
	writeJSON(w, http.StatusOK, historyBody{Changed: changed, Tiles: s.eng.State().Tiles()})
}

// contentTypes maps render formats to response content types.
var contentTypes = map[string]string{
	render.FormatSVG: "image/svg+xml",
	render.FormatPNG: "image/png",
	render.FormatDOT: "text/vnd.graphviz",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	data, err := render.Render(r.Context(), s.eng.State(), format, render.Options{
		Adjacency: q.Get("adjacency") == "true",
		Detailed:  q.Get("detailed") == "true",
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	_, _ = w.Write(data)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := s.eng.Snapshot()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handlePutSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	if err := s.eng.Restore(data); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tilingBody())
}
