package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/graphic/pkg/buildinfo"
	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/generate"
	"github.com/matzehuels/graphic/pkg/graph"
	graphio "github.com/matzehuels/graphic/pkg/io"
	"github.com/matzehuels/graphic/pkg/label"
	"github.com/matzehuels/graphic/pkg/pipeline"
	"github.com/matzehuels/graphic/pkg/render"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleFamilies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, generate.Families())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := formatParam(q.Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}
	params, err := familyParams(q)
	if err != nil {
		writeError(w, err)
		return
	}
	st, err := styleParams(s.style, q)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Family:  chi.URLParam(r, "family"),
		Params:  params,
		Style:   st,
		Formats: []string{string(f)},
		Export:  s.export,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("X-Graph-Hash", res.GraphHash)
	writeArtifact(w, f, res.Artifacts[f])
}

type uploadResponse struct {
	ID    string `json:"id"`
	Nodes int    `json:"nodes"`
	Edges int    `json:"edges"`
}

// handleUpload accepts a .grphc document, or JSON when the content type
// says so.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxUploadBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	var g *graph.Graph
	if isJSON(r.Header.Get("Content-Type")) {
		g, err = graphio.ReadJSON(bytes.NewReader(body))
	} else {
		g, err = graphio.ReadGrphc(bytes.NewReader(body), graphio.Resolution{X: s.export.XDPI, Y: s.export.YDPI})
	}
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := s.runner.Save(r.Context(), g)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/graphs/"+id)
	writeJSON(w, http.StatusCreated, uploadResponse{ID: id, Nodes: g.NodeCount(), Edges: g.EdgeCount()})
}

func (s *Server) handleStored(w http.ResponseWriter, r *http.Request) {
	f, err := formatParam(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := s.runner.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.runner.Render(r.Context(), g, []render.Format{f}, s.export)
	if err != nil {
		writeError(w, err)
		return
	}
	writeArtifact(w, f, out[f])
}

type labelResponse struct {
	Text  string       `json:"text"`
	Valid bool         `json:"valid"`
	Error string       `json:"error,omitempty"`
	Plain string       `json:"plain"`
	HTML  string       `json:"html"`
	Spans []label.Span `json:"spans"`
}

func (s *Server) handleLabel(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	resp := labelResponse{
		Text:  text,
		Valid: true,
		Plain: label.Plain(text),
		HTML:  label.ToHTML(text),
		Spans: label.SpansOf(text),
	}
	if err := label.Valid(text); err != nil {
		resp.Valid = false
		resp.Error = errors.UserMessage(err)
	}
	writeJSON(w, http.StatusOK, resp)
}

type colourResponse struct {
	Hex      string     `json:"hex"`
	RGB      [3]uint8   `json:"rgb"`
	Fraction [3]float64 `json:"fraction"`
	Name     string     `json:"name,omitempty"`
}

func (s *Server) handleColour(w http.ResponseWriter, r *http.Request) {
	c, err := colour.Parse(r.URL.Query().Get("value"))
	if err != nil {
		writeError(w, err)
		return
	}
	fr, fg, fb := c.Fractions()
	resp := colourResponse{Hex: c.Hex(), RGB: [3]uint8{c.R, c.G, c.B}, Fraction: [3]float64{fr, fg, fb}}
	if name, ok := c.Name(); ok {
		resp.Name = name
	}
	writeJSON(w, http.StatusOK, resp)
}

func formatParam(s string) (render.Format, error) {
	if s == "" {
		return DefaultFormat, nil
	}
	return render.ParseFormat(s)
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && (mt == "application/json" || strings.HasSuffix(mt, "+json"))
}

func writeArtifact(w http.ResponseWriter, f render.Format, data []byte) {
	w.Header().Set("Content-Type", f.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code  errors.Code `json:"code,omitempty"`
	Error string      `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{Code: code, Error: errors.UserMessage(err)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidFamily,
		errors.ErrCodeInvalidColour, errors.ErrCodeInvalidLabel, errors.ErrCodeInvalidChange,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
