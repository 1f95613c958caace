package server

import (
	"bytes"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/jarscope/pkg/artifact"
	"github.com/matzehuels/jarscope/pkg/buildinfo"
	"github.com/matzehuels/jarscope/pkg/errors"
	"github.com/matzehuels/jarscope/pkg/finder"
	"github.com/matzehuels/jarscope/pkg/render"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusFor maps an error to an HTTP status: 404 for a confirmed missing
// POM, 400 for invalid input and 502 for upstream failures.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodePomNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidCoordinates),
		errors.Is(err, errors.ErrCodeInvalidChecksum),
		errors.Is(err, errors.ErrCodeInvalidPath):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeLookup),
		errors.Is(err, errors.ErrCodeRepositoryAccess),
		errors.Is(err, errors.ErrCodePomParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleArtifacts(w http.ResponseWriter, r *http.Request) {
	sum, err := finder.ParseChecksum(chi.URLParam(r, "checksum"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.runner.IdentifyChecksum(r.Context(), "", sum)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, id)
}

func (s *Server) handleIdentify(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxUploadSize)
	sum, err := finder.Sum(body)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read upload"))
		return
	}
	id, err := s.runner.IdentifyChecksum(r.Context(), r.URL.Query().Get("name"), sum)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, id)
}

var contentTypes = map[render.Format]string{
	render.FormatText: "text/plain; charset=utf-8",
	render.FormatDOT:  "text/vnd.graphviz",
	render.FormatSVG:  "image/svg+xml",
}

func (s *Server) handleDependencies(w http.ResponseWriter, r *http.Request) {
	raw, err := url.PathUnescape(chi.URLParam(r, "coordinates"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidCoordinates, err, "decode coordinates"))
		return
	}
	a, err := artifact.Parse(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := render.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		if format, err = render.ParseFormat(f); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	deps, err := s.runner.Dependencies(r.Context(), a)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result := render.Result{Artifact: a, Dependencies: deps}
	if format == render.FormatJSON {
		w.Header().Set("Content-Type", "application/json")
		_ = render.JSON(w, result)
		return
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, format, result); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	_, _ = io.Copy(w, &buf)
}
