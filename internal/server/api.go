package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/elecciones/pkg/buildinfo"
	"github.com/matzehuels/elecciones/pkg/election"
	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/io"
	"github.com/matzehuels/elecciones/pkg/pipeline"
)

// errorResponse is the body of every failed API or chart request.
type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// healthResponse is the body of /health.
type healthResponse struct {
	Status  string         `json:"status"`
	Build   buildinfo.Info `json:"build"`
	Dataset string         `json:"dataset"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, healthResponse{
		Status:  "ok",
		Build:   buildinfo.Current(),
		Dataset: s.data.Hash(),
	})
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	years := make(map[election.Type][]int, len(election.Types))
	for _, t := range election.Types {
		years[t] = s.data.Years(t)
	}
	s.writeJSON(w, r, http.StatusOK, years)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	t, year, err := parseElection(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.data.Result(t, year)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleHemicycle(w http.ResponseWriter, r *http.Request) {
	year, err := election.ParseYear(chi.URLParam(r, "year"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.runner.GenerateLayout(r.Context(), pipeline.Options{
		Election: string(election.Legislative),
		Year:     year,
		Chart:    pipeline.ChartHemicycle,
		Strict:   true,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := io.MarshalLayout(*l.Hemicycle)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// parseElection reads the {type} and {year} URL parameters.
func parseElection(r *http.Request) (election.Type, int, error) {
	t, err := election.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		return "", 0, err
	}
	year, err := election.ParseYear(chi.URLParam(r, "year"))
	if err != nil {
		return "", 0, err
	}
	return t, year, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		loggerFrom(r.Context()).Error("encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError answers with the status matching err's code. Internal errors
// are logged and their message withheld.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		loggerFrom(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
		code = errors.ErrCodeInternal
		msg = "internal error"
	}
	s.writeJSON(w, r, status, errorResponse{
		Code:      code,
		Message:   msg,
		RequestID: requestIDFrom(r.Context()),
	})
}
