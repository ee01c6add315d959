package server

import (
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/pipeline"
)

// chartContentTypes lists the formats served under /charts.
var chartContentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

// chartCacheControl lets browsers and proxies keep chart images; the
// dataset is fixed for the life of the process.
const chartCacheControl = "public, max-age=3600"

// handleChart serves /charts/{type}/{year}/{chart}.{ext}. A hemicycle of an
// executive election is drawn as a bar chart, like the charts page does.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	t, year, err := parseElection(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	file := chi.URLParam(r, "file")
	ext := strings.TrimPrefix(path.Ext(file), ".")
	chart := strings.TrimSuffix(file, path.Ext(file))

	contentType, ok := chartContentTypes[ext]
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported chart format %q (want svg, png or json)", ext))
		return
	}

	opts := pipeline.Options{
		Election: string(t),
		Year:     year,
		Chart:    chart,
		Formats:  []string{ext},
		Strict:   true,
		Fallback: true,
		Popups:   true,
	}
	if v := r.URL.Query().Get("titulo"); v != "" {
		opts.Title = v
	}
	if r.URL.Query().Get("leyenda") == "0" {
		opts.NoLegend = true
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data := result.Artifacts[ext]

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", chartCacheControl)
	if result.Layout.Chart != chart {
		w.Header().Set("X-Chart", result.Layout.Chart)
	}
	_, _ = w.Write(data)
}
