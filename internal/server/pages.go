package server

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/matzehuels/elecciones/pkg/chart"
	"github.com/matzehuels/elecciones/pkg/election"
	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/pipeline"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// democracySince is the year of the return to democracy the home page
// counts from.
const democracySince = 1989

// pages holds one template set per page, each layered over base.html.
type pages struct {
	index, datos, contacto, errorPage *template.Template
}

var funcs = template.FuncMap{
	"comma":   func(v int) string { return humanize.Comma(int64(v)) },
	"percent": chart.FormatValue,
	"inc":     func(i int) int { return i + 1 },
}

func loadPages() (*pages, error) {
	base, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse base template")
	}
	page := func(name string) (*template.Template, error) {
		t, err := template.Must(base.Clone()).ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse %s", name)
		}
		return t, nil
	}

	var p pages
	for name, dst := range map[string]**template.Template{
		"index.html":    &p.index,
		"datos.html":    &p.datos,
		"contacto.html": &p.contacto,
		"error.html":    &p.errorPage,
	} {
		if *dst, err = page(name); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}

// pageData is what every page template receives.
type pageData struct {
	Title  string
	Active string
	Body   any
}

// render executes t into a buffer first so a template error never sends a
// half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, t *template.Template, status int, data pageData) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base.html", data); err != nil {
		loggerFrom(r.Context()).Error("render page", "page", data.Active, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, s.pages.errorPage, status, pageData{
		Title: message,
		Body: map[string]any{
			"Status":    status,
			"Message":   message,
			"RequestID": requestIDFrom(r.Context()),
		},
	})
}

// =============================================================================
// Home
// =============================================================================

type indexBody struct {
	Presidential int
	Years        int
	Deputies     int
	Milestones   []election.Milestone
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	body := indexBody{
		Presidential: len(s.data.Years(election.Executive)),
		Milestones:   s.data.Timeline(),
	}
	if years := s.data.Years(election.Legislative); len(years) > 0 {
		latest := years[len(years)-1]
		body.Years = latest - democracySince
		if res, err := s.data.Result(election.Legislative, latest); err == nil {
			body.Deputies = res.TotalSeats
		}
	}
	s.render(w, r, s.pages.index, http.StatusOK, pageData{
		Title:  "Historia Electoral de Panamá",
		Active: "inicio",
		Body:   body,
	})
}

// =============================================================================
// Charts page
// =============================================================================

type option struct {
	Value, Label string
	Selected     bool
}

type datosBody struct {
	Election election.Type
	Year     int
	Chart    string
	Heading  string
	Total    string

	Types  []option
	Charts []option
	Years  []option

	SVG    template.HTML
	Result election.Result
	Note   string
}

var chartLabels = map[string]string{
	pipeline.ChartBar:       "Barras",
	pipeline.ChartPie:       "Circular",
	pipeline.ChartHemicycle: "Hemiciclo",
	pipeline.ChartMap:       "Mapa",
}

// handleDatos draws the selected chart inline. Unknown query values fall
// back to the defaults (ejecutivo, barras, latest year) rather than failing,
// and a hemicycle asked for an executive election is drawn as bars.
func (s *Server) handleDatos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	t, err := election.ParseType(q.Get("tipo"))
	if err != nil {
		t = election.Executive
	}
	years := s.data.Years(t)
	if len(years) == 0 {
		s.renderError(w, r, http.StatusNotFound, "No hay datos para "+t.Label())
		return
	}
	year := years[len(years)-1]
	if y, err := strconv.Atoi(q.Get("anio")); err == nil && slices.Contains(years, y) {
		year = y
	}
	chartName := q.Get("grafico")
	if pipeline.ValidateChart(chartName) != nil {
		chartName = pipeline.DefaultChart
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Election: string(t),
		Year:     year,
		Chart:    chartName,
		Formats:  []string{pipeline.FormatSVG},
		Strict:   true,
		Fallback: true,
		Popups:   true,
	})
	if err != nil {
		s.renderError(w, r, errors.HTTPStatus(err), errors.UserMessage(err))
		return
	}
	res, err := s.data.Result(t, year)
	if err != nil {
		s.renderError(w, r, errors.HTTPStatus(err), errors.UserMessage(err))
		return
	}

	body := datosBody{
		Election: t,
		Year:     year,
		Chart:    result.Layout.Chart,
		Heading:  t.Label() + " - " + strconv.Itoa(year),
		Total:    t.TotalLabel() + ": " + humanize.Comma(int64(res.Total())),
		// sink escapes every label it writes.
		SVG:    template.HTML(result.Artifacts[pipeline.FormatSVG]),
		Result: res,
	}
	if result.Layout.Chart != chartName {
		body.Note = "El hemiciclo solo aplica a elecciones legislativas; se muestra el gráfico de barras."
	}
	for _, et := range election.Types {
		body.Types = append(body.Types, option{string(et), et.Label(), et == t})
	}
	for _, c := range pipeline.Charts {
		if c == pipeline.ChartHemicycle && t != election.Legislative {
			continue
		}
		body.Charts = append(body.Charts, option{c, chartLabels[c], c == body.Chart})
	}
	for _, y := range years {
		v := strconv.Itoa(y)
		body.Years = append(body.Years, option{v, v, y == year})
	}

	s.render(w, r, s.pages.datos, http.StatusOK, pageData{
		Title:  "Datos Electorales de Panamá",
		Active: "datos",
		Body:   body,
	})
}

// =============================================================================
// Contact
// =============================================================================

func (s *Server) handleContacto(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, s.pages.contacto, http.StatusOK, pageData{
		Title:  "Contacto",
		Active: "contacto",
	})
}
