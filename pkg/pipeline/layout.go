package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/elecciones/pkg/chart"
	"github.com/matzehuels/elecciones/pkg/choropleth"
	"github.com/matzehuels/elecciones/pkg/election"
	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/hemicycle"
)

// Layout is the serializable geometry of one chart. Exactly one of the
// chart fields is set, matching Chart.
type Layout struct {
	Chart    string `json:"chart"`
	Election string `json:"election"`
	Year     int    `json:"year"`

	Hemicycle *hemicycle.Layout `json:"hemicycle,omitempty"`
	Bar       *chart.BarChart   `json:"bar,omitempty"`
	Pie       *chart.PieChart   `json:"pie,omitempty"`
	Map       *choropleth.Map   `json:"map,omitempty"`
}

// Items counts the drawn elements: seats, bars, slices or regions.
func (l Layout) Items() int {
	switch {
	case l.Hemicycle != nil:
		return len(l.Hemicycle.Seats)
	case l.Bar != nil:
		return len(l.Bar.Bars)
	case l.Pie != nil:
		return len(l.Pie.Slices)
	case l.Map != nil:
		return len(l.Map.Regions)
	}
	return 0
}

// MarshalLayout serializes a layout for caching and the JSON format.
func MarshalLayout(l Layout) ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal layout")
	}
	return data, nil
}

// UnmarshalLayout reads a layout written by [MarshalLayout].
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "unmarshal layout")
	}
	if l.Hemicycle == nil && l.Bar == nil && l.Pie == nil && l.Map == nil {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "layout has no %q geometry", l.Chart)
	}
	return l, nil
}

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the geometry of the chart named by opts. shapes
// are province outlines for maps; nil draws the tile cartogram.
func GenerateLayout(src Source, shapes []choropleth.Shape, opts Options) (Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return Layout{}, err
	}
	l := Layout{Chart: opts.Chart, Election: opts.Election, Year: opts.Year}

	switch opts.Chart {
	case ChartHemicycle:
		h, err := generateHemicycle(src.Result, opts)
		if err != nil {
			return Layout{}, err
		}
		l.Hemicycle = &h
	case ChartBar:
		c := chart.Bars(chart.FromResult(src.Result), opts.Width, opts.Height)
		l.Bar = &c
	case ChartPie:
		c := chart.Pie(chart.FromResult(src.Result), opts.Width, opts.Height)
		l.Pie = &c
	case ChartMap:
		m := choropleth.Build(choropleth.Bind(src.Provinces, src.Colors), shapes, opts.Width, opts.Height)
		l.Map = &m
	}
	return l, nil
}

// generateHemicycle seats the legislative result. Strict options reject
// results whose seats do not add up; otherwise the engine degrades.
func generateHemicycle(r election.Result, opts Options) (hemicycle.Layout, error) {
	req, err := election.SeatRequest(r)
	if err != nil {
		return hemicycle.Layout{}, err
	}
	if opts.Strict {
		if err := hemicycle.Validate(req); err != nil {
			return hemicycle.Layout{}, err
		}
	} else if sum := req.SeatSum(); sum != req.TotalSeats {
		opts.Logger.Warn("seat counts disagree", "year", r.Year, "seats", sum, "total", req.TotalSeats)
	}

	var hopts []hemicycle.Option
	if opts.Rows > 0 {
		hopts = append(hopts, hemicycle.WithRows(opts.Rows))
	}
	return hemicycle.Build(req, hopts...), nil
}

// mapShapes projects boundaries into the frame of opts, or returns nil
// when there are none.
func mapShapes(b *choropleth.Boundaries, opts Options) []choropleth.Shape {
	if b == nil || len(b.Features) == 0 {
		return nil
	}
	m := choropleth.DefaultMercator()
	m.Width, m.Height = opts.Width, opts.Height
	return b.Shapes(m)
}
