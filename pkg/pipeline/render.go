package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/io"
	"github.com/matzehuels/elecciones/pkg/render"
	"github.com/matzehuels/elecciones/pkg/render/dot"
	"github.com/matzehuels/elecciones/pkg/render/sink"
)

// DefaultTitle is the heading used for a chart when none is given, for
// example "Elecciones Legislativas 2024".
func DefaultTitle(opts Options) string {
	return fmt.Sprintf("%s %d", opts.ElectionType().Label(), opts.Year)
}

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l Layout, opts Options) (map[string][]byte, error) {
	opts.Chart = l.Chart
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg == nil {
			var err error
			if svg, err = RenderSVG(l, opts); err != nil {
				return nil, err
			}
		}
		return svg, nil
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = svgOnce()
		case FormatJSON:
			data, err = renderJSON(l)
		case FormatDOT:
			if l.Hemicycle == nil {
				return nil, errors.New(errors.ErrCodeUnsupported, "dot output is only available for hemicycles")
			}
			data = []byte(dot.ToDOT(*l.Hemicycle))
		case FormatPNG:
			data, err = renderPNG(ctx, l, opts, svgOnce)
		case FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPDFContext(ctx, data)
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(codeOf(err), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderSVG draws the layout's chart as an SVG document.
func RenderSVG(l Layout, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(opts)
	switch {
	case l.Hemicycle != nil:
		return sink.Hemicycle(*l.Hemicycle, svgOpts...), nil
	case l.Bar != nil:
		return sink.Bar(*l.Bar, svgOpts...), nil
	case l.Pie != nil:
		return sink.Pie(*l.Pie, svgOpts...), nil
	case l.Map != nil:
		return sink.Map(*l.Map, svgOpts...), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "layout has no %q geometry", l.Chart)
}

// renderJSON exports hemicycles in the seat layout format read by the
// layout command; other charts are written as their full layout.
func renderJSON(l Layout) ([]byte, error) {
	if l.Hemicycle != nil {
		return io.MarshalLayout(*l.Hemicycle)
	}
	return MarshalLayout(l)
}

// renderPNG picks the rasterizer. Graphviz only draws hemicycles, so
// other charts always need rsvg-convert.
func renderPNG(ctx context.Context, l Layout, opts Options, svg func() ([]byte, error)) ([]byte, error) {
	engine := opts.Engine
	if engine == EngineAuto {
		engine = EngineRSVG
		if !render.Available() && l.Hemicycle != nil {
			engine = EngineGraphviz
		}
	}

	if engine == EngineGraphviz {
		if l.Hemicycle == nil {
			return nil, errors.New(errors.ErrCodeUnsupported, "graphviz only renders hemicycles")
		}
		return dot.RenderPNG(ctx, dot.ToDOT(*l.Hemicycle))
	}

	data, err := svg()
	if err != nil {
		return nil, err
	}
	return render.ToPNGContext(ctx, data, opts.Scale)
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.Option {
	var svgOpts []sink.Option
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.Popups {
		svgOpts = append(svgOpts, sink.WithPopups())
	}
	if opts.NoLegend {
		svgOpts = append(svgOpts, sink.WithoutLegend())
	}
	return svgOpts
}

// codeOf keeps a coded error's code when wrapping it.
func codeOf(err error) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	return errors.ErrCodeInternal
}
