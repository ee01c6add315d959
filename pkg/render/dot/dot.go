// Package dot renders hemicycle layouts through Graphviz.
//
// Seats become fixed-size circle nodes pinned at their computed positions
// and laid out with the neato engine, which honors pinned positions
// exactly. Graphviz is linked in through go-graphviz (WebAssembly), so PNG
// output works without librsvg.
//
//	src := dot.ToDOT(layout)
//	png, err := dot.RenderPNG(ctx, src)
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/hemicycle"
)

// pointsPerInch converts layout units to Graphviz node sizes.
const pointsPerInch = 72.0

// ToDOT converts a seat layout to an undirected neato graph. Graphviz's y
// axis points up, so y is mirrored inside the layout frame. Two invisible
// corner nodes keep the frame's extent.
func ToDOT(l hemicycle.Layout) string {
	var buf bytes.Buffer
	buf.WriteString("graph hemicycle {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  pad=0;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, label=\"\", penwidth=0, width=%.4f];\n",
		2*l.MarkerRadius/pointsPerInch)
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  \"frame-min\" [pos=\"0,0!\", style=invis, width=0.01];\n")
	fmt.Fprintf(&buf, "  \"frame-max\" [pos=\"%.2f,%.2f!\", style=invis, width=0.01];\n", l.Width, l.Height)

	for _, s := range l.Seats {
		fmt.Fprintf(&buf, "  \"seat-%d\" [pos=\"%.2f,%.2f!\", fillcolor=%q, tooltip=%q];\n",
			s.Index, s.X, l.Height-s.Y, s.Color, hemicycle.Tooltip(s))
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg element, which sizes in pt,
// with one sized in px so browsers scale it like the other sinks.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
