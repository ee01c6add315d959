package sink

import (
	"bytes"
	"fmt"
	"html"
)

const (
	titleHeight   = 40.0
	legendRow     = 28.0
	legendSwatch  = 14.0
	legendPadding = 16.0
	// legendCharWidth approximates the advance of one legend character.
	legendCharWidth = 7.5

	fontFamily  = `system-ui, -apple-system, "Segoe UI", Roboto, sans-serif`
	textColor   = "#18181b"
	mutedText   = "#71717a"
	borderColor = "#e4e4e7"
)

// Option configures an SVG sink.
type Option func(*options)

type options struct {
	title      string
	popups     bool
	legend     bool
	background string
}

// WithTitle draws a heading above the chart.
func WithTitle(s string) Option { return func(o *options) { o.title = s } }

// WithPopups adds scripted hover cards to map provinces.
func WithPopups() Option { return func(o *options) { o.popups = true } }

// WithoutLegend omits the legend band.
func WithoutLegend() Option { return func(o *options) { o.legend = false } }

// WithBackground fills the canvas with color.
func WithBackground(color string) Option { return func(o *options) { o.background = color } }

func newOptions(opts ...Option) options {
	o := options{legend: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// legendItem is one swatch and label of a legend band.
type legendItem struct {
	color string
	label string
}

// legendHeight returns the height of a legend laid out in width.
func legendHeight(items []legendItem, width float64) float64 {
	if len(items) == 0 {
		return 0
	}
	return float64(len(legendRows(items, width)))*legendRow + legendPadding
}

// legendRows wraps items into centered rows no wider than width.
func legendRows(items []legendItem, width float64) [][]legendItem {
	var rows [][]legendItem
	var cur []legendItem
	var used float64
	for _, it := range items {
		w := itemWidth(it)
		if len(cur) > 0 && used+w > width-2*legendPadding {
			rows = append(rows, cur)
			cur, used = nil, 0
		}
		cur = append(cur, it)
		used += w
	}
	if len(cur) > 0 {
		rows = append(rows, cur)
	}
	return rows
}

func itemWidth(it legendItem) float64 {
	return legendSwatch + 8 + float64(len([]rune(it.label)))*legendCharWidth + 24
}

type document struct {
	buf    bytes.Buffer
	opts   options
	width  float64
	height float64
	top    float64
}

// begin writes the svg element for a chart of the given size plus room
// for the title and legend.
func begin(opts options, width, chartHeight float64, legend []legendItem, label string) *document {
	d := &document{opts: opts, width: width}
	if opts.title != "" {
		d.top = titleHeight
	}
	if !opts.legend {
		legend = nil
	}
	d.height = d.top + chartHeight + legendHeight(legend, width)

	fmt.Fprintf(&d.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" role="img" aria-label="%s" font-family='%s'>`+"\n",
		d.width, d.height, d.width, d.height, esc(label), fontFamily)
	if opts.background != "" {
		fmt.Fprintf(&d.buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", esc(opts.background))
	}
	if opts.title != "" {
		fmt.Fprintf(&d.buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="20" font-weight="600" fill="%s">%s</text>`+"\n",
			d.width/2, titleHeight*0.65, textColor, esc(opts.title))
	}
	fmt.Fprintf(&d.buf, `  <g transform="translate(0, %.1f)">`+"\n", d.top)
	return d
}

// end closes the chart group, draws the legend below chartHeight and
// closes the document.
func (d *document) end(chartHeight float64, legend []legendItem) []byte {
	d.buf.WriteString("  </g>\n")
	if d.opts.legend && len(legend) > 0 {
		d.writeLegend(d.top+chartHeight, legend)
	}
	d.buf.WriteString("</svg>\n")
	return d.buf.Bytes()
}

func (d *document) writeLegend(y float64, items []legendItem) {
	d.buf.WriteString(`  <g class="legend">` + "\n")
	for ri, row := range legendRows(items, d.width) {
		var total float64
		for _, it := range row {
			total += itemWidth(it)
		}
		x := (d.width - total) / 2
		cy := y + legendPadding/2 + float64(ri)*legendRow + legendRow/2
		for _, it := range row {
			fmt.Fprintf(&d.buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
				x+legendSwatch/2, cy, legendSwatch/2, esc(it.color))
			fmt.Fprintf(&d.buf, `    <text x="%.1f" y="%.1f" dominant-baseline="middle" font-size="14" fill="%s">%s</text>`+"\n",
				x+legendSwatch+8, cy, textColor, esc(it.label))
			x += itemWidth(it)
		}
	}
	d.buf.WriteString("  </g>\n")
}

func esc(s string) string { return html.EscapeString(s) }
