package sink

import (
	"fmt"

	"github.com/matzehuels/elecciones/pkg/chart"
)

// Pie renders a pie chart with labels outside each slice.
func Pie(c chart.PieChart, opts ...Option) []byte {
	o := newOptions(opts...)

	legend := make([]legendItem, 0, len(c.Slices))
	for _, s := range c.Slices {
		legend = append(legend, legendItem{color: s.Color, label: s.Name})
	}
	d := begin(o, c.Width, c.Height, legend, "Gráfico circular: "+c.Series)

	d.buf.WriteString(`    <g class="slices">` + "\n")
	for _, s := range c.Slices {
		fmt.Fprintf(&d.buf, `      <path class="slice" d="%s" fill="%s" stroke="#ffffff" stroke-width="1" aria-label="%s"><title>%s</title></path>`+"\n",
			s.Path, esc(s.Color), esc(s.Label), esc(s.Label))
	}
	for _, s := range c.Slices {
		fmt.Fprintf(&d.buf, `      <text x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="middle" font-size="13" fill="%s">%s</text>`+"\n",
			s.LabelX, s.LabelY, s.LabelAnchor, esc(s.Color), esc(s.Label))
	}
	d.buf.WriteString("    </g>\n")

	return d.end(c.Height, legend)
}
