package sink

import (
	"fmt"

	"github.com/matzehuels/elecciones/pkg/chart"
)

// Bar renders a bar chart with gridlines, value labels above the bars and
// party names below the axis.
func Bar(c chart.BarChart, opts ...Option) []byte {
	o := newOptions(opts...)

	legend := []legendItem{{color: mutedText, label: c.Series}}
	d := begin(o, c.Width, c.Height, legend, "Gráfico de barras: "+c.Series)

	right := c.PlotLeft + c.PlotWidth
	d.buf.WriteString(`    <g class="grid">` + "\n")
	for _, t := range c.Ticks {
		fmt.Fprintf(&d.buf, `      <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="3,3"/>`+"\n",
			c.PlotLeft, t.Y, right, t.Y, borderColor)
		fmt.Fprintf(&d.buf, `      <text x="%.1f" y="%.1f" text-anchor="end" dominant-baseline="middle" font-size="12" fill="%s">%s</text>`+"\n",
			c.PlotLeft-6, t.Y, mutedText, esc(t.Label))
	}
	d.buf.WriteString("    </g>\n")

	base := c.Baseline()
	d.buf.WriteString(`    <g class="bars">` + "\n")
	for _, b := range c.Bars {
		fmt.Fprintf(&d.buf, `      <rect class="bar" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3" fill="%s" aria-label="%s: %s"><title>%s: %s</title></rect>`+"\n",
			b.X, b.Y, b.Width, b.Height, esc(b.Color), esc(b.Name), esc(b.Label), esc(b.Name), esc(b.Label))
		fmt.Fprintf(&d.buf, `      <text x="%.2f" y="%.2f" text-anchor="middle" font-size="12" fill="%s">%s</text>`+"\n",
			b.X+b.Width/2, b.Y-6, textColor, esc(b.Label))
		fmt.Fprintf(&d.buf, `      <text x="%.2f" y="%.2f" text-anchor="end" font-size="12" fill="%s" transform="rotate(-35 %.2f %.2f)">%s</text>`+"\n",
			b.X+b.Width/2, base+16, textColor, b.X+b.Width/2, base+16, esc(b.Name))
	}
	d.buf.WriteString("    </g>\n")
	fmt.Fprintf(&d.buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
		c.PlotLeft, base, right, base, mutedText)

	return d.end(c.Height, legend)
}
