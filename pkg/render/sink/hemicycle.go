package sink

import (
	"fmt"

	"github.com/matzehuels/elecciones/pkg/hemicycle"
)

// Hemicycle renders a seat layout: one dashed arc per row, one circle per
// seat, and a legend of seats per party.
func Hemicycle(l hemicycle.Layout, opts ...Option) []byte {
	o := newOptions(opts...)

	var legend []legendItem
	for _, pc := range hemicycle.Tally(l) {
		legend = append(legend, legendItem{color: pc.Color, label: pc.Label()})
	}

	label := fmt.Sprintf("Hemiciclo con %d escaños distribuidos entre partidos", l.TotalSeats)
	d := begin(o, l.Width, l.Height, legend, label)

	d.buf.WriteString(`    <g class="rows">` + "\n")
	for _, r := range l.Rows.RadiusPerRow {
		fmt.Fprintf(&d.buf, `      <path d="%s" fill="none" stroke="%s" stroke-width="2" stroke-dasharray="5,5" opacity="0.6"/>`+"\n",
			hemicycle.ArcPath(r, l.CenterX, l.CenterY), borderColor)
	}
	d.buf.WriteString("    </g>\n")

	d.buf.WriteString(`    <g class="seats">` + "\n")
	for _, s := range l.Seats {
		fmt.Fprintf(&d.buf, `      <circle class="seat" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" role="graphics-symbol" aria-label="Escaño %d - %s" data-party="%s"><title>%s</title></circle>`+"\n",
			s.X, s.Y, l.MarkerRadius, esc(s.Color), s.Index+1, esc(s.Party), esc(s.Party), esc(hemicycle.Tooltip(s)))
	}
	d.buf.WriteString("    </g>\n")

	return d.end(l.Height, legend)
}
