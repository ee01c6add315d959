package sink

import (
	"fmt"
	"strings"

	"github.com/matzehuels/elecciones/pkg/choropleth"
)

const provinceCSS = `
    .province { transition: opacity 0.2s ease; stroke: #ffffff; stroke-width: 1; }
    .province:hover { opacity: 0.8; }`

// Map renders a choropleth with a winners legend. Province names are drawn
// on tile maps only; real outlines are too irregular for centered labels.
func Map(m choropleth.Map, opts ...Option) []byte {
	o := newOptions(opts...)

	legend := make([]legendItem, 0, len(m.Legend))
	for _, e := range m.Legend {
		legend = append(legend, legendItem{color: e.Color, label: e.Label})
	}
	d := begin(o, m.Width, m.Height, legend, "Mapa electoral de Panamá por provincias")

	tiles := isTileMap(m)
	d.buf.WriteString(`    <g class="provinces">` + "\n")
	for i, r := range m.Regions {
		title := r.Name
		if r.Tooltip != nil {
			title = strings.Join(r.Tooltip.Lines(), "\n")
		}
		fmt.Fprintf(&d.buf, `      <path class="province" id="province-%d" d="%s" fill="%s" aria-label="%s"><title>%s</title></path>`+"\n",
			i, r.Path, esc(r.Fill), esc(r.Name), esc(title))
	}
	if tiles {
		for _, r := range m.Regions {
			fmt.Fprintf(&d.buf, `      <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-size="12" fill="%s" pointer-events="none">%s</text>`+"\n",
				r.LabelX, r.LabelY, textColor, esc(r.Name))
		}
	}
	d.buf.WriteString("    </g>\n")

	if o.popups {
		for i, r := range m.Regions {
			if r.Tooltip != nil {
				writePopup(d, i, *r.Tooltip)
			}
		}
		renderPopupScript(d)
	} else {
		fmt.Fprintf(&d.buf, "    <style>%s\n    </style>\n", provinceCSS)
	}

	return d.end(m.Height, legend)
}

func isTileMap(m choropleth.Map) bool {
	for _, r := range m.Regions {
		if strings.Contains(r.Path, "L") {
			return false
		}
	}
	return len(m.Regions) > 0
}
