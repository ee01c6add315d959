package sink

import (
	"fmt"

	"github.com/matzehuels/elecciones/pkg/choropleth"
)

const (
	popupWidth      = 200.0
	popupLineHeight = 18.0
	popupPadding    = 10.0
)

const (
	popupCSS = `
    .province { transition: opacity 0.2s ease; stroke: #ffffff; stroke-width: 1; }
    .province:hover { opacity: 0.8; }
    .popup { pointer-events: none; transition: opacity 0.15s ease, transform 0.1s ease; }
    .popup[visibility="hidden"] { opacity: 0; }
    .popup[visibility="visible"] { opacity: 1; }`

	popupJS = `
    const svg = document.querySelector('svg');
    const vb = svg.viewBox.baseVal;
    document.querySelectorAll('.province').forEach(el => {
      const popup = document.querySelector('.popup[data-for="' + el.id + '"]');
      if (!popup) return;
      el.style.cursor = 'pointer';
      el.addEventListener('mouseenter', () => {
        const box = el.getBBox();
        const popupBox = popup.getBBox();
        let x = box.x + box.width/2 - popupBox.width/2;
        let y = box.y + box.height + 12;
        if (y + popupBox.height > vb.y + vb.height - 10) y = box.y - popupBox.height - 8;
        if (y < vb.y + 10) y = vb.y + 10;
        x = Math.max(vb.x + 10, Math.min(x, vb.x + vb.width - popupBox.width - 10));
        popup.setAttribute('transform', 'translate(' + x.toFixed(1) + ',' + y.toFixed(1) + ')');
        popup.setAttribute('visibility', 'visible');
      });
      el.addEventListener('mouseleave', () => popup.setAttribute('visibility', 'hidden'));
    });`
)

// writePopup draws a hidden hover card for the province with index i.
// The script moves it next to the province on hover.
func writePopup(d *document, i int, t choropleth.Tooltip) {
	lines := t.Lines()
	h := float64(len(lines))*popupLineHeight + 2*popupPadding

	fmt.Fprintf(&d.buf, `    <g class="popup" data-for="province-%d" visibility="hidden">`+"\n", i)
	fmt.Fprintf(&d.buf, `      <rect width="%.0f" height="%.0f" rx="6" fill="#ffffff" stroke="%s"/>`+"\n",
		popupWidth, h, borderColor)
	for li, line := range lines {
		weight := "400"
		if li == 0 {
			weight = "600"
		}
		fmt.Fprintf(&d.buf, `      <text x="%.0f" y="%.0f" font-size="13" font-weight="%s" fill="%s">%s</text>`+"\n",
			popupPadding, popupPadding+float64(li+1)*popupLineHeight-4, weight, textColor, esc(line))
	}
	d.buf.WriteString("    </g>\n")
}

func renderPopupScript(d *document) {
	fmt.Fprintf(&d.buf, "    <style>%s\n    </style>\n", popupCSS)
	fmt.Fprintf(&d.buf, "    <script type=\"text/javascript\"><![CDATA[%s\n    ]]></script>\n", popupJS)
}
