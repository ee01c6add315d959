package chart

import (
	"fmt"
	"math"
)

// pieRadiusShare is the outer radius as a share of the frame's short side.
const pieRadiusShare = 0.3

// Slice is one wedge of a pie. Angles are in radians, measured clockwise
// from 12 o'clock.
type Slice struct {
	Datum
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Fraction    float64 `json:"fraction"`
	Path        string  `json:"path"`
	Full        bool    `json:"full,omitempty"`
	LabelX      float64 `json:"label_x"`
	LabelY      float64 `json:"label_y"`
	LabelAnchor string  `json:"label_anchor"`
	Label       string  `json:"label"`
}

// PieChart is the geometry of a pie chart.
type PieChart struct {
	Series  string  `json:"series"`
	Slices  []Slice `json:"slices"`
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	Radius  float64 `json:"radius"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Pie lays out slices in data order, clockwise from 12 o'clock. Data with
// non-positive values get no slice; a zero total yields no slices at all.
func Pie(s Series, width, height float64) PieChart {
	c := PieChart{
		Series:  s.Name,
		CenterX: width / 2,
		CenterY: height / 2,
		Radius:  math.Min(width, height) * pieRadiusShare,
		Width:   width,
		Height:  height,
	}
	total := s.Total()
	if total <= 0 {
		return c
	}

	var angle float64
	for _, d := range s.Data {
		if d.Value <= 0 {
			continue
		}
		frac := d.Value / total
		sl := Slice{
			Datum:    d,
			Start:    angle,
			End:      angle + frac*2*math.Pi,
			Fraction: frac,
			Label:    s.Label(d),
		}
		angle = sl.End

		if frac >= 1-1e-9 {
			sl.Full = true
			sl.Path = circlePath(c.CenterX, c.CenterY, c.Radius)
		} else {
			sl.Path = wedgePath(c.CenterX, c.CenterY, c.Radius, sl.Start, sl.End)
		}

		mid := (sl.Start + sl.End) / 2
		sl.LabelX, sl.LabelY = polar(c.CenterX, c.CenterY, c.Radius*1.2, mid)
		sl.LabelAnchor = "start"
		if math.Sin(mid) < 0 {
			sl.LabelAnchor = "end"
		}
		c.Slices = append(c.Slices, sl)
	}
	return c
}

// polar converts an angle clockwise from 12 o'clock to frame coordinates.
func polar(cx, cy, r, a float64) (float64, float64) {
	return cx + r*math.Sin(a), cy - r*math.Cos(a)
}

func wedgePath(cx, cy, r, start, end float64) string {
	x0, y0 := polar(cx, cy, r, start)
	x1, y1 := polar(cx, cy, r, end)
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		cx, cy, x0, y0, r, r, large, x1, y1)
}

// circlePath draws a full disc as two half arcs; a single arc cannot
// start and end on the same point.
func circlePath(cx, cy, r float64) string {
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 1 1 %.2f %.2f A %.2f %.2f 0 1 1 %.2f %.2f Z",
		cx-r, cy, r, r, cx+r, cy, r, r, cx-r, cy)
}
