package chart

import "math"

// Plot margins of a bar chart, leaving room for axis labels.
const (
	barMarginLeft   = 48.0
	barMarginRight  = 16.0
	barMarginTop    = 16.0
	barMarginBottom = 64.0

	// barFill is the share of each band covered by its bar.
	barFill = 0.7
	// targetTicks is the preferred number of y-axis intervals.
	targetTicks = 5
)

// Bar is one placed bar.
type Bar struct {
	Datum
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Label  string  `json:"label"`
}

// Tick is a y-axis gridline.
type Tick struct {
	Value float64 `json:"value"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// BarChart is the geometry of a bar chart.
type BarChart struct {
	Series     string  `json:"series"`
	Bars       []Bar   `json:"bars"`
	Ticks      []Tick  `json:"ticks"`
	AxisMax    float64 `json:"axis_max"`
	PlotLeft   float64 `json:"plot_left"`
	PlotTop    float64 `json:"plot_top"`
	PlotWidth  float64 `json:"plot_width"`
	PlotHeight float64 `json:"plot_height"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// Baseline is the y coordinate of the value axis' zero.
func (c BarChart) Baseline() float64 {
	return c.PlotTop + c.PlotHeight
}

// Bars lays out one bar per datum, in order, inside a width×height frame.
// Heights are scaled to a rounded axis maximum; negative values draw as
// empty bars.
func Bars(s Series, width, height float64) BarChart {
	c := BarChart{
		Series:     s.Name,
		Width:      width,
		Height:     height,
		PlotLeft:   barMarginLeft,
		PlotTop:    barMarginTop,
		PlotWidth:  max(width-barMarginLeft-barMarginRight, 0),
		PlotHeight: max(height-barMarginTop-barMarginBottom, 0),
	}

	var peak float64
	for _, d := range s.Data {
		peak = max(peak, d.Value)
	}
	step := NiceStep(peak, targetTicks)
	c.AxisMax = step * math.Max(1, math.Ceil(peak/step))

	for i := range int(math.Round(c.AxisMax/step)) + 1 {
		v := float64(i) * step
		c.Ticks = append(c.Ticks, Tick{
			Value: v,
			Y:     c.Baseline() - v/c.AxisMax*c.PlotHeight,
			Label: FormatValue(v) + s.Unit,
		})
	}

	if len(s.Data) == 0 {
		return c
	}
	band := c.PlotWidth / float64(len(s.Data))
	c.Bars = make([]Bar, 0, len(s.Data))
	for i, d := range s.Data {
		h := max(d.Value, 0) / c.AxisMax * c.PlotHeight
		c.Bars = append(c.Bars, Bar{
			Datum:  d,
			X:      c.PlotLeft + float64(i)*band + band*(1-barFill)/2,
			Y:      c.Baseline() - h,
			Width:  band * barFill,
			Height: h,
			Label:  FormatValue(d.Value) + s.Unit,
		})
	}
	return c
}

// NiceStep returns a tick interval of 1, 2 or 5 times a power of ten that
// splits [0, peak] into about n intervals. Non-positive peaks get a step of 1.
func NiceStep(peak float64, n int) float64 {
	if peak <= 0 || n < 1 {
		return 1
	}
	raw := peak / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}
